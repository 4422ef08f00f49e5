package allowlist

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/x5labs/giftwheel/internal/repositories/allowlist Repository

import (
	"context"
)

// Repository defines the interface for fetching the credential allow-list.
// The list may change between sessions, so implementations must bypass any
// caching layer on every fetch.
type Repository interface {
	// Fetch retrieves the current list of valid credentials
	Fetch(ctx context.Context, input *FetchInput) (*FetchOutput, error)
}
