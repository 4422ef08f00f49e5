package redemption

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/x5labs/giftwheel/internal/repositories/redemption Repository

import (
	"context"
)

// Repository defines the interface for redemption ledger persistence.
// It is pure data access; the draw rules live in the services layer.
type Repository interface {
	// Contains reports whether a record exists for the credential. Pure
	// read, no side effect.
	Contains(ctx context.Context, input *ContainsInput) (*ContainsOutput, error)

	// Record inserts a redemption record. The insert is idempotent: if a
	// record already exists for the credential the call is a no-op and the
	// original timestamp is kept.
	Record(ctx context.Context, input *RecordInput) error

	// ListAll returns a snapshot of every record in insertion order
	ListAll(ctx context.Context, input *ListAllInput) (*ListAllOutput, error)

	// Clear erases all records. Only an explicit user-initiated reset path
	// calls this, never anything automatic.
	Clear(ctx context.Context, input *ClearInput) error
}
