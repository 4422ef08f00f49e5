package draw

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/x5labs/giftwheel/internal/services/draw Service

import (
	"context"
)

// Service defines the interface for the draw session orchestrator. The
// presentation layer drives one session through validate, spin, and
// complete; spin computes the outcome and complete commits it, so a
// redemption is recorded only after the user has actually seen the result.
type Service interface {
	// StartSession creates a session for a new user interaction
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// ValidateCredential checks a credential against the allow-list and the
	// redemption ledger, unlocking the session on success
	ValidateCredential(ctx context.Context, input *ValidateCredentialInput) (*ValidateCredentialOutput, error)

	// Spin runs the weighted draw and plans the rotation target. At most
	// one spin is allowed per unlock.
	Spin(ctx context.Context, input *SpinInput) (*SpinOutput, error)

	// CompleteSpin commits the redemption once the presentation layer has
	// finished animating
	CompleteSpin(ctx context.Context, input *CompleteSpinInput) (*CompleteSpinOutput, error)

	// ResetSession returns a session to the unverified phase
	ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error)

	// EndSession discards a session when the interaction is over
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// RefreshAllowlist reloads the credential allow-list from its source
	RefreshAllowlist(ctx context.Context, input *RefreshAllowlistInput) (*RefreshAllowlistOutput, error)

	// ListRedemptions returns a snapshot of the redemption history
	ListRedemptions(ctx context.Context, input *ListRedemptionsInput) (*ListRedemptionsOutput, error)

	// ClearRedemptions erases the redemption ledger; only the explicit
	// user-initiated reset path calls this
	ClearRedemptions(ctx context.Context, input *ClearRedemptionsInput) (*ClearRedemptionsOutput, error)

	// DescribeWheel returns the display-only wheel description
	DescribeWheel(ctx context.Context, input *DescribeWheelInput) (*DescribeWheelOutput, error)

	// CleanupInactiveSessions drops sessions with no recent activity
	CleanupInactiveSessions(ctx context.Context, input *CleanupInactiveSessionsInput) (*CleanupInactiveSessionsOutput, error)
}
