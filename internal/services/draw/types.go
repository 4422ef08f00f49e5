package draw

import (
	"time"

	"github.com/x5labs/giftwheel/internal/common/clock"
	"github.com/x5labs/giftwheel/internal/common/uuid"
	"github.com/x5labs/giftwheel/internal/models"
	"github.com/x5labs/giftwheel/internal/repositories/allowlist"
	"github.com/x5labs/giftwheel/internal/repositories/redemption"
	"github.com/x5labs/giftwheel/internal/rng"
	"github.com/x5labs/giftwheel/internal/wheel"
)

// Config holds configuration for the draw service
type Config struct {
	// Segments is the wheel configuration, ordered and immutable for the
	// process lifetime
	Segments []*models.PrizeSegment

	// CaseInsensitiveCredentials folds credential case during
	// normalization when true; trimming always applies
	CaseInsensitiveCredentials bool

	// SpinSeconds is the animation duration handed to the presentation
	// layer with every spin
	SpinSeconds float64

	// Repository dependencies
	LedgerRepo    redemption.Repository
	AllowlistRepo allowlist.Repository

	// Service dependencies
	Planner       *wheel.Planner
	RandomSource  rng.Source
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// StartSessionInput contains parameters for starting an interaction
type StartSessionInput struct{}

// StartSessionOutput contains the result of starting an interaction
type StartSessionOutput struct {
	// SessionID identifies the new session
	SessionID string
}

// ValidateCredentialInput contains parameters for validating a credential
type ValidateCredentialInput struct {
	// SessionID is the session performing the validation
	SessionID string

	// Credential is the user-supplied credential, un-normalized
	Credential string
}

// ValidateCredentialOutput contains the result of validating a credential
type ValidateCredentialOutput struct{}

// SpinInput contains parameters for running the draw
type SpinInput struct {
	// SessionID is the unlocked session to spin
	SessionID string
}

// SpinOutput contains everything the presentation layer needs to animate
// the draw and reveal the prize
type SpinOutput struct {
	// ChosenIndex is the logically selected segment
	ChosenIndex int

	// TargetRotationDegrees is the rotation the animation must apply from
	// zero so the chosen segment lands under the pointer
	TargetRotationDegrees float64

	// SpinSeconds is how long the animation should run before the
	// presentation layer reports completion
	SpinSeconds float64

	// Label is the chosen segment's label
	Label string

	// Prize is the chosen segment's payload
	Prize models.PrizePayload
}

// CompleteSpinInput contains parameters for committing a finished draw
type CompleteSpinInput struct {
	// SessionID is the spinning session whose animation has finished
	SessionID string
}

// CompleteSpinOutput contains the result of committing a draw
type CompleteSpinOutput struct {
	// StorageDegraded is true when the redemption could not be persisted
	// durably and is held in memory for the rest of the process
	StorageDegraded bool
}

// ResetSessionInput contains parameters for resetting a session
type ResetSessionInput struct {
	SessionID string
}

// ResetSessionOutput contains the result of resetting a session
type ResetSessionOutput struct{}

// EndSessionInput contains parameters for discarding a session
type EndSessionInput struct {
	SessionID string
}

// EndSessionOutput contains the result of discarding a session
type EndSessionOutput struct{}

// RefreshAllowlistInput contains parameters for reloading the allow-list
type RefreshAllowlistInput struct{}

// RefreshAllowlistOutput contains the result of reloading the allow-list
type RefreshAllowlistOutput struct {
	// Count is the number of credentials now accepted
	Count int
}

// ListRedemptionsInput contains parameters for the history view
type ListRedemptionsInput struct{}

// ListRedemptionsOutput contains a snapshot of all redemptions
type ListRedemptionsOutput struct {
	Records []*models.RedemptionRecord
}

// ClearRedemptionsInput contains parameters for the explicit ledger reset
type ClearRedemptionsInput struct{}

// ClearRedemptionsOutput contains the result of clearing the ledger
type ClearRedemptionsOutput struct {
	// StorageDegraded is true when durable storage could not be cleared;
	// the in-memory view was
	StorageDegraded bool
}

// DescribeWheelInput contains parameters for the render description
type DescribeWheelInput struct{}

// WheelSegmentView is the display-only description of one segment.
// Weights are deliberately absent.
type WheelSegmentView struct {
	// Label is the text drawn on the wedge
	Label string

	// ImageURI is set for image prizes so the renderer can preload it
	ImageURI string
}

// DescribeWheelOutput contains what the renderer needs to draw the wheel
type DescribeWheelOutput struct {
	Segments    []WheelSegmentView
	SpinSeconds float64
}

// CleanupInactiveSessionsInput contains parameters for the janitor sweep
type CleanupInactiveSessionsInput struct {
	// OlderThan drops sessions with no activity for at least this long
	OlderThan time.Duration
}

// CleanupInactiveSessionsOutput contains the result of a janitor sweep
type CleanupInactiveSessionsOutput struct {
	// Removed is how many sessions were dropped
	Removed int
}
