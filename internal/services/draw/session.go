package draw

import "time"

// Phase represents where a session is in the credential lifecycle
type Phase string

const (
	// PhaseUnverified indicates no credential has been accepted yet
	PhaseUnverified Phase = "unverified"

	// PhaseUnlocked indicates a valid, unredeemed credential is held
	PhaseUnlocked Phase = "unlocked"

	// PhaseSpinning indicates the outcome is computed and the animation is
	// presumed in flight; the redemption is not committed yet
	PhaseSpinning Phase = "spinning"

	// PhaseCompleted indicates the redemption has been committed
	PhaseCompleted Phase = "completed"
)

// session is the state of one user interaction. It is owned by exactly one
// interaction at a time; the service serializes access, so a session never
// needs its own lock.
type session struct {
	// ID is the unique identifier for the session
	ID string

	// Phase is the current lifecycle phase
	Phase Phase

	// Credential holds the normalized credential once unlocked
	Credential string

	// ChosenIndex is the selected segment, -1 until a spin happens
	ChosenIndex int

	// TargetRotationDegrees is the rotation target handed to the animation
	// layer by the last spin
	TargetRotationDegrees float64

	// CreatedAt is when the interaction started
	CreatedAt time.Time

	// LastActivity is bumped on every operation; the janitor drops
	// sessions that go quiet
	LastActivity time.Time
}

// newSession creates a session in the unverified phase
func newSession(id string, now time.Time) *session {
	return &session{
		ID:           id,
		Phase:        PhaseUnverified,
		ChosenIndex:  -1,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// reset returns the session to the unverified phase. Resetting while
// spinning abandons the draw without committing it, so the credential
// remains redeemable.
func (s *session) reset() {
	s.Phase = PhaseUnverified
	s.Credential = ""
	s.ChosenIndex = -1
	s.TargetRotationDegrees = 0
}
