package draw

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/logger"

	"github.com/x5labs/giftwheel/internal/common/clock"
	"github.com/x5labs/giftwheel/internal/common/uuid"
	"github.com/x5labs/giftwheel/internal/models"
	allowlistRepo "github.com/x5labs/giftwheel/internal/repositories/allowlist"
	ledgerRepo "github.com/x5labs/giftwheel/internal/repositories/redemption"
	"github.com/x5labs/giftwheel/internal/rng"
	"github.com/x5labs/giftwheel/internal/wheel"
)

const defaultSpinSeconds = 6

// service implements the Service interface
type service struct {
	segments        []*models.PrizeSegment
	caseInsensitive bool
	spinSeconds     float64

	ledgerRepo    ledgerRepo.Repository
	allowlistRepo allowlistRepo.Repository

	planner       *wheel.Planner
	randomSource  rng.Source
	clock         clock.Clock
	uuidGenerator uuid.UUID

	// mu guards sessions and the credential set. Sessions themselves are
	// single-interaction state; serializing service calls is the only
	// locking the state machine needs.
	mu             sync.Mutex
	sessions       map[string]*session
	credentials    map[string]struct{}
	allowlistReady bool
}

// New creates a new draw service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if len(cfg.Segments) == 0 {
		return nil, errors.New("at least one segment is required")
	}

	for _, segment := range cfg.Segments {
		if segment == nil {
			return nil, errors.New("segments cannot be nil")
		}
		if err := segment.Validate(); err != nil {
			return nil, fmt.Errorf("invalid segment %q: %w", segment.Label, err)
		}
	}

	if cfg.LedgerRepo == nil {
		return nil, errors.New("ledger repository cannot be nil")
	}

	if cfg.AllowlistRepo == nil {
		return nil, errors.New("allowlist repository cannot be nil")
	}

	if cfg.Planner == nil {
		return nil, errors.New("planner cannot be nil")
	}

	if cfg.RandomSource == nil {
		return nil, errors.New("random source cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	uuidGenerator := cfg.UUIDGenerator
	if uuidGenerator == nil {
		uuidGenerator = uuid.New()
	}

	spinSeconds := cfg.SpinSeconds
	if spinSeconds <= 0 {
		spinSeconds = defaultSpinSeconds
	}

	return &service{
		segments:        cfg.Segments,
		caseInsensitive: cfg.CaseInsensitiveCredentials,
		spinSeconds:     spinSeconds,
		ledgerRepo:      cfg.LedgerRepo,
		allowlistRepo:   cfg.AllowlistRepo,
		planner:         cfg.Planner,
		randomSource:    cfg.RandomSource,
		clock:           clk,
		uuidGenerator:   uuidGenerator,
		sessions:        make(map[string]*session),
	}, nil
}

// StartSession creates a session for a new user interaction
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID := s.uuidGenerator.NewUUID()
	s.sessions[sessionID] = newSession(sessionID, s.clock.Now())

	return &StartSessionOutput{
		SessionID: sessionID,
	}, nil
}

// ValidateCredential checks a credential against the allow-list and the
// ledger. Callable only from the unverified phase.
func (s *service) ValidateCredential(ctx context.Context, input *ValidateCredentialInput) (*ValidateCredentialOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(input.SessionID)
	if err != nil {
		return nil, err
	}

	if !s.allowlistReady {
		return nil, ErrSystemNotReady
	}

	if sess.Phase != PhaseUnverified {
		return nil, ErrInvalidState
	}

	credential := normalizeCredential(input.Credential, s.caseInsensitive)
	if _, ok := s.credentials[credential]; !ok {
		return nil, ErrInvalidCredential
	}

	redeemed, err := s.ledgerRepo.Contains(ctx, &ledgerRepo.ContainsInput{
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}

	if redeemed.Redeemed {
		return nil, ErrAlreadyRedeemed
	}

	sess.Credential = credential
	sess.Phase = PhaseUnlocked

	return &ValidateCredentialOutput{}, nil
}

// Spin runs the weighted draw and plans the rotation target. Callable only
// from the unlocked phase; the spinning phase itself is the at-most-one-spin
// lock.
func (s *service) Spin(ctx context.Context, input *SpinInput) (*SpinOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(input.SessionID)
	if err != nil {
		return nil, err
	}

	switch sess.Phase {
	case PhaseUnlocked:
		// proceed
	case PhaseSpinning, PhaseCompleted:
		return nil, ErrAlreadySpun
	default:
		return nil, ErrInvalidState
	}

	// The ledger is shared across sessions, so re-check membership before
	// leaving the unlocked phase
	redeemed, err := s.ledgerRepo.Contains(ctx, &ledgerRepo.ContainsInput{
		Credential: sess.Credential,
	})
	if err != nil {
		return nil, err
	}

	if redeemed.Redeemed {
		return nil, ErrAlreadyRedeemed
	}

	chosenIndex := wheel.Pick(s.segments, s.randomSource)

	target, err := s.planner.Plan(chosenIndex, len(s.segments))
	if err != nil {
		return nil, err
	}

	sess.ChosenIndex = chosenIndex
	sess.TargetRotationDegrees = target
	sess.Phase = PhaseSpinning

	segment := s.segments[chosenIndex]

	return &SpinOutput{
		ChosenIndex:           chosenIndex,
		TargetRotationDegrees: target,
		SpinSeconds:           s.spinSeconds,
		Label:                 segment.Label,
		Prize:                 segment.Prize,
	}, nil
}

// CompleteSpin commits the redemption once the animation has visually
// finished. Callable only from the spinning phase; a failed durable write
// degrades to an in-memory record and is reported as a warning, never as a
// failure.
func (s *service) CompleteSpin(ctx context.Context, input *CompleteSpinInput) (*CompleteSpinOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Phase != PhaseSpinning {
		return nil, ErrInvalidState
	}

	degraded := false
	err = s.ledgerRepo.Record(ctx, &ledgerRepo.RecordInput{
		Record: &models.RedemptionRecord{
			Credential:       sess.Credential,
			RedeemedAtMillis: s.clock.Now().UnixMilli(),
		},
	})
	if err != nil {
		if !errors.Is(err, ledgerRepo.ErrStorageDegraded) {
			// Leave the session spinning so the commit can be retried
			return nil, err
		}
		degraded = true
		logger.Warningf("redemption for session %s not durable: %v", sess.ID, err)
	}

	sess.Phase = PhaseCompleted

	return &CompleteSpinOutput{
		StorageDegraded: degraded,
	}, nil
}

// ResetSession returns a session to the unverified phase. Resetting while
// spinning abandons the draw without committing, so the credential stays
// redeemable.
func (s *service) ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(input.SessionID)
	if err != nil {
		return nil, err
	}

	sess.reset()

	return &ResetSessionOutput{}, nil
}

// EndSession discards a session when the interaction is over
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[input.SessionID]; !ok {
		return nil, ErrSessionNotFound
	}

	delete(s.sessions, input.SessionID)

	return &EndSessionOutput{}, nil
}

// RefreshAllowlist reloads the credential allow-list. The first successful
// refresh opens validation; until then every validate attempt fails with
// ErrSystemNotReady.
func (s *service) RefreshAllowlist(ctx context.Context, input *RefreshAllowlistInput) (*RefreshAllowlistOutput, error) {
	// Fetch outside the lock; the source may be slow
	fetched, err := s.allowlistRepo.Fetch(ctx, &allowlistRepo.FetchInput{})
	if err != nil {
		return nil, err
	}

	credentials := make(map[string]struct{}, len(fetched.Credentials))
	for _, credential := range fetched.Credentials {
		credentials[normalizeCredential(credential, s.caseInsensitive)] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.credentials = credentials
	s.allowlistReady = true

	return &RefreshAllowlistOutput{
		Count: len(credentials),
	}, nil
}

// ListRedemptions returns a snapshot of the redemption history
func (s *service) ListRedemptions(ctx context.Context, input *ListRedemptionsInput) (*ListRedemptionsOutput, error) {
	records, err := s.ledgerRepo.ListAll(ctx, &ledgerRepo.ListAllInput{})
	if err != nil {
		return nil, err
	}

	return &ListRedemptionsOutput{
		Records: records.Records,
	}, nil
}

// ClearRedemptions erases the redemption ledger
func (s *service) ClearRedemptions(ctx context.Context, input *ClearRedemptionsInput) (*ClearRedemptionsOutput, error) {
	err := s.ledgerRepo.Clear(ctx, &ledgerRepo.ClearInput{})
	if err != nil {
		if !errors.Is(err, ledgerRepo.ErrStorageDegraded) {
			return nil, err
		}
		logger.Warningf("ledger clear not durable: %v", err)
		return &ClearRedemptionsOutput{StorageDegraded: true}, nil
	}

	return &ClearRedemptionsOutput{}, nil
}

// DescribeWheel returns the display-only wheel description
func (s *service) DescribeWheel(ctx context.Context, input *DescribeWheelInput) (*DescribeWheelOutput, error) {
	segments := make([]WheelSegmentView, 0, len(s.segments))
	for _, segment := range s.segments {
		view := WheelSegmentView{
			Label: segment.Label,
		}
		if segment.Prize.Kind == models.PrizeKindImage {
			view.ImageURI = segment.Prize.URI
		}
		segments = append(segments, view)
	}

	return &DescribeWheelOutput{
		Segments:    segments,
		SpinSeconds: s.spinSeconds,
	}, nil
}

// CleanupInactiveSessions drops sessions with no activity for at least the
// given duration
func (s *service) CleanupInactiveSessions(ctx context.Context, input *CleanupInactiveSessionsInput) (*CleanupInactiveSessionsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().Add(-input.OlderThan)

	removed := 0
	for id, sess := range s.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}

	return &CleanupInactiveSessionsOutput{
		Removed: removed,
	}, nil
}

// getSession looks up a session and bumps its activity; callers hold s.mu
func (s *service) getSession(sessionID string) (*session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess.LastActivity = s.clock.Now()

	return sess, nil
}
