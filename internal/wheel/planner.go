package wheel

import (
	"errors"
	"fmt"

	"github.com/x5labs/giftwheel/internal/rng"
)

// jitterFraction bounds the random stop offset inside the chosen segment,
// as a fraction of the segment arc. It must stay strictly below 0.5 so the
// stop can never cross into a neighboring segment.
const jitterFraction = 0.3

// Planner converts a chosen segment index into a rotation target the
// animation layer can apply.
type Planner struct {
	minTurns             int
	pointerOffsetDegrees float64
	source               rng.Source
}

// PlannerConfig holds configuration for the spin planner
type PlannerConfig struct {
	// MinTurns is the minimum number of full rotations per spin. Each plan
	// adds zero or one extra turn so spins do not all look identical.
	MinTurns int

	// PointerOffsetDegrees is where the fixed pointer sits relative to the
	// wheel's zero angle. It is coupled to the renderer's drawing
	// convention, so it is configuration rather than a literal.
	PointerOffsetDegrees float64

	// Source provides the jitter and extra-turn randomness
	Source rng.Source
}

// NewPlanner creates a new spin planner
func NewPlanner(cfg *PlannerConfig) (*Planner, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Source == nil {
		return nil, errors.New("random source cannot be nil")
	}

	if cfg.MinTurns < 1 {
		return nil, errors.New("min turns must be at least 1")
	}

	return &Planner{
		minTurns:             cfg.MinTurns,
		pointerOffsetDegrees: cfg.PointerOffsetDegrees,
		source:               cfg.Source,
	}, nil
}

// Plan returns the rotation target in degrees for the chosen segment.
// Animating a rotation from 0 to the returned angle always lands the chosen
// segment's arc under the pointer: the target is the segment center plus a
// jitter bounded strictly inside the arc, plus whole turns.
func (p *Planner) Plan(chosenIndex, segmentCount int) (float64, error) {
	if segmentCount < 1 {
		return 0, fmt.Errorf("segment count must be at least 1, got %d", segmentCount)
	}

	if chosenIndex < 0 || chosenIndex >= segmentCount {
		return 0, fmt.Errorf("chosen index %d out of range [0, %d)", chosenIndex, segmentCount)
	}

	segmentArc := 360.0 / float64(segmentCount)

	center := (float64(chosenIndex)+0.5)*segmentArc + p.pointerOffsetDegrees

	// uniform in (-jitterFraction, +jitterFraction) of the arc
	jitter := (p.source.Float64()*2 - 1) * jitterFraction * segmentArc

	extraTurns := p.minTurns + p.source.Intn(2)

	return float64(extraTurns)*360 + center + jitter, nil
}
