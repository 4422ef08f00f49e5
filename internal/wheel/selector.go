package wheel

import (
	"github.com/x5labs/giftwheel/internal/models"
	"github.com/x5labs/giftwheel/internal/rng"
)

// Pick selects a segment index with probability proportional to its weight.
// Negative weights count as zero. If every weight is zero the wheel is
// degenerate and index 0 is returned; a misconfigured wheel never errors.
//
// The walk subtracts each clamped weight from the draw instead of comparing
// against a normalized probability table, so rounding error does not
// compound across segments. Pick is pure given its Source.
func Pick(segments []*models.PrizeSegment, src rng.Source) int {
	var total float64
	for _, seg := range segments {
		if seg.Weight > 0 {
			total += seg.Weight
		}
	}

	if total <= 0 {
		return 0
	}

	r := src.Float64() * total
	for i, seg := range segments {
		w := seg.Weight
		if w < 0 {
			w = 0
		}
		if r < w {
			return i
		}
		r -= w
	}

	// Unreachable unless floating point rounding pushes r past the last
	// cumulative weight
	return len(segments) - 1
}
