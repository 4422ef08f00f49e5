package wheel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/x5labs/giftwheel/internal/rng"
	rngMocks "github.com/x5labs/giftwheel/internal/rng/mocks"
)

func TestNewPlannerValidatesConfig(t *testing.T) {
	_, err := NewPlanner(nil)
	assert.Error(t, err)

	_, err = NewPlanner(&PlannerConfig{MinTurns: 3})
	assert.Error(t, err)

	_, err = NewPlanner(&PlannerConfig{MinTurns: 0, Source: rng.New(&rng.Config{Seed: 1})})
	assert.Error(t, err)
}

func TestPlanRejectsBadInputs(t *testing.T) {
	planner, err := NewPlanner(&PlannerConfig{
		MinTurns: 3,
		Source:   rng.New(&rng.Config{Seed: 1}),
	})
	require.NoError(t, err)

	_, err = planner.Plan(0, 0)
	assert.Error(t, err)

	_, err = planner.Plan(-1, 4)
	assert.Error(t, err)

	_, err = planner.Plan(4, 4)
	assert.Error(t, err)
}

// The containment law: for every chosen index and any jitter draw, the
// planned angle (minus pointer offset, modulo the full circle) falls
// strictly inside the chosen segment's arc.
func TestPlanLandsInsideChosenSegment(t *testing.T) {
	for _, segmentCount := range []int{1, 2, 3, 4, 6, 8, 12} {
		for _, pointerOffset := range []float64{0, 90, 180} {
			planner, err := NewPlanner(&PlannerConfig{
				MinTurns:             3,
				PointerOffsetDegrees: pointerOffset,
				Source:               rng.New(&rng.Config{Seed: 42}),
			})
			require.NoError(t, err)

			segmentArc := 360.0 / float64(segmentCount)

			for chosen := 0; chosen < segmentCount; chosen++ {
				for draw := 0; draw < 200; draw++ {
					target, err := planner.Plan(chosen, segmentCount)
					require.NoError(t, err)

					// At least the configured number of full turns
					assert.GreaterOrEqual(t, target, float64(3)*360)

					stop := math.Mod(target-pointerOffset, 360)
					require.GreaterOrEqual(t, stop, 0.0)

					lower := float64(chosen) * segmentArc
					upper := float64(chosen+1) * segmentArc
					assert.Greaterf(t, stop, lower,
						"count=%d offset=%.0f chosen=%d stop=%.4f", segmentCount, pointerOffset, chosen, stop)
					assert.Lessf(t, stop, upper,
						"count=%d offset=%.0f chosen=%d stop=%.4f", segmentCount, pointerOffset, chosen, stop)
				}
			}
		}
	}
}

func TestPlanWithDeterministicSource(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	mockSource := rngMocks.NewMockSource(mockCtrl)

	// Float64 at the midpoint zeroes the jitter, Intn(2)=0 keeps the
	// minimum turn count
	mockSource.EXPECT().Float64().Return(0.5)
	mockSource.EXPECT().Intn(2).Return(0)

	planner, err := NewPlanner(&PlannerConfig{
		MinTurns:             3,
		PointerOffsetDegrees: 180,
		Source:               mockSource,
	})
	require.NoError(t, err)

	target, err := planner.Plan(1, 4)
	require.NoError(t, err)

	// 3*360 + (1.5 * 90) + 180
	assert.InDelta(t, 1395.0, target, 1e-9)
}
