package rng

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/x5labs/giftwheel/internal/rng Source

// Source provides the randomness the draw core consumes. Injecting it keeps
// the weighted selection and spin planning deterministic under test.
type Source interface {
	// Float64 returns a uniform value in [0, 1)
	Float64() float64

	// Intn returns a uniform integer in [0, n)
	Intn(n int) int
}

// Config for the default source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// defaultSource implements Source using math/rand
type defaultSource struct {
	random *rand.Rand
}

// New creates a new randomness source
func New(cfg *Config) *defaultSource {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &defaultSource{
		random: random,
	}
}

// Float64 returns a uniform value in [0, 1)
func (s *defaultSource) Float64() float64 {
	return s.random.Float64()
}

// Intn returns a uniform integer in [0, n)
func (s *defaultSource) Intn(n int) int {
	if n < 1 {
		return 0
	}
	return s.random.Intn(n)
}
