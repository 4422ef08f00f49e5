package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/x5labs/giftwheel/internal/models"
)

// Config holds everything the server wires at startup. Values come from the
// environment; segments come from a JSON file so the wheel can be edited
// without rebuilding.
type Config struct {
	// ListenAddr is the HTTP bind address
	ListenAddr string

	// RedisAddr and RedisPassword locate the ledger store
	RedisAddr     string
	RedisPassword string

	// AllowlistURL is where the password document is published
	AllowlistURL string

	// SegmentsPath is the wheel configuration file
	SegmentsPath string

	// CaseInsensitiveCredentials folds credential case when true
	CaseInsensitiveCredentials bool

	// SpinSeconds is the animation duration handed to the widget
	SpinSeconds float64

	// MinTurns is the minimum number of full rotations per spin
	MinTurns int

	// PointerOffsetDegrees aligns the planner with the widget's pointer
	// position; it must match the renderer's drawing convention
	PointerOffsetDegrees float64

	// SessionTTL is how long an idle session survives before the janitor
	// drops it
	SessionTTL time.Duration
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:                 getEnv("LISTEN_ADDR", ":8080"),
		RedisAddr:                  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:              getEnv("REDIS_PASSWORD", ""),
		AllowlistURL:               getEnv("ALLOWLIST_URL", ""),
		SegmentsPath:               getEnv("SEGMENTS_PATH", "segments.json"),
		CaseInsensitiveCredentials: getEnv("CASE_INSENSITIVE_CREDENTIALS", "false") == "true",
	}

	if cfg.AllowlistURL == "" {
		return nil, fmt.Errorf("ALLOWLIST_URL environment variable is required")
	}

	spinSeconds, err := strconv.ParseFloat(getEnv("SPIN_SECONDS", "6"), 64)
	if err != nil || spinSeconds <= 0 {
		return nil, fmt.Errorf("SPIN_SECONDS must be a positive number")
	}
	cfg.SpinSeconds = spinSeconds

	minTurns, err := strconv.Atoi(getEnv("MIN_TURNS", "3"))
	if err != nil || minTurns < 1 {
		return nil, fmt.Errorf("MIN_TURNS must be a positive integer")
	}
	cfg.MinTurns = minTurns

	pointerOffset, err := strconv.ParseFloat(getEnv("POINTER_OFFSET_DEGREES", "180"), 64)
	if err != nil {
		return nil, fmt.Errorf("POINTER_OFFSET_DEGREES must be a number")
	}
	cfg.PointerOffsetDegrees = pointerOffset

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "30m"))
	if err != nil || sessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration")
	}
	cfg.SessionTTL = sessionTTL

	return cfg, nil
}

// LoadSegments reads and validates the wheel configuration file
func LoadSegments(path string) ([]*models.PrizeSegment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open segments file: %w", err)
	}
	defer file.Close()

	var segments []*models.PrizeSegment
	if err := json.NewDecoder(file).Decode(&segments); err != nil {
		return nil, fmt.Errorf("failed to decode segments file: %w", err)
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("segments file %s defines no segments", path)
	}

	for _, segment := range segments {
		if err := segment.Validate(); err != nil {
			return nil, fmt.Errorf("invalid segment %q: %w", segment.Label, err)
		}
	}

	return segments, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
