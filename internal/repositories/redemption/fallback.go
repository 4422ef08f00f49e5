package redemption

import (
	"context"
	"errors"
	"fmt"
)

// ErrStorageDegraded signals that durable storage failed and the operation
// was absorbed by the in-memory overlay. Callers treat it as a recoverable
// warning: the draw proceeds, only durability is at risk.
var ErrStorageDegraded = errors.New("ledger storage degraded, record held in memory only")

// FallbackConfig holds configuration for the degrading ledger repository
type FallbackConfig struct {
	// Primary is the durable repository, normally Redis-backed
	Primary Repository
}

// fallbackRepository wraps a durable primary with an in-memory overlay.
// Writes that the primary rejects land in the overlay for the rest of the
// process lifetime, and reads merge both so a redeemed credential stays
// redeemed even while the primary is unreachable.
type fallbackRepository struct {
	primary Repository
	overlay *memoryRepository
}

// NewFallback creates a degrading wrapper around a durable repository
func NewFallback(cfg *FallbackConfig) (*fallbackRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Primary == nil {
		return nil, errors.New("primary repository cannot be nil")
	}

	return &fallbackRepository{
		primary: cfg.Primary,
		overlay: NewMemory(),
	}, nil
}

// Contains consults the primary and the overlay; an unreachable primary
// fails open to the overlay alone.
func (r *fallbackRepository) Contains(ctx context.Context, input *ContainsInput) (*ContainsOutput, error) {
	output, err := r.primary.Contains(ctx, input)
	if err == nil && output.Redeemed {
		return output, nil
	}

	overlayOutput, overlayErr := r.overlay.Contains(ctx, input)
	if overlayErr != nil {
		return nil, overlayErr
	}

	return overlayOutput, nil
}

// Record writes through to the primary; when that fails the record is kept
// in the overlay and ErrStorageDegraded is returned as a warning.
func (r *fallbackRepository) Record(ctx context.Context, input *RecordInput) error {
	err := r.primary.Record(ctx, input)
	if err == nil {
		return nil
	}

	if overlayErr := r.overlay.Record(ctx, input); overlayErr != nil {
		return overlayErr
	}

	return fmt.Errorf("%w: %v", ErrStorageDegraded, err)
}

// ListAll merges the primary snapshot with overlay records not yet durable
func (r *fallbackRepository) ListAll(ctx context.Context, input *ListAllInput) (*ListAllOutput, error) {
	records, err := r.primary.ListAll(ctx, input)
	if err != nil {
		// Unreachable primary fails open to the overlay snapshot
		return r.overlay.ListAll(ctx, input)
	}

	seen := make(map[string]struct{}, len(records.Records))
	for _, record := range records.Records {
		seen[record.Credential] = struct{}{}
	}

	overlayRecords, err := r.overlay.ListAll(ctx, input)
	if err != nil {
		return nil, err
	}

	for _, record := range overlayRecords.Records {
		if _, ok := seen[record.Credential]; !ok {
			records.Records = append(records.Records, record)
		}
	}

	return records, nil
}

// Clear erases the overlay and the primary. A primary failure is reported
// as degraded so the caller can warn rather than fail the reset.
func (r *fallbackRepository) Clear(ctx context.Context, input *ClearInput) error {
	if err := r.overlay.Clear(ctx, input); err != nil {
		return err
	}

	if err := r.primary.Clear(ctx, input); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageDegraded, err)
	}

	return nil
}
