package redemption

import (
	"context"
	"errors"
	"sync"

	"github.com/x5labs/giftwheel/internal/models"
)

// memoryRepository implements the Repository interface in process memory.
// It backs tests and the degraded path of the fallback repository; records
// held here do not survive a restart.
type memoryRepository struct {
	mu      sync.RWMutex
	records map[string]*models.RedemptionRecord
	order   []string
}

// NewMemory creates a new in-memory redemption ledger repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		records: make(map[string]*models.RedemptionRecord),
	}
}

// Contains reports whether a record exists for the credential
func (r *memoryRepository) Contains(ctx context.Context, input *ContainsInput) (*ContainsOutput, error) {
	if input == nil || input.Credential == "" {
		return nil, errors.New("input and credential cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[input.Credential]

	return &ContainsOutput{Redeemed: ok}, nil
}

// Record inserts a redemption record; existing records are left untouched
func (r *memoryRepository) Record(ctx context.Context, input *RecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	if input.Record.Credential == "" {
		return errors.New("record credential cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[input.Record.Credential]; ok {
		return nil
	}

	record := *input.Record
	r.records[record.Credential] = &record
	r.order = append(r.order, record.Credential)

	return nil
}

// ListAll returns a snapshot of every record in insertion order
func (r *memoryRepository) ListAll(ctx context.Context, input *ListAllInput) (*ListAllOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*models.RedemptionRecord, 0, len(r.order))
	for _, credential := range r.order {
		record := *r.records[credential]
		records = append(records, &record)
	}

	return &ListAllOutput{Records: records}, nil
}

// Clear erases all redemption records
func (r *memoryRepository) Clear(ctx context.Context, input *ClearInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[string]*models.RedemptionRecord)
	r.order = nil

	return nil
}
