package redemption

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/x5labs/giftwheel/internal/models"
)

const (
	// Key prefixes for Redis
	recordKeyPrefix = "redemption:"
	ledgerIndexKey  = "redemptions"
)

// Config holds configuration for the Redis redemption ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed redemption ledger repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Contains reports whether a record exists for the credential. Stored text
// that fails to parse counts as not redeemed: the ledger fails open so a
// corrupt store never locks users out.
func (r *redisRepository) Contains(ctx context.Context, input *ContainsInput) (*ContainsOutput, error) {
	if input == nil || input.Credential == "" {
		return nil, errors.New("input and credential cannot be empty")
	}

	recordKey := recordKeyPrefix + input.Credential
	recordJSON, err := r.client.Get(ctx, recordKey).Result()
	if err != nil {
		if err == redis.Nil {
			return &ContainsOutput{Redeemed: false}, nil
		}
		return nil, fmt.Errorf("failed to get redemption record: %w", err)
	}

	var record models.RedemptionRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return &ContainsOutput{Redeemed: false}, nil
	}

	return &ContainsOutput{Redeemed: true}, nil
}

// Record inserts a redemption record. SetNX and ZAddNX keep the insert
// idempotent: an existing record is never duplicated and its timestamp is
// never updated. Stored text that fails to parse counts as absent on the
// read path, so it counts as absent here too and gets overwritten;
// otherwise a commit would no-op against the corrupt key and Contains
// would report the credential unredeemed forever.
func (r *redisRepository) Record(ctx context.Context, input *RecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	record := input.Record

	if record.Credential == "" {
		return errors.New("record credential cannot be empty")
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal redemption record: %w", err)
	}

	recordKey := recordKeyPrefix + record.Credential

	overwrite := false
	storedJSON, err := r.client.Get(ctx, recordKey).Result()
	switch {
	case err == redis.Nil:
		// New record
	case err != nil:
		return fmt.Errorf("failed to get redemption record: %w", err)
	default:
		var stored models.RedemptionRecord
		if json.Unmarshal([]byte(storedJSON), &stored) != nil {
			overwrite = true
		}
	}

	pipe := r.client.Pipeline()

	entry := redis.Z{
		Score:  float64(record.RedeemedAtMillis),
		Member: record.Credential,
	}

	if overwrite {
		pipe.Set(ctx, recordKey, recordJSON, 0)
		pipe.ZAdd(ctx, ledgerIndexKey, entry)
	} else {
		pipe.SetNX(ctx, recordKey, recordJSON, 0)
		pipe.ZAddNX(ctx, ledgerIndexKey, entry)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add redemption record: %w", err)
	}

	return nil
}

// ListAll returns a snapshot of every record in insertion order
func (r *redisRepository) ListAll(ctx context.Context, input *ListAllInput) (*ListAllOutput, error) {
	credentials, err := r.client.ZRange(ctx, ledgerIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list redeemed credentials: %w", err)
	}

	if len(credentials) == 0 {
		return &ListAllOutput{
			Records: []*models.RedemptionRecord{},
		}, nil
	}

	pipe := r.client.Pipeline()
	recordCommands := make([]*redis.StringCmd, 0, len(credentials))
	for _, credential := range credentials {
		recordCommands = append(recordCommands, pipe.Get(ctx, recordKeyPrefix+credential))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get redemption records: %w", err)
	}

	records := make([]*models.RedemptionRecord, 0, len(credentials))
	for _, cmd := range recordCommands {
		recordJSON, err := cmd.Result()
		if err != nil {
			// Record deleted between reading the index and fetching it
			continue
		}

		var record models.RedemptionRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			// Unparseable text fails open: skip it rather than error
			continue
		}

		records = append(records, &record)
	}

	return &ListAllOutput{
		Records: records,
	}, nil
}

// Clear erases all redemption records
func (r *redisRepository) Clear(ctx context.Context, input *ClearInput) error {
	credentials, err := r.client.ZRange(ctx, ledgerIndexKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list redeemed credentials: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, credential := range credentials {
		pipe.Del(ctx, recordKeyPrefix+credential)
	}
	pipe.Del(ctx, ledgerIndexKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear redemption records: %w", err)
	}

	return nil
}
