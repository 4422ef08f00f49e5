package redemption

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/x5labs/giftwheel/internal/models"
)

type FallbackRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *FallbackRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	primary, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)

	repo, err := NewFallback(&FallbackConfig{
		Primary: primary,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 8, 12, 10, 0, 0, 0, time.UTC)
}

func (s *FallbackRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestFallbackRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(FallbackRepositoryTestSuite))
}

func (s *FallbackRepositoryTestSuite) TestWritesThroughWhilePrimaryHealthy() {
	err := s.repo.Record(context.Background(), &RecordInput{
		Record: &models.RedemptionRecord{
			Credential:       "a1",
			RedeemedAtMillis: s.testNow.UnixMilli(),
		},
	})
	s.Require().NoError(err)

	output, err := s.repo.Contains(context.Background(), &ContainsInput{
		Credential: "a1",
	})
	s.Require().NoError(err)
	s.True(output.Redeemed)
}

func (s *FallbackRepositoryTestSuite) TestDegradesToMemoryWhenPrimaryDown() {
	s.mr.Close()

	err := s.repo.Record(context.Background(), &RecordInput{
		Record: &models.RedemptionRecord{
			Credential:       "a1",
			RedeemedAtMillis: s.testNow.UnixMilli(),
		},
	})
	s.Require().Error(err)
	s.Require().ErrorIs(err, ErrStorageDegraded)

	// The record is still visible for the rest of the session
	output, err := s.repo.Contains(context.Background(), &ContainsInput{
		Credential: "a1",
	})
	s.Require().NoError(err)
	s.True(output.Redeemed)

	listOutput, err := s.repo.ListAll(context.Background(), &ListAllInput{})
	s.Require().NoError(err)
	s.Require().Len(listOutput.Records, 1)
	s.Equal("a1", listOutput.Records[0].Credential)
}

func (s *FallbackRepositoryTestSuite) TestListAllMergesOverlayRecords() {
	// One record lands durably
	err := s.repo.Record(context.Background(), &RecordInput{
		Record: &models.RedemptionRecord{
			Credential:       "durable",
			RedeemedAtMillis: s.testNow.UnixMilli(),
		},
	})
	s.Require().NoError(err)

	// The next one only reaches the overlay
	s.mr.Close()
	err = s.repo.Record(context.Background(), &RecordInput{
		Record: &models.RedemptionRecord{
			Credential:       "volatile",
			RedeemedAtMillis: s.testNow.Add(time.Minute).UnixMilli(),
		},
	})
	s.Require().ErrorIs(err, ErrStorageDegraded)

	// Primary is unreachable, so the snapshot fails open to the overlay
	listOutput, err := s.repo.ListAll(context.Background(), &ListAllInput{})
	s.Require().NoError(err)
	s.Require().Len(listOutput.Records, 1)
	s.Equal("volatile", listOutput.Records[0].Credential)
}

func (s *FallbackRepositoryTestSuite) TestRecordStaysIdempotentAcrossDegrade() {
	err := s.repo.Record(context.Background(), &RecordInput{
		Record: &models.RedemptionRecord{
			Credential:       "a1",
			RedeemedAtMillis: s.testNow.UnixMilli(),
		},
	})
	s.Require().NoError(err)

	s.mr.Close()

	err = s.repo.Record(context.Background(), &RecordInput{
		Record: &models.RedemptionRecord{
			Credential:       "a1",
			RedeemedAtMillis: s.testNow.Add(time.Hour).UnixMilli(),
		},
	})
	s.Require().ErrorIs(err, ErrStorageDegraded)

	listOutput, err := s.repo.ListAll(context.Background(), &ListAllInput{})
	s.Require().NoError(err)
	s.Require().Len(listOutput.Records, 1)
}
