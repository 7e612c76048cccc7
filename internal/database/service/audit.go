package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// CounterStore finds and repairs drifted price counters.
type CounterStore interface {
	FindCounterDrift(ctx context.Context, limit int) ([]*types.CounterDrift, error)
	RepairCounters(ctx context.Context, priceIDs []int64) (int64, error)
}

// AuditService checks that cached counters match their event rows.
type AuditService struct {
	counters    CounterStore
	activity    ActivityLogger
	batchSize   int
	concurrency int
	logger      *zap.Logger
}

// NewAudit creates a new audit service.
func NewAudit(counters CounterStore, activity ActivityLogger, policies Policies, logger *zap.Logger) *AuditService {
	return &AuditService{
		counters:    counters,
		activity:    activity,
		batchSize:   100,
		concurrency: max(policies.ReconcileConcurrency, 1),
		logger:      logger.Named("audit_service"),
	}
}

// VerifyCounters returns up to limit prices whose counters disagree with their votes and
// verifications. An empty result means the counters are consistent.
func (s *AuditService) VerifyCounters(ctx context.Context, limit int) ([]*types.CounterDrift, error) {
	drift, err := s.counters.FindCounterDrift(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to verify counters: %w", err)
	}
	return drift, nil
}

// RepairCounters recomputes the counters of up to limit drifted prices from their event rows.
// It returns the drift found and the number of prices rewritten.
func (s *AuditService) RepairCounters(
	ctx context.Context, limit int, now time.Time,
) ([]*types.CounterDrift, int64, error) {
	drift, err := s.VerifyCounters(ctx, limit)
	if err != nil {
		return nil, 0, err
	}
	if len(drift) == 0 {
		return drift, 0, nil
	}

	ids := make([]int64, len(drift))
	for i, d := range drift {
		ids[i] = d.PriceID
	}

	p := pool.NewWithResults[int64]().
		WithContext(ctx).
		WithMaxGoroutines(s.concurrency)

	for batch := range slices.Chunk(ids, s.batchSize) {
		p.Go(func(ctx context.Context) (int64, error) {
			return s.counters.RepairCounters(ctx, batch)
		})
	}

	counts, err := p.Wait()

	var repaired int64
	for _, n := range counts {
		repaired += n
	}
	if err != nil {
		return drift, repaired, fmt.Errorf("failed to repair counters: %w", err)
	}

	logs := make([]*types.ActivityLog, len(drift))
	for i, d := range drift {
		logs[i] = &types.ActivityLog{
			EntityType:        types.EntityRef(enum.EntityTypePrice),
			EntityID:          d.PriceID,
			ActivityType:      enum.ActivityTypeCountersRepaired,
			ActivityTimestamp: now,
			Details: map[string]any{
				"upvotes":            []int32{d.StoredUpvotes, d.ActualUpvotes},
				"downvotes":          []int32{d.StoredDownvotes, d.ActualDownvotes},
				"verification_count": []int32{d.StoredVerificationCount, d.ActualVerificationCount},
			},
		}
	}
	s.activity.LogBatch(ctx, logs)

	s.logger.Info("Repaired price counters",
		zap.Int("drifted", len(drift)),
		zap.Int64("repaired", repaired))

	return drift, repaired, nil
}
