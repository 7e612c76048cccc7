package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/models"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/engine/amenity"
	"github.com/pintwise/pintwise/internal/metrics"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// AmenityVoteStore stores amenity votes and applies consensus decisions.
type AmenityVoteStore interface {
	CastAmenityVote(
		ctx context.Context, pubID int64, key enum.Amenity, voterID uuid.UUID, choice enum.VoteChoice,
		now time.Time, decide models.AmenityDecider,
	) (*models.AmenityOutcome, error)
	ReconcileAmenity(
		ctx context.Context, pubID int64, key enum.Amenity, now time.Time, decide models.AmenityDecider,
	) (*models.AmenityOutcome, error)
	GetAmenityClaims(ctx context.Context, pubID int64) (map[enum.Amenity]amenity.Claim, error)
}

// AmenityReader reads the canonical amenity flags of a pub.
type AmenityReader interface {
	GetAmenities(ctx context.Context, pubID int64) ([]*types.PubAmenity, error)
}

// AmenityCache caches canonical amenity flags. A nil cache passes reads through.
type AmenityCache interface {
	Amenities(
		ctx context.Context, pubID int64, load func(context.Context) ([]*types.PubAmenity, error),
	) ([]*types.PubAmenity, error)
	ForgetAmenities(ctx context.Context, pubID int64) error
}

// AmenityView is an amenity with its canonical value and the votes behind it.
type AmenityView struct {
	Amenity enum.Amenity  `json:"amenity"`
	Value   *bool         `json:"value"`
	Claim   amenity.Claim `json:"claim"`
}

// AmenityService handles amenity voting and consensus.
type AmenityService struct {
	votes       AmenityVoteStore
	amenities   AmenityReader
	cache       AmenityCache
	activity    ActivityLogger
	policy      amenity.Policy
	concurrency int
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewAmenity creates a new amenity service.
func NewAmenity(
	votes AmenityVoteStore,
	amenities AmenityReader,
	cache AmenityCache,
	activity ActivityLogger,
	policies Policies,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AmenityService {
	return &AmenityService{
		votes:       votes,
		amenities:   amenities,
		cache:       cache,
		activity:    activity,
		policy:      policies.Amenity,
		concurrency: max(policies.ReconcileConcurrency, 1),
		metrics:     m,
		logger:      logger.Named("amenity_service"),
	}
}

// Vote casts a yes or no vote on an amenity and applies the resulting consensus in the same
// transaction.
func (s *AmenityService) Vote(
	ctx context.Context, pubID int64, key enum.Amenity, voterID uuid.UUID, choice enum.VoteChoice, now time.Time,
) (*models.AmenityOutcome, error) {
	if voterID == uuid.Nil {
		return nil, engine.ErrUnauthenticated
	}
	if !key.IsAAmenity() {
		return nil, engine.Invalid("amenity", "unknown amenity")
	}
	if !choice.IsAmenityChoice() {
		return nil, engine.Invalid("choice", "must be yes or no")
	}

	outcome, err := s.votes.CastAmenityVote(ctx, pubID, key, voterID, choice, now, s.policy.Reconcile)
	if err != nil {
		return nil, fmt.Errorf("failed to cast amenity vote: %w", storeError(err))
	}

	s.metrics.VoteCast(enum.EntityTypeAmenity, outcome.Vote.Outcome)
	s.applied(ctx, pubID, key, outcome, now)

	return outcome, nil
}

// Claims returns every amenity that has votes or a canonical value.
func (s *AmenityService) Claims(ctx context.Context, pubID int64) ([]*AmenityView, error) {
	flags, err := s.cache.Amenities(ctx, pubID, func(ctx context.Context) ([]*types.PubAmenity, error) {
		return s.amenities.GetAmenities(ctx, pubID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get amenities: %w", err)
	}

	claims, err := s.votes.GetAmenityClaims(ctx, pubID)
	if err != nil {
		return nil, fmt.Errorf("failed to get amenity claims: %w", err)
	}

	views := make(map[enum.Amenity]*AmenityView)
	for key, claim := range claims {
		views[key] = &AmenityView{Amenity: key, Claim: claim}
	}
	for _, flag := range flags {
		view, ok := views[flag.Amenity]
		if !ok {
			view = &AmenityView{Amenity: flag.Amenity}
			views[flag.Amenity] = view
		}
		value := flag.Value
		view.Value = &value
	}

	result := make([]*AmenityView, 0, len(views))
	for _, view := range views {
		result = append(result, view)
	}
	slices.SortFunc(result, func(a, b *AmenityView) int {
		return int(a.Amenity) - int(b.Amenity)
	})

	return result, nil
}

// Reconcile re-runs consensus for one amenity without a new vote. Running it twice gives the
// same decision and writes nothing the second time.
func (s *AmenityService) Reconcile(
	ctx context.Context, pubID int64, key enum.Amenity, now time.Time,
) (*models.AmenityOutcome, error) {
	if !key.IsAAmenity() {
		return nil, engine.Invalid("amenity", "unknown amenity")
	}

	outcome, err := s.votes.ReconcileAmenity(ctx, pubID, key, now, s.policy.Reconcile)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile amenity: %w", storeError(err))
	}

	s.applied(ctx, pubID, key, outcome, now)
	return outcome, nil
}

// ReconcilePub re-runs consensus for every amenity of a pub that has votes.
// It returns the number of flags that were overwritten.
func (s *AmenityService) ReconcilePub(ctx context.Context, pubID int64, now time.Time) (int, error) {
	claims, err := s.votes.GetAmenityClaims(ctx, pubID)
	if err != nil {
		return 0, fmt.Errorf("failed to get amenity claims: %w", err)
	}

	keys := make([]enum.Amenity, 0, len(claims))
	for key := range claims {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var overwritten int
	for _, key := range keys {
		outcome, err := s.Reconcile(ctx, pubID, key, now)
		if err != nil {
			return overwritten, err
		}
		if outcome.Decision.Overwrite {
			overwritten++
		}
	}

	return overwritten, nil
}

// ReconcilePubs re-runs consensus for many pubs at once with bounded concurrency.
// It returns the total number of overwritten flags.
func (s *AmenityService) ReconcilePubs(ctx context.Context, pubIDs []int64, now time.Time) (int, error) {
	p := pool.NewWithResults[int]().
		WithContext(ctx).
		WithMaxGoroutines(s.concurrency)

	for _, pubID := range pubIDs {
		p.Go(func(ctx context.Context) (int, error) {
			n, err := s.ReconcilePub(ctx, pubID, now)
			if err != nil {
				return n, fmt.Errorf("pub %d: %w", pubID, err)
			}
			return n, nil
		})
	}

	counts, err := p.Wait()

	var total int
	for _, n := range counts {
		total += n
	}
	if err != nil {
		return total, fmt.Errorf("failed to reconcile pubs: %w", err)
	}

	return total, nil
}

// applied records the side effects of a decision that overwrote a canonical flag.
func (s *AmenityService) applied(
	ctx context.Context, pubID int64, key enum.Amenity, outcome *models.AmenityOutcome, now time.Time,
) {
	if !outcome.Decision.Overwrite || outcome.Decision.Value == nil {
		return
	}

	s.metrics.AmenityOverwritten(key)

	if err := s.cache.ForgetAmenities(ctx, pubID); err != nil {
		s.logger.Warn("Failed to invalidate amenity cache",
			zap.Error(err),
			zap.Int64("pubID", pubID))
	}

	details := map[string]any{
		"amenity":   key.String(),
		"value":     *outcome.Decision.Value,
		"yes_votes": outcome.Claim.Yes,
		"no_votes":  outcome.Claim.No,
	}
	if outcome.Previous != nil {
		details["previous"] = *outcome.Previous
	}

	s.activity.Log(ctx, &types.ActivityLog{
		EntityType:        types.EntityRef(enum.EntityTypeAmenity),
		EntityID:          pubID,
		ActivityType:      enum.ActivityTypeAmenityOverwritten,
		ActivityTimestamp: now,
		Details:           details,
	})
}
