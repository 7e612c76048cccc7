package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/engine/tally"
	"github.com/pintwise/pintwise/internal/metrics"
	"go.uber.org/zap"
)

// PriceVoteStore stores up/down votes on prices.
type PriceVoteStore interface {
	CastPriceVote(
		ctx context.Context, priceID int64, voterID uuid.UUID, choice enum.VoteChoice, now time.Time,
	) (tally.Result, error)
	GetPriceVoteChoices(ctx context.Context, priceID int64) ([]enum.VoteChoice, error)
}

// VoteService handles price vote business logic.
type VoteService struct {
	votes   PriceVoteStore
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewVote creates a new vote service.
func NewVote(votes PriceVoteStore, m *metrics.Metrics, logger *zap.Logger) *VoteService {
	return &VoteService{
		votes:   votes,
		metrics: m,
		logger:  logger.Named("vote_service"),
	}
}

// CastPriceVote records an up or down vote on a price. Casting the same choice again
// clears the vote.
func (s *VoteService) CastPriceVote(
	ctx context.Context, priceID int64, voterID uuid.UUID, choice enum.VoteChoice, now time.Time,
) (tally.Result, error) {
	if voterID == uuid.Nil {
		return tally.Result{}, engine.ErrUnauthenticated
	}
	if !choice.IsPriceChoice() {
		return tally.Result{}, engine.Invalid("choice", "must be up or down")
	}

	result, err := s.votes.CastPriceVote(ctx, priceID, voterID, choice, now)
	if err != nil {
		return tally.Result{}, fmt.Errorf("failed to cast price vote: %w", storeError(err))
	}

	s.metrics.VoteCast(enum.EntityTypePrice, result.Outcome)
	s.logger.Debug("Price vote cast",
		zap.Int64("priceID", priceID),
		zap.String("voterID", voterID.String()),
		zap.String("choice", choice.String()),
		zap.String("outcome", result.Outcome.String()))

	return result, nil
}

// PriceTally recounts the votes on a price from the vote rows.
func (s *VoteService) PriceTally(ctx context.Context, priceID int64) (tally.Tally, error) {
	choices, err := s.votes.GetPriceVoteChoices(ctx, priceID)
	if err != nil {
		return tally.Tally{}, fmt.Errorf("failed to count price votes: %w", err)
	}
	return tally.Count(choices), nil
}
