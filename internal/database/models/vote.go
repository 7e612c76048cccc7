package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/dbretry"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine/amenity"
	"github.com/pintwise/pintwise/internal/engine/tally"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AmenityDecider turns the current tally of a (pub, amenity) pair and its canonical flag
// into a consensus decision.
type AmenityDecider func(claim amenity.Claim, current *bool) amenity.Decision

// AmenityOutcome is the result of casting an amenity vote or re-running reconciliation.
type AmenityOutcome struct {
	Vote     tally.Result
	Claim    amenity.Claim
	Previous *bool
	Decision amenity.Decision
}

// VoteModel handles database operations for price and amenity votes.
type VoteModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVote creates a new vote model.
func NewVote(db *bun.DB, logger *zap.Logger) *VoteModel {
	return &VoteModel{
		db:     db,
		logger: logger.Named("db_vote"),
	}
}

// CastPriceVote applies a vote to a price. The vote row and the price counters change in
// the same transaction, and concurrent casts on a price are serialized by locking its row.
func (r *VoteModel) CastPriceVote(
	ctx context.Context, priceID int64, voterID uuid.UUID, choice enum.VoteChoice, now time.Time,
) (tally.Result, error) {
	var result tally.Result

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		// Lock the price row
		var id int64
		err := tx.NewSelect().
			Model((*types.Price)(nil)).
			Column("id").
			Where("id = ?", priceID).
			For("UPDATE").
			Scan(ctx, &id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return types.ErrPriceNotFound
			}
			return fmt.Errorf("failed to lock price: %w", err)
		}

		// Get the voter's existing vote
		var existing types.PriceVote
		var current *enum.VoteChoice
		err = tx.NewSelect().
			Model(&existing).
			Where("price_id = ?", priceID).
			Where("voter_id = ?", voterID).
			Scan(ctx)
		switch {
		case err == nil:
			current = &existing.Choice
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("failed to get existing vote: %w", err)
		}

		result = tally.Apply(current, choice)

		vote := &types.PriceVote{
			PriceID: priceID,
			Vote: types.Vote{
				VoterID:   voterID,
				Choice:    choice,
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		if err := r.writeVote(ctx, tx, vote, result.Outcome); err != nil {
			return err
		}

		// Apply the counter delta
		_, err = tx.NewUpdate().
			Model((*types.Price)(nil)).
			Set("upvotes = upvotes + ?", result.Delta.Positive).
			Set("downvotes = downvotes + ?", result.Delta.Negative).
			Where("id = ?", priceID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update price counters: %w", err)
		}

		return nil
	})
	if err != nil {
		return tally.Result{}, err
	}

	r.logger.Debug("Cast price vote",
		zap.Int64("priceID", priceID),
		zap.String("voterID", voterID.String()),
		zap.String("choice", choice.String()),
		zap.String("outcome", result.Outcome.String()))

	return result, nil
}

// writeVote inserts, updates or deletes a vote row according to the outcome.
func (r *VoteModel) writeVote(ctx context.Context, tx bun.Tx, vote any, outcome enum.VoteOutcome) error {
	var err error

	switch outcome {
	case enum.VoteOutcomeAdded:
		_, err = tx.NewInsert().Model(vote).Exec(ctx)
	case enum.VoteOutcomeReplaced:
		_, err = tx.NewUpdate().
			Model(vote).
			Column("choice", "updated_at").
			WherePK().
			Exec(ctx)
	case enum.VoteOutcomeRemoved:
		_, err = tx.NewDelete().Model(vote).WherePK().Exec(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to write vote (%s): %w", outcome, err)
	}

	return nil
}

// GetPriceVoteChoices retrieves every stored choice on a price.
func (r *VoteModel) GetPriceVoteChoices(ctx context.Context, priceID int64) ([]enum.VoteChoice, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]enum.VoteChoice, error) {
		var choices []enum.VoteChoice
		err := r.db.NewSelect().
			Model((*types.PriceVote)(nil)).
			Column("choice").
			Where("price_id = ?", priceID).
			Scan(ctx, &choices)
		if err != nil {
			return nil, fmt.Errorf("failed to get price votes: %w", err)
		}
		return choices, nil
	})
}

// GetPriceVote retrieves a voter's current choice on a price, or nil if there is none.
func (r *VoteModel) GetPriceVote(ctx context.Context, priceID int64, voterID uuid.UUID) (*enum.VoteChoice, error) {
	var vote types.PriceVote
	err := r.db.NewSelect().
		Model(&vote).
		Where("price_id = ?", priceID).
		Where("voter_id = ?", voterID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get price vote: %w", err)
	}
	return &vote.Choice, nil
}

// CastAmenityVote applies a yes/no vote on a pub amenity and reconciles the canonical flag
// in the same transaction.
func (r *VoteModel) CastAmenityVote(
	ctx context.Context, pubID int64, key enum.Amenity, voterID uuid.UUID, choice enum.VoteChoice,
	now time.Time, decide AmenityDecider,
) (*AmenityOutcome, error) {
	var outcome *AmenityOutcome

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		if err := lockPub(ctx, tx, pubID); err != nil {
			return err
		}

		// Get the voter's existing vote
		var existing types.AmenityVote
		var current *enum.VoteChoice
		err := tx.NewSelect().
			Model(&existing).
			Where("pub_id = ?", pubID).
			Where("amenity = ?", key).
			Where("voter_id = ?", voterID).
			Scan(ctx)
		switch {
		case err == nil:
			current = &existing.Choice
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("failed to get existing vote: %w", err)
		}

		result := tally.Apply(current, choice)

		vote := &types.AmenityVote{
			PubID:   pubID,
			Amenity: key,
			Vote: types.Vote{
				VoterID:   voterID,
				Choice:    choice,
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		if err := r.writeVote(ctx, tx, vote, result.Outcome); err != nil {
			return err
		}

		outcome, err = r.reconcile(ctx, tx, pubID, key, now, decide)
		if err != nil {
			return err
		}
		outcome.Vote = result

		return nil
	})
	if err != nil {
		return nil, err
	}

	return outcome, nil
}

// ReconcileAmenity re-runs consensus for a (pub, amenity) pair without casting a vote.
func (r *VoteModel) ReconcileAmenity(
	ctx context.Context, pubID int64, key enum.Amenity, now time.Time, decide AmenityDecider,
) (*AmenityOutcome, error) {
	var outcome *AmenityOutcome

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		if err := lockPub(ctx, tx, pubID); err != nil {
			return err
		}

		var err error
		outcome, err = r.reconcile(ctx, tx, pubID, key, now, decide)
		return err
	})
	if err != nil {
		return nil, err
	}

	return outcome, nil
}

// reconcile rebuilds the claim from the vote rows and writes the decided flag if it changed.
func (r *VoteModel) reconcile(
	ctx context.Context, tx bun.Tx, pubID int64, key enum.Amenity, now time.Time, decide AmenityDecider,
) (*AmenityOutcome, error) {
	var choices []enum.VoteChoice
	err := tx.NewSelect().
		Model((*types.AmenityVote)(nil)).
		Column("choice").
		Where("pub_id = ?", pubID).
		Where("amenity = ?", key).
		Scan(ctx, &choices)
	if err != nil {
		return nil, fmt.Errorf("failed to get amenity votes: %w", err)
	}

	var previous *bool
	var stored types.PubAmenity
	err = tx.NewSelect().
		Model(&stored).
		Where("pub_id = ?", pubID).
		Where("amenity = ?", key).
		Scan(ctx)
	switch {
	case err == nil:
		previous = &stored.Value
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to get amenity flag: %w", err)
	}

	claim := amenity.FromTally(tally.Count(choices))
	decision := decide(claim, previous)

	if decision.Overwrite && decision.Value != nil {
		_, err = tx.NewInsert().
			Model(&types.PubAmenity{
				PubID:     pubID,
				Amenity:   key,
				Value:     *decision.Value,
				UpdatedAt: now,
			}).
			On("CONFLICT (pub_id, amenity) DO UPDATE").
			Set("value = EXCLUDED.value").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to write amenity flag: %w", err)
		}

		r.logger.Info("Amenity consensus changed",
			zap.Int64("pubID", pubID),
			zap.String("amenity", key.String()),
			zap.Bool("value", *decision.Value),
			zap.Int("yes", claim.Yes),
			zap.Int("no", claim.No))
	}

	return &AmenityOutcome{
		Claim:    claim,
		Previous: previous,
		Decision: decision,
	}, nil
}

// GetAmenityClaims summarises the votes on every amenity of a pub.
func (r *VoteModel) GetAmenityClaims(ctx context.Context, pubID int64) (map[enum.Amenity]amenity.Claim, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (map[enum.Amenity]amenity.Claim, error) {
		var votes []*types.AmenityVote
		err := r.db.NewSelect().
			Model(&votes).
			Column("amenity", "choice").
			Where("pub_id = ?", pubID).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get amenity votes: %w", err)
		}

		choices := make(map[enum.Amenity][]enum.VoteChoice)
		for _, v := range votes {
			choices[v.Amenity] = append(choices[v.Amenity], v.Choice)
		}

		claims := make(map[enum.Amenity]amenity.Claim, len(choices))
		for key, c := range choices {
			claims[key] = amenity.FromTally(tally.Count(c))
		}
		return claims, nil
	})
}

// lockPub locks a pub row for the rest of the transaction.
func lockPub(ctx context.Context, tx bun.Tx, pubID int64) error {
	var id int64
	err := tx.NewSelect().
		Model((*types.Pub)(nil)).
		Column("id").
		Where("id = ?", pubID).
		For("UPDATE").
		Scan(ctx, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ErrPubNotFound
		}
		return fmt.Errorf("failed to lock pub: %w", err)
	}
	return nil
}
