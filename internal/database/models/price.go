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
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// VerificationOutcome describes how a verification changed the accurate count of a price.
type VerificationOutcome struct {
	Previous *types.PriceVerification
	Delta    int32
}

// PriceModel handles database operations for prices, deals and their verifications.
type PriceModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPrice creates a new price model.
func NewPrice(db *bun.DB, logger *zap.Logger) *PriceModel {
	return &PriceModel{
		db:     db,
		logger: logger.Named("db_price"),
	}
}

// Create inserts a new price and fills in its ID. The pub must exist.
func (r *PriceModel) Create(ctx context.Context, price *types.Price) error {
	return dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*types.Pub)(nil)).
			Where("id = ?", price.PubID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check pub: %w", err)
		}
		if !exists {
			return types.ErrPubNotFound
		}

		_, err = tx.NewInsert().
			Model(price).
			Returning("id").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create price: %w", err)
		}

		return nil
	})
}

// Get retrieves a price by ID.
func (r *PriceModel) Get(ctx context.Context, id int64) (*types.Price, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Price, error) {
		var price types.Price
		err := r.db.NewSelect().
			Model(&price).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrPriceNotFound
			}
			return nil, fmt.Errorf("failed to get price: %w", err)
		}
		return &price, nil
	})
}

// ListByPub retrieves the prices of a pub, newest first.
func (r *PriceModel) ListByPub(ctx context.Context, pubID int64) ([]*types.Price, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Price, error) {
		var prices []*types.Price
		err := r.db.NewSelect().
			Model(&prices).
			Where("pub_id = ?", pubID).
			Order("created_at DESC", "id DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list prices: %w", err)
		}
		return prices, nil
	})
}

// List retrieves prices ordered by ID, starting after the given ID.
func (r *PriceModel) List(ctx context.Context, afterID int64, limit int) ([]*types.Price, error) {
	var prices []*types.Price
	err := r.db.NewSelect().
		Model(&prices).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	return prices, nil
}

// UpdateAmount changes the amount of a price.
func (r *PriceModel) UpdateAmount(ctx context.Context, id int64, amount int64, now time.Time) error {
	result, err := r.db.NewUpdate().
		Model((*types.Price)(nil)).
		Set("amount = ?", amount).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update price amount: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return types.ErrPriceNotFound
	}
	return nil
}

// ExpireDeal sets a deal's end date. Returns false if the deal already ended on or before now.
func (r *PriceModel) ExpireDeal(ctx context.Context, id int64, now time.Time) (bool, error) {
	result, err := r.db.NewUpdate().
		Model((*types.Price)(nil)).
		Set("deal_end_date = ?", now).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("is_deal").
		Where("deal_end_date IS NULL OR deal_end_date > ?", now).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to expire deal: %w", err)
	}

	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// Delete removes a price together with its votes and verifications.
func (r *PriceModel) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*types.Price)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete price: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return types.ErrPriceNotFound
	}

	r.logger.Debug("Deleted price", zap.Int64("priceID", id))
	return nil
}

// UpsertVerification stores a user's verification of a price, replacing any earlier one.
// The accurate count and last verified time of the price change in the same transaction.
func (r *PriceModel) UpsertVerification(
	ctx context.Context, verification *types.PriceVerification,
) (*VerificationOutcome, error) {
	var outcome VerificationOutcome

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		// Lock the price row
		var id int64
		err := tx.NewSelect().
			Model((*types.Price)(nil)).
			Column("id").
			Where("id = ?", verification.PriceID).
			For("UPDATE").
			Scan(ctx, &id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return types.ErrPriceNotFound
			}
			return fmt.Errorf("failed to lock price: %w", err)
		}

		// Get the user's previous verification
		var previous types.PriceVerification
		err = tx.NewSelect().
			Model(&previous).
			Where("price_id = ?", verification.PriceID).
			Where("user_id = ?", verification.UserID).
			Scan(ctx)
		switch {
		case err == nil:
			outcome.Previous = &previous
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("failed to get previous verification: %w", err)
		}

		if verification.IsAccurate {
			outcome.Delta++
		}
		if outcome.Previous != nil && outcome.Previous.IsAccurate {
			outcome.Delta--
		}

		_, err = tx.NewInsert().
			Model(verification).
			On("CONFLICT (price_id, user_id) DO UPDATE").
			Set("is_accurate = EXCLUDED.is_accurate").
			Set("proposed_amount = EXCLUDED.proposed_amount").
			Set("verified_at = EXCLUDED.verified_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert verification: %w", err)
		}

		lastVerified := tx.NewSelect().
			Model((*types.PriceVerification)(nil)).
			ColumnExpr("MAX(verified_at)").
			Where("price_id = ?", verification.PriceID).
			Where("is_accurate")

		_, err = tx.NewUpdate().
			Model((*types.Price)(nil)).
			Set("verification_count = verification_count + ?", outcome.Delta).
			Set("last_verified_at = (?)", lastVerified).
			Where("id = ?", verification.PriceID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update verification counters: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &outcome, nil
}

// GetVerifications retrieves every verification of a price.
func (r *PriceModel) GetVerifications(ctx context.Context, priceID int64) ([]*types.PriceVerification, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.PriceVerification, error) {
		var verifications []*types.PriceVerification
		err := r.db.NewSelect().
			Model(&verifications).
			Where("price_id = ?", priceID).
			Order("verified_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get verifications: %w", err)
		}
		return verifications, nil
	})
}

// GetVerificationsForPrices retrieves verifications for many prices keyed by price ID.
func (r *PriceModel) GetVerificationsForPrices(
	ctx context.Context, priceIDs []int64,
) (map[int64][]*types.PriceVerification, error) {
	result := make(map[int64][]*types.PriceVerification)
	if len(priceIDs) == 0 {
		return result, nil
	}

	var verifications []*types.PriceVerification
	err := r.db.NewSelect().
		Model(&verifications).
		Where("price_id IN (?)", bun.In(priceIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get verifications: %w", err)
	}

	for _, v := range verifications {
		result[v.PriceID] = append(result[v.PriceID], v)
	}
	return result, nil
}

// HasVerified reports whether a user has verified a price.
func (r *PriceModel) HasVerified(ctx context.Context, priceID int64, userID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*types.PriceVerification)(nil)).
		Where("price_id = ?", priceID).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check verification: %w", err)
	}
	return exists, nil
}

// FindCounterDrift finds prices whose cached counters disagree with their rows.
func (r *PriceModel) FindCounterDrift(ctx context.Context, limit int) ([]*types.CounterDrift, error) {
	var drifts []*types.CounterDrift
	err := r.db.NewRaw(`
		SELECT p.id AS price_id,
			p.upvotes AS stored_upvotes,
			p.downvotes AS stored_downvotes,
			p.verification_count AS stored_verification_count,
			COALESCE(v.up, 0) AS actual_upvotes,
			COALESCE(v.down, 0) AS actual_downvotes,
			COALESCE(c.accurate, 0) AS actual_verification_count
		FROM prices p
		LEFT JOIN (
			SELECT price_id,
				COUNT(*) FILTER (WHERE choice = ?) AS up,
				COUNT(*) FILTER (WHERE choice = ?) AS down
			FROM price_votes
			GROUP BY price_id
		) v ON v.price_id = p.id
		LEFT JOIN (
			SELECT price_id, COUNT(*) AS accurate
			FROM price_verifications
			WHERE is_accurate
			GROUP BY price_id
		) c ON c.price_id = p.id
		WHERE p.upvotes <> COALESCE(v.up, 0)
			OR p.downvotes <> COALESCE(v.down, 0)
			OR p.verification_count <> COALESCE(c.accurate, 0)
		ORDER BY p.id
		LIMIT ?
	`, enum.VoteChoiceUp, enum.VoteChoiceDown, limit).Scan(ctx, &drifts)
	if err != nil {
		return nil, fmt.Errorf("failed to find counter drift: %w", err)
	}
	return drifts, nil
}

// RepairCounters recomputes the cached counters of the given prices from their rows.
func (r *PriceModel) RepairCounters(ctx context.Context, priceIDs []int64) (int64, error) {
	if len(priceIDs) == 0 {
		return 0, nil
	}

	var repaired int64
	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		// Lock the prices so no vote lands between the recount and the write
		var locked []int64
		err := tx.NewSelect().
			Model((*types.Price)(nil)).
			Column("id").
			Where("id IN (?)", bun.In(priceIDs)).
			Order("id ASC").
			For("UPDATE").
			Scan(ctx, &locked)
		if err != nil {
			return fmt.Errorf("failed to lock prices: %w", err)
		}
		if len(locked) == 0 {
			return nil
		}

		result, err := tx.NewRaw(`
			UPDATE prices p SET
				upvotes = (SELECT COUNT(*) FROM price_votes WHERE price_id = p.id AND choice = ?),
				downvotes = (SELECT COUNT(*) FROM price_votes WHERE price_id = p.id AND choice = ?),
				verification_count = (
					SELECT COUNT(*) FROM price_verifications WHERE price_id = p.id AND is_accurate
				),
				last_verified_at = (
					SELECT MAX(verified_at) FROM price_verifications WHERE price_id = p.id AND is_accurate
				)
			WHERE p.id IN (?)
		`, enum.VoteChoiceUp, enum.VoteChoiceDown, bun.In(locked)).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to repair counters: %w", err)
		}

		repaired, _ = result.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("Repaired price counters", zap.Int64("count", repaired))
	return repaired, nil
}
