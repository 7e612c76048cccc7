package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pintwise/pintwise/internal/database/dbretry"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ReviewModel handles database operations for pub reviews.
type ReviewModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReview creates a new review model.
func NewReview(db *bun.DB, logger *zap.Logger) *ReviewModel {
	return &ReviewModel{
		db:     db,
		logger: logger.Named("db_review"),
	}
}

// Upsert stores a user's review of a pub, replacing their earlier one.
// A replaced review takes the moderation status of the new submission.
func (r *ReviewModel) Upsert(ctx context.Context, review *types.Review) error {
	return dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*types.Pub)(nil)).
			Where("id = ?", review.PubID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check pub: %w", err)
		}
		if !exists {
			return types.ErrPubNotFound
		}

		_, err = tx.NewInsert().
			Model(review).
			On("CONFLICT (pub_id, user_id) DO UPDATE").
			Set("comment = EXCLUDED.comment").
			Set("is_approved = EXCLUDED.is_approved").
			Set("updated_at = EXCLUDED.updated_at").
			Set("rating_atmosphere = EXCLUDED.rating_atmosphere").
			Set("rating_service = EXCLUDED.rating_service").
			Set("rating_value = EXCLUDED.rating_value").
			Set("rating_drink_quality = EXCLUDED.rating_drink_quality").
			Set("rating_food_quality = EXCLUDED.rating_food_quality").
			Set("rating_cleanliness = EXCLUDED.rating_cleanliness").
			Returning("id, created_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert review: %w", err)
		}

		return nil
	})
}

// Get retrieves a review by ID.
func (r *ReviewModel) Get(ctx context.Context, id int64) (*types.Review, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Review, error) {
		var review types.Review
		err := r.db.NewSelect().
			Model(&review).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrReviewNotFound
			}
			return nil, fmt.Errorf("failed to get review: %w", err)
		}
		return &review, nil
	})
}

// ListByPub retrieves the reviews of a pub, newest first. Pending reviews are
// left out when approvedOnly is set.
func (r *ReviewModel) ListByPub(
	ctx context.Context, pubID int64, approvedOnly bool,
) ([]*types.Review, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Review, error) {
		var reviews []*types.Review
		query := r.db.NewSelect().
			Model(&reviews).
			Where("pub_id = ?", pubID)

		if approvedOnly {
			query = query.Where("is_approved")
		}

		err := query.Order("created_at DESC", "id DESC").Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list reviews: %w", err)
		}
		return reviews, nil
	})
}

// List retrieves reviews ordered by ID, starting after the given ID.
func (r *ReviewModel) List(ctx context.Context, afterID int64, limit int) ([]*types.Review, error) {
	var reviews []*types.Review
	err := r.db.NewSelect().
		Model(&reviews).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Delete removes a review.
func (r *ReviewModel) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*types.Review)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return types.ErrReviewNotFound
	}
	return nil
}
