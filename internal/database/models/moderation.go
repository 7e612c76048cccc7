package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/dbretry"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine/moderation"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrNotModerated is returned when a decision targets an entity type without a queue.
var ErrNotModerated = errors.New("entity type is not moderated")

// ModerationOutcome is the applied result of an admin decision.
type ModerationOutcome struct {
	Decision    moderation.Decision
	SubmitterID uuid.UUID
	PubID       int64
}

// ModerationModel applies admin decisions to queued reviews and photos.
type ModerationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewModeration creates a new moderation model.
func NewModeration(db *bun.DB, logger *zap.Logger) *ModerationModel {
	return &ModerationModel{
		db:     db,
		logger: logger.Named("db_moderation"),
	}
}

// Decide applies an admin action to a queued item. The item row is locked while the
// decision is made, so two admins deciding the same item cannot both succeed.
// Approving credits the submitter with a contribution and approve-and-trust also
// promotes them, all in the same transaction.
func (r *ModerationModel) Decide(
	ctx context.Context, entityType enum.EntityType, id int64, action enum.ModerationAction,
) (*ModerationOutcome, error) {
	var outcome ModerationOutcome

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		var (
			model    any
			status   enum.ModerationStatus
			notFound error
		)

		switch entityType {
		case enum.EntityTypeReview:
			var review types.Review
			model, notFound = (*types.Review)(nil), types.ErrReviewNotFound
			err := tx.NewSelect().Model(&review).Where("id = ?", id).For("UPDATE").Scan(ctx)
			if err != nil {
				return lockError(err, notFound)
			}
			status, outcome.SubmitterID, outcome.PubID = review.Status(), review.UserID, review.PubID
		case enum.EntityTypePhoto:
			var photo types.Photo
			model, notFound = (*types.Photo)(nil), types.ErrPhotoNotFound
			err := tx.NewSelect().Model(&photo).Where("id = ?", id).For("UPDATE").Scan(ctx)
			if err != nil {
				return lockError(err, notFound)
			}
			status, outcome.SubmitterID, outcome.PubID = photo.Status(), photo.UserID, photo.PubID
		case enum.EntityTypePub, enum.EntityTypePrice, enum.EntityTypeDeal, enum.EntityTypeAmenity:
			return fmt.Errorf("%w: %s", ErrNotModerated, entityType)
		default:
			return fmt.Errorf("%w: %d", ErrNotModerated, entityType)
		}

		decision, err := moderation.Decide(status, action)
		if err != nil {
			return err
		}
		outcome.Decision = decision

		if decision.Delete {
			if _, err := tx.NewDelete().Model(model).Where("id = ?", id).Exec(ctx); err != nil {
				return fmt.Errorf("failed to delete %s: %w", entityType, err)
			}
			return nil
		}

		_, err = tx.NewUpdate().
			Model(model).
			Set("is_approved = ?", decision.Status == enum.ModerationStatusApproved).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", entityType, err)
		}

		if err := incrementContributions(ctx, tx, outcome.SubmitterID, 1); err != nil {
			return err
		}

		if decision.PromoteSubmitter {
			if err := setTrusted(ctx, tx, outcome.SubmitterID, true); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Applied moderation decision",
		zap.String("entityType", entityType.String()),
		zap.Int64("id", id),
		zap.String("action", action.String()),
		zap.String("submitterID", outcome.SubmitterID.String()))

	return &outcome, nil
}

// GetPending retrieves the moderation queue, oldest first, across reviews and photos.
func (r *ModerationModel) GetPending(ctx context.Context, limit int) ([]*types.PendingItem, error) {
	var reviews []*types.Review
	err := r.db.NewSelect().
		Model(&reviews).
		Where("NOT is_approved").
		Order("created_at ASC", "id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending reviews: %w", err)
	}

	var photos []*types.Photo
	err = r.db.NewSelect().
		Model(&photos).
		Where("NOT is_approved").
		Order("created_at ASC", "id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending photos: %w", err)
	}

	return mergePending(reviews, photos, limit), nil
}

// mergePending interleaves two oldest-first lists into one queue of at most limit items.
func mergePending(reviews []*types.Review, photos []*types.Photo, limit int) []*types.PendingItem {
	items := make([]*types.PendingItem, 0, min(limit, len(reviews)+len(photos)))

	i, j := 0, 0
	for len(items) < limit && (i < len(reviews) || j < len(photos)) {
		takeReview := j >= len(photos) ||
			(i < len(reviews) && !reviews[i].CreatedAt.After(photos[j].CreatedAt))

		if takeReview {
			rv := reviews[i]
			items = append(items, &types.PendingItem{
				EntityType: enum.EntityTypeReview,
				ID:         rv.ID,
				PubID:      rv.PubID,
				UserID:     rv.UserID,
				CreatedAt:  rv.CreatedAt,
				Review:     rv,
			})
			i++
			continue
		}

		p := photos[j]
		items = append(items, &types.PendingItem{
			EntityType: enum.EntityTypePhoto,
			ID:         p.ID,
			PubID:      p.PubID,
			UserID:     p.UserID,
			CreatedAt:  p.CreatedAt,
			Photo:      p,
		})
		j++
	}

	return items
}

func lockError(err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return fmt.Errorf("failed to lock item: %w", err)
}
