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

// PhotoModel handles database operations for pub photos.
type PhotoModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPhoto creates a new photo model.
func NewPhoto(db *bun.DB, logger *zap.Logger) *PhotoModel {
	return &PhotoModel{
		db:     db,
		logger: logger.Named("db_photo"),
	}
}

// Create inserts a new photo and fills in its ID. The pub must exist.
func (r *PhotoModel) Create(ctx context.Context, photo *types.Photo) error {
	return dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*types.Pub)(nil)).
			Where("id = ?", photo.PubID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check pub: %w", err)
		}
		if !exists {
			return types.ErrPubNotFound
		}

		_, err = tx.NewInsert().
			Model(photo).
			Returning("id").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create photo: %w", err)
		}
		return nil
	})
}

// Get retrieves a photo by ID.
func (r *PhotoModel) Get(ctx context.Context, id int64) (*types.Photo, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Photo, error) {
		var photo types.Photo
		err := r.db.NewSelect().
			Model(&photo).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrPhotoNotFound
			}
			return nil, fmt.Errorf("failed to get photo: %w", err)
		}
		return &photo, nil
	})
}

// ListByPub retrieves the photos of a pub, newest first, optionally approved ones only.
func (r *PhotoModel) ListByPub(
	ctx context.Context, pubID int64, approvedOnly bool,
) ([]*types.Photo, error) {
	var photos []*types.Photo
	query := r.db.NewSelect().
		Model(&photos).
		Where("pub_id = ?", pubID)

	if approvedOnly {
		query = query.Where("is_approved")
	}

	if err := query.Order("created_at DESC", "id DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

// Delete removes a photo record. The stored image is left to the storage lifecycle.
func (r *PhotoModel) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*types.Photo)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return types.ErrPhotoNotFound
	}
	return nil
}
