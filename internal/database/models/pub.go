package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pintwise/pintwise/internal/database/dbretry"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// PubModel handles database operations for pubs, their opening hours and amenity flags.
type PubModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPub creates a new pub model.
func NewPub(db *bun.DB, logger *zap.Logger) *PubModel {
	return &PubModel{
		db:     db,
		logger: logger.Named("db_pub"),
	}
}

// Create inserts a new pub and fills in its ID.
func (r *PubModel) Create(ctx context.Context, pub *types.Pub) error {
	now := time.Now()
	pub.CreatedAt = now
	pub.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(pub).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create pub: %w", err)
	}

	r.logger.Debug("Created pub", zap.Int64("pubID", pub.ID), zap.String("name", pub.Name))
	return nil
}

// Get retrieves a pub by ID.
func (r *PubModel) Get(ctx context.Context, id int64) (*types.Pub, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Pub, error) {
		var pub types.Pub
		err := r.db.NewSelect().
			Model(&pub).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrPubNotFound
			}
			return nil, fmt.Errorf("failed to get pub: %w", err)
		}
		return &pub, nil
	})
}

// List retrieves pubs ordered by ID, starting after the given ID.
func (r *PubModel) List(ctx context.Context, afterID int64, limit int) ([]*types.Pub, error) {
	var pubs []*types.Pub
	err := r.db.NewSelect().
		Model(&pubs).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pubs: %w", err)
	}
	return pubs, nil
}

// SetPermanentlyClosed marks a pub as permanently closed or reopened.
func (r *PubModel) SetPermanentlyClosed(ctx context.Context, id int64, closed bool) error {
	result, err := r.db.NewUpdate().
		Model((*types.Pub)(nil)).
		Set("permanently_closed = ?", closed).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update pub: %w", err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return types.ErrPubNotFound
	}
	return nil
}

// GetOpeningHours retrieves the stored weekdays of a pub's schedule.
func (r *PubModel) GetOpeningHours(ctx context.Context, pubID int64) ([]*types.PubOpeningHours, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.PubOpeningHours, error) {
		var hours []*types.PubOpeningHours
		err := r.db.NewSelect().
			Model(&hours).
			Where("pub_id = ?", pubID).
			Order("weekday ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get opening hours: %w", err)
		}
		return hours, nil
	})
}

// SetOpeningHours replaces a pub's schedule.
func (r *PubModel) SetOpeningHours(ctx context.Context, pubID int64, hours []*types.PubOpeningHours) error {
	return dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		// Lock the pub so concurrent schedule edits apply one after another
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

		_, err = tx.NewDelete().
			Model((*types.PubOpeningHours)(nil)).
			Where("pub_id = ?", pubID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear opening hours: %w", err)
		}

		if len(hours) > 0 {
			for _, h := range hours {
				h.PubID = pubID
			}
			if _, err := tx.NewInsert().Model(&hours).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert opening hours: %w", err)
			}
		}

		_, err = tx.NewUpdate().
			Model((*types.Pub)(nil)).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", pubID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to touch pub: %w", err)
		}

		return nil
	})
}

// GetAmenities retrieves the canonical amenity flags of a pub.
func (r *PubModel) GetAmenities(ctx context.Context, pubID int64) ([]*types.PubAmenity, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.PubAmenity, error) {
		var amenities []*types.PubAmenity
		err := r.db.NewSelect().
			Model(&amenities).
			Where("pub_id = ?", pubID).
			Order("amenity ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get amenities: %w", err)
		}
		return amenities, nil
	})
}

// GetAmenitiesForPubs retrieves amenity flags for many pubs keyed by pub ID.
func (r *PubModel) GetAmenitiesForPubs(ctx context.Context, pubIDs []int64) (map[int64][]*types.PubAmenity, error) {
	result := make(map[int64][]*types.PubAmenity)
	if len(pubIDs) == 0 {
		return result, nil
	}

	var amenities []*types.PubAmenity
	err := r.db.NewSelect().
		Model(&amenities).
		Where("pub_id IN (?)", bun.In(pubIDs)).
		Order("pub_id ASC", "amenity ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get amenities: %w", err)
	}

	for _, a := range amenities {
		result[a.PubID] = append(result[a.PubID], a)
	}
	return result, nil
}
