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
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ProfileModel handles database operations for user trust profiles.
type ProfileModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewProfile creates a new profile model.
func NewProfile(db *bun.DB, logger *zap.Logger) *ProfileModel {
	return &ProfileModel{
		db:     db,
		logger: logger.Named("db_profile"),
	}
}

// Get retrieves a profile by user ID.
func (r *ProfileModel) Get(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Profile, error) {
		var profile types.Profile
		err := r.db.NewSelect().
			Model(&profile).
			Where("user_id = ?", userID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrProfileNotFound
			}
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}
		return &profile, nil
	})
}

// Ensure creates an untrusted profile for a user if none exists.
func (r *ProfileModel) Ensure(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	_, err := r.db.NewInsert().
		Model(&types.Profile{
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure profile: %w", err)
	}
	return nil
}

// SetTrusted sets the trusted flag of a user, creating the profile if needed.
func (r *ProfileModel) SetTrusted(ctx context.Context, userID uuid.UUID, trusted bool) error {
	if err := setTrusted(ctx, r.db, userID, trusted); err != nil {
		return err
	}

	r.logger.Info("Updated profile trust",
		zap.String("userID", userID.String()),
		zap.Bool("trusted", trusted))
	return nil
}

// SetAdmin sets the admin flag of a user, creating the profile if needed.
func (r *ProfileModel) SetAdmin(ctx context.Context, userID uuid.UUID, admin bool) error {
	now := time.Now()
	_, err := r.db.NewInsert().
		Model(&types.Profile{
			UserID:    userID,
			IsAdmin:   admin,
			CreatedAt: now,
			UpdatedAt: now,
		}).
		On("CONFLICT (user_id) DO UPDATE").
		Set("is_admin = EXCLUDED.is_admin").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}
	return nil
}

// IncrementContributions adds to a user's accepted contribution count.
func (r *ProfileModel) IncrementContributions(ctx context.Context, userID uuid.UUID, n int32) error {
	return incrementContributions(ctx, r.db, userID, n)
}

func setTrusted(ctx context.Context, db bun.IDB, userID uuid.UUID, trusted bool) error {
	now := time.Now()
	_, err := db.NewInsert().
		Model(&types.Profile{
			UserID:    userID,
			IsTrusted: trusted,
			CreatedAt: now,
			UpdatedAt: now,
		}).
		On("CONFLICT (user_id) DO UPDATE").
		Set("is_trusted = EXCLUDED.is_trusted").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set trusted flag: %w", err)
	}
	return nil
}

func incrementContributions(ctx context.Context, db bun.IDB, userID uuid.UUID, n int32) error {
	now := time.Now()
	_, err := db.NewInsert().
		Model(&types.Profile{
			UserID:             userID,
			TotalContributions: n,
			CreatedAt:          now,
			UpdatedAt:          now,
		}).
		On("CONFLICT (user_id) DO UPDATE").
		Set("total_contributions = profile.total_contributions + EXCLUDED.total_contributions").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment contributions: %w", err)
	}
	return nil
}
