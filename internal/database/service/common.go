package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/models"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/engine/moderation"
)

// ProfileReader reads the trust flags of a user.
type ProfileReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
}

// ContributionCounter counts accepted submissions on a profile.
type ContributionCounter interface {
	IncrementContributions(ctx context.Context, userID uuid.UUID, n int32) error
}

// ActivityLogger appends audit rows. Failures are logged by the implementation and never returned.
type ActivityLogger interface {
	Log(ctx context.Context, log *types.ActivityLog)
	LogBatch(ctx context.Context, logs []*types.ActivityLog)
}

// storeError translates storage sentinels into engine error kinds so callers only need to
// match on the engine package.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrPubNotFound),
		errors.Is(err, types.ErrPriceNotFound),
		errors.Is(err, types.ErrReviewNotFound),
		errors.Is(err, types.ErrPhotoNotFound),
		errors.Is(err, types.ErrReportNotFound):
		return fmt.Errorf("%w: %w", engine.ErrNotFound, err)
	case errors.Is(err, models.ErrReportChanged):
		return fmt.Errorf("%w: %w", engine.ErrInvalidTransition, err)
	case errors.Is(err, models.ErrNotModerated):
		return engine.Invalid("entity_type", err.Error())
	}
	return err
}

// readTrust looks up the trust flags of a user. A user without a profile is untrusted.
// Any other failure fails closed.
func readTrust(ctx context.Context, profiles ProfileReader, userID uuid.UUID) (moderation.Trust, error) {
	profile, err := profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrProfileNotFound) {
			return moderation.Trust{}, nil
		}
		return moderation.Trust{}, fmt.Errorf("%w: %w", engine.ErrDependencyUnavailable, err)
	}

	return moderation.Trust{
		IsTrusted: profile.IsTrusted,
		IsAdmin:   profile.IsAdmin,
	}, nil
}

// requireAdmin returns nil only when the user is an admin.
func requireAdmin(ctx context.Context, profiles ProfileReader, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return engine.ErrUnauthenticated
	}

	trust, err := readTrust(ctx, profiles, userID)
	if err != nil {
		return err
	}
	if !trust.IsAdmin {
		return fmt.Errorf("%w: admin role required", engine.ErrForbidden)
	}

	return nil
}
