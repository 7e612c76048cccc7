package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/models"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/engine/moderation"
	"github.com/pintwise/pintwise/internal/metrics"
	"github.com/pintwise/pintwise/pkg/utils"
	"go.uber.org/zap"
)

const (
	// MaxCommentLength bounds a review comment.
	MaxCommentLength = 2000
	// MaxCaptionLength bounds a photo caption.
	MaxCaptionLength = 280
	// MaxStorageKeyLength bounds the external storage key of a photo.
	MaxStorageKeyLength = 512
)

// ReviewStore stores reviews.
type ReviewStore interface {
	Upsert(ctx context.Context, review *types.Review) error
	ListByPub(ctx context.Context, pubID int64, approvedOnly bool) ([]*types.Review, error)
	Delete(ctx context.Context, id int64) error
}

// PhotoStore stores photo records.
type PhotoStore interface {
	Create(ctx context.Context, photo *types.Photo) error
	ListByPub(ctx context.Context, pubID int64, approvedOnly bool) ([]*types.Photo, error)
	Delete(ctx context.Context, id int64) error
}

// ModerationStore applies admin decisions and lists the queue.
type ModerationStore interface {
	Decide(
		ctx context.Context, entityType enum.EntityType, id int64, action enum.ModerationAction,
	) (*models.ModerationOutcome, error)
	GetPending(ctx context.Context, limit int) ([]*types.PendingItem, error)
}

// TrustStore changes the trust flag of a profile.
type TrustStore interface {
	SetTrusted(ctx context.Context, userID uuid.UUID, trusted bool) error
}

// ReviewSubmission is a new or updated review.
type ReviewSubmission struct {
	PubID   int64
	UserID  uuid.UUID
	Comment string
	Ratings types.Ratings
}

// PhotoSubmission is a new photo whose bytes are already in external storage.
type PhotoSubmission struct {
	PubID      int64
	UserID     uuid.UUID
	StorageKey string
	Caption    string
}

// ModerationService gates user content and applies admin decisions.
type ModerationService struct {
	reviews       ReviewStore
	photos        PhotoStore
	moderation    ModerationStore
	profiles      ProfileReader
	trust         TrustStore
	contributions ContributionCounter
	activity      ActivityLogger
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewModeration creates a new moderation service.
func NewModeration(
	reviews ReviewStore,
	photos PhotoStore,
	moderation ModerationStore,
	profiles ProfileReader,
	trust TrustStore,
	contributions ContributionCounter,
	activity ActivityLogger,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ModerationService {
	return &ModerationService{
		reviews:       reviews,
		photos:        photos,
		moderation:    moderation,
		profiles:      profiles,
		trust:         trust,
		contributions: contributions,
		activity:      activity,
		metrics:       m,
		logger:        logger.Named("moderation_service"),
	}
}

// SubmitReview creates or replaces the user's review of a pub. Every submission goes through
// the gate with the user's current trust level, including edits of an approved review.
func (s *ModerationService) SubmitReview(
	ctx context.Context, sub *ReviewSubmission, now time.Time,
) (*types.Review, error) {
	if sub.UserID == uuid.Nil {
		return nil, engine.ErrUnauthenticated
	}

	comment := utils.CompressWhitespacePreserveNewlines(strings.TrimSpace(sub.Comment))
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, engine.Invalid("comment", fmt.Sprintf("must be at most %d characters", MaxCommentLength))
	}
	if err := validateRatings(sub.Ratings, comment); err != nil {
		return nil, err
	}

	status, err := s.gate(ctx, enum.EntityTypeReview, sub.UserID)
	if err != nil {
		return nil, err
	}

	review := &types.Review{
		PubID:      sub.PubID,
		UserID:     sub.UserID,
		Comment:    comment,
		IsApproved: status == enum.ModerationStatusApproved,
		CreatedAt:  now,
		UpdatedAt:  now,
		Ratings:    sub.Ratings,
	}
	if err := s.reviews.Upsert(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", storeError(err))
	}

	s.accepted(ctx, enum.EntityTypeReview, review.ID, sub.UserID, status)
	return review, nil
}

// SubmitPhoto records a photo already uploaded to external storage.
func (s *ModerationService) SubmitPhoto(
	ctx context.Context, sub *PhotoSubmission, now time.Time,
) (*types.Photo, error) {
	if sub.UserID == uuid.Nil {
		return nil, engine.ErrUnauthenticated
	}

	key := strings.TrimSpace(sub.StorageKey)
	if key == "" {
		return nil, engine.Invalid("storage_key", "required")
	}
	if len(key) > MaxStorageKeyLength {
		return nil, engine.Invalid("storage_key", fmt.Sprintf("must be at most %d bytes", MaxStorageKeyLength))
	}
	caption := utils.CompressAllWhitespace(sub.Caption)
	if utf8.RuneCountInString(caption) > MaxCaptionLength {
		return nil, engine.Invalid("caption", fmt.Sprintf("must be at most %d characters", MaxCaptionLength))
	}

	status, err := s.gate(ctx, enum.EntityTypePhoto, sub.UserID)
	if err != nil {
		return nil, err
	}

	photo := &types.Photo{
		PubID:      sub.PubID,
		UserID:     sub.UserID,
		StorageKey: key,
		Caption:    caption,
		IsApproved: status == enum.ModerationStatusApproved,
		CreatedAt:  now,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("failed to submit photo: %w", storeError(err))
	}

	s.accepted(ctx, enum.EntityTypePhoto, photo.ID, sub.UserID, status)
	return photo, nil
}

// Decide applies an admin action to a pending review or photo.
func (s *ModerationService) Decide(
	ctx context.Context, adminID uuid.UUID, entityType enum.EntityType, id int64,
	action enum.ModerationAction, now time.Time,
) (*models.ModerationOutcome, error) {
	if err := requireAdmin(ctx, s.profiles, adminID); err != nil {
		return nil, err
	}
	if !action.IsAModerationAction() {
		return nil, engine.Invalid("action", "unknown moderation action")
	}

	rules, err := moderation.RulesFor(entityType)
	if err != nil {
		return nil, engine.Invalid("entity_type", err.Error())
	}
	if !rules.Gated {
		return nil, engine.Invalid("entity_type", entityType.String()+" is not moderated")
	}

	outcome, err := s.moderation.Decide(ctx, entityType, id, action)
	if err != nil {
		return nil, fmt.Errorf("failed to decide %s: %w", entityType, storeError(err))
	}

	s.metrics.AdminDecided(entityType, action)

	activityType := enum.ActivityTypeContentApproved
	switch {
	case outcome.Decision.Delete:
		activityType = enum.ActivityTypeContentRejected
	case outcome.Decision.PromoteSubmitter:
		activityType = enum.ActivityTypeContentApprovedAndTrusted
	}

	s.activity.Log(ctx, &types.ActivityLog{
		EntityType:        types.EntityRef(entityType),
		EntityID:          id,
		ActorID:           adminID,
		ActivityType:      activityType,
		ActivityTimestamp: now,
		Details: map[string]any{
			"pub_id":       outcome.PubID,
			"submitter_id": outcome.SubmitterID.String(),
			"action":       action.String(),
		},
	})

	return outcome, nil
}

// ListPending returns the moderation queue, oldest first.
func (s *ModerationService) ListPending(
	ctx context.Context, adminID uuid.UUID, limit int,
) ([]*types.PendingItem, error) {
	if err := requireAdmin(ctx, s.profiles, adminID); err != nil {
		return nil, err
	}

	items, err := s.moderation.GetPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending items: %w", err)
	}
	return items, nil
}

// ListReviews returns the reviews of a pub visible to the viewer. Pending reviews are
// visible to admins and to their own author. uuid.Nil is an anonymous viewer.
func (s *ModerationService) ListReviews(
	ctx context.Context, pubID int64, viewerID uuid.UUID,
) ([]*types.Review, error) {
	isAdmin := s.viewerIsAdmin(ctx, viewerID)
	reviews, err := s.reviews.ListByPub(ctx, pubID, !isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return slices.DeleteFunc(reviews, func(r *types.Review) bool {
		return !moderation.Visible(r.Status(), isAdmin)
	}), nil
}

// ListPhotos returns the photos of a pub visible to the viewer.
func (s *ModerationService) ListPhotos(
	ctx context.Context, pubID int64, viewerID uuid.UUID,
) ([]*types.Photo, error) {
	isAdmin := s.viewerIsAdmin(ctx, viewerID)
	photos, err := s.photos.ListByPub(ctx, pubID, !isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return slices.DeleteFunc(photos, func(p *types.Photo) bool {
		return !moderation.Visible(p.Status(), isAdmin)
	}), nil
}

// SetTrusted changes a user's trust flag by admin action.
func (s *ModerationService) SetTrusted(
	ctx context.Context, adminID, userID uuid.UUID, trusted bool, now time.Time,
) error {
	if err := requireAdmin(ctx, s.profiles, adminID); err != nil {
		return err
	}
	if userID == uuid.Nil {
		return engine.Invalid("user_id", "required")
	}

	if err := s.trust.SetTrusted(ctx, userID, trusted); err != nil {
		return fmt.Errorf("failed to set trusted flag: %w", err)
	}

	s.activity.Log(ctx, &types.ActivityLog{
		SubjectUserID:     userID,
		ActorID:           adminID,
		ActivityType:      enum.ActivityTypeProfileTrustChanged,
		ActivityTimestamp: now,
		Details:           map[string]any{"trusted": trusted},
	})

	return nil
}

// RequireAdmin fails with engine.ErrForbidden unless the user is an admin.
func (s *ModerationService) RequireAdmin(ctx context.Context, userID uuid.UUID) error {
	return requireAdmin(ctx, s.profiles, userID)
}

// gate reads the submitter's current trust level and decides the initial status.
// The submission is rejected when the lookup fails.
func (s *ModerationService) gate(
	ctx context.Context, entityType enum.EntityType, userID uuid.UUID,
) (enum.ModerationStatus, error) {
	trust, err := readTrust(ctx, s.profiles, userID)
	if err != nil {
		s.logger.Error("Trust lookup failed, rejecting submission",
			zap.Error(err),
			zap.String("entityType", entityType.String()),
			zap.String("userID", userID.String()))
		return enum.ModerationStatusPending, err
	}
	return moderation.Gate(trust), nil
}

// accepted records metrics, and the contribution of approved content, after a gated submission is stored.
func (s *ModerationService) accepted(
	ctx context.Context, entityType enum.EntityType, id int64, userID uuid.UUID, status enum.ModerationStatus,
) {
	s.metrics.GateDecided(entityType, status)

	// Pending content is counted when an admin approves it.
	if status == enum.ModerationStatusApproved {
		if err := s.contributions.IncrementContributions(ctx, userID, 1); err != nil {
			s.logger.Error("Failed to count contribution",
				zap.Error(err),
				zap.String("userID", userID.String()))
		}
	}

	s.logger.Debug("Content submitted",
		zap.String("entityType", entityType.String()),
		zap.Int64("id", id),
		zap.String("status", status.String()))
}

// viewerIsAdmin reports whether the viewer is an admin. Reads never fail on a trust lookup
// error; the viewer is treated as a regular user instead.
func (s *ModerationService) viewerIsAdmin(ctx context.Context, viewerID uuid.UUID) bool {
	if viewerID == uuid.Nil {
		return false
	}

	trust, err := readTrust(ctx, s.profiles, viewerID)
	if err != nil {
		s.logger.Warn("Trust lookup failed for viewer",
			zap.Error(err),
			zap.String("viewerID", viewerID.String()))
		return false
	}
	return trust.IsAdmin
}

func validateRatings(ratings types.Ratings, comment string) error {
	var rated int
	for field, value := range ratings.Fields() {
		if value == nil {
			continue
		}
		if *value < 1 || *value > 5 {
			return engine.Invalid("rating_"+field, "must be between 1 and 5")
		}
		rated++
	}

	if rated == 0 && comment == "" {
		return engine.Invalid("ratings", "a rating or a comment is required")
	}
	return nil
}
