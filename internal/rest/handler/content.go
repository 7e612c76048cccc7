package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/models"
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/rest/convert"
	"github.com/pintwise/pintwise/internal/rest/middleware/auth"
	"github.com/pintwise/pintwise/internal/rest/render"
	restTypes "github.com/pintwise/pintwise/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ModerationService is the review, photo and moderation functionality the REST API exposes.
type ModerationService interface {
	AdminChecker
	SubmitReview(ctx context.Context, sub *service.ReviewSubmission, now time.Time) (*types.Review, error)
	SubmitPhoto(ctx context.Context, sub *service.PhotoSubmission, now time.Time) (*types.Photo, error)
	Decide(
		ctx context.Context, adminID uuid.UUID, entityType enum.EntityType, id int64,
		action enum.ModerationAction, now time.Time,
	) (*models.ModerationOutcome, error)
	ListPending(ctx context.Context, adminID uuid.UUID, limit int) ([]*types.PendingItem, error)
	ListReviews(ctx context.Context, pubID int64, viewerID uuid.UUID) ([]*types.Review, error)
	ListPhotos(ctx context.Context, pubID int64, viewerID uuid.UUID) ([]*types.Photo, error)
	SetTrusted(ctx context.Context, adminID, userID uuid.UUID, trusted bool, now time.Time) error
}

// ContentHandler handles reviews, photos and the moderation queue.
type ContentHandler struct {
	moderation ModerationService
	now        Clock
	logger     *zap.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(moderation ModerationService, now Clock, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		moderation: moderation,
		now:        now,
		logger:     logger.Named("content_handler"),
	}
}

// ListReviews returns the reviews of a pub visible to the caller.
func (h *ContentHandler) ListReviews(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	reviews, err := h.moderation.ListReviews(req.Context(), pubID, auth.UserFromContext(req.Context()))
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, restTypes.ListReviewsResponse{Reviews: convert.Reviews(reviews)})
}

// SubmitReview creates or replaces the caller's review of a pub.
func (h *ContentHandler) SubmitReview(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.ReviewRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	review, err := h.moderation.SubmitReview(req.Context(), &service.ReviewSubmission{
		PubID:   pubID,
		UserID:  auth.UserFromContext(req.Context()),
		Comment: body.Comment,
		Ratings: convert.ToRatings(body.Ratings),
	}, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, statusFor(review.Status()), convert.Review(review))
}

// ListPhotos returns the photos of a pub visible to the caller.
func (h *ContentHandler) ListPhotos(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	photos, err := h.moderation.ListPhotos(req.Context(), pubID, auth.UserFromContext(req.Context()))
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, restTypes.ListPhotosResponse{Photos: convert.Photos(photos)})
}

// SubmitPhoto records a photo already uploaded to external storage.
func (h *ContentHandler) SubmitPhoto(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.PhotoRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	photo, err := h.moderation.SubmitPhoto(req.Context(), &service.PhotoSubmission{
		PubID:      pubID,
		UserID:     auth.UserFromContext(req.Context()),
		StorageKey: body.StorageKey,
		Caption:    body.Caption,
	}, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, statusFor(photo.Status()), convert.Photo(photo))
}

// GetQueue returns the moderation queue, oldest first.
func (h *ContentHandler) GetQueue(w http.ResponseWriter, req bunrouter.Request) error {
	_, limit, err := page(req)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	items, err := h.moderation.ListPending(req.Context(), auth.UserFromContext(req.Context()), limit)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, restTypes.QueueResponse{Items: convert.PendingItems(items)})
}

// Decide applies an admin action to a pending review or photo.
func (h *ContentHandler) Decide(w http.ResponseWriter, req bunrouter.Request) error {
	entityType, err := parseEnum("entity_type", req.Param("entity"), enum.EntityTypeString)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}
	id, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.DecisionRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}
	action, err := parseEnum("action", body.Action, enum.ModerationActionString)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	outcome, err := h.moderation.Decide(
		req.Context(), auth.UserFromContext(req.Context()), entityType, id, action, h.now(),
	)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	status := outcome.Decision.Status.String()
	if outcome.Decision.Delete {
		status = "deleted"
	}

	return render.JSON(w, http.StatusOK, restTypes.DecisionResult{
		Status:           status,
		Deleted:          outcome.Decision.Delete,
		SubmitterTrusted: outcome.Decision.PromoteSubmitter,
	})
}

// SetTrust changes a user's trust flag.
func (h *ContentHandler) SetTrust(w http.ResponseWriter, req bunrouter.Request) error {
	userID, err := uuid.Parse(req.Param("id"))
	if err != nil {
		return writeError(w, req, h.logger, engine.Invalid("id", "must be a user id"))
	}

	var body restTypes.TrustRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	adminID := auth.UserFromContext(req.Context())
	if err := h.moderation.SetTrusted(req.Context(), adminID, userID, body.Trusted, h.now()); err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, restTypes.UserRef{UserID: userID, Trusted: body.Trusted})
}

// statusFor answers 201 for published content and 202 for content queued for review.
func statusFor(status enum.ModerationStatus) int {
	if status == enum.ModerationStatusApproved {
		return http.StatusCreated
	}
	return http.StatusAccepted
}
