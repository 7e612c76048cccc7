package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/models"
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/rest/convert"
	"github.com/pintwise/pintwise/internal/rest/middleware/auth"
	"github.com/pintwise/pintwise/internal/rest/render"
	restTypes "github.com/pintwise/pintwise/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// AmenityService is the amenity functionality the REST API exposes.
type AmenityService interface {
	Vote(
		ctx context.Context, pubID int64, key enum.Amenity, voterID uuid.UUID, choice enum.VoteChoice, now time.Time,
	) (*models.AmenityOutcome, error)
	Claims(ctx context.Context, pubID int64) ([]*service.AmenityView, error)
	ReconcilePub(ctx context.Context, pubID int64, now time.Time) (int, error)
}

// AdminChecker reports whether a user may perform admin actions.
type AdminChecker interface {
	RequireAdmin(ctx context.Context, userID uuid.UUID) error
}

// AmenityHandler handles amenity claims and votes.
type AmenityHandler struct {
	amenities AmenityService
	admins    AdminChecker
	now       Clock
	logger    *zap.Logger
}

// NewAmenityHandler creates a new amenity handler.
func NewAmenityHandler(amenities AmenityService, admins AdminChecker, now Clock, logger *zap.Logger) *AmenityHandler {
	return &AmenityHandler{
		amenities: amenities,
		admins:    admins,
		now:       now,
		logger:    logger.Named("amenity_handler"),
	}
}

// ListAmenities returns the amenity flags of a pub with the votes behind them.
func (h *AmenityHandler) ListAmenities(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	views, err := h.amenities.Claims(req.Context(), pubID)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, restTypes.ListAmenitiesResponse{Amenities: convert.Amenities(views)})
}

// VoteAmenity casts a yes or no vote and applies the resulting consensus.
func (h *AmenityHandler) VoteAmenity(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}
	key, err := parseEnum("amenity", req.Param("amenity"), enum.AmenityString)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.VoteRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}
	choice, err := parseEnum("choice", body.Choice, enum.VoteChoiceString)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	outcome, err := h.amenities.Vote(req.Context(), pubID, key, auth.UserFromContext(req.Context()), choice, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	value := outcome.Previous
	if outcome.Decision.Overwrite {
		value = outcome.Decision.Value
	}

	return render.JSON(w, http.StatusOK, restTypes.AmenityVoteResult{
		Outcome: outcome.Vote.Outcome.String(),
		Amenity: restTypes.Amenity{
			Key:   key.String(),
			Value: value,
			Yes:   outcome.Claim.Yes,
			No:    outcome.Claim.No,
		},
		Overwritten: outcome.Decision.Overwrite,
	})
}

// ReconcilePub re-runs consensus over every voted amenity of a pub.
func (h *AmenityHandler) ReconcilePub(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	if err := h.admins.RequireAdmin(req.Context(), auth.UserFromContext(req.Context())); err != nil {
		return writeError(w, req, h.logger, err)
	}

	n, err := h.amenities.ReconcilePub(req.Context(), pubID, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, restTypes.ReconcileResult{Overwritten: n})
}
