package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/rest/convert"
	"github.com/pintwise/pintwise/internal/rest/middleware/auth"
	"github.com/pintwise/pintwise/internal/rest/render"
	restTypes "github.com/pintwise/pintwise/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// PubService is the pub functionality the REST API exposes.
type PubService interface {
	Create(ctx context.Context, adminID uuid.UUID, pub *types.Pub, now time.Time) error
	Get(ctx context.Context, pubID int64) (*types.Pub, error)
	List(ctx context.Context, afterID int64, limit int) ([]*types.Pub, error)
	Status(ctx context.Context, pubID int64, now time.Time) (*service.PubStatus, error)
	SetHours(ctx context.Context, adminID uuid.UUID, pubID int64, days []service.DayHours) error
	SetPermanentlyClosed(ctx context.Context, adminID uuid.UUID, pubID int64, closed bool) error
}

// PubHandler handles pub listing, opening status and admin pub management.
type PubHandler struct {
	pubs   PubService
	now    Clock
	logger *zap.Logger
}

// NewPubHandler creates a new pub handler.
func NewPubHandler(pubs PubService, now Clock, logger *zap.Logger) *PubHandler {
	return &PubHandler{
		pubs:   pubs,
		now:    now,
		logger: logger.Named("pub_handler"),
	}
}

// ListPubs returns a page of pubs ordered by id.
func (h *PubHandler) ListPubs(w http.ResponseWriter, req bunrouter.Request) error {
	afterID, limit, err := page(req)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	pubs, err := h.pubs.List(req.Context(), afterID, limit)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	response := restTypes.ListPubsResponse{Pubs: convert.Pubs(pubs)}
	if len(pubs) == limit {
		response.NextAfterID = pubs[len(pubs)-1].ID
	}
	return render.JSON(w, http.StatusOK, response)
}

// GetPub returns a single pub.
func (h *PubHandler) GetPub(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	pub, err := h.pubs.Get(req.Context(), pubID)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, convert.Pub(pub))
}

// GetStatus resolves whether a pub is open right now.
func (h *PubHandler) GetStatus(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	status, err := h.pubs.Status(req.Context(), pubID, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, convert.PubStatus(status))
}

// CreatePub adds a pub.
func (h *PubHandler) CreatePub(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.CreatePubRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	pub := &types.Pub{
		Name:     body.Name,
		Address:  body.Address,
		TimeZone: body.TimeZone,
	}
	if err := h.pubs.Create(req.Context(), auth.UserFromContext(req.Context()), pub, h.now()); err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusCreated, convert.Pub(pub))
}

// SetHours replaces the opening hours of a pub.
func (h *PubHandler) SetHours(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.SetHoursRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	days := make([]service.DayHours, len(body.Days))
	for i, day := range body.Days {
		if day.Weekday < 0 || day.Weekday > 6 {
			return writeError(w, req, h.logger, engine.Invalid("weekday", "must be between 0 and 6"))
		}
		days[i] = service.DayHours{
			Weekday: time.Weekday(day.Weekday),
			Open:    day.Open,
			Close:   day.Close,
		}
	}

	if err := h.pubs.SetHours(req.Context(), auth.UserFromContext(req.Context()), pubID, days); err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.NoContent(w)
}

// SetClosed marks a pub permanently closed or reopens it.
func (h *PubHandler) SetClosed(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.ClosedRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	userID := auth.UserFromContext(req.Context())
	if err := h.pubs.SetPermanentlyClosed(req.Context(), userID, pubID, body.Closed); err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.NoContent(w)
}
