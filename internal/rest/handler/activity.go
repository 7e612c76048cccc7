package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
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

// ActivityService reads the audit trail.
type ActivityService interface {
	History(
		ctx context.Context, adminID uuid.UUID, filter types.ActivityFilter, cursor *types.LogCursor, limit int,
	) ([]*types.ActivityLog, *types.LogCursor, error)
}

// ActivityHandler serves the admin audit trail.
type ActivityHandler struct {
	activity ActivityService
	logger   *zap.Logger
}

func NewActivityHandler(activity ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activity: activity,
		logger:   logger.Named("activity_handler"),
	}
}

// ListActivity returns audit rows newest first. Filters: entity_type, entity_id, actor_id,
// subject_user_id, activity_type, from and to (RFC 3339). Pages continue with cursor.
func (h *ActivityHandler) ListActivity(w http.ResponseWriter, req bunrouter.Request) error {
	query := req.URL.Query()

	filter, err := activityFilter(query)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	cursor, err := parseCursor(query.Get("cursor"))
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	_, limit, err := page(req)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	logs, next, err := h.activity.History(req.Context(), auth.UserFromContext(req.Context()), filter, cursor, limit)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	response := restTypes.ActivityResponse{Entries: convert.Activities(logs)}
	if next != nil {
		response.NextCursor = formatCursor(next)
	}
	return render.JSON(w, http.StatusOK, response)
}

func activityFilter(query url.Values) (types.ActivityFilter, error) {
	var filter types.ActivityFilter

	if raw := query.Get("entity_type"); raw != "" {
		entityType, err := parseEnum("entity_type", raw, enum.EntityTypeString)
		if err != nil {
			return filter, err
		}
		filter.EntityType = types.EntityRef(entityType)
	}
	if raw := query.Get("entity_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filter, engine.Invalid("entity_id", "must be a positive integer")
		}
		filter.EntityID = id
	}
	if raw := query.Get("activity_type"); raw != "" {
		activityType, err := parseEnum("activity_type", raw, enum.ActivityTypeString)
		if err != nil {
			return filter, err
		}
		filter.ActivityType = activityType
	}

	var err error
	if filter.ActorID, err = optionalUUID(query, "actor_id"); err != nil {
		return filter, err
	}
	if filter.SubjectUser, err = optionalUUID(query, "subject_user_id"); err != nil {
		return filter, err
	}
	if filter.StartDate, err = optionalTime(query, "from"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = optionalTime(query, "to"); err != nil {
		return filter, err
	}

	return filter, nil
}

func optionalUUID(query url.Values, name string) (uuid.UUID, error) {
	raw := query.Get(name)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, engine.Invalid(name, "must be a UUID")
	}
	return id, nil
}

func optionalTime(query url.Values, name string) (time.Time, error) {
	raw := query.Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, engine.Invalid(name, "must be an RFC 3339 timestamp")
	}
	return t, nil
}

// Cursors are "<unix nanoseconds>.<sequence>".
func formatCursor(c *types.LogCursor) string {
	return fmt.Sprintf("%d.%d", c.Timestamp.UnixNano(), c.Sequence)
}

func parseCursor(raw string) (*types.LogCursor, error) {
	if raw == "" {
		return nil, nil //nolint:nilnil // no cursor means the first page
	}

	nanos, seq, ok := strings.Cut(raw, ".")
	ts, tsErr := strconv.ParseInt(nanos, 10, 64)
	sequence, seqErr := strconv.ParseInt(seq, 10, 64)
	if !ok || tsErr != nil || seqErr != nil || sequence <= 0 {
		return nil, engine.Invalid("cursor", "malformed cursor")
	}

	return &types.LogCursor{Timestamp: time.Unix(0, ts).UTC(), Sequence: sequence}, nil
}
