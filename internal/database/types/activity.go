package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types/enum"
)

// ActivityLog records an audited action. ActorID is nil for actions taken by consensus.
// Profile changes have no entity and set SubjectUserID instead.
type ActivityLog struct {
	Sequence          int64             `bun:",pk,autoincrement"   json:"sequence"`
	EntityType        *enum.EntityType  `json:"entityType"`
	EntityID          int64             `bun:",nullzero"           json:"entityId"`
	SubjectUserID     uuid.UUID         `bun:",type:uuid,nullzero" json:"subjectUserId"`
	ActorID           uuid.UUID         `bun:",type:uuid,nullzero" json:"actorId"`
	ActivityType      enum.ActivityType `bun:",notnull"            json:"activityType"`
	ActivityTimestamp time.Time         `bun:",notnull"            json:"activityTimestamp"`
	Details           map[string]any    `bun:",type:jsonb"         json:"details"`
}

// EntityRef returns a reference for ActivityLog.EntityType.
func EntityRef(entityType enum.EntityType) *enum.EntityType {
	return &entityType
}

// Entity returns the entity type name, or an empty string for profile changes.
func (l *ActivityLog) Entity() string {
	if l.EntityType == nil {
		return ""
	}
	return l.EntityType.String()
}

// ActivityFilter narrows activity log queries. Zero values match everything.
type ActivityFilter struct {
	EntityType   *enum.EntityType
	EntityID     int64
	ActorID      uuid.UUID
	SubjectUser  uuid.UUID
	ActivityType enum.ActivityType
	StartDate    time.Time
	EndDate      time.Time
}

// LogCursor points at the next page of activity logs.
type LogCursor struct {
	Timestamp time.Time
	Sequence  int64
}
