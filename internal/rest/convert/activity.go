package convert

import (
	"github.com/pintwise/pintwise/internal/database/types"
	restTypes "github.com/pintwise/pintwise/internal/rest/types"
)

func Activities(logs []*types.ActivityLog) []restTypes.ActivityEntry {
	result := make([]restTypes.ActivityEntry, len(logs))
	for i, log := range logs {
		result[i] = restTypes.ActivityEntry{
			Sequence:      log.Sequence,
			EntityType:    log.Entity(),
			EntityID:      log.EntityID,
			SubjectUserID: optionalUser(log.SubjectUserID),
			ActorID:       optionalUser(log.ActorID),
			ActivityType:  log.ActivityType.String(),
			Timestamp:     log.ActivityTimestamp,
			Details:       log.Details,
		}
	}
	return result
}
