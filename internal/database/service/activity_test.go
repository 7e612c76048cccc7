package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeActivityReader serves logs newest first, paging by sequence.
type fakeActivityReader struct {
	logs       []*types.ActivityLog
	err        error
	lastFilter types.ActivityFilter
}

func (f *fakeActivityReader) GetLogs(
	_ context.Context, filter types.ActivityFilter, cursor *types.LogCursor, limit int,
) ([]*types.ActivityLog, *types.LogCursor, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, nil, f.err
	}

	var out []*types.ActivityLog
	for _, l := range f.logs {
		if cursor != nil && l.Sequence > cursor.Sequence {
			continue
		}
		if filter.ActivityType != enum.ActivityTypeAll && l.ActivityType != filter.ActivityType {
			continue
		}
		out = append(out, l)
	}

	var next *types.LogCursor
	if len(out) > limit {
		next = &types.LogCursor{Timestamp: out[limit].ActivityTimestamp, Sequence: out[limit].Sequence}
		out = out[:limit]
	}
	return out, next, nil
}

func TestActivityService_History(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	reader := &fakeActivityReader{}
	for seq := int64(5); seq >= 1; seq-- {
		activityType := enum.ActivityTypeContentApproved
		if seq%2 == 0 {
			activityType = enum.ActivityTypeReportDismissed
		}
		reader.logs = append(reader.logs, &types.ActivityLog{
			Sequence:          seq,
			ActivityType:      activityType,
			ActivityTimestamp: now.Add(time.Duration(seq) * time.Minute),
		})
	}

	profiles := newFakeProfiles()
	admin := profiles.add(uuid.New(), false, true)
	svc := service.NewActivity(reader, profiles, zap.NewNop())

	first, next, err := svc.History(ctx, admin, types.ActivityFilter{}, nil, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, int64(5), first[0].Sequence)
	require.NotNil(t, next)
	assert.Equal(t, int64(2), next.Sequence)

	rest, next, err := svc.History(ctx, admin, types.ActivityFilter{}, next, 3)
	require.NoError(t, err)
	assert.Len(t, rest, 2)
	assert.Nil(t, next)

	dismissed, _, err := svc.History(ctx, admin,
		types.ActivityFilter{ActivityType: enum.ActivityTypeReportDismissed}, nil, 10)
	require.NoError(t, err)
	assert.Len(t, dismissed, 2)
}

func TestActivityService_HistoryRejects(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	profiles := newFakeProfiles()
	admin := profiles.add(uuid.New(), false, true)
	member := profiles.add(uuid.New(), true, false)

	tests := []struct {
		name    string
		userID  uuid.UUID
		filter  types.ActivityFilter
		limit   int
		readErr error
		wantErr error
	}{
		{name: "anonymous", userID: uuid.Nil, limit: 10, wantErr: engine.ErrUnauthenticated},
		{name: "not an admin", userID: member, limit: 10, wantErr: engine.ErrForbidden},
		{name: "zero limit", userID: admin, limit: 0, wantErr: engine.ErrValidation},
		{
			name:    "open ended range",
			userID:  admin,
			filter:  types.ActivityFilter{StartDate: now},
			limit:   10,
			wantErr: engine.ErrValidation,
		},
		{
			name:    "inverted range",
			userID:  admin,
			filter:  types.ActivityFilter{StartDate: now, EndDate: now.Add(-time.Hour)},
			limit:   10,
			wantErr: engine.ErrValidation,
		},
		{name: "store failure", userID: admin, limit: 10, readErr: errStoreDown, wantErr: errStoreDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := service.NewActivity(&fakeActivityReader{err: tt.readErr}, profiles, zap.NewNop())
			_, _, err := svc.History(ctx, tt.userID, tt.filter, nil, tt.limit)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
