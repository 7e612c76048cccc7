package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/models"
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/engine/moderation"
	"github.com/pintwise/pintwise/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeReports is an in-memory report store.
type fakeReports struct {
	mu      sync.Mutex
	nextID  int64
	reports map[int64]*types.Report
}

func newFakeReports() *fakeReports {
	return &fakeReports{reports: make(map[int64]*types.Report)}
}

func (f *fakeReports) Create(_ context.Context, report *types.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	report.ID = f.nextID
	cp := *report
	f.reports[report.ID] = &cp
	return nil
}

func (f *fakeReports) Get(_ context.Context, id int64) (*types.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return nil, types.ErrReportNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReports) Transition(
	_ context.Context, id int64, from, to enum.ReportStatus, reviewerID uuid.UUID, now time.Time,
) (*types.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return nil, types.ErrReportNotFound
	}
	if r.Status != from {
		return nil, models.ErrReportChanged
	}
	r.Status = to
	r.ReviewedBy = reviewerID
	r.ReviewedAt = &now
	cp := *r
	return &cp, nil
}

func (f *fakeReports) ListByStatus(
	_ context.Context, status enum.ReportStatus, afterID int64, limit int,
) ([]*types.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Report
	for id := afterID + 1; id <= f.nextID && len(out) < limit; id++ {
		if r, ok := f.reports[id]; ok && r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReports) CountRecent(
	_ context.Context, reporterID uuid.UUID, fingerprint string, since time.Time,
) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int
	for _, r := range f.reports {
		if r.CreatedAt.Before(since) {
			continue
		}
		if (reporterID != uuid.Nil && r.ReporterID == reporterID) ||
			(reporterID == uuid.Nil && fingerprint != "" && r.ReporterFingerprint == fingerprint) {
			n++
		}
	}
	return n, nil
}

type reportFixture struct {
	svc      *service.ReportService
	reports  *fakeReports
	prices   *fakePrices
	content  *fakeContent
	profiles *fakeProfiles
	activity *fakeActivity
	admin    uuid.UUID
}

func newReportFixture(limits service.ReportLimits) *reportFixture {
	f := &reportFixture{
		reports:  newFakeReports(),
		prices:   newFakePrices(1),
		profiles: newFakeProfiles(),
		activity: &fakeActivity{},
	}
	f.content = newFakeContent(f.profiles, 1)
	f.admin = f.profiles.add(uuid.New(), false, true)

	removers := map[enum.EntityType]service.Deleter{
		enum.EntityTypePrice:  f.prices,
		enum.EntityTypeDeal:   f.prices,
		enum.EntityTypeReview: reviewStore{f.content},
		enum.EntityTypePhoto:  photoStore{f.content},
	}
	f.svc = service.NewReport(f.reports, f.profiles, removers, limits, f.activity, metrics.New(), zap.NewNop())
	return f
}

func reportOf(entityType enum.EntityType, id int64, reportType enum.ReportType) moderation.ReportSubmission {
	return moderation.ReportSubmission{EntityType: entityType, EntityID: id, ReportType: reportType}
}

func TestReportService_Create(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := uuid.New()

	tests := []struct {
		name    string
		sub     service.ReportSubmission
		wantErr error
	}{
		{
			name: "attributed report",
			sub:  service.ReportSubmission{ReportSubmission: reportOf(enum.EntityTypePrice, 3, enum.ReportTypeIncorrectInfo), ReporterID: user},
		},
		{
			name: "anonymous report",
			sub:  service.ReportSubmission{ReportSubmission: reportOf(enum.EntityTypePub, 1, enum.ReportTypePermanentlyClosed)},
		},
		{
			name: "other with details",
			sub: service.ReportSubmission{ReportSubmission: moderation.ReportSubmission{
				EntityType: enum.EntityTypeReview, EntityID: 2, ReportType: enum.ReportTypeOther, Details: "  rude  words ",
			}},
		},
		{
			name:    "other without details",
			sub:     service.ReportSubmission{ReportSubmission: reportOf(enum.EntityTypeReview, 2, enum.ReportTypeOther)},
			wantErr: engine.ErrValidation,
		},
		{
			name:    "bad entity id",
			sub:     service.ReportSubmission{ReportSubmission: reportOf(enum.EntityTypeReview, 0, enum.ReportTypeSpam)},
			wantErr: engine.ErrValidation,
		},
		{
			name:    "unknown report type",
			sub:     service.ReportSubmission{ReportSubmission: reportOf(enum.EntityTypeReview, 1, enum.ReportType(77))},
			wantErr: engine.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newReportFixture(service.ReportLimits{})
			report, err := f.svc.Create(context.Background(), &tt.sub, now)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.reports.reports)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, enum.ReportStatusPending, report.Status)
			assert.Equal(t, tt.sub.ReporterID, report.ReporterID)
			assert.NotContains(t, report.Details, "  ")
		})
	}
}

func TestReportService_FingerprintIsHashed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	f := newReportFixture(service.ReportLimits{FingerprintKey: "secret"})
	other := newReportFixture(service.ReportLimits{FingerprintKey: "another"})

	sub := func() *service.ReportSubmission {
		return &service.ReportSubmission{
			ReportSubmission: reportOf(enum.EntityTypePhoto, 4, enum.ReportTypeSpam),
			Fingerprint:      "203.0.113.9|Mozilla/5.0",
		}
	}

	first, err := f.svc.Create(ctx, sub(), now)
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, sub(), now)
	require.NoError(t, err)
	keyed, err := other.svc.Create(ctx, sub(), now)
	require.NoError(t, err)

	assert.Len(t, first.ReporterFingerprint, 64)
	assert.NotContains(t, first.ReporterFingerprint, "203.0.113.9")
	assert.Equal(t, first.ReporterFingerprint, second.ReporterFingerprint)
	assert.NotEqual(t, first.ReporterFingerprint, keyed.ReporterFingerprint)

	// Attributed reports never carry a fingerprint
	attributed := sub()
	attributed.ReporterID = uuid.New()
	report, err := f.svc.Create(ctx, attributed, now)
	require.NoError(t, err)
	assert.Empty(t, report.ReporterFingerprint)
}

func TestReportService_FloodLimit(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	limits := service.ReportLimits{FingerprintKey: "k", FloodLimit: 2, FloodWindow: time.Hour}

	tests := []struct {
		name string
		sub  func() *service.ReportSubmission
		// limited reports whether the third report within the window is refused
		limited bool
	}{
		{
			name: "attributed reporter",
			sub: func() *service.ReportSubmission {
				return &service.ReportSubmission{
					ReportSubmission: reportOf(enum.EntityTypePrice, 1, enum.ReportTypeSpam),
					ReporterID:       uuid.MustParse("8f2c1a57-56a4-4f8e-9df4-0b7c3b1d2e11"),
				}
			},
			limited: true,
		},
		{
			name: "anonymous with fingerprint",
			sub: func() *service.ReportSubmission {
				return &service.ReportSubmission{
					ReportSubmission: reportOf(enum.EntityTypePrice, 1, enum.ReportTypeSpam),
					Fingerprint:      "client-1",
				}
			},
			limited: true,
		},
		{
			name: "anonymous without fingerprint",
			sub: func() *service.ReportSubmission {
				return &service.ReportSubmission{ReportSubmission: reportOf(enum.EntityTypePrice, 1, enum.ReportTypeSpam)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newReportFixture(limits)

			for range 2 {
				_, err := f.svc.Create(ctx, tt.sub(), now)
				require.NoError(t, err)
			}

			_, err := f.svc.Create(ctx, tt.sub(), now.Add(10*time.Minute))
			if !tt.limited {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, engine.ErrRateLimited)

			// The window slides past the first two reports
			_, err = f.svc.Create(ctx, tt.sub(), now.Add(2*time.Hour))
			require.NoError(t, err)
		})
	}
}

func TestReportService_Resolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	f := newReportFixture(service.ReportLimits{})
	owner := uuid.New()

	require.NoError(t, f.prices.Create(ctx, &types.Price{PubID: 1, Amount: 500, SubmittedBy: owner}))
	require.NoError(t, reviewStore{f.content}.Upsert(ctx, &types.Review{PubID: 1, UserID: owner, Comment: "spam"}))

	priceReport, err := f.svc.Create(ctx, &service.ReportSubmission{
		ReportSubmission: reportOf(enum.EntityTypePrice, 1, enum.ReportTypeIncorrectInfo),
	}, now)
	require.NoError(t, err)

	resolved, err := f.svc.Resolve(ctx, f.admin, priceReport.ID, true, now)
	require.NoError(t, err)
	assert.Equal(t, enum.ReportStatusResolved, resolved.Status)
	assert.Equal(t, f.admin, resolved.ReviewedBy)
	require.NotNil(t, resolved.ReviewedAt)
	assert.Empty(t, f.prices.prices)

	// Resolved is final
	_, err = f.svc.Resolve(ctx, f.admin, priceReport.ID, false, now)
	require.ErrorIs(t, err, engine.ErrInvalidTransition)
	_, err = f.svc.Dismiss(ctx, f.admin, priceReport.ID, now)
	require.ErrorIs(t, err, engine.ErrInvalidTransition)

	// A second report on the removed price still resolves
	again, err := f.svc.Create(ctx, &service.ReportSubmission{
		ReportSubmission: reportOf(enum.EntityTypePrice, 1, enum.ReportTypeDuplicate),
	}, now)
	require.NoError(t, err)
	_, err = f.svc.Resolve(ctx, f.admin, again.ID, true, now)
	require.NoError(t, err)

	reviewReport, err := f.svc.Create(ctx, &service.ReportSubmission{
		ReportSubmission: reportOf(enum.EntityTypeReview, 1, enum.ReportTypeSpam),
	}, now)
	require.NoError(t, err)
	_, err = f.svc.Resolve(ctx, f.admin, reviewReport.ID, true, now)
	require.NoError(t, err)
	assert.Empty(t, f.content.reviews)

	require.Len(t, f.activity.logs, 3)
	assert.Equal(t, true, f.activity.logs[0].Details["removed"])
	assert.Equal(t, enum.ActivityTypeReportResolved, f.activity.logs[2].ActivityType)
}

func TestReportService_ResolveRejects(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	f := newReportFixture(service.ReportLimits{})
	user := f.profiles.add(uuid.New(), true, false)

	pubReport, err := f.svc.Create(ctx, &service.ReportSubmission{
		ReportSubmission: reportOf(enum.EntityTypePub, 1, enum.ReportTypePermanentlyClosed),
		ReporterID:       user,
	}, now)
	require.NoError(t, err)

	_, err = f.svc.Resolve(ctx, user, pubReport.ID, false, now)
	require.ErrorIs(t, err, engine.ErrForbidden)

	_, err = f.svc.Resolve(ctx, f.admin, pubReport.ID, true, now)
	require.ErrorIs(t, err, engine.ErrValidation, "pubs are not removed through reports")

	report, err := f.reports.Get(ctx, pubReport.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ReportStatusPending, report.Status)

	_, err = f.svc.Resolve(ctx, f.admin, pubReport.ID, false, now)
	require.NoError(t, err)

	_, err = f.svc.Dismiss(ctx, f.admin, 404, now)
	require.ErrorIs(t, err, engine.ErrNotFound)
}

func TestReportService_DismissAndList(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	f := newReportFixture(service.ReportLimits{})

	var ids []int64
	for i := range 3 {
		report, err := f.svc.Create(ctx, &service.ReportSubmission{
			ReportSubmission: reportOf(enum.EntityTypePhoto, int64(i+1), enum.ReportTypeOffensive),
		}, now)
		require.NoError(t, err)
		ids = append(ids, report.ID)
	}

	dismissed, err := f.svc.Dismiss(ctx, f.admin, ids[1], now)
	require.NoError(t, err)
	assert.Equal(t, enum.ReportStatusDismissed, dismissed.Status)

	pending, err := f.svc.ListPending(ctx, f.admin, 0, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ids[0], pending[0].ID)
	assert.Equal(t, ids[2], pending[1].ID)

	page, err := f.svc.ListPending(ctx, f.admin, ids[0], 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[2], page[0].ID)

	_, err = f.svc.ListPending(ctx, uuid.Nil, 0, 10)
	require.ErrorIs(t, err, engine.ErrUnauthenticated)

	assert.Equal(t, []enum.ActivityType{enum.ActivityTypeReportDismissed}, f.activity.activityTypes())
}
