package rest_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/metrics"
	"github.com/pintwise/pintwise/internal/rest"
	"github.com/pintwise/pintwise/internal/rest/render"
	restTypes "github.com/pintwise/pintwise/internal/rest/types"
	"github.com/pintwise/pintwise/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "server-test-secret"

var testNow = time.Date(2025, 6, 6, 21, 40, 0, 0, time.UTC)

type serverFixture struct {
	server     *rest.Server
	pubs       *fakePubs
	prices     *fakePrices
	votes      *fakeVotes
	amenities  *fakeAmenities
	moderation *fakeModeration
	reports    *fakeReports
	activity   *fakeActivity
	admin      uuid.UUID
	user       uuid.UUID
	health     error
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	admin := uuid.New()
	f := &serverFixture{
		pubs:       &fakePubs{},
		prices:     &fakePrices{},
		votes:      &fakeVotes{},
		amenities:  &fakeAmenities{},
		moderation: &fakeModeration{admin: admin, trusted: map[uuid.UUID]bool{}},
		reports:    &fakeReports{admin: admin, reports: map[int64]*types.Report{}},
		activity:   &fakeActivity{admin: admin},
		admin:      admin,
		user:       uuid.New(),
	}

	cfg := &config.APIConfig{
		Server: config.Server{RequestTimeout: 5000},
		Auth:   config.Auth{JWTSecret: testSecret},
		RateLimit: config.RateLimit{
			RequestsPerSecond:     1000,
			BurstSize:             1000,
			AuthRequestsPerSecond: 1000,
			AuthBurstSize:         1000,
			StrikeLimit:           10,
			BlockDuration:         60,
		},
	}

	server, err := rest.NewServer(rest.Services{
		Pubs:       f.pubs,
		Prices:     f.prices,
		Votes:      f.votes,
		Amenities:  f.amenities,
		Moderation: f.moderation,
		Reports:    f.reports,
		Activity:   f.activity,
	}, rest.Options{
		Config:  cfg,
		Metrics: metrics.New(),
		Health:  func(context.Context) error { return f.health },
		Clock:   func() time.Time { return testNow },
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(server.Close)

	f.server = server
	return f
}

func (f *serverFixture) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// do sends a request as the given user. uuid.Nil sends no token.
func (f *serverFixture) do(t *testing.T, method, path string, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "198.51.100.20:4000"
	if userID != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+f.token(t, userID))
	}

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)

	rec := f.do(t, http.MethodGet, "/health", uuid.Nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	f.health = errors.New("database unreachable")
	rec = f.do(t, http.MethodGet, "/health", uuid.Nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	f.do(t, http.MethodGet, "/v1/pubs/1/status", uuid.Nil, "")
	rec = f.do(t, http.MethodGet, "/metrics", uuid.Nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/pubs/:id/status")
}

func TestPublicReads(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/pubs/1/status", uuid.Nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	status := decodeBody[restTypes.PubStatus](t, rec)
	assert.Equal(t, "closing_soon", status.State)
	assert.True(t, status.IsOpen)
	assert.Equal(t, 20, status.MinutesUntil)

	rec = f.do(t, http.MethodGet, "/v1/pubs/1/prices", uuid.Nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	prices := decodeBody[restTypes.ListPricesResponse](t, rec)
	require.Len(t, prices.Prices, 2)
	assert.Equal(t, "single", prices.Prices[0].Targeting)
	assert.Equal(t, "low", prices.Prices[0].Confidence.Level)
	assert.Nil(t, prices.Prices[0].Deal)
	require.NotNil(t, prices.Prices[1].Deal)
	assert.Equal(t, "expired", prices.Prices[1].Deal.Status)
	assert.Equal(t, "all_pints", prices.Prices[1].Targeting)

	rec = f.do(t, http.MethodGet, "/v1/pubs/1/amenities", uuid.Nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	amenities := decodeBody[restTypes.ListAmenitiesResponse](t, rec)
	require.Len(t, amenities.Amenities, 2)
	assert.Equal(t, "wifi", amenities.Amenities[0].Key)
	assert.Nil(t, amenities.Amenities[1].Value)

	rec = f.do(t, http.MethodGet, "/v1/prices/3/confidence", uuid.Nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	conf := decodeBody[restTypes.PriceConfidence](t, rec)
	assert.Equal(t, "high", conf.Confidence.Level)
	require.NotNil(t, conf.ProposedAmount)
	assert.Equal(t, int64(520), *conf.ProposedAmount)

	rec = f.do(t, http.MethodGet, "/v1/pubs?after_id=1&limit=2", uuid.Nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeBody[restTypes.ListPubsResponse](t, rec)
	require.Len(t, page.Pubs, 2)
	assert.Equal(t, int64(3), page.NextAfterID)
}

func TestReviewVisibilityFollowsCaller(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/pubs/1/reviews", uuid.Nil, "")
	assert.Len(t, decodeBody[restTypes.ListReviewsResponse](t, rec).Reviews, 1)

	rec = f.do(t, http.MethodGet, "/v1/pubs/1/reviews", f.admin, "")
	reviews := decodeBody[restTypes.ListReviewsResponse](t, rec).Reviews
	require.Len(t, reviews, 2)
	assert.Equal(t, "pending", reviews[1].Status)
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantError string
	}{
		{"validation", engine.Invalid("amount", "must be positive"), http.StatusBadRequest, "validation_failed"},
		{"unauthenticated", engine.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"forbidden", engine.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"not found", engine.ErrNotFound, http.StatusNotFound, "not_found"},
		{"invalid transition", engine.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
		{"rate limited", engine.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{"dependency", engine.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependency_unavailable"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newServerFixture(t)
			f.prices.err = tt.err

			rec := f.do(t, http.MethodPost, "/v1/pubs/1/prices", f.user, `{"amount":500,"drinkId":4}`)
			assert.Equal(t, tt.wantCode, rec.Code)

			body := decodeBody[render.ErrorResponse](t, rec)
			assert.Equal(t, tt.wantError, body.Error)
			if tt.wantCode == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "connection reset")
			}
			if tt.name == "validation" {
				assert.Equal(t, "amount", body.Field)
			}
		})
	}
}

func TestAuthenticatedRoutesRequireUser(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/v1/pubs/1/prices"},
		{http.MethodPatch, "/v1/prices/1"},
		{http.MethodDelete, "/v1/prices/1"},
		{http.MethodPost, "/v1/prices/1/expire"},
		{http.MethodPost, "/v1/prices/1/votes"},
		{http.MethodPost, "/v1/prices/1/verifications"},
		{http.MethodPost, "/v1/pubs/1/amenities/wifi/votes"},
		{http.MethodPut, "/v1/pubs/1/reviews"},
		{http.MethodPost, "/v1/pubs/1/photos"},
		{http.MethodGet, "/v1/admin/queue"},
		{http.MethodPost, "/v1/admin/pubs"},
	}
	for _, route := range routes {
		rec := f.do(t, route.method, route.path, uuid.Nil, `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/pubs/1/status", nil)
	req.RemoteAddr = "198.51.100.20:4000"
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitPrice(t *testing.T) {
	t.Parallel()

	t.Run("regular price", func(t *testing.T) {
		t.Parallel()

		f := newServerFixture(t)
		rec := f.do(t, http.MethodPost, "/v1/pubs/9/prices", f.user, `{"amount":575,"drinkId":4}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		price := decodeBody[restTypes.Price](t, rec)
		assert.Equal(t, int64(9), price.PubID)
		assert.Equal(t, "low", price.Confidence.Level)
		assert.Equal(t, f.user, f.prices.submitted.SubmittedBy)
		assert.Equal(t, int64(4), f.prices.submitted.DrinkID)
	})

	t.Run("deal", func(t *testing.T) {
		t.Parallel()

		f := newServerFixture(t)
		body := `{"amount":400,"isDeal":true,"dealType":"food_combo","target":"all_pints",` +
			`"foodItem":"Burger","endDate":"2025-06-01T00:00:00Z"}`
		rec := f.do(t, http.MethodPost, "/v1/pubs/9/prices", f.user, body)
		require.Equal(t, http.StatusCreated, rec.Code)

		assert.Equal(t, enum.DealTypeFoodCombo, f.prices.submitted.Deal.DealType)
		assert.Equal(t, enum.DealTargetAllPints, f.prices.submitted.Deal.Target)
		assert.Equal(t, "Burger", f.prices.submitted.Deal.FoodItem)

		price := decodeBody[restTypes.Price](t, rec)
		require.NotNil(t, price.Deal)
		assert.Equal(t, "expired", price.Deal.Status)
	})

	t.Run("unknown deal type", func(t *testing.T) {
		t.Parallel()

		f := newServerFixture(t)
		rec := f.do(t, http.MethodPost, "/v1/pubs/9/prices", f.user, `{"amount":400,"isDeal":true,"dealType":"bogus"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "deal_type", decodeBody[render.ErrorResponse](t, rec).Field)
		assert.Nil(t, f.prices.submitted)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		f := newServerFixture(t)
		rec := f.do(t, http.MethodPost, "/v1/pubs/9/prices", f.user, `{"amount":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "body", decodeBody[render.ErrorResponse](t, rec).Field)
	})

	t.Run("bad path id", func(t *testing.T) {
		t.Parallel()

		f := newServerFixture(t)
		rec := f.do(t, http.MethodPost, "/v1/pubs/zero/prices", f.user, `{"amount":400}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestVotes(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/prices/1/votes", f.user, `{"choice":"up"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	vote := decodeBody[restTypes.VoteResult](t, rec)
	assert.Equal(t, "added", vote.Outcome)
	assert.Equal(t, 1, vote.Upvotes)

	rec = f.do(t, http.MethodPost, "/v1/prices/1/votes", f.user, `{"choice":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/pubs/1/amenities/wifi/votes", f.user, `{"choice":"yes"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	amenityVote := decodeBody[restTypes.AmenityVoteResult](t, rec)
	assert.True(t, amenityVote.Overwritten)
	require.NotNil(t, amenityVote.Amenity.Value)
	assert.True(t, *amenityVote.Amenity.Value)

	rec = f.do(t, http.MethodPost, "/v1/pubs/1/amenities/hot_tub/votes", f.user, `{"choice":"yes"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "amenity", decodeBody[render.ErrorResponse](t, rec).Field)

	rec = f.do(t, http.MethodPost, "/v1/prices/1/verifications", f.user, `{"isAccurate":false,"proposedAmount":600}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.prices.verified)
	assert.Equal(t, int64(600), *f.prices.verified)
}

func TestContentSubmissionStatus(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	trusted := uuid.New()
	f.moderation.trusted[trusted] = true

	rec := f.do(t, http.MethodPut, "/v1/pubs/1/reviews", f.user, `{"comment":"Nice","ratings":{"service":4}}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	review := decodeBody[restTypes.Review](t, rec)
	assert.Equal(t, "pending", review.Status)
	require.NotNil(t, review.Ratings.Service)
	assert.Equal(t, int16(4), *review.Ratings.Service)

	rec = f.do(t, http.MethodPut, "/v1/pubs/1/reviews", trusted, `{"comment":"Nice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "approved", decodeBody[restTypes.Review](t, rec).Status)

	rec = f.do(t, http.MethodPost, "/v1/pubs/1/photos", f.user, `{"storageKey":"pubs/1/a.jpg"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	f.moderation.err = engine.ErrDependencyUnavailable
	rec = f.do(t, http.MethodPost, "/v1/pubs/1/photos", f.user, `{"storageKey":"pubs/1/b.jpg"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/admin/queue", f.user, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/v1/admin/queue?limit=10", f.admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	queue := decodeBody[restTypes.QueueResponse](t, rec)
	require.Len(t, queue.Items, 2)
	assert.Equal(t, "review", queue.Items[0].EntityType)
	assert.NotNil(t, queue.Items[0].Review)
	assert.NotNil(t, queue.Items[1].Photo)

	rec = f.do(t, http.MethodPost, "/v1/admin/queue/review/1/decision", f.admin, `{"action":"approve_and_trust"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decision := decodeBody[restTypes.DecisionResult](t, rec)
	assert.Equal(t, "approved", decision.Status)
	assert.True(t, decision.SubmitterTrusted)

	rec = f.do(t, http.MethodPost, "/v1/admin/queue/photo/1/decision", f.admin, `{"action":"reject"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[restTypes.DecisionResult](t, rec).Deleted)

	rec = f.do(t, http.MethodPost, "/v1/admin/queue/pub/1/decision", f.admin, `{"action":"approve"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/admin/queue/review/1/decision", f.admin, `{"action":"shrug"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	target := uuid.New()
	rec = f.do(t, http.MethodPost, "/v1/admin/profiles/"+target.String()+"/trust", f.admin, `{"trusted":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, f.moderation.trusted[target])

	rec = f.do(t, http.MethodPost, "/v1/admin/profiles/not-a-uuid/trust", f.admin, `{"trusted":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/admin/pubs/1/amenities/reconcile", f.user, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/admin/pubs/1/amenities/reconcile", f.admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeBody[restTypes.ReconcileResult](t, rec).Overwritten)
}

func TestAdminPubManagement(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/admin/pubs", f.admin, `{"name":"The Anchor","timeZone":"Europe/London"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), decodeBody[restTypes.Pub](t, rec).ID)
	assert.Equal(t, f.admin, f.pubs.actor)

	body := `{"days":[{"weekday":5,"open":"11:00","close":"23:00"},{"weekday":6,"open":"12:00","close":"02:00"}]}`
	rec = f.do(t, http.MethodPut, "/v1/admin/pubs/7/hours", f.admin, body)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, f.pubs.hours, 2)
	assert.Equal(t, time.Saturday, f.pubs.hours[1].Weekday)
	assert.Equal(t, "02:00", f.pubs.hours[1].Close)

	rec = f.do(t, http.MethodPut, "/v1/admin/pubs/7/hours", f.admin, `{"days":[{"weekday":9}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/admin/pubs/7/closed", f.admin, `{"closed":true}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, f.pubs.closed)
	assert.True(t, *f.pubs.closed)
}

func TestReports(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/reports", uuid.Nil,
		`{"entityType":"price","entityId":4,"reportType":"spam","fingerprint":"device-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	report := decodeBody[restTypes.Report](t, rec)
	assert.Nil(t, report.ReporterID)
	assert.Equal(t, "pending", report.Status)
	assert.Equal(t, "device-1", f.reports.last.Fingerprint)

	rec = f.do(t, http.MethodPost, "/v1/reports", f.user,
		`{"entityType":"review","entityId":2,"reportType":"other"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "details", decodeBody[render.ErrorResponse](t, rec).Field)

	rec = f.do(t, http.MethodGet, "/v1/admin/reports", f.admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[restTypes.ListReportsResponse](t, rec).Reports, 1)

	rec = f.do(t, http.MethodPost, "/v1/admin/reports/1/resolve", f.admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	resolved := decodeBody[restTypes.Report](t, rec)
	assert.Equal(t, "resolved", resolved.Status)
	require.NotNil(t, resolved.ReviewedBy)
	assert.Equal(t, f.admin, *resolved.ReviewedBy)

	rec = f.do(t, http.MethodPost, "/v1/admin/reports/1/dismiss", f.admin, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/admin/reports/99/dismiss", f.admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	f.reports.err = engine.ErrRateLimited
	rec = f.do(t, http.MethodPost, "/v1/reports", uuid.Nil, `{"entityType":"price","entityId":4,"reportType":"spam"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)
	rec := f.do(t, http.MethodGet, "/v1/nowhere", uuid.Nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestActivityHistory(t *testing.T) {
	t.Parallel()

	f := newServerFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/admin/activity?limit=1&entity_type=review&activity_type=content_approved", f.admin, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decodeBody[restTypes.ActivityResponse](t, rec)
	require.Len(t, first.Entries, 1)
	assert.Equal(t, "review", first.Entries[0].EntityType)
	assert.Equal(t, "content_approved", first.Entries[0].ActivityType)
	require.NotEmpty(t, first.NextCursor)

	require.NotNil(t, f.activity.lastFilter.EntityType)
	assert.Equal(t, enum.EntityTypeReview, *f.activity.lastFilter.EntityType)
	assert.Equal(t, enum.ActivityTypeContentApproved, f.activity.lastFilter.ActivityType)

	rec = f.do(t, http.MethodGet, "/v1/admin/activity?cursor="+first.NextCursor, f.admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.activity.lastCursor)
	assert.Equal(t, int64(8), f.activity.lastCursor.Sequence)
	assert.True(t, f.activity.lastCursor.Timestamp.Equal(time.Date(2025, 6, 6, 19, 59, 0, 0, time.UTC)))

	all := decodeBody[restTypes.ActivityResponse](t, rec)
	require.Len(t, all.Entries, 2)
	assert.Empty(t, all.NextCursor)
	assert.Empty(t, all.Entries[1].EntityType)
	require.NotNil(t, all.Entries[1].SubjectUserID)

	tests := []struct {
		name  string
		path  string
		user  uuid.UUID
		code  int
		field string
	}{
		{"member", "/v1/admin/activity", f.user, http.StatusForbidden, ""},
		{"anonymous", "/v1/admin/activity", uuid.Nil, http.StatusUnauthorized, ""},
		{"bad cursor", "/v1/admin/activity?cursor=abc", f.admin, http.StatusBadRequest, "cursor"},
		{"bad actor", "/v1/admin/activity?actor_id=nope", f.admin, http.StatusBadRequest, "actor_id"},
		{"bad time", "/v1/admin/activity?from=yesterday", f.admin, http.StatusBadRequest, "from"},
		{"bad type", "/v1/admin/activity?activity_type=party", f.admin, http.StatusBadRequest, "activity_type"},
	}

	for _, tt := range tests {
		rec := f.do(t, http.MethodGet, tt.path, tt.user, "")
		assert.Equal(t, tt.code, rec.Code, tt.name)
		if tt.field != "" {
			assert.Equal(t, tt.field, decodeBody[render.ErrorResponse](t, rec).Field, tt.name)
		}
	}
}
