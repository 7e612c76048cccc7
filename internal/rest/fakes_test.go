package rest_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/models"
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/engine/amenity"
	"github.com/pintwise/pintwise/internal/engine/confidence"
	"github.com/pintwise/pintwise/internal/engine/moderation"
	"github.com/pintwise/pintwise/internal/engine/schedule"
	"github.com/pintwise/pintwise/internal/engine/tally"
)

// fakePubs serves a single pub.
type fakePubs struct {
	err     error
	created *types.Pub
	hours   []service.DayHours
	closed  *bool
	actor   uuid.UUID
}

func (f *fakePubs) Create(_ context.Context, adminID uuid.UUID, pub *types.Pub, now time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.actor = adminID
	pub.ID = 7
	pub.CreatedAt = now
	f.created = pub
	return nil
}

func (f *fakePubs) Get(_ context.Context, pubID int64) (*types.Pub, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.Pub{ID: pubID, Name: "The Crown", TimeZone: "Europe/London"}, nil
}

func (f *fakePubs) List(_ context.Context, afterID int64, limit int) ([]*types.Pub, error) {
	pubs := make([]*types.Pub, 0, limit)
	for id := afterID + 1; id <= afterID+int64(limit) && id <= 3; id++ {
		pubs = append(pubs, &types.Pub{ID: id, Name: "Pub"})
	}
	return pubs, nil
}

func (f *fakePubs) Status(_ context.Context, pubID int64, now time.Time) (*service.PubStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.PubStatus{
		PubID:     pubID,
		Status:    schedule.Status{State: enum.OpenStateClosingSoon, Detail: "Closes in 20 minutes", MinutesUntil: 20},
		LocalTime: now,
	}, nil
}

func (f *fakePubs) SetHours(_ context.Context, adminID uuid.UUID, _ int64, days []service.DayHours) error {
	if f.err != nil {
		return f.err
	}
	f.actor = adminID
	f.hours = days
	return nil
}

func (f *fakePubs) SetPermanentlyClosed(_ context.Context, adminID uuid.UUID, _ int64, closed bool) error {
	if f.err != nil {
		return f.err
	}
	f.actor = adminID
	f.closed = &closed
	return nil
}

// fakePrices records submissions and returns canned confidence.
type fakePrices struct {
	err       error
	submitted *service.PriceSubmission
	verified  *int64
}

func (f *fakePrices) Submit(_ context.Context, sub *service.PriceSubmission, now time.Time) (*service.PriceView, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.submitted = sub
	price := &types.Price{
		ID:          11,
		PubID:       sub.PubID,
		Amount:      sub.Amount,
		IsDeal:      sub.IsDeal,
		SubmittedBy: sub.SubmittedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	view := &service.PriceView{
		Price:      price,
		Confidence: confidence.Result{Level: enum.ConfidenceLevelLow},
		DealStatus: enum.DealStatusActive,
	}
	if sub.IsDeal {
		if sub.Deal.EndDate != nil && sub.Deal.EndDate.Before(now) {
			view.DealStatus = enum.DealStatusExpired
		}
		price.DealType = sub.Deal.DealType
		price.TargetingKind = enum.TargetingKindAllPints
		price.DealEndDate = sub.Deal.EndDate
	} else {
		price.TargetingKind = enum.TargetingKindSingle
		price.DrinkIDs = []int64{sub.DrinkID}
	}
	return view, nil
}

func (f *fakePrices) Edit(context.Context, int64, uuid.UUID, int64, time.Time) error {
	return f.err
}

func (f *fakePrices) ExpireDeal(context.Context, int64, uuid.UUID, time.Time) error {
	return f.err
}

func (f *fakePrices) Delete(context.Context, int64, uuid.UUID, time.Time) error {
	return f.err
}

func (f *fakePrices) Verify(
	_ context.Context, priceID int64, _ uuid.UUID, _ bool, proposedAmount *int64, _ time.Time,
) (*service.PriceConfidence, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.verified = proposedAmount
	return &service.PriceConfidence{
		PriceID: priceID,
		Result:  confidence.Result{Level: enum.ConfidenceLevelMedium, RecentAccurate: 1},
	}, nil
}

func (f *fakePrices) Confidence(_ context.Context, priceID int64, _ time.Time) (*service.PriceConfidence, error) {
	if f.err != nil {
		return nil, f.err
	}
	proposed := int64(520)
	return &service.PriceConfidence{
		PriceID:        priceID,
		Result:         confidence.Result{Level: enum.ConfidenceLevelHigh, RecentAccurate: 3},
		Corrections:    []confidence.Correction{{Amount: 520, Supporters: 2}},
		ProposedAmount: &proposed,
	}, nil
}

func (f *fakePrices) ListForPub(_ context.Context, pubID int64, now time.Time) ([]*service.PriceView, error) {
	if f.err != nil {
		return nil, f.err
	}
	end := now.Add(-time.Hour)
	return []*service.PriceView{
		{
			Price:      &types.Price{ID: 1, PubID: pubID, Amount: 550, TargetingKind: enum.TargetingKindSingle, DrinkIDs: []int64{4}},
			Confidence: confidence.Result{Level: enum.ConfidenceLevelLow},
		},
		{
			Price: &types.Price{
				ID: 2, PubID: pubID, Amount: 400, IsDeal: true, DealType: enum.DealTypeDrink,
				TargetingKind: enum.TargetingKindAllPints, DealEndDate: &end,
			},
			DealStatus: enum.DealStatusExpired,
		},
	}, nil
}

// fakeVotes toggles a single voter's vote.
type fakeVotes struct {
	err error
}

func (f *fakeVotes) CastPriceVote(
	_ context.Context, _ int64, _ uuid.UUID, choice enum.VoteChoice, _ time.Time,
) (tally.Result, error) {
	if f.err != nil {
		return tally.Result{}, f.err
	}
	if !choice.IsPriceChoice() {
		return tally.Result{}, engine.Invalid("choice", "must be up or down")
	}
	return tally.Apply(nil, choice), nil
}

func (f *fakeVotes) PriceTally(context.Context, int64) (tally.Tally, error) {
	return tally.Tally{Positive: 1}, f.err
}

// fakeAmenities flips wifi on the first vote.
type fakeAmenities struct {
	err error
}

func (f *fakeAmenities) Vote(
	_ context.Context, _ int64, _ enum.Amenity, _ uuid.UUID, choice enum.VoteChoice, _ time.Time,
) (*models.AmenityOutcome, error) {
	if f.err != nil {
		return nil, f.err
	}
	value := choice == enum.VoteChoiceYes
	return &models.AmenityOutcome{
		Vote:     tally.Apply(nil, choice),
		Claim:    amenity.Claim{Yes: 3},
		Decision: amenity.Decision{Value: &value, Overwrite: true},
	}, nil
}

func (f *fakeAmenities) Claims(context.Context, int64) ([]*service.AmenityView, error) {
	if f.err != nil {
		return nil, f.err
	}
	yes := true
	return []*service.AmenityView{
		{Amenity: enum.AmenityWifi, Value: &yes, Claim: amenity.Claim{Yes: 4, No: 1}},
		{Amenity: enum.AmenityPoolTable, Claim: amenity.Claim{No: 1}},
	}, nil
}

func (f *fakeAmenities) ReconcilePub(context.Context, int64, time.Time) (int, error) {
	return 2, f.err
}

// fakeModeration treats one user id as the only admin.
type fakeModeration struct {
	admin   uuid.UUID
	trusted map[uuid.UUID]bool
	err     error
}

func (f *fakeModeration) RequireAdmin(_ context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return engine.ErrUnauthenticated
	}
	if userID != f.admin {
		return engine.ErrForbidden
	}
	return nil
}

func (f *fakeModeration) SubmitReview(
	_ context.Context, sub *service.ReviewSubmission, now time.Time,
) (*types.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.Review{
		ID: 5, PubID: sub.PubID, UserID: sub.UserID, Comment: sub.Comment, Ratings: sub.Ratings,
		IsApproved: f.trusted[sub.UserID], CreatedAt: now, UpdatedAt: now,
	}, nil
}

func (f *fakeModeration) SubmitPhoto(
	_ context.Context, sub *service.PhotoSubmission, now time.Time,
) (*types.Photo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.Photo{
		ID: 6, PubID: sub.PubID, UserID: sub.UserID, StorageKey: sub.StorageKey,
		IsApproved: f.trusted[sub.UserID], CreatedAt: now,
	}, nil
}

func (f *fakeModeration) Decide(
	ctx context.Context, adminID uuid.UUID, entityType enum.EntityType, _ int64,
	action enum.ModerationAction, _ time.Time,
) (*models.ModerationOutcome, error) {
	if err := f.RequireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if entityType != enum.EntityTypeReview && entityType != enum.EntityTypePhoto {
		return nil, engine.Invalid("entity_type", entityType.String()+" is not moderated")
	}
	decision, err := moderation.Decide(enum.ModerationStatusPending, action)
	if err != nil {
		return nil, err
	}
	return &models.ModerationOutcome{Decision: decision}, nil
}

func (f *fakeModeration) ListPending(ctx context.Context, adminID uuid.UUID, _ int) ([]*types.PendingItem, error) {
	if err := f.RequireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return []*types.PendingItem{
		{EntityType: enum.EntityTypeReview, ID: 1, PubID: 2, Review: &types.Review{ID: 1, PubID: 2}},
		{EntityType: enum.EntityTypePhoto, ID: 3, PubID: 2, Photo: &types.Photo{ID: 3, PubID: 2}},
	}, nil
}

func (f *fakeModeration) ListReviews(_ context.Context, pubID int64, viewerID uuid.UUID) ([]*types.Review, error) {
	reviews := []*types.Review{{ID: 1, PubID: pubID, IsApproved: true}}
	if viewerID == f.admin {
		reviews = append(reviews, &types.Review{ID: 2, PubID: pubID})
	}
	return reviews, nil
}

func (f *fakeModeration) ListPhotos(_ context.Context, pubID int64, _ uuid.UUID) ([]*types.Photo, error) {
	return []*types.Photo{{ID: 1, PubID: pubID, IsApproved: true}}, nil
}

func (f *fakeModeration) SetTrusted(ctx context.Context, adminID, userID uuid.UUID, trusted bool, _ time.Time) error {
	if err := f.RequireAdmin(ctx, adminID); err != nil {
		return err
	}
	f.trusted[userID] = trusted
	return nil
}

// fakeReports keeps reports in memory.
type fakeReports struct {
	admin   uuid.UUID
	err     error
	reports map[int64]*types.Report
	last    *service.ReportSubmission
}

func (f *fakeReports) Create(_ context.Context, sub *service.ReportSubmission, now time.Time) (*types.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := moderation.ValidateReport(sub.ReportSubmission); err != nil {
		return nil, err
	}
	f.last = sub
	report := &types.Report{
		ID:         int64(len(f.reports) + 1),
		EntityType: sub.EntityType,
		EntityID:   sub.EntityID,
		ReporterID: sub.ReporterID,
		ReportType: sub.ReportType,
		Details:    sub.Details,
		Status:     enum.ReportStatusPending,
		CreatedAt:  now,
	}
	f.reports[report.ID] = report
	return report, nil
}

func (f *fakeReports) Resolve(
	ctx context.Context, adminID uuid.UUID, reportID int64, _ bool, now time.Time,
) (*types.Report, error) {
	return f.close(adminID, reportID, enum.ReportStatusResolved, now)
}

func (f *fakeReports) Dismiss(ctx context.Context, adminID uuid.UUID, reportID int64, now time.Time) (*types.Report, error) {
	return f.close(adminID, reportID, enum.ReportStatusDismissed, now)
}

func (f *fakeReports) ListPending(_ context.Context, adminID uuid.UUID, _ int64, _ int) ([]*types.Report, error) {
	if adminID != f.admin {
		return nil, engine.ErrForbidden
	}
	var pending []*types.Report
	for _, report := range f.reports {
		if report.Status == enum.ReportStatusPending {
			pending = append(pending, report)
		}
	}
	return pending, nil
}

func (f *fakeReports) close(
	adminID uuid.UUID, reportID int64, next enum.ReportStatus, now time.Time,
) (*types.Report, error) {
	if adminID != f.admin {
		return nil, engine.ErrForbidden
	}
	report, ok := f.reports[reportID]
	if !ok {
		return nil, engine.ErrNotFound
	}
	if err := moderation.TransitionReport(report.Status, next); err != nil {
		return nil, err
	}
	report.Status = next
	report.ReviewedBy = adminID
	report.ReviewedAt = &now
	return report, nil
}

// fakeActivity returns two audit rows and records the last query.
type fakeActivity struct {
	admin      uuid.UUID
	lastFilter types.ActivityFilter
	lastCursor *types.LogCursor
}

func (f *fakeActivity) History(
	_ context.Context, adminID uuid.UUID, filter types.ActivityFilter, cursor *types.LogCursor, limit int,
) ([]*types.ActivityLog, *types.LogCursor, error) {
	if adminID != f.admin {
		return nil, nil, engine.ErrForbidden
	}
	f.lastFilter = filter
	f.lastCursor = cursor

	at := time.Date(2025, 6, 6, 20, 0, 0, 0, time.UTC)
	logs := []*types.ActivityLog{
		{
			Sequence:          9,
			EntityType:        types.EntityRef(enum.EntityTypeReview),
			EntityID:          4,
			ActorID:           adminID,
			ActivityType:      enum.ActivityTypeContentApproved,
			ActivityTimestamp: at,
		},
		{
			Sequence:          8,
			SubjectUserID:     adminID,
			ActivityType:      enum.ActivityTypeProfileTrustChanged,
			ActivityTimestamp: at.Add(-time.Minute),
		},
	}
	if limit < len(logs) {
		return logs[:limit], &types.LogCursor{Timestamp: logs[limit].ActivityTimestamp, Sequence: logs[limit].Sequence}, nil
	}
	return logs, nil, nil
}
