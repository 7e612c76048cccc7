package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/models"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine/amenity"
	"github.com/pintwise/pintwise/internal/engine/moderation"
	"github.com/pintwise/pintwise/internal/engine/tally"
)

var errStoreDown = errors.New("connection refused")

// fakeProfiles is an in-memory profile store.
type fakeProfiles struct {
	mu            sync.Mutex
	profiles      map[uuid.UUID]*types.Profile
	err           error
	contributions map[uuid.UUID]int32
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		profiles:      make(map[uuid.UUID]*types.Profile),
		contributions: make(map[uuid.UUID]int32),
	}
}

func (f *fakeProfiles) add(userID uuid.UUID, trusted, admin bool) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[userID] = &types.Profile{UserID: userID, IsTrusted: trusted, IsAdmin: admin}
	return userID
}

func (f *fakeProfiles) Get(_ context.Context, userID uuid.UUID) (*types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, types.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) SetTrusted(_ context.Context, userID uuid.UUID, trusted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		p = &types.Profile{UserID: userID}
		f.profiles[userID] = p
	}
	p.IsTrusted = trusted
	return nil
}

func (f *fakeProfiles) IncrementContributions(_ context.Context, userID uuid.UUID, n int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contributions[userID] += n
	return nil
}

func (f *fakeProfiles) contributionsOf(userID uuid.UUID) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contributions[userID]
}

// fakeActivity records audit rows.
type fakeActivity struct {
	mu   sync.Mutex
	logs []*types.ActivityLog
}

func (f *fakeActivity) Log(_ context.Context, log *types.ActivityLog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, log)
}

func (f *fakeActivity) LogBatch(_ context.Context, logs []*types.ActivityLog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, logs...)
}

func (f *fakeActivity) activityTypes() []enum.ActivityType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]enum.ActivityType, len(f.logs))
	for i, l := range f.logs {
		out[i] = l.ActivityType
	}
	return out
}

// fakePrices is an in-memory price store.
type fakePrices struct {
	mu            sync.Mutex
	nextID        int64
	pubs          map[int64]bool
	prices        map[int64]*types.Price
	verifications map[int64]map[uuid.UUID]*types.PriceVerification
}

func newFakePrices(pubIDs ...int64) *fakePrices {
	f := &fakePrices{
		pubs:          make(map[int64]bool),
		prices:        make(map[int64]*types.Price),
		verifications: make(map[int64]map[uuid.UUID]*types.PriceVerification),
	}
	for _, id := range pubIDs {
		f.pubs[id] = true
	}
	return f
}

func (f *fakePrices) Create(_ context.Context, price *types.Price) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.pubs[price.PubID] {
		return types.ErrPubNotFound
	}
	f.nextID++
	price.ID = f.nextID
	cp := *price
	f.prices[price.ID] = &cp
	return nil
}

func (f *fakePrices) Get(_ context.Context, id int64) (*types.Price, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prices[id]
	if !ok {
		return nil, types.ErrPriceNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePrices) ListByPub(_ context.Context, pubID int64) ([]*types.Price, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Price
	for id := int64(1); id <= f.nextID; id++ {
		if p, ok := f.prices[id]; ok && p.PubID == pubID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePrices) UpdateAmount(_ context.Context, id int64, amount int64, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prices[id]
	if !ok {
		return types.ErrPriceNotFound
	}
	p.Amount = amount
	p.UpdatedAt = now
	return nil
}

func (f *fakePrices) ExpireDeal(_ context.Context, id int64, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prices[id]
	if !ok || !p.IsDeal || (p.DealEndDate != nil && !p.DealEndDate.After(now)) {
		return false, nil
	}
	end := now
	p.DealEndDate = &end
	return true, nil
}

func (f *fakePrices) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.prices[id]; !ok {
		return types.ErrPriceNotFound
	}
	delete(f.prices, id)
	delete(f.verifications, id)
	return nil
}

func (f *fakePrices) UpsertVerification(
	_ context.Context, v *types.PriceVerification,
) (*models.VerificationOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prices[v.PriceID]
	if !ok {
		return nil, types.ErrPriceNotFound
	}
	if f.verifications[v.PriceID] == nil {
		f.verifications[v.PriceID] = make(map[uuid.UUID]*types.PriceVerification)
	}

	outcome := &models.VerificationOutcome{Previous: f.verifications[v.PriceID][v.UserID]}
	if outcome.Previous != nil && outcome.Previous.IsAccurate {
		outcome.Delta--
	}
	if v.IsAccurate {
		outcome.Delta++
	}

	cp := *v
	f.verifications[v.PriceID][v.UserID] = &cp
	p.VerificationCount += outcome.Delta
	return outcome, nil
}

func (f *fakePrices) GetVerifications(_ context.Context, priceID int64) ([]*types.PriceVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.PriceVerification
	for _, v := range f.verifications[priceID] {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePrices) GetVerificationsForPrices(
	ctx context.Context, priceIDs []int64,
) (map[int64][]*types.PriceVerification, error) {
	out := make(map[int64][]*types.PriceVerification)
	for _, id := range priceIDs {
		vs, _ := f.GetVerifications(ctx, id)
		if len(vs) > 0 {
			out[id] = vs
		}
	}
	return out, nil
}

// fakeVotes is an in-memory vote store for prices and amenities.
type fakeVotes struct {
	mu        sync.Mutex
	err       error
	price     map[int64]map[uuid.UUID]enum.VoteChoice
	amenities map[int64]map[enum.Amenity]map[uuid.UUID]enum.VoteChoice
	canonical map[int64]map[enum.Amenity]bool
}

func newFakeVotes() *fakeVotes {
	return &fakeVotes{
		price:     make(map[int64]map[uuid.UUID]enum.VoteChoice),
		amenities: make(map[int64]map[enum.Amenity]map[uuid.UUID]enum.VoteChoice),
		canonical: make(map[int64]map[enum.Amenity]bool),
	}
}

func (f *fakeVotes) CastPriceVote(
	_ context.Context, priceID int64, voterID uuid.UUID, choice enum.VoteChoice, _ time.Time,
) (tally.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return tally.Result{}, f.err
	}
	if f.price[priceID] == nil {
		f.price[priceID] = make(map[uuid.UUID]enum.VoteChoice)
	}
	var existing *enum.VoteChoice
	if c, ok := f.price[priceID][voterID]; ok {
		existing = &c
	}
	result := tally.Apply(existing, choice)
	if result.Next == nil {
		delete(f.price[priceID], voterID)
	} else {
		f.price[priceID][voterID] = *result.Next
	}
	return result, nil
}

func (f *fakeVotes) GetPriceVoteChoices(_ context.Context, priceID int64) ([]enum.VoteChoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []enum.VoteChoice
	for _, c := range f.price[priceID] {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeVotes) CastAmenityVote(
	_ context.Context, pubID int64, key enum.Amenity, voterID uuid.UUID, choice enum.VoteChoice,
	_ time.Time, decide models.AmenityDecider,
) (*models.AmenityOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.amenities[pubID] == nil {
		f.amenities[pubID] = make(map[enum.Amenity]map[uuid.UUID]enum.VoteChoice)
	}
	if f.amenities[pubID][key] == nil {
		f.amenities[pubID][key] = make(map[uuid.UUID]enum.VoteChoice)
	}
	var existing *enum.VoteChoice
	if c, ok := f.amenities[pubID][key][voterID]; ok {
		existing = &c
	}
	result := tally.Apply(existing, choice)
	if result.Next == nil {
		delete(f.amenities[pubID][key], voterID)
	} else {
		f.amenities[pubID][key][voterID] = *result.Next
	}

	outcome := f.reconcileLocked(pubID, key, decide)
	outcome.Vote = result
	return outcome, nil
}

func (f *fakeVotes) ReconcileAmenity(
	_ context.Context, pubID int64, key enum.Amenity, _ time.Time, decide models.AmenityDecider,
) (*models.AmenityOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.reconcileLocked(pubID, key, decide), nil
}

func (f *fakeVotes) reconcileLocked(pubID int64, key enum.Amenity, decide models.AmenityDecider) *models.AmenityOutcome {
	var choices []enum.VoteChoice
	for _, c := range f.amenities[pubID][key] {
		choices = append(choices, c)
	}
	claim := amenity.FromTally(tally.Count(choices))

	var previous *bool
	if v, ok := f.canonical[pubID][key]; ok {
		previous = &v
	}

	decision := decide(claim, previous)
	if decision.Overwrite {
		if f.canonical[pubID] == nil {
			f.canonical[pubID] = make(map[enum.Amenity]bool)
		}
		f.canonical[pubID][key] = *decision.Value
	}

	return &models.AmenityOutcome{Claim: claim, Previous: previous, Decision: decision}
}

func (f *fakeVotes) GetAmenityClaims(_ context.Context, pubID int64) (map[enum.Amenity]amenity.Claim, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[enum.Amenity]amenity.Claim)
	for key, votes := range f.amenities[pubID] {
		var choices []enum.VoteChoice
		for _, c := range votes {
			choices = append(choices, c)
		}
		if len(choices) > 0 {
			out[key] = amenity.FromTally(tally.Count(choices))
		}
	}
	return out, nil
}

func (f *fakeVotes) GetAmenities(_ context.Context, pubID int64) ([]*types.PubAmenity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.PubAmenity
	for key, value := range f.canonical[pubID] {
		out = append(out, &types.PubAmenity{PubID: pubID, Amenity: key, Value: value})
	}
	return out, nil
}

// fakeContent is an in-memory review, photo and moderation store.
type fakeContent struct {
	mu       sync.Mutex
	nextID   int64
	pubs     map[int64]bool
	reviews  map[int64]*types.Review
	photos   map[int64]*types.Photo
	profiles *fakeProfiles
}

func newFakeContent(profiles *fakeProfiles, pubIDs ...int64) *fakeContent {
	f := &fakeContent{
		pubs:     make(map[int64]bool),
		reviews:  make(map[int64]*types.Review),
		photos:   make(map[int64]*types.Photo),
		profiles: profiles,
	}
	for _, id := range pubIDs {
		f.pubs[id] = true
	}
	return f
}

// reviewStore and photoStore split the fake so each satisfies one interface.
type reviewStore struct{ *fakeContent }

type photoStore struct{ *fakeContent }

func (f reviewStore) Upsert(_ context.Context, review *types.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.pubs[review.PubID] {
		return types.ErrPubNotFound
	}
	for id, r := range f.reviews {
		if r.PubID == review.PubID && r.UserID == review.UserID {
			review.ID = id
			review.CreatedAt = r.CreatedAt
			cp := *review
			f.reviews[id] = &cp
			return nil
		}
	}
	f.nextID++
	review.ID = f.nextID
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f reviewStore) ListByPub(
	_ context.Context, pubID int64, approvedOnly bool,
) ([]*types.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Review
	for id := int64(1); id <= f.nextID; id++ {
		r, ok := f.reviews[id]
		if !ok || r.PubID != pubID {
			continue
		}
		if !approvedOnly || r.Status() == enum.ModerationStatusApproved {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f reviewStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[id]; !ok {
		return types.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f photoStore) Create(_ context.Context, photo *types.Photo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.pubs[photo.PubID] {
		return types.ErrPubNotFound
	}
	f.nextID++
	photo.ID = f.nextID
	cp := *photo
	f.photos[photo.ID] = &cp
	return nil
}

func (f photoStore) ListByPub(
	_ context.Context, pubID int64, approvedOnly bool,
) ([]*types.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Photo
	for id := int64(1); id <= f.nextID; id++ {
		p, ok := f.photos[id]
		if !ok || p.PubID != pubID {
			continue
		}
		if !approvedOnly || p.Status() == enum.ModerationStatusApproved {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f photoStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.photos[id]; !ok {
		return types.ErrPhotoNotFound
	}
	delete(f.photos, id)
	return nil
}

func (f *fakeContent) Decide(
	ctx context.Context, entityType enum.EntityType, id int64, action enum.ModerationAction,
) (*models.ModerationOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		approved  *bool
		submitter uuid.UUID
		pubID     int64
	)
	switch entityType {
	case enum.EntityTypeReview:
		r, ok := f.reviews[id]
		if !ok {
			return nil, types.ErrReviewNotFound
		}
		approved, submitter, pubID = &r.IsApproved, r.UserID, r.PubID
	case enum.EntityTypePhoto:
		p, ok := f.photos[id]
		if !ok {
			return nil, types.ErrPhotoNotFound
		}
		approved, submitter, pubID = &p.IsApproved, p.UserID, p.PubID
	default:
		return nil, models.ErrNotModerated
	}

	current := enum.ModerationStatusPending
	if *approved {
		current = enum.ModerationStatusApproved
	}
	decision, err := moderation.Decide(current, action)
	if err != nil {
		return nil, err
	}

	if decision.Delete {
		delete(f.reviews, id)
		delete(f.photos, id)
	} else {
		*approved = true
		_ = f.profiles.IncrementContributions(ctx, submitter, 1)
		if decision.PromoteSubmitter {
			_ = f.profiles.SetTrusted(ctx, submitter, true)
		}
	}

	return &models.ModerationOutcome{Decision: decision, SubmitterID: submitter, PubID: pubID}, nil
}

func (f *fakeContent) GetPending(_ context.Context, limit int) ([]*types.PendingItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.PendingItem
	for id := int64(1); id <= f.nextID && len(out) < limit; id++ {
		if r, ok := f.reviews[id]; ok && !r.IsApproved {
			out = append(out, &types.PendingItem{
				EntityType: enum.EntityTypeReview, ID: id, PubID: r.PubID, UserID: r.UserID, Review: r,
			})
		}
		if p, ok := f.photos[id]; ok && !p.IsApproved {
			out = append(out, &types.PendingItem{
				EntityType: enum.EntityTypePhoto, ID: id, PubID: p.PubID, UserID: p.UserID, Photo: p,
			})
		}
	}
	return out, nil
}
