package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/models"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/engine/confidence"
	"github.com/pintwise/pintwise/internal/engine/deal"
	"github.com/pintwise/pintwise/internal/metrics"
	"go.uber.org/zap"
)

// PriceStore stores price records and their verifications.
type PriceStore interface {
	Create(ctx context.Context, price *types.Price) error
	Get(ctx context.Context, id int64) (*types.Price, error)
	ListByPub(ctx context.Context, pubID int64) ([]*types.Price, error)
	UpdateAmount(ctx context.Context, id int64, amount int64, now time.Time) error
	ExpireDeal(ctx context.Context, id int64, now time.Time) (bool, error)
	Delete(ctx context.Context, id int64) error
	UpsertVerification(ctx context.Context, verification *types.PriceVerification) (*models.VerificationOutcome, error)
	GetVerifications(ctx context.Context, priceID int64) ([]*types.PriceVerification, error)
	GetVerificationsForPrices(ctx context.Context, priceIDs []int64) (map[int64][]*types.PriceVerification, error)
}

// PriceSubmission is a new regular price or deal.
type PriceSubmission struct {
	PubID       int64
	SubmittedBy uuid.UUID
	Amount      int64
	IsDeal      bool
	// DrinkID is the drink of a regular price.
	DrinkID int64
	// FoodItem is the food of a regular food price.
	FoodItem string
	// Deal carries the deal fields when IsDeal is set.
	Deal deal.Submission
}

// PriceConfidence is the confidence of a price with its correction signals.
type PriceConfidence struct {
	PriceID int64 `json:"priceId"`
	confidence.Result
	Corrections []confidence.Correction `json:"corrections"`
	// ProposedAmount is set when enough recent dissent agrees on a different amount.
	ProposedAmount *int64 `json:"proposedAmount,omitempty"`
}

// PriceView is a price with the values derived at read time.
type PriceView struct {
	Price       *types.Price
	Confidence  confidence.Result
	DealStatus  enum.DealStatus
	StartsLater bool
}

// PriceService handles price and deal business logic.
type PriceService struct {
	prices        PriceStore
	profiles      ProfileReader
	contributions ContributionCounter
	activity      ActivityLogger
	policy        confidence.Policy
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewPrice creates a new price service.
func NewPrice(
	prices PriceStore,
	profiles ProfileReader,
	contributions ContributionCounter,
	activity ActivityLogger,
	policy confidence.Policy,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PriceService {
	return &PriceService{
		prices:        prices,
		profiles:      profiles,
		contributions: contributions,
		activity:      activity,
		policy:        policy,
		metrics:       m,
		logger:        logger.Named("price_service"),
	}
}

// Submit validates and stores a new price or deal and returns its view at now.
// Nothing is stored when validation fails.
func (s *PriceService) Submit(ctx context.Context, sub *PriceSubmission, now time.Time) (*PriceView, error) {
	if sub.SubmittedBy == uuid.Nil {
		return nil, engine.ErrUnauthenticated
	}
	if err := deal.ValidateAmount(sub.Amount); err != nil {
		return nil, err
	}

	price := &types.Price{
		PubID:       sub.PubID,
		Amount:      sub.Amount,
		IsDeal:      sub.IsDeal,
		SubmittedBy: sub.SubmittedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if sub.IsDeal {
		normalized, err := deal.Normalize(sub.Deal)
		if err != nil {
			return nil, err
		}
		price.DealType = sub.Deal.DealType
		price.TargetingKind = normalized.Targeting.Kind
		price.DrinkIDs = normalized.Targeting.DrinkIDs
		price.FoodItem = normalized.FoodItem
		price.Description = normalized.Description
		price.DealStartDate = normalized.StartDate
		price.DealEndDate = normalized.EndDate
	} else {
		foodItem := deal.CleanText(sub.FoodItem)
		switch {
		case sub.DrinkID > 0 && foodItem != "":
			return nil, engine.Invalid("drink_id", "a price is for a drink or a food item, not both")
		case sub.DrinkID > 0:
			targeting := deal.Single(sub.DrinkID)
			price.TargetingKind = targeting.Kind
			price.DrinkIDs = targeting.DrinkIDs
		case foodItem != "":
			if len([]rune(foodItem)) > deal.MaxFoodItemLength {
				return nil, engine.Invalid("food_item", fmt.Sprintf("must be at most %d characters", deal.MaxFoodItemLength))
			}
			price.TargetingKind = enum.TargetingKindNone
			price.FoodItem = foodItem
		default:
			return nil, engine.Invalid("drink_id", "a drink or a food item is required")
		}
	}

	if err := s.prices.Create(ctx, price); err != nil {
		return nil, fmt.Errorf("failed to submit price: %w", storeError(err))
	}

	s.countContribution(ctx, sub.SubmittedBy)
	return s.view(price, nil, now), nil
}

// Edit changes the amount of a price. Only the submitter or an admin may edit.
func (s *PriceService) Edit(ctx context.Context, priceID int64, actorID uuid.UUID, amount int64, now time.Time) error {
	if err := deal.ValidateAmount(amount); err != nil {
		return err
	}

	if _, err := s.authorize(ctx, priceID, actorID); err != nil {
		return err
	}

	if err := s.prices.UpdateAmount(ctx, priceID, amount, now); err != nil {
		return fmt.Errorf("failed to edit price: %w", storeError(err))
	}
	return nil
}

// ExpireDeal ends a deal now. Only the submitter or an admin may expire a deal.
func (s *PriceService) ExpireDeal(ctx context.Context, priceID int64, actorID uuid.UUID, now time.Time) error {
	price, err := s.authorize(ctx, priceID, actorID)
	if err != nil {
		return err
	}
	if !price.IsDeal {
		return engine.Invalid("price_id", "not a deal")
	}

	expired, err := s.prices.ExpireDeal(ctx, priceID, now)
	if err != nil {
		return fmt.Errorf("failed to expire deal: %w", storeError(err))
	}
	if !expired {
		return fmt.Errorf("%w: deal has already expired", engine.ErrInvalidTransition)
	}

	s.activity.Log(ctx, &types.ActivityLog{
		EntityType:        types.EntityRef(enum.EntityTypeDeal),
		EntityID:          priceID,
		ActorID:           actorID,
		ActivityType:      enum.ActivityTypeDealExpired,
		ActivityTimestamp: now,
		Details:           map[string]any{"pub_id": price.PubID},
	})

	return nil
}

// Delete removes a price with its votes and verifications. Only the submitter or an admin may delete.
func (s *PriceService) Delete(ctx context.Context, priceID int64, actorID uuid.UUID, now time.Time) error {
	price, err := s.authorize(ctx, priceID, actorID)
	if err != nil {
		return err
	}

	if err := s.prices.Delete(ctx, priceID); err != nil {
		return fmt.Errorf("failed to delete price: %w", storeError(err))
	}

	s.activity.Log(ctx, &types.ActivityLog{
		EntityType:        types.EntityRef(entityTypeOf(price)),
		EntityID:          priceID,
		ActorID:           actorID,
		ActivityType:      enum.ActivityTypePriceDeleted,
		ActivityTimestamp: now,
		Details: map[string]any{
			"pub_id":       price.PubID,
			"amount":       price.Amount,
			"submitted_by": price.SubmittedBy.String(),
		},
	})

	return nil
}

// Verify records the user's check of a price, replacing their earlier one, and returns the
// updated confidence. A proposed amount is only accepted with an inaccurate verification.
func (s *PriceService) Verify(
	ctx context.Context, priceID int64, userID uuid.UUID, isAccurate bool, proposedAmount *int64, now time.Time,
) (*PriceConfidence, error) {
	if userID == uuid.Nil {
		return nil, engine.ErrUnauthenticated
	}
	if proposedAmount != nil {
		if isAccurate {
			return nil, engine.Invalid("proposed_amount", "only allowed when the price is inaccurate")
		}
		if err := deal.ValidateAmount(*proposedAmount); err != nil {
			var verr *engine.ValidationError
			if errors.As(err, &verr) {
				return nil, engine.Invalid("proposed_amount", verr.Reason)
			}
			return nil, err
		}
	}

	outcome, err := s.prices.UpsertVerification(ctx, &types.PriceVerification{
		PriceID:        priceID,
		UserID:         userID,
		IsAccurate:     isAccurate,
		ProposedAmount: proposedAmount,
		VerifiedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify price: %w", storeError(err))
	}

	if outcome.Previous == nil {
		s.countContribution(ctx, userID)
	}

	return s.Confidence(ctx, priceID, now)
}

// Confidence classifies a price and reports any correction it supports.
func (s *PriceService) Confidence(ctx context.Context, priceID int64, now time.Time) (*PriceConfidence, error) {
	if _, err := s.prices.Get(ctx, priceID); err != nil {
		return nil, fmt.Errorf("failed to get price: %w", storeError(err))
	}

	rows, err := s.prices.GetVerifications(ctx, priceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get verifications: %w", err)
	}
	verifications := toVerifications(rows)

	result := &PriceConfidence{
		PriceID:     priceID,
		Result:      s.policy.Classify(verifications, now),
		Corrections: s.policy.Corrections(verifications, now),
	}
	if amount, ok := s.policy.Propose(verifications, now); ok {
		result.ProposedAmount = &amount
		s.metrics.CorrectionProposed()
	}

	return result, nil
}

// ListForPub returns the prices of a pub with their confidence and deal status at now.
func (s *PriceService) ListForPub(ctx context.Context, pubID int64, now time.Time) ([]*PriceView, error) {
	prices, err := s.prices.ListByPub(ctx, pubID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}

	ids := make([]int64, len(prices))
	for i, price := range prices {
		ids[i] = price.ID
	}

	verifications, err := s.prices.GetVerificationsForPrices(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get verifications: %w", err)
	}

	views := make([]*PriceView, 0, len(prices))
	for _, price := range prices {
		views = append(views, s.view(price, verifications[price.ID], now))
	}

	return views, nil
}

// view classifies a price and derives its deal status at now.
func (s *PriceService) view(price *types.Price, rows []*types.PriceVerification, now time.Time) *PriceView {
	view := &PriceView{
		Price:      price,
		Confidence: s.policy.Classify(toVerifications(rows), now),
		DealStatus: enum.DealStatusActive,
	}
	if price.IsDeal {
		view.DealStatus = deal.Status(price.DealEndDate, now)
		view.StartsLater = deal.StartsLater(price.DealStartDate, now)
	}
	return view
}

// authorize loads a price and checks that the actor submitted it or is an admin.
func (s *PriceService) authorize(ctx context.Context, priceID int64, actorID uuid.UUID) (*types.Price, error) {
	if actorID == uuid.Nil {
		return nil, engine.ErrUnauthenticated
	}

	price, err := s.prices.Get(ctx, priceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get price: %w", storeError(err))
	}
	if price.SubmittedBy == actorID {
		return price, nil
	}

	if err := requireAdmin(ctx, s.profiles, actorID); err != nil {
		if errors.Is(err, engine.ErrForbidden) {
			return nil, fmt.Errorf("%w: only the submitter or an admin may change this price", engine.ErrForbidden)
		}
		return nil, err
	}

	return price, nil
}

func (s *PriceService) countContribution(ctx context.Context, userID uuid.UUID) {
	if err := s.contributions.IncrementContributions(ctx, userID, 1); err != nil {
		s.logger.Error("Failed to count contribution",
			zap.Error(err),
			zap.String("userID", userID.String()))
	}
}

func toVerifications(rows []*types.PriceVerification) []confidence.Verification {
	verifications := make([]confidence.Verification, len(rows))
	for i, row := range rows {
		verifications[i] = confidence.Verification{
			UserID:         row.UserID,
			IsAccurate:     row.IsAccurate,
			ProposedAmount: row.ProposedAmount,
			VerifiedAt:     row.VerifiedAt,
		}
	}
	return verifications
}

func entityTypeOf(price *types.Price) enum.EntityType {
	if price.IsDeal {
		return enum.EntityTypeDeal
	}
	return enum.EntityTypePrice
}
