package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine/deal"
	"github.com/pintwise/pintwise/internal/engine/tally"
	"github.com/pintwise/pintwise/internal/rest/convert"
	"github.com/pintwise/pintwise/internal/rest/middleware/auth"
	"github.com/pintwise/pintwise/internal/rest/render"
	restTypes "github.com/pintwise/pintwise/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// PriceService is the price functionality the REST API exposes.
type PriceService interface {
	Submit(ctx context.Context, sub *service.PriceSubmission, now time.Time) (*service.PriceView, error)
	Edit(ctx context.Context, priceID int64, actorID uuid.UUID, amount int64, now time.Time) error
	ExpireDeal(ctx context.Context, priceID int64, actorID uuid.UUID, now time.Time) error
	Delete(ctx context.Context, priceID int64, actorID uuid.UUID, now time.Time) error
	Verify(
		ctx context.Context, priceID int64, userID uuid.UUID, isAccurate bool, proposedAmount *int64, now time.Time,
	) (*service.PriceConfidence, error)
	Confidence(ctx context.Context, priceID int64, now time.Time) (*service.PriceConfidence, error)
	ListForPub(ctx context.Context, pubID int64, now time.Time) ([]*service.PriceView, error)
}

// VoteService is the price vote functionality the REST API exposes.
type VoteService interface {
	CastPriceVote(
		ctx context.Context, priceID int64, voterID uuid.UUID, choice enum.VoteChoice, now time.Time,
	) (tally.Result, error)
	PriceTally(ctx context.Context, priceID int64) (tally.Tally, error)
}

// PriceHandler handles prices, deals, price votes and verifications.
type PriceHandler struct {
	prices PriceService
	votes  VoteService
	now    Clock
	logger *zap.Logger
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(prices PriceService, votes VoteService, now Clock, logger *zap.Logger) *PriceHandler {
	return &PriceHandler{
		prices: prices,
		votes:  votes,
		now:    now,
		logger: logger.Named("price_handler"),
	}
}

// ListPrices returns the prices and deals of a pub with their confidence and deal status.
func (h *PriceHandler) ListPrices(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	views, err := h.prices.ListForPub(req.Context(), pubID, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, restTypes.ListPricesResponse{Prices: convert.PriceViews(views)})
}

// SubmitPrice submits a regular price or a deal for a pub.
func (h *PriceHandler) SubmitPrice(w http.ResponseWriter, req bunrouter.Request) error {
	pubID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.SubmitPriceRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	sub := &service.PriceSubmission{
		PubID:       pubID,
		SubmittedBy: auth.UserFromContext(req.Context()),
		Amount:      body.Amount,
		IsDeal:      body.IsDeal,
		DrinkID:     body.DrinkID,
		FoodItem:    body.FoodItem,
	}
	if body.IsDeal {
		if sub.Deal, err = dealSubmission(body); err != nil {
			return writeError(w, req, h.logger, err)
		}
	}

	view, err := h.prices.Submit(req.Context(), sub, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusCreated, convert.PriceView(view))
}

// EditPrice changes the amount of a price.
func (h *PriceHandler) EditPrice(w http.ResponseWriter, req bunrouter.Request) error {
	priceID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.EditPriceRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	userID := auth.UserFromContext(req.Context())
	if err := h.prices.Edit(req.Context(), priceID, userID, body.Amount, h.now()); err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.NoContent(w)
}

// ExpireDeal ends a deal now.
func (h *PriceHandler) ExpireDeal(w http.ResponseWriter, req bunrouter.Request) error {
	priceID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	if err := h.prices.ExpireDeal(req.Context(), priceID, auth.UserFromContext(req.Context()), h.now()); err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.NoContent(w)
}

// DeletePrice removes a price with its votes and verifications.
func (h *PriceHandler) DeletePrice(w http.ResponseWriter, req bunrouter.Request) error {
	priceID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	if err := h.prices.Delete(req.Context(), priceID, auth.UserFromContext(req.Context()), h.now()); err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.NoContent(w)
}

// VotePrice casts an up or down vote. Casting the same choice again clears the vote.
func (h *PriceHandler) VotePrice(w http.ResponseWriter, req bunrouter.Request) error {
	priceID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.VoteRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}
	choice, err := parseEnum("choice", body.Choice, enum.VoteChoiceString)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	result, err := h.votes.CastPriceVote(req.Context(), priceID, auth.UserFromContext(req.Context()), choice, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	counts, err := h.votes.PriceTally(req.Context(), priceID)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, restTypes.VoteResult{
		Outcome:   result.Outcome.String(),
		Upvotes:   counts.Positive,
		Downvotes: counts.Negative,
	})
}

// VerifyPrice records the caller's check of a price and returns the updated confidence.
func (h *PriceHandler) VerifyPrice(w http.ResponseWriter, req bunrouter.Request) error {
	priceID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	var body restTypes.VerifyRequest
	if err := decode(req, &body); err != nil {
		return writeError(w, req, h.logger, err)
	}

	result, err := h.prices.Verify(
		req.Context(), priceID, auth.UserFromContext(req.Context()), body.IsAccurate, body.ProposedAmount, h.now(),
	)
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, convert.PriceConfidence(result))
}

// GetConfidence classifies a price and reports any correction it supports.
func (h *PriceHandler) GetConfidence(w http.ResponseWriter, req bunrouter.Request) error {
	priceID, err := pathID(req, "id")
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	result, err := h.prices.Confidence(req.Context(), priceID, h.now())
	if err != nil {
		return writeError(w, req, h.logger, err)
	}

	return render.JSON(w, http.StatusOK, convert.PriceConfidence(result))
}

func dealSubmission(body restTypes.SubmitPriceRequest) (deal.Submission, error) {
	dealType, err := parseEnum("deal_type", body.DealType, enum.DealTypeString)
	if err != nil {
		return deal.Submission{}, err
	}

	target := enum.DealTargetSpecific
	if body.Target != "" {
		if target, err = parseEnum("target", body.Target, enum.DealTargetString); err != nil {
			return deal.Submission{}, err
		}
	}

	return deal.Submission{
		DealType:    dealType,
		Target:      target,
		DrinkIDs:    body.DrinkIDs,
		FoodItem:    body.FoodItem,
		Description: body.Description,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
	}, nil
}
