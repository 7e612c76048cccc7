package database

import (
	"github.com/pintwise/pintwise/internal/cache"
	"github.com/pintwise/pintwise/internal/database/service"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/metrics"
	"go.uber.org/zap"
)

// ServiceDeps carries what the services need beyond the models.
// Cache and Metrics may be nil.
type ServiceDeps struct {
	Policies service.Policies
	Cache    *cache.PubCache
	Metrics  *metrics.Metrics
	Reports  service.ReportLimits
}

// Service provides access to all business logic services.
type Service struct {
	vote       *service.VoteService
	price      *service.PriceService
	amenity    *service.AmenityService
	moderation *service.ModerationService
	report     *service.ReportService
	pub        *service.PubService
	audit      *service.AuditService
	activity   *service.ActivityService
}

// NewService creates a new service instance with all services.
func NewService(repository *Repository, deps ServiceDeps, logger *zap.Logger) *Service {
	pubModel := repository.Pub()
	voteModel := repository.Vote()
	priceModel := repository.Price()
	reviewModel := repository.Review()
	photoModel := repository.Photo()
	profileModel := repository.Profile()
	activityModel := repository.Activity()

	removers := map[enum.EntityType]service.Deleter{
		enum.EntityTypePrice:  priceModel,
		enum.EntityTypeDeal:   priceModel,
		enum.EntityTypeReview: reviewModel,
		enum.EntityTypePhoto:  photoModel,
	}

	return &Service{
		vote: service.NewVote(voteModel, deps.Metrics, logger),
		price: service.NewPrice(
			priceModel, profileModel, profileModel, activityModel,
			deps.Policies.Confidence, deps.Metrics, logger,
		),
		amenity: service.NewAmenity(
			voteModel, pubModel, deps.Cache, activityModel, deps.Policies, deps.Metrics, logger,
		),
		moderation: service.NewModeration(
			reviewModel, photoModel, repository.Moderation(), profileModel, profileModel, profileModel,
			activityModel, deps.Metrics, logger,
		),
		report: service.NewReport(
			repository.Report(), profileModel, removers, deps.Reports, activityModel, deps.Metrics, logger,
		),
		pub:      service.NewPub(pubModel, deps.Cache, profileModel, deps.Policies.Schedule, logger),
		audit:    service.NewAudit(priceModel, activityModel, deps.Policies, logger),
		activity: service.NewActivity(activityModel, profileModel, logger),
	}
}

// Vote returns the vote service.
func (s *Service) Vote() *service.VoteService {
	return s.vote
}

// Price returns the price service.
func (s *Service) Price() *service.PriceService {
	return s.price
}

// Amenity returns the amenity service.
func (s *Service) Amenity() *service.AmenityService {
	return s.amenity
}

// Moderation returns the moderation service.
func (s *Service) Moderation() *service.ModerationService {
	return s.moderation
}

// Report returns the report service.
func (s *Service) Report() *service.ReportService {
	return s.report
}

// Pub returns the pub service.
func (s *Service) Pub() *service.PubService {
	return s.pub
}

// Audit returns the audit service.
func (s *Service) Audit() *service.AuditService {
	return s.audit
}

// Activity returns the audit trail service.
func (s *Service) Activity() *service.ActivityService {
	return s.activity
}
