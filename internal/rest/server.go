package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/pintwise/pintwise/internal/database"
	"github.com/pintwise/pintwise/internal/metrics"
	"github.com/pintwise/pintwise/internal/rest/handler"
	"github.com/pintwise/pintwise/internal/rest/middleware/auth"
	"github.com/pintwise/pintwise/internal/rest/middleware/ip"
	"github.com/pintwise/pintwise/internal/rest/middleware/logging"
	"github.com/pintwise/pintwise/internal/rest/middleware/ratelimit"
	"github.com/pintwise/pintwise/internal/rest/render"
	"github.com/pintwise/pintwise/internal/setup/config"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Services are the business services behind the REST API.
type Services struct {
	Pubs       handler.PubService
	Prices     handler.PriceService
	Votes      handler.VoteService
	Amenities  handler.AmenityService
	Moderation handler.ModerationService
	Reports    handler.ReportService
	Activity   handler.ActivityService
}

// ServicesFrom returns the services of a database client.
func ServicesFrom(svc *database.Service) Services {
	return Services{
		Pubs:       svc.Pub(),
		Prices:     svc.Price(),
		Votes:      svc.Vote(),
		Amenities:  svc.Amenity(),
		Moderation: svc.Moderation(),
		Reports:    svc.Report(),
		Activity:   svc.Activity(),
	}
}

// HealthCheck reports whether the server's dependencies are reachable.
type HealthCheck func(ctx context.Context) error

// Options configure a Server. Metrics and Health may be nil.
type Options struct {
	Config  *config.APIConfig
	Metrics *metrics.Metrics
	Health  HealthCheck
	Clock   handler.Clock
}

// Server implements the REST API service.
type Server struct {
	handler     http.Handler
	rateLimiter *ratelimit.Middleware

	pubHandler      *handler.PubHandler
	priceHandler    *handler.PriceHandler
	amenityHandler  *handler.AmenityHandler
	contentHandler  *handler.ContentHandler
	reportHandler   *handler.ReportHandler
	activityHandler *handler.ActivityHandler
}

// NewServer creates a new REST API server.
func NewServer(services Services, opts Options, logger *zap.Logger) (*Server, error) {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	// Create server instance with handlers
	server := &Server{
		pubHandler:      handler.NewPubHandler(services.Pubs, now, logger),
		priceHandler:    handler.NewPriceHandler(services.Prices, services.Votes, now, logger),
		amenityHandler:  handler.NewAmenityHandler(services.Amenities, services.Moderation, now, logger),
		contentHandler:  handler.NewContentHandler(services.Moderation, now, logger),
		reportHandler:   handler.NewReportHandler(services.Reports, now, logger),
		activityHandler: handler.NewActivityHandler(services.Activity, logger),
	}

	// Create middleware instances
	ipMiddleware, err := ip.New(logger, opts.Config.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}
	loggingMiddleware := logging.New(logger)
	authMiddleware := auth.New(&opts.Config.Auth, logger)
	server.rateLimiter = ratelimit.New(&opts.Config.RateLimit, logger)

	// Create base router
	router := bunrouter.New(
		bunrouter.WithNotFoundHandler(func(w http.ResponseWriter, _ bunrouter.Request) error {
			return render.Error(w, http.StatusNotFound, "not_found", "Route not found")
		}),
		bunrouter.WithMethodNotAllowedHandler(func(w http.ResponseWriter, _ bunrouter.Request) error {
			return render.Error(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		}),
	)

	router.GET("/health", server.health(opts.Health))
	if opts.Metrics != nil {
		router.GET("/metrics", bunrouter.HTTPHandler(opts.Metrics.Handler()))
	}

	// Create API routes group
	router.Use(
		ipMiddleware.AsRESTMiddleware,
		loggingMiddleware.AsRESTMiddleware,
		opts.Metrics.Middleware,
		requestTimeout(time.Duration(opts.Config.Server.RequestTimeout)*time.Millisecond),
		authMiddleware.AsRESTMiddleware,
		server.rateLimiter.AsRESTMiddleware,
	).WithGroup("/v1", server.routes)

	// Add gzip compression
	server.handler = gzhttp.GzipHandler(router)

	return server, nil
}

// routes registers the versioned API.
func (s *Server) routes(g *bunrouter.Group) {
	// Public reads
	g.GET("/pubs", s.pubHandler.ListPubs)
	g.GET("/pubs/:id", s.pubHandler.GetPub)
	g.GET("/pubs/:id/status", s.pubHandler.GetStatus)
	g.GET("/pubs/:id/prices", s.priceHandler.ListPrices)
	g.GET("/pubs/:id/amenities", s.amenityHandler.ListAmenities)
	g.GET("/pubs/:id/reviews", s.contentHandler.ListReviews)
	g.GET("/pubs/:id/photos", s.contentHandler.ListPhotos)
	g.GET("/prices/:id/confidence", s.priceHandler.GetConfidence)

	// Anonymous reports are accepted
	g.POST("/reports", s.reportHandler.CreateReport)

	user := g.Use(auth.RequireUser)
	user.POST("/pubs/:id/prices", s.priceHandler.SubmitPrice)
	user.PATCH("/prices/:id", s.priceHandler.EditPrice)
	user.DELETE("/prices/:id", s.priceHandler.DeletePrice)
	user.POST("/prices/:id/expire", s.priceHandler.ExpireDeal)
	user.POST("/prices/:id/votes", s.priceHandler.VotePrice)
	user.POST("/prices/:id/verifications", s.priceHandler.VerifyPrice)
	user.POST("/pubs/:id/amenities/:amenity/votes", s.amenityHandler.VoteAmenity)
	user.PUT("/pubs/:id/reviews", s.contentHandler.SubmitReview)
	user.POST("/pubs/:id/photos", s.contentHandler.SubmitPhoto)

	// Admin role is checked by the services
	user.WithGroup("/admin", func(g *bunrouter.Group) {
		g.GET("/queue", s.contentHandler.GetQueue)
		g.POST("/queue/:entity/:id/decision", s.contentHandler.Decide)
		g.GET("/reports", s.reportHandler.ListReports)
		g.POST("/reports/:id/resolve", s.reportHandler.ResolveReport)
		g.POST("/reports/:id/dismiss", s.reportHandler.DismissReport)
		g.POST("/profiles/:id/trust", s.contentHandler.SetTrust)
		g.GET("/activity", s.activityHandler.ListActivity)
		g.POST("/pubs", s.pubHandler.CreatePub)
		g.PUT("/pubs/:id/hours", s.pubHandler.SetHours)
		g.POST("/pubs/:id/closed", s.pubHandler.SetClosed)
		g.POST("/pubs/:id/amenities/reconcile", s.amenityHandler.ReconcilePub)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close releases background resources held by the middlewares.
func (s *Server) Close() {
	s.rateLimiter.Close()
}

func (s *Server) health(check HealthCheck) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			if err := check(ctx); err != nil {
				return render.Error(w, http.StatusServiceUnavailable, "unhealthy", err.Error())
			}
		}
		return render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// requestTimeout bounds the context of every request. Zero disables the bound.
func requestTimeout(d time.Duration) bunrouter.MiddlewareFunc {
	return func(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
		if d <= 0 {
			return next
		}
		return func(w http.ResponseWriter, req bunrouter.Request) error {
			ctx, cancel := context.WithTimeout(req.Context(), d)
			defer cancel()
			return next(w, req.WithContext(ctx))
		}
	}
}
