package ratelimit

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/rest/middleware/auth"
	"github.com/pintwise/pintwise/internal/rest/middleware/ip"
	"github.com/pintwise/pintwise/internal/rest/render"
	"github.com/pintwise/pintwise/internal/setup/config"
	"github.com/pintwise/pintwise/pkg/utils"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	errBlocked    = "temporarily blocked for repeated rate limit violations"
	errRateLimit  = "rate limit exceeded"
	headerRetryAt = "Retry-After"
)

type limiterState struct {
	mu           sync.Mutex
	limiter      *rate.Limiter
	strikes      int       // Number of times client has violated rate limit
	blockedUntil time.Time // Time until client is blocked for repeated violations
}

// Middleware implements rate limiting for API requests. Authenticated clients are keyed
// by user id and get their own limits; everyone else is keyed by client IP.
type Middleware struct {
	limiters *utils.TTLMap[string, *limiterState]
	config   *config.RateLimit
	logger   *zap.Logger
}

// New creates a new rate limiting middleware.
func New(config *config.RateLimit, logger *zap.Logger) *Middleware {
	// Use the longer of block duration or burst window * 2 for TTL
	ttl := time.Second * time.Duration(max(config.BurstSize, config.AuthBurstSize)*2)
	if blockTTL := time.Second * time.Duration(config.BlockDuration*2); blockTTL > ttl {
		ttl = blockTTL
	}
	ttl = max(ttl, time.Minute)

	return &Middleware{
		limiters: utils.NewTTLMap[string, *limiterState](ttl),
		config:   config,
		logger:   logger.Named("ratelimit_middleware"),
	}
}

// Close stops the background cleanup of idle clients.
func (m *Middleware) Close() {
	m.limiters.Close()
}

// AsRESTMiddleware returns a bunrouter middleware handler for rate limiting.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		key, authenticated := clientKey(req)

		if allowed, retryAfter, msg := m.checkRateLimit(key, authenticated, time.Now()); !allowed {
			// Add Retry-After header if there's a wait time
			if retryAfter > 0 {
				w.Header().Set(headerRetryAt, fmt.Sprintf("%.0f", math.Ceil(retryAfter.Seconds())))
			}
			return render.Error(w, http.StatusTooManyRequests, "rate_limited", msg)
		}

		return next(w, req)
	}
}

func clientKey(req bunrouter.Request) (string, bool) {
	if userID := auth.UserFromContext(req.Context()); userID != uuid.Nil {
		return "user:" + userID.String(), true
	}
	return "ip:" + ip.FromContext(req.Context()), false
}

// getLimiter returns the limiter state for a client, creating it on first use.
func (m *Middleware) getLimiter(key string, authenticated bool) *limiterState {
	return m.limiters.GetOrSet(key, func() *limiterState {
		if authenticated {
			return &limiterState{
				limiter: rate.NewLimiter(rate.Limit(m.config.AuthRequestsPerSecond), m.config.AuthBurstSize),
			}
		}
		return &limiterState{
			limiter: rate.NewLimiter(rate.Limit(m.config.RequestsPerSecond), m.config.BurstSize),
		}
	})
}

// checkRateLimit checks if the request should be allowed and updates violation tracking.
func (m *Middleware) checkRateLimit(key string, authenticated bool, now time.Time) (bool, time.Duration, string) {
	state := m.getLimiter(key, authenticated)

	state.mu.Lock()
	defer state.mu.Unlock()

	// Check if client is blocked
	if !state.blockedUntil.IsZero() && now.Before(state.blockedUntil) {
		retryAfter := state.blockedUntil.Sub(now).Round(time.Second)
		m.logger.Debug("Client is temporarily blocked",
			zap.String("client", key),
			zap.Duration("retry_after", retryAfter))
		return false, retryAfter, errBlocked
	}

	// Try to reserve a token
	var delay time.Duration
	if reservation := state.limiter.ReserveN(now, 1); reservation.OK() {
		delay = reservation.DelayFrom(now)
		if delay == 0 {
			state.strikes = 0
			return true, 0, ""
		}
		reservation.CancelAt(now)
	}

	state.strikes++

	// Block the client once it keeps hammering past the limit
	if m.config.StrikeLimit > 0 && state.strikes >= m.config.StrikeLimit {
		blockDuration := time.Duration(m.config.BlockDuration) * time.Second
		state.blockedUntil = now.Add(blockDuration)
		state.strikes = 0

		m.logger.Debug("Client exceeded strike limit and is now blocked",
			zap.String("client", key),
			zap.Int("strikes", m.config.StrikeLimit),
			zap.Duration("block_duration", blockDuration))

		return false, blockDuration, errBlocked
	}

	m.logger.Debug("Rate limit exceeded",
		zap.String("client", key),
		zap.Duration("delay", delay),
		zap.Int("strikes", state.strikes))

	return false, delay, errRateLimit
}
