package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/engine/schedule"
	"go.uber.org/zap"
)

// PubStore stores pubs and their opening hours.
type PubStore interface {
	Create(ctx context.Context, pub *types.Pub) error
	Get(ctx context.Context, id int64) (*types.Pub, error)
	List(ctx context.Context, afterID int64, limit int) ([]*types.Pub, error)
	SetPermanentlyClosed(ctx context.Context, id int64, closed bool) error
	GetOpeningHours(ctx context.Context, pubID int64) ([]*types.PubOpeningHours, error)
	SetOpeningHours(ctx context.Context, pubID int64, hours []*types.PubOpeningHours) error
}

// ScheduleCache caches pub schedules. A nil *cache.PubCache passes reads through.
type ScheduleCache interface {
	Schedule(
		ctx context.Context, pubID int64, load func(context.Context) (*types.PubSchedule, error),
	) (*types.PubSchedule, error)
	ForgetSchedule(ctx context.Context, pubID int64) error
}

// DayHours is the opening window of one weekday. Empty times mean unknown.
type DayHours struct {
	Weekday time.Weekday
	Open    string
	Close   string
}

// PubStatus is the resolved opening state of a pub.
type PubStatus struct {
	PubID int64 `json:"pubId"`
	schedule.Status
	// LocalTime is the instant the status was resolved at, in the pub's time zone.
	LocalTime time.Time `json:"localTime"`
}

// PubService handles pubs and their schedules.
type PubService struct {
	pubs     PubStore
	cache    ScheduleCache
	profiles ProfileReader
	policy   schedule.Policy
	logger   *zap.Logger
}

// NewPub creates a new pub service.
func NewPub(
	pubs PubStore, cache ScheduleCache, profiles ProfileReader, policy schedule.Policy, logger *zap.Logger,
) *PubService {
	return &PubService{
		pubs:     pubs,
		cache:    cache,
		profiles: profiles,
		policy:   policy,
		logger:   logger.Named("pub_service"),
	}
}

// Create adds a pub. Only admins may add pubs.
func (s *PubService) Create(ctx context.Context, adminID uuid.UUID, pub *types.Pub, now time.Time) error {
	if err := requireAdmin(ctx, s.profiles, adminID); err != nil {
		return err
	}

	pub.Name = strings.TrimSpace(pub.Name)
	if pub.Name == "" {
		return engine.Invalid("name", "required")
	}
	if pub.TimeZone == "" {
		pub.TimeZone = "Europe/London"
	}
	if _, err := time.LoadLocation(pub.TimeZone); err != nil {
		return engine.Invalid("time_zone", "unknown time zone")
	}
	pub.CreatedAt = now
	pub.UpdatedAt = now

	if err := s.pubs.Create(ctx, pub); err != nil {
		return fmt.Errorf("failed to create pub: %w", err)
	}
	return nil
}

// Get returns a pub.
func (s *PubService) Get(ctx context.Context, pubID int64) (*types.Pub, error) {
	pub, err := s.pubs.Get(ctx, pubID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pub: %w", storeError(err))
	}
	return pub, nil
}

// List returns pubs by ascending id after the given id.
func (s *PubService) List(ctx context.Context, afterID int64, limit int) ([]*types.Pub, error) {
	pubs, err := s.pubs.List(ctx, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pubs: %w", err)
	}
	return pubs, nil
}

// Status resolves whether a pub is open at now, in the pub's own time zone.
func (s *PubService) Status(ctx context.Context, pubID int64, now time.Time) (*PubStatus, error) {
	sched, err := s.cache.Schedule(ctx, pubID, func(ctx context.Context) (*types.PubSchedule, error) {
		pub, err := s.pubs.Get(ctx, pubID)
		if err != nil {
			return nil, err
		}
		hours, err := s.pubs.GetOpeningHours(ctx, pubID)
		if err != nil {
			return nil, err
		}
		return &types.PubSchedule{Pub: pub, Hours: hours}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", storeError(err))
	}

	local := now
	if loc, err := time.LoadLocation(sched.Pub.TimeZone); err == nil {
		local = now.In(loc)
	} else {
		s.logger.Warn("Unknown pub time zone, resolving in caller time",
			zap.Int64("pubID", pubID),
			zap.String("timeZone", sched.Pub.TimeZone))
	}

	return &PubStatus{
		PubID:     pubID,
		Status:    s.policy.Resolve(s.week(pubID, sched.Hours), local, sched.Pub.PermanentlyClosed),
		LocalTime: local,
	}, nil
}

// SetHours replaces the opening hours of a pub. Days left out become unknown.
func (s *PubService) SetHours(ctx context.Context, adminID uuid.UUID, pubID int64, days []DayHours) error {
	if err := requireAdmin(ctx, s.profiles, adminID); err != nil {
		return err
	}

	seen := make(map[time.Weekday]bool, len(days))
	hours := make([]*types.PubOpeningHours, 0, len(days))
	for _, day := range days {
		if day.Weekday < time.Sunday || day.Weekday > time.Saturday {
			return engine.Invalid("weekday", "must be between 0 and 6")
		}
		if seen[day.Weekday] {
			return engine.Invalid("weekday", day.Weekday.String()+" is listed twice")
		}
		seen[day.Weekday] = true

		window, err := schedule.ParseWindow(day.Open, day.Close)
		if err != nil {
			return engine.Invalid("hours", fmt.Sprintf("%s: %v", day.Weekday, err))
		}

		h := &types.PubOpeningHours{PubID: pubID, Weekday: int16(day.Weekday)}
		if window.Open != nil {
			h.OpenTime = window.Open.String()
		}
		if window.Close != nil {
			h.CloseTime = window.Close.String()
		}
		hours = append(hours, h)
	}

	if err := s.pubs.SetOpeningHours(ctx, pubID, hours); err != nil {
		return fmt.Errorf("failed to set opening hours: %w", storeError(err))
	}

	s.forget(ctx, pubID)
	return nil
}

// SetPermanentlyClosed marks a pub closed for good, or reopens it.
func (s *PubService) SetPermanentlyClosed(ctx context.Context, adminID uuid.UUID, pubID int64, closed bool) error {
	if err := requireAdmin(ctx, s.profiles, adminID); err != nil {
		return err
	}

	if err := s.pubs.SetPermanentlyClosed(ctx, pubID, closed); err != nil {
		return fmt.Errorf("failed to update pub: %w", storeError(err))
	}

	s.forget(ctx, pubID)
	return nil
}

// week converts stored hours into a schedule. A malformed stored day is treated as unknown.
func (s *PubService) week(pubID int64, hours []*types.PubOpeningHours) schedule.Week {
	var week schedule.Week
	for _, h := range hours {
		if h.Weekday < 0 || h.Weekday > 6 {
			continue
		}
		window, err := schedule.ParseWindow(h.OpenTime, h.CloseTime)
		if err != nil {
			s.logger.Warn("Ignoring malformed opening hours",
				zap.Error(err),
				zap.Int64("pubID", pubID),
				zap.Int16("weekday", h.Weekday))
			continue
		}
		week[h.Weekday] = window
	}
	return week
}

func (s *PubService) forget(ctx context.Context, pubID int64) {
	if err := s.cache.ForgetSchedule(ctx, pubID); err != nil {
		s.logger.Warn("Failed to invalidate schedule cache",
			zap.Error(err),
			zap.Int64("pubID", pubID))
	}
}
