// Package schedule resolves a pub's live opening state from its weekly opening hours.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pintwise/pintwise/internal/database/types/enum"
)

const minutesPerDay = 24 * 60

// ErrInvalidClock is returned when a time of day cannot be parsed.
var ErrInvalidClock = errors.New("invalid time of day")

// Clock is a time of day in minutes since midnight.
type Clock int

// NewClock creates a clock from an hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "HH:MM" or "HH:MM:SS". Seconds are ignored.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return NewClock(hour, minute), nil
}

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is one day's opening hours. A nil bound means the hours are not known.
type Window struct {
	Open  *Clock
	Close *Clock
}

// ParseWindow builds a window from stored text. Empty strings leave the bound unknown.
func ParseWindow(openText, closeText string) (Window, error) {
	var w Window
	if openText != "" {
		c, err := ParseClock(openText)
		if err != nil {
			return Window{}, err
		}
		w.Open = &c
	}
	if closeText != "" {
		c, err := ParseClock(closeText)
		if err != nil {
			return Window{}, err
		}
		w.Close = &c
	}
	return w, nil
}

// Known reports whether both bounds are set.
func (w Window) Known() bool {
	return w.Open != nil && w.Close != nil
}

// Week holds one window per weekday, indexed by time.Weekday.
type Week [7]Window

// Status is the resolved opening state at an instant.
type Status struct {
	State  enum.OpenState
	Detail string
	// MinutesUntil counts down to the next opening or closing. It is zero when no transition applies.
	MinutesUntil int
}

// Policy holds the thresholds used when describing upcoming transitions.
type Policy struct {
	ClosingSoonMinutes int
	OpeningSoonMinutes int
}

// DefaultPolicy returns the standard one hour thresholds.
func DefaultPolicy() Policy {
	return Policy{
		ClosingSoonMinutes: 60,
		OpeningSoonMinutes: 60,
	}
}

// Resolve resolves the status using the default policy.
func Resolve(week Week, now time.Time, permanentlyClosed bool) Status {
	return DefaultPolicy().Resolve(week, now, permanentlyClosed)
}

// Resolve derives the opening state of a pub at now. The weekday and time of day are taken
// from now in its own location, so callers pass now in the pub's local time zone.
func (p Policy) Resolve(week Week, now time.Time, permanentlyClosed bool) Status {
	if permanentlyClosed {
		return Status{State: enum.OpenStateClosed}
	}

	window := week[now.Weekday()]
	if !window.Known() {
		return Status{State: enum.OpenStateUnknown}
	}

	open := int(*window.Open)
	closing := int(*window.Close)
	current := now.Hour()*60 + now.Minute()

	if open == closing {
		return Status{State: enum.OpenStateOpen, Detail: "open 24 hours"}
	}

	// Windows that cross midnight are extended into the next day. Times before the
	// unextended close belong to the early-morning tail of the window.
	if closing < open {
		if current < closing {
			current += minutesPerDay
		}
		closing += minutesPerDay
	}

	switch {
	case current < open:
		until := open - current
		if until <= p.OpeningSoonMinutes {
			return Status{State: enum.OpenStateClosed, Detail: "opens in " + minutes(until), MinutesUntil: until}
		}
		return Status{State: enum.OpenStateClosed, Detail: "opens at " + window.Open.String(), MinutesUntil: until}

	case current < closing:
		until := closing - current
		if until <= p.ClosingSoonMinutes {
			return Status{State: enum.OpenStateClosingSoon, Detail: "closes in " + minutes(until), MinutesUntil: until}
		}
		return Status{State: enum.OpenStateOpen, Detail: "closes at " + window.Close.String(), MinutesUntil: until}

	default:
		return Status{State: enum.OpenStateClosed, Detail: "closed"}
	}
}

func minutes(n int) string {
	if n == 1 {
		return "1 minute"
	}
	return strconv.Itoa(n) + " minutes"
}
