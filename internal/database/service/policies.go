package service

import (
	"github.com/pintwise/pintwise/internal/engine/amenity"
	"github.com/pintwise/pintwise/internal/engine/confidence"
	"github.com/pintwise/pintwise/internal/engine/schedule"
	"github.com/pintwise/pintwise/internal/setup/config"
)

// Policies bundles the tunable thresholds of the engines.
type Policies struct {
	Schedule   schedule.Policy
	Amenity    amenity.Policy
	Confidence confidence.Policy
	// ReconcileConcurrency bounds the pubs reconciled at once by ReconcilePubs.
	ReconcileConcurrency int
}

// DefaultPolicies returns the engine defaults.
func DefaultPolicies() Policies {
	return Policies{
		Schedule:   schedule.DefaultPolicy(),
		Amenity:    amenity.DefaultPolicy(),
		Confidence: confidence.DefaultPolicy(),

		ReconcileConcurrency: 4,
	}
}

// PoliciesFromConfig builds the policies from the engine config. Unset values keep their defaults.
func PoliciesFromConfig(cfg *config.Engine) Policies {
	p := DefaultPolicies()
	if cfg == nil {
		return p
	}

	if cfg.ClosingSoonMinutes > 0 {
		p.Schedule.ClosingSoonMinutes = cfg.ClosingSoonMinutes
	}
	if cfg.OpeningSoonMinutes > 0 {
		p.Schedule.OpeningSoonMinutes = cfg.OpeningSoonMinutes
	}
	if cfg.AmenityQuorum > 0 {
		p.Amenity.Quorum = cfg.AmenityQuorum
	}
	if cfg.AmenityMargin > 0 {
		p.Amenity.Margin = cfg.AmenityMargin
	}
	if cfg.AmenityFlipMargin > 0 {
		p.Amenity.FlipMargin = cfg.AmenityFlipMargin
	}
	if cfg.ConfidenceWindowDays > 0 {
		p.Confidence.Window = cfg.ConfidenceWindow()
	}
	if cfg.ConfidenceHighThreshold > 0 {
		p.Confidence.HighThreshold = cfg.ConfidenceHighThreshold
	}
	if cfg.CorrectionQuorum > 0 {
		p.Confidence.CorrectionQuorum = cfg.CorrectionQuorum
	}
	if cfg.ReconcileConcurrency > 0 {
		p.ReconcileConcurrency = cfg.ReconcileConcurrency
	}

	return p
}
