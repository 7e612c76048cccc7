package moderation_test

import (
	"testing"

	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/engine/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		trust moderation.Trust
		want  enum.ModerationStatus
	}{
		{name: "trusted auto approves", trust: moderation.Trust{IsTrusted: true}, want: enum.ModerationStatusApproved},
		{name: "admin auto approves", trust: moderation.Trust{IsAdmin: true}, want: enum.ModerationStatusApproved},
		{name: "untrusted is queued", trust: moderation.Trust{}, want: enum.ModerationStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, moderation.Gate(tt.trust))
		})
	}
}

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current enum.ModerationStatus
		action  enum.ModerationAction
		want    moderation.Decision
		wantErr error
	}{
		{
			name:    "approve",
			current: enum.ModerationStatusPending,
			action:  enum.ModerationActionApprove,
			want:    moderation.Decision{Status: enum.ModerationStatusApproved},
		},
		{
			name:    "approve and trust",
			current: enum.ModerationStatusPending,
			action:  enum.ModerationActionApproveAndTrust,
			want:    moderation.Decision{Status: enum.ModerationStatusApproved, PromoteSubmitter: true},
		},
		{
			name:    "reject deletes",
			current: enum.ModerationStatusPending,
			action:  enum.ModerationActionReject,
			want:    moderation.Decision{Delete: true},
		},
		{
			name:    "approved items cannot be decided again",
			current: enum.ModerationStatusApproved,
			action:  enum.ModerationActionReject,
			wantErr: engine.ErrInvalidTransition,
		},
		{
			name:    "unknown action",
			current: enum.ModerationStatusPending,
			action:  enum.ModerationAction(42),
			wantErr: engine.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := moderation.Decide(tt.current, tt.action)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVisible(t *testing.T) {
	t.Parallel()

	assert.True(t, moderation.Visible(enum.ModerationStatusApproved, false))
	assert.True(t, moderation.Visible(enum.ModerationStatusApproved, true))
	assert.False(t, moderation.Visible(enum.ModerationStatusPending, false))
	assert.True(t, moderation.Visible(enum.ModerationStatusPending, true))
}

func TestRulesForCoversEveryEntityType(t *testing.T) {
	t.Parallel()

	for _, entityType := range enum.EntityTypeValues() {
		_, err := moderation.RulesFor(entityType)
		require.NoError(t, err, entityType.String())
	}

	rules, err := moderation.RulesFor(enum.EntityTypeReview)
	require.NoError(t, err)
	assert.True(t, rules.Gated)

	rules, err = moderation.RulesFor(enum.EntityTypeAmenity)
	require.NoError(t, err)
	assert.False(t, rules.Removable)

	_, err = moderation.RulesFor(enum.EntityType(99))
	require.Error(t, err)
}

func TestTransitionReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current enum.ReportStatus
		next    enum.ReportStatus
		wantErr bool
	}{
		{name: "pending to resolved", current: enum.ReportStatusPending, next: enum.ReportStatusResolved},
		{name: "pending to dismissed", current: enum.ReportStatusPending, next: enum.ReportStatusDismissed},
		{name: "pending to reviewed", current: enum.ReportStatusPending, next: enum.ReportStatusReviewed, wantErr: true},
		{name: "pending to pending", current: enum.ReportStatusPending, next: enum.ReportStatusPending, wantErr: true},
		{name: "resolved is final", current: enum.ReportStatusResolved, next: enum.ReportStatusDismissed, wantErr: true},
		{name: "dismissed is final", current: enum.ReportStatusDismissed, next: enum.ReportStatusResolved, wantErr: true},
		{name: "legacy reviewed cannot move", current: enum.ReportStatusReviewed, next: enum.ReportStatusResolved, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := moderation.TransitionReport(tt.current, tt.next)
			if tt.wantErr {
				require.ErrorIs(t, err, engine.ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateReport(t *testing.T) {
	t.Parallel()

	valid := moderation.ReportSubmission{
		EntityType: enum.EntityTypePrice,
		EntityID:   12,
		ReportType: enum.ReportTypeIncorrectInfo,
	}
	require.NoError(t, moderation.ValidateReport(valid))

	missingID := valid
	missingID.EntityID = 0
	require.ErrorIs(t, moderation.ValidateReport(missingID), engine.ErrValidation)

	badType := valid
	badType.EntityType = enum.EntityType(17)
	require.ErrorIs(t, moderation.ValidateReport(badType), engine.ErrValidation)

	other := valid
	other.ReportType = enum.ReportTypeOther
	require.ErrorIs(t, moderation.ValidateReport(other), engine.ErrValidation)

	other.Details = "the pub has been demolished"
	require.NoError(t, moderation.ValidateReport(other))
}
