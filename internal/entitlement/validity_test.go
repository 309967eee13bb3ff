package entitlement_test

import (
	"testing"
	"time"

	"funnel-billing/internal/entitlement"
	"funnel-billing/internal/model"

	"github.com/stretchr/testify/assert"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestIsValidAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		status model.AddOnStatus
		end    *time.Time
		want   bool
	}{
		{name: "active without end", status: model.AddOnActive, want: true},
		{name: "active with past end", status: model.AddOnActive, end: ptrTime(now.AddDate(0, 0, -3)), want: true},
		{name: "cancelled without end", status: model.AddOnCancelled, want: true},
		{name: "cancelled ends tomorrow", status: model.AddOnCancelled, end: ptrTime(now.AddDate(0, 0, 1)), want: true},
		{name: "cancelled ended yesterday", status: model.AddOnCancelled, end: ptrTime(now.AddDate(0, 0, -1)), want: false},
		{name: "cancelled ends exactly now", status: model.AddOnCancelled, end: ptrTime(now), want: false},
		{name: "expired", status: model.AddOnExpired, end: ptrTime(now.AddDate(0, 1, 0)), want: false},
		{name: "inactive", status: model.AddOnInactive, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.AddOn{Status: tt.status, EndDate: tt.end}
			assert.Equal(t, tt.want, entitlement.IsValidAt(a, now))
		})
	}
}

func TestIsValid_Subscription(t *testing.T) {
	t.Parallel()

	tomorrow := time.Now().Add(24 * time.Hour)
	yesterday := time.Now().Add(-24 * time.Hour)

	assert.True(t, entitlement.IsValid(&model.Subscription{Status: model.SubscriptionActive}))
	assert.True(t, entitlement.IsValid(&model.Subscription{Status: model.SubscriptionCancelled, EndsAt: &tomorrow}))
	assert.False(t, entitlement.IsValid(&model.Subscription{Status: model.SubscriptionCancelled, EndsAt: &yesterday}))
	assert.False(t, entitlement.IsValid(&model.Subscription{Status: model.SubscriptionExpired}))
	assert.False(t, entitlement.IsValid(nil))
}
