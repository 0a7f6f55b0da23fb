package status

import (
	"testing"
	"time"

	"github.com/bnema/guardcore-cli/internal/application"
	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func testDashboard(now time.Time) application.Dashboard {
	lastLogin := now.Add(-3 * time.Hour)
	return application.Dashboard{
		Profile: domain.Profile{ID: "main", Username: "alice", BaseURL: "https://core.example.com/"},
		Admin: types.AdminResponse{
			Username:     "alice",
			Role:         types.AdminRoleReseller,
			Enabled:      true,
			CurrentUsage: int64Ptr(250_000_000),
			UsageLimit:   int64Ptr(1_000_000_000),
			CurrentCount: int64Ptr(7),
			LastLoginAt:  &lastLogin,
		},
		Stats: types.SubscriptionStatsResponse{
			Total:        12,
			Active:       9,
			Disabled:     2,
			Expired:      1,
			Online:       4,
			Last24hUsage: 3_500_000_000,
		},
		FetchedAt: now,
	}
}

func TestRenderDashboard(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render(testDashboard(now), RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "Guardcore Admin")
	assert.Contains(t, output, "profile: main (alice@core.example.com)")
	assert.Contains(t, output, "alice (reseller)")
	assert.Contains(t, output, "25% used")
	assert.Contains(t, output, "(250.0MB of 1.0GB)")
	assert.Contains(t, output, "7 (unlimited)")
	assert.Contains(t, output, "last login 3 hours ago")
	assert.Contains(t, output, "total 12 | active 9 | disabled 2 | expired 1")
	assert.Contains(t, output, "24h usage 3.5GB")
	assert.NotContains(t, output, "[disabled]")
}

func TestRenderDisabledAdminWithoutOptionalFields(t *testing.T) {
	output, err := Render(application.Dashboard{
		Profile: domain.Profile{ID: "bare", BaseURL: "https://core.example.com/"},
		Admin:   types.AdminResponse{Username: "bob", Role: types.AdminRoleOwner},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "profile: bare (https://core.example.com/)")
	assert.Contains(t, output, "[disabled]")
	assert.Contains(t, output, "0B (unlimited)")
	assert.NotContains(t, output, "last login")
}

func TestRenderProgressBarFillsUsedShare(t *testing.T) {
	s := newStyles()

	assert.Equal(t, "[=====-----]", renderProgressBar(50, 10, s))
	assert.Equal(t, "[==========]", renderProgressBar(150, 10, s))
	assert.Equal(t, "[----------]", renderProgressBar(-5, 10, s))
	assert.Empty(t, renderProgressBar(50, 0, s))
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "seconds", at: now.Add(-10 * time.Second), want: "just now"},
		{name: "one minute", at: now.Add(-time.Minute), want: "1 minute ago"},
		{name: "hours", at: now.Add(-5 * time.Hour), want: "5 hours ago"},
		{name: "days", at: now.Add(-50 * time.Hour), want: "2 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRelative(tt.at, now))
		})
	}

	assert.Equal(t, "2026-02-14T11:00:00Z", formatRelative(now, time.Time{}))
}
