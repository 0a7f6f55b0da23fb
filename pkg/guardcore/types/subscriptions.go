package types

import (
	"time"

	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusDisabled SubscriptionStatus = "disabled"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
	SubscriptionStatusLimited  SubscriptionStatus = "limited"
	SubscriptionStatusPending  SubscriptionStatus = "pending"
)

type SubscriptionResponse struct {
	ID           int64              `json:"id"`
	Username     string             `json:"username" validate:"required"`
	Owner        *string            `json:"owner_username,omitempty"`
	AccessKey    string             `json:"access_key"`
	Status       SubscriptionStatus `json:"status" validate:"oneof=active disabled expired limited pending"`
	Enabled      bool               `json:"enabled"`
	Activated    *bool              `json:"activated,omitempty"`
	IsActive     bool               `json:"is_active"`
	Limited      bool               `json:"limited"`
	Expired      bool               `json:"expired"`
	IsOnline     *bool              `json:"is_online,omitempty"`
	LimitUsage   int64              `json:"limit_usage" validate:"gte=0"`
	CurrentUsage int64              `json:"current_usage" validate:"gte=0"`
	TotalUsage   *int64             `json:"total_usage,omitempty" validate:"omitempty,gte=0"`
	LimitExpire  int64              `json:"limit_expire"`
	ServiceIDs   []int64            `json:"service_ids"`
	Note         *string            `json:"note,omitempty"`
	Link         *string            `json:"link,omitempty"`
	AutoDelete   *int64             `json:"auto_delete_days,omitempty" validate:"omitempty,gte=0"`
	OnlineAt     *time.Time         `json:"online_at,omitempty"`
	LastResetAt  *time.Time         `json:"last_reset_at,omitempty"`
	LastRevokeAt *time.Time         `json:"last_revoke_at,omitempty"`
	LastRequest  *time.Time         `json:"last_request_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty"`
}

// SubscriptionCreate describes one subscription in a bulk create. LimitExpire
// is either a unix timestamp or, when negative, a duration in seconds that
// starts on first use.
type SubscriptionCreate struct {
	Username    string  `json:"username" validate:"required,min=3,max=32"`
	LimitUsage  int64   `json:"limit_usage" validate:"gte=0"`
	LimitExpire int64   `json:"limit_expire"`
	ServiceIDs  []int64 `json:"service_ids" validate:"dive,gte=0"`
	AccessKey   *string `json:"access_key,omitempty"`
	Note        *string `json:"note,omitempty"`
}

func (s SubscriptionCreate) Validate() error {
	return core.Validate(s)
}

type SubscriptionUpdate struct {
	LimitUsage  *int64  `json:"limit_usage,omitempty" validate:"omitempty,gte=0"`
	LimitExpire *int64  `json:"limit_expire,omitempty"`
	ServiceIDs  []int64 `json:"service_ids,omitempty" validate:"dive,gte=0"`
	Note        *string `json:"note,omitempty"`
}

func (s SubscriptionUpdate) Validate() error {
	return core.Validate(s)
}

type SubscriptionUsageLog struct {
	Usage     int64     `json:"usage" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at"`
}

type SubscriptionUsageLogsResponse struct {
	Subscription SubscriptionResponse   `json:"subscription"`
	UsageLogs    []SubscriptionUsageLog `json:"usage_logs" validate:"dive"`
}

type SubscriptionStatsResponse struct {
	Total         int64 `json:"total" validate:"gte=0"`
	Active        int64 `json:"active" validate:"gte=0"`
	Disabled      int64 `json:"disabled" validate:"gte=0"`
	Expired       int64 `json:"expired" validate:"gte=0"`
	Limited       int64 `json:"limited" validate:"gte=0"`
	Pending       int64 `json:"pending" validate:"gte=0"`
	Available     int64 `json:"available" validate:"gte=0"`
	Unavailable   int64 `json:"unavailable" validate:"gte=0"`
	Online        int64 `json:"online" validate:"gte=0"`
	Offline       int64 `json:"offline" validate:"gte=0"`
	Last24hOnline int64 `json:"last_24h_online" validate:"gte=0"`
	Last24hUsage  int64 `json:"last_24h_usage" validate:"gte=0"`
}
