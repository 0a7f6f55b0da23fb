package types

import "time"

// The stats shapes below mirror the server models. No catalogue method returns
// them yet because the endpoints serving them are not part of the client surface.

type UsageDetail struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Usage     int64     `json:"usage" validate:"gte=0"`
}

type UsageSubscriptionDetail struct {
	Username string `json:"username" validate:"required"`
	Usage    int64  `json:"usage" validate:"gte=0"`
	IsActive bool   `json:"is_active"`
}

type AgentStatsDetail struct {
	Category string `json:"category"`
	Count    int64  `json:"count" validate:"gte=0"`
}

// SubscriptionStatusStatsResponse has the same counters as
// SubscriptionStatsResponse but is served by the stats endpoints.
type SubscriptionStatusStatsResponse = SubscriptionStatsResponse

type LastReachedSubscriptionDetail struct {
	Username  string    `json:"username" validate:"required"`
	ReachedAt time.Time `json:"reached_at"`
	Limited   bool      `json:"limited"`
	Expired   bool      `json:"expired"`
}

type MostUsageSubscription struct {
	Subscriptions []UsageSubscriptionDetail `json:"subscriptions" validate:"dive"`
	StartDate     time.Time                 `json:"start_date"`
	EndDate       time.Time                 `json:"end_date"`
}

type UsageStatsResponse struct {
	Total     int64         `json:"total" validate:"gte=0"`
	Usages    []UsageDetail `json:"usages" validate:"dive"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
}

type AgentStatsResponse struct {
	Agents []AgentStatsDetail `json:"agents" validate:"dive"`
}
