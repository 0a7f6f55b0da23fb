package guardcore

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
)

func (a API) GetAllSubscriptions(ctx context.Context, creds core.Credentials) ([]types.SubscriptionResponse, error) {
	return core.FetchList[types.SubscriptionResponse](ctx, a.Core, request("/api/subscriptions", creds))
}

// CreateSubscriptions sends data as a single JSON array and returns the
// created records in server order.
func (a API) CreateSubscriptions(ctx context.Context, creds core.Credentials, data []types.SubscriptionCreate) ([]types.SubscriptionResponse, error) {
	if len(data) == 0 {
		return nil, errors.New("at least one subscription is required")
	}
	for i, item := range data {
		if err := validateInput(fmt.Sprintf("subscription %d", i), item); err != nil {
			return nil, err
		}
	}

	req := request("/api/subscriptions", creds)
	req.Method = http.MethodPost
	req.JSON = data
	return core.FetchList[types.SubscriptionResponse](ctx, a.Core, req)
}

func (a API) GetSubscriptionStats(ctx context.Context, creds core.Credentials) (types.SubscriptionStatsResponse, error) {
	return core.Fetch[types.SubscriptionStatsResponse](ctx, a.Core, request("/api/subscriptions/stats", creds))
}

func (a API) GetSubscription(ctx context.Context, creds core.Credentials, username string) (types.SubscriptionResponse, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return types.SubscriptionResponse{}, err
	}
	return core.Fetch[types.SubscriptionResponse](ctx, a.Core, request("/api/subscriptions/"+escaped, creds))
}

func (a API) UpdateSubscription(ctx context.Context, creds core.Credentials, username string, data types.SubscriptionUpdate) (types.SubscriptionResponse, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return types.SubscriptionResponse{}, err
	}
	if err := validateInput("subscription update", data); err != nil {
		return types.SubscriptionResponse{}, err
	}

	req := request("/api/subscriptions/"+escaped, creds)
	req.Method = http.MethodPut
	req.JSON = data
	return core.Fetch[types.SubscriptionResponse](ctx, a.Core, req)
}

func (a API) DeleteSubscription(ctx context.Context, creds core.Credentials, username string) (any, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return nil, err
	}
	return a.Core.Delete(ctx, request("/api/subscriptions/"+escaped, creds))
}

func (a API) GetSubscriptionUsages(ctx context.Context, creds core.Credentials, username string) (types.SubscriptionUsageLogsResponse, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return types.SubscriptionUsageLogsResponse{}, err
	}
	return core.Fetch[types.SubscriptionUsageLogsResponse](ctx, a.Core, request("/api/subscriptions/"+escaped+"/"+a.usageSegment(), creds))
}

func (a API) EnableSubscription(ctx context.Context, creds core.Credentials, username string) (types.SubscriptionResponse, error) {
	return a.subscriptionAction(ctx, creds, username, "enable")
}

func (a API) DisableSubscription(ctx context.Context, creds core.Credentials, username string) (types.SubscriptionResponse, error) {
	return a.subscriptionAction(ctx, creds, username, "disable")
}

// RevokeSubscription rotates the subscription's access key.
func (a API) RevokeSubscription(ctx context.Context, creds core.Credentials, username string) (types.SubscriptionResponse, error) {
	return a.subscriptionAction(ctx, creds, username, "revoke")
}

// ResetSubscription zeroes the subscription's current usage.
func (a API) ResetSubscription(ctx context.Context, creds core.Credentials, username string) (types.SubscriptionResponse, error) {
	return a.subscriptionAction(ctx, creds, username, "reset")
}

func (a API) subscriptionAction(ctx context.Context, creds core.Credentials, username, action string) (types.SubscriptionResponse, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return types.SubscriptionResponse{}, err
	}

	req := request("/api/subscriptions/"+escaped+"/"+action, creds)
	req.Method = http.MethodPost
	return core.Fetch[types.SubscriptionResponse](ctx, a.Core, req)
}
