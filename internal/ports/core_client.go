package ports

import (
	"context"

	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
)

// CoreClient is the slice of the guardcore API the session service needs.
// Each call targets the server at baseURL.
type CoreClient interface {
	GenerateAdminToken(ctx context.Context, baseURL, username, password string) (types.AdminToken, error)
	GetCurrentAdmin(ctx context.Context, baseURL string, creds core.Credentials) (types.AdminResponse, error)
	GetCurrentAdminUsages(ctx context.Context, baseURL string, creds core.Credentials) (types.AdminUsageLogsResponse, error)
	GetSubscriptionStats(ctx context.Context, baseURL string, creds core.Credentials) (types.SubscriptionStatsResponse, error)
}
