package guardcore

import (
	"context"
	"net/http"

	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
)

func (a API) GetAllAdmins(ctx context.Context, creds core.Credentials) ([]types.AdminResponse, error) {
	return core.FetchList[types.AdminResponse](ctx, a.Core, request("/api/admins", creds))
}

func (a API) CreateAdmin(ctx context.Context, creds core.Credentials, data types.AdminCreate) (types.AdminResponse, error) {
	if err := validateInput("admin", data); err != nil {
		return types.AdminResponse{}, err
	}

	req := request("/api/admins", creds)
	req.Method = http.MethodPost
	req.JSON = data
	return core.Fetch[types.AdminResponse](ctx, a.Core, req)
}

// GenerateAdminToken exchanges a username and password for an access token.
// The credentials travel as a form body and no auth headers are sent.
func (a API) GenerateAdminToken(ctx context.Context, username, password string) (types.AdminToken, error) {
	return core.Fetch[types.AdminToken](ctx, a.Core, core.Request{
		Method:   http.MethodPost,
		Endpoint: "/api/admins/token",
		Form:     core.Form{}.Add("username", username).Add("password", password),
	})
}

func (a API) GetCurrentAdmin(ctx context.Context, creds core.Credentials) (types.AdminResponse, error) {
	return core.Fetch[types.AdminResponse](ctx, a.Core, request("/api/admins/current", creds))
}

func (a API) UpdateCurrentAdmin(ctx context.Context, creds core.Credentials, data types.AdminCurrentUpdate) (types.AdminResponse, error) {
	if err := validateInput("admin update", data); err != nil {
		return types.AdminResponse{}, err
	}

	req := request("/api/admins/current", creds)
	req.Method = http.MethodPut
	req.JSON = data
	return core.Fetch[types.AdminResponse](ctx, a.Core, req)
}

func (a API) GetCurrentAdminUsages(ctx context.Context, creds core.Credentials) (types.AdminUsageLogsResponse, error) {
	return core.Fetch[types.AdminUsageLogsResponse](ctx, a.Core, request("/api/admins/current/"+a.usageSegment(), creds))
}

func (a API) GetAdmin(ctx context.Context, creds core.Credentials, username string) (types.AdminResponse, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return types.AdminResponse{}, err
	}
	return core.Fetch[types.AdminResponse](ctx, a.Core, request("/api/admins/"+escaped, creds))
}

func (a API) UpdateAdmin(ctx context.Context, creds core.Credentials, username string, data types.AdminUpdate) (types.AdminResponse, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return types.AdminResponse{}, err
	}
	if err := validateInput("admin update", data); err != nil {
		return types.AdminResponse{}, err
	}

	req := request("/api/admins/"+escaped, creds)
	req.Method = http.MethodPut
	req.JSON = data
	return core.Fetch[types.AdminResponse](ctx, a.Core, req)
}

// DeleteAdmin returns the server's decoded reply as is.
func (a API) DeleteAdmin(ctx context.Context, creds core.Credentials, username string) (any, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return nil, err
	}
	return a.Core.Post(ctx, request("/api/admins/"+escaped+"/delete", creds))
}

func (a API) GetAdminUsages(ctx context.Context, creds core.Credentials, username string) (types.AdminUsageLogsResponse, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return types.AdminUsageLogsResponse{}, err
	}
	return core.Fetch[types.AdminUsageLogsResponse](ctx, a.Core, request("/api/admins/"+escaped+"/"+a.usageSegment(), creds))
}

func (a API) EnableAdmin(ctx context.Context, creds core.Credentials, username string) (types.AdminResponse, error) {
	return a.adminAction(ctx, creds, username, "enable")
}

func (a API) DisableAdmin(ctx context.Context, creds core.Credentials, username string) (types.AdminResponse, error) {
	return a.adminAction(ctx, creds, username, "disable")
}

func (a API) adminAction(ctx context.Context, creds core.Credentials, username, action string) (types.AdminResponse, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return types.AdminResponse{}, err
	}

	req := request("/api/admins/"+escaped+"/"+action, creds)
	req.Method = http.MethodPost
	return core.Fetch[types.AdminResponse](ctx, a.Core, req)
}

func (a API) GetAdminSubscriptions(ctx context.Context, creds core.Credentials, username string) ([]types.SubscriptionResponse, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return nil, err
	}
	return core.FetchList[types.SubscriptionResponse](ctx, a.Core, request("/api/admins/"+escaped+"/subscriptions", creds))
}

func (a API) DeleteAdminSubscriptions(ctx context.Context, creds core.Credentials, username string) (any, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return nil, err
	}
	return a.Core.Delete(ctx, request("/api/admins/"+escaped+"/subscriptions", creds))
}

func (a API) ActivateAdminSubscriptions(ctx context.Context, creds core.Credentials, username string) (any, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return nil, err
	}
	return a.Core.Post(ctx, request("/api/admins/"+escaped+"/subscriptions/activate", creds))
}

func (a API) DeactivateAdminSubscriptions(ctx context.Context, creds core.Credentials, username string) (any, error) {
	escaped, err := requireUsername(username)
	if err != nil {
		return nil, err
	}
	return a.Core.Post(ctx, request("/api/admins/"+escaped+"/subscriptions/deactivate", creds))
}
