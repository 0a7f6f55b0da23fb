package guardcore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminBody = `{"id":1,"username":"alice","role":"owner","enabled":true,"service_ids":[1],
		"placeholders":[],"created_at":"2025-03-01T10:00:00Z"}`
	subscriptionBody = `{"id":%d,"username":"%s","access_key":"ak","status":"active","enabled":true,
		"is_active":true,"limited":false,"expired":false,"limit_usage":100,"current_usage":5,
		"limit_expire":0,"service_ids":[1],"created_at":"2025-03-01T10:00:00Z"}`
	usageLogsBody = `{"admin":` + adminBody + `,"usage_logs":[{"usage":10,"created_at":"2025-03-01T00:00:00Z"}]}`
)

type call struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	Auth        string
	APIKey      string
	Body        string
}

type fakeCore struct {
	mu        sync.Mutex
	calls     []call
	responses map[string]string
}

func newFakeCore(t *testing.T, responses map[string]string) (*fakeCore, API) {
	t.Helper()

	fake := &fakeCore{responses: responses}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)

		fake.mu.Lock()
		fake.calls = append(fake.calls, call{
			Method:      r.Method,
			Path:        r.URL.EscapedPath(),
			Query:       r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Auth:        r.Header.Get("Authorization"),
			APIKey:      r.Header.Get("X-API-Key"),
			Body:        string(data),
		})
		body, ok := fake.responses[r.Method+" "+r.URL.EscapedPath()]
		fake.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Not Found"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return fake, API{Core: core.Core{BaseURL: server.URL + "/", HTTPClient: server.Client()}}
}

func (f *fakeCore) last(t *testing.T) call {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func (f *fakeCore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func subscription(id int, username string) string {
	return fmt.Sprintf(subscriptionBody, id, username)
}

func TestGenerateAdminTokenSendsFormWithoutAuth(t *testing.T) {
	t.Parallel()

	fake, api := newFakeCore(t, map[string]string{
		"POST /api/admins/token": `{"access_token":"tok","token_type":"bearer"}`,
	})

	token, err := api.GenerateAdminToken(context.Background(), "alice", "pw")

	require.NoError(t, err)
	assert.Equal(t, types.AdminToken{AccessToken: "tok", TokenType: "bearer"}, token)

	got := fake.last(t)
	assert.Equal(t, "username=alice&password=pw", got.Body)
	assert.Equal(t, "application/x-www-form-urlencoded", got.ContentType)
	assert.Empty(t, got.Auth)
	assert.Empty(t, got.APIKey)
}

func TestAdminEndpointsUsePathsAndVerbs(t *testing.T) {
	t.Parallel()

	fake, api := newFakeCore(t, map[string]string{
		"GET /api/admins":                                 `[` + adminBody + `]`,
		"POST /api/admins":                                adminBody,
		"GET /api/admins/current":                         adminBody,
		"PUT /api/admins/current":                         adminBody,
		"GET /api/admins/current/usages":                  usageLogsBody,
		"GET /api/admins/alice":                           adminBody,
		"PUT /api/admins/alice":                           adminBody,
		"POST /api/admins/alice/delete":                   `{"detail":"deleted"}`,
		"GET /api/admins/alice/usages":                    usageLogsBody,
		"POST /api/admins/alice/enable":                   adminBody,
		"POST /api/admins/alice/disable":                  adminBody,
		"GET /api/admins/alice/subscriptions":             `[` + subscription(1, "bob") + `]`,
		"DELETE /api/admins/alice/subscriptions":          `{"count":1}`,
		"POST /api/admins/alice/subscriptions/activate":   `{"count":1}`,
		"POST /api/admins/alice/subscriptions/deactivate": `{"count":1}`,
	})
	ctx := context.Background()
	creds := core.Bearer("tok")

	testCases := []struct {
		name       string
		invoke     func() error
		wantMethod string
		wantPath   string
	}{
		{name: "list", wantMethod: "GET", wantPath: "/api/admins", invoke: func() error {
			admins, err := api.GetAllAdmins(ctx, creds)
			if err == nil {
				assert.Len(t, admins, 1)
			}
			return err
		}},
		{name: "create", wantMethod: "POST", wantPath: "/api/admins", invoke: func() error {
			_, err := api.CreateAdmin(ctx, creds, types.AdminCreate{Username: "alice", Password: "pw", Role: types.AdminRoleReseller})
			return err
		}},
		{name: "current", wantMethod: "GET", wantPath: "/api/admins/current", invoke: func() error {
			_, err := api.GetCurrentAdmin(ctx, creds)
			return err
		}},
		{name: "update current", wantMethod: "PUT", wantPath: "/api/admins/current", invoke: func() error {
			_, err := api.UpdateCurrentAdmin(ctx, creds, types.AdminCurrentUpdate{})
			return err
		}},
		{name: "current usages", wantMethod: "GET", wantPath: "/api/admins/current/usages", invoke: func() error {
			logs, err := api.GetCurrentAdminUsages(ctx, creds)
			if err == nil {
				assert.Len(t, logs.UsageLogs, 1)
			}
			return err
		}},
		{name: "get", wantMethod: "GET", wantPath: "/api/admins/alice", invoke: func() error {
			_, err := api.GetAdmin(ctx, creds, "alice")
			return err
		}},
		{name: "update", wantMethod: "PUT", wantPath: "/api/admins/alice", invoke: func() error {
			_, err := api.UpdateAdmin(ctx, creds, "alice", types.AdminUpdate{})
			return err
		}},
		{name: "delete", wantMethod: "POST", wantPath: "/api/admins/alice/delete", invoke: func() error {
			raw, err := api.DeleteAdmin(ctx, creds, "alice")
			if err == nil {
				assert.Equal(t, map[string]any{"detail": "deleted"}, raw)
			}
			return err
		}},
		{name: "usages", wantMethod: "GET", wantPath: "/api/admins/alice/usages", invoke: func() error {
			_, err := api.GetAdminUsages(ctx, creds, "alice")
			return err
		}},
		{name: "enable", wantMethod: "POST", wantPath: "/api/admins/alice/enable", invoke: func() error {
			_, err := api.EnableAdmin(ctx, creds, "alice")
			return err
		}},
		{name: "disable", wantMethod: "POST", wantPath: "/api/admins/alice/disable", invoke: func() error {
			_, err := api.DisableAdmin(ctx, creds, "alice")
			return err
		}},
		{name: "subscriptions", wantMethod: "GET", wantPath: "/api/admins/alice/subscriptions", invoke: func() error {
			subs, err := api.GetAdminSubscriptions(ctx, creds, "alice")
			if err == nil {
				assert.Len(t, subs, 1)
			}
			return err
		}},
		{name: "delete subscriptions", wantMethod: "DELETE", wantPath: "/api/admins/alice/subscriptions", invoke: func() error {
			_, err := api.DeleteAdminSubscriptions(ctx, creds, "alice")
			return err
		}},
		{name: "activate subscriptions", wantMethod: "POST", wantPath: "/api/admins/alice/subscriptions/activate", invoke: func() error {
			_, err := api.ActivateAdminSubscriptions(ctx, creds, "alice")
			return err
		}},
		{name: "deactivate subscriptions", wantMethod: "POST", wantPath: "/api/admins/alice/subscriptions/deactivate", invoke: func() error {
			_, err := api.DeactivateAdminSubscriptions(ctx, creds, "alice")
			return err
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.invoke())

			got := fake.last(t)
			assert.Equal(t, tc.wantMethod, got.Method)
			assert.Equal(t, tc.wantPath, got.Path)
			assert.Equal(t, "Bearer tok", got.Auth)
		})
	}
}

func TestCreateSubscriptionsSendsJSONArrayAndDecodesList(t *testing.T) {
	t.Parallel()

	fake, api := newFakeCore(t, map[string]string{
		"POST /api/subscriptions": `[` + subscription(1, "bob") + `,` + subscription(2, "carol") + `]`,
	})

	created, err := api.CreateSubscriptions(context.Background(), core.Bearer("tok"), []types.SubscriptionCreate{
		{Username: "bob", LimitUsage: 100, ServiceIDs: []int64{1}},
		{Username: "carol", LimitUsage: 100, ServiceIDs: []int64{1}},
	})

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "bob", created[0].Username)
	assert.Equal(t, "carol", created[1].Username)

	got := fake.last(t)
	assert.Equal(t, "application/json", got.ContentType)

	var sent []map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.Body), &sent))
	require.Len(t, sent, 2)
	assert.Equal(t, "bob", sent[0]["username"])
	assert.NotContains(t, sent[0], "note")
}

func TestSubscriptionEndpointsUsePathsAndVerbs(t *testing.T) {
	t.Parallel()

	single := subscription(1, "bob")
	fake, api := newFakeCore(t, map[string]string{
		"GET /api/subscriptions":              `[` + single + `]`,
		"GET /api/subscriptions/stats":        `{"total":1,"active":1,"disabled":0,"expired":0,"limited":0,"pending":0,"available":1,"unavailable":0,"online":0,"offline":1,"last_24h_online":0,"last_24h_usage":0}`,
		"GET /api/subscriptions/bob":          single,
		"PUT /api/subscriptions/bob":          single,
		"DELETE /api/subscriptions/bob":       ``,
		"GET /api/subscriptions/bob/usages":   `{"subscription":` + single + `,"usage_logs":[]}`,
		"POST /api/subscriptions/bob/enable":  single,
		"POST /api/subscriptions/bob/disable": single,
		"POST /api/subscriptions/bob/revoke":  single,
		"POST /api/subscriptions/bob/reset":   single,
	})
	ctx := context.Background()
	creds := core.Credentials{APIKey: "key"}

	testCases := []struct {
		name       string
		invoke     func() error
		wantMethod string
		wantPath   string
	}{
		{name: "list", wantMethod: "GET", wantPath: "/api/subscriptions", invoke: func() error {
			_, err := api.GetAllSubscriptions(ctx, creds)
			return err
		}},
		{name: "stats", wantMethod: "GET", wantPath: "/api/subscriptions/stats", invoke: func() error {
			stats, err := api.GetSubscriptionStats(ctx, creds)
			if err == nil {
				assert.Equal(t, int64(1), stats.Total)
			}
			return err
		}},
		{name: "get", wantMethod: "GET", wantPath: "/api/subscriptions/bob", invoke: func() error {
			_, err := api.GetSubscription(ctx, creds, "bob")
			return err
		}},
		{name: "update", wantMethod: "PUT", wantPath: "/api/subscriptions/bob", invoke: func() error {
			limit := int64(50)
			_, err := api.UpdateSubscription(ctx, creds, "bob", types.SubscriptionUpdate{LimitUsage: &limit})
			return err
		}},
		{name: "delete", wantMethod: "DELETE", wantPath: "/api/subscriptions/bob", invoke: func() error {
			raw, err := api.DeleteSubscription(ctx, creds, "bob")
			assert.Nil(t, raw)
			return err
		}},
		{name: "usages", wantMethod: "GET", wantPath: "/api/subscriptions/bob/usages", invoke: func() error {
			_, err := api.GetSubscriptionUsages(ctx, creds, "bob")
			return err
		}},
		{name: "enable", wantMethod: "POST", wantPath: "/api/subscriptions/bob/enable", invoke: func() error {
			_, err := api.EnableSubscription(ctx, creds, "bob")
			return err
		}},
		{name: "disable", wantMethod: "POST", wantPath: "/api/subscriptions/bob/disable", invoke: func() error {
			_, err := api.DisableSubscription(ctx, creds, "bob")
			return err
		}},
		{name: "revoke", wantMethod: "POST", wantPath: "/api/subscriptions/bob/revoke", invoke: func() error {
			_, err := api.RevokeSubscription(ctx, creds, "bob")
			return err
		}},
		{name: "reset", wantMethod: "POST", wantPath: "/api/subscriptions/bob/reset", invoke: func() error {
			_, err := api.ResetSubscription(ctx, creds, "bob")
			return err
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.invoke())

			got := fake.last(t)
			assert.Equal(t, tc.wantMethod, got.Method)
			assert.Equal(t, tc.wantPath, got.Path)
			assert.Equal(t, "key", got.APIKey)
			assert.Empty(t, got.Auth)
		})
	}
}

func TestLegacyUsageSegment(t *testing.T) {
	t.Parallel()

	fake, api := newFakeCore(t, map[string]string{
		"GET /api/admins/current/usage": usageLogsBody,
	})
	api.UsageSegment = UsageSegmentLegacy

	_, err := api.GetCurrentAdminUsages(context.Background(), core.Bearer("tok"))

	require.NoError(t, err)
	assert.Equal(t, "/api/admins/current/usage", fake.last(t).Path)
}

func TestUsernameIsPathEscaped(t *testing.T) {
	t.Parallel()

	fake, api := newFakeCore(t, map[string]string{
		"GET /api/subscriptions/a%2Fb": subscription(1, "a/b"),
	})

	sub, err := api.GetSubscription(context.Background(), core.Bearer("tok"), "a/b")

	require.NoError(t, err)
	assert.Equal(t, "a/b", sub.Username)
	assert.Equal(t, "/api/subscriptions/a%2Fb", fake.last(t).Path)
}

func TestInvalidInputIsRejectedBeforeRequest(t *testing.T) {
	t.Parallel()

	fake, api := newFakeCore(t, nil)
	ctx := context.Background()
	creds := core.Bearer("tok")

	_, err := api.CreateAdmin(ctx, creds, types.AdminCreate{Username: "bob"})
	assert.ErrorContains(t, err, "invalid admin")

	_, err = api.CreateSubscriptions(ctx, creds, nil)
	assert.ErrorContains(t, err, "at least one subscription")

	_, err = api.CreateSubscriptions(ctx, creds, []types.SubscriptionCreate{{Username: "bob"}, {Username: ""}})
	assert.ErrorContains(t, err, "invalid subscription 1")

	_, err = api.GetAdmin(ctx, creds, "  ")
	assert.ErrorContains(t, err, "username is required")

	assert.Equal(t, 0, fake.count())
}

func TestErrorKindsPropagate(t *testing.T) {
	t.Parallel()

	_, api := newFakeCore(t, nil)

	_, err := api.GetAdmin(context.Background(), core.Bearer("tok"), "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrResponse)
	assert.Equal(t, http.StatusNotFound, core.StatusCode(err))
	assert.ErrorContains(t, err, "Not Found")
}
