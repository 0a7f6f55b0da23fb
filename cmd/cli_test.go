package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cliAdminBody = `{"id":1,"username":"alice","role":"owner","enabled":true,"service_ids":[1],
		"placeholders":[],"current_usage":250000000,"usage_limit":1000000000,
		"created_at":"2026-01-01T10:00:00Z"}`
	cliStatsBody = `{"total":12,"active":9,"disabled":2,"expired":1,"limited":0,"pending":0,
		"available":9,"unavailable":3,"online":4,"offline":8,"last_24h_online":5,"last_24h_usage":3500000000}`
	cliSubscriptionBody = `{"id":7,"username":"bob","access_key":"ak","status":"active","enabled":true,
		"is_active":true,"limited":false,"expired":false,"limit_usage":1000,"current_usage":10,
		"limit_expire":0,"service_ids":[1],"created_at":"2026-01-01T10:00:00Z"}`
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	APIKey string
	Body   string
}

type fakeGuardcore struct {
	mu       sync.Mutex
	requests []recordedRequest
	server   *httptest.Server
}

func newFakeGuardcore(t *testing.T) *fakeGuardcore {
	t.Helper()

	fake := &fakeGuardcore{}
	fake.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fake.mu.Lock()
		fake.requests = append(fake.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			APIKey: r.Header.Get("X-API-Key"),
			Body:   string(body),
		})
		fake.mu.Unlock()

		authorized := r.Header.Get("Authorization") == "Bearer tok" || r.Header.Get("X-API-Key") == "key-1"
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/admins/token":
			if !strings.Contains(string(body), "password=pw") {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"detail":"Incorrect username or password"}`)
				return
			}
			_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"bearer"}`)
		case !authorized:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/admins/current":
			_, _ = io.WriteString(w, cliAdminBody)
		case r.Method == http.MethodGet && r.URL.Path == "/api/subscriptions/stats":
			_, _ = io.WriteString(w, cliStatsBody)
		case r.Method == http.MethodGet && r.URL.Path == "/api/subscriptions":
			_, _ = io.WriteString(w, "["+cliSubscriptionBody+"]")
		case r.Method == http.MethodPost && r.URL.Path == "/api/subscriptions":
			_, _ = io.WriteString(w, "["+cliSubscriptionBody+"]")
		case r.Method == http.MethodDelete && r.URL.Path == "/api/subscriptions/bob":
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodGet && r.URL.Path == "/api/admins/current/usages":
			_, _ = io.WriteString(w, `{"admin":`+cliAdminBody+`,"usage_logs":[]}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/subscriptions/bob/usages":
			_, _ = io.WriteString(w, `{"subscription":`+cliSubscriptionBody+`,"usage_logs":[
				{"usage":1000000,"created_at":"2026-01-01T10:00:00Z"},
				{"usage":3000000,"created_at":"2026-01-01T11:00:00Z"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Not Found"}`)
		}
	}))
	t.Cleanup(fake.server.Close)

	return fake
}

func (f *fakeGuardcore) url() string {
	return f.server.URL + "/"
}

func (f *fakeGuardcore) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeGuardcore) countPath(method, path string) int {
	n := 0
	for _, req := range f.recorded() {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestLoginThenStatusRendersDashboard(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)

	stdout, _, err := executeCLI(t, home, "login", "--base-url", fake.url(), "-u", "alice", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged in as alice@127.0.0.1")
	assert.Contains(t, stdout, "on profile default")

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Guardcore Admin")
	assert.Contains(t, stdout, "alice (owner)")
	assert.Contains(t, stdout, "25% used")
	assert.Contains(t, stdout, "total 12 | active 9")

	for _, req := range fake.recorded() {
		if req.Path == "/api/subscriptions/stats" {
			assert.Equal(t, "Bearer tok", req.Auth)
		}
	}

	secret, err := os.ReadFile(filepath.Join(home, ".guardcore", "secrets", "default", "token"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"tok","token_type":"bearer"}`, string(secret))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)

	_, _, err := executeCLI(t, home, "login", "--base-url", fake.url(), "-u", "alice", "--password", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
	assert.Contains(t, err.Error(), "Incorrect username or password")

	_, statErr := os.Stat(filepath.Join(home, ".guardcore", "profiles.toml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoginWithAPIKeyFromStdin(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)

	stdout, _, err := executeCLIWithInput(t, home, "key-1\n",
		"login", "--profile", "ops", "--base-url", fake.url(), "--api-key-stdin")
	require.NoError(t, err)
	assert.Contains(t, stdout, "on profile ops")

	stdout, _, err = executeCLI(t, home, "subscription", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bob")

	for _, req := range fake.recorded() {
		if req.Path == "/api/subscriptions" {
			assert.Equal(t, "key-1", req.APIKey)
			assert.Empty(t, req.Auth)
		}
	}
}

func TestStatusWithoutLoginHintsLogin(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active profile")
	assert.Contains(t, err.Error(), "run gc login")
}

func TestExpiredTokenHintsLogin(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)
	require.NoError(t, writeProfileFixture(home, fake.url(), `{"access_token":"stale","token_type":"bearer"}`))

	_, _, err := executeCLI(t, home, "subscription", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "(run gc login)")
}

func TestSubscriptionCreateFromFlagsSendsArray(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)
	require.NoError(t, writeProfileFixture(home, fake.url(), `{"access_token":"tok","token_type":"bearer"}`))

	stdout, _, err := executeCLI(t, home,
		"subscription", "create", "bob",
		"--limit-usage", "1000",
		"--service-id", "1",
		"--note", "trial",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "bob")
	assert.Contains(t, stdout, "USERNAME")

	var body []map[string]any
	for _, req := range fake.recorded() {
		if req.Method == http.MethodPost && req.Path == "/api/subscriptions" {
			require.NoError(t, json.Unmarshal([]byte(req.Body), &body))
		}
	}
	require.Len(t, body, 1)
	assert.Equal(t, "bob", body[0]["username"])
	assert.Equal(t, "trial", body[0]["note"])
	assert.EqualValues(t, 1000, body[0]["limit_usage"])
}

func TestSubscriptionCreateValidatesBeforeSending(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)
	require.NoError(t, writeProfileFixture(home, fake.url(), `{"access_token":"tok","token_type":"bearer"}`))

	_, _, err := executeCLI(t, home, "subscription", "create", "ab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscription 0")
	assert.Zero(t, fake.countPath(http.MethodPost, "/api/subscriptions"))
}

func TestAdminCreateRejectsUnknownFields(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)
	require.NoError(t, writeProfileFixture(home, fake.url(), `{"access_token":"tok","token_type":"bearer"}`))

	_, _, err := executeCLI(t, home, "admin", "create", "--data", `{"username":"carol","pasword":"x","role":"reseller"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
	assert.Empty(t, fake.recorded())
}

func TestSubscriptionListJSONOutput(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)
	require.NoError(t, writeProfileFixture(home, fake.url(), `{"access_token":"tok","token_type":"bearer"}`))

	stdout, _, err := executeCLI(t, home, "subscription", "list", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"username": "bob"`)
}

func TestSubscriptionDeleteWithEmptyBody(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)
	require.NoError(t, writeProfileFixture(home, fake.url(), `{"access_token":"tok","token_type":"bearer"}`))

	stdout, _, err := executeCLI(t, home, "subscription", "delete", "bob")
	require.NoError(t, err)
	assert.Equal(t, "Deleted subscription bob\n", stdout)
}

func TestSubscriptionUsagesPlotsChart(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)
	require.NoError(t, writeProfileFixture(home, fake.url(), `{"access_token":"tok","token_type":"bearer"}`))

	stdout, _, err := executeCLI(t, home, "subscription", "usages", "bob", "--width", "30", "--height", "4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bob usage (MB)")
	assert.Contains(t, stdout, "total 4.0MB over 2 samples")
}

func TestAdminUsagesDefaultsToCurrentAdmin(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)
	require.NoError(t, writeProfileFixture(home, fake.url(), `{"access_token":"tok","token_type":"bearer"}`))

	stdout, _, err := executeCLI(t, home, "admin", "usages")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No usage recorded.")
	assert.Equal(t, 1, fake.countPath(http.MethodGet, "/api/admins/current/usages"))
}

func TestProfileListUseAndLogout(t *testing.T) {
	home := t.TempDir()
	fake := newFakeGuardcore(t)

	_, _, err := executeCLI(t, home, "login", "--profile", "main", "--base-url", fake.url(), "-u", "alice", "--password", "pw")
	require.NoError(t, err)
	_, _, err = executeCLIWithInput(t, home, "key-1", "login", "--profile", "ops", "--base-url", fake.url(), "--api-key-stdin")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "profile", "use", "main")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "profile", "list", "--json")
	require.NoError(t, err)
	var views []struct {
		Profile struct{ ID string }
		Active  bool
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "main", views[0].Profile.ID)
	assert.True(t, views[0].Active)
	assert.False(t, views[1].Active)

	_, _, err = executeCLI(t, home, "profile", "use", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")

	stdout, _, err = executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out of profile main")

	_, _, err = executeCLI(t, home, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile is not logged in")

	_, err = os.Stat(filepath.Join(home, ".guardcore", "secrets", "main", "token"))
	assert.True(t, os.IsNotExist(err))

	_, _, err = executeCLI(t, home, "profile", "remove", "ops")
	require.NoError(t, err)
	stdout, _, err = executeCLI(t, home, "profile", "list")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "ops")
}

func TestUnknownCommand(t *testing.T) {
	for _, name := range []string{"frobnicate", "stats"} {
		t.Run(name, func(t *testing.T) {
			_, _, err := executeCLI(t, t.TempDir(), name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unknown command \""+name+"\"")
		})
	}
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home string, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("GUARDCORE_SECRETS_BACKEND", "file")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeProfileFixture(home string, baseURL string, token string) error {
	configDir := filepath.Join(home, ".guardcore")
	if err := os.MkdirAll(filepath.Join(configDir, "secrets", "main"), 0o700); err != nil {
		return err
	}

	profiles := `version = 1
active = "main"

[[profiles]]
id = "main"
username = "alice"
base_url = "` + baseURL + `"
role = "owner"

[profiles.auth]
method = "password"
secret_ref = "guardcore://main/token"
`

	if err := os.WriteFile(filepath.Join(configDir, "profiles.toml"), []byte(profiles), 0o600); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "secrets", "main", "token"), []byte(token), 0o600)
}
