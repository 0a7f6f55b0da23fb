package e2e

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminBody = `{"id":1,"username":"alice","role":"sudo","enabled":true,"service_ids":[],
		"placeholders":[],"created_at":"2026-01-01T10:00:00Z"}`
	statsBody = `{"total":3,"active":2,"disabled":1,"expired":0,"limited":0,"pending":0,
		"available":2,"unavailable":1,"online":1,"offline":2,"last_24h_online":1,"last_24h_usage":0}`
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server := newCoreServer(t)

	_, stderr, err := runGC(t, binaryPath, home, "sk-test-123\n",
		"login",
		"--profile", "smoke",
		"--base-url", server.URL,
		"--api-key-stdin",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runGC(t, binaryPath, home, "", "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "alice (sudo)")
	assert.Contains(t, stdout, "total 3 | active 2")

	stdout, stderr, err = runGC(t, binaryPath, home, "", "profile", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "smoke")
}

func newCoreServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "sk-test-123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch strings.TrimSuffix(r.URL.Path, "/") {
		case "/api/admins/current":
			_, _ = io.WriteString(w, adminBody)
		case "/api/subscriptions/stats":
			_, _ = io.WriteString(w, statsBody)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	return server
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "gc-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/gc")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build gc binary: %s", string(output))
	return binaryPath
}

func runGC(t *testing.T, binaryPath, home, input string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "GUARDCORE_SECRETS_BACKEND=file")
	cmd.Stdin = strings.NewReader(input)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
