// Package guardcore exposes one method per guardcore server operation. Each
// call performs exactly one HTTP request through core.Core; credentials are
// passed per call and never stored.
package guardcore

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
)

const (
	// UsageSegment is the path segment used for usage logs by current servers.
	UsageSegment = "usages"
	// UsageSegmentLegacy targets servers that only expose the admin surface
	// and serve usage logs under the singular segment.
	UsageSegmentLegacy = "usage"
)

type API struct {
	Core core.Core
	// UsageSegment selects the usage-log path segment. Empty means UsageSegment.
	UsageSegment string
}

// New returns an API for baseURL using the default HTTP client.
func New(baseURL string) API {
	return API{Core: core.Core{BaseURL: baseURL}}
}

func (a API) usageSegment() string {
	if a.UsageSegment == "" {
		return UsageSegment
	}
	return a.UsageSegment
}

type validatable interface {
	Validate() error
}

func validateInput(name string, input validatable) error {
	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}

func requireUsername(username string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", errors.New("username is required")
	}
	return url.PathEscape(username), nil
}

func request(endpoint string, creds core.Credentials) core.Request {
	return core.Request{Endpoint: endpoint, Headers: creds.Headers()}
}
