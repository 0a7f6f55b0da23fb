package domain

import (
	"fmt"
	"strings"
)

type AuthMethod string

const (
	AuthMethodPassword AuthMethod = "password"
	AuthMethodAPIKey   AuthMethod = "api_key"
)

const secretRefScheme = "guardcore://"

type Auth struct {
	Method AuthMethod
	// SecretRef points to a secret-store entry in "guardcore://<profile>/<name>" form.
	SecretRef string
}

func TokenSecretRef(id ProfileID) string {
	return secretRefScheme + string(id) + "/token"
}

func APIKeySecretRef(id ProfileID) string {
	return secretRefScheme + string(id) + "/api_key"
}

// SecretPath strips the scheme from a secret ref, leaving a relative
// slash-separated path that storage backends can map onto their own layout.
func SecretPath(ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if !strings.HasPrefix(trimmed, secretRefScheme) {
		return "", fmt.Errorf("invalid secret ref %q: missing %s scheme", ref, secretRefScheme)
	}

	path := strings.Trim(strings.TrimPrefix(trimmed, secretRefScheme), "/")
	if path == "" {
		return "", fmt.Errorf("invalid secret ref %q: empty path", ref)
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", fmt.Errorf("invalid secret ref %q", ref)
		}
	}

	return path, nil
}
