package core

import "net/http"

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
	headerAPIKey    = "X-API-Key"
)

// Credentials hold the caller's auth material for a single call.
type Credentials struct {
	AccessToken string
	APIKey      string
}

// Bearer returns credentials carrying only an access token.
func Bearer(accessToken string) Credentials {
	return Credentials{AccessToken: accessToken}
}

func (c Credentials) Headers() http.Header {
	return BuildHeaders(c.APIKey, c.AccessToken)
}

// BuildHeaders always sets JSON Accept and Content-Type. X-API-Key and
// Authorization are added only when the matching value is non-empty.
func BuildHeaders(apiKey, accessToken string) http.Header {
	headers := http.Header{}
	headers.Set("Accept", contentTypeJSON)
	headers.Set("Content-Type", contentTypeJSON)
	if apiKey != "" {
		headers.Set(headerAPIKey, apiKey)
	}
	if accessToken != "" {
		headers.Set("Authorization", "Bearer "+accessToken)
	}
	return headers
}
