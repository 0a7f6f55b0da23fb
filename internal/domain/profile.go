package domain

import "time"

type ProfileID string

// Profile is a saved admin login against one guardcore server.
type Profile struct {
	ID          ProfileID
	Username    string
	BaseURL     string
	Role        string
	Auth        Auth
	LastLoginAt time.Time
}

func (p Profile) LoggedIn() bool {
	return p.Auth.Method != "" && p.Auth.SecretRef != ""
}

// Label renders the profile as "username@host" for listings.
func (p Profile) Label() string {
	if p.Username == "" {
		return string(p.ID)
	}
	return p.Username + "@" + hostOf(p.BaseURL)
}
