package application

import (
	"errors"
	"strings"

	"github.com/bnema/guardcore-cli/internal/domain"
)

var (
	errProfileIDRequired = errors.New("profile id is required")
	errBaseURLRequired   = errors.New("base url is required")
)

type LoginCommand struct {
	ProfileID domain.ProfileID
	BaseURL   string
	Username  string
	Password  string
}

func (c LoginCommand) validate() error {
	if strings.TrimSpace(string(c.ProfileID)) == "" {
		return errProfileIDRequired
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return errBaseURLRequired
	}
	if strings.TrimSpace(c.Username) == "" {
		return errors.New("username is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// APIKeyLoginCommand saves an admin API key instead of a password-issued token.
type APIKeyLoginCommand struct {
	ProfileID domain.ProfileID
	BaseURL   string
	APIKey    string
}

func (c APIKeyLoginCommand) validate() error {
	if strings.TrimSpace(string(c.ProfileID)) == "" {
		return errProfileIDRequired
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return errBaseURLRequired
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("api key is required")
	}
	return nil
}
