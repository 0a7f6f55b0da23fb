package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/bnema/guardcore-cli/internal/ports"
	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
	"github.com/rs/zerolog"
)

type Service struct {
	repo   ports.ProfileRepository
	store  ports.SecretStore
	client ports.CoreClient
	clock  ports.Clock
	logger zerolog.Logger
}

func NewService(repo ports.ProfileRepository, store ports.SecretStore, client ports.CoreClient, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		repo:   repo,
		store:  store,
		client: client,
		clock:  clock,
		logger: zerolog.Nop(),
	}
}

func (s *Service) WithLogger(logger zerolog.Logger) *Service {
	s.logger = logger
	return s
}

// Login exchanges a username and password for an admin token, stores the
// token in the secret store and makes the profile active.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (domain.Profile, error) {
	if err := cmd.validate(); err != nil {
		return domain.Profile{}, err
	}

	token, err := s.client.GenerateAdminToken(ctx, cmd.BaseURL, cmd.Username, cmd.Password)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("generate admin token: %w", err)
	}

	admin, err := s.client.GetCurrentAdmin(ctx, cmd.BaseURL, core.Bearer(token.AccessToken))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("verify admin token: %w", err)
	}

	secretValue, err := json.Marshal(token)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("encode admin token: %w", err)
	}

	return s.saveAuth(ctx, cmd.ProfileID, cmd.BaseURL, admin, domain.AuthMethodPassword, domain.TokenSecretRef(cmd.ProfileID), string(secretValue))
}

// LoginWithAPIKey verifies an admin API key and saves it like Login does.
func (s *Service) LoginWithAPIKey(ctx context.Context, cmd APIKeyLoginCommand) (domain.Profile, error) {
	if err := cmd.validate(); err != nil {
		return domain.Profile{}, err
	}

	admin, err := s.client.GetCurrentAdmin(ctx, cmd.BaseURL, core.Credentials{APIKey: cmd.APIKey})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("verify api key: %w", err)
	}

	return s.saveAuth(ctx, cmd.ProfileID, cmd.BaseURL, admin, domain.AuthMethodAPIKey, domain.APIKeySecretRef(cmd.ProfileID), cmd.APIKey)
}

func (s *Service) saveAuth(
	ctx context.Context,
	id domain.ProfileID,
	baseURL string,
	admin types.AdminResponse,
	method domain.AuthMethod,
	secretKey string,
	secretValue string,
) (domain.Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return domain.Profile{}, fmt.Errorf("get profile by id: %w", err)
		}
		profile = domain.Profile{ID: id}
	}
	previousSecretRef := profile.Auth.SecretRef

	if err := s.store.Put(ctx, secretKey, secretValue); err != nil {
		return domain.Profile{}, fmt.Errorf("store auth secret: %w", err)
	}

	profile.Username = admin.Username
	profile.BaseURL = baseURL
	profile.Role = string(admin.Role)
	profile.Auth = domain.Auth{Method: method, SecretRef: secretKey}
	profile.LastLoginAt = s.clock.Now().UTC()

	if err := s.repo.Save(ctx, profile); err != nil {
		if rollbackErr := s.store.Delete(ctx, secretKey); rollbackErr != nil {
			return domain.Profile{}, fmt.Errorf("save profile auth and rollback stored secret: %w", errors.Join(err, rollbackErr))
		}

		return domain.Profile{}, fmt.Errorf("save profile auth: %w", err)
	}

	if previousSecretRef != "" && previousSecretRef != secretKey {
		if err := s.store.Delete(ctx, previousSecretRef); err != nil {
			s.logger.Warn().Err(err).Str("profile", string(id)).Str("secret_ref", previousSecretRef).Msg("delete previous auth secret")
		}
	}

	if err := s.repo.SetActive(ctx, id); err != nil {
		return domain.Profile{}, fmt.Errorf("activate profile: %w", err)
	}

	s.logger.Debug().Str("profile", string(id)).Str("username", profile.Username).Str("method", string(method)).Msg("profile logged in")
	return profile, nil
}

// Logout removes the stored secret and clears the profile's auth. When the
// secret cannot be deleted the auth ref is restored so it is not orphaned.
func (s *Service) Logout(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	profile, err := s.Resolve(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}
	original := profile

	secretRef := profile.Auth.SecretRef
	profile.Auth = domain.Auth{}

	if err := s.repo.Save(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile auth: %w", err)
	}

	if secretRef == "" {
		return profile, nil
	}

	if err := s.store.Delete(ctx, secretRef); err != nil {
		if restoreErr := s.repo.Save(ctx, original); restoreErr != nil {
			return domain.Profile{}, fmt.Errorf("delete auth secret and restore profile auth: %w", errors.Join(err, restoreErr))
		}
		return domain.Profile{}, fmt.Errorf("delete auth secret: %w", err)
	}

	return profile, nil
}

// Resolve returns the profile with the given id, or the active profile when
// id is empty.
func (s *Service) Resolve(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	if strings.TrimSpace(string(id)) == "" {
		active, err := s.repo.Active(ctx)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("get active profile: %w", err)
		}
		id = active
	}

	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile %s: %w", id, err)
	}

	return profile, nil
}

// Credentials loads the stored secret for a profile and turns it into
// per-call credentials.
func (s *Service) Credentials(ctx context.Context, id domain.ProfileID) (domain.Profile, core.Credentials, error) {
	profile, err := s.Resolve(ctx, id)
	if err != nil {
		return domain.Profile{}, core.Credentials{}, err
	}
	if !profile.LoggedIn() {
		return domain.Profile{}, core.Credentials{}, fmt.Errorf("profile %s: %w", profile.ID, domain.ErrNotLoggedIn)
	}

	secretValue, err := s.store.Get(ctx, profile.Auth.SecretRef)
	if err != nil {
		return domain.Profile{}, core.Credentials{}, fmt.Errorf("profile %s: load auth secret: %w", profile.ID, err)
	}

	switch profile.Auth.Method {
	case domain.AuthMethodPassword:
		var token types.AdminToken
		if err := core.DecodeJSON([]byte(secretValue), &token); err != nil {
			return domain.Profile{}, core.Credentials{}, fmt.Errorf("profile %s: decode admin token: %w", profile.ID, err)
		}
		return profile, core.Bearer(token.AccessToken), nil
	case domain.AuthMethodAPIKey:
		return profile, core.Credentials{APIKey: strings.TrimSpace(secretValue)}, nil
	default:
		return domain.Profile{}, core.Credentials{}, fmt.Errorf("profile %s: unsupported auth method %q", profile.ID, profile.Auth.Method)
	}
}

func (s *Service) Use(ctx context.Context, id domain.ProfileID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get profile %s: %w", id, err)
	}

	if err := s.repo.SetActive(ctx, id); err != nil {
		return fmt.Errorf("activate profile: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context) ([]ProfileView, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	active, err := s.repo.Active(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoActiveProfile) {
		return nil, fmt.Errorf("get active profile: %w", err)
	}

	views := make([]ProfileView, 0, len(profiles))
	for _, profile := range profiles {
		views = append(views, ProfileView{Profile: profile, Active: profile.ID == active})
	}

	return views, nil
}

// Dashboard fetches the current admin and subscription counters for a profile.
func (s *Service) Dashboard(ctx context.Context, id domain.ProfileID) (Dashboard, error) {
	profile, creds, err := s.Credentials(ctx, id)
	if err != nil {
		return Dashboard{}, err
	}

	admin, err := s.client.GetCurrentAdmin(ctx, profile.BaseURL, creds)
	if err != nil {
		return Dashboard{}, fmt.Errorf("profile %s: get current admin: %w", profile.ID, err)
	}

	stats, err := s.client.GetSubscriptionStats(ctx, profile.BaseURL, creds)
	if err != nil {
		return Dashboard{}, fmt.Errorf("profile %s: get subscription stats: %w", profile.ID, err)
	}

	return Dashboard{
		Profile:   profile,
		Admin:     admin,
		Stats:     stats,
		FetchedAt: s.clock.Now(),
	}, nil
}

func (s *Service) AdminUsages(ctx context.Context, id domain.ProfileID) (types.AdminUsageLogsResponse, error) {
	profile, creds, err := s.Credentials(ctx, id)
	if err != nil {
		return types.AdminUsageLogsResponse{}, err
	}

	usages, err := s.client.GetCurrentAdminUsages(ctx, profile.BaseURL, creds)
	if err != nil {
		return types.AdminUsageLogsResponse{}, fmt.Errorf("profile %s: get admin usages: %w", profile.ID, err)
	}

	return usages, nil
}

// Remove deletes a profile and its stored secret.
func (s *Service) Remove(ctx context.Context, id domain.ProfileID) error {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile %s: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile %s: %w", id, err)
	}

	if profile.Auth.SecretRef == "" {
		return nil
	}
	if err := s.store.Delete(ctx, profile.Auth.SecretRef); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		s.logger.Warn().Err(err).Str("profile", string(id)).Str("secret_ref", profile.Auth.SecretRef).Msg("delete removed profile secret")
	}

	return nil
}
