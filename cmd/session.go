package cmd

import (
	"context"

	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/bnema/guardcore-cli/pkg/guardcore"
	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
)

// session binds a logged-in profile to an SDK entry point for its server.
type session struct {
	profile domain.Profile
	api     guardcore.API
	creds   core.Credentials
}

func (a *app) session(ctx context.Context, flags *globalFlags) (session, error) {
	profile, creds, err := a.service.Credentials(ctx, domain.ProfileID(flags.profile))
	if err != nil {
		return session{}, err
	}

	a.logger.Debug().Str("profile", string(profile.ID)).Str("base_url", profile.BaseURL).Msg("session resolved")
	return session{profile: profile, api: a.client.API(profile.BaseURL), creds: creds}, nil
}
