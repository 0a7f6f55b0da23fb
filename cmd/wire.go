package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/bnema/guardcore-cli/internal/adapters/coreclient"
	statusadapter "github.com/bnema/guardcore-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/guardcore-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/guardcore-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/guardcore-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/guardcore-cli/internal/adapters/secrets/pass"
	"github.com/bnema/guardcore-cli/internal/application"
	"github.com/bnema/guardcore-cli/internal/config"
	"github.com/bnema/guardcore-cli/internal/logging"
	"github.com/bnema/guardcore-cli/internal/ports"
	"github.com/rs/zerolog"
)

type app struct {
	cfg            config.Config
	logger         zerolog.Logger
	service        *application.Service
	client         *coreclient.Client
	statusRenderer func(application.Dashboard, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

type globalFlags struct {
	profile  string
	asJSON   bool
	logLevel string
}

func (a *app) wire(flags globalFlags, logOutput io.Writer) error {
	v, cfg, err := config.Load(config.Options{})
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	logger := logging.New(logOutput, cfg.Log.Level)

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return fmt.Errorf("wire profile repository: %w", err)
	}

	secretStore, err := newSecretStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	client := coreclient.New(
		coreclient.WithTimeout(cfg.Timeout),
		coreclient.WithUsageSegment(cfg.UsageSegment),
		coreclient.WithLogger(logger),
	)

	a.cfg = cfg
	a.logger = logger
	a.client = client
	a.service = application.NewService(repo, secretStore, client, ports.SystemClock{}).WithLogger(logger)
	a.statusRenderer = statusadapter.Render
	a.now = time.Now

	logger.Debug().Str("profiles", repo.Path()).Str("secrets", cfg.Secrets.Backend).Str("base_url", cfg.BaseURL).Msg("wired")
	return nil
}

func newSecretStore(cfg config.Config, logger zerolog.Logger) (ports.SecretStore, error) {
	switch cfg.Secrets.Backend {
	case config.BackendFile:
		return filestore.NewStore(cfg.Secrets.Dir), nil
	case config.BackendPass:
		return passstore.NewStore(), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.Secrets.Dir, chainstore.WithLogger(logger))
	}
}
