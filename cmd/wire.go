package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	authadapter "github.com/bnema/studypomo/internal/adapters/auth"
	"github.com/bnema/studypomo/internal/adapters/id"
	sqlitequeue "github.com/bnema/studypomo/internal/adapters/queue/sqlite"
	"github.com/bnema/studypomo/internal/adapters/remote/docdir"
	"github.com/bnema/studypomo/internal/adapters/remote/rest"
	statsadapter "github.com/bnema/studypomo/internal/adapters/render/stats"
	tomlrepo "github.com/bnema/studypomo/internal/adapters/repo/toml"
	chainstore "github.com/bnema/studypomo/internal/adapters/secrets/chain"
	"github.com/bnema/studypomo/internal/adapters/store/jsonfile"
	"github.com/bnema/studypomo/internal/application"
	"github.com/bnema/studypomo/internal/logging"
	"github.com/bnema/studypomo/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg    tomlrepo.Config
	logger *slog.Logger

	queue      *sqlitequeue.Queue
	identities *tomlrepo.IdentityRepository
	secrets    *chainstore.Store
	outbox     *application.Outbox
	data       *application.DataService
	auth       *application.AuthService
	sync       *application.SyncService
	timer      *application.TimerService

	provider      authadapter.Provider
	tokens        *authadapter.StoredSource
	statsRenderer func(application.StatsReport, statsadapter.RenderOptions) (string, error)
	now           func() time.Time

	closers []io.Closer
}

type wireOptions struct {
	Verbose bool
	Stderr  io.Writer
}

func wireApp(ctx context.Context, opts wireOptions) (*app, error) {
	cfg := viper.New()
	config, err := tomlrepo.LoadConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:   config.Log.Level,
		File:    config.Log.File,
		Verbose: opts.Verbose,
		Stderr:  opts.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}
	a := &app{
		cfg:           config,
		logger:        logger,
		statsRenderer: statsadapter.Render,
		now:           time.Now,
		closers:       []io.Closer{logCloser},
	}

	if err := a.wireServices(ctx, cfg); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wireServices(ctx context.Context, cfg *viper.Viper) error {
	clock := ports.SystemClock{}

	snapshots, err := jsonfile.New(a.cfg.SnapshotPath(), a.logger)
	if err != nil {
		return fmt.Errorf("wire snapshot store: %w", err)
	}

	queue, err := sqlitequeue.Open(ctx, a.cfg.QueuePath())
	if err != nil {
		return fmt.Errorf("wire offline queue: %w", err)
	}
	a.queue = queue
	a.closers = append(a.closers, queue)

	identities, err := tomlrepo.NewIdentityRepository(cfg)
	if err != nil {
		return fmt.Errorf("wire identity repository: %w", err)
	}
	a.identities = identities
	settings, err := tomlrepo.NewSettingsRepository(cfg, a.cfg.Defaults)
	if err != nil {
		return fmt.Errorf("wire settings repository: %w", err)
	}
	states, err := tomlrepo.NewTimerStateRepository(cfg, clock)
	if err != nil {
		return fmt.Errorf("wire timer state repository: %w", err)
	}

	secrets, err := chainstore.NewPassFirstWithFileFallback(a.cfg.SecretsDir(), a.logger)
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}
	a.secrets = secrets

	a.outbox = application.NewOutbox(queue, identities, clock, a.logger)
	a.data = application.NewDataService(snapshots, queue, a.outbox, clock, a.logger)
	a.auth = application.NewAuthService(identities, secrets)
	a.provider = authadapter.Provider{
		Issuer:         a.cfg.Auth.Issuer,
		ClientID:       a.cfg.Auth.ClientID,
		Audience:       a.cfg.Auth.Audience,
		RequestTimeout: a.cfg.HTTPTimeout,
	}

	remote, connectivity, err := a.wireRemote(ctx)
	if err != nil {
		return err
	}
	a.sync = application.NewSyncService(queue, snapshots, identities, remote, connectivity, clock, a.logger)

	a.timer, err = application.NewTimerService(ctx, states, settings, a.data, id.UUIDGenerator{}, clock, a.logger)
	if err != nil {
		return fmt.Errorf("wire timer service: %w", err)
	}

	return nil
}

// wireRemote picks the remote store from sync.remote_url: empty disables
// sync, file:// uses a document directory, http(s) the document API.
func (a *app) wireRemote(ctx context.Context) (ports.RemoteStore, ports.Connectivity, error) {
	raw := a.cfg.RemoteURL
	if raw == "" {
		return nil, nil, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", tomlrepo.KeyRemoteURL, err)
	}

	switch parsed.Scheme {
	case "file":
		store, err := docdir.New(parsed.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("wire document directory: %w", err)
		}
		return store, store, nil
	case "http", "https":
		httpClient, tokens := a.provider.StoredClient(context.WithoutCancel(ctx), a.auth)
		client, err := rest.New(raw, httpClient, a.cfg.HTTPTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("wire document api: %w", err)
		}
		a.tokens = tokens
		return client, rest.Probe{URL: raw, Timeout: a.cfg.HTTPTimeout}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported %s scheme %q", tomlrepo.KeyRemoteURL, parsed.Scheme)
	}
}

// identityChanged drops cached credentials after sign-in or sign-out.
func (a *app) identityChanged() {
	if a.tokens != nil {
		a.tokens.Forget()
	}
}

// syncAfterWrite gives a one-shot command the chance to deliver what it
// just queued. Failures stay queued and are only logged.
func (a *app) syncAfterWrite(ctx context.Context) {
	report, err := a.sync.Sync(ctx)
	if err != nil {
		a.logger.Warn("sync after write failed", slog.Any("error", err))
		return
	}
	if report.Drain.Skipped {
		a.logger.Debug("sync skipped", slog.String("reason", report.Drain.Reason))
	}
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
