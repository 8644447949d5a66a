package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	dashboard "github.com/syed-arham-coder/Pak-Turk-sub001"
	"github.com/syed-arham-coder/Pak-Turk-sub001/config"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/adapters/authroles"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/adapters/httprate"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/adapters/i18nfs"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/adapters/postgres"
	redisadapter "github.com/syed-arham-coder/Pak-Turk-sub001/internal/adapters/redis"
	domainsession "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/session"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/ports"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/service"
)

// Contexts holds the application contexts exposed to the frontend layer.
type Contexts struct {
	Session      *service.SessionService
	Localization *service.LocalizationService
}

// ContextDeps groups dependencies for context construction.
type ContextDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewContexts builds the session and localization contexts from shared
// infrastructure, selecting adapters per configuration.
func NewContexts(deps *ContextDeps) (Contexts, error) {
	if deps == nil || deps.Config == nil {
		return Contexts{}, errors.New("config is required")
	}
	if deps.DB == nil {
		return Contexts{}, errors.New("database connection is required")
	}
	if deps.RedisClient == nil {
		return Contexts{}, errors.New("redis client is required")
	}

	cfg := deps.Config

	auth, err := buildAuthComponents(cfg.Auth, deps.Logger)
	if err != nil {
		return Contexts{}, fmt.Errorf("build auth components: %w", err)
	}

	rates, err := buildRateSource(cfg.Locale)
	if err != nil {
		return Contexts{}, fmt.Errorf("build rate source: %w", err)
	}

	localization := service.NewLocalizationService(service.LocalizationServiceOptions{
		Translations: i18nfs.NewSource(dashboard.LocalizationFS, "localization"),
		Rates:        rates,
		Preferences:  buildPreferenceStore(deps),
		Logger:       deps.Logger,
	})

	session := service.NewSessionService(service.SessionServiceOptions{
		Users:    postgres.NewUserStore(deps.DB),
		Verifier: auth.Verifier,
		Provider: auth.Provider,
		Roles: authroles.StaticRoleMapper{
			AdminGroup:   cfg.Auth.AdminGroup,
			ManagerGroup: cfg.Auth.ManagerGroup,
		},
		Tokens:   redisadapter.NewTokenStore(deps.RedisClient),
		Pictures: redisadapter.NewPictureCache(deps.RedisClient),
		Logger:   deps.Logger,
		// After login the localization context keys preferences by user
		// and adopts the provider-issued company defaults.
		OnAuthenticated: func(ctx context.Context, identity domainsession.Identity) {
			localization.AttachUser(ctx, identity.UserID, identity.DefaultLanguage, identity.DefaultCurrency)
		},
		TokenTTL:   cfg.Session.TokenTTL,
		PictureTTL: cfg.Session.PictureTTL,
	})

	return Contexts{Session: session, Localization: localization}, nil
}

//nolint:ireturn // the rate source is nil when no endpoint is configured.
func buildRateSource(cfg config.LocaleConfig) (ports.RateSource, error) {
	if cfg.RateURL == "" {
		return nil, nil
	}

	src, err := httprate.NewSource(httprate.Config{
		URL:       cfg.RateURL,
		RatesExpr: cfg.RatesExpr,
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}

//nolint:ireturn // backend selection happens at runtime.
func buildPreferenceStore(deps *ContextDeps) ports.PreferenceStore {
	if deps.Config.Locale.PreferenceBackend == config.PreferenceBackendPostgres {
		return postgres.NewPreferenceStore(deps.DB)
	}
	return redisadapter.NewPreferenceStore(deps.RedisClient)
}

// Warmup primes the contexts concurrently: the localization context restores
// the stored locale preference and loads its translation table, and the rate
// snapshot is fetched when a rate source is configured. Rate failures are
// logged rather than fatal so startup does not depend on the rate endpoint.
func Warmup(ctx context.Context, contexts Contexts, cfg *config.AppConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return contexts.Localization.Initialize(gctx, nil)
	})

	if cfg != nil && cfg.Locale.RateURL != "" {
		g.Go(func() error {
			if err := contexts.Localization.RefreshRates(gctx); err != nil {
				logger.WarnContext(gctx, "initial rate refresh failed", "error", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// StartRateRefresher re-fetches exchange rates on the configured interval
// until the context is cancelled. The returned function stops the refresher.
func StartRateRefresher(
	ctx context.Context,
	localization *service.LocalizationService,
	interval time.Duration,
	logger *slog.Logger,
) func() {
	if logger == nil {
		logger = slog.Default()
	}

	refreshCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-ticker.C:
				if err := localization.RefreshRates(refreshCtx); err != nil {
					logger.WarnContext(refreshCtx, "rate refresh failed", "error", err)
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
