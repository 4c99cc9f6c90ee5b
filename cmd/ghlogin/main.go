package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/ptcdevs/ghlogin/internal"
	"github.com/ptcdevs/ghlogin/internal/auth"
	"github.com/ptcdevs/ghlogin/internal/config"
	"github.com/ptcdevs/ghlogin/middlewares"
	"github.com/ptcdevs/ghlogin/pkg/cookie"
	"github.com/ptcdevs/ghlogin/pkg/logger"
	"github.com/ptcdevs/ghlogin/pkg/oauth"
	"github.com/ptcdevs/ghlogin/pkg/redis"
	"github.com/ptcdevs/ghlogin/pkg/session"
)

const sentryFlushTimeout = 2 * time.Second

type args struct {
	Config string `arg:"--config,env:GHLOGIN_CONFIG" help:"path to the YAML configuration file"`
}

func (args) Description() string {
	return "ghlogin serves a GitHub OAuth login flow backed by server-side sessions."
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := config.Load(a.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.NewWithSentry(cfg.Sentry, middlewares.RequestIDExtractor())

	if err := run(cfg, log); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		_ = logger.FlushSentry(sentryFlushTimeout)(context.Background())
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	client, err := oauth.NewGitHubClient(cfg.GitHub.OAuth(), oauth.WithTimeout(cfg.GitHub.Timeout))
	if err != nil {
		return fmt.Errorf("oauth client: %w", err)
	}

	var (
		store    session.Store
		health   []internal.HealthOption
		shutdown []internal.RunOption
	)

	switch cfg.Session.Store {
	case config.StoreRedis:
		rdb, err := redis.Open(ctx, cfg.Redis.URL, append(cfg.Redis.Options(), redis.WithLogger(log))...)
		if err != nil {
			return err
		}
		store = session.NewRedisStore(rdb)
		health = append(health, internal.WithReadinessCheck("redis", redis.Healthcheck(rdb)))
		shutdown = append(shutdown, internal.ShutdownHook(redis.Shutdown(rdb)))
	default:
		mem := session.NewMemoryStore()
		store = mem
		shutdown = append(shutdown, internal.ShutdownHook(func(context.Context) error {
			return mem.Close()
		}))
	}

	cookies := cookie.New(
		cookie.WithSecret(cfg.Session.Secret.Reveal()),
		cookie.WithSecure(cfg.Session.SecureCookie),
	)

	app := internal.New(
		internal.WithCustomLogger(log.With("component", "ghlogin")),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.Server.RequestTimeout),
		),
		internal.WithErrorHandler(middlewares.ErrorHandler()),
		internal.WithSession(store, cookies,
			internal.WithSessionCookieName(cfg.Session.CookieName),
			internal.WithSessionTTL(cfg.Session.TTL),
		),
		internal.WithHealthChecks(health...),
		internal.WithHandlers(auth.NewHandler(client)),
	)

	log.Info("configuration loaded",
		slog.String("addr", cfg.Server.Addr),
		slog.String("session_store", cfg.Session.Store),
		slog.Any("scopes", client.Scopes()),
	)

	runOpts := append([]internal.RunOption{
		internal.Logger(log),
		internal.ShutdownTimeout(cfg.Server.ShutdownTimeout),
	}, shutdown...)
	runOpts = append(runOpts, internal.ShutdownHook(logger.FlushSentry(sentryFlushTimeout)))

	return app.Run(cfg.Server.Addr, runOpts...)
}
