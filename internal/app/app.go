package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/atshaw/quill/internal/auth"
	"github.com/atshaw/quill/internal/blog"
	"github.com/atshaw/quill/internal/config"
	"github.com/atshaw/quill/internal/httpserver"
	"github.com/atshaw/quill/internal/httpserver/deps"
	"github.com/atshaw/quill/internal/logger"
	"github.com/atshaw/quill/internal/markdown"
	"github.com/atshaw/quill/internal/redis"
	"github.com/atshaw/quill/internal/sources/seedfile"
	redisstore "github.com/atshaw/quill/internal/store/redis"
	"github.com/atshaw/quill/internal/version"
	"github.com/atshaw/quill/internal/web"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	blog        *blog.Service
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDialTimeout,
		ReadTimeout:    cfg.RedisReadTimeout,
		WriteTimeout:   cfg.RedisWriteTimeout,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	store := redisstore.NewStore(redisClient, loggerClient)
	blogService := blog.NewService(store, markdown.NewRenderer(), loggerClient)

	gate := auth.NewGate(auth.GateConfig{
		ClientID:        cfg.OAuthClientID,
		ClientSecret:    cfg.OAuthClientSecret,
		RedirectURL:     cfg.OAuthRedirectURL,
		AuthorizedEmail: cfg.AuthorEmail,
	}, loggerClient)
	sessions := auth.NewSessionCodec([]byte(cfg.SessionSecret), cfg.SessionTTL)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		Blog:           blogService,
		Gate:           gate,
		Sessions:       sessions,
		Web:            web.NewRenderer(loggerClient),
		RedisClient:    redisClient,
		PageSize:       cfg.PageSize,
		AllowedHosts:   cfg.AllowedHosts,
		TrustProxy:     cfg.TrustProxy,
		LoginBurst:     cfg.LoginBurst,
		LoginPerMinute: cfg.LoginPerMinute,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		blog:        blogService,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting quill v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("quill %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.BookmarkSeedFile != "" {
		if err := a.seedBookmarks(ctx); err != nil {
			// A broken seed file should not keep the blog down.
			a.logger.Warn("bookmark seeding failed", logger.Error(err))
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("Redis closed cleanly")
		}
	}

	a.logger.Info("quill stopped cleanly")
	return nil
}

// seedBookmarks upserts the configured YAML seed file into the sidebar.
// Seed ids are derived from the URL, so repeated startups converge instead
// of piling up duplicates.
func (a *App) seedBookmarks(ctx context.Context) error {
	f, err := seedfile.NewLoader(a.cfg.BookmarkSeedFile).Load()
	if err != nil {
		return err
	}
	bookmarks, err := seedfile.MapBookmarks(f)
	if err != nil {
		return err
	}
	for _, b := range bookmarks {
		if _, err := a.blog.UpsertBookmark(ctx, b); err != nil {
			return fmt.Errorf("failed to seed bookmark %q: %w", b.ID(), err)
		}
	}
	a.logger.Info("bookmark sidebar seeded",
		logger.String("file", a.cfg.BookmarkSeedFile),
		logger.Int("count", len(bookmarks)))
	return nil
}
