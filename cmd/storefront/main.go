package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/api"
	"github.com/Cheertaboi/storefront-service/internal/auth"
	"github.com/Cheertaboi/storefront-service/internal/cache"
	"github.com/Cheertaboi/storefront-service/internal/repository"
	"github.com/Cheertaboi/storefront-service/internal/service"
	"github.com/Cheertaboi/storefront-service/internal/storage"
	"github.com/Cheertaboi/storefront-service/pkg/config"
	"github.com/Cheertaboi/storefront-service/pkg/db"
)

func main() {
	cfg, envFile, err := config.Load()
	if err != nil {
		// logger isn't built yet
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !envFile {
		log.Info("no .env file found, using process environment")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("storefront stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "parse log level %q", level)
	}
	return zcfg.Build()
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.NewPostgresConnection(cfg.PostgresConfig)
	if err != nil {
		return errors.Wrap(err, "db connect")
	}
	defer conn.Close()

	if cfg.Migrate {
		if err := db.Migrate(ctx, conn); err != nil {
			return errors.Wrap(err, "migrate")
		}
		log.Info("schema applied")
	}

	campaignCache, err := newCampaignCache(ctx, cfg, log)
	if err != nil {
		return err
	}

	var images service.ImageUploader
	if cfg.MinioEndpoint != "" {
		store, err := storage.NewImageStore(ctx, storage.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
		if err != nil {
			return errors.Wrap(err, "image store")
		}
		images = store
	} else {
		log.Warn("MINIO_ENDPOINT not set, image uploads disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(buildDeps(conn, cfg, campaignCache, images, log)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting storefront", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	log.Info("server stopped")
	return nil
}

// newCampaignCache prefers Redis so replicas share the live campaign list.
func newCampaignCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (service.CampaignCache, error) {
	if cfg.RedisAddr == "" {
		return cache.NewCampaignCache(cfg.CampaignCacheTTL), nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping")
	}
	return cache.NewRedisCampaignCache(client, cfg.CampaignCacheTTL, log), nil
}

func buildDeps(conn *sql.DB, cfg *config.Config, campaignCache service.CampaignCache, images service.ImageUploader, log *zap.Logger) api.Deps {
	campaignRepo := repository.NewCampaignRepo(conn)
	productRepo := repository.NewProductRepo(conn)
	categoryRepo := repository.NewCategoryRepo(conn)
	cartRepo := repository.NewCartRepo(conn)
	orderRepo := repository.NewOrderRepo(conn)
	userRepo := repository.NewUserRepo(conn)
	reportRepo := repository.NewReportRepo(conn)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authz := service.NewAuthorizer(userRepo)

	campaigns := service.NewCampaignService(conn, campaignRepo, campaignCache, authz, log)

	return api.Deps{
		Tokens:    issuer,
		Auth:      service.NewAuthService(userRepo, issuer, log),
		Catalog:   service.NewCatalogService(productRepo, categoryRepo, campaigns, authz, images, log),
		Campaigns: campaigns,
		Cart:      service.NewCartService(cartRepo, productRepo, campaigns, log),
		Orders:    service.NewOrderService(conn, cartRepo, orderRepo, campaignRepo, campaigns, authz, log),
		Users:     service.NewUserService(userRepo, orderRepo, authz, log),
		Reports:   service.NewReportService(reportRepo, authz),
		Log:       log,
	}
}
