package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"ecofinds/internal/auth"
	"ecofinds/internal/config"
	apphttp "ecofinds/internal/http"
	"ecofinds/internal/metrics"
	"ecofinds/internal/repository"
	"ecofinds/internal/repository/memory"
	"ecofinds/internal/repository/sqlite"
	"ecofinds/internal/service"
	"ecofinds/internal/storage"
)

const staticURLPrefix = "/static"

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warnf("close store: %v", err)
		}
	}()

	passwords := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.SecretKey, cfg.TokenTTL())

	userService, err := service.NewUserService(store.Users(), passwords, tokens)
	if err != nil {
		logger.Fatalf("init user service: %v", err)
	}

	storageSvc, staticDir, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Services{
		Users:     userService,
		Identity:  service.NewIdentityResolver(tokens, store.Users()),
		Products:  service.NewProductService(store.Products(), cfg.Catalog.PlaceholderImage),
		Cart:      service.NewCartService(store.Cart(), store.Products()),
		Checkout:  service.NewCheckoutService(store.Purchases()),
		Purchases: service.NewPurchaseService(store.Purchases()),
	}, apphttp.Options{
		Storage:        storageSvc,
		ImageKeyPrefix: cfg.Storage.KeyPrefix,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		StaticDir:      staticDir,
		RequestTimeout: cfg.RequestTimeout(),
		Metrics:        metrics.NewCollector(reg),
		MetricsHandler: metrics.Handler(reg),
		Logger:         logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("http server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

func openStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (repository.Store, error) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	}
	store, err := sqlite.NewStore(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	logger.Infof("using sqlite database %s", cfg.Database.Path)
	return store, nil
}

// buildStorage selects S3 when a bucket is configured and the local upload
// directory otherwise. The returned directory is non-empty only for local
// storage and must be served under /static.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, string, error) {
	if cfg.Storage.Bucket == "" {
		baseURL := staticURLPrefix
		if cfg.Storage.PublicBaseURL != "" {
			baseURL = cfg.Storage.PublicBaseURL
		}
		local, err := storage.NewLocalService(cfg.Storage.LocalDir, baseURL)
		if err != nil {
			return nil, "", err
		}
		logger.Infof("storing uploads in %s", local.Root())
		return local, local.Root(), nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, "", fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client, storage.S3Options{
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		Endpoint:      cfg.Storage.Endpoint,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	}), "", nil
}
