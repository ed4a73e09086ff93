package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"recipebox/internal/config"
	"recipebox/internal/database"
	apphttp "recipebox/internal/http"
	"recipebox/internal/service"
	"recipebox/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, keeping %s", cfg.Log.Level, logger.GetLevel())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancelOpen := context.WithTimeout(ctx, cfg.Database.Timeout)
	store, err := database.Open(openCtx, cfg.Database.URI, cfg.Database.Name, logger)
	cancelOpen()
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}

	userService, err := service.NewUserService(store.Users(), service.WithValidators(validators(cfg)...))
	if err != nil {
		logger.Fatalf("build user service: %v", err)
	}
	favoriteService := service.NewFavoriteService(store.Favorites())

	assets, err := buildAssetSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup assets: %v", err)
	}
	site := apphttp.NewSite(assets, apphttp.DefaultRules(), apphttp.DefaultDocument)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, favoriteService, store, site, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Warnf("close database: %v", err)
	}

	logger.Info("bye")
}

func validators(cfg config.Config) []service.CredentialValidator {
	var checks []service.CredentialValidator
	if cfg.Validation.EmailFormat {
		checks = append(checks, service.EmailFormat())
	}
	if cfg.Validation.MinPasswordLength > 0 {
		checks = append(checks, service.MinPasswordLength(cfg.Validation.MinPasswordLength))
	}
	return checks
}

func buildAssetSource(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Source, error) {
	if cfg.Assets.Bucket == "" {
		logger.Infof("serving static assets from %s", cfg.Assets.Root)
		return storage.NewLocalSource(cfg.Assets.Root), nil
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Assets.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Assets.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Assets.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("serving static assets from s3 bucket %s (region %s)", cfg.Assets.Bucket, cfg.Assets.Region)
	return storage.NewS3Source(client, cfg.Assets.Bucket, cfg.Assets.Prefix), nil
}
