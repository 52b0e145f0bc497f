package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/config"
	"github.com/carebridge/billing-service/internal/domain/catalog"
	"github.com/carebridge/billing-service/internal/infrastructure/database"
	stripegw "github.com/carebridge/billing-service/internal/infrastructure/gateway/stripe"
	httpServer "github.com/carebridge/billing-service/internal/infrastructure/http"
	"github.com/carebridge/billing-service/internal/infrastructure/secrets"
	"github.com/carebridge/billing-service/pkg/logger"
)

func main() {
	// Load .env if present; real deployments inject environment directly.
	_ = godotenv.Load()

	// Bootstrap logger for failures before the configured logger exists.
	bootLogger := logger.DefaultZapLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger.Fatal("Failed to load config", zap.Error(err))
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		FilePath:    cfg.Log.FilePath,
		Development: cfg.Log.Development,
	})
	if err != nil {
		bootLogger.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resolver := newSecretResolver(ctx, cfg, zapLogger)

	stripeKey, err := resolver.ResolveRequired(ctx, cfg.Service.StripeSecretName)
	if err != nil {
		zapLogger.Fatal("Failed to resolve payment gateway secret", zap.Error(err))
	}
	webhookSecret, err := resolver.ResolveRequired(ctx, cfg.Service.StripeWebhookSecretName)
	if err != nil {
		zapLogger.Fatal("Failed to resolve webhook secret", zap.Error(err))
	}
	jwtSecret, err := resolver.ResolveRequired(ctx, cfg.JWT.SecretName)
	if err != nil {
		zapLogger.Fatal("Failed to resolve JWT secret", zap.Error(err))
	}

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)

	paymentGateway := stripegw.New(stripeKey, zapLogger)

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	if err := paymentGateway.Ping(pingCtx); err != nil {
		zapLogger.Warn("Payment gateway connectivity check failed at startup", zap.Error(err))
	}
	pingCancel()

	httpSrv := httpServer.NewServer(cfg, zapLogger, paymentGateway, catalog.New(), repos, httpServer.Secrets{
		WebhookSecret: webhookSecret,
		JWTSecret:     jwtSecret,
	})

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}

// newSecretResolver wires the SSM-backed resolver. When no region is
// configured the resolver runs with environment fallback only.
func newSecretResolver(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) *secrets.Resolver {
	if cfg.Service.AWS.Region == "" {
		zapLogger.Info("No AWS region configured, secrets resolve from environment only")
		return secrets.NewResolver(nil, cfg.Service.Environment, zapLogger)
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Service.AWS.Region),
	}
	if cfg.Service.AWS.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.Service.AWS.AccessKeyID,
				cfg.Service.AWS.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		zapLogger.Warn("Failed to load AWS configuration, secrets resolve from environment only",
			zap.Error(err))
		return secrets.NewResolver(nil, cfg.Service.Environment, zapLogger)
	}

	return secrets.NewResolver(ssm.NewFromConfig(awsCfg), cfg.Service.Environment, zapLogger)
}
