package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/99minutos/user-management/docs" // Swagger docs
	"github.com/99minutos/user-management/internal/api"
	"github.com/99minutos/user-management/internal/core/ports"
	"github.com/99minutos/user-management/internal/core/service"
	"github.com/99minutos/user-management/internal/infrastructure/config"
	"github.com/99minutos/user-management/internal/infrastructure/db/memory"
	"github.com/99minutos/user-management/internal/infrastructure/db/mongo"
	"github.com/99minutos/user-management/internal/infrastructure/db/redis"
	"github.com/99minutos/user-management/internal/infrastructure/http/handlers"
	"github.com/99minutos/user-management/internal/infrastructure/security"
	"github.com/99minutos/user-management/pkg/logger"
)

// @title           User Management API
// @version         1.0
// @description     User accounts, JWT authentication and role-based access control.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "user-management",
		Env:     cfg.Env,
	})
	log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("starting application")

	tokens, err := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	hasher := newHasher(cfg.Auth)

	var readiness []handlers.Pinger

	repo, mongoClient, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if mongoClient != nil {
		readiness = append(readiness, mongo.NewPinger(mongoClient.Database(cfg.Mongo.Database)))
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		}()
	}

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()

		repo = redis.NewUserCache(repo, redisClient, cfg.Redis.CacheTTL, log)
		readiness = append(readiness, redis.NewPinger(redisClient))
		log.Info().Dur("ttl", cfg.Redis.CacheTTL).Msg("user cache enabled")
	}

	var authOpts []service.AuthOption
	if cfg.Auth.RegisterAllowRole {
		authOpts = append(authOpts, service.WithSelfAssignedRoles())
	}
	authService := service.NewAuthService(repo, hasher, tokens, log, authOpts...)
	userService := service.NewUserService(repo, hasher, service.NewPasswordGenerator(cfg.Auth.GeneratedPasswordLength), log)

	if err := service.BootstrapAdmin(ctx, userService, repo, cfg.Auth.BootstrapAdminEmail, log); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	e, err := api.NewRouter(api.Dependencies{
		Logger:      log,
		Tokens:      tokens,
		AuthService: authService,
		UserService: userService,
		Readiness:   readiness,
		EnableDocs:  !cfg.IsProduction(),
	})
	if err != nil {
		return err
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func newHasher(cfg config.AuthConfig) ports.PasswordHasher {
	if cfg.PasswordHasher == "argon2id" {
		return security.NewArgon2Hasher(security.DefaultArgon2Params)
	}
	return security.NewBcryptHasher(cfg.BcryptCost)
}

// newStore returns the configured user store. The mongo client is nil for
// the in-memory driver.
func newStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.UserRepository, *mongodriver.Client, error) {
	if cfg.StoreDriver == "memory" {
		log.Warn().Msg("using in-memory user store; data is lost on restart")
		return memory.NewUserRepository(), nil, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "user-management",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
	}

	repo := mongo.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return repo, client, nil
}
