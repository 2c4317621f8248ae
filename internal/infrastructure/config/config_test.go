package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.StoreDriver != "mongo" {
		t.Fatalf("unexpected store driver %q", cfg.StoreDriver)
	}
	if cfg.Auth.JWTSecret != "" {
		t.Fatalf("JWT secret must not have a default")
	}
	if cfg.Auth.JWTExpiresIn != 24*time.Hour {
		t.Fatalf("unexpected token ttl %v", cfg.Auth.JWTExpiresIn)
	}
	if cfg.Auth.BcryptCost != 12 || cfg.Auth.PasswordHasher != "bcrypt" {
		t.Fatalf("unexpected hashing defaults: %+v", cfg.Auth)
	}
	if cfg.Auth.GeneratedPasswordLength != 12 || cfg.Auth.RegisterAllowRole {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Mongo.Database != "user_management" {
		t.Fatalf("unexpected mongo db %q", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.IsProduction() {
		t.Fatalf("default env must not be production")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                  "9090",
		"ENV":                   "Production",
		"JWT_SECRET":            "s3cret",
		"JWT_EXPIRES_IN":        "90m",
		"BCRYPT_COST":           "10",
		"PASSWORD_HASHER":       "argon2id",
		"STORE_DRIVER":          "memory",
		"REGISTER_ALLOW_ROLE":   "true",
		"BOOTSTRAP_ADMIN_EMAIL": "root@example.com",
		"REDIS_ADDR":            "localhost:6379",
		"USER_CACHE_TTL":        "30s",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" || !cfg.IsProduction() {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
	if cfg.Auth.JWTSecret != "s3cret" || cfg.Auth.JWTExpiresIn != 90*time.Minute || cfg.Auth.BcryptCost != 10 {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Auth.PasswordHasher != "argon2id" || !cfg.Auth.RegisterAllowRole || cfg.Auth.BootstrapAdminEmail != "root@example.com" {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.StoreDriver != "memory" || cfg.Redis.Addr != "localhost:6379" || cfg.Redis.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected storage config: %+v", cfg)
	}
}

func TestLoadWith_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"store":    {"STORE_DRIVER": "postgres"},
		"hasher":   {"PASSWORD_HASHER": "md5"},
		"duration": {"JWT_EXPIRES_IN": "forever"},
		"cost":     {"BCRYPT_COST": "high"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			if err == nil || !strings.HasPrefix(err.Error(), "config:") {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}
}
