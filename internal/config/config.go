package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
	DatabaseDriverPostgres DatabaseDriver = "postgres"
)

type TokenStoreKind string

const (
	TokenStoreMemory TokenStoreKind = "memory" // Process memory, lost on restart (default)
	TokenStoreSQLite TokenStoreKind = "sqlite" // sessions table in the application database
	TokenStoreRedis  TokenStoreKind = "redis"  // Shared across processes
)

type PasswordMode string

const (
	PasswordModePlaintext PasswordMode = "plaintext" // Exact string comparison (default)
	PasswordModeBcrypt    PasswordMode = "bcrypt"
)

type (
	Config struct {
		HTTP
		Global
		Database
		TokenStore
		Redis
		Auth
		Comments
	}

	HTTP struct {
		Port int32
		Host string
		// HSTSMaxAge enables Strict-Transport-Security when positive.
		HSTSMaxAge int
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // sqlite file path
		DSN      string // postgres connection string
		LogLevel string // silent, error, warn, info
	}
	TokenStore struct {
		Kind TokenStoreKind
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Auth struct {
		PasswordMode PasswordMode
		BcryptCost   int
		// LoginByName lets persisted users log in with their display name
		// as well as their handle.
		LoginByName bool
	}
	Comments struct {
		MaxDepth int // Replies nested deeper than this are not rendered
	}
)

// loadDotEnv reads a .env file from the working directory if one exists.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("WARNING: failed to load .env file: %v", err)
	}
}

func NewConfig() *Config {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8081)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("hsts_max_age", 0)

	// Database defaults
	v.SetDefault("database_driver", string(DatabaseDriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	// Token registry defaults
	v.SetDefault("token_store", string(TokenStoreMemory))
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Auth defaults
	v.SetDefault("auth_password_mode", string(PasswordModePlaintext))
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_login_by_name", true)

	v.SetDefault("comment_max_depth", DefaultCommentMaxDepth)

	return &Config{
		HTTP: HTTP{
			Port:       v.GetInt32("PORT"),
			Host:       v.GetString("HOST"),
			HSTSMaxAge: v.GetInt("HSTS_MAX_AGE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		TokenStore: TokenStore{
			Kind: TokenStoreKind(v.GetString("TOKEN_STORE")),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Auth: Auth{
			PasswordMode: PasswordMode(v.GetString("AUTH_PASSWORD_MODE")),
			BcryptCost:   v.GetInt("AUTH_BCRYPT_COST"),
			LoginByName:  v.GetBool("AUTH_LOGIN_BY_NAME"),
		},
		Comments: Comments{
			MaxDepth: v.GetInt("COMMENT_MAX_DEPTH"),
		},
	}
}
