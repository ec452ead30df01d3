package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8081), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 0, cfg.HTTP.HSTSMaxAge)
	assert.Equal(t, DatabaseDriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, TokenStoreMemory, cfg.TokenStore.Kind)
	assert.Equal(t, PasswordModePlaintext, cfg.Auth.PasswordMode)
	assert.True(t, cfg.Auth.LoginByName)
	assert.Equal(t, DefaultCommentMaxDepth, cfg.Comments.MaxDepth)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=localhost dbname=libris")
	t.Setenv("TOKEN_STORE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("AUTH_PASSWORD_MODE", "bcrypt")
	t.Setenv("AUTH_LOGIN_BY_NAME", "false")
	t.Setenv("COMMENT_MAX_DEPTH", "4")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, DatabaseDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=localhost dbname=libris", cfg.Database.DSN)
	assert.Equal(t, TokenStoreRedis, cfg.TokenStore.Kind)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, PasswordModeBcrypt, cfg.Auth.PasswordMode)
	assert.False(t, cfg.Auth.LoginByName)
	assert.Equal(t, 4, cfg.Comments.MaxDepth)
}
