package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/libris/internal/config"
)

// TokenStore maps issued bearer tokens to usernames.
// Implementations must be safe for concurrent use.
type TokenStore interface {
	Put(ctx context.Context, token, username string) error
	// Get returns found=false for tokens that were never issued.
	Get(ctx context.Context, token string) (username string, found bool, err error)
}

// tokenLifetime keeps tokens valid for the life of the store.
// It must stay below the UnixNano range memstore relies on.
const tokenLifetime = 100 * 365 * 24 * time.Hour

// ScsTokenStore keeps tokens in any scs session store.
type ScsTokenStore struct {
	store scs.Store
}

// NewScsTokenStore wraps an scs store.
func NewScsTokenStore(store scs.Store) *ScsTokenStore {
	return &ScsTokenStore{store: store}
}

// NewMemoryTokenStore returns a process-local token store.
func NewMemoryTokenStore() *ScsTokenStore {
	// Tokens never expire, so the cleanup goroutine has nothing to do.
	return NewScsTokenStore(memstore.NewWithCleanupInterval(0))
}

// NewSQLiteTokenStore stores tokens in the sessions table of the given database.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSQLiteTokenStore(sqlDB *sql.DB) (*ScsTokenStore, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	return NewScsTokenStore(sqlite3store.NewWithCleanupInterval(sqlDB, 0)), nil
}

func (s *ScsTokenStore) Put(_ context.Context, token, username string) error {
	return s.store.Commit(token, []byte(username), time.Now().Add(tokenLifetime))
}

func (s *ScsTokenStore) Get(_ context.Context, token string) (string, bool, error) {
	data, found, err := s.store.Find(token)
	if err != nil || !found {
		return "", false, err
	}
	return string(data), true, nil
}

const redisKeyPrefix = "token:"

// RedisTokenStore keeps tokens in Redis so several API processes can share them.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore connects to Redis and verifies the connection.
func NewRedisTokenStore(ctx context.Context, cfg config.Redis) (*RedisTokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return &RedisTokenStore{client: client}, nil
}

func (s *RedisTokenStore) Put(ctx context.Context, token, username string) error {
	return s.client.Set(ctx, redisKeyPrefix+token, username, 0).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, token string) (string, bool, error) {
	username, err := s.client.Get(ctx, redisKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return username, true, nil
}

// Ping checks that Redis is reachable.
func (s *RedisTokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}

// NewTokenStore builds the store selected by TOKEN_STORE.
// sqlDB is only used by the sqlite store.
func NewTokenStore(ctx context.Context, cfg *config.Config, sqlDB *sql.DB) (TokenStore, error) {
	switch cfg.TokenStore.Kind {
	case config.TokenStoreMemory, "":
		return NewMemoryTokenStore(), nil
	case config.TokenStoreSQLite:
		if cfg.Database.Driver != config.DatabaseDriverSQLite && cfg.Database.Driver != "" {
			return nil, fmt.Errorf("TOKEN_STORE=sqlite requires DATABASE_DRIVER=sqlite")
		}
		return NewSQLiteTokenStore(sqlDB)
	case config.TokenStoreRedis:
		return NewRedisTokenStore(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported token store %q", cfg.TokenStore.Kind)
	}
}
