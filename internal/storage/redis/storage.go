package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/storage"
)

// Storage is a Redis-backed credential store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultConfig().Namespace
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.CredentialStore = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) (model.Credentials, error) {
	values, err := s.client.MGet(ctx, tokenKey(s.cfg.Namespace), displayNameKey(s.cfg.Namespace)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Credentials{}, nil
		}
		return model.Credentials{}, err
	}

	// MGET yields nil for missing keys
	token, _ := values[0].(string)
	name, _ := values[1].(string)
	creds := model.Credentials{Token: token, DisplayName: name}
	if !creds.Complete() {
		return model.Credentials{}, nil
	}
	return creds, nil
}

func (s *Storage) Save(ctx context.Context, creds model.Credentials) error {
	// MULTI/EXEC so the pair is never half-written
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tokenKey(s.cfg.Namespace), creds.Token, s.cfg.CredentialTTL)
		pipe.Set(ctx, displayNameKey(s.cfg.Namespace), creds.DisplayName, s.cfg.CredentialTTL)
		return nil
	})
	return err
}

func (s *Storage) Clear(ctx context.Context) error {
	return s.client.Del(ctx, tokenKey(s.cfg.Namespace), displayNameKey(s.cfg.Namespace)).Err()
}
