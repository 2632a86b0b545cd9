// Package redis provides Redis-backed session storage and distributed
// locking for multi-instance deployments.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/palisade/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// defaultPrefix namespaces palisade keys in a shared Redis.
const defaultPrefix = "palisade:session:"

// Store implements ports.SessionStore on Redis. Sessions are stored as JSON
// under <prefix><subject>; an index ZSET scored by expiry supports List with
// lazy pruning of expired entries.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration applied to saved sessions. Zero means no
// expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store over an existing client. The caller
// keeps ownership of the client unless it calls Close.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(subject string) string {
	return s.prefix + subject
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the session as JSON and registers the subject in the index.
func (s *Store) Save(ctx context.Context, subject string, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Index score is the expiry instant; sessions without TTL get a score
	// far in the future so pruning never touches them.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(subject), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: subject})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

// Load retrieves the session for a subject.
func (s *Store) Load(ctx context.Context, subject string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(subject)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes the session and its index entry.
func (s *Store) Delete(ctx context.Context, subject string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(subject))
	pipe.ZRem(ctx, s.indexKey(), subject)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns subjects with an active session, pruning expired index
// entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
	}

	subjects, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return subjects, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
