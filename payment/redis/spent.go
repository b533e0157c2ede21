// Package redis provides a Redis-backed spent-reference registry so
// multiple gateway replicas share one view of consumed payment proofs.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	defaultTTL    = 72 * time.Hour
	defaultPrefix = "agentpay"
)

type Registry struct {
	client   *goredis.Client
	ttl      time.Duration
	prefix   string
	addr     string
	db       int
	password string
}

type Option func(*Registry)

func WithPassword(password string) Option {
	return func(r *Registry) {
		r.password = password
	}
}

func WithDB(db int) Option {
	return func(r *Registry) {
		r.db = db
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithPrefix(prefix string) Option {
	return func(r *Registry) {
		if strings.TrimSpace(prefix) != "" {
			r.prefix = strings.TrimSpace(prefix)
		}
	}
}

func WithClient(client *goredis.Client) Option {
	return func(r *Registry) {
		if client != nil {
			r.client = client
		}
	}
}

func New(addr string, opts ...Option) (*Registry, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	r := &Registry{
		ttl:    defaultTTL,
		prefix: defaultPrefix,
		addr:   addr,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = goredis.NewClient(&goredis.Options{
			Addr:     r.addr,
			Password: r.password,
			DB:       r.db,
		})
	}

	if err := r.client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return r, nil
}

func (r *Registry) MarkSpent(ctx context.Context, ref string) (bool, error) {
	if strings.TrimSpace(ref) == "" {
		return false, fmt.Errorf("transaction reference is required")
	}
	fresh, err := r.client.SetNX(ctx, r.key(ref), "1", r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark spent: %w", err)
	}
	return fresh, nil
}

func (r *Registry) Release(ctx context.Context, ref string) error {
	if strings.TrimSpace(ref) == "" {
		return fmt.Errorf("transaction reference is required")
	}
	if err := r.client.Del(ctx, r.key(ref)).Err(); err != nil {
		return fmt.Errorf("release spent claim: %w", err)
	}
	return nil
}

func (r *Registry) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *Registry) key(ref string) string {
	return r.prefix + ":spent:" + ref
}
