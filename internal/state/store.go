// Package state holds the per-session key-value state that the demo keeps
// between requests: the authentication flag, the signed-in email, the last
// computed score and the in-progress assessment draft.
//
// Nothing reads ambient globals. Handlers build an AppState for the request's
// session from an injected Store.
package state

import (
	"context"
	"fmt"
)

// Well-known keys. The first three are the persisted layout the dashboard
// and navigation read; no schema versioning is applied.
const (
	KeyIsAuthenticated = "isAuthenticated"
	KeyUserEmail       = "userEmail"
	KeyCreditScore     = "creditScore"
	KeyAssessmentDraft = "assessmentDraft"
)

// Store is a namespaced string key-value store. Writes are last-write-wins.
// Delete removes every listed key in one operation: either all are gone
// afterwards or the call returns an error and none were removed.
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace string, keys ...string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options configures Open.
type Options struct {
	Backend     string
	Redis       RedisOptions
	DatabaseURL string
	AutoMigrate bool
}

// Open builds the Store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, opts.Redis)
	case BackendPostgres:
		pg, err := ConnectPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if opts.AutoMigrate {
			if err := pg.Migrate(ctx); err != nil {
				pg.Close() //nolint:errcheck
				return nil, err
			}
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", opts.Backend)
	}
}
