package postgres

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LockManager provides distributed locks using PostgreSQL advisory
// locks. The plan service uses it to serialize version transitions
// within a plan group across replicas.
type LockManager struct {
	pool *pgxpool.Pool
}

func NewLockManager(pool *pgxpool.Pool) *LockManager { return &LockManager{pool: pool} }

// hashKey converts a string key to a uint32 for advisory locks
func hashKey(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32()
}

// Acquire obtains an exclusive advisory lock. Blocks until acquired.
func (l *LockManager) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	k := hashKey(key)
	if _, err := l.pool.Exec(ctx, "SELECT pg_advisory_lock($1)", int64(k)); err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	return func(c context.Context) error {
		if _, err := l.pool.Exec(c, "SELECT pg_advisory_unlock($1)", int64(k)); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}, nil
}
