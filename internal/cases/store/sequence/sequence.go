// Package sequence allocates per-year case number sequences. Values start
// at 1 each year and are never handed out twice by the same backend.
package sequence

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	"medhope/internal/platform/redis"
	txcontext "medhope/pkg/platform/tx"
)

// InMemory is a process-local allocator.
type InMemory struct {
	mu   sync.Mutex
	last map[int]int64
}

func NewInMemory() *InMemory {
	return &InMemory{last: make(map[int]int64)}
}

func (s *InMemory) Next(_ context.Context, year int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[year]++
	return s.last[year], nil
}

// Postgres allocates from the case_sequences table with an upsert, so the
// value is consistent with the transaction that inserts the case.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Next(ctx context.Context, year int) (int64, error) {
	var next int64
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO case_sequences (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = case_sequences.last_value + 1
		RETURNING last_value
	`, year).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("allocate case sequence: %w", err)
	}
	return next, nil
}

// Redis allocates with INCR on a per-year key. Numbers burned by a failed
// insert are not reused.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Next(ctx context.Context, year int) (int64, error) {
	next, err := s.client.Incr(ctx, s.client.Key("case_seq", strconv.Itoa(year))).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate case sequence: %w", err)
	}
	return next, nil
}
