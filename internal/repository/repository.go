// Package repository opens the question store selected by configuration
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/repository/memory"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
)

// Store bundles the repositories of one backing store
type Store struct {
	Categories domain.CategoryRepository
	Questions  domain.QuestionRepository

	// Pool is nil for the memory driver
	Pool *pgxpool.Pool
}

// Open connects to the configured store, creating the schema when the
// driver is postgres.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		store := memory.NewStore()
		return &Store{
			Categories: store.Categories(),
			Questions:  store.Questions(),
		}, nil

	case config.DriverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.PostgresURL())
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Categories: postgres.NewCategoryRepository(pool),
			Questions:  postgres.NewQuestionRepository(pool),
			Pool:       pool,
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// Close releases the store's connections
func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
