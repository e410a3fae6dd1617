package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/logger"
	"github.com/zizouhuweidi/trivia/internal/repository"
	"github.com/zizouhuweidi/trivia/internal/seed"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "YAML fixture to load (default: bundled trivia questions)")
	flag.Parse()

	if err := run(*file); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(file string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	if cfg.StoreDriver == config.DriverMemory {
		log.Warn("seeding the memory store has no lasting effect")
	}

	fixture, err := loadFixture(file)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	defer store.Close()

	result, err := seed.Apply(ctx, store.Categories, store.Questions, fixture)
	if err != nil {
		return err
	}

	log.Info("seed applied",
		zap.Int("categories_created", result.Categories),
		zap.Int("questions_created", result.Questions),
	)
	return nil
}

func loadFixture(file string) (*seed.Fixture, error) {
	if file == "" {
		return seed.Default()
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	return seed.Load(f)
}
