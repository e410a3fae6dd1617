// Package seed loads category and question fixtures into a store
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed trivia.yaml
var defaultFixture []byte

// Fixture is a set of categories and the questions filed under them.
// Questions refer to their category by type.
type Fixture struct {
	Categories []string          `yaml:"categories"`
	Questions  []FixtureQuestion `yaml:"questions"`
}

// FixtureQuestion is one question of a fixture
type FixtureQuestion struct {
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Category   string `yaml:"category"`
	Difficulty int    `yaml:"difficulty"`
}

// Result counts the records Apply created
type Result struct {
	Categories int
	Questions  int
}

// Default returns the bundled fixture
func Default() (*Fixture, error) {
	return Load(bytes.NewReader(defaultFixture))
}

// Load decodes and validates a YAML fixture. Unknown keys are rejected.
func Load(r io.Reader) (*Fixture, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var fixture Fixture
	if err := decoder.Decode(&fixture); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	if err := fixture.validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

func (f *Fixture) validate() error {
	known := make(map[string]bool, len(f.Categories))
	for _, category := range f.Categories {
		if category == "" {
			return errors.New("category type cannot be empty")
		}
		if known[category] {
			return fmt.Errorf("duplicate category %q", category)
		}
		known[category] = true
	}

	for i, q := range f.Questions {
		if q.Question == "" || q.Answer == "" {
			return fmt.Errorf("question %d: question and answer are required", i+1)
		}
		if !known[q.Category] {
			return fmt.Errorf("question %d: unknown category %q", i+1, q.Category)
		}
		if q.Difficulty < 1 || q.Difficulty > 5 {
			return fmt.Errorf("question %d: difficulty %d out of range 1-5", i+1, q.Difficulty)
		}
	}
	return nil
}

// Apply writes the fixture to the repositories. Categories are matched by
// type and questions by text within their category, so applying the same
// fixture twice creates nothing the second time.
func Apply(ctx context.Context, categories domain.CategoryRepository, questions domain.QuestionRepository, fixture *Fixture) (Result, error) {
	var result Result

	existing, err := categories.List(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list categories: %w", err)
	}
	ids := make(map[string]int, len(existing))
	for _, category := range existing {
		ids[category.Type] = category.ID
	}

	for _, name := range fixture.Categories {
		if _, ok := ids[name]; ok {
			continue
		}
		category := &domain.Category{Type: name}
		if err := categories.Create(ctx, category); err != nil {
			return result, fmt.Errorf("failed to create category %q: %w", name, err)
		}
		ids[name] = category.ID
		result.Categories++
	}

	stored, err := questions.List(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list questions: %w", err)
	}
	type key struct {
		category int
		text     string
	}
	seen := make(map[key]bool, len(stored))
	for _, q := range stored {
		seen[key{q.Category, q.Question}] = true
	}

	for _, q := range fixture.Questions {
		k := key{ids[q.Category], q.Question}
		if seen[k] {
			continue
		}
		question := &domain.Question{
			Question:   q.Question,
			Answer:     q.Answer,
			Category:   k.category,
			Difficulty: q.Difficulty,
		}
		if err := questions.Create(ctx, question); err != nil {
			return result, fmt.Errorf("failed to create question %q: %w", q.Question, err)
		}
		seen[k] = true
		result.Questions++
	}

	return result, nil
}
