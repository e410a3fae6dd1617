// Package memory provides in-process implementations of the domain
// repositories. Both repositories share one Store so that question writes can
// check category references the same way the database foreign key does.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Store holds categories and questions in memory
type Store struct {
	mu             sync.RWMutex
	categories     []domain.Category
	questions      []domain.Question
	nextCategoryID int
	nextQuestionID int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{nextCategoryID: 1, nextQuestionID: 1}
}

// Categories returns the category repository backed by the store
func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{store: s}
}

// Questions returns the question repository backed by the store
func (s *Store) Questions() *QuestionRepository {
	return &QuestionRepository{store: s}
}

func (s *Store) hasCategory(id int) bool {
	return slices.ContainsFunc(s.categories, func(c domain.Category) bool { return c.ID == id })
}

// CategoryRepository implements domain.CategoryRepository
type CategoryRepository struct {
	store *Store
}

// List retrieves all categories ordered by id
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return slices.Clone(r.store.categories), nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, category := range r.store.categories {
		if category.ID == id {
			return &category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	category.ID = r.store.nextCategoryID
	r.store.nextCategoryID++
	r.store.categories = append(r.store.categories, *category)
	return nil
}

// QuestionRepository implements domain.QuestionRepository
type QuestionRepository struct {
	store *Store
}

// List retrieves all questions ordered by id
func (r *QuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	return r.filter(func(domain.Question) bool { return true }), nil
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, question := range r.store.questions {
		if question.ID == id {
			return &question, nil
		}
	}
	return nil, domain.ErrQuestionNotFound
}

// Search retrieves questions whose text contains term, ignoring case
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]domain.Question, error) {
	needle := strings.ToLower(term)
	return r.filter(func(q domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

// ListByCategory retrieves all questions in a category
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error) {
	return r.filter(func(q domain.Question) bool { return q.Category == categoryID }), nil
}

// ListForQuiz retrieves the questions still available for a quiz
func (r *QuestionRepository) ListForQuiz(ctx context.Context, categoryID *int, exclude []int) ([]domain.Question, error) {
	return r.filter(func(q domain.Question) bool {
		if categoryID != nil && q.Category != *categoryID {
			return false
		}
		return !slices.Contains(exclude, q.ID)
	}), nil
}

// Count returns the total number of questions
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.questions), nil
}

// Create creates a new question
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.hasCategory(question.Category) {
		return domain.ErrConstraintViolation
	}
	question.ID = r.store.nextQuestionID
	r.store.nextQuestionID++
	r.store.questions = append(r.store.questions, *question)
	return nil
}

// Delete deletes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i := slices.IndexFunc(r.store.questions, func(q domain.Question) bool { return q.ID == id })
	if i < 0 {
		return domain.ErrQuestionNotFound
	}
	r.store.questions = slices.Delete(r.store.questions, i, i+1)
	return nil
}

func (r *QuestionRepository) filter(keep func(domain.Question) bool) []domain.Question {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	questions := []domain.Question{}
	for _, question := range r.store.questions {
		if keep(question) {
			questions = append(questions, question)
		}
	}
	return questions
}
