package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")

	// ErrConstraintViolation is returned when the store rejects a write,
	// e.g. a question referencing a category that does not exist.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStoreUnavailable wraps every other store failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Question represents a trivia question. Its JSON form is the formatted
// question returned by every endpoint.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category represents a question category
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Categories is an id-ordered list of categories. It marshals to a JSON
// object mapping id to type, keeping ascending id order.
type Categories []Category

// MarshalJSON implements json.Marshaler
func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, category := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(category.ID)))
		buf.WriteByte(':')
		label, err := json.Marshal(category.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	// List retrieves all categories ordered by id
	List(ctx context.Context) ([]Category, error)

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id int) (*Category, error)

	// Create creates a new category
	Create(ctx context.Context, category *Category) error
}

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves all questions ordered by id
	List(ctx context.Context) ([]Question, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Search retrieves questions whose text contains term, ignoring case
	Search(ctx context.Context, term string) ([]Question, error)

	// ListByCategory retrieves all questions in a category
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)

	// ListForQuiz retrieves quiz candidates. A nil categoryID means every
	// category. Questions whose id is in exclude are left out.
	ListForQuiz(ctx context.Context, categoryID *int, exclude []int) ([]Question, error)

	// Count returns the total number of questions
	Count(ctx context.Context) (int, error)

	// Create creates a new question and assigns its ID
	Create(ctx context.Context, question *Question) error

	// Delete deletes a question
	Delete(ctx context.Context, id int) error
}
