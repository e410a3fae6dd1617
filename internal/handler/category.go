package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories domain.CategoryRepository, questions domain.QuestionRepository) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		questions:  questions,
	}
}

// CategoriesResponse is the body of GET /categories
type CategoriesResponse struct {
	Success         bool              `json:"success"`
	Categories      domain.Categories `json:"categories"`
	TotalCategories int               `json:"total_categories"`
}

// CategoryQuestionsResponse is the body of GET /categories/:category_id/questions
type CategoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	CurrentCategory string            `json:"current_category"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
}

// List returns every category as an id to type mapping
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return internalError(err)
	}
	if len(categories) == 0 {
		return notFound(errors.New("no categories"))
	}

	return c.JSON(http.StatusOK, CategoriesResponse{
		Success:         true,
		Categories:      categories,
		TotalCategories: len(categories),
	})
}

// Questions returns a page of the questions in one category. The total is
// the count of all questions, not only those in the category.
func (h *CategoryHandler) Questions(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := idParam(c, "category_id")
	if err != nil {
		return notFound(err)
	}

	category, err := h.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return notFound(err)
		}
		return internalError(err)
	}

	questions, err := h.questions.ListByCategory(ctx, category.ID)
	if err != nil {
		return internalError(err)
	}

	total, err := h.questions.Count(ctx)
	if err != nil {
		return internalError(err)
	}

	return c.JSON(http.StatusOK, CategoryQuestionsResponse{
		Success:         true,
		CurrentCategory: category.Type,
		Questions:       Paginate(pageParam(c), questions),
		TotalQuestions:  total,
	})
}
