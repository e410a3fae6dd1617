package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/events"
	"go.uber.org/zap"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	events     domain.EventPublisher
	logger     *zap.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions domain.QuestionRepository, categories domain.CategoryRepository, publisher domain.EventPublisher, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		questions:  questions,
		categories: categories,
		events:     publisher,
		logger:     logger,
	}
}

// QuestionsResponse is the body of GET /questions
type QuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      domain.Categories `json:"categories"`
	TotalCategories int               `json:"total_categories"`
}

// DeleteQuestionResponse is the body of DELETE /questions/:question_id
type DeleteQuestionResponse struct {
	Success        bool              `json:"success"`
	DeletedID      int               `json:"deleted_id"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// CreateQuestionResponse is the body of a successful create
type CreateQuestionResponse struct {
	Success         bool              `json:"success"`
	CreatedID       int               `json:"created_id"`
	CreatedQuestion string            `json:"created_question"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
}

// SearchQuestionsResponse is the body of a successful search
type SearchQuestionsResponse struct {
	Success        bool              `json:"success"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// List returns a page of questions together with every category
func (h *QuestionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	questions, err := h.questions.List(ctx)
	if err != nil {
		return internalError(err)
	}
	page := Paginate(pageParam(c), questions)

	categories, err := h.categories.List(ctx)
	if err != nil {
		return internalError(err)
	}

	if len(page) == 0 {
		return notFound(errors.New("page is empty"))
	}

	return c.JSON(http.StatusOK, QuestionsResponse{
		Success:         true,
		Questions:       page,
		TotalQuestions:  len(questions),
		Categories:      categories,
		TotalCategories: len(categories),
	})
}

// Delete removes a question. A missing question is unprocessable rather
// than not found.
func (h *QuestionHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "question_id")
	if err != nil {
		return notFound(err)
	}

	if _, err := h.questions.GetByID(ctx, id); err != nil {
		return unprocessable(err)
	}

	if err := h.questions.Delete(ctx, id); err != nil {
		return unprocessable(err)
	}

	questions, err := h.questions.List(ctx)
	if err != nil {
		return unprocessable(err)
	}

	h.publish(ctx, events.NewEvent(domain.EventQuestionDeleted, id, nil))

	return c.JSON(http.StatusOK, DeleteQuestionResponse{
		Success:        true,
		DeletedID:      id,
		Questions:      questions,
		TotalQuestions: len(questions),
	})
}

// Post searches questions when the body has a searchTerm and creates a
// question otherwise.
func (h *QuestionHandler) Post(c echo.Context) error {
	req, err := parseQuestionPost(c)
	if err != nil {
		return err
	}

	switch req := req.(type) {
	case *SearchRequest:
		return h.search(c, req)
	case *CreateQuestionRequest:
		return h.create(c, req)
	default:
		return internalError(fmt.Errorf("unexpected request %T", req))
	}
}

// search returns a page of matches. The total is the count of all
// questions, not of the matches.
func (h *QuestionHandler) search(c echo.Context, req *SearchRequest) error {
	ctx := c.Request().Context()

	matches, err := h.questions.Search(ctx, req.SearchTerm)
	if err != nil {
		return unprocessable(err)
	}
	if len(matches) == 0 {
		return notFound(fmt.Errorf("no question matches %q", req.SearchTerm))
	}

	total, err := h.questions.Count(ctx)
	if err != nil {
		return unprocessable(err)
	}

	return c.JSON(http.StatusOK, SearchQuestionsResponse{
		Success:        true,
		Questions:      Paginate(pageParam(c), matches),
		TotalQuestions: total,
	})
}

func (h *QuestionHandler) create(c echo.Context, req *CreateQuestionRequest) error {
	ctx := c.Request().Context()

	question := &domain.Question{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Category:   int(*req.Category),
		Difficulty: int(*req.Difficulty),
	}
	if err := h.questions.Create(ctx, question); err != nil {
		return unprocessable(err)
	}

	questions, err := h.questions.List(ctx)
	if err != nil {
		return unprocessable(err)
	}

	h.publish(ctx, events.NewEvent(domain.EventQuestionCreated, question.ID, question))

	return c.JSON(http.StatusOK, CreateQuestionResponse{
		Success:         true,
		CreatedID:       question.ID,
		CreatedQuestion: question.Question,
		Questions:       Paginate(pageParam(c), questions),
		TotalQuestions:  len(questions),
	})
}

// publish never fails the request; the change is already stored
func (h *QuestionHandler) publish(ctx context.Context, event domain.Event) {
	if err := h.events.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish event",
			zap.String("type", string(event.Type)),
			zap.Int("question_id", event.QuestionID),
			zap.Error(err),
		)
	}
}
