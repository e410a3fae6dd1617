package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// QuizHandler handles quiz play requests
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

// QuizResponse is the body of POST /quizzes. Question is null when every
// candidate has been asked.
type QuizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

// CheckAnswerResponse is the body of POST /quizzes/answers
type CheckAnswerResponse struct {
	Success bool   `json:"success"`
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
}

// Next picks a random question the player has not seen yet
func (h *QuizHandler) Next(c echo.Context) error {
	req, err := parseQuizRequest(c)
	if err != nil {
		return err
	}

	question, err := h.quizService.NextQuestion(c.Request().Context(), req.CategoryID(), req.PreviousQuestions)
	if err != nil {
		return unprocessable(err)
	}

	return c.JSON(http.StatusOK, QuizResponse{
		Success:  true,
		Question: question,
	})
}

// CheckAnswer tells the player whether their answer is right
func (h *QuizHandler) CheckAnswer(c echo.Context) error {
	var req CheckAnswerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	result, err := h.quizService.CheckAnswer(c.Request().Context(), int(*req.QuestionID), *req.Answer)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return notFound(err)
		}
		return unprocessable(err)
	}

	return c.JSON(http.StatusOK, CheckAnswerResponse{
		Success: true,
		Correct: result.Correct,
		Answer:  result.Answer,
	})
}
