package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// QuestionsPerPage is the fixed page size of every question listing
const QuestionsPerPage = 10

// Paginate returns page (1-based) of questions. Pages outside the range yield
// an empty slice; callers decide whether that is a miss.
func Paginate(page int, questions []domain.Question) []domain.Question {
	if page < 1 {
		return []domain.Question{}
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(questions) {
		return []domain.Question{}
	}
	end := min(start+QuestionsPerPage, len(questions))
	return questions[start:end]
}

// pageParam reads ?page, defaulting to 1 when it is absent or not an integer
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return 1
	}
	return page
}

// idParam parses a non-negative integer path parameter
func idParam(c echo.Context, name string) (int, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 31)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}
