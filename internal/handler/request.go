package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FlexInt accepts a JSON number or a string holding an integer. Browser
// forms post select values as strings.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	text := string(bytes.TrimSpace(data))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		text = strings.TrimSpace(s)
	}

	v, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("invalid integer %s", data)
	}
	*n = FlexInt(v)
	return nil
}

// CustomValidator adapts go-playground/validator to echo
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the validator installed on the echo instance
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// SearchRequest is the search variant of POST /questions
type SearchRequest struct {
	SearchTerm string
}

// CreateQuestionRequest is the create variant of POST /questions
type CreateQuestionRequest struct {
	Question   *string  `json:"question" validate:"required"`
	Answer     *string  `json:"answer" validate:"required"`
	Category   *FlexInt `json:"category" validate:"required"`
	Difficulty *FlexInt `json:"difficulty" validate:"required"`
}

var errEmptySearchTerm = errors.New("searchTerm cannot be empty")

// questionPost is the tagged POST /questions body: *SearchRequest when the
// body carries a searchTerm key, *CreateQuestionRequest otherwise.
type questionPost interface {
	questionPost()
}

func (*SearchRequest) questionPost()         {}
func (*CreateQuestionRequest) questionPost() {}

// parseQuestionPost decides the variant of a POST /questions body and
// validates it. Malformed JSON and bad search terms are bad requests; an
// incomplete create body is unprocessable.
func parseQuestionPost(c echo.Context) (questionPost, error) {
	data, fields, err := readObject(c)
	if err != nil {
		return nil, badRequest(err)
	}

	if raw, ok := fields["searchTerm"]; ok {
		var term *string
		if err := json.Unmarshal(raw, &term); err != nil {
			return nil, badRequest(fmt.Errorf("searchTerm must be a string: %w", err))
		}
		if term == nil || *term == "" {
			return nil, badRequest(errEmptySearchTerm)
		}
		return &SearchRequest{SearchTerm: *term}, nil
	}

	var req CreateQuestionRequest
	if len(fields) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, unprocessable(err)
		}
	}
	if err := c.Validate(&req); err != nil {
		return nil, unprocessable(err)
	}
	return &req, nil
}

// readObject reads the request body as a JSON object. An empty body is an
// empty object.
func readObject(c echo.Context) ([]byte, map[string]json.RawMessage, error) {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read body: %w", err)
	}

	fields := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) == 0 {
		return data, fields, nil
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, nil, fmt.Errorf("body must be a JSON object: %w", err)
	}
	return data, fields, nil
}

// QuizCategory selects the category a quiz draws from
type QuizCategory struct {
	ID   *FlexInt `json:"id"`
	Type string   `json:"type"`
}

// allCategoriesType is the quiz_category.type meaning every category
const allCategoriesType = "click"

// QuizRequest is the body of POST /quizzes
type QuizRequest struct {
	Category          QuizCategory
	PreviousQuestions []int
}

// CategoryID returns the category filter, nil meaning every category
func (r *QuizRequest) CategoryID() *int {
	if r.Category.Type == allCategoriesType {
		return nil
	}
	id := int(*r.Category.ID)
	return &id
}

// parseQuizRequest requires both top-level keys (bad request when missing)
// and a well-formed category and id list (unprocessable otherwise).
func parseQuizRequest(c echo.Context) (*QuizRequest, error) {
	_, fields, err := readObject(c)
	if err != nil {
		return nil, badRequest(err)
	}

	rawCategory, hasCategory := fields["quiz_category"]
	rawPrevious, hasPrevious := fields["previous_questions"]
	if !hasCategory || !hasPrevious {
		return nil, badRequest(errors.New("quiz_category and previous_questions are required"))
	}

	var category *QuizCategory
	if err := json.Unmarshal(rawCategory, &category); err != nil {
		return nil, unprocessable(fmt.Errorf("invalid quiz_category: %w", err))
	}
	if category == nil {
		return nil, unprocessable(errors.New("quiz_category cannot be null"))
	}
	if category.Type != allCategoriesType && category.ID == nil {
		return nil, unprocessable(errors.New("quiz_category.id is required"))
	}

	var previous []FlexInt
	if err := json.Unmarshal(rawPrevious, &previous); err != nil {
		return nil, unprocessable(fmt.Errorf("invalid previous_questions: %w", err))
	}

	req := &QuizRequest{Category: *category, PreviousQuestions: make([]int, 0, len(previous))}
	for _, id := range previous {
		req.PreviousQuestions = append(req.PreviousQuestions, int(id))
	}
	return req, nil
}

// CheckAnswerRequest is the body of POST /quizzes/answers
type CheckAnswerRequest struct {
	QuestionID *FlexInt `json:"question_id" validate:"required"`
	Answer     *string  `json:"answer" validate:"required"`
}
