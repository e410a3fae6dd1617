package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/validation"
)

// QuizService picks quiz questions and checks answers
type QuizService struct {
	questions domain.QuestionRepository
	intn      func(n int) int
}

// NewQuizService creates a new quiz service
func NewQuizService(questions domain.QuestionRepository) *QuizService {
	return &QuizService{
		questions: questions,
		intn:      rand.Intn,
	}
}

// NextQuestion returns a random question that is not in previous. A nil
// categoryID draws from every category. It returns nil, nil when no
// question is left.
func (s *QuizService) NextQuestion(ctx context.Context, categoryID *int, previous []int) (*domain.Question, error) {
	candidates, err := s.questions.ListForQuiz(ctx, categoryID, previous)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz questions: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	question := candidates[s.intn(len(candidates))]
	return &question, nil
}

// AnswerResult is the outcome of checking a submitted answer
type AnswerResult struct {
	Correct bool
	Answer  string
}

// CheckAnswer compares a submitted answer with the stored one, tolerating
// case, punctuation, leading articles and small typos.
func (s *QuizService) CheckAnswer(ctx context.Context, questionID int, answer string) (*AnswerResult, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	return &AnswerResult{
		Correct: validation.IsSimilarAnswer(answer, question.Answer),
		Answer:  question.Answer,
	}, nil
}
