package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

func TestStoreQuestions(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	categories := store.Categories()
	questions := store.Questions()

	science := &domain.Category{Type: "Science"}
	require.NoError(t, categories.Create(ctx, science))
	assert.Equal(t, 1, science.ID)

	first := &domain.Question{Question: "Which planet is the Red Planet?", Answer: "Mars", Category: science.ID, Difficulty: 1}
	second := &domain.Question{Question: "What is H2O?", Answer: "Water", Category: science.ID, Difficulty: 1}
	require.NoError(t, questions.Create(ctx, first))
	require.NoError(t, questions.Create(ctx, second))
	assert.Equal(t, 2, second.ID)

	found, err := questions.Search(ctx, "red PLANET")
	require.NoError(t, err)
	assert.Equal(t, []domain.Question{*first}, found)

	candidates, err := questions.ListForQuiz(ctx, &science.ID, []int{first.ID})
	require.NoError(t, err)
	assert.Equal(t, []domain.Question{*second}, candidates)

	require.NoError(t, questions.Delete(ctx, first.ID))
	assert.ErrorIs(t, questions.Delete(ctx, first.ID), domain.ErrQuestionNotFound)

	count, err := questions.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStoreRejectsUnknownCategory(t *testing.T) {
	err := NewStore().Questions().Create(context.Background(), &domain.Question{Question: "?", Category: 7})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestStoreListsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Categories().Create(ctx, &domain.Category{Type: "Art"}))

	list, err := store.Categories().List(ctx)
	require.NoError(t, err)
	list[0].Type = "changed"

	category, err := store.Categories().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Art", category.Type)
}
