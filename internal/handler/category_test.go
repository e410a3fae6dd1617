package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/repository/memory"
)

func TestListCategories(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodGet, "/categories", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(6), body["total_categories"])
	assert.Equal(t, map[string]any{
		"1": "Science",
		"2": "Art",
		"3": "Geography",
		"4": "History",
		"5": "Entertainment",
		"6": "Sports",
	}, body["categories"])
}

func TestListCategoriesExactBody(t *testing.T) {
	store := memory.NewStore()
	srv := newServerWith(store.Categories(), store.Questions())
	for _, name := range []string{"Science", "Art"} {
		require.NoError(t, store.Categories().Create(context.Background(), &domain.Category{Type: name}))
	}

	rec, _ := serveJSON(t, srv, http.MethodGet, "/categories", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"categories":{"1":"Science","2":"Art"},"total_categories":2}`, rec.Body.String())
}

func TestListCategoriesEmpty(t *testing.T) {
	store := memory.NewStore()
	srv := newServerWith(store.Categories(), store.Questions())

	rec, body := serveJSON(t, srv, http.MethodGet, "/categories", "")

	requireError(t, rec, body, http.StatusNotFound, "resource not found")
}

func TestListCategoriesStoreFailure(t *testing.T) {
	srv := newServerWith(failingCategories{}, failingStore{})

	rec, body := serveJSON(t, srv, http.MethodGet, "/categories", "")

	requireError(t, rec, body, http.StatusInternalServerError, "internal server error")
}

func TestCategoryQuestions(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodGet, "/categories/5/questions", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Entertainment", body["current_category"])
	assert.Equal(t, []int{9, 10}, questionIDs(t, body))
	for _, q := range body["questions"].([]any) {
		assert.Equal(t, float64(5), q.(map[string]any)["category"])
	}
	// total counts every question, not only this category
	assert.Equal(t, float64(len(seedQuestions)), body["total_questions"])
}

func TestCategoryQuestionsEmptyCategory(t *testing.T) {
	srv := newTestServer(t, false)

	rec, body := serveJSON(t, srv.echo, http.MethodGet, "/categories/2/questions", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Art", body["current_category"])
	assert.Empty(t, questionIDs(t, body))
	assert.Equal(t, float64(0), body["total_questions"])
}

func TestCategoryQuestionsUnknownCategory(t *testing.T) {
	srv := newTestServer(t, true)

	for _, path := range []string{"/categories/100000/questions", "/categories/abc/questions", "/categories/-1/questions"} {
		rec, body := serveJSON(t, srv.echo, http.MethodGet, path, "")
		requireError(t, rec, body, http.StatusNotFound, "resource not found")
	}
}

func TestCategoryQuestionsStoreFailure(t *testing.T) {
	srv := newServerWith(failingCategories{}, failingStore{})

	rec, body := serveJSON(t, srv, http.MethodGet, "/categories/1/questions", "")

	requireError(t, rec, body, http.StatusInternalServerError, "internal server error")
}
