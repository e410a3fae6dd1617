package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

func TestListQuestions(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodGet, "/questions", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, questionIDs(t, body))
	assert.Equal(t, float64(len(seedQuestions)), body["total_questions"])
	assert.Equal(t, float64(len(seedCategories)), body["total_categories"])
	assert.Equal(t, "Science", body["categories"].(map[string]any)["1"])
}

func TestListQuestionsSecondPage(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodGet, "/questions?page=2", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{11, 12}, questionIDs(t, body))
}

func TestListQuestionsInvalidPageDefaultsToFirst(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodGet, "/questions?page=abc", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, questionIDs(t, body), QuestionsPerPage)
}

func TestListQuestionsPageBeyondRange(t *testing.T) {
	srv := newTestServer(t, true)

	for _, path := range []string{"/questions?page=1000", "/questions?page=0"} {
		rec, body := serveJSON(t, srv.echo, http.MethodGet, path, "")
		requireError(t, rec, body, http.StatusNotFound, "resource not found")
	}
}

func TestListQuestionsEmptyStore(t *testing.T) {
	srv := newTestServer(t, false)

	rec, body := serveJSON(t, srv.echo, http.MethodGet, "/questions", "")

	requireError(t, rec, body, http.StatusNotFound, "resource not found")
}

func TestListQuestionsStoreFailure(t *testing.T) {
	srv := newServerWith(failingCategories{}, failingStore{})

	rec, body := serveJSON(t, srv, http.MethodGet, "/questions", "")

	requireError(t, rec, body, http.StatusInternalServerError, "internal server error")
}

func TestDeleteQuestion(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodDelete, "/questions/3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["deleted_id"])
	assert.Equal(t, float64(len(seedQuestions)-1), body["total_questions"])
	assert.NotContains(t, questionIDs(t, body), 3)
	// the full list is returned, not a page
	assert.Len(t, questionIDs(t, body), len(seedQuestions)-1)

	_, err := srv.store.Questions().GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	require.Len(t, srv.publisher.events, 1)
	assert.Equal(t, domain.EventQuestionDeleted, srv.publisher.events[0].Type)
	assert.Equal(t, 3, srv.publisher.events[0].QuestionID)
	assert.Nil(t, srv.publisher.events[0].Question)
}

func TestDeleteQuestionTwice(t *testing.T) {
	srv := newTestServer(t, true)

	rec, _ := serveJSON(t, srv.echo, http.MethodDelete, "/questions/3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := serveJSON(t, srv.echo, http.MethodDelete, "/questions/3", "")
	requireError(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")
	assert.Len(t, srv.publisher.events, 1)
}

func TestDeleteMissingQuestion(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodDelete, "/questions/100000", "")

	requireError(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")
	assert.Empty(t, srv.publisher.events)
}

func TestDeleteQuestionInvalidID(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodDelete, "/questions/abc", "")

	requireError(t, rec, body, http.StatusNotFound, "resource not found")
}

func TestSearchQuestions(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodPost, "/questions", `{"searchTerm":"world cup"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []int{11, 12}, questionIDs(t, body))
	assert.Equal(t, float64(len(seedQuestions)), body["total_questions"])
	assert.Empty(t, srv.publisher.events)
}

func TestSearchQuestionsTreatsWildcardsLiterally(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodPost, "/questions", `{"searchTerm":"%"}`)

	requireError(t, rec, body, http.StatusNotFound, "resource not found")
}

func TestSearchQuestionsNoMatch(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodPost, "/questions", `{"searchTerm":"xyzzy"}`)

	requireError(t, rec, body, http.StatusNotFound, "resource not found")
}

func TestSearchQuestionsBadTerm(t *testing.T) {
	srv := newTestServer(t, true)

	for _, body := range []string{`{"searchTerm":""}`, `{"searchTerm":null}`, `{"searchTerm":42}`} {
		rec, decoded := serveJSON(t, srv.echo, http.MethodPost, "/questions", body)
		requireError(t, rec, decoded, http.StatusBadRequest, "bad request")
	}
}

func TestPostQuestionsMalformedJSON(t *testing.T) {
	srv := newTestServer(t, true)

	for _, body := range []string{`{"question":`, `[1,2]`, `"text"`} {
		rec, decoded := serveJSON(t, srv.echo, http.MethodPost, "/questions", body)
		requireError(t, rec, decoded, http.StatusBadRequest, "bad request")
	}
}

func TestCreateQuestion(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodPost, "/questions",
		`{"question":"What is the capital of Peru?","answer":"Lima","category":"3","difficulty":2}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(13), body["created_id"])
	assert.Equal(t, "What is the capital of Peru?", body["created_question"])
	assert.Equal(t, float64(len(seedQuestions)+1), body["total_questions"])
	assert.Len(t, questionIDs(t, body), QuestionsPerPage)

	created, err := srv.store.Questions().GetByID(context.Background(), 13)
	require.NoError(t, err)
	assert.Equal(t, domain.Question{ID: 13, Question: "What is the capital of Peru?", Answer: "Lima", Category: 3, Difficulty: 2}, *created)

	require.Len(t, srv.publisher.events, 1)
	event := srv.publisher.events[0]
	assert.Equal(t, domain.EventQuestionCreated, event.Type)
	assert.Equal(t, 13, event.QuestionID)
	require.NotNil(t, event.Question)
	assert.Equal(t, "Lima", event.Question.Answer)
}

func TestCreateQuestionAcceptsEmptyStrings(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodPost, "/questions",
		`{"question":"","answer":"","category":1,"difficulty":1}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", body["created_question"])
}

func TestCreateQuestionIncomplete(t *testing.T) {
	srv := newTestServer(t, true)

	bodies := []string{
		``,
		`{}`,
		`{"question":"Q","answer":"A","category":1}`,
		`{"question":"Q","category":1,"difficulty":1}`,
		`{"question":null,"answer":"A","category":1,"difficulty":1}`,
		`{"question":"Q","answer":"A","category":"one","difficulty":1}`,
	}
	for _, body := range bodies {
		rec, decoded := serveJSON(t, srv.echo, http.MethodPost, "/questions", body)
		requireError(t, rec, decoded, http.StatusUnprocessableEntity, "unprocessable")
	}

	count, err := srv.store.Questions().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(seedQuestions), count)
	assert.Empty(t, srv.publisher.events)
}

func TestCreateQuestionUnknownCategory(t *testing.T) {
	srv := newTestServer(t, true)

	rec, body := serveJSON(t, srv.echo, http.MethodPost, "/questions",
		`{"question":"Q","answer":"A","category":999,"difficulty":1}`)

	requireError(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")
	assert.Empty(t, srv.publisher.events)
}

func TestCreateQuestionStoreFailure(t *testing.T) {
	srv := newServerWith(failingCategories{}, failingStore{})

	rec, body := serveJSON(t, srv, http.MethodPost, "/questions",
		`{"question":"Q","answer":"A","category":1,"difficulty":1}`)

	requireError(t, rec, body, http.StatusUnprocessableEntity, "unprocessable")
}
