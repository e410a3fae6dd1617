package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/repository/memory"
	"go.uber.org/zap"
)

var seedCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

var seedQuestions = []domain.Question{
	{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
	{Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3},
	{Question: "Which Dutch graphic artist was initials M C a creator of optical illusions?", Answer: "Escher", Category: 2, Difficulty: 1},
	{Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: 2, Difficulty: 3},
	{Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2},
	{Question: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", Category: 3, Difficulty: 3},
	{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
	{Question: "Which dung beetle was worshipped by the ancient Egyptians?", Answer: "Scarab", Category: 4, Difficulty: 4},
	{Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Category: 5, Difficulty: 4},
	{Question: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", Category: 5, Difficulty: 4},
	{Question: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", Category: 6, Difficulty: 3},
	{Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", Category: 6, Difficulty: 4},
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type testServer struct {
	echo      *echo.Echo
	store     *memory.Store
	publisher *recordingPublisher
}

func newTestServer(t *testing.T, withQuestions bool) *testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	for _, name := range seedCategories {
		require.NoError(t, store.Categories().Create(ctx, &domain.Category{Type: name}))
	}
	if withQuestions {
		for _, q := range seedQuestions {
			q := q
			require.NoError(t, store.Questions().Create(ctx, &q))
		}
	}

	publisher := &recordingPublisher{}
	e := NewRouter(Dependencies{
		Categories: store.Categories(),
		Questions:  store.Questions(),
		Events:     publisher,
		Logger:     zap.NewNop(),
	})
	return &testServer{echo: e, store: store, publisher: publisher}
}

func newServerWith(categories domain.CategoryRepository, questions domain.QuestionRepository) *echo.Echo {
	return NewRouter(Dependencies{
		Categories: categories,
		Questions:  questions,
		Logger:     zap.NewNop(),
	})
}

func serveJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

// requireError asserts the standard error envelope
func requireError(t *testing.T, rec *httptest.ResponseRecorder, body map[string]any, code int, message string) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	require.Equal(t, false, body["success"])
	require.Equal(t, float64(code), body["error"])
	require.Equal(t, message, body["message"])
}

func questionIDs(t *testing.T, body map[string]any) []int {
	t.Helper()
	raw, ok := body["questions"].([]any)
	require.True(t, ok, "questions missing: %v", body)
	ids := make([]int, 0, len(raw))
	for _, item := range raw {
		ids = append(ids, int(item.(map[string]any)["id"].(float64)))
	}
	return ids
}

// failingStore fails every call with ErrStoreUnavailable
type failingStore struct{}

func (failingStore) List(context.Context) ([]domain.Question, error) {
	return nil, domain.ErrStoreUnavailable
}
func (failingStore) GetByID(context.Context, int) (*domain.Question, error) {
	return nil, domain.ErrStoreUnavailable
}
func (failingStore) Search(context.Context, string) ([]domain.Question, error) {
	return nil, domain.ErrStoreUnavailable
}
func (failingStore) ListByCategory(context.Context, int) ([]domain.Question, error) {
	return nil, domain.ErrStoreUnavailable
}
func (failingStore) ListForQuiz(context.Context, *int, []int) ([]domain.Question, error) {
	return nil, domain.ErrStoreUnavailable
}
func (failingStore) Count(context.Context) (int, error) { return 0, domain.ErrStoreUnavailable }
func (failingStore) Create(context.Context, *domain.Question) error {
	return domain.ErrStoreUnavailable
}
func (failingStore) Delete(context.Context, int) error { return domain.ErrStoreUnavailable }

type failingCategories struct{}

func (failingCategories) List(context.Context) ([]domain.Category, error) {
	return nil, domain.ErrStoreUnavailable
}
func (failingCategories) GetByID(context.Context, int) (*domain.Category, error) {
	return nil, domain.ErrStoreUnavailable
}
func (failingCategories) Create(context.Context, *domain.Category) error {
	return domain.ErrStoreUnavailable
}
