package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/at-ishikawa/levelup/internal/flashcard"
	mock_flashcard "github.com/at-ishikawa/levelup/internal/mocks/flashcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var createdAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func testDeck() []flashcard.Flashcard {
	return []flashcard.Flashcard{
		{ID: "fc_1", Question: "Capital of France?", Answer: "Paris", Category: "geography", Difficulty: "easy", Tags: flashcard.StringList{"europe"}, CreatedAt: createdAt},
		{ID: "fc_2", Question: "Capital of Japan?", Answer: "Tokyo", Category: "geography", Difficulty: "medium", CreatedAt: createdAt},
		{ID: "fc_3", Question: "2 + 2", Answer: "4", Category: "math", Difficulty: "easy", CreatedAt: createdAt},
		{ID: "fc_4", Question: "Keyword to start a goroutine?", Answer: "go", Category: "golang", Difficulty: "hard", Type: "open_text", CreatedAt: createdAt},
		{ID: "fc_5", Question: "Largest planet?", Answer: "Jupiter", Category: "science", Options: flashcard.StringList{"Mars", "Jupiter"}, CreatedAt: createdAt},
	}
}

func newTestHandler(t *testing.T, setupMock func(repository *mock_flashcard.MockRepository)) *Handler {
	t.Helper()
	ctrl := gomock.NewController(t)
	repository := mock_flashcard.NewMockRepository(ctrl)
	if setupMock != nil {
		setupMock(repository)
	}

	handler, err := NewHandler(repository, Options{App: "LevelUp AI", Version: "1.0.0"})
	require.NoError(t, err)
	handler.rand = rand.New(rand.NewSource(1))
	return handler
}

func serve(handler *Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

func decodeDetail(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body.Detail
}

func TestHandler_Health(t *testing.T) {
	handler := newTestHandler(t, nil)

	recorder := serve(handler, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy","app":"LevelUp AI","version":"1.0.0"}`, recorder.Body.String())
}

func TestHandler_ListFlashcards(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		findAllErr error
		wantStatus int
		wantIDs    []string
		wantDetail string
	}{
		{
			name:       "every card",
			target:     "/api/v1/flashcards/",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"fc_1", "fc_2", "fc_3", "fc_4", "fc_5"},
		},
		{
			name:       "without trailing slash",
			target:     "/api/v1/flashcards",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"fc_1", "fc_2", "fc_3", "fc_4", "fc_5"},
		},
		{
			name:       "category and difficulty ignore case",
			target:     "/api/v1/flashcards/?category=Geography&difficulty=EASY",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"fc_1"},
		},
		{
			name:       "search looks at answers",
			target:     "/api/v1/flashcards/?search=tok",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"fc_2"},
		},
		{
			name:       "skip and limit",
			target:     "/api/v1/flashcards/?skip=1&limit=2",
			wantStatus: http.StatusOK,
			wantIDs:    []string{"fc_2", "fc_3"},
		},
		{
			name:       "skip past the end",
			target:     "/api/v1/flashcards/?skip=10",
			wantStatus: http.StatusOK,
			wantIDs:    []string{},
		},
		{
			name:       "invalid limit",
			target:     "/api/v1/flashcards/?limit=-1",
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "limit must be a non-negative integer",
		},
		{
			name:       "repository error",
			target:     "/api/v1/flashcards/",
			findAllErr: errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Failed to load flashcards",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, func(repository *mock_flashcard.MockRepository) {
				if tt.wantStatus == http.StatusUnprocessableEntity {
					return
				}
				if tt.findAllErr != nil {
					repository.EXPECT().FindAll(gomock.Any()).Return(nil, tt.findAllErr)
					return
				}
				repository.EXPECT().FindAll(gomock.Any()).Return(testDeck(), nil)
			})

			recorder := serve(handler, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, recorder))
				return
			}

			var got []flashcardResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
			ids := make([]string, len(got))
			for i, card := range got {
				ids[i] = card.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestHandler_ListFlashcards_ResponseBody(t *testing.T) {
	handler := newTestHandler(t, func(repository *mock_flashcard.MockRepository) {
		repository.EXPECT().FindAll(gomock.Any()).Return(testDeck()[:2], nil)
	})

	recorder := serve(handler, http.MethodGet, "/api/v1/flashcards/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[
		{"id":"fc_1","question":"Capital of France?","answer":"Paris","category":"geography","difficulty":"easy","tags":["europe"],"created_at":"2025-03-14T09:30:00Z"},
		{"id":"fc_2","question":"Capital of Japan?","answer":"Tokyo","category":"geography","difficulty":"medium","tags":[],"created_at":"2025-03-14T09:30:00Z"}
	]`, recorder.Body.String())
}

func TestHandler_CreateFlashcard(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(repository *mock_flashcard.MockRepository)
		wantStatus int
		wantBody   string
		wantDetail string
	}{
		{
			name: "creates a card",
			body: `{"question":"What is Go?","answer":"A programming language","category":null,"difficulty":"easy","tags":["golang"]}`,
			setupMock: func(repository *mock_flashcard.MockRepository) {
				repository.EXPECT().Create(gomock.Any(), &flashcard.Flashcard{
					Question:   "What is Go?",
					Answer:     "A programming language",
					Difficulty: "easy",
					Tags:       flashcard.StringList{"golang"},
				}).DoAndReturn(func(_ context.Context, card *flashcard.Flashcard) error {
					card.ID = "fc_6"
					card.CreatedAt = createdAt
					return nil
				})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":"fc_6","question":"What is Go?","answer":"A programming language","difficulty":"easy","tags":["golang"],"created_at":"2025-03-14T09:30:00Z"}`,
		},
		{
			name:       "missing answer",
			body:       `{"question":"What is Go?"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "answer is a required field",
		},
		{
			name:       "unknown difficulty",
			body:       `{"question":"q","answer":"a","difficulty":"expert"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "difficulty must be one of [easy medium hard]",
		},
		{
			name:       "malformed body",
			body:       `{"question":`,
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "invalid request body",
		},
		{
			name: "repository error",
			body: `{"question":"q","answer":"a"}`,
			setupMock: func(repository *mock_flashcard.MockRepository) {
				repository.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Failed to create flashcard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, tt.setupMock)

			recorder := serve(handler, http.MethodPost, "/api/v1/flashcards/", tt.body)
			require.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, recorder))
				return
			}
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

func TestHandler_GetFlashcard(t *testing.T) {
	deck := testDeck()
	tests := []struct {
		name       string
		id         string
		card       *flashcard.Flashcard
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "found",
			id:         "fc_3",
			card:       &deck[2],
			wantStatus: http.StatusOK,
		},
		{
			name:       "not found",
			id:         "fc_99",
			wantStatus: http.StatusNotFound,
			wantDetail: "Flashcard not found",
		},
		{
			name:       "repository error",
			id:         "fc_1",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Failed to load flashcard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, func(repository *mock_flashcard.MockRepository) {
				repository.EXPECT().FindByID(gomock.Any(), tt.id).Return(tt.card, tt.err)
			})

			recorder := serve(handler, http.MethodGet, "/api/v1/flashcards/"+tt.id, "")
			require.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, recorder))
				return
			}
			var got flashcardResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
			assert.Equal(t, newFlashcardResponse(*tt.card), got)
		})
	}
}

func TestHandler_GenerateQuiz(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		deck          []flashcard.Flashcard
		skipFindAll   bool
		wantStatus    int
		wantDetail    string
		wantTitle     string
		wantQuestions []string
	}{
		{
			name:          "filters by category",
			body:          `{"num_questions":5,"title":"Capitals","category":"geography","difficulty":null}`,
			deck:          testDeck(),
			wantStatus:    http.StatusOK,
			wantTitle:     "Capitals",
			wantQuestions: []string{"Capital of France?", "Capital of Japan?"},
		},
		{
			name:          "defaults the title",
			body:          `{"num_questions":1,"title":"","difficulty":"easy"}`,
			deck:          testDeck()[2:3],
			wantStatus:    http.StatusOK,
			wantTitle:     "Generated Quiz",
			wantQuestions: []string{"2 + 2"},
		},
		{
			name:       "empty deck",
			body:       `{"num_questions":5,"title":"Empty"}`,
			deck:       nil,
			wantStatus: http.StatusBadRequest,
			wantDetail: "No flashcards available to generate quiz",
		},
		{
			name:       "no card matches the filter",
			body:       `{"num_questions":5,"category":"history"}`,
			deck:       testDeck(),
			wantStatus: http.StatusBadRequest,
			wantDetail: "No flashcards available to generate quiz",
		},
		{
			name:        "too many questions",
			body:        `{"num_questions":51}`,
			skipFindAll: true,
			wantStatus:  http.StatusUnprocessableEntity,
			wantDetail:  "num_questions must be 50 or less",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, func(repository *mock_flashcard.MockRepository) {
				if !tt.skipFindAll {
					repository.EXPECT().FindAll(gomock.Any()).Return(tt.deck, nil)
				}
			})

			recorder := serve(handler, http.MethodPost, "/api/v1/quiz/generate", tt.body)
			require.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, recorder))
				return
			}

			var got quizResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
			assert.Equal(t, "quiz_1", got.ID)
			assert.Equal(t, tt.wantTitle, got.Title)
			prompts := make([]string, len(got.Questions))
			for i, question := range got.Questions {
				prompts[i] = question.Question
				assert.Contains(t, question.Options, question.Answer)
				assert.Equal(t, questionTypeMultipleChoice, question.Type)
			}
			assert.ElementsMatch(t, tt.wantQuestions, prompts)
		})
	}
}

func TestHandler_GenerateQuiz_NumbersQuizzes(t *testing.T) {
	handler := newTestHandler(t, func(repository *mock_flashcard.MockRepository) {
		repository.EXPECT().FindAll(gomock.Any()).Return(testDeck(), nil).Times(2)
	})

	for _, wantID := range []string{"quiz_1", "quiz_2"} {
		recorder := serve(handler, http.MethodPost, "/api/v1/quiz/generate", `{"num_questions":2}`)
		require.Equal(t, http.StatusOK, recorder.Code)
		var got quizResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
		assert.Equal(t, wantID, got.ID)
		assert.Len(t, got.Questions, 2)
	}

	recorder := serve(handler, http.MethodGet, "/api/v1/quiz/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var quizzes []quizResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&quizzes))
	require.Len(t, quizzes, 2)
	assert.Equal(t, "quiz_2", quizzes[1].ID)
}

func TestBuildQuestion(t *testing.T) {
	answers := []string{"Paris", "Tokyo", "4", "go", "Jupiter"}

	tests := []struct {
		name        string
		card        flashcard.Flashcard
		wantType    string
		wantOptions []string
		wantCount   int
	}{
		{
			name:      "options are built from other answers",
			card:      flashcard.Flashcard{Question: "Capital of France?", Answer: "Paris"},
			wantType:  questionTypeMultipleChoice,
			wantCount: 4,
		},
		{
			name:        "stored options are kept",
			card:        flashcard.Flashcard{Question: "Largest planet?", Answer: "Jupiter", Options: flashcard.StringList{"Mars", "Jupiter"}},
			wantType:    questionTypeMultipleChoice,
			wantOptions: []string{"Mars", "Jupiter"},
		},
		{
			name:        "open questions have no options",
			card:        flashcard.Flashcard{Question: "Keyword to start a goroutine?", Answer: "go", Type: "open_text"},
			wantType:    "open_text",
			wantOptions: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildQuestion(rand.New(rand.NewSource(1)), tt.card, answers)
			assert.Equal(t, tt.card.Question, got.Question)
			assert.Equal(t, tt.card.Answer, got.Answer)
			assert.Equal(t, tt.wantType, got.Type)
			if tt.wantOptions != nil {
				assert.Equal(t, tt.wantOptions, got.Options)
				return
			}
			assert.Len(t, got.Options, tt.wantCount)
			assert.Contains(t, got.Options, tt.card.Answer)
			assert.Subset(t, answers, got.Options)
		})
	}
}

func TestBuildQuestion_SmallDeck(t *testing.T) {
	got := buildQuestion(rand.New(rand.NewSource(1)), flashcard.Flashcard{Question: "2 + 2", Answer: "4"}, []string{"4"})
	assert.Equal(t, []string{"4"}, got.Options)
}

func TestShuffleWithLimit(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name    string
		limit   int
		wantLen int
	}{
		{name: "zero keeps every item", limit: 0, wantLen: 5},
		{name: "negative keeps every item", limit: -1, wantLen: 5},
		{name: "limit larger than items", limit: 10, wantLen: 5},
		{name: "limit truncates", limit: 2, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shuffleWithLimit(rand.New(rand.NewSource(42)), items, tt.limit)
			assert.Len(t, got, tt.wantLen)
			assert.Subset(t, items, got)
			assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
		})
	}
}
