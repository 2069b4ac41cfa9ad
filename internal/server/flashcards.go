package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/at-ishikawa/levelup/internal/flashcard"
	"github.com/go-chi/chi/v5"
)

type flashcardCreateRequest struct {
	Question   string   `json:"question" validate:"required,max=1000"`
	Answer     string   `json:"answer" validate:"required,max=1000"`
	Category   *string  `json:"category" validate:"omitempty,max=100"`
	Difficulty *string  `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Tags       []string `json:"tags"`
}

type flashcardResponse struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Category   string    `json:"category,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
}

func newFlashcardResponse(card flashcard.Flashcard) flashcardResponse {
	tags := []string(card.Tags)
	if tags == nil {
		tags = []string{}
	}
	return flashcardResponse{
		ID:         card.ID,
		Question:   card.Question,
		Answer:     card.Answer,
		Category:   card.Category,
		Difficulty: card.Difficulty,
		Tags:       tags,
		CreatedAt:  card.CreatedAt,
	}
}

// listParams holds the query parameters of the flashcard listing.
type listParams struct {
	filter flashcard.Filter
	skip   int
	limit  int
}

func parseListParams(r *http.Request) (listParams, error) {
	query := r.URL.Query()
	params := listParams{
		filter: flashcard.Filter{
			Category:   query.Get("category"),
			Difficulty: query.Get("difficulty"),
			Search:     query.Get("search"),
		},
	}

	var err error
	if params.skip, err = parseNonNegative(query.Get("skip")); err != nil {
		return listParams{}, fmt.Errorf("skip %w", err)
	}
	if params.limit, err = parseNonNegative(query.Get("limit")); err != nil {
		return listParams{}, fmt.Errorf("limit %w", err)
	}
	return params, nil
}

func parseNonNegative(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return n, nil
}

// ListFlashcards handles GET /api/v1/flashcards/.
// A zero limit returns every card after skip.
func (h *Handler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	cards, err := h.repository.FindAll(r.Context())
	if err != nil {
		slog.Default().Error("failed to list flashcards", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load flashcards")
		return
	}

	cards = params.filter.Apply(cards)
	if params.skip >= len(cards) {
		cards = nil
	} else {
		cards = cards[params.skip:]
	}
	if params.limit > 0 && params.limit < len(cards) {
		cards = cards[:params.limit]
	}

	response := make([]flashcardResponse, len(cards))
	for i, card := range cards {
		response[i] = newFlashcardResponse(card)
	}
	respondJSON(w, http.StatusOK, response)
}

// CreateFlashcard handles POST /api/v1/flashcards/.
func (h *Handler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	var request flashcardCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := h.validateRequest(request); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	card := flashcard.Flashcard{
		Question: request.Question,
		Answer:   request.Answer,
		Tags:     request.Tags,
	}
	if request.Category != nil {
		card.Category = *request.Category
	}
	if request.Difficulty != nil {
		card.Difficulty = *request.Difficulty
	}

	if err := h.repository.Create(r.Context(), &card); err != nil {
		slog.Default().Error("failed to create flashcard", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create flashcard")
		return
	}
	slog.Default().Debug("flashcard created", "id", card.ID)
	respondJSON(w, http.StatusCreated, newFlashcardResponse(card))
}

// GetFlashcard handles GET /api/v1/flashcards/{id}.
func (h *Handler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	card, err := h.repository.FindByID(r.Context(), id)
	if err != nil {
		slog.Default().Error("failed to get flashcard", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load flashcard")
		return
	}
	if card == nil {
		respondError(w, http.StatusNotFound, "Flashcard not found")
		return
	}
	respondJSON(w, http.StatusOK, newFlashcardResponse(*card))
}
