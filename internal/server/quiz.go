package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"

	"github.com/at-ishikawa/levelup/internal/flashcard"
)

const (
	defaultNumQuestions = 10
	defaultQuizTitle    = "Generated Quiz"
	// maxDistractors is the number of wrong options added to a generated question.
	maxDistractors = 3

	questionTypeMultipleChoice = "multiple_choice"
)

type quizGenerateRequest struct {
	NumQuestions int     `json:"num_questions" validate:"omitempty,min=1,max=50"`
	Title        string  `json:"title" validate:"max=200"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	Difficulty   *string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type quizQuestionResponse struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options"`
	Type     string   `json:"type"`
}

type quizResponse struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Questions []quizQuestionResponse `json:"questions"`
}

// GenerateQuiz handles POST /api/v1/quiz/generate.
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var request quizGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := h.validateRequest(request); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	cards, err := h.repository.FindAll(r.Context())
	if err != nil {
		slog.Default().Error("failed to load flashcards for quiz", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load flashcards")
		return
	}

	var filter flashcard.Filter
	if request.Category != nil {
		filter.Category = *request.Category
	}
	if request.Difficulty != nil {
		filter.Difficulty = *request.Difficulty
	}
	candidates := filter.Apply(cards)
	if len(candidates) == 0 {
		respondError(w, http.StatusBadRequest, "No flashcards available to generate quiz")
		return
	}

	numQuestions := request.NumQuestions
	if numQuestions == 0 {
		numQuestions = defaultNumQuestions
	}
	title := request.Title
	if title == "" {
		title = defaultQuizTitle
	}

	h.mu.Lock()
	// Distractors are drawn from the whole deck, not only the filtered candidates.
	answers := distinctAnswers(cards)
	selected := shuffleWithLimit(h.rand, candidates, numQuestions)
	questions := make([]quizQuestionResponse, len(selected))
	for i, card := range selected {
		questions[i] = buildQuestion(h.rand, card, answers)
	}

	quiz := quizResponse{
		ID:        fmt.Sprintf("quiz_%d", len(h.quizzes)+1),
		Title:     title,
		Questions: questions,
	}
	h.quizzes = append(h.quizzes, quiz)
	h.mu.Unlock()
	h.metrics.quizzesGenerated.Inc()

	slog.Default().Debug("quiz generated",
		"id", quiz.ID,
		"questions", len(questions),
		"candidates", len(candidates),
	)
	respondJSON(w, http.StatusOK, quiz)
}

// ListQuizzes handles GET /api/v1/quiz/ and returns the quizzes generated since startup.
func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	quizzes := make([]quizResponse, len(h.quizzes))
	copy(quizzes, h.quizzes)
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, quizzes)
}

// buildQuestion keeps the options and type stored on the card.
// Otherwise it offers the answer plus up to maxDistractors answers of other cards.
func buildQuestion(rng *rand.Rand, card flashcard.Flashcard, answers []string) quizQuestionResponse {
	question := quizQuestionResponse{
		Question: card.Question,
		Answer:   card.Answer,
		Options:  []string(card.Options),
		Type:     card.Type,
	}
	if question.Type == "" {
		question.Type = questionTypeMultipleChoice
	}
	if len(question.Options) > 0 || question.Type != questionTypeMultipleChoice {
		if question.Options == nil {
			question.Options = []string{}
		}
		return question
	}

	distractors := make([]string, 0, len(answers))
	for _, answer := range answers {
		if answer != card.Answer {
			distractors = append(distractors, answer)
		}
	}
	options := append([]string{card.Answer}, shuffleWithLimit(rng, distractors, maxDistractors)...)
	question.Options = shuffleWithLimit(rng, options, 0)
	return question
}

func distinctAnswers(cards []flashcard.Flashcard) []string {
	seen := make(map[string]bool, len(cards))
	answers := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.Answer == "" || seen[card.Answer] {
			continue
		}
		seen[card.Answer] = true
		answers = append(answers, card.Answer)
	}
	return answers
}

// shuffleWithLimit returns a shuffled copy of items truncated to limit.
// A limit <= 0 or larger than len(items) keeps every item.
func shuffleWithLimit[T any](rng *rand.Rand, items []T, limit int) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	if limit <= 0 || limit > len(shuffled) {
		return shuffled
	}
	return shuffled[:limit]
}
