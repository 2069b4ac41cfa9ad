package apiclient

import (
	"fmt"

	"github.com/at-ishikawa/levelup/internal/study"
)

// QuizGenerateRequest is the body of POST /api/v1/quiz/generate.
// Category and Difficulty are sent as null when empty.
type QuizGenerateRequest struct {
	NumQuestions int     `json:"num_questions"`
	Title        string  `json:"title"`
	Category     *string `json:"category"`
	Difficulty   *string `json:"difficulty"`
}

type QuizResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Questions []QuestionResponse `json:"questions"`
}

type QuestionResponse struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options"`
	Type     string   `json:"type"`
}

type FlashcardResponse struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   string   `json:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// FlashcardCreateRequest is the body of POST /api/v1/flashcards/.
type FlashcardCreateRequest struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   *string  `json:"category"`
	Difficulty string   `json:"difficulty,omitempty"`
	Tags       []string `json:"tags"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Body)
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func (r QuizResponse) toQuiz() study.Quiz {
	questions := make([]study.Question, len(r.Questions))
	for i, q := range r.Questions {
		questionType := study.QuestionType(q.Type)
		if questionType == "" {
			questionType = study.QuestionTypeMultipleChoice
		}
		questions[i] = study.Question{
			Prompt:        q.Question,
			Options:       q.Options,
			CorrectAnswer: q.Answer,
			Type:          questionType,
		}
	}
	return study.Quiz{
		ID:        r.ID,
		Title:     r.Title,
		Questions: questions,
	}
}

func (r FlashcardResponse) toFlashcard() study.Flashcard {
	return study.Flashcard{
		ID:         r.ID,
		Question:   r.Question,
		Answer:     r.Answer,
		Category:   r.Category,
		Difficulty: r.Difficulty,
		Tags:       r.Tags,
	}
}
