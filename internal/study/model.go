// Package study implements quiz and flashcard study sessions: navigation, answer capture,
// scoring and reveal-state transitions over data loaded from the LevelUp API.
package study

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PassingPercentage is the minimum rounded percentage for a quiz to be passed.
const PassingPercentage = 70

// NotAnswered is shown as the user answer of questions without a response.
const NotAnswered = "not answered"

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeOpenText       QuestionType = "open_text"
	QuestionTypeTrueFalse      QuestionType = "true_false"
)

// Quiz is a generated quiz as returned by the data source.
type Quiz struct {
	ID        string
	Title     string
	Questions []Question `validate:"dive"`
}

// Question is a single quiz question. Options keep their display order.
type Question struct {
	Prompt        string `validate:"required"`
	Options       []string
	CorrectAnswer string `validate:"required"`
	Type          QuestionType
}

// Flashcard is a two-faced study card.
type Flashcard struct {
	ID         string
	Question   string `validate:"required"`
	Answer     string `validate:"required"`
	Category   string
	Difficulty string
	Tags       []string
}

// Response is the answer recorded for one question.
type Response struct {
	QuestionIndex  int
	SelectedAnswer string
	IsCorrect      bool
}

// ScoreSummary is derived from the recorded responses; it is never stored.
type ScoreSummary struct {
	CorrectCount int
	TotalCount   int
	Percentage   int
	Passed       bool
}

// ReviewItem is one line of the post-submission review.
type ReviewItem struct {
	Number        int
	Question      string
	CorrectAnswer string
	UserAnswer    string
	Answered      bool
	IsCorrect     bool
}

// QuizOptions are the parameters of a quiz generation request.
type QuizOptions struct {
	NumQuestions int
	Title        string
	Category     string
	Difficulty   string
}

type flashcardDeck struct {
	Cards []Flashcard `validate:"dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateQuiz(quiz Quiz) error {
	if len(quiz.Questions) == 0 {
		return ErrEmptyDataset
	}
	if err := validate.Struct(quiz); err != nil {
		return fmt.Errorf("validate.Struct(quiz) > %w", err)
	}
	return nil
}

func validateFlashcards(cards []Flashcard) error {
	if len(cards) == 0 {
		return ErrEmptyDataset
	}
	if err := validate.Struct(flashcardDeck{Cards: cards}); err != nil {
		return fmt.Errorf("validate.Struct(flashcards) > %w", err)
	}
	return nil
}
