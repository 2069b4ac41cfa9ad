package study

import "context"

//go:generate mockgen -source=loader.go -destination=../mocks/study/mock_loader.go -package=mock_study

// QuizLoader generates quizzes from the backend.
type QuizLoader interface {
	LoadQuiz(ctx context.Context, options QuizOptions) (Quiz, error)
}

// FlashcardLoader fetches the flashcard deck from the backend.
type FlashcardLoader interface {
	LoadFlashcards(ctx context.Context) ([]Flashcard, error)
}
