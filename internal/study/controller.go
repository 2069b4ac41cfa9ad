package study

import (
	"context"
	"log/slog"
	"sync"
)

// sessionHandle owns the active session and the generation of the latest load.
// Loads may finish out of order; only the result of the newest one is installed.
type sessionHandle[S any] struct {
	mu         sync.Mutex
	session    *S
	generation uint64
}

func (h *sessionHandle[S]) begin() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.generation++
	return h.generation
}

func (h *sessionHandle[S]) install(generation uint64, session *S) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if generation != h.generation {
		return false
	}
	h.session = session
	return true
}

func (h *sessionHandle[S]) isCurrent(generation uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return generation == h.generation
}

func (h *sessionHandle[S]) current(op string) (*S, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		return nil, &PreconditionError{Op: op, Err: ErrNoSession}
	}
	return h.session, nil
}

// QuizController binds a QuizLoader to the quiz session it produces.
type QuizController struct {
	loader QuizLoader
	handle sessionHandle[QuizSession]
}

func NewQuizController(loader QuizLoader) *QuizController {
	return &QuizController{loader: loader}
}

// Load generates a new quiz and replaces the current session with it.
// On failure the current session is kept and a *DataLoadError is returned.
func (c *QuizController) Load(ctx context.Context, options QuizOptions) error {
	generation := c.handle.begin()

	quiz, err := c.loader.LoadQuiz(ctx, options)
	if err != nil {
		if !c.handle.isCurrent(generation) {
			return ErrLoadSuperseded
		}
		return &DataLoadError{Source: "quiz", Err: err}
	}
	session, err := NewQuizSession(quiz)
	if err != nil {
		if !c.handle.isCurrent(generation) {
			return ErrLoadSuperseded
		}
		return err
	}
	if !c.handle.install(generation, session) {
		slog.Default().Debug("discarding superseded quiz load",
			"generation", generation,
			"quizID", quiz.ID,
		)
		return ErrLoadSuperseded
	}
	return nil
}

// Session returns the active session.
func (c *QuizController) Session() (*QuizSession, error) {
	return c.handle.current("Session")
}

func (c *QuizController) Advance() (bool, error) {
	session, err := c.handle.current("Advance")
	if err != nil {
		return false, err
	}
	return session.Advance(), nil
}

func (c *QuizController) Retreat() (bool, error) {
	session, err := c.handle.current("Retreat")
	if err != nil {
		return false, err
	}
	return session.Retreat(), nil
}

func (c *QuizController) RecordAnswer(questionIndex int, selectedAnswer string) error {
	session, err := c.handle.current("RecordAnswer")
	if err != nil {
		return err
	}
	return session.RecordAnswer(questionIndex, selectedAnswer)
}

func (c *QuizController) SelectOption(optionIndex int) error {
	session, err := c.handle.current("SelectOption")
	if err != nil {
		return err
	}
	return session.SelectOption(optionIndex)
}

func (c *QuizController) Summarize() (ScoreSummary, error) {
	session, err := c.handle.current("Summarize")
	if err != nil {
		return ScoreSummary{}, err
	}
	return session.Summarize(), nil
}

func (c *QuizController) Review() ([]ReviewItem, error) {
	session, err := c.handle.current("Review")
	if err != nil {
		return nil, err
	}
	return session.Review(), nil
}

func (c *QuizController) Reset() error {
	session, err := c.handle.current("Reset")
	if err != nil {
		return err
	}
	session.Reset()
	return nil
}

func (c *QuizController) View() (QuizView, error) {
	session, err := c.handle.current("View")
	if err != nil {
		return QuizView{}, err
	}
	return session.View(), nil
}

// FlashcardController binds a FlashcardLoader to the flashcard session it produces.
type FlashcardController struct {
	loader FlashcardLoader
	handle sessionHandle[FlashcardSession]
}

func NewFlashcardController(loader FlashcardLoader) *FlashcardController {
	return &FlashcardController{loader: loader}
}

// Load fetches the deck and replaces the current session with it.
// On failure the current session is kept and a *DataLoadError is returned.
func (c *FlashcardController) Load(ctx context.Context) error {
	generation := c.handle.begin()

	cards, err := c.loader.LoadFlashcards(ctx)
	if err != nil {
		if !c.handle.isCurrent(generation) {
			return ErrLoadSuperseded
		}
		return &DataLoadError{Source: "flashcards", Err: err}
	}
	session, err := NewFlashcardSession(cards)
	if err != nil {
		if !c.handle.isCurrent(generation) {
			return ErrLoadSuperseded
		}
		return err
	}
	if !c.handle.install(generation, session) {
		slog.Default().Debug("discarding superseded flashcard load",
			"generation", generation,
			"cards", len(cards),
		)
		return ErrLoadSuperseded
	}
	return nil
}

func (c *FlashcardController) Session() (*FlashcardSession, error) {
	return c.handle.current("Session")
}

func (c *FlashcardController) Advance() (bool, error) {
	session, err := c.handle.current("Advance")
	if err != nil {
		return false, err
	}
	return session.Advance(), nil
}

func (c *FlashcardController) Retreat() (bool, error) {
	session, err := c.handle.current("Retreat")
	if err != nil {
		return false, err
	}
	return session.Retreat(), nil
}

func (c *FlashcardController) ToggleReveal() (bool, error) {
	session, err := c.handle.current("ToggleReveal")
	if err != nil {
		return false, err
	}
	return session.ToggleReveal(), nil
}

func (c *FlashcardController) Reset() error {
	session, err := c.handle.current("Reset")
	if err != nil {
		return err
	}
	session.Reset()
	return nil
}

func (c *FlashcardController) View() (FlashcardView, error) {
	session, err := c.handle.current("View")
	if err != nil {
		return FlashcardView{}, err
	}
	return session.View(), nil
}
