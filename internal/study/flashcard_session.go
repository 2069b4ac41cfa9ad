package study

// FlashcardSession is one browsing pass over a loaded deck.
// Each card starts on its question face.
type FlashcardSession struct {
	cards    []Flashcard
	cursor   cursor
	revealed bool
}

// FlashcardView is the read-only state the UI needs to draw the current card.
type FlashcardView struct {
	Card     Flashcard
	Cursor   int
	Total    int
	IsFirst  bool
	IsLast   bool
	Revealed bool
}

// NewFlashcardSession validates the cards and builds a session on the first card.
func NewFlashcardSession(cards []Flashcard) (*FlashcardSession, error) {
	if err := validateFlashcards(cards); err != nil {
		return nil, &DataLoadError{Source: "flashcards", Err: err}
	}
	copied := make([]Flashcard, len(cards))
	copy(copied, cards)

	return &FlashcardSession{
		cards:  copied,
		cursor: newCursor(len(copied)),
	}, nil
}

func (s *FlashcardSession) Cursor() int {
	return s.cursor.position
}

func (s *FlashcardSession) Total() int {
	return len(s.cards)
}

func (s *FlashcardSession) Revealed() bool {
	return s.revealed
}

func (s *FlashcardSession) Current() Flashcard {
	return s.cards[s.cursor.position]
}

// Face returns the text of the side currently shown.
func (s *FlashcardSession) Face() string {
	card := s.Current()
	if s.revealed {
		return card.Answer
	}
	return card.Question
}

// ToggleReveal flips the current card and returns the new reveal state.
func (s *FlashcardSession) ToggleReveal() bool {
	s.revealed = !s.revealed
	return s.revealed
}

// Advance moves to the next card, hiding its answer. At the last card nothing changes.
func (s *FlashcardSession) Advance() bool {
	if !s.cursor.advance() {
		return false
	}
	s.revealed = false
	return true
}

// Retreat moves to the previous card, hiding its answer. At the first card nothing changes.
func (s *FlashcardSession) Retreat() bool {
	if !s.cursor.retreat() {
		return false
	}
	s.revealed = false
	return true
}

func (s *FlashcardSession) Reset() {
	s.revealed = false
	s.cursor.reset()
}

func (s *FlashcardSession) View() FlashcardView {
	return FlashcardView{
		Card:     s.Current(),
		Cursor:   s.cursor.position,
		Total:    len(s.cards),
		IsFirst:  s.cursor.isFirst(),
		IsLast:   s.cursor.isLast(),
		Revealed: s.revealed,
	}
}
