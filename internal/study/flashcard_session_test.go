package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlashcards(n int) []Flashcard {
	cards := make([]Flashcard, n)
	for i := range cards {
		cards[i] = Flashcard{
			ID:       string(rune('a' + i)),
			Question: "question " + string(rune('a'+i)),
			Answer:   "answer " + string(rune('a'+i)),
		}
	}
	return cards
}

func TestNewFlashcardSession(t *testing.T) {
	tests := []struct {
		name    string
		cards   []Flashcard
		wantErr bool
	}{
		{name: "valid deck", cards: newTestFlashcards(2)},
		{name: "empty deck", cards: nil, wantErr: true},
		{name: "card without answer", cards: []Flashcard{{Question: "q"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFlashcardSession(tt.cards)
			if tt.wantErr {
				require.Error(t, err)
				var loadErr *DataLoadError
				assert.ErrorAs(t, err, &loadErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, got.Cursor())
			assert.False(t, got.Revealed())
		})
	}
}

func TestFlashcardSession_ToggleReveal(t *testing.T) {
	session, err := NewFlashcardSession(newTestFlashcards(1))
	require.NoError(t, err)

	assert.Equal(t, "question a", session.Face())
	assert.True(t, session.ToggleReveal())
	assert.Equal(t, "answer a", session.Face())
	assert.False(t, session.ToggleReveal())
	assert.Equal(t, "question a", session.Face())
}

func TestFlashcardSession_Navigation(t *testing.T) {
	tests := []struct {
		name         string
		cards        int
		setup        func(s *FlashcardSession)
		move         func(s *FlashcardSession) bool
		wantMoved    bool
		wantCursor   int
		wantRevealed bool
	}{
		{
			name:         "reveal then advance shows the question face of the next card",
			cards:        2,
			setup:        func(s *FlashcardSession) { s.ToggleReveal() },
			move:         (*FlashcardSession).Advance,
			wantMoved:    true,
			wantCursor:   1,
			wantRevealed: false,
		},
		{
			name:  "reveal then retreat hides the answer",
			cards: 2,
			setup: func(s *FlashcardSession) {
				s.Advance()
				s.ToggleReveal()
			},
			move:         (*FlashcardSession).Retreat,
			wantMoved:    true,
			wantCursor:   0,
			wantRevealed: false,
		},
		{
			name:  "advance at the last card keeps the answer revealed",
			cards: 2,
			setup: func(s *FlashcardSession) {
				s.Advance()
				s.ToggleReveal()
			},
			move:         (*FlashcardSession).Advance,
			wantMoved:    false,
			wantCursor:   1,
			wantRevealed: true,
		},
		{
			name:         "retreat at the first card keeps the answer revealed",
			cards:        2,
			setup:        func(s *FlashcardSession) { s.ToggleReveal() },
			move:         (*FlashcardSession).Retreat,
			wantMoved:    false,
			wantCursor:   0,
			wantRevealed: true,
		},
		{
			name:         "single card deck never moves",
			cards:        1,
			setup:        func(s *FlashcardSession) {},
			move:         (*FlashcardSession).Advance,
			wantMoved:    false,
			wantCursor:   0,
			wantRevealed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := NewFlashcardSession(newTestFlashcards(tt.cards))
			require.NoError(t, err)
			tt.setup(session)

			assert.Equal(t, tt.wantMoved, tt.move(session))
			assert.Equal(t, tt.wantCursor, session.Cursor())
			assert.Equal(t, tt.wantRevealed, session.Revealed())
		})
	}
}

func TestFlashcardSession_RoundTrip(t *testing.T) {
	session, err := NewFlashcardSession(newTestFlashcards(3))
	require.NoError(t, err)
	session.Advance()

	require.True(t, session.Advance())
	require.True(t, session.Retreat())
	assert.Equal(t, 1, session.Cursor())

	require.True(t, session.Retreat())
	require.True(t, session.Advance())
	assert.Equal(t, 1, session.Cursor())
}

func TestFlashcardSession_Reset(t *testing.T) {
	session, err := NewFlashcardSession(newTestFlashcards(3))
	require.NoError(t, err)
	session.Advance()
	session.Advance()
	session.ToggleReveal()

	session.Reset()

	view := session.View()
	assert.Equal(t, 0, view.Cursor)
	assert.False(t, view.Revealed)
	assert.Equal(t, 3, view.Total)
	assert.True(t, view.IsFirst)
	assert.Equal(t, "a", view.Card.ID)
}
