package assets

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/at-ishikawa/levelup/internal/study"
)

//go:embed templates/flashcard.go.tmpl
var flashcardTemplate string

// WriteFlashcard renders the visible face of the current card.
// Missing categories and difficulties are shown as General and Medium.
func WriteFlashcard(output io.Writer, view study.FlashcardView) error {
	tmpl, err := parseTemplateWithFallback("", "flashcard.go.tmpl", flashcardTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	return execute(tmpl, output, view)
}
