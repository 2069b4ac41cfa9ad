package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/at-ishikawa/levelup/internal/study"
	"gopkg.in/yaml.v3"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

type flashcardOutput struct {
	ID         string   `json:"id" yaml:"id"`
	Question   string   `json:"question" yaml:"question"`
	Answer     string   `json:"answer" yaml:"answer"`
	Category   string   `json:"category,omitempty" yaml:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// WriteFlashcards prints cards in the given output format.
func WriteFlashcards(output io.Writer, cards []study.Flashcard, format string) error {
	outputs := make([]flashcardOutput, len(cards))
	for i, card := range cards {
		outputs[i] = flashcardOutput(card)
	}

	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(outputs); err != nil {
			return fmt.Errorf("encoder.Encode() > %w", err)
		}
	case OutputYAML:
		encoder := yaml.NewEncoder(output)
		encoder.SetIndent(2)
		if err := encoder.Encode(outputs); err != nil {
			return fmt.Errorf("encoder.Encode() > %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encoder.Close() > %w", err)
		}
	case OutputTable, "":
		writer := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(writer, "ID\tCATEGORY\tDIFFICULTY\tQUESTION\tTAGS")
		for _, card := range outputs {
			_, _ = fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
				card.ID,
				orDefault(card.Category, "General"),
				orDefault(card.Difficulty, "Medium"),
				card.Question,
				strings.Join(card.Tags, ","),
			)
		}
		if err := writer.Flush(); err != nil {
			return fmt.Errorf("writer.Flush() > %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q, must be one of table, json, yaml", format)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
