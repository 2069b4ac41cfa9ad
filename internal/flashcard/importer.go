package flashcard

import (
	"context"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// ImportResult tracks counts for an import.
type ImportResult struct {
	New     int
	Skipped int
	Invalid int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

// Importer copies cards from one repository into another, skipping IDs the target already has.
type Importer struct {
	source   Repository
	target   Repository
	writer   io.Writer
	validate *validator.Validate
}

func NewImporter(source Repository, target Repository, writer io.Writer) *Importer {
	return &Importer{
		source:   source,
		target:   target,
		writer:   writer,
		validate: validator.New(),
	}
}

func (imp *Importer) Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	cards, err := imp.source.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.FindAll() > %w", err)
	}

	var result ImportResult
	for i := range cards {
		card := cards[i]
		if err := imp.validate.Struct(card); err != nil {
			fmt.Fprintf(imp.writer, "  [INVALID]  %s %q: %v\n", card.ID, card.Question, err)
			result.Invalid++
			continue
		}
		existing, err := imp.target.FindByID(ctx, card.ID)
		if err != nil {
			return nil, fmt.Errorf("target.FindByID(%s) > %w", card.ID, err)
		}
		if existing != nil {
			fmt.Fprintf(imp.writer, "  [SKIP]  %s %q\n", card.ID, card.Question)
			result.Skipped++
			continue
		}

		if !opts.DryRun {
			if err := imp.target.Create(ctx, &card); err != nil {
				return nil, fmt.Errorf("target.Create(%s) > %w", card.ID, err)
			}
		}
		fmt.Fprintf(imp.writer, "  [NEW]  %s %q\n", card.ID, card.Question)
		result.New++
	}
	return &result, nil
}
