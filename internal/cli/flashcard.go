package cli

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/levelup/internal/assets"
	"github.com/at-ishikawa/levelup/internal/study"
)

const flashcardPrompt = "[f]lip (or enter), [n]ext, [p]revious, [r]eset, [q]uit > "

// FlashcardCLI drives a loaded FlashcardController from the terminal.
type FlashcardCLI struct {
	*InteractiveSession
	controller *study.FlashcardController
	commands   map[string]func() error
}

func NewFlashcardCLI(controller *study.FlashcardController) *FlashcardCLI {
	cli := &FlashcardCLI{
		InteractiveSession: newInteractiveSession(),
		controller:         controller,
	}
	cli.commands = map[string]func() error{
		"":  cli.flip,
		"f": cli.flip,
		"n": cli.next,
		"p": cli.previous,
		"r": cli.reset,
		"q": func() error { return errEnd },
	}
	return cli
}

func (r *FlashcardCLI) Session(ctx context.Context) error {
	view, err := r.controller.View()
	if err != nil {
		return fmt.Errorf("controller.View() > %w", err)
	}
	r.printf("\n")
	if err := assets.WriteFlashcard(r.stdoutWriter, view); err != nil {
		return fmt.Errorf("assets.WriteFlashcard() > %w", err)
	}

	input, err := r.readCommand(flashcardPrompt)
	if err != nil {
		return err
	}
	command, ok := r.commands[input]
	if !ok {
		r.printf("Unknown command %q.\n", input)
		return nil
	}
	return command()
}

func (r *FlashcardCLI) flip() error {
	if _, err := r.controller.ToggleReveal(); err != nil {
		return fmt.Errorf("controller.ToggleReveal() > %w", err)
	}
	return nil
}

func (r *FlashcardCLI) next() error {
	moved, err := r.controller.Advance()
	if err != nil {
		return fmt.Errorf("controller.Advance() > %w", err)
	}
	if !moved {
		r.printf("Already at the last card.\n")
	}
	return nil
}

func (r *FlashcardCLI) previous() error {
	moved, err := r.controller.Retreat()
	if err != nil {
		return fmt.Errorf("controller.Retreat() > %w", err)
	}
	if !moved {
		r.printf("Already at the first card.\n")
	}
	return nil
}

func (r *FlashcardCLI) reset() error {
	if err := r.controller.Reset(); err != nil {
		return fmt.Errorf("controller.Reset() > %w", err)
	}
	return nil
}
