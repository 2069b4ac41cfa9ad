package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/at-ishikawa/levelup/internal/assets"
	"github.com/at-ishikawa/levelup/internal/study"
)

const quizPrompt = "[1-9] choose, [n]ext, [p]revious, [s]ubmit, [r]eset, [q]uit > "

// openTextPrompt is shown for questions without options, where plain letters are answers.
const openTextPrompt = "type an answer, or :n next, :p previous, :s submit, :r reset, :q quit > "

const commandPrefix = ":"

const quizResultPrompt = "[r]etake or [q]uit > "

// QuizCLI drives a loaded QuizController from the terminal.
type QuizCLI struct {
	*InteractiveSession
	controller *study.QuizController
	reporter   *QuizReporter
	submitted  bool
	now        func() time.Time
	commands   map[string]func() error
}

// NewQuizCLI returns a CLI over controller. A nil reporter disables report files.
func NewQuizCLI(controller *study.QuizController, reporter *QuizReporter) *QuizCLI {
	cli := &QuizCLI{
		InteractiveSession: newInteractiveSession(),
		controller:         controller,
		reporter:           reporter,
		now:                time.Now,
	}
	cli.commands = map[string]func() error{
		"n": cli.next,
		"p": cli.previous,
		"s": cli.submit,
		"r": cli.reset,
		"q": cli.quit,
	}
	return cli
}

func (r *QuizCLI) Session(ctx context.Context) error {
	if r.submitted {
		return r.resultSession()
	}

	view, err := r.controller.View()
	if err != nil {
		return fmt.Errorf("controller.View() > %w", err)
	}
	r.printf("\n")
	if err := assets.WriteQuizQuestion(r.stdoutWriter, view); err != nil {
		return fmt.Errorf("assets.WriteQuizQuestion() > %w", err)
	}

	openText := len(view.Question.Options) == 0
	prompt := quizPrompt
	if openText {
		prompt = openTextPrompt
	}
	input, err := r.readCommand(prompt)
	if err != nil {
		return err
	}
	if command, ok := r.lookupCommand(input, openText); ok {
		return command()
	}
	return r.answer(view, input)
}

// lookupCommand accepts ":n" style commands everywhere and bare letters only
// when the question has options.
func (r *QuizCLI) lookupCommand(input string, openText bool) (func() error, bool) {
	if name, ok := strings.CutPrefix(input, commandPrefix); ok {
		command, found := r.commands[name]
		return command, found
	}
	if openText {
		return nil, false
	}
	command, found := r.commands[input]
	return command, found
}

// answer treats a number as an option choice and anything else as a free text answer.
// Free text is only accepted for questions without options.
func (r *QuizCLI) answer(view study.QuizView, input string) error {
	if input == "" {
		return nil
	}

	options := view.Question.Options
	if len(options) == 0 {
		if err := r.controller.RecordAnswer(view.Cursor, input); err != nil {
			return fmt.Errorf("controller.RecordAnswer() > %w", err)
		}
		return nil
	}

	number, err := strconv.Atoi(input)
	if err != nil || number < 1 || number > len(options) {
		r.printf("Please choose an option between 1 and %d.\n", len(options))
		return nil
	}
	if err := r.controller.SelectOption(number - 1); err != nil {
		return fmt.Errorf("controller.SelectOption() > %w", err)
	}
	return nil
}

func (r *QuizCLI) next() error {
	moved, err := r.controller.Advance()
	if err != nil {
		return fmt.Errorf("controller.Advance() > %w", err)
	}
	if !moved {
		r.printf("Already at the last question.\n")
	}
	return nil
}

func (r *QuizCLI) previous() error {
	moved, err := r.controller.Retreat()
	if err != nil {
		return fmt.Errorf("controller.Retreat() > %w", err)
	}
	if !moved {
		r.printf("Already at the first question.\n")
	}
	return nil
}

func (r *QuizCLI) reset() error {
	if err := r.controller.Reset(); err != nil {
		return fmt.Errorf("controller.Reset() > %w", err)
	}
	r.submitted = false
	r.printf("Quiz reset.\n")
	return nil
}

func (r *QuizCLI) quit() error {
	return errEnd
}

func (r *QuizCLI) submit() error {
	session, err := r.controller.Session()
	if err != nil {
		return fmt.Errorf("controller.Session() > %w", err)
	}
	summary, err := r.controller.Summarize()
	if err != nil {
		return fmt.Errorf("controller.Summarize() > %w", err)
	}
	review, err := r.controller.Review()
	if err != nil {
		return fmt.Errorf("controller.Review() > %w", err)
	}

	result := assets.QuizResultTemplate{
		QuizID:  session.ID(),
		Title:   session.Title(),
		Date:    r.now(),
		Summary: summary,
		Review:  review,
	}

	r.printf("\n")
	if summary.Passed {
		_, _ = r.green.Fprintf(r.stdoutWriter, "✅ Passed: %s\n", result.Title)
	} else {
		_, _ = r.red.Fprintf(r.stdoutWriter, "❌ Failed: %s (%d%% needed)\n", result.Title, study.PassingPercentage)
	}
	if err := assets.WriteQuizResult(r.stdoutWriter, result); err != nil {
		return fmt.Errorf("assets.WriteQuizResult() > %w", err)
	}

	if r.reporter != nil {
		paths, err := r.reporter.Write(result)
		if err != nil {
			return fmt.Errorf("reporter.Write() > %w", err)
		}
		for _, path := range paths {
			r.printf("Report written to %s\n", path)
		}
	}

	r.submitted = true
	return nil
}

func (r *QuizCLI) resultSession() error {
	input, err := r.readCommand(quizResultPrompt)
	if err != nil {
		return err
	}
	switch input {
	case "r":
		return r.reset()
	case "q":
		return errEnd
	}
	return nil
}
