package main

import (
	"fmt"

	"github.com/at-ishikawa/levelup/internal/cli"
	"github.com/at-ishikawa/levelup/internal/config"
	"github.com/at-ishikawa/levelup/internal/study"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newQuizCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "quiz",
		Short: "Generate a quiz from the flashcards and take it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			options, err := quizOptionsFromFlags(cfg.Quiz, cmd.Flags())
			if err != nil {
				return err
			}

			client := newAPIClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			controller := study.NewQuizController(client)
			if err := controller.Load(cmd.Context(), options); err != nil {
				return fmt.Errorf("controller.Load() > %w", err)
			}

			var reporter *cli.QuizReporter
			writeReport, _ := cmd.Flags().GetBool("report")
			exportPDF, _ := cmd.Flags().GetBool("pdf")
			if writeReport || exportPDF {
				reporter = cli.NewQuizReporter(cfg.Outputs.ReportDirectory, cfg.Outputs.ReportTemplate, exportPDF)
			}

			quizCLI := cli.NewQuizCLI(controller, reporter)
			return quizCLI.Run(cmd.Context(), quizCLI)
		},
	}

	addQuizFlags(command.Flags())
	return command
}

func addQuizFlags(flags *pflag.FlagSet) {
	flags.IntP("num-questions", "n", 0, "number of questions (default from quiz.num_questions)")
	flags.String("title", "", "quiz title (default from quiz.title)")
	flags.String("category", "", "only use flashcards of this category")
	flags.String("difficulty", "", "only use flashcards of this difficulty: easy, medium or hard")
	flags.Bool("report", false, "write a Markdown report after submitting")
	flags.Bool("pdf", false, "also convert the report to PDF")
}

// quizOptionsFromFlags overrides the configured defaults with the flags that were set.
func quizOptionsFromFlags(defaults config.QuizConfig, flags *pflag.FlagSet) (study.QuizOptions, error) {
	options := study.QuizOptions{
		NumQuestions: defaults.NumQuestions,
		Title:        defaults.Title,
		Category:     defaults.Category,
		Difficulty:   defaults.Difficulty,
	}

	if flags.Changed("num-questions") {
		numQuestions, err := flags.GetInt("num-questions")
		if err != nil {
			return study.QuizOptions{}, fmt.Errorf("flags.GetInt(num-questions) > %w", err)
		}
		if numQuestions < 1 || numQuestions > 50 {
			return study.QuizOptions{}, fmt.Errorf("--num-questions must be between 1 and 50, got %d", numQuestions)
		}
		options.NumQuestions = numQuestions
	}
	for name, target := range map[string]*string{
		"title":      &options.Title,
		"category":   &options.Category,
		"difficulty": &options.Difficulty,
	} {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return study.QuizOptions{}, fmt.Errorf("flags.GetString(%s) > %w", name, err)
		}
		*target = value
	}

	switch options.Difficulty {
	case "", "easy", "medium", "hard":
	default:
		return study.QuizOptions{}, fmt.Errorf("--difficulty must be one of easy, medium or hard, got %q", options.Difficulty)
	}
	return options, nil
}
