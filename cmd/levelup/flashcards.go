package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/levelup/internal/cli"
	"github.com/at-ishikawa/levelup/internal/study"
	"github.com/spf13/cobra"
)

func newFlashcardsCommand() *cobra.Command {
	flashcardsCommand := &cobra.Command{
		Use:   "flashcards",
		Short: "Flashcard commands",
	}

	flashcardsCommand.AddCommand(
		newFlashcardsStudyCommand(),
		newFlashcardsListCommand(),
		newFlashcardsShowCommand(),
		newFlashcardsCreateCommand(),
	)
	return flashcardsCommand
}

func newFlashcardsStudyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "study",
		Short: "Flip through every flashcard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := newAPIClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			controller := study.NewFlashcardController(client)
			if err := controller.Load(cmd.Context()); err != nil {
				return fmt.Errorf("controller.Load() > %w", err)
			}

			flashcardCLI := cli.NewFlashcardCLI(controller)
			return flashcardCLI.Run(cmd.Context(), flashcardCLI)
		},
	}
}

func newFlashcardsListCommand() *cobra.Command {
	var output string
	command := &cobra.Command{
		Use:   "list",
		Short: "List every flashcard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := newAPIClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			cards, err := client.LoadFlashcards(cmd.Context())
			if err != nil {
				return fmt.Errorf("client.LoadFlashcards() > %w", err)
			}
			return cli.WriteFlashcards(cmd.OutOrStdout(), cards, output)
		},
	}
	command.Flags().StringVarP(&output, "output", "o", cli.OutputTable, "output format: table, json or yaml")
	return command
}

func newFlashcardsShowCommand() *cobra.Command {
	var output string
	command := &cobra.Command{
		Use:   "show ID",
		Short: "Show a flashcard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := newAPIClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			card, err := client.GetFlashcard(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("client.GetFlashcard(%s) > %w", args[0], err)
			}
			return cli.WriteFlashcards(cmd.OutOrStdout(), []study.Flashcard{card}, output)
		},
	}
	command.Flags().StringVarP(&output, "output", "o", cli.OutputTable, "output format: table, json or yaml")
	return command
}

func newFlashcardsCreateCommand() *cobra.Command {
	var card study.Flashcard
	command := &cobra.Command{
		Use:   "create",
		Short: "Create a flashcard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			card.Question = strings.TrimSpace(card.Question)
			card.Answer = strings.TrimSpace(card.Answer)
			if card.Question == "" || card.Answer == "" {
				return errors.New("--question and --answer are required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := newAPIClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			created, err := client.CreateFlashcard(cmd.Context(), card)
			if err != nil {
				return fmt.Errorf("client.CreateFlashcard() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created flashcard %s\n", created.ID)
			return err
		},
	}
	command.Flags().StringVar(&card.Question, "question", "", "question text")
	command.Flags().StringVar(&card.Answer, "answer", "", "answer text")
	command.Flags().StringVar(&card.Category, "category", "", "category name")
	command.Flags().StringVar(&card.Difficulty, "difficulty", "", "easy, medium or hard")
	command.Flags().StringSliceVar(&card.Tags, "tags", nil, "comma separated tags")
	return command
}
