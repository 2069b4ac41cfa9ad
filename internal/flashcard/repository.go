package flashcard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/flashcard/mock_repository.go -package=mock_flashcard

// Repository defines operations for managing flashcards.
type Repository interface {
	FindAll(ctx context.Context) ([]Flashcard, error)
	// FindByID returns nil when the card does not exist.
	FindByID(ctx context.Context, id string) (*Flashcard, error)
	// Create assigns an ID of the form fc_N when card.ID is empty.
	Create(ctx context.Context, card *Flashcard) error
}

const selectFlashcards = "SELECT id, question, answer, category, difficulty, tags, options, type, created_at FROM flashcards"

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db, now: time.Now}
}

func (r *DBRepository) FindAll(ctx context.Context) ([]Flashcard, error) {
	var cards []Flashcard
	if err := r.db.SelectContext(ctx, &cards, selectFlashcards+" ORDER BY created_at, id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(flashcards) > %w", err)
	}
	return cards, nil
}

func (r *DBRepository) FindByID(ctx context.Context, id string) (*Flashcard, error) {
	var card Flashcard
	err := r.db.GetContext(ctx, &card, selectFlashcards+" WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(flashcard) > %w", err)
	}
	return &card, nil
}

func (r *DBRepository) Create(ctx context.Context, card *Flashcard) error {
	if card.ID == "" {
		var ids []string
		if err := r.db.SelectContext(ctx, &ids, "SELECT id FROM flashcards"); err != nil {
			return fmt.Errorf("db.SelectContext(flashcard ids) > %w", err)
		}
		card.ID = nextID(ids)
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = r.now().UTC()
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO flashcards (id, question, answer, category, difficulty, tags, options, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		card.ID, card.Question, card.Answer, card.Category, card.Difficulty,
		card.Tags, card.Options, card.Type, card.CreatedAt); err != nil {
		return fmt.Errorf("db.ExecContext(insert flashcard) > %w", err)
	}
	return nil
}
