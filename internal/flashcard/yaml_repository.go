package flashcard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type deckFile struct {
	Flashcards []Flashcard `yaml:"flashcards"`
}

// YAMLRepository keeps the deck in a single YAML file. A missing file is an empty deck.
type YAMLRepository struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path, now: time.Now}
}

func (r *YAMLRepository) read() ([]Flashcard, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Flashcard{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", r.path, err)
	}

	var deck deckFile
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", r.path, err)
	}
	if deck.Flashcards == nil {
		return []Flashcard{}, nil
	}
	return deck.Flashcards, nil
}

func (r *YAMLRepository) write(cards []Flashcard) error {
	data, err := yaml.Marshal(deckFile{Flashcards: cards})
	if err != nil {
		return fmt.Errorf("yaml.Marshal() > %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(r.path), err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", r.path, err)
	}
	return nil
}

func (r *YAMLRepository) FindAll(ctx context.Context) ([]Flashcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func (r *YAMLRepository) FindByID(ctx context.Context, id string) (*Flashcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.read()
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if cards[i].ID == id {
			return &cards[i], nil
		}
	}
	return nil, nil
}

func (r *YAMLRepository) Create(ctx context.Context, card *Flashcard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.read()
	if err != nil {
		return err
	}
	if card.ID == "" {
		ids := make([]string, len(cards))
		for i, existing := range cards {
			ids[i] = existing.ID
		}
		card.ID = nextID(ids)
	}
	for _, existing := range cards {
		if existing.ID == card.ID {
			return fmt.Errorf("flashcard %s already exists", card.ID)
		}
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = r.now().UTC()
	}
	return r.write(append(cards, *card))
}
