// Package flashcard stores the flashcard deck served by the reference backend.
package flashcard

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Flashcard is a stored card. Options and Type are optional quiz hints.
type Flashcard struct {
	ID         string     `db:"id" yaml:"id"`
	Question   string     `db:"question" yaml:"question" validate:"required"`
	Answer     string     `db:"answer" yaml:"answer" validate:"required"`
	Category   string     `db:"category" yaml:"category,omitempty"`
	Difficulty string     `db:"difficulty" yaml:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Tags       StringList `db:"tags" yaml:"tags,omitempty"`
	Options    StringList `db:"options" yaml:"options,omitempty"`
	Type       string     `db:"type" yaml:"type,omitempty"`
	CreatedAt  time.Time  `db:"created_at" yaml:"created_at"`
}

// StringList is stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal() > %w", err)
	}
	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("json.Unmarshal() > %w", err)
	}
	if len(values) == 0 {
		values = nil
	}
	*l = values
	return nil
}

// Filter narrows a deck. Empty fields match everything; comparisons ignore case.
type Filter struct {
	Category   string
	Difficulty string
	Search     string
}

func (f Filter) Match(card Flashcard) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, card.Category) {
		return false
	}
	if f.Difficulty != "" && !strings.EqualFold(f.Difficulty, card.Difficulty) {
		return false
	}
	if f.Search != "" {
		search := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(card.Question), search) &&
			!strings.Contains(strings.ToLower(card.Answer), search) {
			return false
		}
	}
	return true
}

// Apply returns the cards matching f, keeping their order.
func (f Filter) Apply(cards []Flashcard) []Flashcard {
	result := make([]Flashcard, 0, len(cards))
	for _, card := range cards {
		if f.Match(card) {
			result = append(result, card)
		}
	}
	return result
}

const idPrefix = "fc_"

// nextID returns fc_{N+1} where N is the largest numeric fc_ suffix in ids.
func nextID(ids []string) string {
	largest := 0
	for _, id := range ids {
		n, err := strconv.Atoi(strings.TrimPrefix(id, idPrefix))
		if err != nil || !strings.HasPrefix(id, idPrefix) {
			continue
		}
		largest = max(largest, n)
	}
	return fmt.Sprintf("%s%d", idPrefix, largest+1)
}
