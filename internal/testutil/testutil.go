// Package testutil provides shared test helpers for creating config files and flashcard fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/at-ishikawa/levelup/internal/flashcard"
	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file pointing at a local API.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	return SetupTestConfigWithAPI(t, tmpDir, "http://localhost:8000")
}

// SetupTestConfigWithAPI creates a config file whose API base URL is baseURL,
// typically an httptest server.
func SetupTestConfigWithAPI(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()

	dirs := []string{"reports", "data"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`api:
  base_url: %s
  timeout_seconds: 5
  retry_attempts: 0
quiz:
  num_questions: 3
  title: Test Quiz
outputs:
  report_directory: %s
server:
  address: "127.0.0.1:0"
  storage: yaml
  data_file: %s
`,
		baseURL,
		filepath.Join(tmpDir, "reports"),
		filepath.Join(tmpDir, "data", "flashcards.yml"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CreateFlashcardDeck writes cards to a YAML deck at path, assigning IDs to cards without one.
func CreateFlashcardDeck(t *testing.T, path string, cards ...flashcard.Flashcard) {
	t.Helper()

	repository := flashcard.NewYAMLRepository(path)
	for i := range cards {
		require.NoError(t, repository.Create(context.Background(), &cards[i]))
	}
}
