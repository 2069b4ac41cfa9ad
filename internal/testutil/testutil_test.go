package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/at-ishikawa/levelup/internal/config"
	"github.com/at-ishikawa/levelup/internal/flashcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "base_url: http://localhost:8000")

	for _, d := range []string{"reports", "data"} {
		info, err := os.Stat(filepath.Join(tmpDir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestSetupTestConfigWithAPI(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := SetupTestConfigWithAPI(t, tmpDir, "http://127.0.0.1:9999")

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.API.BaseURL)
	assert.Equal(t, uint(0), cfg.API.RetryAttempts)
	assert.Equal(t, 3, cfg.Quiz.NumQuestions)
	assert.Equal(t, "Test Quiz", cfg.Quiz.Title)
	assert.Equal(t, filepath.Join(tmpDir, "reports"), cfg.Outputs.ReportDirectory)
	assert.Equal(t, config.StorageYAML, cfg.Server.Storage)
}

func TestCreateFlashcardDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck", "flashcards.yml")
	CreateFlashcardDeck(t, path,
		flashcard.Flashcard{Question: "2 + 2", Answer: "4"},
		flashcard.Flashcard{ID: "custom", Question: "H2O", Answer: "water"},
	)

	cards, err := flashcard.NewYAMLRepository(path).FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "fc_1", cards[0].ID)
	assert.Equal(t, "custom", cards[1].ID)
}

func TestSetupTestConfig_configPathsAreAbsolute(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "report_directory:") || strings.HasPrefix(trimmed, "data_file:") {
			parts := strings.SplitN(trimmed, " ", 2)
			assert.True(t, filepath.IsAbs(parts[1]), "path should be absolute: %s", parts[1])
		}
	}
}
