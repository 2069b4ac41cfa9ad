package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/at-ishikawa/levelup/internal/flashcard"
	"github.com/at-ishikawa/levelup/internal/server"
	"github.com/at-ishikawa/levelup/internal/testutil"
	"github.com/stretchr/testify/require"
)

// setConfigFile points the global configFile at cfgPath for the duration of the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setupTestAPI serves cards from a YAML deck and points the config at the server.
func setupTestAPI(t *testing.T, cards ...flashcard.Flashcard) string {
	t.Helper()
	tmpDir := t.TempDir()
	deckPath := filepath.Join(tmpDir, "data", "flashcards.yml")
	testutil.CreateFlashcardDeck(t, deckPath, cards...)

	handler, err := server.NewHandler(flashcard.NewYAMLRepository(deckPath), server.Options{App: "LevelUp AI", Version: "test"})
	require.NoError(t, err)
	apiServer := httptest.NewServer(handler.Routes())
	t.Cleanup(apiServer.Close)

	cfgPath := testutil.SetupTestConfigWithAPI(t, tmpDir, apiServer.URL)
	setConfigFile(t, cfgPath)
	return deckPath
}
