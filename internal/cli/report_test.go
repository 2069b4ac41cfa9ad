package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/at-ishikawa/levelup/internal/assets"
	"github.com/at-ishikawa/levelup/internal/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFileName(t *testing.T) {
	date := time.Date(2025, 3, 14, 9, 30, 5, 0, time.UTC)
	tests := []struct {
		name    string
		title   string
		attempt int
		want    string
	}{
		{name: "simple title", title: "Capitals", attempt: 1, want: "20250314-093005-capitals.md"},
		{name: "punctuation is collapsed", title: "  Go: Basics & More!", attempt: 1, want: "20250314-093005-go-basics-more.md"},
		{name: "empty title", title: "", attempt: 1, want: "20250314-093005-quiz.md"},
		{name: "later attempt gets a suffix", title: "Capitals", attempt: 2, want: "20250314-093005-capitals-2.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reportFileName(assets.QuizResultTemplate{Title: tt.title, Date: date}, tt.attempt))
		})
	}
}

func TestQuizReporter_Write(t *testing.T) {
	result := assets.QuizResultTemplate{
		QuizID:  "quiz_1",
		Title:   "Capitals",
		Date:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Summary: study.ScoreSummary{CorrectCount: 1, TotalCount: 1, Percentage: 100, Passed: true},
		Review: []study.ReviewItem{
			{Number: 1, Question: "France?", CorrectAnswer: "Paris", UserAnswer: "Paris", Answered: true, IsCorrect: true},
		},
	}

	t.Run("markdown with custom template", func(t *testing.T) {
		tmpDir := t.TempDir()
		templatePath := filepath.Join(tmpDir, "report.md.go.tmpl")
		require.NoError(t, os.WriteFile(templatePath, []byte("{{ .Title }}: {{ .Summary.Percentage }}%"), 0644))

		paths, err := NewQuizReporter(filepath.Join(tmpDir, "out"), templatePath, false).Write(result)
		require.NoError(t, err)
		require.Len(t, paths, 1)

		content, err := os.ReadFile(paths[0])
		require.NoError(t, err)
		assert.Equal(t, "Capitals: 100%", string(content))
	})

	t.Run("reports in the same second are kept", func(t *testing.T) {
		reporter := NewQuizReporter(t.TempDir(), "", false)

		first, err := reporter.Write(result)
		require.NoError(t, err)
		retake := result
		retake.Summary = study.ScoreSummary{CorrectCount: 0, TotalCount: 1, Percentage: 0}
		second, err := reporter.Write(retake)
		require.NoError(t, err)

		require.Len(t, first, 1)
		require.Len(t, second, 1)
		assert.Equal(t, "20250314-093000-capitals.md", filepath.Base(first[0]))
		assert.Equal(t, "20250314-093000-capitals-2.md", filepath.Base(second[0]))

		firstContent, err := os.ReadFile(first[0])
		require.NoError(t, err)
		assert.Contains(t, string(firstContent), "1/1 (100%)")
		secondContent, err := os.ReadFile(second[0])
		require.NoError(t, err)
		assert.Contains(t, string(secondContent), "0/1 (0%)")
	})

	t.Run("markdown and pdf", func(t *testing.T) {
		paths, err := NewQuizReporter(t.TempDir(), "", true).Write(result)
		require.NoError(t, err)
		require.Len(t, paths, 2)
		assert.Equal(t, ".md", filepath.Ext(paths[0]))
		assert.Equal(t, ".pdf", filepath.Ext(paths[1]))
		for _, path := range paths {
			_, err := os.Stat(path)
			assert.NoError(t, err)
		}
	})
}
