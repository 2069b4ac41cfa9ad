package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/at-ishikawa/levelup/internal/assets"
	"github.com/at-ishikawa/levelup/internal/pdf"
)

// QuizReporter writes submitted quiz results as Markdown, optionally converted to PDF.
type QuizReporter struct {
	directory    string
	templatePath string
	exportPDF    bool
}

func NewQuizReporter(directory string, templatePath string, exportPDF bool) *QuizReporter {
	return &QuizReporter{
		directory:    directory,
		templatePath: templatePath,
		exportPDF:    exportPDF,
	}
}

var unsafeFileNameChars = regexp.MustCompile(`[^a-z0-9]+`)

// maxReportAttempts bounds the numbered suffixes tried for reports written in the same second.
const maxReportAttempts = 100

func reportFileName(result assets.QuizResultTemplate, attempt int) string {
	name := strings.Trim(unsafeFileNameChars.ReplaceAllString(strings.ToLower(result.Title), "-"), "-")
	if name == "" {
		name = "quiz"
	}
	if attempt > 1 {
		name = fmt.Sprintf("%s-%d", name, attempt)
	}
	return fmt.Sprintf("%s-%s.md", result.Date.Format("20060102-150405"), name)
}

// createReportFile never overwrites an earlier report.
func (reporter *QuizReporter) createReportFile(result assets.QuizResultTemplate) (*os.File, string, error) {
	for attempt := 1; attempt <= maxReportAttempts; attempt++ {
		path := filepath.Join(reporter.directory, reportFileName(result, attempt))
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("os.OpenFile(%s) > %w", path, err)
		}
		return file, path, nil
	}
	return nil, "", fmt.Errorf("too many reports named %s", reportFileName(result, 1))
}

// Write returns the paths of the files it created.
func (reporter *QuizReporter) Write(result assets.QuizResultTemplate) ([]string, error) {
	if err := os.MkdirAll(reporter.directory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", reporter.directory, err)
	}

	file, markdownPath, err := reporter.createReportFile(result)
	if err != nil {
		return nil, err
	}
	if err := assets.WriteQuizReport(file, reporter.templatePath, result); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("assets.WriteQuizReport() > %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("file.Close() > %w", err)
	}

	paths := []string{markdownPath}
	if reporter.exportPDF {
		pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath, result.Title)
		if err != nil {
			return paths, fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
		}
		paths = append(paths, pdfPath)
	}
	return paths, nil
}
