package assets

import (
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/levelup/internal/study"
)

var (
	//go:embed templates/quiz-question.go.tmpl
	quizQuestionTemplate string
	//go:embed templates/quiz-result.go.tmpl
	quizResultTemplate string
	//go:embed templates/quiz-report.md.go.tmpl
	fallbackQuizReportTemplate string
)

// QuizResultTemplate is the data of the result screen and the Markdown report.
type QuizResultTemplate struct {
	QuizID  string
	Title   string
	Date    time.Time
	Summary study.ScoreSummary
	Review  []study.ReviewItem
}

func WriteQuizQuestion(output io.Writer, view study.QuizView) error {
	tmpl, err := parseTemplateWithFallback("", "quiz-question.go.tmpl", quizQuestionTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	return execute(tmpl, output, view)
}

func WriteQuizResult(output io.Writer, data QuizResultTemplate) error {
	tmpl, err := parseTemplateWithFallback("", "quiz-result.go.tmpl", quizResultTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	return execute(tmpl, output, data)
}

// WriteQuizReport renders the Markdown report, using templatePath when it can be parsed.
func WriteQuizReport(output io.Writer, templatePath string, data QuizResultTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, "quiz-report.md.go.tmpl", fallbackQuizReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	return execute(tmpl, output, data)
}
