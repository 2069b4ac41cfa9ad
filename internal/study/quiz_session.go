package study

import (
	"fmt"
	"math"
)

// QuizSession is one attempt at a loaded quiz.
// The question list is fixed for the lifetime of the session.
type QuizSession struct {
	id        string
	title     string
	questions []Question
	cursor    cursor
	responses map[int]Response
}

// QuizView is the read-only state the UI needs to draw the current question.
type QuizView struct {
	Title        string
	Question     Question
	Cursor       int
	Total        int
	IsFirst      bool
	IsLast       bool
	Selected     string
	HasSelection bool
}

// NewQuizSession validates the quiz and builds a session positioned on the first question.
func NewQuizSession(quiz Quiz) (*QuizSession, error) {
	if err := validateQuiz(quiz); err != nil {
		return nil, &DataLoadError{Source: "quiz", Err: err}
	}
	questions := make([]Question, len(quiz.Questions))
	copy(questions, quiz.Questions)

	return &QuizSession{
		id:        quiz.ID,
		title:     quiz.Title,
		questions: questions,
		cursor:    newCursor(len(questions)),
		responses: make(map[int]Response),
	}, nil
}

func (s *QuizSession) ID() string {
	return s.id
}

func (s *QuizSession) Title() string {
	return s.title
}

func (s *QuizSession) Cursor() int {
	return s.cursor.position
}

func (s *QuizSession) Total() int {
	return len(s.questions)
}

// Current returns the question at the cursor.
func (s *QuizSession) Current() Question {
	return s.questions[s.cursor.position]
}

// Advance moves to the next question. It is a no-op on the last question.
func (s *QuizSession) Advance() bool {
	return s.cursor.advance()
}

// Retreat moves to the previous question. It is a no-op on the first question.
func (s *QuizSession) Retreat() bool {
	return s.cursor.retreat()
}

// RecordAnswer stores the answer for the question at questionIndex, replacing any earlier one.
func (s *QuizSession) RecordAnswer(questionIndex int, selectedAnswer string) error {
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return &PreconditionError{
			Op:     "RecordAnswer",
			Reason: fmt.Sprintf("question index %d out of range [0, %d)", questionIndex, len(s.questions)),
		}
	}
	s.responses[questionIndex] = Response{
		QuestionIndex:  questionIndex,
		SelectedAnswer: selectedAnswer,
		IsCorrect:      selectedAnswer == s.questions[questionIndex].CorrectAnswer,
	}
	return nil
}

// SelectOption records the option at optionIndex of the current question as its answer.
func (s *QuizSession) SelectOption(optionIndex int) error {
	options := s.Current().Options
	if optionIndex < 0 || optionIndex >= len(options) {
		return &PreconditionError{
			Op:     "SelectOption",
			Reason: fmt.Sprintf("option index %d out of range [0, %d)", optionIndex, len(options)),
		}
	}
	return s.RecordAnswer(s.cursor.position, options[optionIndex])
}

// Response returns the recorded response for questionIndex, if any.
func (s *QuizSession) Response(questionIndex int) (Response, bool) {
	response, ok := s.responses[questionIndex]
	return response, ok
}

// AnsweredCount returns how many questions have a recorded response.
func (s *QuizSession) AnsweredCount() int {
	return len(s.responses)
}

// Summarize tallies the recorded responses. Unanswered questions count as incorrect.
func (s *QuizSession) Summarize() ScoreSummary {
	correct := 0
	for _, response := range s.responses {
		if response.IsCorrect {
			correct++
		}
	}
	total := len(s.questions)
	percentage := int(math.Round(float64(correct) / float64(total) * 100))
	return ScoreSummary{
		CorrectCount: correct,
		TotalCount:   total,
		Percentage:   percentage,
		Passed:       percentage >= PassingPercentage,
	}
}

// Review lists every question with the user's answer, in question order.
func (s *QuizSession) Review() []ReviewItem {
	items := make([]ReviewItem, len(s.questions))
	for i, question := range s.questions {
		item := ReviewItem{
			Number:        i + 1,
			Question:      question.Prompt,
			CorrectAnswer: question.CorrectAnswer,
			UserAnswer:    NotAnswered,
		}
		if response, ok := s.responses[i]; ok {
			item.UserAnswer = response.SelectedAnswer
			item.Answered = true
			item.IsCorrect = response.IsCorrect
		}
		items[i] = item
	}
	return items
}

// Reset clears every response and returns to the first question.
func (s *QuizSession) Reset() {
	s.responses = make(map[int]Response)
	s.cursor.reset()
}

// View returns the state of the current question for rendering.
func (s *QuizSession) View() QuizView {
	view := QuizView{
		Title:    s.title,
		Question: s.Current(),
		Cursor:   s.cursor.position,
		Total:    len(s.questions),
		IsFirst:  s.cursor.isFirst(),
		IsLast:   s.cursor.isLast(),
	}
	if response, ok := s.responses[s.cursor.position]; ok {
		view.Selected = response.SelectedAnswer
		view.HasSelection = true
	}
	return view
}
