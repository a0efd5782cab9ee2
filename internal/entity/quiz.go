package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Quiz lists the questions generated for a chapter, split by kind.
type Quiz struct {
	ID           uuid.UUID   `json:"id"`
	MCQIDs       []uuid.UUID `json:"mcq_ids"`
	TrueFalseIDs []uuid.UUID `json:"true_false_ids"`
}

func (q Quiz) GetID() uuid.UUID { return q.ID }

// Question is a single quiz item. Options and CorrectIndex are only set for multiple choice.
type Question struct {
	ID            uuid.UUID `json:"id"`
	Question      string    `json:"question"`
	Explanation   *string   `json:"explanation,omitempty"`
	Options       []string  `json:"options,omitempty"`
	CorrectIndex  *int      `json:"correct_index,omitempty"`
	IsTrueOrFalse *bool     `json:"is_true_or_false,omitempty"`
}

func (q Question) GetID() uuid.UUID { return q.ID }

// QuizResult records the outcome of one quiz attempt.
type QuizResult struct {
	ID                uuid.UUID `json:"id"`
	CorrectMCQs       int       `json:"correct_mcqs"`
	TotalMCQs         int       `json:"total_mcqs"`
	CorrectTF         int       `json:"correct_tf"`
	TotalTF           int       `json:"total_tf"`
	DaysUntilNextQuiz int       `json:"days_until_next_quiz"`
	AllTopics         []string  `json:"all_topics"`
	IncorrectTopics   []string  `json:"incorrect_topics"`
}

func (r QuizResult) GetID() uuid.UUID { return r.ID }

// Validate enforces totals >= corrects >= 0 for both question kinds.
func (r *QuizResult) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}
	if r.CorrectMCQs < 0 || r.CorrectTF < 0 || r.TotalMCQs < r.CorrectMCQs || r.TotalTF < r.CorrectTF {
		return fmt.Errorf("%w: mcq %d/%d, tf %d/%d", ErrInvalidQuizResult, r.CorrectMCQs, r.TotalMCQs, r.CorrectTF, r.TotalTF)
	}
	return nil
}

func (r QuizResult) TotalCorrect() int { return r.CorrectMCQs + r.CorrectTF }

func (r QuizResult) TotalQuestions() int { return r.TotalMCQs + r.TotalTF }

// Accuracy is the percentage of correct answers, 0 when nothing was answered.
func (r QuizResult) Accuracy() float64 {
	return Percentage(r.TotalCorrect(), r.TotalQuestions())
}

func (r QuizResult) PerformanceLine() string {
	return fmt.Sprintf("You got %d out of %d correct", r.TotalCorrect(), r.TotalQuestions())
}

// ResultTitle picks an encouragement line from the accuracy band.
func (r QuizResult) ResultTitle() string {
	switch acc := r.Accuracy(); {
	case acc >= 90:
		return "Amazing! You're mastering this topic"
	case acc >= 70:
		return "Good job! Accuracy improving every session"
	case acc >= 50:
		return "Keep practicing! You're learning steadily"
	default:
		return "Don't worry! Every mistake teaches you something new"
	}
}

func (r QuizResult) MCQSummary() string { return fmt.Sprintf("%d/%d", r.CorrectMCQs, r.TotalMCQs) }

func (r QuizResult) TFSummary() string { return fmt.Sprintf("%d/%d", r.CorrectTF, r.TotalTF) }

func (r QuizResult) NextReminderLine() string {
	return fmt.Sprintf("Next quiz in %d days", r.DaysUntilNextQuiz)
}

// TopicsToRevise returns the topics answered incorrectly.
func (r QuizResult) TopicsToRevise() []string { return r.IncorrectTopics }

// Percentage returns 100*part/total, or 0 when total is not positive.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
