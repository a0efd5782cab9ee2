package entity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestQuizResultAccuracy(t *testing.T) {
	r := QuizResult{ID: uuid.New(), CorrectMCQs: 8, TotalMCQs: 10, CorrectTF: 4, TotalTF: 5}
	if got := r.Accuracy(); got != 80 {
		t.Fatalf("expected 80, got %v", got)
	}
	if r.PerformanceLine() != "You got 12 out of 15 correct" {
		t.Fatalf("unexpected performance line %q", r.PerformanceLine())
	}
	if r.MCQSummary() != "8/10" || r.TFSummary() != "4/5" {
		t.Fatalf("unexpected summaries %s %s", r.MCQSummary(), r.TFSummary())
	}
	if (QuizResult{}).Accuracy() != 0 {
		t.Fatal("empty result must have zero accuracy")
	}
}

func TestQuizResultTitleBands(t *testing.T) {
	cases := []struct {
		correct int
		want    string
	}{
		{9, "Amazing! You're mastering this topic"},
		{7, "Good job! Accuracy improving every session"},
		{5, "Keep practicing! You're learning steadily"},
		{4, "Don't worry! Every mistake teaches you something new"},
	}
	for _, tc := range cases {
		r := QuizResult{CorrectMCQs: tc.correct, TotalMCQs: 10}
		if got := r.ResultTitle(); got != tc.want {
			t.Errorf("%d/10: expected %q, got %q", tc.correct, tc.want, got)
		}
	}
}

func TestQuizResultValidate(t *testing.T) {
	valid := QuizResult{ID: uuid.New(), CorrectMCQs: 2, TotalMCQs: 2}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	noID := QuizResult{}
	if err := noID.Validate(); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	for _, r := range []QuizResult{
		{ID: uuid.New(), CorrectMCQs: 3, TotalMCQs: 2},
		{ID: uuid.New(), CorrectTF: -1, TotalTF: 2},
	} {
		if err := r.Validate(); !errors.Is(err, ErrInvalidQuizResult) {
			t.Errorf("expected ErrInvalidQuizResult for %+v, got %v", r, err)
		}
	}
}

func TestDailyProgressNormalize(t *testing.T) {
	p := DailyProgress{MasteredToday: -2, StudyMinutes: 135, Accuracy: 120.4}
	p.Normalize()
	if p.ID == uuid.Nil || p.MasteredToday != 0 || p.Accuracy != 100 {
		t.Fatalf("unexpected normalized progress %+v", p)
	}
	if p.FormattedStudyTime() != "Studied 2h 15m today" {
		t.Fatalf("unexpected study time %q", p.FormattedStudyTime())
	}
	if p.FormattedAccuracy() != "Quiz accuracy: 100%" || p.FormattedMastered() != "Mastered 0 flashcards" {
		t.Fatalf("unexpected lines %q %q", p.FormattedAccuracy(), p.FormattedMastered())
	}
}

func TestStorageError(t *testing.T) {
	inner := errors.New("boom")
	err := error(&StorageError{Op: "load snapshot", Path: "/tmp/x", Err: inner})
	if !errors.Is(err, inner) || !IsStorageError(err) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if err.Error() != "storage load snapshot /tmp/x: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
