package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"

	adapter "github.com/eslsoft/studytrack/internal/adapter/repository"
	"github.com/eslsoft/studytrack/internal/entity"
)

func newTestCatalog(t *testing.T) (CatalogUsecase, *adapter.Stores) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	stores := adapter.NewStores()
	feed := NewActivityUsecase(stores.Activities, logger)
	uc := NewCatalogUsecase(CatalogRepositories{
		Subjects:      stores.Subjects,
		Chapters:      stores.Chapters,
		Summaries:     stores.Summaries,
		Flashcards:    stores.Flashcards,
		ActiveRecalls: stores.ActiveRecalls,
		Quizzes:       stores.Quizzes,
		Questions:     stores.Questions,
		QuizResults:   stores.QuizResults,
	}, feed, logger)
	uc.(*catalogUsecase).clock = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return uc, stores
}

func TestAddSubjectValidatesName(t *testing.T) {
	uc, stores := newTestCatalog(t)
	if _, err := uc.AddSubject(context.Background(), "   "); !errors.Is(err, entity.ErrInvalidSubjectName) {
		t.Fatalf("expected ErrInvalidSubjectName, got %v", err)
	}
	got, err := uc.AddSubject(context.Background(), " Math ")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Math" || stores.Subjects.Len() != 1 {
		t.Fatalf("unexpected subject %+v", got)
	}
}

func TestAddChapterLinksSubjectAndRecordsActivity(t *testing.T) {
	ctx := context.Background()
	uc, stores := newTestCatalog(t)

	if _, err := uc.AddChapter(ctx, uuid.New(), &entity.Chapter{Name: "Orphan"}); !errors.Is(err, entity.ErrSubjectNotFound) {
		t.Fatalf("expected ErrSubjectNotFound, got %v", err)
	}

	subject, err := uc.AddSubject(ctx, "Math")
	if err != nil {
		t.Fatal(err)
	}
	chapter, err := uc.AddChapter(ctx, subject.ID, &entity.Chapter{Name: "Limits"})
	if err != nil {
		t.Fatal(err)
	}
	if chapter.CreatedOn.IsZero() || chapter.FlashcardIDs == nil {
		t.Fatalf("chapter not normalized: %+v", chapter)
	}

	stored, _ := stores.Subjects.Get(ctx, subject.ID)
	if stored.ChapterCount() != 1 || stored.ChapterIDs[0] != chapter.ID {
		t.Fatalf("subject not linked: %+v", stored)
	}
	feed, _ := stores.Activities.All(ctx)
	if len(feed) != 1 || feed[0].SubjectName != "Math" || feed[0].ChapterName != "Limits" {
		t.Fatalf("expected one activity, got %+v", feed)
	}
}

func TestRecordQuizResultReplacesLast(t *testing.T) {
	ctx := context.Background()
	uc, stores := newTestCatalog(t)
	subject, _ := uc.AddSubject(ctx, "Physics")
	chapter, _ := uc.AddChapter(ctx, subject.ID, &entity.Chapter{Name: "Waves"})

	if _, err := uc.RecordQuizResult(ctx, chapter.ID, &entity.QuizResult{CorrectMCQs: 5, TotalMCQs: 3}); !errors.Is(err, entity.ErrInvalidQuizResult) {
		t.Fatalf("expected ErrInvalidQuizResult, got %v", err)
	}
	if _, err := uc.RecordQuizResult(ctx, uuid.New(), &entity.QuizResult{}); !errors.Is(err, entity.ErrChapterNotFound) {
		t.Fatalf("expected ErrChapterNotFound, got %v", err)
	}

	first, err := uc.RecordQuizResult(ctx, chapter.ID, &entity.QuizResult{CorrectMCQs: 1, TotalMCQs: 2})
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.RecordQuizResult(ctx, chapter.ID, &entity.QuizResult{CorrectTF: 2, TotalTF: 2})
	if err != nil {
		t.Fatal(err)
	}
	stored, _ := stores.Chapters.Get(ctx, chapter.ID)
	if stored.LastQuizResultID == nil || *stored.LastQuizResultID != second.ID {
		t.Fatalf("expected last result %s, got %v", second.ID, stored.LastQuizResultID)
	}
	if kept, _ := stores.QuizResults.Get(ctx, first.ID); kept == nil {
		t.Fatal("earlier result should stay in the result repository")
	}
	feed, _ := stores.Activities.All(ctx)
	if len(feed) != 3 || feed[2].SubjectName != "Physics" {
		t.Fatalf("expected quiz activity under Physics, got %+v", feed)
	}
}

func TestAttachMaterial(t *testing.T) {
	ctx := context.Background()
	uc, stores := newTestCatalog(t)
	subject, _ := uc.AddSubject(ctx, "Biology")
	chapter, _ := uc.AddChapter(ctx, subject.ID, &entity.Chapter{Name: "Cells"})

	cards, err := uc.AddFlashcards(ctx, chapter.ID, []entity.Flashcard{{Question: "a"}, {Question: "b", IsFlipped: true}})
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 2 || cards[0].ID == uuid.Nil {
		t.Fatalf("expected ids assigned, got %+v", cards)
	}

	truth := true
	quiz := &entity.Quiz{}
	err = uc.AttachQuiz(ctx, chapter.ID, quiz, []entity.Question{
		{Question: "2+2?", Options: []string{"3", "4"}},
		{Question: "Cells have walls", IsTrueOrFalse: &truth},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(quiz.MCQIDs) != 1 || len(quiz.TrueFalseIDs) != 1 {
		t.Fatalf("expected questions split by kind, got %+v", quiz)
	}

	if err := uc.AttachSummary(ctx, chapter.ID, &entity.ChapterSummary{}); err != nil {
		t.Fatal(err)
	}
	if err := uc.AddActiveRecalls(ctx, chapter.ID, []entity.ActiveRecallQuestion{{Question: "Define osmosis"}}); err != nil {
		t.Fatal(err)
	}

	stored, _ := stores.Chapters.Get(ctx, chapter.ID)
	if len(stored.FlashcardIDs) != 2 || stored.QuizID == nil || *stored.QuizID != quiz.ID || stored.SummaryID == nil || len(stored.ActiveRecallIDs) != 1 {
		t.Fatalf("chapter links incomplete: %+v", stored)
	}
	if stores.Questions.Len() != 2 {
		t.Fatalf("expected 2 stored questions, got %d", stores.Questions.Len())
	}
}

func TestDeleteSubject(t *testing.T) {
	ctx := context.Background()
	uc, stores := newTestCatalog(t)
	subject, _ := uc.AddSubject(ctx, "Law")
	if err := uc.DeleteSubject(ctx, subject.ID); err != nil {
		t.Fatal(err)
	}
	if stores.Subjects.Len() != 0 {
		t.Fatal("subject not deleted")
	}
	if err := uc.DeleteSubject(ctx, subject.ID); !errors.Is(err, entity.ErrSubjectNotFound) {
		t.Fatalf("expected ErrSubjectNotFound, got %v", err)
	}
}
