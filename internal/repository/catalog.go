package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/eslsoft/studytrack/internal/entity"
)

// SubjectRepository stores subjects and their ordered chapter references.
type SubjectRepository interface {
	Store[entity.Subject]
	AddChapter(ctx context.Context, subjectID, chapterID uuid.UUID) error
}

// ChapterRepository stores chapters and maintains their identifier links.
type ChapterRepository interface {
	Store[entity.Chapter]
	LinkSummary(ctx context.Context, chapterID, summaryID uuid.UUID) error
	LinkQuiz(ctx context.Context, chapterID, quizID uuid.UUID) error
	LinkFlashcards(ctx context.Context, chapterID uuid.UUID, flashcardIDs []uuid.UUID) error
	LinkActiveRecalls(ctx context.Context, chapterID uuid.UUID, recallIDs []uuid.UUID) error
	// LinkQuizResult replaces the chapter's last quiz result.
	LinkQuizResult(ctx context.Context, chapterID, resultID uuid.UUID) error
}

// FlashcardRepository stores flashcards.
type FlashcardRepository interface {
	Store[entity.Flashcard]
	AddMultiple(ctx context.Context, cards []entity.Flashcard) error
}

type (
	SummaryRepository       = Store[entity.ChapterSummary]
	ActiveRecallRepository  = Store[entity.ActiveRecallQuestion]
	QuizRepository          = Store[entity.Quiz]
	QuestionRepository      = Store[entity.Question]
	QuizResultRepository    = Store[entity.QuizResult]
	ActivityRepository      = Store[entity.Activity]
	DailyProgressRepository = Store[entity.DailyProgress]
)
