package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/repository"
)

// SubjectStore is the in-memory subject repository.
type SubjectStore struct {
	*MemoryStore[entity.Subject]
}

// NewSubjectStore constructs an empty subject repository.
func NewSubjectStore() *SubjectStore {
	return &SubjectStore{MemoryStore: NewMemoryStore[entity.Subject]()}
}

func (s *SubjectStore) AddChapter(ctx context.Context, subjectID, chapterID uuid.UUID) error {
	return s.update(ctx, subjectID, func(sub *entity.Subject) {
		sub.ChapterIDs = append(sub.ChapterIDs, chapterID)
	})
}

// ChapterStore is the in-memory chapter repository.
type ChapterStore struct {
	*MemoryStore[entity.Chapter]
}

// NewChapterStore constructs an empty chapter repository.
func NewChapterStore() *ChapterStore {
	return &ChapterStore{MemoryStore: NewMemoryStore[entity.Chapter]()}
}

func (s *ChapterStore) LinkSummary(ctx context.Context, chapterID, summaryID uuid.UUID) error {
	return s.update(ctx, chapterID, func(c *entity.Chapter) { c.SummaryID = &summaryID })
}

func (s *ChapterStore) LinkQuiz(ctx context.Context, chapterID, quizID uuid.UUID) error {
	return s.update(ctx, chapterID, func(c *entity.Chapter) { c.QuizID = &quizID })
}

func (s *ChapterStore) LinkFlashcards(ctx context.Context, chapterID uuid.UUID, flashcardIDs []uuid.UUID) error {
	return s.update(ctx, chapterID, func(c *entity.Chapter) {
		c.FlashcardIDs = append(c.FlashcardIDs, flashcardIDs...)
	})
}

func (s *ChapterStore) LinkActiveRecalls(ctx context.Context, chapterID uuid.UUID, recallIDs []uuid.UUID) error {
	return s.update(ctx, chapterID, func(c *entity.Chapter) {
		c.ActiveRecallIDs = append(c.ActiveRecallIDs, recallIDs...)
	})
}

func (s *ChapterStore) LinkQuizResult(ctx context.Context, chapterID, resultID uuid.UUID) error {
	return s.update(ctx, chapterID, func(c *entity.Chapter) { c.LastQuizResultID = &resultID })
}

// FlashcardStore is the in-memory flashcard repository.
type FlashcardStore struct {
	*MemoryStore[entity.Flashcard]
}

// NewFlashcardStore constructs an empty flashcard repository.
func NewFlashcardStore() *FlashcardStore {
	return &FlashcardStore{MemoryStore: NewMemoryStore[entity.Flashcard]()}
}

func (s *FlashcardStore) AddMultiple(ctx context.Context, cards []entity.Flashcard) error {
	for i := range cards {
		if err := s.Add(ctx, &cards[i]); err != nil {
			return err
		}
	}
	return nil
}

// Stores bundles one repository per entity type. It has no global instance;
// callers construct it and pass it down.
type Stores struct {
	Subjects      *SubjectStore
	Chapters      *ChapterStore
	Summaries     *MemoryStore[entity.ChapterSummary]
	Flashcards    *FlashcardStore
	ActiveRecalls *MemoryStore[entity.ActiveRecallQuestion]
	Quizzes       *MemoryStore[entity.Quiz]
	Questions     *MemoryStore[entity.Question]
	QuizResults   *MemoryStore[entity.QuizResult]
	Activities    *MemoryStore[entity.Activity]
	DailyProgress *MemoryStore[entity.DailyProgress]
}

// NewStores constructs an empty set of in-memory repositories.
func NewStores() *Stores {
	return &Stores{
		Subjects:      NewSubjectStore(),
		Chapters:      NewChapterStore(),
		Summaries:     NewMemoryStore[entity.ChapterSummary](),
		Flashcards:    NewFlashcardStore(),
		ActiveRecalls: NewMemoryStore[entity.ActiveRecallQuestion](),
		Quizzes:       NewMemoryStore[entity.Quiz](),
		Questions:     NewMemoryStore[entity.Question](),
		QuizResults:   NewMemoryStore[entity.QuizResult](),
		Activities:    NewMemoryStore[entity.Activity](),
		DailyProgress: NewMemoryStore[entity.DailyProgress](),
	}
}

// Reset empties every repository.
func (s *Stores) Reset() {
	s.Subjects.Reset()
	s.Chapters.Reset()
	s.Summaries.Reset()
	s.Flashcards.Reset()
	s.ActiveRecalls.Reset()
	s.Quizzes.Reset()
	s.Questions.Reset()
	s.QuizResults.Reset()
	s.Activities.Reset()
	s.DailyProgress.Reset()
}

var (
	_ repository.SubjectRepository       = (*SubjectStore)(nil)
	_ repository.ChapterRepository       = (*ChapterStore)(nil)
	_ repository.FlashcardRepository     = (*FlashcardStore)(nil)
	_ repository.QuizResultRepository    = (*MemoryStore[entity.QuizResult])(nil)
	_ repository.ActivityRepository      = (*MemoryStore[entity.Activity])(nil)
	_ repository.DailyProgressRepository = (*MemoryStore[entity.DailyProgress])(nil)
)
