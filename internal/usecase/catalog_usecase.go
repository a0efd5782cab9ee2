package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/repository"
)

// CatalogUsecase maintains subjects, chapters and the material linked to them.
type CatalogUsecase interface {
	AddSubject(ctx context.Context, name string) (*entity.Subject, error)
	AddChapter(ctx context.Context, subjectID uuid.UUID, chapter *entity.Chapter) (*entity.Chapter, error)
	AttachSummary(ctx context.Context, chapterID uuid.UUID, summary *entity.ChapterSummary) error
	AddFlashcards(ctx context.Context, chapterID uuid.UUID, cards []entity.Flashcard) ([]entity.Flashcard, error)
	AddActiveRecalls(ctx context.Context, chapterID uuid.UUID, questions []entity.ActiveRecallQuestion) error
	AttachQuiz(ctx context.Context, chapterID uuid.UUID, quiz *entity.Quiz, questions []entity.Question) error
	RecordQuizResult(ctx context.Context, chapterID uuid.UUID, result *entity.QuizResult) (*entity.QuizResult, error)
	DeleteSubject(ctx context.Context, id uuid.UUID) error
}

// CatalogRepositories groups the stores the catalog writes to.
type CatalogRepositories struct {
	Subjects      repository.SubjectRepository
	Chapters      repository.ChapterRepository
	Summaries     repository.SummaryRepository
	Flashcards    repository.FlashcardRepository
	ActiveRecalls repository.ActiveRecallRepository
	Quizzes       repository.QuizRepository
	Questions     repository.QuestionRepository
	QuizResults   repository.QuizResultRepository
}

// NewCatalogUsecase wires the catalog repositories and the activity feed.
func NewCatalogUsecase(repos CatalogRepositories, feed ActivityUsecase, logger logrus.FieldLogger) CatalogUsecase {
	return &catalogUsecase{
		repos:  repos,
		feed:   feed,
		clock:  time.Now,
		logger: logger.WithField("component", "catalog"),
	}
}

type catalogUsecase struct {
	repos  CatalogRepositories
	feed   ActivityUsecase
	clock  func() time.Time
	logger logrus.FieldLogger
}

func (u *catalogUsecase) AddSubject(ctx context.Context, name string) (*entity.Subject, error) {
	subject := entity.NewSubject(name)
	subject.Normalize()
	if err := subject.Validate(); err != nil {
		return nil, err
	}
	if err := u.repos.Subjects.Add(ctx, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

func (u *catalogUsecase) AddChapter(ctx context.Context, subjectID uuid.UUID, chapter *entity.Chapter) (*entity.Chapter, error) {
	if chapter == nil {
		return nil, entity.ErrInvalidID
	}
	subject, err := u.requireSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	copy := *chapter
	copy.Name = strings.TrimSpace(copy.Name)
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	copy.Normalize(now)

	if err := u.repos.Chapters.Add(ctx, &copy); err != nil {
		return nil, err
	}
	if err := u.repos.Subjects.AddChapter(ctx, subject.ID, copy.ID); err != nil {
		return nil, err
	}
	u.track(ctx, subject.Name, copy.Name, now)
	return &copy, nil
}

func (u *catalogUsecase) AttachSummary(ctx context.Context, chapterID uuid.UUID, summary *entity.ChapterSummary) error {
	if summary == nil {
		return entity.ErrInvalidID
	}
	if _, err := u.requireChapter(ctx, chapterID); err != nil {
		return err
	}
	if summary.ID == uuid.Nil {
		summary.ID = uuid.New()
	}
	if err := u.repos.Summaries.Add(ctx, summary); err != nil {
		return err
	}
	return u.repos.Chapters.LinkSummary(ctx, chapterID, summary.ID)
}

func (u *catalogUsecase) AddFlashcards(ctx context.Context, chapterID uuid.UUID, cards []entity.Flashcard) ([]entity.Flashcard, error) {
	if _, err := u.requireChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	stored := lo.Map(cards, func(card entity.Flashcard, _ int) entity.Flashcard {
		if card.ID == uuid.Nil {
			card.ID = uuid.New()
		}
		return card
	})
	if err := u.repos.Flashcards.AddMultiple(ctx, stored); err != nil {
		return nil, err
	}
	ids := lo.Map(stored, func(card entity.Flashcard, _ int) uuid.UUID { return card.ID })
	if err := u.repos.Chapters.LinkFlashcards(ctx, chapterID, ids); err != nil {
		return nil, err
	}
	return stored, nil
}

func (u *catalogUsecase) AddActiveRecalls(ctx context.Context, chapterID uuid.UUID, questions []entity.ActiveRecallQuestion) error {
	if _, err := u.requireChapter(ctx, chapterID); err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		if err := u.repos.ActiveRecalls.Add(ctx, &q); err != nil {
			return err
		}
		ids = append(ids, q.ID)
	}
	return u.repos.Chapters.LinkActiveRecalls(ctx, chapterID, ids)
}

func (u *catalogUsecase) AttachQuiz(ctx context.Context, chapterID uuid.UUID, quiz *entity.Quiz, questions []entity.Question) error {
	if quiz == nil {
		return entity.ErrInvalidID
	}
	if _, err := u.requireChapter(ctx, chapterID); err != nil {
		return err
	}
	copy := *quiz
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	copy.MCQIDs = append([]uuid.UUID(nil), copy.MCQIDs...)
	copy.TrueFalseIDs = append([]uuid.UUID(nil), copy.TrueFalseIDs...)
	for _, q := range questions {
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		if err := u.repos.Questions.Add(ctx, &q); err != nil {
			return err
		}
		if q.IsTrueOrFalse != nil {
			copy.TrueFalseIDs = append(copy.TrueFalseIDs, q.ID)
		} else {
			copy.MCQIDs = append(copy.MCQIDs, q.ID)
		}
	}
	if err := u.repos.Quizzes.Add(ctx, &copy); err != nil {
		return err
	}
	*quiz = copy
	return u.repos.Chapters.LinkQuiz(ctx, chapterID, copy.ID)
}

// RecordQuizResult stores result and makes it the chapter's last result,
// replacing any earlier one.
func (u *catalogUsecase) RecordQuizResult(ctx context.Context, chapterID uuid.UUID, result *entity.QuizResult) (*entity.QuizResult, error) {
	if result == nil {
		return nil, entity.ErrInvalidQuizResult
	}
	chapter, err := u.requireChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	copy := *result
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	if err := copy.Validate(); err != nil {
		return nil, err
	}
	if err := u.repos.QuizResults.Add(ctx, &copy); err != nil {
		return nil, err
	}
	if err := u.repos.Chapters.LinkQuizResult(ctx, chapterID, copy.ID); err != nil {
		return nil, err
	}

	subjectName, err := u.owningSubject(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	u.track(ctx, subjectName, chapter.Name, u.clock())
	return &copy, nil
}

func (u *catalogUsecase) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	if _, err := u.requireSubject(ctx, id); err != nil {
		return err
	}
	return u.repos.Subjects.Delete(ctx, id)
}

func (u *catalogUsecase) requireSubject(ctx context.Context, id uuid.UUID) (*entity.Subject, error) {
	if id == uuid.Nil {
		return nil, entity.ErrInvalidID
	}
	subject, err := u.repos.Subjects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrSubjectNotFound, id)
	}
	return subject, nil
}

func (u *catalogUsecase) requireChapter(ctx context.Context, id uuid.UUID) (*entity.Chapter, error) {
	if id == uuid.Nil {
		return nil, entity.ErrInvalidID
	}
	chapter, err := u.repos.Chapters.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrChapterNotFound, id)
	}
	return chapter, nil
}

// owningSubject returns the name of the first subject referencing chapterID.
func (u *catalogUsecase) owningSubject(ctx context.Context, chapterID uuid.UUID) (string, error) {
	subjects, err := u.repos.Subjects.All(ctx)
	if err != nil {
		return "", err
	}
	subject, ok := lo.Find(subjects, func(s entity.Subject) bool {
		return lo.Contains(s.ChapterIDs, chapterID)
	})
	if !ok {
		return "", nil
	}
	return subject.Name, nil
}

// track appends a feed entry. Feed failures never fail the catalog write.
func (u *catalogUsecase) track(ctx context.Context, subject, chapter string, at time.Time) {
	if u.feed == nil {
		return
	}
	if _, err := u.feed.RecordActivity(ctx, &entity.Activity{
		SubjectName: subject,
		ChapterName: chapter,
		Date:        at,
	}); err != nil {
		u.logger.WithError(err).WithField("chapter", chapter).Warn("record activity failed")
	}
}
