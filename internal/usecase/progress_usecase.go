package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/repository"
	"github.com/eslsoft/studytrack/pkg/streak"
)

// Estimated effort per studied item.
const (
	flashcardStudyTime = time.Minute
	mcqStudyTime       = 3 * time.Minute
)

// Insight messages.
const (
	InsightNoData   = "Start your first quiz to see insights!"
	InsightBalanced = "Great balance across all subjects — keep it up!"
	insightTemplate = "Strong in %s, but focus more on %s."
)

// ProgressUsecase derives progress statistics from the study catalog.
type ProgressUsecase interface {
	ComputeProgress(ctx context.Context, usageDays []time.Time) (*entity.ProgressSummary, error)
}

// NewProgressUsecase wires the catalog repositories the aggregation reads from.
func NewProgressUsecase(
	subjects repository.SubjectRepository,
	chapters repository.ChapterRepository,
	flashcards repository.FlashcardRepository,
	quizzes repository.QuizRepository,
	results repository.QuizResultRepository,
	logger logrus.FieldLogger,
) ProgressUsecase {
	return &progressUsecase{
		subjects:   subjects,
		chapters:   chapters,
		flashcards: flashcards,
		quizzes:    quizzes,
		results:    results,
		logger:     logger.WithField("component", "progress"),
	}
}

type progressUsecase struct {
	subjects   repository.SubjectRepository
	chapters   repository.ChapterRepository
	flashcards repository.FlashcardRepository
	quizzes    repository.QuizRepository
	results    repository.QuizResultRepository
	logger     logrus.FieldLogger
}

// tally accumulates quiz answers.
type tally struct {
	correct int
	total   int
}

func (t *tally) add(r *entity.QuizResult) {
	t.correct += r.TotalCorrect()
	t.total += r.TotalQuestions()
}

func (t tally) accuracy() float64 {
	return entity.ClampPercent(entity.Percentage(t.correct, t.total))
}

func (u *progressUsecase) ComputeProgress(ctx context.Context, usageDays []time.Time) (*entity.ProgressSummary, error) {
	subjects, err := u.subjects.All(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		u.logger.WithError(err).Warn("list subjects failed, reporting empty progress")
		subjects = nil
	}

	var (
		studyTime time.Duration
		mastered  int
		overall   tally
	)
	perSubject := make(map[string]float64, len(subjects))

	// A chapter referenced by several subjects counts once per reference.
	for _, subject := range subjects {
		var scoped tally
		for _, chapterID := range subject.ChapterIDs {
			chapter, err := resolve(ctx, u.logger, u.chapters.Get, "chapter", chapterID)
			if err != nil {
				return nil, err
			}
			if chapter == nil {
				continue
			}

			minutes, err := u.chapterStudyTime(ctx, chapter)
			if err != nil {
				return nil, err
			}
			studyTime += minutes

			count, err := u.masteredCards(ctx, chapter)
			if err != nil {
				return nil, err
			}
			mastered += count

			result, err := u.lastResult(ctx, chapter)
			if err != nil {
				return nil, err
			}
			if result != nil {
				scoped.add(result)
				overall.add(result)
			}
		}
		// Keyed by name: a later subject with the same name overwrites an earlier one.
		perSubject[subject.Name] = scoped.accuracy()
	}

	return &entity.ProgressSummary{
		WeeklyStudyTime:     studyTime,
		WeeklyAccuracy:      overall.accuracy(),
		WeeklyMasteredCards: mastered,
		MonthlyStreak:       streak.TrailingRun(usageDays),
		SubjectProgress:     perSubject,
		StudyInsight:        GenerateInsight(perSubject),
	}, nil
}

func (u *progressUsecase) chapterStudyTime(ctx context.Context, chapter *entity.Chapter) (time.Duration, error) {
	total := time.Duration(len(chapter.FlashcardIDs)) * flashcardStudyTime
	if chapter.QuizID == nil {
		return total, nil
	}
	quiz, err := resolve(ctx, u.logger, u.quizzes.Get, "quiz", *chapter.QuizID)
	if err != nil {
		return 0, err
	}
	if quiz != nil {
		total += time.Duration(len(quiz.MCQIDs)) * mcqStudyTime
	}
	return total, nil
}

func (u *progressUsecase) masteredCards(ctx context.Context, chapter *entity.Chapter) (int, error) {
	count := 0
	for _, id := range chapter.FlashcardIDs {
		card, err := resolve(ctx, u.logger, u.flashcards.Get, "flashcard", id)
		if err != nil {
			return 0, err
		}
		if card != nil && card.Mastered() {
			count++
		}
	}
	return count, nil
}

func (u *progressUsecase) lastResult(ctx context.Context, chapter *entity.Chapter) (*entity.QuizResult, error) {
	if chapter.LastQuizResultID == nil {
		return nil, nil
	}
	return resolve(ctx, u.logger, u.results.Get, "quiz_result", *chapter.LastQuizResultID)
}

// GenerateInsight names the strongest and weakest subject. Names are scanned
// in lexicographic order and the first strict minimum and maximum win, so
// equal accuracies resolve to the same subject and yield the balanced message.
func GenerateInsight(progress map[string]float64) string {
	if len(progress) == 0 {
		return InsightNoData
	}
	names := lo.Keys(progress)
	sort.Strings(names)

	weakest, strongest := names[0], names[0]
	for _, name := range names[1:] {
		if progress[name] < progress[weakest] {
			weakest = name
		}
		if progress[name] > progress[strongest] {
			strongest = name
		}
	}
	if weakest == strongest {
		return InsightBalanced
	}
	return fmt.Sprintf(insightTemplate, strongest, weakest)
}
