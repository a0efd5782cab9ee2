package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/repository"
	"github.com/eslsoft/studytrack/pkg/streak"
)

const (
	defaultRecentLimit = 3
	recentOrderBy      = "date desc"

	greetingTemplate = "Hello, %s!"
	welcomeTemplate  = "Welcome %s! Every journey begins with one step."
)

// HomeInput carries today's figures supplied by the caller.
type HomeInput struct {
	MasteredToday     int
	StudyMinutes      int
	Accuracy          float64
	RecentActivityIDs []uuid.UUID
}

// ActivityLookup resolves feed entries by id.
type ActivityLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
}

// HomeOptions tunes home generation.
type HomeOptions struct {
	RecentLimit int
	Location    *time.Location
}

// HomeUsecase assembles the home screen model.
type HomeUsecase interface {
	BuildHomeSummary(ctx context.Context, input HomeInput, lookup ActivityLookup) (*entity.HomeSummary, error)
	GenerateHome(ctx context.Context, userName string) (*entity.HomeSummary, error)
	IsNewUser(ctx context.Context) (bool, error)
}

// NewHomeUsecase wires the usage ledger, the feed and the aggregation engine.
func NewHomeUsecase(
	ledger repository.UsageLedger,
	activities repository.ActivityRepository,
	snapshots repository.DailyProgressRepository,
	progress ProgressUsecase,
	feed ActivityUsecase,
	opts HomeOptions,
	logger logrus.FieldLogger,
) HomeUsecase {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = defaultRecentLimit
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &homeUsecase{
		ledger:     ledger,
		activities: activities,
		snapshots:  snapshots,
		progress:   progress,
		feed:       feed,
		limit:      opts.RecentLimit,
		clock:      func() time.Time { return time.Now().In(loc) },
		pickQuote:  lo.Sample[entity.StudyQuote],
		logger:     logger.WithField("component", "home"),
	}
}

type homeUsecase struct {
	ledger     repository.UsageLedger
	activities repository.ActivityRepository
	snapshots  repository.DailyProgressRepository
	progress   ProgressUsecase
	feed       ActivityUsecase
	limit      int
	clock      func() time.Time
	pickQuote  func([]entity.StudyQuote) entity.StudyQuote
	logger     logrus.FieldLogger
}

func (u *homeUsecase) BuildHomeSummary(ctx context.Context, input HomeInput, lookup ActivityLookup) (*entity.HomeSummary, error) {
	now := u.clock()

	daily := &entity.DailyProgress{
		Date:          now,
		MasteredToday: input.MasteredToday,
		StudyMinutes:  input.StudyMinutes,
		Accuracy:      input.Accuracy,
	}
	daily.Normalize()

	recent, err := u.resolveRecent(ctx, input.RecentActivityIDs, lookup)
	if err != nil {
		return nil, err
	}

	if err := u.record(ctx, now); err != nil {
		return nil, err
	}
	days, err := u.readDays(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.HomeSummary{
		DailyProgress:  daily,
		RecentActivity: recent,
		StreakDays:     streak.Current(days, now),
		TotalUsageDays: len(streak.Distinct(days)),
		Quote:          string(u.quote()),
	}, nil
}

func (u *homeUsecase) GenerateHome(ctx context.Context, userName string) (*entity.HomeSummary, error) {
	now := u.clock()

	// Must run before today is recorded.
	history, err := u.readDays(ctx)
	if err != nil {
		return nil, err
	}
	newUser := streak.Current(history, now) == 0

	if newUser {
		if err := u.record(ctx, now); err != nil {
			return nil, err
		}
		days, err := u.readDays(ctx)
		if err != nil {
			return nil, err
		}
		return &entity.HomeSummary{
			Greeting:       fmt.Sprintf(greetingTemplate, userName),
			NewUser:        true,
			RecentActivity: []entity.Activity{},
			StreakDays:     streak.Current(days, now),
			TotalUsageDays: len(streak.Distinct(days)),
			Quote:          fmt.Sprintf(welcomeTemplate, userName),
		}, nil
	}

	stats, err := u.progress.ComputeProgress(ctx, history)
	if err != nil {
		return nil, err
	}
	recent, err := u.feed.ListActivities(ctx, &repository.ListActivityQuery{OrderBy: recentOrderBy, Limit: u.limit})
	if err != nil {
		return nil, err
	}

	summary, err := u.BuildHomeSummary(ctx, HomeInput{
		MasteredToday:     stats.WeeklyMasteredCards,
		StudyMinutes:      int(stats.WeeklyStudyTime / time.Minute),
		Accuracy:          stats.WeeklyAccuracy,
		RecentActivityIDs: lo.Map(recent, func(a entity.Activity, _ int) uuid.UUID { return a.ID }),
	}, u.activities)
	if err != nil {
		return nil, err
	}
	summary.Greeting = fmt.Sprintf(greetingTemplate, userName)

	// Archived for history only; the next call computes a fresh record.
	if err := u.snapshots.Add(ctx, summary.DailyProgress); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		u.logger.WithError(err).Warn("archive daily progress failed")
	}
	return summary, nil
}

// IsNewUser reports whether today is missing from the usage ledger.
func (u *homeUsecase) IsNewUser(ctx context.Context) (bool, error) {
	days, err := u.readDays(ctx)
	if err != nil {
		return false, err
	}
	return streak.Current(days, u.clock()) == 0, nil
}

func (u *homeUsecase) resolveRecent(ctx context.Context, ids []uuid.UUID, lookup ActivityLookup) ([]entity.Activity, error) {
	if lookup == nil {
		return []entity.Activity{}, nil
	}
	var ctxErr error
	recent := lo.FilterMap(ids, func(id uuid.UUID, _ int) (entity.Activity, bool) {
		if ctxErr != nil {
			return entity.Activity{}, false
		}
		activity, err := resolve(ctx, u.logger, lookup.Get, "activity", id)
		if err != nil {
			ctxErr = err
			return entity.Activity{}, false
		}
		if activity == nil {
			return entity.Activity{}, false
		}
		return *activity, true
	})
	if ctxErr != nil {
		return nil, ctxErr
	}
	return recent, nil
}

// record stores today's usage. Ledger failures are logged and skipped.
func (u *homeUsecase) record(ctx context.Context, now time.Time) error {
	err := u.ledger.RecordDay(ctx, now)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	u.logger.WithError(err).Warn("record usage failed")
	return nil
}

// readDays returns the usage history. An unreadable ledger reads as empty.
func (u *homeUsecase) readDays(ctx context.Context) ([]time.Time, error) {
	days, err := u.ledger.Days(ctx)
	if err == nil {
		return days, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	u.logger.WithError(err).Warn("read usage history failed")
	return nil, nil
}

func (u *homeUsecase) quote() entity.StudyQuote {
	q := u.pickQuote(entity.AllStudyQuotes())
	if q == "" {
		return entity.QuoteProgress
	}
	return q
}
