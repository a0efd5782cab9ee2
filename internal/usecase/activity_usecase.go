package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/repository"
	"github.com/eslsoft/studytrack/pkg/filterexpr"
)

const (
	activityFieldSubject = "subject"
	activityFieldChapter = "chapter"
	activityFieldDate    = "date"
)

var activitySchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.ValueKind{
		activityFieldSubject: filterexpr.KindString,
		activityFieldChapter: filterexpr.KindString,
		activityFieldDate:    filterexpr.KindTimestamp,
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     activityFieldDate,
		DefaultPrimaryDesc: true,
		FallbackKey:        activityFieldChapter,
		Fields:             []string{activityFieldDate, activityFieldSubject, activityFieldChapter},
	},
}

// ActivityUsecase manages the recent-activity feed.
type ActivityUsecase interface {
	RecordActivity(ctx context.Context, activity *entity.Activity) (*entity.Activity, error)
	GetActivity(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
	ListActivities(ctx context.Context, query *repository.ListActivityQuery) ([]entity.Activity, error)
}

// NewActivityUsecase wires the activity repository with default behaviour.
func NewActivityUsecase(repo repository.ActivityRepository, logger logrus.FieldLogger) ActivityUsecase {
	return &activityUsecase{
		repo:   repo,
		clock:  time.Now,
		logger: logger.WithField("component", "activity"),
	}
}

type activityUsecase struct {
	repo   repository.ActivityRepository
	clock  func() time.Time
	logger logrus.FieldLogger
}

func (u *activityUsecase) RecordActivity(ctx context.Context, activity *entity.Activity) (*entity.Activity, error) {
	if activity == nil {
		return nil, entity.ErrInvalidID
	}
	copy := *activity
	copy.SubjectName = strings.TrimSpace(copy.SubjectName)
	copy.ChapterName = strings.TrimSpace(copy.ChapterName)
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	if copy.Date.IsZero() {
		copy.Date = u.clock()
	}
	if err := u.repo.Add(ctx, &copy); err != nil {
		return nil, err
	}
	return &copy, nil
}

func (u *activityUsecase) GetActivity(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	if id == uuid.Nil {
		return nil, entity.ErrInvalidID
	}
	return u.repo.Get(ctx, id)
}

func (u *activityUsecase) ListActivities(ctx context.Context, query *repository.ListActivityQuery) ([]entity.Activity, error) {
	if query == nil {
		query = &repository.ListActivityQuery{}
	}
	bound, err := filterexpr.Bind(query, activitySchema)
	if err != nil {
		return nil, err
	}

	all, err := u.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.Activity, 0, len(all))
	for _, activity := range all {
		ok, err := bound.Predicate.Match(activityVars(activity))
		if err != nil {
			return nil, fmt.Errorf("filter activity %s: %w", activity.ID, err)
		}
		if ok {
			matched = append(matched, activity)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return bound.Order.Compare(func(key string) int {
			return compareActivity(matched[i], matched[j], key)
		}) < 0
	})

	if query.Limit > 0 && len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}
	return matched, nil
}

func activityVars(a entity.Activity) map[string]any {
	return map[string]any{
		activityFieldSubject: a.SubjectName,
		activityFieldChapter: a.ChapterName,
		activityFieldDate:    a.Date,
	}
}

func compareActivity(a, b entity.Activity, key string) int {
	switch key {
	case activityFieldDate:
		return a.Date.Compare(b.Date)
	case activityFieldSubject:
		return strings.Compare(a.SubjectName, b.SubjectName)
	case activityFieldChapter:
		return strings.Compare(a.ChapterName, b.ChapterName)
	default:
		return 0
	}
}
