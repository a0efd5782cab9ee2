package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	adapter "github.com/eslsoft/studytrack/internal/adapter/repository"
	"github.com/eslsoft/studytrack/internal/entity"
)

type fakeLedger struct {
	mu        sync.RWMutex
	days      map[string]time.Time
	recordErr error
	daysErr   error
	records   int
}

func newFakeLedger(days ...time.Time) *fakeLedger {
	l := &fakeLedger{days: make(map[string]time.Time)}
	for _, d := range days {
		l.days[d.Format(time.DateOnly)] = d
	}
	return l
}

func (l *fakeLedger) RecordDay(ctx context.Context, t time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records++
	if l.recordErr != nil {
		return l.recordErr
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	l.days[day.Format(time.DateOnly)] = day
	return nil
}

func (l *fakeLedger) Days(ctx context.Context) ([]time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.daysErr != nil {
		return nil, l.daysErr
	}
	out := make([]time.Time, 0, len(l.days))
	for _, d := range l.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

type homeFixture struct {
	uc     HomeUsecase
	impl   *homeUsecase
	stores *adapter.Stores
	ledger *fakeLedger
	hook   *test.Hook
}

var homeNow = time.Date(2024, 1, 3, 18, 30, 0, 0, time.UTC)

func newHomeFixture(t *testing.T, ledger *fakeLedger, limit int) *homeFixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	stores := adapter.NewStores()
	progress := NewProgressUsecase(stores.Subjects, stores.Chapters, stores.Flashcards, stores.Quizzes, stores.QuizResults, logger)
	feed := NewActivityUsecase(stores.Activities, logger)
	uc := NewHomeUsecase(ledger, stores.Activities, stores.DailyProgress, progress, feed, HomeOptions{RecentLimit: limit, Location: time.UTC}, logger)
	impl := uc.(*homeUsecase)
	impl.clock = func() time.Time { return homeNow }
	impl.pickQuote = func(q []entity.StudyQuote) entity.StudyQuote { return q[len(q)-1] }
	return &homeFixture{uc: uc, impl: impl, stores: stores, ledger: ledger, hook: hook}
}

func (f *homeFixture) addActivity(t *testing.T, subject string, at time.Time) entity.Activity {
	t.Helper()
	a := entity.Activity{ID: uuid.New(), SubjectName: subject, ChapterName: subject + " ch", Date: at}
	if err := f.stores.Activities.Add(context.Background(), &a); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestBuildHomeSummaryResolvesRecentInOrder(t *testing.T) {
	f := newHomeFixture(t, newFakeLedger(), 0)
	a := f.addActivity(t, "A", homeNow)
	c := f.addActivity(t, "C", homeNow)

	got, err := f.uc.BuildHomeSummary(context.Background(), HomeInput{
		RecentActivityIDs: []uuid.UUID{a.ID, uuid.New(), c.ID},
	}, f.stores.Activities)
	if err != nil {
		t.Fatalf("BuildHomeSummary returned error: %v", err)
	}
	if len(got.RecentActivity) != 2 || got.RecentActivity[0].ID != a.ID || got.RecentActivity[1].ID != c.ID {
		t.Fatalf("expected [A C], got %+v", got.RecentActivity)
	}
}

func TestBuildHomeSummaryStreakAndUsage(t *testing.T) {
	ledger := newFakeLedger(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	)
	f := newHomeFixture(t, ledger, 0)
	ctx := context.Background()

	got, err := f.uc.BuildHomeSummary(ctx, HomeInput{MasteredToday: 4, StudyMinutes: 75, Accuracy: 82.5}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.StreakDays != 3 || got.TotalUsageDays != 3 {
		t.Fatalf("expected streak 3 / total 3, got %d / %d", got.StreakDays, got.TotalUsageDays)
	}
	if got.Quote != string(entity.QuoteBuild) {
		t.Fatalf("unexpected quote %q", got.Quote)
	}
	p := got.DailyProgress
	if p == nil || p.MasteredToday != 4 || p.StudyMinutes != 75 || p.Accuracy != 82.5 || !p.Date.Equal(homeNow) {
		t.Fatalf("unexpected daily progress %+v", p)
	}
	if p.FormattedStudyTime() != "Studied 1h 15m today" {
		t.Fatalf("unexpected study time line %q", p.FormattedStudyTime())
	}

	again, err := f.uc.BuildHomeSummary(ctx, HomeInput{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if again.TotalUsageDays != 3 {
		t.Fatalf("recording the same day twice must be a no-op, got %d days", again.TotalUsageDays)
	}
	if got.DailyProgress.ID == again.DailyProgress.ID {
		t.Fatal("daily progress must be freshly built per call")
	}
}

func TestBuildHomeSummaryClampsInputs(t *testing.T) {
	f := newHomeFixture(t, newFakeLedger(), 0)
	got, err := f.uc.BuildHomeSummary(context.Background(), HomeInput{MasteredToday: -1, StudyMinutes: -5, Accuracy: 150}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.DailyProgress.MasteredToday != 0 || got.DailyProgress.StudyMinutes != 0 || got.DailyProgress.Accuracy != 100 {
		t.Fatalf("expected clamped progress, got %+v", got.DailyProgress)
	}
}

func TestBuildHomeSummaryQuoteFallback(t *testing.T) {
	f := newHomeFixture(t, newFakeLedger(), 0)
	f.impl.pickQuote = func([]entity.StudyQuote) entity.StudyQuote { return "" }
	got, err := f.uc.BuildHomeSummary(context.Background(), HomeInput{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Quote != string(entity.QuoteProgress) {
		t.Fatalf("expected fallback quote, got %q", got.Quote)
	}
}

func TestBuildHomeSummaryLedgerFailure(t *testing.T) {
	ledger := newFakeLedger()
	ledger.recordErr = &entity.StorageError{Op: "record usage", Err: errors.New("read-only")}
	ledger.daysErr = &entity.StorageError{Op: "list usage", Err: errors.New("corrupt")}
	f := newHomeFixture(t, ledger, 0)

	got, err := f.uc.BuildHomeSummary(context.Background(), HomeInput{StudyMinutes: 10}, nil)
	if err != nil {
		t.Fatalf("ledger failures must not fail the summary: %v", err)
	}
	if got.StreakDays != 0 || got.TotalUsageDays != 0 {
		t.Fatalf("expected empty history, got %+v", got)
	}
	warnings := 0
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 2 {
		t.Fatalf("expected 2 warnings, got %d", warnings)
	}
}

func TestBuildHomeSummaryCancelled(t *testing.T) {
	f := newHomeFixture(t, newFakeLedger(), 0)
	a := f.addActivity(t, "A", homeNow)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.uc.BuildHomeSummary(ctx, HomeInput{RecentActivityIDs: []uuid.UUID{a.ID}}, f.stores.Activities); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateHomeNewUserThenReturning(t *testing.T) {
	ledger := newFakeLedger()
	f := newHomeFixture(t, ledger, 0)
	ctx := context.Background()

	isNew, err := f.uc.IsNewUser(ctx)
	if err != nil || !isNew {
		t.Fatalf("expected new user before first visit, got %v (%v)", isNew, err)
	}

	first, err := f.uc.GenerateHome(ctx, "Ana")
	if err != nil {
		t.Fatalf("GenerateHome returned error: %v", err)
	}
	if !first.NewUser || first.DailyProgress != nil {
		t.Fatalf("expected new-user summary, got %+v", first)
	}
	if first.Quote != "Welcome Ana! Every journey begins with one step." {
		t.Fatalf("unexpected welcome quote %q", first.Quote)
	}
	if first.TotalUsageDays != 1 || first.StreakDays != 1 {
		t.Fatalf("expected today recorded, got %+v", first)
	}

	isNew, err = f.uc.IsNewUser(ctx)
	if err != nil || isNew {
		t.Fatalf("expected returning user after first visit, got %v (%v)", isNew, err)
	}

	second, err := f.uc.GenerateHome(ctx, "Ana")
	if err != nil {
		t.Fatal(err)
	}
	if second.NewUser || second.DailyProgress == nil {
		t.Fatalf("expected returning-user summary, got %+v", second)
	}
	if second.Greeting != "Hello, Ana!" {
		t.Fatalf("unexpected greeting %q", second.Greeting)
	}
	if f.stores.DailyProgress.Len() != 1 {
		t.Fatalf("expected one archived snapshot, got %d", f.stores.DailyProgress.Len())
	}
	if ledger.records != 2 {
		t.Fatalf("expected usage recorded on each call, got %d", ledger.records)
	}
}

func TestGenerateHomeReturningUserFigures(t *testing.T) {
	ctx := context.Background()
	f := newHomeFixture(t, newFakeLedger(homeNow), 2)
	seedChapter(t, f.stores, "Math", accuracyResult(3, 4))

	oldest := f.addActivity(t, "Old", homeNow.Add(-72*time.Hour))
	middle := f.addActivity(t, "Mid", homeNow.Add(-24*time.Hour))
	newest := f.addActivity(t, "New", homeNow.Add(-time.Hour))

	got, err := f.uc.GenerateHome(ctx, "Ben")
	if err != nil {
		t.Fatal(err)
	}
	if got.DailyProgress.Accuracy != 75 {
		t.Fatalf("expected accuracy from aggregation, got %v", got.DailyProgress.Accuracy)
	}
	if len(got.RecentActivity) != 2 || got.RecentActivity[0].ID != newest.ID || got.RecentActivity[1].ID != middle.ID {
		t.Fatalf("expected [New Mid], got %+v (oldest %s)", got.RecentActivity, oldest.ID)
	}
}
