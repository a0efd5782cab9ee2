package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/repository"
	"github.com/eslsoft/studytrack/pkg/streak"
)

const usageDayLayout = "2006-01-02"

const usageSchema = `CREATE TABLE IF NOT EXISTS usage_days (
	day TEXT PRIMARY KEY
)`

// UsageLedger stores usage days in a SQL table, one row per calendar day.
type UsageLedger struct {
	db    *sqlx.DB
	loc   *time.Location
	clock func() time.Time
}

// NewUsageLedger ensures the schema exists and returns a ledger that reads
// days back in loc.
func NewUsageLedger(ctx context.Context, db *sqlx.DB, loc *time.Location) (*UsageLedger, error) {
	if loc == nil {
		loc = time.Local
	}
	if _, err := db.ExecContext(ctx, usageSchema); err != nil {
		return nil, &entity.StorageError{Op: "migrate usage_days", Err: err}
	}
	return &UsageLedger{db: db, loc: loc, clock: time.Now}, nil
}

var _ repository.UsageLedger = (*UsageLedger)(nil)

func (l *UsageLedger) RecordDay(ctx context.Context, t time.Time) error {
	day := streak.Normalize(t.In(l.loc)).Format(usageDayLayout)
	query := l.db.Rebind(`INSERT INTO usage_days (day) VALUES (?) ON CONFLICT (day) DO NOTHING`)
	if _, err := l.db.ExecContext(ctx, query, day); err != nil {
		return &entity.StorageError{Op: "record usage", Err: err}
	}
	return nil
}

// RecordToday records the current calendar day.
func (l *UsageLedger) RecordToday(ctx context.Context) error {
	return l.RecordDay(ctx, l.clock())
}

func (l *UsageLedger) Days(ctx context.Context) ([]time.Time, error) {
	var raw []string
	if err := l.db.SelectContext(ctx, &raw, `SELECT day FROM usage_days ORDER BY day`); err != nil {
		return nil, &entity.StorageError{Op: "list usage", Err: err}
	}
	days := make([]time.Time, 0, len(raw))
	for _, value := range raw {
		day, err := time.ParseInLocation(usageDayLayout, value, l.loc)
		if err != nil {
			return nil, &entity.StorageError{Op: "list usage", Err: fmt.Errorf("parse day %q: %w", value, err)}
		}
		days = append(days, day)
	}
	return days, nil
}
