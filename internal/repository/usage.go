package repository

import (
	"context"
	"time"
)

// UsageLedger persists the calendar days on which the app was opened.
type UsageLedger interface {
	// RecordDay stores the calendar day of t. Recording a day twice is a no-op.
	RecordDay(ctx context.Context, t time.Time) error
	// Days returns every recorded day at midnight, ascending.
	Days(ctx context.Context) ([]time.Time, error)
}
