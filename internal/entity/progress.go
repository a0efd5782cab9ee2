package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DailyProgress is the same-day record shown on the home screen.
type DailyProgress struct {
	ID            uuid.UUID `json:"id"`
	Date          time.Time `json:"date"`
	MasteredToday int       `json:"mastered_today"`
	StudyMinutes  int       `json:"study_minutes"`
	Accuracy      float64   `json:"accuracy"`
}

func (p DailyProgress) GetID() uuid.UUID { return p.ID }

// Normalize clamps counters at zero and accuracy into [0, 100].
func (p *DailyProgress) Normalize() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.MasteredToday = max(p.MasteredToday, 0)
	p.StudyMinutes = max(p.StudyMinutes, 0)
	p.Accuracy = ClampPercent(p.Accuracy)
}

func (p DailyProgress) FormattedStudyTime() string {
	return fmt.Sprintf("Studied %dh %dm today", p.StudyMinutes/60, p.StudyMinutes%60)
}

func (p DailyProgress) FormattedAccuracy() string {
	return fmt.Sprintf("Quiz accuracy: %d%%", int(p.Accuracy))
}

func (p DailyProgress) FormattedMastered() string {
	return fmt.Sprintf("Mastered %d flashcards", p.MasteredToday)
}

// ProgressSummary is derived on demand from repository state and never persisted.
type ProgressSummary struct {
	WeeklyStudyTime     time.Duration      `json:"weekly_study_time"`
	WeeklyAccuracy      float64            `json:"weekly_accuracy"`
	WeeklyMasteredCards int                `json:"weekly_mastered_cards"`
	MonthlyStreak       int                `json:"monthly_streak"`
	SubjectProgress     map[string]float64 `json:"subject_progress"`
	StudyInsight        string             `json:"study_insight"`
}

// HomeSummary is regenerated on every request.
type HomeSummary struct {
	Greeting       string         `json:"greeting,omitempty"`
	NewUser        bool           `json:"new_user"`
	DailyProgress  *DailyProgress `json:"daily_progress,omitempty"`
	RecentActivity []Activity     `json:"recent_activity"`
	StreakDays     int            `json:"streak_days"`
	TotalUsageDays int            `json:"total_usage_days"`
	Quote          string         `json:"quote"`
}

// ClampPercent bounds a percentage into [0, 100].
func ClampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
