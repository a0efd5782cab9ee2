package entity

import (
	"time"

	"github.com/google/uuid"
)

const activityDateLayout = "Jan 2, 2006 at 3:04 PM"

// Activity is an entry of the recent-activity feed shown on the home screen.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	ChapterName string    `json:"chapter_name"`
	SubjectName string    `json:"subject_name"`
	Date        time.Time `json:"date"`
}

func (a Activity) GetID() uuid.UUID { return a.ID }

// FormattedDate renders the date in a medium date / short time style.
func (a Activity) FormattedDate() string {
	return a.Date.Format(activityDateLayout)
}
