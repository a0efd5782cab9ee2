package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chapter is a unit of study. Every relation is held as an identifier and may dangle.
type Chapter struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	SummaryID        *uuid.UUID  `json:"summary_id,omitempty"`
	FlashcardIDs     []uuid.UUID `json:"flashcard_ids"`
	QuizID           *uuid.UUID  `json:"quiz_id,omitempty"`
	ActiveRecallIDs  []uuid.UUID `json:"active_recall_ids"`
	LastQuizResultID *uuid.UUID  `json:"last_quiz_result_id,omitempty"`
	CreatedOn        time.Time   `json:"created_on"`
}

func (c Chapter) GetID() uuid.UUID { return c.ID }

// Normalize fills defaults before persistence.
func (c *Chapter) Normalize(now time.Time) {
	if c.CreatedOn.IsZero() {
		c.CreatedOn = now
	}
	if c.FlashcardIDs == nil {
		c.FlashcardIDs = []uuid.UUID{}
	}
	if c.ActiveRecallIDs == nil {
		c.ActiveRecallIDs = []uuid.UUID{}
	}
}

// ChapterSummary holds the topic outline generated for a chapter.
type ChapterSummary struct {
	ID       uuid.UUID   `json:"id"`
	TopicIDs []uuid.UUID `json:"topic_ids"`
}

func (s ChapterSummary) GetID() uuid.UUID { return s.ID }

// ActiveRecallQuestion is an open question used for self-testing.
type ActiveRecallQuestion struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
}

func (q ActiveRecallQuestion) GetID() uuid.UUID { return q.ID }
