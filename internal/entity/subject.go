package entity

import (
	"strings"

	"github.com/google/uuid"
)

// Subject groups chapters under a named course of study.
type Subject struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	ChapterIDs []uuid.UUID `json:"chapter_ids"`
}

// NewSubject builds a subject with a fresh identifier.
func NewSubject(name string, chapterIDs ...uuid.UUID) Subject {
	return Subject{ID: uuid.New(), Name: name, ChapterIDs: chapterIDs}
}

func (s Subject) GetID() uuid.UUID { return s.ID }

// ChapterCount reports how many chapter references the subject holds, resolved or not.
func (s Subject) ChapterCount() int { return len(s.ChapterIDs) }

// Validate checks the fields required before a subject is stored.
func (s *Subject) Validate() error {
	if s.ID == uuid.Nil {
		return ErrInvalidID
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalidSubjectName
	}
	return nil
}

// Normalize trims the name and replaces nil slices.
func (s *Subject) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	if s.ChapterIDs == nil {
		s.ChapterIDs = []uuid.UUID{}
	}
}
