package entity

import "github.com/google/uuid"

// Flashcard is a question/answer card. IsFlipped doubles as the mastery flag.
type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	IsFlipped bool      `json:"is_flipped"`
}

func (f Flashcard) GetID() uuid.UUID { return f.ID }

// Mastered reports whether the learner marked the card as learned.
func (f Flashcard) Mastered() bool { return f.IsFlipped }
