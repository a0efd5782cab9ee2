package entity

import "slices"

// Clone returns a copy of s that shares no slice with s.
func (s Subject) Clone() Subject {
	s.ChapterIDs = slices.Clone(s.ChapterIDs)
	return s
}

func (c Chapter) Clone() Chapter {
	c.SummaryID = clonePtr(c.SummaryID)
	c.QuizID = clonePtr(c.QuizID)
	c.LastQuizResultID = clonePtr(c.LastQuizResultID)
	c.FlashcardIDs = slices.Clone(c.FlashcardIDs)
	c.ActiveRecallIDs = slices.Clone(c.ActiveRecallIDs)
	return c
}

func (s ChapterSummary) Clone() ChapterSummary {
	s.TopicIDs = slices.Clone(s.TopicIDs)
	return s
}

func (q Quiz) Clone() Quiz {
	q.MCQIDs = slices.Clone(q.MCQIDs)
	q.TrueFalseIDs = slices.Clone(q.TrueFalseIDs)
	return q
}

func (q Question) Clone() Question {
	q.Explanation = clonePtr(q.Explanation)
	q.CorrectIndex = clonePtr(q.CorrectIndex)
	q.IsTrueOrFalse = clonePtr(q.IsTrueOrFalse)
	q.Options = slices.Clone(q.Options)
	return q
}

func (r QuizResult) Clone() QuizResult {
	r.AllTopics = slices.Clone(r.AllTopics)
	r.IncorrectTopics = slices.Clone(r.IncorrectTopics)
	return r
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
