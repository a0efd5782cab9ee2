package entity

// StudyQuote is one of the fixed motivational lines shown on the home screen.
type StudyQuote string

const (
	QuoteProgress StudyQuote = "Progress over perfection."
	QuoteSteps    StudyQuote = "Small steps daily → big results."
	QuoteGrow     StudyQuote = "Keep learning, keep growing."
	QuoteBuild    StudyQuote = "Your effort today builds tomorrow."
)

// AllStudyQuotes lists every quote in declaration order.
func AllStudyQuotes() []StudyQuote {
	return []StudyQuote{QuoteProgress, QuoteSteps, QuoteGrow, QuoteBuild}
}
