package match

import "unicode/utf8"

// previewEllipsis is appended to a truncated job preview.
const previewEllipsis = "..."

// Ranked is a single job scored against a resume.
type Ranked struct {
	JobIndex int
	Score    float64
	Preview  string
}

// NewRanked creates a ranked match with a preview of at most limit characters of the job text.
func NewRanked(jobIndex int, score float64, job string, limit int) Ranked {
	return Ranked{JobIndex: jobIndex, Score: score, Preview: Preview(job, limit)}
}

// Preview returns the first limit characters of text followed by "..." when text is longer.
// A non-positive limit disables truncation.
func Preview(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i] + previewEllipsis
		}
		n++
	}
	return text
}
