// Package match holds the outcomes of resume-to-job matching.
package match

// Result is the outcome of matching one resume-job pair of a batch.
type Result struct {
	index        int
	success      bool
	score        float64
	err          error
	resumeTokens int
	jobTokens    int
}

// NewOK creates a successful pair result.
func NewOK(index int, score float64, resumeTokens, jobTokens int) Result {
	return Result{
		index: index, success: true, score: score,
		resumeTokens: resumeTokens, jobTokens: jobTokens,
	}
}

// NewError creates a failed pair result. The score of a failed pair is always 0.
func NewError(index int, err error) Result { return Result{index: index, err: err} }

// Index returns the position of the pair in the original input.
func (r Result) Index() int { return r.index }

// Success reports whether the pair was scored.
func (r Result) Success() bool { return r.success }

// Score returns the similarity score in [0, 1].
func (r Result) Score() float64 { return r.score }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// ResumeTokens returns the number of normalized resume tokens.
func (r Result) ResumeTokens() int { return r.resumeTokens }

// JobTokens returns the number of normalized job tokens.
func (r Result) JobTokens() int { return r.jobTokens }

// Summary counts successful and failed results.
func Summary(results []Result) (successful, failed int) {
	for _, r := range results {
		if r.success {
			successful++
		} else {
			failed++
		}
	}
	return successful, failed
}
