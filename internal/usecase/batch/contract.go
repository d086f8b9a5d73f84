package batch

import dommatch "github.com/kailas-cloud/resumatch/internal/domain/match"

// PairMatcher scores one resume/job pair and reports failures inside the result.
type PairMatcher interface {
	Pair(index int, resume, job string) dommatch.Result
}
