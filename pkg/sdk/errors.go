package resumatch

import (
	"github.com/kailas-cloud/resumatch/internal/domain"
	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput   = domain.ErrInvalidInput
	ErrLengthMismatch = domain.ErrLengthMismatch
	ErrEmptyContent   = domain.ErrEmptyContent
	ErrModelNotReady  = domain.ErrModelNotReady
	ErrModelNotFound  = domart.ErrNotFound
)
