package health

import (
	"context"

	domart "github.com/kailas-cloud/resumatch/internal/domain/artifact"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ModelInspector reports the served model.
type ModelInspector interface {
	Metadata() (domart.Metadata, bool)
}
