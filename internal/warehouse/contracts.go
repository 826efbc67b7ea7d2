package warehouse

import (
	"context"
	"io"
)

// LoadSpec describes one load submission. The source is always read as
// newline-delimited JSON with warehouse-side schema autodetection.
type LoadSpec struct {
	Table  TableID
	Source io.Reader
}

// TableStats is the post-load table metadata reported to the caller.
type TableStats struct {
	NumRows    uint64
	NumColumns int
}

// Job is a submitted load job. Wait blocks until the remote job reaches a
// terminal state and returns the remote error on failure.
type Job interface {
	Wait(ctx context.Context) error
}

// Client is the narrow warehouse contract required by the Loader.
type Client interface {
	Load(ctx context.Context, spec LoadSpec) (Job, error)
	TableStats(ctx context.Context, table TableID) (TableStats, error)
	Close() error
}
