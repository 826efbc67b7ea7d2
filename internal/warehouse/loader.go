package warehouse

import (
	"context"
	"fmt"
	"os"
)

// Loader runs one file-to-table load against a warehouse client.
type Loader struct {
	client Client
}

// NewLoader creates a Loader backed by the given client.
func NewLoader(client Client) *Loader {
	return &Loader{client: client}
}

// Run loads filePath into table and returns the table's row and column
// counts once the load completes. The table identifier is checked before any
// file or network activity. Re-running with the same file appends duplicate
// rows; no deduplication is attempted.
func (l *Loader) Run(ctx context.Context, table TableID, filePath string) (TableStats, error) {
	if table.Dataset == "" || table.Table == "" {
		return TableStats{}, fmt.Errorf("incomplete table identifier %q", table.String())
	}

	f, err := os.Open(filePath)
	if err != nil {
		return TableStats{}, fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	job, err := l.client.Load(ctx, LoadSpec{Table: table, Source: f})
	if err != nil {
		return TableStats{}, err
	}

	// Blocks until the remote job reaches a terminal state. No timeout and
	// no retry; a hung remote job hangs the run.
	if err := job.Wait(ctx); err != nil {
		return TableStats{}, fmt.Errorf("load job for %s failed: %w", table, err)
	}

	return l.client.TableStats(ctx, table)
}
