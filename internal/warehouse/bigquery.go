package warehouse

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
)

// bigqueryClient implements Client over the BigQuery API. Credentials come
// from the execution environment; none are managed here.
type bigqueryClient struct {
	bq *bigquery.Client
}

// NewBigQueryClient constructs a warehouse client. If project is empty the
// project is detected from the ambient credentials.
func NewBigQueryClient(ctx context.Context, project string) (Client, error) {
	if project == "" {
		project = bigquery.DetectProjectID
	}
	bq, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client: %w", err)
	}
	return &bigqueryClient{bq: bq}, nil
}

func (c *bigqueryClient) table(t TableID) *bigquery.Table {
	if t.Project != "" {
		return c.bq.DatasetInProject(t.Project, t.Dataset).Table(t.Table)
	}
	return c.bq.Dataset(t.Dataset).Table(t.Table)
}

// Load submits one load job reading spec.Source as newline-delimited JSON
// with schema autodetection.
func (c *bigqueryClient) Load(ctx context.Context, spec LoadSpec) (Job, error) {
	src := bigquery.NewReaderSource(spec.Source)
	src.SourceFormat = bigquery.JSON
	src.AutoDetect = true

	job, err := c.table(spec.Table).LoaderFrom(src).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("submitting load job for %s: %w", spec.Table, err)
	}
	return bigqueryJob{job: job}, nil
}

// TableStats fetches row and column counts from the table's metadata.
func (c *bigqueryClient) TableStats(ctx context.Context, table TableID) (TableStats, error) {
	md, err := c.table(table).Metadata(ctx)
	if err != nil {
		return TableStats{}, fmt.Errorf("fetching metadata for %s: %w", table, err)
	}
	return TableStats{NumRows: md.NumRows, NumColumns: len(md.Schema)}, nil
}

func (c *bigqueryClient) Close() error {
	return c.bq.Close()
}

type bigqueryJob struct {
	job *bigquery.Job
}

// Wait blocks until the job is done. A job that finished with an error
// reports that error.
func (j bigqueryJob) Wait(ctx context.Context) error {
	status, err := j.job.Wait(ctx)
	if err != nil {
		return err
	}
	return status.Err()
}
