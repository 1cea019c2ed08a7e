package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
)

const courseTable = "courses"

type BigQuery struct {
	client  *bigquery.Client
	dataset *bigquery.Dataset
}

func NewBigQuery(ctx context.Context, projectID, datasetID string) (*BigQuery, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	dataset := client.Dataset(datasetID)
	if err := dataset.Create(ctx, nil); err != nil {
		if !isDuplicateError(err) {
			_ = client.Close()
			return nil, fmt.Errorf("failed to create dataset: %w", err)
		}
	}

	return &BigQuery{client, dataset}, nil
}

func (bq *BigQuery) Close() error {
	return bq.client.Close()
}

// InsertCourseList merges items into the courses table, matching rows on
// (code, title).
func (bq *BigQuery) InsertCourseList(ctx context.Context, items []CourseListItem) error {
	if len(items) == 0 {
		return nil
	}

	// Infer the table schema
	schema, err := bigquery.InferSchema(CourseListItem{})
	if err != nil {
		return fmt.Errorf("failed to infer schema: %w", err)
	}

	// Get a reference to the table
	table := bq.dataset.Table(courseTable)
	if err := table.Create(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		if !isDuplicateError(err) {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Uses a different arrivals table each time, kept for a day for auditing
	tempName := courseTable + "_" + strconv.FormatInt(time.Now().Unix(), 10)
	arrivals := bq.dataset.Table(tempName)
	meta := &bigquery.TableMetadata{Schema: schema, ExpirationTime: time.Now().Add(24 * time.Hour)}
	if err := arrivals.Create(ctx, meta); err != nil {
		if !isDuplicateError(err) {
			return fmt.Errorf("failed to create arrivals table: %w", err)
		}
	}

	// Upload data
	if err := arrivals.Inserter().Put(ctx, items); err != nil {
		return fmt.Errorf("failed to insert rows: %w", err)
	}

	// Merge data
	q := bq.client.Query(fmt.Sprintf(`
		MERGE %[1]s.%[2]s t
		USING %[1]s.%[3]s s
		ON t.code = s.code
		  AND t.title = s.title
		WHEN MATCHED THEN
		  UPDATE
		    SET id = s.id,
		        university = s.university,
		        lecturer = s.lecturer,
		        timetable = s.timetable,
		        semester = s.semester,
		        department = s.department,
		        credit = s.credit,
		        year = s.year
		WHEN NOT MATCHED THEN
		  INSERT ROW`, bq.dataset.DatasetID, courseTable, tempName))
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed to wait for merge: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}
	return nil
}

func isDuplicateError(err error) bool {
	var e *googleapi.Error
	if errors.As(err, &e) {
		return e.Code == 409
	}
	return false
}
