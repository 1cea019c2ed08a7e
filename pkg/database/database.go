package database

import (
	"context"
	"io"

	"github.com/openswoop/syllabank/pkg/scrape"
)

// Database is the course store used by the ingest pipeline and the read API.
type Database interface {
	io.Closer
	Ping(ctx context.Context) error
	ShouldIngest(ctx context.Context, code, title, fingerprint string) (bool, error)
	Save(ctx context.Context, course *scrape.Course) (int64, error)
	SearchCourses(ctx context.Context, q SearchQuery) ([]CourseListItem, error)
	GetCourse(ctx context.Context, id int64) (*CourseView, error)
}

var _ Database = (*Sqlite)(nil)
