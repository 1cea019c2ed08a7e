package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-gorp/gorp/v3"
	_ "github.com/mattn/go-sqlite3"

	"github.com/openswoop/syllabank/pkg/scrape"
)

var (
	// ErrCourseNotFound is returned when no course has the requested id.
	ErrCourseNotFound = errors.New("course not found")

	// ErrRelatedLinks is returned when a course was stored but its related
	// course links were not. LinkRelatedCourses may be retried on its own.
	ErrRelatedLinks = errors.New("related course links not stored")
)

type Sqlite struct {
	db    *sql.DB
	dbmap *gorp.DbMap
}

// NewSqlite opens the store at file, creating the tables on first run.
func NewSqlite(file string) (*Sqlite, error) {
	// Initialize the database connection
	db, err := sql.Open("sqlite3", dsn(file))
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Initialize the database mapping, creating the tables if it's our first run
	dbmap := &gorp.DbMap{Db: db, Dialect: gorp.SqliteDialect{}}
	dbmap.AddTableWithName(CourseEntity{}, "courses").SetKeys(true, "ID").SetUniqueTogether("code", "title")
	dbmap.AddTableWithName(LecturerEntity{}, "lecturers").SetKeys(true, "ID")
	dbmap.AddTableWithName(TimetableEntity{}, "timetables").SetKeys(true, "ID")
	dbmap.AddTableWithName(SemesterEntity{}, "semesters").SetKeys(true, "ID")
	dbmap.AddTableWithName(KeywordEntity{}, "keywords").SetKeys(true, "ID")
	dbmap.AddTableWithName(CompetencyEntity{}, "competencies").SetKeys(true, "ID")
	dbmap.AddTableWithName(ScheduleEntity{}, "schedules").SetKeys(true, "ID")
	dbmap.AddTableWithName(RelatedCourseEntity{}, "related_courses").SetKeys(true, "ID")
	if err := dbmap.CreateTablesIfNotExists(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to create tables: %w", err)
	}
	for _, table := range childTables {
		index := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_course_id ON %s (course_id)", table, table)
		if _, err := db.Exec(index); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("unable to create index on %s: %w", table, err)
		}
	}

	return &Sqlite{db: db, dbmap: dbmap}, nil
}

// dsn enables WAL so readers see a consistent snapshot while a course is
// being written.
func dsn(file string) string {
	if strings.Contains(file, "?") {
		return file
	}
	return file + "?_journal_mode=WAL&_busy_timeout=5000"
}

func (s *Sqlite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Sqlite) Close() error {
	return s.db.Close()
}

// ShouldIngest reports whether a course must be (re)ingested: true when no
// course is stored under (code, title) or its fingerprint differs. A course
// whose title changed is treated as new.
func (s *Sqlite) ShouldIngest(ctx context.Context, code, title, fingerprint string) (bool, error) {
	stored, err := s.dbmap.WithContext(ctx).SelectNullStr(
		"SELECT fingerprint FROM courses WHERE code = ? AND title = ?", code, title)
	if err != nil {
		return false, fmt.Errorf("failed to look up fingerprint of %s: %w", code, err)
	}
	return !stored.Valid || stored.String != fingerprint, nil
}

// Save stores a course and then, separately, its related course links.
// When only the links fail the course id is returned with ErrRelatedLinks.
func (s *Sqlite) Save(ctx context.Context, course *scrape.Course) (int64, error) {
	id, err := s.InsertCourse(ctx, course)
	if err != nil {
		return 0, err
	}
	if err := s.LinkRelatedCourses(ctx, id, course.Detail.RelatedCourses); err != nil {
		return id, fmt.Errorf("%w: course %d: %w", ErrRelatedLinks, id, err)
	}
	return id, nil
}

// InsertCourse writes the course row and all child rows in one transaction,
// replacing any course stored under the same (code, title).
func (s *Sqlite) InsertCourse(ctx context.Context, course *scrape.Course) (int64, error) {
	rows := &courseRows{course: course}
	err := s.inTx(ctx, func(tx gorp.SqlExecutor) error {
		if err := supersede(tx, course.Code, course.Title); err != nil {
			return err
		}
		return rows.Persist(tx)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert course %s: %w", course.Code, err)
	}
	return rows.ID, nil
}

// LinkRelatedCourses replaces the related course codes of a stored course.
// Repeated codes are kept, and repeating the call leaves one copy of the list.
func (s *Sqlite) LinkRelatedCourses(ctx context.Context, id int64, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx gorp.SqlExecutor) error {
		if _, err := tx.Exec("DELETE FROM related_courses WHERE course_id = ?", id); err != nil {
			return err
		}
		return relatedRows{CourseKey{id}, codes}.Persist(tx)
	})
}

// supersede deletes the course stored under (code, title) with its child rows.
func supersede(tx gorp.SqlExecutor, code, title string) error {
	var ids []int64
	if _, err := tx.Select(&ids, "SELECT id FROM courses WHERE code = ? AND title = ?", code, title); err != nil {
		return err
	}
	for _, id := range ids {
		for _, table := range childTables {
			if _, err := tx.Exec("DELETE FROM "+table+" WHERE course_id = ?", id); err != nil {
				return err
			}
		}
		if _, err := tx.Exec("DELETE FROM courses WHERE id = ?", id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sqlite) inTx(ctx context.Context, fn func(tx gorp.SqlExecutor) error) error {
	tx, err := s.dbmap.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx.WithContext(ctx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
