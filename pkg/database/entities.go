package database

import (
	"github.com/openswoop/syllabank/pkg/persist"
	"github.com/openswoop/syllabank/pkg/scrape"
)

type PrimaryKey struct {
	ID int64 `db:"id"`
}

type CourseKey struct {
	CourseID int64 `db:"course_id"`
}

// CourseEntity holds the scalar fields of a course, including the syllabus text.
type CourseEntity struct {
	PrimaryKey
	University    string `db:"university"`
	Title         string `db:"title"`
	EnglishTitle  string `db:"english_title"`
	Department    string `db:"department"`
	LectureType   string `db:"lecture_type"`
	Code          string `db:"code"`
	Credit        int    `db:"credit"`
	Year          int    `db:"year"`
	Language      string `db:"language"`
	URL           string `db:"url"`
	Fingerprint   string `db:"fingerprint"`
	Abstract      string `db:"abstract"`
	Goal          string `db:"goal"`
	Experience    bool   `db:"experience"`
	Flow          string `db:"flow"`
	OutOfClass    string `db:"out_of_class"`
	Textbook      string `db:"textbook"`
	ReferenceBook string `db:"reference_book"`
	Assessment    string `db:"assessment"`
	Prerequisite  string `db:"prerequisite"`
	Contact       string `db:"contact"`
	OfficeHours   string `db:"office_hours"`
	Note          string `db:"note"`
}

type LecturerEntity struct {
	PrimaryKey
	CourseKey
	Name string `db:"name"`
	URL  string `db:"url"`
}

type TimetableEntity struct {
	PrimaryKey
	CourseKey
	Day    int    `db:"day"`
	Period int    `db:"period"`
	Room   string `db:"room"`
}

type SemesterEntity struct {
	PrimaryKey
	CourseKey
	Semester int `db:"semester"`
}

type KeywordEntity struct {
	PrimaryKey
	CourseKey
	Keyword string `db:"keyword"`
}

type CompetencyEntity struct {
	PrimaryKey
	CourseKey
	Competency string `db:"competency"`
}

type ScheduleEntity struct {
	PrimaryKey
	CourseKey
	Count      int    `db:"count"`
	Plan       string `db:"plan"`
	Assignment string `db:"assignment"`
}

// RelatedCourseEntity links a course to another course's code. The code is
// not a foreign key and may reference a course that was never stored.
type RelatedCourseEntity struct {
	PrimaryKey
	CourseKey
	Code string `db:"code"`
}

// childTables are the tables scoped to a course by course_id.
var childTables = []string{
	"lecturers",
	"timetables",
	"semesters",
	"keywords",
	"competencies",
	"schedules",
	"related_courses",
}

func newCourseEntity(c *scrape.Course) *CourseEntity {
	d := c.Detail
	return &CourseEntity{
		University:    c.University,
		Title:         c.Title,
		EnglishTitle:  c.EnglishTitle,
		Department:    c.Department,
		LectureType:   c.LectureType,
		Code:          c.Code,
		Credit:        c.Credit,
		Year:          c.Year,
		Language:      c.Language,
		URL:           c.URL,
		Fingerprint:   c.Fingerprint,
		Abstract:      d.Abstract,
		Goal:          d.Goal,
		Experience:    d.Experience,
		Flow:          d.Flow,
		OutOfClass:    d.OutOfClass,
		Textbook:      d.Textbook,
		ReferenceBook: d.ReferenceBook,
		Assessment:    d.Assessment,
		Prerequisite:  d.Prerequisite,
		Contact:       d.Contact,
		OfficeHours:   d.OfficeHours,
		Note:          d.Note,
	}
}

var (
	_ persist.Persistable = (*courseRows)(nil)
	_ persist.Persistable = relatedRows{}
)

// courseRows persists a course row and its child rows. ID is set once the
// course row has been inserted.
type courseRows struct {
	course *scrape.Course
	ID     int64
}

func (r *courseRows) Persist(tx persist.Transaction) error {
	entity := newCourseEntity(r.course)
	if err := tx.Insert(entity); err != nil {
		return err
	}
	r.ID = entity.ID
	return tx.Insert(childRows(r.course, CourseKey{entity.ID})...)
}

func childRows(c *scrape.Course, key CourseKey) []interface{} {
	var rows []interface{}
	for _, l := range c.Lecturers {
		rows = append(rows, &LecturerEntity{CourseKey: key, Name: l.Name, URL: l.URL})
	}
	for _, t := range c.Timetable {
		rows = append(rows, &TimetableEntity{CourseKey: key, Day: int(t.Day), Period: int(t.Period), Room: t.Room})
	}
	for _, s := range c.Semesters {
		rows = append(rows, &SemesterEntity{CourseKey: key, Semester: int(s)})
	}
	for _, k := range c.Detail.Keywords {
		rows = append(rows, &KeywordEntity{CourseKey: key, Keyword: k})
	}
	for _, comp := range c.Detail.Competencies {
		rows = append(rows, &CompetencyEntity{CourseKey: key, Competency: comp})
	}
	for _, p := range c.Detail.Schedule {
		rows = append(rows, &ScheduleEntity{CourseKey: key, Count: p.Count, Plan: p.Plan, Assignment: p.Assignment})
	}
	return rows
}

// relatedRows persists the related-course codes of one course.
type relatedRows struct {
	key   CourseKey
	codes []string
}

func (r relatedRows) Persist(tx persist.Transaction) error {
	for _, code := range r.codes {
		if err := tx.Insert(&RelatedCourseEntity{CourseKey: r.key, Code: code}); err != nil {
			return err
		}
	}
	return nil
}
