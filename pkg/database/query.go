package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-gorp/gorp/v3"

	"github.com/openswoop/syllabank/pkg/scrape"
)

// gradeIndex is the position in a course code that carries the grade digit,
// e.g. the '2' in "MEC.A201".
const gradeIndex = 5

var gradeDigits = map[string]byte{
	"100": '1',
	"200": '2',
	"300": '3',
	"400": '4',
	"500": '5',
	"600": '6',
}

// TimetableQuery matches courses meeting on Day during Period.
type TimetableQuery struct {
	Day    scrape.Day    `json:"day"`
	Period scrape.Period `json:"period"`
}

// SearchQuery filters the course list. Values within one filter are
// alternatives; filters are combined with AND. An empty filter matches all.
type SearchQuery struct {
	University []string
	Department []string
	Year       []int
	Quarter    []scrape.Semester
	Grade      []string
	Lecturer   []string
	Title      []string
	Timetable  []TimetableQuery
}

// CourseListItem is the denormalized summary of a stored course.
type CourseListItem struct {
	ID         int64  `json:"id" csv:"id" bigquery:"id"`
	University string `json:"university" csv:"university" bigquery:"university"`
	Code       string `json:"code" csv:"code" bigquery:"code"`
	Title      string `json:"title" csv:"title" bigquery:"title"`
	Lecturer   string `json:"lecturer" csv:"lecturer" bigquery:"lecturer"`
	Timetable  string `json:"timetable" csv:"timetable" bigquery:"timetable"`
	Semester   string `json:"semester" csv:"semester" bigquery:"semester"`
	Department string `json:"department" csv:"department" bigquery:"department"`
	Credit     int    `json:"credit" csv:"credit" bigquery:"credit"`
	Year       int    `json:"year" csv:"year" bigquery:"year"`
}

// CourseView is a fully reassembled course with its store identity.
type CourseView struct {
	ID int64 `json:"id"`
	scrape.Course
}

type courseRow struct {
	ID         int64  `db:"id"`
	University string `db:"university"`
	Code       string `db:"code"`
	Title      string `db:"title"`
	Department string `db:"department"`
	Credit     int    `db:"credit"`
	Year       int    `db:"year"`
}

// SearchCourses lists the courses matching q, ordered by code. Equality
// filters run in SQL; lecturer and title filters match the display strings.
func (s *Sqlite) SearchCourses(ctx context.Context, q SearchQuery) ([]CourseListItem, error) {
	var items []CourseListItem
	err := s.inTx(ctx, func(tx gorp.SqlExecutor) error {
		where, args := q.predicate()
		var rows []courseRow
		query := "SELECT id, university, code, title, department, credit, year FROM courses" + where + " ORDER BY code, id"
		if _, err := tx.Select(&rows, query, args...); err != nil {
			return err
		}

		rows = filterGrade(rows, q.Grade)
		if len(q.Timetable) > 0 {
			ids, err := timetableMatches(tx, q.Timetable)
			if err != nil {
				return err
			}
			rows = filterIDs(rows, ids)
		}

		for _, row := range rows {
			item, err := listItem(tx, row)
			if err != nil {
				return err
			}
			if containsAny(item.Lecturer, q.Lecturer) && containsAny(item.Title, q.Title) {
				items = append(items, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}
	return items, nil
}

func (q SearchQuery) predicate() (string, []interface{}) {
	var clauses []string
	var args []interface{}
	if len(q.University) > 0 {
		clauses = append(clauses, "university IN ("+placeholders(len(q.University))+")")
		args = append(args, values(q.University)...)
	}
	if len(q.Department) > 0 {
		clauses = append(clauses, "department IN ("+placeholders(len(q.Department))+")")
		args = append(args, values(q.Department)...)
	}
	if len(q.Year) > 0 {
		clauses = append(clauses, "year IN ("+placeholders(len(q.Year))+")")
		args = append(args, values(q.Year)...)
	}
	if len(q.Quarter) > 0 {
		clauses = append(clauses, "id IN (SELECT course_id FROM semesters WHERE semester IN ("+placeholders(len(q.Quarter))+"))")
		for _, quarter := range q.Quarter {
			args = append(args, int(quarter))
		}
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func values[T any](vs []T) []interface{} {
	args := make([]interface{}, len(vs))
	for i, v := range vs {
		args[i] = v
	}
	return args
}

// timetableMatches returns the ids of courses with a slot on any of the
// requested (day, period) pairs.
func timetableMatches(tx gorp.SqlExecutor, slots []TimetableQuery) (map[int64]bool, error) {
	conds := make([]string, len(slots))
	var args []interface{}
	for i, slot := range slots {
		conds[i] = "(day = ? AND period = ?)"
		args = append(args, int(slot.Day), int(slot.Period))
	}
	var ids []int64
	if _, err := tx.Select(&ids, "SELECT DISTINCT course_id FROM timetables WHERE "+strings.Join(conds, " OR "), args...); err != nil {
		return nil, err
	}
	matches := make(map[int64]bool, len(ids))
	for _, id := range ids {
		matches[id] = true
	}
	return matches, nil
}

func filterIDs(rows []courseRow, ids map[int64]bool) []courseRow {
	var kept []courseRow
	for _, row := range rows {
		if ids[row.ID] {
			kept = append(kept, row)
		}
	}
	return kept
}

// GradeDigit maps a grade band such as "200" to the digit found at the grade
// position of a course code. Unknown bands map to '0'.
func GradeDigit(band string) byte {
	if digit, ok := gradeDigits[band]; ok {
		return digit
	}
	return '0'
}

func filterGrade(rows []courseRow, bands []string) []courseRow {
	if len(bands) == 0 {
		return rows
	}
	var kept []courseRow
	for _, row := range rows {
		if len(row.Code) <= gradeIndex {
			continue
		}
		for _, band := range bands {
			if row.Code[gradeIndex] == GradeDigit(band) {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}

func containsAny(s string, substrs []string) bool {
	if len(substrs) == 0 {
		return true
	}
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func listItem(tx gorp.SqlExecutor, row courseRow) (CourseListItem, error) {
	item := CourseListItem{
		ID:         row.ID,
		University: row.University,
		Code:       row.Code,
		Title:      row.Title,
		Department: row.Department,
		Credit:     row.Credit,
		Year:       row.Year,
	}

	var lecturers []LecturerEntity
	if _, err := tx.Select(&lecturers, "SELECT * FROM lecturers WHERE course_id = ? ORDER BY id", row.ID); err != nil {
		return item, err
	}
	var slots []TimetableEntity
	if _, err := tx.Select(&slots, "SELECT * FROM timetables WHERE course_id = ? ORDER BY id", row.ID); err != nil {
		return item, err
	}
	var semesters []SemesterEntity
	if _, err := tx.Select(&semesters, "SELECT * FROM semesters WHERE course_id = ? ORDER BY semester", row.ID); err != nil {
		return item, err
	}

	names := make([]string, len(lecturers))
	for i, l := range lecturers {
		names[i] = l.Name
	}
	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = scrape.Day(slot.Day).String() + scrape.Period(slot.Period).String()
	}
	quarters := make([]string, len(semesters))
	for i, sem := range semesters {
		quarters[i] = scrape.Semester(sem.Semester).String()
	}
	item.Lecturer = strings.Join(names, ", ")
	item.Timetable = strings.Join(labels, ", ")
	item.Semester = strings.Join(quarters, ", ")
	return item, nil
}

// GetCourse reassembles the course stored under id from a single snapshot.
func (s *Sqlite) GetCourse(ctx context.Context, id int64) (*CourseView, error) {
	var view *CourseView
	err := s.inTx(ctx, func(tx gorp.SqlExecutor) error {
		var err error
		view, err = loadCourse(tx, id)
		return err
	})
	if errors.Is(err, ErrCourseNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load course %d: %w", id, err)
	}
	return view, nil
}

func loadCourse(tx gorp.SqlExecutor, id int64) (*CourseView, error) {
	var e CourseEntity
	if err := tx.SelectOne(&e, "SELECT * FROM courses WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	view := &CourseView{ID: e.ID, Course: scrape.Course{
		University:   e.University,
		Title:        e.Title,
		EnglishTitle: e.EnglishTitle,
		Department:   e.Department,
		LectureType:  e.LectureType,
		Code:         e.Code,
		Credit:       e.Credit,
		Year:         e.Year,
		Language:     e.Language,
		URL:          e.URL,
		Fingerprint:  e.Fingerprint,
		Detail: scrape.CourseDetail{
			Abstract:      e.Abstract,
			Goal:          e.Goal,
			Experience:    e.Experience,
			Flow:          e.Flow,
			OutOfClass:    e.OutOfClass,
			Textbook:      e.Textbook,
			ReferenceBook: e.ReferenceBook,
			Assessment:    e.Assessment,
			Prerequisite:  e.Prerequisite,
			Contact:       e.Contact,
			OfficeHours:   e.OfficeHours,
			Note:          e.Note,
		},
	}}
	c := &view.Course

	var lecturers []LecturerEntity
	if _, err := tx.Select(&lecturers, "SELECT * FROM lecturers WHERE course_id = ? ORDER BY id", id); err != nil {
		return nil, err
	}
	for _, l := range lecturers {
		c.Lecturers = append(c.Lecturers, scrape.Lecturer{Name: l.Name, URL: l.URL})
	}

	var slots []TimetableEntity
	if _, err := tx.Select(&slots, "SELECT * FROM timetables WHERE course_id = ? ORDER BY id", id); err != nil {
		return nil, err
	}
	for _, t := range slots {
		c.Timetable = append(c.Timetable, scrape.TimeSlot{Day: scrape.Day(t.Day), Period: scrape.Period(t.Period), Room: t.Room})
	}

	var semesters []SemesterEntity
	if _, err := tx.Select(&semesters, "SELECT * FROM semesters WHERE course_id = ? ORDER BY semester", id); err != nil {
		return nil, err
	}
	for _, sem := range semesters {
		c.Semesters = append(c.Semesters, scrape.Semester(sem.Semester))
	}

	var keywords []KeywordEntity
	if _, err := tx.Select(&keywords, "SELECT * FROM keywords WHERE course_id = ? ORDER BY id", id); err != nil {
		return nil, err
	}
	for _, k := range keywords {
		c.Detail.Keywords = append(c.Detail.Keywords, k.Keyword)
	}

	var competencies []CompetencyEntity
	if _, err := tx.Select(&competencies, "SELECT * FROM competencies WHERE course_id = ? ORDER BY id", id); err != nil {
		return nil, err
	}
	for _, comp := range competencies {
		c.Detail.Competencies = append(c.Detail.Competencies, comp.Competency)
	}

	var schedule []ScheduleEntity
	if _, err := tx.Select(&schedule, "SELECT * FROM schedules WHERE course_id = ? ORDER BY count, id", id); err != nil {
		return nil, err
	}
	for _, p := range schedule {
		c.Detail.Schedule = append(c.Detail.Schedule, scrape.LecturePlan{Count: p.Count, Plan: p.Plan, Assignment: p.Assignment})
	}

	var related []RelatedCourseEntity
	if _, err := tx.Select(&related, "SELECT * FROM related_courses WHERE course_id = ? ORDER BY id", id); err != nil {
		return nil, err
	}
	for _, r := range related {
		c.Detail.RelatedCourses = append(c.Detail.RelatedCourses, r.Code)
	}

	return view, nil
}

// ListAll returns every stored course as a list item.
func (s *Sqlite) ListAll(ctx context.Context) ([]CourseListItem, error) {
	return s.SearchCourses(ctx, SearchQuery{})
}
