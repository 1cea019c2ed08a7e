package scrape

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrExtraction marks a detail page that cannot be decoded as a whole.
var ErrExtraction = errors.New("detail extraction failed")

// Offsets into the definition lists of the course summary block. The gaps
// are fields that are not collected.
const (
	dlDepartment  = 0
	dlLecturer    = 1
	dlLectureType = 2
	dlTimetable   = 4
	dlCode        = 6
	dlCredit      = 7
	dlYear        = 8
	dlSemester    = 9
	dlLanguage    = 12
)

const (
	// The heading reads "<label><title>   <english title>" with non-breaking spaces.
	titleSeparator = "\u00a0\u00a0\u00a0"
	titleLabelLen  = 7
)

// ordinalFields reads the course summary block, where every offset is
// required. The first missing offset is kept in err and later reads return
// an empty selection.
type ordinalFields struct {
	dls *goquery.Selection
	err error
}

func (f *ordinalFields) dd(offset int) *goquery.Selection {
	if f.err != nil {
		return f.dls.Slice(0, 0)
	}
	if offset >= f.dls.Length() {
		f.err = fmt.Errorf("%w: definition list %d missing (page has %d)", ErrExtraction, offset, f.dls.Length())
		return f.dls.Slice(0, 0)
	}
	dd := f.dls.Eq(offset).Find("dd").First()
	if dd.Length() == 0 {
		f.err = fmt.Errorf("%w: definition list %d has no value", ErrExtraction, offset)
	}
	return dd
}

// ParseDetail decodes a course detail page. The returned course has no URL
// or Fingerprint; those belong to the listing row.
func ParseDetail(doc *goquery.Document) (*Course, error) {
	title, englishTitle, err := parseTitle(doc.Find(".page-title-area h3").First())
	if err != nil {
		return nil, err
	}

	fields := &ordinalFields{dls: doc.Find(".gaiyo-data").First().Find("dl")}
	department := fields.dd(dlDepartment)
	lecturer := fields.dd(dlLecturer)
	lectureType := fields.dd(dlLectureType)
	timetable := fields.dd(dlTimetable)
	code := fields.dd(dlCode)
	credit := fields.dd(dlCredit)
	year := fields.dd(dlYear)
	semester := fields.dd(dlSemester)
	language := fields.dd(dlLanguage)
	if fields.err != nil {
		return nil, fields.err
	}

	slots, err := ParseTimetable(timetable.Text())
	if err != nil {
		return nil, err
	}

	credits, err := strconv.Atoi(text(credit))
	if err != nil {
		return nil, fmt.Errorf("%w: credit %q: %v", ErrExtraction, text(credit), err)
	}

	// Years read like "2024年度"
	yearText := strings.TrimSpace(strings.Replace(text(year), "年度", "", 1))
	years, err := strconv.Atoi(yearText)
	if err != nil {
		return nil, fmt.Errorf("%w: year %q: %v", ErrExtraction, text(year), err)
	}

	return &Course{
		University:   University,
		Title:        title,
		EnglishTitle: englishTitle,
		Department:   text(department),
		Lecturers:    lecturers(lecturer),
		LectureType:  strings.Join(strings.Fields(lectureType.Text()), ""),
		Timetable:    slots,
		Code:         text(code),
		Credit:       credits,
		Year:         years,
		Semesters:    ParseSemesters(semester.Text()),
		Language:     text(language),
		Detail:       parseOverview(doc.Find("#overview").First()),
	}, nil
}

// parseTitle splits the heading into the native and English titles.
func parseTitle(h3 *goquery.Selection) (string, string, error) {
	if h3.Length() == 0 {
		return "", "", fmt.Errorf("%w: title heading missing", ErrExtraction)
	}
	titles := strings.SplitN(text(h3), titleSeparator, 2)
	if len(titles) < 2 {
		return "", "", fmt.Errorf("%w: no title separator in %q", ErrExtraction, text(h3))
	}
	native := []rune(titles[0])
	if len(native) < titleLabelLen {
		native = native[:0]
	} else {
		native = native[titleLabelLen:]
	}
	return string(native), titles[1], nil
}

// Detail is a course detail page reached from a listing row.
type Detail struct {
	Summary CourseSummary
	Course  *Course
}

func (d *Detail) Urls() []string {
	return []string{d.Summary.Title.URL}
}

func (d *Detail) UnmarshalDoc(doc *goquery.Document) error {
	course, err := ParseDetail(doc)
	if err != nil {
		return fmt.Errorf("%s %s: %w", d.Summary.Code, d.Summary.Title.Title, err)
	}
	course.URL = d.Summary.Title.URL
	course.Fingerprint = d.Summary.Fingerprint
	d.Course = course
	return nil
}
