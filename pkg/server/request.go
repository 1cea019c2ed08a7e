package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/openswoop/syllabank/pkg/database"
	"github.com/openswoop/syllabank/pkg/scrape"
)

// ParseSearchQuery reads course list filters from query parameters. Every
// parameter may be repeated. Quarters are 1-4 (a trailing "Q" is allowed);
// timetable slots are "<day>-<period>" with day 0 (Sunday) to 6 (Saturday)
// and period 1 to 6.
func ParseSearchQuery(values url.Values) (database.SearchQuery, error) {
	q := database.SearchQuery{
		University: values["university"],
		Department: values["department"],
		Grade:      values["grade"],
		Lecturer:   values["lecturer"],
		Title:      values["title"],
	}

	for _, v := range values["year"] {
		year, err := strconv.Atoi(v)
		if err != nil {
			return q, fmt.Errorf("invalid year %q", v)
		}
		q.Year = append(q.Year, year)
	}

	for _, v := range values["quarter"] {
		quarter, err := ParseQuarter(v)
		if err != nil {
			return q, err
		}
		q.Quarter = append(q.Quarter, quarter)
	}

	for _, v := range values["timetable"] {
		slot, err := ParseTimetableQuery(v)
		if err != nil {
			return q, err
		}
		q.Timetable = append(q.Timetable, slot)
	}
	return q, nil
}

func ParseQuarter(v string) (scrape.Semester, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.ToUpper(v), "Q"))
	if err != nil || n < int(scrape.FirstQuarter) || n > int(scrape.FourthQuarter) {
		return 0, fmt.Errorf("invalid quarter %q", v)
	}
	return scrape.Semester(n), nil
}

func ParseTimetableQuery(v string) (database.TimetableQuery, error) {
	day, period, ok := strings.Cut(v, "-")
	if !ok {
		return database.TimetableQuery{}, fmt.Errorf("invalid timetable %q: want <day>-<period>", v)
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < int(scrape.Sunday) || d > int(scrape.Saturday) {
		return database.TimetableQuery{}, fmt.Errorf("invalid timetable day %q", day)
	}
	p, err := strconv.Atoi(period)
	if err != nil || p < int(scrape.FirstPeriod) || p > int(scrape.SixthPeriod) {
		return database.TimetableQuery{}, fmt.Errorf("invalid timetable period %q", period)
	}
	return database.TimetableQuery{Day: scrape.Day(d), Period: scrape.Period(p)}, nil
}
