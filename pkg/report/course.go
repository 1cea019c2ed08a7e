package report

import (
	"sort"
	"strings"

	"github.com/openswoop/syllabank/pkg/database"
)

// WriteCourseList writes the course list to name.csv, ordered by code.
func WriteCourseList(name string, items []database.CourseListItem) error {
	rows := make(courseReport, len(items))
	copy(rows, items)
	sort.Stable(rows)
	if !strings.HasSuffix(name, ".csv") {
		name += ".csv"
	}
	return WriteCsv(rows, name)
}

type courseReport []database.CourseListItem

func (r courseReport) Len() int {
	return len(r)
}

func (r courseReport) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

func (r courseReport) Less(i, j int) bool {
	if r[i].Code != r[j].Code {
		return r[i].Code < r[j].Code
	}
	return r[i].ID < r[j].ID
}
