package scrape

import (
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// ErrListingNotFound is returned for a page without a catalog listing table.
var ErrListingNotFound = errors.New("listing table not found")

// ParseListing decodes a department listing into one summary per catalog
// row. Rows are kept even when their code is empty.
func ParseListing(doc *goquery.Document) ([]CourseSummary, error) {
	list := doc.Find(".ranking-list").First()
	if list.Length() == 0 {
		return nil, ErrListingNotFound
	}

	rows := list.Find("tbody tr")
	courses := make([]CourseSummary, 0, rows.Length())
	rows.Each(func(_ int, s *goquery.Selection) {
		courses = append(courses, CourseSummary{
			Code:        text(s.Find(".code").First()),
			Title:       courseTitle(s.Find(".course_title").First()),
			Lecturers:   lecturers(s.Find(".lecturer").First()),
			Department:  text(s.Find(".opening_department a").First()),
			Term:        text(s.Find(".start").First()),
			Fingerprint: text(s.Find(".sylbs").First()),
		})
	})
	return courses, nil
}

// courseTitle takes the first link of the title cell. A cell without a link
// yields an empty title.
func courseTitle(cell *goquery.Selection) CourseTitle {
	a := cell.Find("a").First()
	if a.Length() == 0 {
		return CourseTitle{}
	}
	href, _ := a.Attr("href")
	return CourseTitle{
		Title: text(a),
		URL:   absoluteURL(href),
	}
}

// Listing is a department listing page to be scraped.
type Listing struct {
	URL     string
	Courses []CourseSummary
}

func (l *Listing) Urls() []string {
	return []string{l.URL}
}

func (l *Listing) UnmarshalDoc(doc *goquery.Document) error {
	courses, err := ParseListing(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", l.URL, err)
	}
	l.Courses = courses
	return nil
}
