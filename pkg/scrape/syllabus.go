package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var countR = regexp.MustCompile(`\d+`)

// syllabusBlocks hands out the overview containers in page order. Once the
// page runs out of blocks every later field keeps its zero value.
type syllabusBlocks struct {
	divs *goquery.Selection
	next int
}

func (b *syllabusBlocks) take() (*goquery.Selection, bool) {
	if b.next >= b.divs.Length() {
		return nil, false
	}
	div := b.divs.Eq(b.next)
	b.next++
	return div, true
}

// paragraph returns the first paragraph of the next block.
func (b *syllabusBlocks) paragraph() string {
	div, ok := b.take()
	if !ok {
		return ""
	}
	return text(div.Find("p").First())
}

func parseOverview(overview *goquery.Selection) CourseDetail {
	var d CourseDetail
	blocks := &syllabusBlocks{divs: overview.ChildrenFiltered("div")}

	d.Abstract = blocks.paragraph()
	d.Goal = blocks.paragraph()
	d.Keywords = SplitKeywords(blocks.paragraph())
	if div, ok := blocks.take(); ok {
		d.Competencies = competencies(div)
	}
	d.Flow = blocks.paragraph()
	if div, ok := blocks.take(); ok {
		d.Schedule = lecturePlans(div.Find("tbody").First())
	}
	d.OutOfClass = blocks.paragraph()
	d.Textbook = blocks.paragraph()
	d.ReferenceBook = blocks.paragraph()
	d.Assessment = blocks.paragraph()
	if div, ok := blocks.take(); ok {
		d.RelatedCourses = relatedCourses(div.Find("ul").First())
	}
	d.Prerequisite = blocks.paragraph()
	d.Contact = blocks.paragraph()
	d.OfficeHours = blocks.paragraph()
	d.Note = blocks.paragraph()

	d.Experience = hasExperience(overview)
	return d
}

// SplitKeywords splits a keyword field on ideographic and ASCII commas.
func SplitKeywords(s string) []string {
	var keywords []string
	pieces := strings.FieldsFunc(s, func(r rune) bool {
		return r == '、' || r == '，' || r == ','
	})
	for _, piece := range pieces {
		if keyword := strings.TrimSpace(piece); keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}

func competencies(div *goquery.Selection) []string {
	var found []string
	div.Find(".skill_checked2").Each(func(_ int, s *goquery.Selection) {
		found = append(found, text(s))
	})
	return found
}

// lecturePlans reads the plan table. Rows without a lecture number cell are
// headers and are skipped.
func lecturePlans(tbody *goquery.Selection) []LecturePlan {
	var plans []LecturePlan
	tbody.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		number := tr.Find(".number_of_times").First()
		if number.Length() == 0 {
			return
		}
		count, _ := strconv.Atoi(countR.FindString(number.Text()))
		plans = append(plans, LecturePlan{
			Count:      count,
			Plan:       text(tr.Find(".plan").First()),
			Assignment: text(tr.Find(".assignment").First()),
		})
	})
	return plans
}

// relatedCourses keeps the code prefix of each entry, e.g. "MEC.A201 : 機械力学".
func relatedCourses(ul *goquery.Selection) []string {
	var codes []string
	ul.Find("li").Each(func(_ int, li *goquery.Selection) {
		codes = append(codes, truncate(text(li), CodeLength))
	})
	return codes
}

// hasExperience reports whether the page marks the course as taught by
// lecturers with practical work experience.
func hasExperience(overview *goquery.Selection) bool {
	experience := false
	overview.Find("h3").EachWithBreak(func(_ int, h3 *goquery.Selection) bool {
		if !strings.Contains(h3.Text(), "実務経験") {
			return true
		}
		experience = strings.HasPrefix(text(h3.NextAllFiltered("p").First()), "該当する")
		return false
	})
	return experience
}
