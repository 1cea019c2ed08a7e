package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BaseURL is the portal origin relative catalog links are resolved against.
const BaseURL = "https://www.ocw.titech.ac.jp/"

// CodeLength is the width of a catalog code such as "MEC.A201".
const CodeLength = 8

var baseURL, _ = url.Parse(BaseURL)

// absoluteURL rewrites a link found on a catalog page to an absolute URL.
func absoluteURL(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return BaseURL + strings.TrimPrefix(href, "/")
	}
	return baseURL.ResolveReference(ref).String()
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// lecturers collects every link in the cell, in document order.
func lecturers(cell *goquery.Selection) []Lecturer {
	var found []Lecturer
	cell.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		found = append(found, Lecturer{
			Name: text(a),
			URL:  absoluteURL(href),
		})
	})
	return found
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
