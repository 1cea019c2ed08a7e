package scrape

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

type Unmarshaler interface {
	UnmarshalDoc(doc *goquery.Document) error
}

type Scrapable interface {
	Urls() []string
	Unmarshaler
}

// Scraper retrieves the pages of a Scrapable and hands each one to it.
type Scraper interface {
	Scrape(ctx context.Context, s Scrapable) error
}

// Collector is a Scraper backed by colly.
type Collector struct {
	c *colly.Collector
}

// NewCollector creates a Collector. An empty cacheDir disables the web
// cache, which is needed whenever fingerprints must be observed fresh.
func NewCollector(cacheDir string) *Collector {
	c := colly.NewCollector()
	c.AllowURLRevisit = true
	c.CacheDir = cacheDir
	return &Collector{c: c}
}

func (col *Collector) Scrape(ctx context.Context, s Scrapable) error {
	var e error
	c := col.c.Clone() // same collector but without old callbacks
	c.OnResponse(func(res *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
		if err != nil {
			e = err
			return
		}
		e = s.UnmarshalDoc(doc)
	})

	for _, url := range s.Urls() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Visit(url); err != nil {
			return err
		}
		if e != nil {
			return e
		}
	}
	return nil
}
