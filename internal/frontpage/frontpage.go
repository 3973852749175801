// Package frontpage reads the featured topics off the forum's front page.
package frontpage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"nairaland-client/internal/components/assert"
	"nairaland-client/internal/components/telemetry"
	"nairaland-client/lib/htmlutil"
	"nairaland-client/lib/restyutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	report_frontpage_fetch = "frontpage.fetch"
	report_frontpage_count = "frontpage.featured"
)

const featuredSelector = "td.featured a"

type Topic struct {
	Title string
	Url   *url.URL
}

type Scraper struct {
	baseUrl *url.URL
	http    *resty.Client
	tel     telemetry.API
}

func NewScraper(opts restyutil.BrowserOptions, tel telemetry.API, output telemetry.InstrumentOutput) (Scraper, error) {
	assert.NotNil(tel)

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return Scraper{}, err
	}
	client, err := restyutil.NewBrowserClient(opts)
	if err != nil {
		return Scraper{}, err
	}

	tel = telemetry.NewScopedAPI("frontpage", tel)
	telemetry.InstrumentResty(client, tel, output)

	return Scraper{
		baseUrl: baseUrl,
		http:    client,
		tel:     tel,
	}, nil
}

// Featured returns the topics featured on the front page in the order they
// are shown.
func (s Scraper) Featured(ctx context.Context) ([]Topic, error) {
	res, err := s.http.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		s.tel.ReportBroken(report_frontpage_fetch, err)
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch front page: unexpected status %d", res.StatusCode())
	}

	topics, err := ParseFeatured(s.baseUrl, res.Body())
	if err != nil {
		s.tel.ReportBroken(report_frontpage_fetch, err)
		return nil, err
	}
	s.tel.ReportCount(report_frontpage_count, int64(len(topics)))
	return topics, nil
}

// ParseFeatured extracts the featured topics out of a front page, links are
// resolved against base.
func ParseFeatured(base *url.URL, page []byte) ([]Topic, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	var topics []Topic
	for _, anchor := range htmlutil.GetAnchors(base, doc.Find(featuredSelector)) {
		if anchor.Name == "" {
			continue
		}
		topics = append(topics, Topic{
			Title: anchor.Name,
			Url:   anchor.Url,
		})
	}
	return topics, nil
}
