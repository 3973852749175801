package frontpage

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"nairaland-client/internal/components/telemetry"
	"nairaland-client/internal/nairaland/nairalandtest"
	"nairaland-client/lib/restyutil"

	"github.com/stretchr/testify/require"
)

func TestFeatured(t *testing.T) {
	forum := nairalandtest.NewForum(t)
	forum.SetFeatured([]nairalandtest.Featured{
		{Title: "Go 1.24 Released", Href: "/1234/go-released"},
		{Title: "Lagos Traffic Update", Href: "https://www.nairaland.com/5678/lagos-traffic"},
	})

	tel := &telemetry.Recorder{}
	scraper, err := NewScraper(restyutil.BrowserOptions{
		BaseUrl:           forum.URL(),
		RequestsPerSecond: -1,
	}, tel, nil)
	require.NoError(t, err)

	topics, err := scraper.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 2)

	require.Equal(t, "Go 1.24 Released", topics[0].Title)
	require.Equal(t, forum.URL()+"/1234/go-released", topics[0].Url.String())
	require.Equal(t, "Lagos Traffic Update", topics[1].Title)
	require.Equal(t, "https://www.nairaland.com/5678/lagos-traffic", topics[1].Url.String())

	counts := tel.Reports(telemetry.REPORT_COUNT)
	require.Len(t, counts, 1)

	requests := forum.Requests("/")
	require.Len(t, requests, 1)
	require.Equal(t, restyutil.DefaultUserAgent, requests[0].UserAgent)
}

func TestFeaturedStatus(t *testing.T) {
	forum := nairalandtest.NewForum(t)
	forum.FailWith("/", http.StatusServiceUnavailable)

	scraper, err := NewScraper(restyutil.BrowserOptions{
		BaseUrl:           forum.URL(),
		RequestsPerSecond: -1,
	}, &telemetry.Recorder{}, nil)
	require.NoError(t, err)

	_, err = scraper.Featured(context.Background())
	require.ErrorContains(t, err, "503")
}

func TestParseFeatured(t *testing.T) {
	base, err := url.Parse("https://www.nairaland.com")
	require.NoError(t, err)

	page := []byte(`<html><body>
<table summary="links"><tr><td class="featured w">
	<a href="/1/first">First
		Topic</a>
	<a href="">No href</a>
	<a href="/2/blank"></a>
	<a href="/3/third">Third</a>
</td></tr></table>
<a href="/elsewhere">Not featured</a>
</body></html>`)

	topics, err := ParseFeatured(base, page)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	require.Equal(t, "First Topic", topics[0].Title)
	require.Equal(t, "https://www.nairaland.com/1/first", topics[0].Url.String())
	require.Equal(t, "Third", topics[1].Title)
}
