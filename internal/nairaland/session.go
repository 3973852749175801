package nairaland

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// extractSessionToken returns the session token the forum handed out in
// res, or "" if there is none. It is the only place that knows where the
// token lives, looking in order at:
//
//  1. a `session` cookie set by the response itself
//  2. a `session` cookie the jar holds for base, which is where it ends up
//     when the cookie was set on a redirect before the final response
//  3. a hidden `session` input in the response body
func extractSessionToken(res *resty.Response, jar http.CookieJar, base *url.URL) string {
	for _, cookie := range res.Cookies() {
		if cookie.Name == sessionField && cookie.Value != "" {
			return cookie.Value
		}
	}

	if jar != nil {
		for _, cookie := range jar.Cookies(base) {
			if cookie.Name == sessionField && cookie.Value != "" {
				return cookie.Value
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return ""
	}
	return doc.Find("input[name=" + sessionField + "]").First().AttrOr("value", "")
}
