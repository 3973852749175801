package nairaland

import (
	"bytes"
	"fmt"
	"net/http"
	"unicode/utf8"

	"nairaland-client/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Response is what the forum answered to an operation, the forum replies
// with html pages so interpreting the body is left to the caller.
type Response struct {
	Operation  Operation
	Endpoint   string
	StatusCode int
	// the url of the final page after redirects
	Url    string
	Header http.Header
	Body   []byte
}

// DefaultErrorSelectors are the elements whose presence on a page means the
// forum refused what was asked of it. A login form showing up means the
// session was not accepted.
var DefaultErrorSelectors = []string{
	"div.error",
	"p.error",
	".errors",
	`form[action$="/do_login"]`,
}

const markerTextLength = 120

// findErrorMarker reports the first of selectors that matches an element of
// page, along with the element's text.
func findErrorMarker(page []byte, selectors []string) (string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", false, err
	}
	for _, selector := range selectors {
		match := doc.Find(selector).First()
		if match.Length() == 0 {
			continue
		}
		text := htmlutil.Normalize(match.Text())
		if text == "" {
			return selector, true, nil
		}
		if utf8.RuneCountInString(text) > markerTextLength {
			text = string([]rune(text)[:markerTextLength]) + "..."
		}
		return fmt.Sprintf("%s: %s", selector, text), true, nil
	}
	return "", false, nil
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}

func newResponse(op Operation, endpoint string, res *resty.Response) Response {
	finalUrl := res.Request.URL
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		finalUrl = res.RawResponse.Request.URL.String()
	}
	return Response{
		Operation:  op,
		Endpoint:   endpoint,
		StatusCode: res.StatusCode(),
		Url:        finalUrl,
		Header:     res.Header(),
		Body:       res.Body(),
	}
}
