package telemetry

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// RedactedFields are form fields whose values never leave the process in a
// dump.
var RedactedFields = []string{"password", "password2", "oldpassword", "session"}

const redacted = "[redacted]"

// redactCookie keeps the cookie names of a Cookie or Set-Cookie header value
// and drops their values, Set-Cookie attributes are kept as is.
func redactCookie(header, value string) string {
	pairs := strings.Split(value, ";")
	for i, pair := range pairs {
		if header == "Set-Cookie" && i > 0 {
			break
		}
		name, _, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			continue
		}
		pairs[i] = name + "=" + redacted
		if i > 0 {
			pairs[i] = " " + pairs[i]
		}
	}
	return strings.Join(pairs, ";")
}

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	for _, k := range keys {
		for _, v := range headers[k] {
			if k == "Cookie" || k == "Set-Cookie" {
				v = redactCookie(k, v)
			}
			out.WriteString(fmt.Sprintf("%s: %s\n", k, v))
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func redactForm(form url.Values) string {
	out := url.Values{}
	for k, v := range form {
		out[k] = v
	}
	for _, field := range RedactedFields {
		if out.Has(field) {
			out.Set(field, redacted)
		}
	}
	return out.Encode()
}

func formatRequestBody(req *resty.Request) string {
	if len(req.FormData) > 0 {
		return redactForm(req.FormData)
	}
	raw := req.RawRequest
	if raw == nil || raw.GetBody == nil {
		return "<NO BODY AVAILABLE>"
	}
	body, err := raw.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	readBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return string(readBody)
}

// 1: request method
// 2: request url
// 3: request headers in ("Key: Value" format)
// 4: request body
// 5: response status
// 6: response url
// 7: response headers in ("Key: Value" format)
// 8: response body
const messageInfoTemplate = `---- REQUEST ----

%s %s

%s

%s

---- RESPONSE ----

%s %s

%s

%s`

func formatHttpMessage(res *resty.Response) string {
	requestHeaders := formatHeaders(res.Request.RawRequest.Header)
	responseHeaders := formatHeaders(res.Header())

	responseUrl := res.Request.URL
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		responseUrl = res.RawResponse.Request.URL.String()
	}

	return fmt.Sprintf(
		messageInfoTemplate,

		res.Request.Method, res.Request.URL,
		requestHeaders,
		formatRequestBody(res.Request),

		strconv.Itoa(res.StatusCode()), responseUrl,
		responseHeaders,
		res.String(),
	)
}
