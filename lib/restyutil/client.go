package restyutil

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is the browser identification the forum is known to
// accept, requests without one are rejected.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_9_2) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/36.0.1944.0 Safari/537.36"

// MaxRedirects is how many redirects a single request follows before it
// fails.
const MaxRedirects = 10

type BrowserOptions struct {
	BaseUrl string
	// if unspecified, DefaultUserAgent is used
	UserAgent string
	// if unspecified, requests time out after 30 seconds
	Timeout time.Duration
	// maximum requests per second, 0 means 2, a negative value disables pacing
	RequestsPerSecond float64
	// adds the rest of the headers a real browser would send
	BrowserTransport bool
	// replaces the default http transport, mostly for tests
	Transport http.RoundTripper
}

// NewBrowserClient creates a resty client that looks like a browser to the
// site at opts.BaseUrl: it keeps cookies in its own jar, sends a browser
// user-agent, only follows up to MaxRedirects redirects within the same
// host and paces its requests, redirect hops included.
func NewBrowserClient(opts BrowserOptions) (*resty.Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", opts.BaseUrl)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	err = ResetCookies(client)
	if err != nil {
		return nil, err
	}
	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	}
	if opts.BrowserTransport {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(timeout)

	redirectPolicies := []any{
		resty.FlexibleRedirectPolicy(MaxRedirects),
		resty.DomainCheckRedirectPolicy(baseUrl.Hostname()),
	}

	if opts.RequestsPerSecond >= 0 {
		perSecond := opts.RequestsPerSecond
		if perSecond == 0 {
			perSecond = 2
		}
		// max burst >= 2 just means that no requests will be dropped
		rateLimiter := rate.NewLimiter(rate.Limit(perSecond), 2)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
		// redirect hops never pass through OnBeforeRequest
		redirectPolicies = append(redirectPolicies, resty.RedirectPolicyFunc(func(req *http.Request, _ []*http.Request) error {
			return rateLimiter.Wait(req.Context())
		}))
	}

	client.SetRedirectPolicy(redirectPolicies...)

	return client, nil
}

// ResetCookies replaces the cookie jar of client with an empty one.
func ResetCookies(client *resty.Client) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	client.SetCookieJar(jar)
	return nil
}
