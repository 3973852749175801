// Package nairaland is a client for the nairaland forum. A Client logs in
// once, performs any number of operations with the session it got and logs
// out again.
package nairaland

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"nairaland-client/internal/components/assert"
	"nairaland-client/internal/components/telemetry"
	"nairaland-client/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const DefaultBaseUrl = "https://www.nairaland.com"

const (
	report_client_authenticate = "client.authenticate"
	report_client_execute      = "client.execute"
	report_client_terminate    = "client.terminate"
	report_client_operations   = "client.operations"
	report_client_parse_page   = "client.parse-page"
)

const (
	loginEndpoint  = "/do_login"
	logoutEndpoint = "/do_logout"
)

// logout gets its own deadline since it often runs after the caller's
// context is already done.
const logoutTimeout = time.Second * 10

type ClientOptions struct {
	// if unspecified, DefaultBaseUrl is used
	BaseUrl string
	// if unspecified, restyutil.DefaultUserAgent is used
	UserAgent string
	// per request timeout, 30 seconds if unspecified
	Timeout time.Duration
	// 0 means 2 requests per second, a negative value disables pacing
	RequestsPerSecond float64
	BrowserTransport  bool
	// replaces the http transport, mostly for tests
	Transport http.RoundTripper
	// if unspecified, DefaultErrorSelectors is used
	ErrorSelectors []string
	// if nil, DefaultDirectory is used
	Boards *Directory
	// receives a dump of every http exchange, can be nil
	Output telemetry.InstrumentOutput
}

// Client holds one session against the forum. Separate accounts need
// separate clients.
type Client struct {
	baseUrl        *url.URL
	http           *resty.Client
	tel            telemetry.API
	errorSelectors []string
	boards         Directory

	mu       sync.Mutex
	session  string
	executed int64
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	httpClient, err := restyutil.NewBrowserClient(restyutil.BrowserOptions{
		BaseUrl:           opts.BaseUrl,
		UserAgent:         opts.UserAgent,
		Timeout:           opts.Timeout,
		RequestsPerSecond: opts.RequestsPerSecond,
		BrowserTransport:  opts.BrowserTransport,
		Transport:         opts.Transport,
	})
	if err != nil {
		return nil, err
	}

	instanceId := uuid.NewString()[:8]
	tel = telemetry.NewScopedAPI("nairaland_client."+instanceId, tel)
	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	errorSelectors := opts.ErrorSelectors
	if len(errorSelectors) == 0 {
		errorSelectors = DefaultErrorSelectors
	}
	boards := DefaultDirectory()
	if opts.Boards != nil {
		boards = *opts.Boards
	}

	return &Client{
		baseUrl:        baseUrl,
		http:           httpClient,
		tel:            tel,
		errorSelectors: errorSelectors,
		boards:         boards,
	}, nil
}

func (c *Client) post(ctx context.Context, endpoint string, form map[string]string) (*resty.Response, error) {
	return c.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(endpoint)
}

func (c *Client) currentSession() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session, c.session != ""
}

// takeSession clears the session and returns what it was.
func (c *Client) takeSession() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	token := c.session
	c.session = ""
	return token
}

func (c *Client) resetCookies() {
	err := restyutil.ResetCookies(c.http)
	if err != nil {
		c.tel.ReportBroken(report_client_terminate, fmt.Errorf("reset cookie jar: %w", err))
	}
}

// Authenticated reports whether the client currently holds a session.
func (c *Client) Authenticated() bool {
	_, ok := c.currentSession()
	return ok
}

// errorMarker checks page against the client's error selectors.
func (c *Client) errorMarker(page []byte) (string, bool) {
	marker, found, err := findErrorMarker(page, c.errorSelectors)
	if err != nil {
		c.tel.ReportWarning(report_client_parse_page, fmt.Errorf("parse html: %w", err))
		return "", false
	}
	return marker, found
}

// Authenticate logs in with creds and keeps the session token the forum
// hands out. A session the client already holds is terminated first. On
// failure the client is left without a session.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) error {
	if c.Authenticated() {
		c.Terminate(ctx)
	}

	fail := func(statusCode int, reason string, err error) error {
		c.takeSession()
		c.resetCookies()
		return &AuthenticationError{
			Identifier: creds.Identifier(),
			StatusCode: statusCode,
			Reason:     reason,
			Err:        err,
		}
	}

	err := creds.validate()
	if err != nil {
		return fail(0, "invalid credentials", err)
	}

	res, err := c.post(ctx, loginEndpoint, map[string]string{
		"name":     creds.identifier,
		"password": creds.secret,
	})
	if err != nil {
		c.tel.ReportBroken(report_client_authenticate, fmt.Errorf("login request: %w", err))
		return fail(0, "login request", err)
	}
	if !isSuccessStatus(res.StatusCode()) {
		c.tel.ReportWarning(report_client_authenticate, "unexpected status", res.StatusCode())
		return fail(res.StatusCode(), "unexpected status", nil)
	}
	marker, found := c.errorMarker(res.Body())
	if found {
		c.tel.ReportWarning(report_client_authenticate, "login rejected", marker)
		return fail(res.StatusCode(), marker, nil)
	}

	token := extractSessionToken(res, c.http.GetClient().Jar, c.baseUrl)
	if token == "" {
		c.tel.ReportWarning(report_client_authenticate, "no session token in login response")
		return fail(res.StatusCode(), "no session token in response", nil)
	}

	c.mu.Lock()
	c.session = token
	c.mu.Unlock()

	c.tel.ReportDebug(report_client_authenticate, "logged in", creds.Identifier())
	return nil
}

// Execute performs op with params using the current session. It fails with
// a *NotAuthenticatedError, without touching the network, when there is no
// session.
func (c *Client) Execute(ctx context.Context, op Operation, params Params) (Response, error) {
	token, ok := c.currentSession()
	if !ok {
		return Response{}, &NotAuthenticatedError{Operation: op}
	}

	def, ok := operations[op]
	if !ok {
		return Response{}, &OperationError{Operation: op, Err: ErrUnsupportedOperation}
	}
	form, err := def.payload(params, token)
	if err != nil {
		return Response{}, &OperationError{Operation: op, Endpoint: def.endpoint, Err: err}
	}

	res, err := c.submit(ctx, op, def.endpoint, form)
	if err != nil {
		return res, err
	}
	if def.confirm != "" {
		res, err = c.submit(ctx, op, def.confirm, confirmationPayload(res.Body, def.confirm, token))
		if err != nil {
			return res, err
		}
	}

	c.mu.Lock()
	c.executed++
	executed := c.executed
	c.mu.Unlock()
	c.tel.ReportCount(report_client_operations, executed)

	return res, nil
}

func (c *Client) submit(ctx context.Context, op Operation, endpoint string, form map[string]string) (Response, error) {
	c.tel.ReportDebug(report_client_execute, string(op), endpoint)

	res, err := c.post(ctx, endpoint, form)
	if err != nil {
		c.tel.ReportBroken(
			report_client_execute,
			fmt.Errorf("%s request: %w", endpoint, err),
			string(op),
		)
		return Response{}, &OperationError{Operation: op, Endpoint: endpoint, Err: err}
	}

	response := newResponse(op, endpoint, res)
	if !isSuccessStatus(res.StatusCode()) {
		c.tel.ReportWarning(report_client_execute, string(op), endpoint, res.StatusCode())
		return response, &OperationError{
			Operation:  op,
			Endpoint:   endpoint,
			StatusCode: res.StatusCode(),
			Body:       response.Body,
			Reason:     "unexpected status",
		}
	}
	marker, found := c.errorMarker(response.Body)
	if found {
		c.tel.ReportWarning(report_client_execute, string(op), endpoint, marker)
		return response, &OperationError{
			Operation:  op,
			Endpoint:   endpoint,
			StatusCode: res.StatusCode(),
			Body:       response.Body,
			Reason:     marker,
		}
	}

	return response, nil
}

// Terminate logs out and drops the session. The client always ends up
// without a session, a failed logout is only reported. Calling it without a
// session does nothing.
func (c *Client) Terminate(ctx context.Context) {
	token := c.takeSession()
	if token == "" {
		return
	}
	defer c.resetCookies()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutTimeout)
	defer cancel()

	res, err := c.post(ctx, logoutEndpoint, map[string]string{sessionField: token})
	if err != nil {
		c.tel.ReportWarning(report_client_terminate, fmt.Errorf("logout request: %w", err))
		return
	}
	if !isSuccessStatus(res.StatusCode()) {
		c.tel.ReportWarning(report_client_terminate, "unexpected status", res.StatusCode())
	}
}

// WithSession authenticates, runs fn and terminates the session on every
// way out of fn, panics included.
func (c *Client) WithSession(ctx context.Context, creds Credentials, fn func(ctx context.Context) error) error {
	err := c.Authenticate(ctx, creds)
	if err != nil {
		return err
	}
	defer c.Terminate(ctx)
	return fn(ctx)
}

// LookupBoardID looks name up in the client's board directory.
func (c *Client) LookupBoardID(name string) (int, error) {
	return c.boards.Lookup(name)
}

func (c *Client) CreateTopic(ctx context.Context, title, body string, boardId int) (Response, error) {
	return c.Execute(ctx, OpCreateTopic, Params{
		ParamTitle:   title,
		ParamBody:    body,
		ParamBoardId: strconv.Itoa(boardId),
	})
}

// ChangePassword rotates the account's password from oldSecret to newSecret.
func (c *Client) ChangePassword(ctx context.Context, oldSecret, newSecret string) (Response, error) {
	return c.Execute(ctx, OpChangePassword, Params{
		ParamOldSecret: oldSecret,
		ParamNewSecret: newSecret,
	})
}

func (c *Client) FollowMember(ctx context.Context, memberId string) (Response, error) {
	return c.Execute(ctx, OpFollowMember, Params{ParamMemberId: memberId})
}

// RequestDeactivation asks the forum for an account deactivation email,
// requesting it and confirming the request in one go.
func (c *Client) RequestDeactivation(ctx context.Context) (Response, error) {
	return c.Execute(ctx, OpRequestDeactivation, nil)
}
