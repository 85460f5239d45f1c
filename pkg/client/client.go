// Package client is the Go SDK for the salon REST API.
package client

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds every request. Requests are never retried.
const DefaultTimeout = 15 * time.Second

// Client talks to the salon API and keeps the caller's session
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	navigator  Navigator

	timeout   time.Duration
	transport http.RoundTripper

	Auth         *AuthService
	Appointments *AppointmentService
	Products     *ProductService
	Categories   *CategoryService
	Services     *ServiceCatalogService
	Team         *TeamService
	Checkout     *CheckoutService
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTransport sets the round tripper beneath the auth and tracing layers
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// WithSession sets the session store; the default is in-memory
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// WithNavigator sets where 401/403 redirects go; the default drops them
func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

// New builds a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   DefaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		c.session = NewSession(nil)
	}
	if c.navigator == nil {
		c.navigator = discardNavigator{}
	}

	c.httpClient = &http.Client{
		Timeout: c.timeout,
		Transport: &authTransport{
			base:      otelhttp.NewTransport(c.transport),
			session:   c.session,
			navigator: c.navigator,
		},
	}

	c.Auth = &AuthService{c: c}
	c.Appointments = &AppointmentService{c: c}
	c.Products = &ProductService{c: c}
	c.Categories = &CategoryService{c: c}
	c.Services = &ServiceCatalogService{c: c}
	c.Team = &TeamService{c: c}
	c.Checkout = &CheckoutService{c: c}
	return c
}

// Session returns the client's session
func (c *Client) Session() *Session {
	return c.session
}

// BaseURL returns the API root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestStateKey struct{}

// requestState travels in the request context. redirected marks that the
// interceptor already handled an auth failure for this request; clearErr is
// set when the session could not be reset during that redirect.
type requestState struct {
	private    bool
	redirected atomic.Bool
	clearErr   error
}

func withRequestState(ctx context.Context, private bool) (context.Context, *requestState) {
	state := &requestState{private: private}
	return context.WithValue(ctx, requestStateKey{}, state), state
}

func requestStateFrom(ctx context.Context) *requestState {
	state, _ := ctx.Value(requestStateKey{}).(*requestState)
	return state
}

// authTransport attaches the bearer token to private requests and turns
// 401/403 responses into a session reset plus one navigation.
type authTransport struct {
	base      http.RoundTripper
	session   *Session
	navigator Navigator
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	state := requestStateFrom(req.Context())
	if state == nil || !state.private {
		return t.base.RoundTrip(req)
	}

	if token := t.session.Token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		t.redirect(req.Context(), state, LoginPath)
	case http.StatusForbidden:
		t.redirect(req.Context(), state, HomePath)
	}
	return resp, nil
}

func (t *authTransport) redirect(ctx context.Context, state *requestState, path string) {
	if !state.redirected.CompareAndSwap(false, true) {
		return
	}
	if err := t.session.ClearAuth(); err != nil {
		state.clearErr = err
		zerolog.Ctx(ctx).Error().Err(err).Str("redirect", path).Msg("failed to clear session after auth failure")
	}
	t.navigator.Navigate(path)
}
