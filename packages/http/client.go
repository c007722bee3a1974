package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
	"github.com/abdul-hamid-achik/fetchquest/packages/core/options"
	"github.com/rs/zerolog"
)

const (
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
)

// Transport sends one request and returns the response with its body still unread.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// TransportConfig is the connection-level policy derived from options.
type TransportConfig struct {
	UserAgent       string
	FollowRedirects bool
	MaxRedirects    int
	ValidateSSL     bool
	Timeout         time.Duration
}

// NewTransportConfig derives the transport policy from opts.
func NewTransportConfig(opts *options.Options) TransportConfig {
	ua := opts.UserAgent
	if ua == "" {
		ua = options.DefaultUserAgent
	}
	return TransportConfig{
		UserAgent:       ua,
		FollowRedirects: opts.FollowRedirects,
		MaxRedirects:    DefaultMaxRedirects,
		ValidateSSL:     !opts.DisableSSLVerification,
		Timeout:         opts.Timeout,
	}
}

// Client is the net/http backed Transport.
type Client struct {
	httpClient *http.Client
	config     TransportConfig
	base       http.RoundTripper
	logger     zerolog.Logger
}

type ClientOption func(*Client)

// NewClient builds a client. Without options it validates certificates, does not
// follow redirects and has no timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		config: TransportConfig{
			UserAgent:    options.DefaultUserAgent,
			MaxRedirects: DefaultMaxRedirects,
			ValidateSSL:  true,
		},
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	base := c.base
	if base == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		// one request per process, nothing to pool
		transport.DisableKeepAlives = true
		// bodies and Content-Encoding reach the output as the server sent them
		transport.DisableCompression = true

		if !c.config.ValidateSSL {
			transport.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: true,
			}
		}
		base = transport
	}

	if !c.config.ValidateSSL {
		c.logger.Warn().Msg("TLS certificate verification is DISABLED (--disable-ssl-verification); the server's identity is not checked")
	}

	c.httpClient = &http.Client{
		Transport:     userAgent{value: c.config.UserAgent, base: base},
		Timeout:       c.config.Timeout,
		CheckRedirect: c.redirectPolicy,
	}

	return c
}

// WithTransportConfig applies a whole TransportConfig
func WithTransportConfig(cfg TransportConfig) ClientOption {
	return func(c *Client) {
		c.config = cfg
		if c.config.MaxRedirects <= 0 {
			c.config.MaxRedirects = DefaultMaxRedirects
		}
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.config.Timeout = d
	}
}

func WithFollowRedirects(follow bool) ClientOption {
	return func(c *Client) {
		c.config.FollowRedirects = follow
	}
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.config.MaxRedirects = max
	}
}

// WithValidateSSL enables or disables SSL certificate validation
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.config.ValidateSSL = validate
	}
}

func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.config.UserAgent = ua
	}
}

func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRoundTripper replaces the base transport. TLS settings are then up to rt.
func WithRoundTripper(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.base = rt
	}
}

// Config returns the effective transport policy
func (c *Client) Config() TransportConfig {
	return c.config
}

func (c *Client) redirectPolicy(req *http.Request, via []*http.Request) error {
	if !c.config.FollowRedirects {
		return http.ErrUseLastResponse
	}
	if len(via) > c.config.MaxRedirects {
		return fmt.Errorf("stopped after %d redirects", c.config.MaxRedirects)
	}
	c.logger.Debug().Str("location", req.URL.String()).Int("hop", len(via)).Msg("following redirect")
	return nil
}

// Send dispatches req once. The response body is left unread for the caller.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := req.toHTTP(ctx)
	if err != nil {
		_ = req.Close()
		return nil, err
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Int("headers", len(req.Headers)).
		Str("body", bodyKind(req).String()).
		Msg("sending request")

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		var e *errs.Error
		if errors.As(err, &e) {
			return nil, e
		}
		return nil, errs.New(errs.KindTransport, "send request", err)
	}

	resp := newResponse(httpResp, time.Since(start))
	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", resp.Duration).
		Msg("response received")

	return resp, nil
}

func bodyKind(req *Request) BodyKind {
	if req.Body == nil {
		return BodyNone
	}
	return req.Body.Kind()
}

// userAgent is an http.RoundTripper that sets the User-Agent unless the request
// already carries one.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get("User-Agent") != "" || ua.value == "" {
		return ua.base.RoundTrip(r)
	}
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

// ValidateURL checks that a URL is well-formed and uses an allowed scheme
func ValidateURL(rawURL string) error {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return errs.New(errs.KindArgument, "invalid URL", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errs.Errorf(errs.KindArgument, "invalid URL", "unsupported URL scheme: %q (only http and https are allowed)", u.Scheme)
	}

	if u.Host == "" {
		return errs.Errorf(errs.KindArgument, "invalid URL", "URL must have a host")
	}

	return nil
}
