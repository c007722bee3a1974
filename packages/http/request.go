package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
	"github.com/abdul-hamid-achik/fetchquest/packages/core/options"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the generated id when --request-id is set
const RequestIDHeader = "X-Request-Id"

// Header is one outgoing header line. Requests keep headers as an ordered list so
// repeated names are sent as separate values.
type Header struct {
	Name  string
	Value string
}

// Request is the fully specified outgoing request. It is consumed by exactly one Send.
type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    BodySource
}

func (r *Request) AddHeader(name, value string) *Request {
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
	return r
}

// HeaderValues returns every value sent under name, matched case-insensitively, in order.
func (r *Request) HeaderValues(name string) []string {
	var values []string
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			values = append(values, h.Value)
		}
	}
	return values
}

// Close releases the body source. Only needed when the request is never handed to Send.
func (r *Request) Close() error {
	if r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

// toHTTP converts the descriptor into a net/http request. Ownership of the body moves with it.
func (r *Request) toHTTP(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	contentLength := int64(-1)
	if r.Body != nil {
		body = r.Body.Reader()
		contentLength = r.Body.ContentLength()
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, errs.New(errs.KindArgument, "create request", err)
	}
	if body != nil && contentLength >= 0 {
		httpReq.ContentLength = contentLength
	}

	// net/http takes the Host header from Request.Host and ignores it in Header
	if hosts := r.HeaderValues("Host"); len(hosts) > 0 {
		httpReq.Host = hosts[0]
	}
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, "Host") {
			continue
		}
		httpReq.Header.Add(h.Name, h.Value)
	}

	return httpReq, nil
}

// ParseHeader splits a raw "Name: Value" token on its first colon. Tokens without a
// colon, or with an empty name or value after trimming, are rejected.
func ParseHeader(raw string) (Header, bool) {
	name, value, found := strings.Cut(raw, ":")
	if !found {
		return Header{}, false
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return Header{}, false
	}
	return Header{Name: name, Value: value}, true
}

type buildConfig struct {
	logger    zerolog.Logger
	requestID func() string
}

// BuildOption customises BuildRequest
type BuildOption func(*buildConfig)

// WithBuildLogger sets the logger used for build-time warnings
func WithBuildLogger(l zerolog.Logger) BuildOption {
	return func(c *buildConfig) {
		c.logger = l
	}
}

// WithRequestIDFunc replaces the X-Request-Id generator
func WithRequestIDFunc(fn func() string) BuildOption {
	return func(c *buildConfig) {
		c.requestID = fn
	}
}

// BuildRequest turns options into a request descriptor. The URL is validated and any
// upload file is opened here; no network I/O happens until Send.
func BuildRequest(opts *options.Options, buildOpts ...BuildOption) (*Request, error) {
	cfg := buildConfig{
		logger:    zerolog.Nop(),
		requestID: uuid.NewString,
	}
	for _, o := range buildOpts {
		o(&cfg)
	}

	method, err := options.ParseMethod(string(opts.Method))
	if err != nil {
		return nil, err
	}

	if err := ValidateURL(opts.URL); err != nil {
		return nil, err
	}

	req := &Request{
		Method: method.String(),
		URL:    opts.URL,
	}

	if opts.Cookie != nil {
		req.AddHeader("Cookie", *opts.Cookie)
	}

	for _, raw := range opts.Headers {
		h, ok := ParseHeader(raw)
		if !ok {
			cfg.logger.Debug().Str("header", raw).Msg("dropping malformed header")
			continue
		}
		req.AddHeader(h.Name, h.Value)
	}

	if opts.BearerToken != nil {
		req.AddHeader("Authorization", "Bearer "+*opts.BearerToken)
	}

	if opts.RequestID {
		req.AddHeader(RequestIDHeader, cfg.requestID())
	}

	if opts.BodyConflict() {
		cfg.logger.Warn().
			Str("form_file", opts.FormFile).
			Msg("both --form-file and --data given; uploading the file and ignoring --data")
	}

	body, err := ResolveBody(opts)
	if err != nil {
		return nil, err
	}
	req.Body = body

	if ct := body.ContentType(); ct != "" {
		req.AddHeader("Content-Type", ct)
	}

	return req, nil
}
