package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
)

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "RustHttpClient/0.1.0"

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods lists the supported request methods in flag-help order
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

// ParseMethod maps a case-insensitive method name onto a supported Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", errs.Errorf(errs.KindArgument, "parse request type", "unsupported method %q (use get, post, put or delete)", s)
}

func (m Method) String() string {
	return string(m)
}

// Options is everything one invocation needs. It is built once and never mutated after
// Validate succeeds.
type Options struct {
	Method    Method
	URL       string
	UserAgent string

	FollowRedirects        bool
	DisableSSLVerification bool
	Timeout                time.Duration

	Cookie      *string
	BearerToken *string
	Headers     []string
	RequestID   bool

	// Data and FormFile are mutually exclusive body sources; FormFile wins when both are set
	Data     *string
	FormFile string

	Output         string
	IncludeHeaders bool
	Head           bool
	Silent         bool
	Verbose        bool
	Query          string
}

// New returns Options for a GET of url with defaults applied.
func New(url string) *Options {
	return &Options{
		Method:    MethodGet,
		URL:       url,
		UserAgent: DefaultUserAgent,
	}
}

// Validate checks the fields flag parsing cannot.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.URL) == "" {
		return errs.Errorf(errs.KindArgument, "validate options", "url is required")
	}
	if _, err := ParseMethod(string(o.Method)); err != nil {
		return err
	}
	if o.Timeout < 0 {
		return errs.Errorf(errs.KindArgument, "validate options", "timeout must not be negative")
	}
	return nil
}

// HasBody reports whether any body source was supplied.
func (o *Options) HasBody() bool {
	return o.FormFile != "" || o.Data != nil
}

// BodyConflict reports whether both a raw payload and a form file were supplied.
func (o *Options) BodyConflict() bool {
	return o.FormFile != "" && o.Data != nil
}

// StdoutSink reports whether output goes to standard output.
func (o *Options) StdoutSink() bool {
	return o.Output == "" || o.Output == "-"
}

func (o *Options) String() string {
	return fmt.Sprintf("%s %s", o.Method, o.URL)
}

// StringPtr returns a pointer to s, for optional fields.
func StringPtr(s string) *string {
	return &s
}
