package http

import (
	"errors"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
)

// ErrBodyConsumed is returned when the response body is read a second time
var ErrBodyConsumed = errors.New("response body already consumed")

// Response exposes status and headers immediately. The body is a stream that is read
// lazily and at most once.
type Response struct {
	StatusCode int
	Status     string
	Proto      string
	Header     http.Header
	Duration   time.Duration

	body     io.ReadCloser
	consumed bool
	closed   bool
}

func newResponse(r *http.Response, d time.Duration) *Response {
	header := r.Header
	// net/http moves Transfer-Encoding out of Header
	if len(r.TransferEncoding) > 0 && header.Get("Transfer-Encoding") == "" {
		header = header.Clone()
		if header == nil {
			header = http.Header{}
		}
		header["Transfer-Encoding"] = r.TransferEncoding
	}
	resp := NewResponse(r.StatusCode, header, r.Body)
	resp.Status = r.Status
	resp.Proto = r.Proto
	resp.Duration = d
	return resp
}

// NewResponse wraps an unread body. A nil body behaves as empty.
func NewResponse(statusCode int, header http.Header, body io.ReadCloser) *Response {
	if header == nil {
		header = http.Header{}
	}
	if body == nil {
		body = http.NoBody
	}
	return &Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Proto:      "HTTP/1.1",
		Header:     header,
		body:       body,
	}
}

// ReadText reads the whole body and returns it as text. The body is closed afterwards
// and cannot be read again. Non UTF-8 content is an encoding error.
func (r *Response) ReadText() (string, error) {
	if r.consumed || r.closed {
		return "", ErrBodyConsumed
	}
	r.consumed = true
	defer r.Close()

	data, err := io.ReadAll(r.body)
	if err != nil {
		return "", errs.New(errs.KindTransport, "read response body", err)
	}
	if !utf8.Valid(data) {
		return "", errs.Errorf(errs.KindEncoding, "decode response body", "body is not valid UTF-8 text (%d bytes)", len(data))
	}
	return string(data), nil
}

// Close releases the body without reading it. Safe to call more than once.
func (r *Response) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.body.Close()
}

// Consumed reports whether the body has been read.
func (r *Response) Consumed() bool {
	return r.consumed
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
