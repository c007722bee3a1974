package http

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
	"github.com/abdul-hamid-achik/fetchquest/packages/core/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantName  string
		wantValue string
		wantOK    bool
	}{
		{"simple", "Accept: application/json", "Accept", "application/json", true},
		{"extra colons stay in value", "X-Time: 10:30:00", "X-Time", "10:30:00", true},
		{"surrounding whitespace trimmed", "  X-Key  :   value  ", "X-Key", "value", true},
		{"no space after colon", "X-A:b", "X-A", "b", true},
		{"url value", "Referer: http://example.com:8080/x", "Referer", "http://example.com:8080/x", true},
		{"no colon", "NotAHeader", "", "", false},
		{"empty name", ": value", "", "", false},
		{"empty value", "X-Empty:", "", "", false},
		{"whitespace value", "X-Empty:   ", "", "", false},
		{"empty token", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := ParseHeader(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, h.Name)
			assert.Equal(t, tt.wantValue, h.Value)
		})
	}
}

func TestBuildRequest_HeaderOrder(t *testing.T) {
	opts := options.New("http://example.com/api")
	opts.Cookie = options.StringPtr("session=abc; theme=dark")
	opts.Headers = []string{
		"X-Dup: one",
		"malformed",
		"X-Time: 10:30:00",
		"X-Dup: two",
		"Authorization: Basic Zm9vOmJhcg==",
	}
	opts.BearerToken = options.StringPtr("T0KEN")

	req, err := BuildRequest(opts)
	require.NoError(t, err)

	assert.Equal(t, []Header{
		{Name: "Cookie", Value: "session=abc; theme=dark"},
		{Name: "X-Dup", Value: "one"},
		{Name: "X-Time", Value: "10:30:00"},
		{Name: "X-Dup", Value: "two"},
		{Name: "Authorization", Value: "Basic Zm9vOmJhcg=="},
		{Name: "Authorization", Value: "Bearer T0KEN"},
	}, req.Headers)
	assert.Equal(t, []string{"one", "two"}, req.HeaderValues("x-dup"))
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, BodyNone, req.Body.Kind())
}

func TestBuildRequest_MalformedHeadersDropped(t *testing.T) {
	opts := options.New("http://example.com")
	opts.Headers = []string{"nocolon", "also no colon", ":", " : "}

	req, err := BuildRequest(opts)
	require.NoError(t, err)
	assert.Empty(t, req.Headers)
}

func TestBuildRequest_BearerAlwaysAdded(t *testing.T) {
	opts := options.New("http://example.com")
	opts.BearerToken = options.StringPtr("T")

	req, err := BuildRequest(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer T"}, req.HeaderValues("Authorization"))

	opts.Headers = []string{"Authorization: Custom xyz"}
	req, err = BuildRequest(opts)
	require.NoError(t, err)
	assert.Contains(t, req.HeaderValues("Authorization"), "Bearer T")
}

func TestBuildRequest_RequestID(t *testing.T) {
	opts := options.New("http://example.com")
	opts.BearerToken = options.StringPtr("T")
	opts.RequestID = true

	req, err := BuildRequest(opts, WithRequestIDFunc(func() string { return "fixed-id" }))
	require.NoError(t, err)

	last := req.Headers[len(req.Headers)-1]
	assert.Equal(t, Header{Name: RequestIDHeader, Value: "fixed-id"}, last)

	req, err = BuildRequest(opts)
	require.NoError(t, err)
	ids := req.HeaderValues(RequestIDHeader)
	require.Len(t, ids, 1)
	assert.Len(t, ids[0], 36)
}

func TestBuildRequest_Methods(t *testing.T) {
	for _, m := range options.Methods {
		t.Run(m.String(), func(t *testing.T) {
			opts := options.New("https://example.com")
			opts.Method = m
			req, err := BuildRequest(opts)
			require.NoError(t, err)
			assert.Equal(t, m.String(), req.Method)
		})
	}

	opts := options.New("https://example.com")
	opts.Method = "PATCH"
	_, err := BuildRequest(opts)
	assert.ErrorIs(t, err, errs.ErrArgument)
}

func TestBuildRequest_InvalidURL(t *testing.T) {
	for _, u := range []string{"example.com/path", "ftp://example.com", "http:///nohost", "http://[::1"} {
		t.Run(u, func(t *testing.T) {
			opts := options.New(u)
			_, err := BuildRequest(opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrArgument)
		})
	}
}

func TestBuildRequest_RawData(t *testing.T) {
	opts := options.New("http://example.com")
	opts.Method = options.MethodPost
	opts.Data = options.StringPtr(`{"name": "fetch"}`)

	req, err := BuildRequest(opts)
	require.NoError(t, err)

	raw, ok := req.Body.(*RawBody)
	require.True(t, ok)
	assert.Equal(t, `{"name": "fetch"}`, string(raw.Bytes()))
	assert.Empty(t, req.HeaderValues("Content-Type"))
}

func TestBuildRequest_FormFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))

	opts := options.New("http://example.com/upload")
	opts.Method = options.MethodPost
	opts.FormFile = path

	req, err := BuildRequest(opts)
	require.NoError(t, err)
	defer req.Close()

	upload, ok := req.Body.(*UploadBody)
	require.True(t, ok)
	assert.Equal(t, "report.csv", upload.Filename())

	ct := req.HeaderValues("Content-Type")
	require.Len(t, ct, 1)
	assert.True(t, strings.HasPrefix(ct[0], "multipart/form-data; boundary="))
}

func TestBuildRequest_FormFileWinsOverData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01}, 0644))

	opts := options.New("http://example.com")
	opts.FormFile = path
	opts.Data = options.StringPtr("ignored")

	for i := 0; i < 3; i++ {
		req, err := BuildRequest(opts)
		require.NoError(t, err)
		assert.Equal(t, BodyUpload, req.Body.Kind())
		require.NoError(t, req.Close())
	}
}

func TestBuildRequest_FormFileMissing(t *testing.T) {
	opts := options.New("http://example.com")
	opts.FormFile = filepath.Join(t.TempDir(), "missing.txt")

	req, err := BuildRequest(opts)
	assert.Nil(t, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrFileAccess)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
