package output

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fqhttp "github.com/abdul-hamid-achik/fetchquest/packages/http"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(verbose bool) (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewConsole(WithWriter(&buf), WithVerbose(verbose), WithNoColor(true)), &buf
}

func TestConsole_NoColorIsPerConsole(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })
	color.NoColor = false

	var plain, colored bytes.Buffer
	NewConsole(WithWriter(&plain), WithNoColor(true)).Error(errors.New("boom"))
	NewConsole(WithWriter(&colored)).Error(errors.New("boom"))

	assert.False(t, color.NoColor)
	assert.Equal(t, "error: boom\n", plain.String())
	assert.Contains(t, colored.String(), "\x1b[")
}

func TestConsole_TraceRequest(t *testing.T) {
	c, buf := newTestConsole(true)

	req := &fqhttp.Request{Method: "POST", URL: "http://example.com/items"}
	req.AddHeader("Accept", "application/json")
	req.AddHeader("X-Trace", "1")
	req.Body = fqhttp.NewRawBody([]byte("hello"))

	c.TraceRequest(req)

	out := buf.String()
	assert.Contains(t, out, "> POST http://example.com/items\n")
	assert.Contains(t, out, "> Accept: application/json\n")
	assert.Contains(t, out, "> X-Trace: 1\n")
	assert.Contains(t, out, "> [5 bytes of data]\n")
	assert.True(t, strings.HasSuffix(out, ">\n"))
	assert.Less(t, strings.Index(out, "Accept"), strings.Index(out, "X-Trace"))
}

func TestConsole_TraceRequestUpload(t *testing.T) {
	c, buf := newTestConsole(true)

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0644))
	upload, err := fqhttp.OpenUpload(path)
	require.NoError(t, err)
	defer upload.Close()

	c.TraceRequest(&fqhttp.Request{Method: "POST", URL: "http://example.com/upload", Body: upload})
	assert.Contains(t, buf.String(), `[upload report.csv as field "file"]`)
}

func TestConsole_TraceResponse(t *testing.T) {
	c, buf := newTestConsole(true)

	resp := fqhttp.NewResponse(404, http.Header{
		"X-B":          {"2"},
		"Content-Type": {"text/plain"},
	}, io.NopCloser(strings.NewReader("")))

	c.TraceResponse(resp)

	out := buf.String()
	assert.Contains(t, out, "< HTTP/1.1 404 Not Found")
	assert.Contains(t, out, "< Content-Type: text/plain\n")
	assert.Less(t, strings.Index(out, "Content-Type"), strings.Index(out, "X-B"))
}

func TestConsole_QuietWithoutVerbose(t *testing.T) {
	c, buf := newTestConsole(false)

	c.TraceRequest(&fqhttp.Request{Method: "GET", URL: "http://example.com"})
	c.TraceResponse(fqhttp.NewResponse(200, nil, nil))

	assert.Empty(t, buf.String())
}

func TestConsole_ErrorAlwaysPrints(t *testing.T) {
	c, buf := newTestConsole(false)

	c.Error(errors.New("sending: send request: connection refused"))
	assert.Equal(t, "error: sending: send request: connection refused\n", buf.String())
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name string
		resp *fqhttp.Response
		want string
	}{
		{"full status", &fqhttp.Response{StatusCode: 200, Status: "200 OK"}, "200 OK"},
		{"reason only", &fqhttp.Response{StatusCode: 201, Status: "Created"}, "201 Created"},
		{"no status text", &fqhttp.Response{StatusCode: 599}, "599"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusLine(tt.resp))
		})
	}
}
