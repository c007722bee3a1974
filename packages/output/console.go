package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	fqhttp "github.com/abdul-hamid-achik/fetchquest/packages/http"
	"github.com/fatih/color"
)

// Console prints the verbose request/response trace and error lines. It always writes
// to stderr by default so the trace never mixes with the response on stdout.
type Console struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*Console)

func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(c *Console) {
		c.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(c *Console) {
		c.noColor = nc
	}
}

// TraceRequest prints "> " lines for the outgoing request in verbose mode.
func (c *Console) TraceRequest(req *fqhttp.Request) {
	if !c.verbose {
		return
	}
	cyan := c.color(color.FgCyan).SprintFunc()
	bold := c.color(color.Bold).SprintFunc()

	fmt.Fprintf(c.writer, "%s %s %s\n", cyan(">"), bold(req.Method), req.URL)
	for _, h := range req.Headers {
		fmt.Fprintf(c.writer, "%s %s: %s\n", cyan(">"), h.Name, h.Value)
	}

	if req.Body != nil {
		switch body := req.Body.(type) {
		case *fqhttp.UploadBody:
			fmt.Fprintf(c.writer, "%s [upload %s as field %q]\n", cyan(">"), body.Filename(), fqhttp.UploadFieldName)
		case *fqhttp.RawBody:
			fmt.Fprintf(c.writer, "%s [%d bytes of data]\n", cyan(">"), body.ContentLength())
		}
	}
	fmt.Fprintf(c.writer, "%s\n", cyan(">"))
}

// TraceResponse prints "< " lines for the status and headers in verbose mode.
func (c *Console) TraceResponse(resp *fqhttp.Response) {
	if !c.verbose {
		return
	}
	statusColor := c.color(color.Bold)
	switch {
	case resp.IsSuccess():
		statusColor = c.color(color.FgGreen)
	case resp.IsRedirect():
		statusColor = c.color(color.FgYellow)
	case resp.IsClientError(), resp.IsServerError():
		statusColor = c.color(color.FgRed)
	}
	marker := c.color(color.FgCyan).SprintFunc()("<")

	fmt.Fprintf(c.writer, "%s %s %s (%dms)\n", marker, resp.Proto, statusColor.Sprint(statusLine(resp)), resp.DurationMs())

	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range resp.Header[name] {
			fmt.Fprintf(c.writer, "%s %s: %s\n", marker, name, v)
		}
	}
	fmt.Fprintf(c.writer, "%s\n", marker)
}

// Error prints a failure line. It is shown regardless of verbose and silent.
func (c *Console) Error(err error) {
	red := c.color(color.FgRed).SprintFunc()
	fmt.Fprintf(c.writer, "%s %v\n", red("error:"), err)
}

// color honours the console's own setting and leaves the package-wide
// color.NoColor alone.
func (c *Console) color(attrs ...color.Attribute) *color.Color {
	col := color.New(attrs...)
	if c.noColor {
		col.DisableColor()
	}
	return col
}

func statusLine(resp *fqhttp.Response) string {
	if resp.Status != "" {
		if len(resp.Status) > 3 && resp.Status[:3] == fmt.Sprint(resp.StatusCode) {
			return resp.Status
		}
		return fmt.Sprintf("%d %s", resp.StatusCode, resp.Status)
	}
	return fmt.Sprint(resp.StatusCode)
}
