package output

import (
	"io"
	"os"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
	"github.com/abdul-hamid-achik/fetchquest/packages/core/options"
	fqhttp "github.com/abdul-hamid-achik/fetchquest/packages/http"
)

// Config is the output half of the options
type Config struct {
	// Path is the output file; empty or "-" means standard output
	Path           string
	IncludeHeaders bool
	Head           bool
	Silent         bool
	Query          string
}

// ConfigFromOptions extracts the output settings from opts
func ConfigFromOptions(o *options.Options) Config {
	path := o.Output
	if o.StdoutSink() {
		path = ""
	}
	return Config{
		Path:           path,
		IncludeHeaders: o.IncludeHeaders,
		Head:           o.Head,
		Silent:         o.Silent,
		Query:          o.Query,
	}
}

// ResponseWriter routes a response to its sink. Steps run in a fixed order (headers,
// then body), each gated by its own flag.
type ResponseWriter struct {
	cfg      Config
	stdout   io.Writer
	openFile func(path string) (io.WriteCloser, error)
	onBody   func()
}

type WriterOption func(*ResponseWriter)

func NewResponseWriter(cfg Config, opts ...WriterOption) *ResponseWriter {
	w := &ResponseWriter{
		cfg:      cfg,
		stdout:   os.Stdout,
		openFile: createFile,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WithStdout replaces standard output as the default sink
func WithStdout(out io.Writer) WriterOption {
	return func(w *ResponseWriter) {
		w.stdout = out
	}
}

// WithFileOpener replaces how output files are created
func WithFileOpener(fn func(path string) (io.WriteCloser, error)) WriterOption {
	return func(w *ResponseWriter) {
		w.openFile = fn
	}
}

// WithBodyHook registers fn to run once the body has been read
func WithBodyHook(fn func()) WriterOption {
	return func(w *ResponseWriter) {
		w.onBody = fn
	}
}

type writeStep struct {
	name    string
	enabled bool
	run     func(sink io.Writer, resp *fqhttp.Response) error
}

func (w *ResponseWriter) steps() []writeStep {
	return []writeStep{
		{name: "headers", enabled: w.cfg.IncludeHeaders, run: w.writeHeaders},
		{name: "body", enabled: !w.cfg.Head, run: w.writeBody},
	}
}

// Write emits resp to the sink. The response is closed and the sink is closed on every
// path; bytes written before a failure stay written.
func (w *ResponseWriter) Write(resp *fqhttp.Response) (err error) {
	defer resp.Close()

	if w.cfg.Silent {
		return nil
	}

	sink, err := OpenSink(w.cfg.Path, w.stdout, w.openFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = errs.New(errs.KindIO, "close output", cerr)
		}
	}()

	for _, step := range w.steps() {
		if !step.enabled {
			continue
		}
		if err := step.run(sink, resp); err != nil {
			return err
		}
	}

	return nil
}

func (w *ResponseWriter) writeHeaders(sink io.Writer, resp *fqhttp.Response) error {
	if _, err := io.WriteString(sink, RenderHeaders(resp.Header)+"\n"); err != nil {
		return errs.New(errs.KindIO, "write headers", err)
	}
	return nil
}

func (w *ResponseWriter) writeBody(sink io.Writer, resp *fqhttp.Response) error {
	text, err := resp.ReadText()
	if err != nil {
		return err
	}
	if w.onBody != nil {
		w.onBody()
	}

	text, err = ApplyQuery(text, w.cfg.Query)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(sink, text+"\n"); err != nil {
		return errs.New(errs.KindIO, "write body", err)
	}
	return nil
}
