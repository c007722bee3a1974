package runner

import (
	"context"
	"io"
	"os"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
	"github.com/abdul-hamid-achik/fetchquest/packages/core/options"
	"github.com/abdul-hamid-achik/fetchquest/packages/http"
	"github.com/abdul-hamid-achik/fetchquest/packages/output"
	"github.com/rs/zerolog"
)

// State is the position of a run in its lifecycle
type State int

const (
	StateIdle State = iota
	StateBuilding
	StateSent
	StateHeadersReceived
	StateBodyReceived
	StateWritten
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateSent:
		return "sent"
	case StateHeadersReceived:
		return "headers-received"
	case StateBodyReceived:
		return "body-received"
	case StateWritten:
		return "written"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Runner performs exactly one request for a set of options and writes its response.
type Runner struct {
	opts      *options.Options
	transport http.Transport
	console   *output.Console
	logger    zerolog.Logger
	stdout    io.Writer
	openFile  func(path string) (io.WriteCloser, error)
	buildOpts []http.BuildOption

	state       State
	failedPhase errs.Phase
}

type Option func(*Runner)

func New(opts *options.Options, ropts ...Option) *Runner {
	r := &Runner{
		opts:   opts,
		logger: zerolog.Nop(),
		stdout: os.Stdout,
		state:  StateIdle,
	}
	for _, opt := range ropts {
		opt(r)
	}
	if r.console == nil {
		r.console = output.NewConsole(output.WithVerbose(opts.Verbose))
	}
	return r
}

// WithTransport replaces the net/http client
func WithTransport(t http.Transport) Option {
	return func(r *Runner) {
		r.transport = t
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

func WithConsole(c *output.Console) Option {
	return func(r *Runner) {
		r.console = c
	}
}

func WithStdout(w io.Writer) Option {
	return func(r *Runner) {
		r.stdout = w
	}
}

func WithFileOpener(fn func(path string) (io.WriteCloser, error)) Option {
	return func(r *Runner) {
		r.openFile = fn
	}
}

// WithBuildOptions passes extra options to the request builder
func WithBuildOptions(opts ...http.BuildOption) Option {
	return func(r *Runner) {
		r.buildOpts = append(r.buildOpts, opts...)
	}
}

func (r *Runner) State() State {
	return r.state
}

// FailedPhase reports where the run stopped. Empty unless State is StateFailed.
func (r *Runner) FailedPhase() errs.Phase {
	return r.failedPhase
}

// Run builds the request, sends it once and writes the response. A Runner is single
// use; calling Run again after it left StateIdle is an error.
func (r *Runner) Run(ctx context.Context) error {
	if r.state != StateIdle {
		return errs.Errorf(errs.KindUnknown, "run", "runner already used (state %s)", r.state)
	}

	r.transition(StateBuilding)
	buildOpts := append([]http.BuildOption{http.WithBuildLogger(r.logger)}, r.buildOpts...)
	req, err := http.BuildRequest(r.opts, buildOpts...)
	if err != nil {
		return r.fail(errs.PhaseBuilding, err)
	}
	r.logger.Debug().
		Str("request", r.opts.String()).
		Bool("body", r.opts.HasBody()).
		Int("headers", len(req.Headers)).
		Msg("request built")
	r.console.TraceRequest(req)

	transport := r.transport
	if transport == nil {
		transport = http.NewClient(
			http.WithTransportConfig(http.NewTransportConfig(r.opts)),
			http.WithLogger(r.logger),
		)
	}

	r.transition(StateSent)
	resp, err := transport.Send(ctx, req)
	if err != nil {
		_ = req.Close()
		return r.fail(errs.PhaseSending, err)
	}
	r.transition(StateHeadersReceived)
	r.console.TraceResponse(resp)

	writerOpts := []output.WriterOption{
		output.WithStdout(r.stdout),
		output.WithBodyHook(func() { r.transition(StateBodyReceived) }),
	}
	if r.openFile != nil {
		writerOpts = append(writerOpts, output.WithFileOpener(r.openFile))
	}
	w := output.NewResponseWriter(output.ConfigFromOptions(r.opts), writerOpts...)
	if err := w.Write(resp); err != nil {
		return r.fail(errs.PhaseWriting, err)
	}
	r.transition(StateWritten)

	r.transition(StateDone)
	return nil
}

func (r *Runner) transition(s State) {
	r.logger.Trace().Str("from", r.state.String()).Str("to", s.String()).Msg("state")
	r.state = s
}

func (r *Runner) fail(phase errs.Phase, err error) error {
	r.transition(StateFailed)
	r.failedPhase = phase
	err = errs.WithPhase(err, phase)
	r.logger.Debug().Err(err).Str("phase", string(phase)).Msg("run failed")
	return err
}
