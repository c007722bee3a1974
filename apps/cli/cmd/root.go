package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/config"
	"github.com/abdul-hamid-achik/fetchquest/packages/core/options"
	"github.com/abdul-hamid-achik/fetchquest/packages/core/runner"
	"github.com/abdul-hamid-achik/fetchquest/packages/logger"
	"github.com/abdul-hamid-achik/fetchquest/packages/output"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

type requestFlags struct {
	head            bool
	includeHeaders  bool
	userAgent       string
	requestType     string
	followRedirects bool
	cookie          string
	verbose         bool
	silent          bool
	output          string
	headers         []string
	formFile        string
	data            string
	disableSSL      bool
	bearerToken     string
	timeout         time.Duration
	query           string
	requestID       bool
	configPath      string
	envFile         string
	noColor         bool
}

// envFallbacks are consulted, in the process environment and then the --env-file, for
// every flag that was not passed on the command line
var envFallbacks = []struct {
	flag string
	env  string
}{
	{"user-agent", "FETCHQUEST_USER_AGENT"},
	{"bearer-token", "FETCHQUEST_BEARER_TOKEN"},
	{"timeout", "FETCHQUEST_TIMEOUT"},
	{"config", "FETCHQUEST_CONFIG"},
	{"no-color", "FETCHQUEST_NO_COLOR"},
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "fetchquest [flags] <url>",
		Short: "Send one HTTP request and print the response",
		Long: `fetchquest sends a single HTTP request and writes the response body,
optionally preceded by its headers, to stdout or a file.

Examples:
  fetchquest https://example.com
  fetchquest -i -L https://example.com/redirect
  fetchquest -X post -d 'name=widget' https://api.example.com/items
  fetchquest -X post -f ./report.csv https://api.example.com/upload
  fetchquest -H 'Accept: application/json' -q data.id https://api.example.com/items/7
  fetchquest -s -o out.html https://example.com`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &usageError{fmt.Errorf("requires exactly one URL argument, received %d", len(args))}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, f, args[0])
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	// Response flags
	cmd.Flags().BoolVarP(&f.head, "head", "I", false, "Skip the response body")
	cmd.Flags().BoolVarP(&f.includeHeaders, "include-headers", "i", false, "Write the response headers before the body")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVarP(&f.silent, "silent", "s", false, "Send the request but write nothing")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Print only the part of a JSON body matching a gjson path")

	// Request flags
	methods := make([]string, 0, len(options.Methods))
	for _, m := range options.Methods {
		methods = append(methods, strings.ToLower(string(m)))
	}
	cmd.Flags().StringVarP(&f.requestType, "request-type", "X", "get", "Request method: "+strings.Join(methods, ", "))
	cmd.Flags().StringVarP(&f.userAgent, "user-agent", "A", options.DefaultUserAgent, "User-Agent to send (env: FETCHQUEST_USER_AGENT)")
	cmd.Flags().StringVarP(&f.cookie, "cookie", "b", "", "Cookie header value")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "Extra header \"Name: Value\" (repeatable)")
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "Raw request body")
	cmd.Flags().StringVarP(&f.formFile, "form-file", "f", "", "Upload a file as multipart form field \"file\"")
	cmd.Flags().StringVar(&f.bearerToken, "bearer-token", "", "Send Authorization: Bearer <token> (env: FETCHQUEST_BEARER_TOKEN)")
	cmd.Flags().BoolVar(&f.requestID, "request-id", false, "Send a random X-Request-Id header")

	// Network flags
	cmd.Flags().BoolVarP(&f.followRedirects, "follow-redirects", "L", false, "Follow up to 10 redirects")
	cmd.Flags().BoolVar(&f.disableSSL, "disable-ssl-verification", false, "Do not verify TLS certificates")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Overall request timeout, e.g. 30s (env: FETCHQUEST_TIMEOUT)")

	// Diagnostics and config flags
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print the request and response trace to stderr")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable colored output (env: FETCHQUEST_NO_COLOR)")
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config file (env: FETCHQUEST_CONFIG)")
	cmd.Flags().StringVar(&f.envFile, "env-file", getEnvString("FETCHQUEST_ENV_FILE", ""), "Path to .env file with FETCHQUEST_* values (env: FETCHQUEST_ENV_FILE)")

	_ = cmd.RegisterFlagCompletionFunc("request-type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return methods, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// Execute runs the CLI and exits with a code describing the outcome
func Execute(v, bt string) {
	version = v
	buildTime = bt
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return ExitSuccess
	}

	console := output.NewConsole(output.WithWriter(stderr), output.WithNoColor(getEnvBool("FETCHQUEST_NO_COLOR", false)))
	console.Error(err)

	code := exitCode(err)
	if code == ExitUsageError {
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
	}
	return code
}

func runRequest(cmd *cobra.Command, f *requestFlags, url string) error {
	var vars map[string]string
	if f.envFile != "" {
		loaded, err := config.LoadDotEnv(f.envFile)
		if err != nil {
			return &configError{err}
		}
		vars = loaded
	}
	if err := applyEnvFallbacks(cmd, vars); err != nil {
		return &configError{err}
	}

	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return &configError{err}
	}

	opts := f.toOptions(url, cmd.Flags().Changed)
	if err := cfg.Apply(opts, cmd.Flags().Changed); err != nil {
		return &configError{err}
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	noColor := f.noColor || cfg.GetNoColor()
	log := logger.New(logger.Options{
		Out:     cmd.ErrOrStderr(),
		Verbose: f.verbose,
		NoColor: noColor,
	})
	if !cfg.IsDefault() {
		log.Debug().Str("path", cfg.Path).Msg("applying config file")
	}
	console := output.NewConsole(
		output.WithWriter(cmd.ErrOrStderr()),
		output.WithVerbose(f.verbose),
		output.WithNoColor(noColor),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(opts,
		runner.WithLogger(log),
		runner.WithConsole(console),
		runner.WithStdout(cmd.OutOrStdout()),
	)
	return r.Run(ctx)
}

// toOptions copies the parsed flags into request options. Optional values are only set
// when their flag was passed, so an explicit empty -d still sends an empty body.
func (f *requestFlags) toOptions(url string, changed func(string) bool) *options.Options {
	o := options.New(url)
	o.Method = options.Method(f.requestType)
	o.UserAgent = f.userAgent
	o.FollowRedirects = f.followRedirects
	o.DisableSSLVerification = f.disableSSL
	o.Timeout = f.timeout
	o.Headers = append([]string{}, f.headers...)
	o.RequestID = f.requestID
	o.FormFile = f.formFile
	o.Output = f.output
	o.IncludeHeaders = f.includeHeaders
	o.Head = f.head
	o.Silent = f.silent
	o.Verbose = f.verbose
	o.Query = f.query

	if changed("cookie") {
		o.Cookie = options.StringPtr(f.cookie)
	}
	if changed("bearer-token") {
		o.BearerToken = options.StringPtr(f.bearerToken)
	}
	if changed("data") {
		o.Data = options.StringPtr(f.data)
	}
	return o
}

// applyEnvFallbacks sets every flag the user did not pass from its environment variable.
// Setting the flag marks it changed, so the config file does not override it.
func applyEnvFallbacks(cmd *cobra.Command, vars map[string]string) error {
	for _, fb := range envFallbacks {
		flag := cmd.Flags().Lookup(fb.flag)
		if flag == nil || flag.Changed {
			continue
		}
		val, ok := config.Lookup(fb.env, vars)
		if !ok {
			continue
		}
		if flag.Value.Type() == "bool" {
			val = fmt.Sprint(parseEnvBool(val))
		}
		if err := cmd.Flags().Set(fb.flag, val); err != nil {
			return fmt.Errorf("invalid %s value %q: %w", fb.env, val, err)
		}
	}
	return nil
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return parseEnvBool(val)
	}
	return defaultVal
}

func parseEnvBool(val string) bool {
	return val == "true" || val == "1" || val == "yes"
}
