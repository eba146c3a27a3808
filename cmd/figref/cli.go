package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/figref/internal/ast"
	"git.home.luguber.info/inful/figref/internal/config"
	"git.home.luguber.info/inful/figref/internal/filter"
	"git.home.luguber.info/inful/figref/internal/foundation/errors"
	"git.home.luguber.info/inful/figref/internal/logfields"
	"git.home.luguber.info/inful/figref/internal/metrics"
	"git.home.luguber.info/inful/figref/internal/render"
	"git.home.luguber.info/inful/figref/internal/version"
)

// CLI is the command line of the filter. pandoc invokes filters with the
// output format as the only argument and the document on stdin.
type CLI struct {
	Target string `arg:"" optional:"" help:"Pandoc output format (html, html5, latex, ...). Other formats pass through unchanged."`

	Config       string           `short:"c" help:"Configuration file path" type:"path"`
	Input        string           `short:"i" help:"Read the document from this file instead of stdin" type:"path"`
	Output       string           `short:"o" help:"Write the document to this file instead of stdout" type:"path"`
	Prefix       string           `help:"Link target prefix marking figure references (default #fig)"`
	CaptionLabel string           `name:"caption-label" help:"Word put before figure numbers (default Figure)"`
	MetricsFile  string           `name:"metrics-file" help:"Write run metrics in Prometheus text format to this file" type:"path"`
	LogFormat    string           `name:"log-format" help:"Log format on stderr: text or json"`
	Verbose      bool             `short:"v" help:"Enable verbose logging"`
	Version      kong.VersionFlag `name:"version" help:"Show version and exit"`
}

// streams are the process's standard streams, swapped out in tests.
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newParser(cli *CLI, s streams, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("figref"),
		kong.Description("Number figures and resolve figure references in a pandoc JSON document."),
		kong.Vars{"version": version.String()},
		kong.Writers(s.stdout, s.stderr),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

// parse fills cli from args.
func parse(cli *CLI, args []string, s streams, options ...kong.Option) error {
	parser, err := newParser(cli, s, options...)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to build command line parser").Build()
	}
	if _, err := parser.Parse(args); err != nil {
		return errors.ValidationError(err, "invalid command line").Build()
	}
	return nil
}

// loadConfig loads the configuration file and applies flag overrides, which
// take precedence over the file and the environment.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Prefix != "" {
		cfg.ReferencePrefix = c.Prefix
	}
	if c.CaptionLabel != "" {
		cfg.CaptionLabel = c.CaptionLabel
	}
	if c.MetricsFile != "" {
		cfg.Metrics.Textfile = c.MetricsFile
	}
	if c.LogFormat != "" {
		cfg.Logging.Format = config.NormalizeLogFormat(c.LogFormat)
	}
	if c.Verbose {
		cfg.Logging.Level = config.LogLevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level.SlogLevel()}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Run filters one document.
func (c *CLI) Run(ctx context.Context, s streams) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(s.stderr, cfg.Logging)
	target := render.ParseTarget(c.Target)

	doc, err := c.readDocument(s.stdin)
	if err != nil {
		return err
	}
	logger.Debug("Read document",
		logfields.Layout(doc.Layout.String()),
		logfields.Target(target.String()),
		slog.Int("blocks", len(doc.Blocks)))

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	out, _, err := filter.NewPipeline(filter.OptionsFromConfig(cfg)).
		WithLogger(logger).
		WithRecorder(recorder).
		Run(ctx, doc, target)
	if err != nil {
		return err
	}

	if err := c.writeDocument(s.stdout, out); err != nil {
		return err
	}

	if prom != nil {
		if err := prom.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return errors.FileSystemError(err, "failed to write metrics textfile").
				WithContext("path", cfg.Metrics.Textfile).
				Build()
		}
		logger.Debug("Wrote metrics", logfields.Path(cfg.Metrics.Textfile))
	}
	return nil
}

func (c *CLI) readDocument(stdin io.Reader) (*ast.Document, error) {
	in := stdin
	if c.Input != "" {
		f, err := os.Open(c.Input)
		if err != nil {
			return nil, errors.FileSystemError(err, "failed to open input").
				WithContext("path", c.Input).
				Build()
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	doc, err := ast.ReadDocument(in)
	if err != nil {
		return nil, errors.ValidationError(err, "input is not a pandoc JSON document").Build()
	}
	return doc, nil
}

func (c *CLI) writeDocument(stdout io.Writer, doc *ast.Document) error {
	if c.Output == "" {
		if err := ast.WriteDocument(stdout, doc); err != nil {
			return errors.FileSystemError(err, "failed to write output").Build()
		}
		return nil
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return errors.FileSystemError(err, "failed to create output").
			WithContext("path", c.Output).
			Build()
	}
	if err := ast.WriteDocument(f, doc); err != nil {
		_ = f.Close()
		return errors.FileSystemError(err, "failed to write output").
			WithContext("path", c.Output).
			Build()
	}
	if err := f.Close(); err != nil {
		return errors.FileSystemError(err, "failed to close output").
			WithContext("path", c.Output).
			Build()
	}
	return nil
}
