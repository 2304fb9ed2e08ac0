package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/reoring/jsonshape"
	"github.com/reoring/jsonshape/i18n"
	"github.com/reoring/jsonshape/internal/config"
	"github.com/reoring/jsonshape/jsonschema"
	"github.com/reoring/jsonshape/printer"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `jsonshape infers and checks structural types of JSON documents

Usage:
  jsonshape infer  [flags] <dir|file>          print the merged schema
  jsonshape schema [flags] [-format json|yaml] <dir|file>
                                               export the merged schema as JSON Schema
  jsonshape check  [flags] <input> <validator> check input's schema against validator's
  jsonshape diff   [flags] <a> <b>              unified diff of two merged schemas
  jsonshape value  [flags] <file>              print the typed value tree
  jsonshape tokens [flags] <file>              print the token stream
  jsonshape names  [flags] <dir|file>          list interned member names
  jsonshape dups   [flags] <file>              report repeated object keys

Flags shared by every command:
  -config path   YAML settings (default ./.jsonshape.yaml when present)
  -v             debug logging to stderr`)
}

// app carries per-invocation state shared by the subcommands.
type app struct {
	u      *jsonshape.Universe
	log    *zap.Logger
	out    io.Writer
	color  bool
	format string
}

func (a *app) style(s lipgloss.Style, text string) string {
	if !a.color {
		return text
	}
	return s.Render(text)
}

func (a *app) heading(text string) {
	fmt.Fprintln(a.out, a.style(headingStyle, text))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	sub := args[0]
	cmds := map[string]struct {
		nargs int
		fn    func(ctx context.Context, a *app, args []string) error
	}{
		"infer":  {1, inferCmd},
		"schema": {1, schemaCmd},
		"check":  {2, checkCmd},
		"diff":   {2, diffCmd},
		"value":  {1, valueCmd},
		"tokens": {1, tokensCmd},
		"names":  {1, namesCmd},
		"dups":   {1, dupsCmd},
	}
	cmd, ok := cmds[sub]
	if !ok {
		usage(stderr)
		return 2
	}

	fs := flag.NewFlagSet(sub, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfgPath string
	var verbose bool
	fs.StringVar(&cfgPath, "config", "", "YAML settings file")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	format := fs.String("format", "json", "schema output format (json|yaml)")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() != cmd.nargs {
		usage(stderr)
		return 2
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	i18n.SetLanguage(cfg.Language)

	logger := zap.NewNop()
	if verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	defer func() { _ = logger.Sync() }()

	a := &app{
		u:      jsonshape.New(cfg.Options(logger)),
		log:    logger,
		out:    stdout,
		color:  useColor(cfg.Color, stdout),
		format: *format,
	}
	if err := cmd.fn(ctx, a, fs.Args()); err != nil {
		var failed checkFailed
		if errors.As(err, &failed) {
			return 1
		}
		fmt.Fprintln(stderr, a.style(errorStyle, "error: "+err.Error()))
		return 1
	}
	return 0
}

func useColor(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// schemaOf infers the merged type of a directory, or of a single file.
func (a *app) schemaOf(ctx context.Context, path string) (jsonshape.TypeID, error) {
	st, err := os.Stat(path)
	if err != nil {
		return jsonshape.TypeInvalid, err
	}
	if !st.IsDir() {
		v, err := a.u.LoadJSONFile(path)
		if err != nil {
			return jsonshape.TypeInvalid, fmt.Errorf("%s: %w", path, err)
		}
		return v.Type, nil
	}
	c, err := a.u.LoadJSONDir(ctx, path)
	if err != nil {
		return jsonshape.TypeInvalid, err
	}
	defer c.Release()
	a.log.Debug("collection loaded", zap.String("dir", path), zap.Int("records", len(c.Records)))
	return c.Schema(a.u), nil
}

func inferCmd(ctx context.Context, a *app, args []string) error {
	t, err := a.schemaOf(ctx, args[0])
	if err != nil {
		return err
	}
	a.heading("schema of " + args[0])
	return printer.Type(a.out, a.u, t)
}

func schemaCmd(ctx context.Context, a *app, args []string) error {
	t, err := a.schemaOf(ctx, args[0])
	if err != nil {
		return err
	}
	s := jsonschema.FromType(a.u, t)
	var out []byte
	switch a.format {
	case "json":
		out, err = jsonschema.EncodeJSON(s)
		out = append(out, '\n')
	case "yaml":
		out, err = jsonschema.EncodeYAML(s)
	default:
		return fmt.Errorf("unknown format %q", a.format)
	}
	if err != nil {
		return err
	}
	_, err = a.out.Write(out)
	return err
}

// checkFailed signals a completed check that did not pass.
type checkFailed struct{ jsonshape.TypeCheckResult }

func (c checkFailed) Error() string { return c.Result.String() }

func checkCmd(ctx context.Context, a *app, args []string) error {
	in, err := a.schemaOf(ctx, args[0])
	if err != nil {
		return err
	}
	va, err := a.schemaOf(ctx, args[1])
	if err != nil {
		return err
	}
	res := a.u.Check(in, va)
	if res.Passed {
		fmt.Fprintln(a.out, a.style(okStyle, "ok"))
		return nil
	}
	iss, _ := jsonshape.AsIssues(res.Err())
	for _, it := range iss {
		fmt.Fprintln(a.out, a.style(errorStyle, fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)))
	}
	return checkFailed{res}
}

func diffCmd(ctx context.Context, a *app, args []string) error {
	x, err := a.schemaOf(ctx, args[0])
	if err != nil {
		return err
	}
	y, err := a.schemaOf(ctx, args[1])
	if err != nil {
		return err
	}
	d, err := printer.Diff(a.u, x, y, args[0], args[1])
	if err != nil {
		return err
	}
	if d == "" {
		fmt.Fprintln(a.out, a.style(okStyle, "schemas are identical"))
		return nil
	}
	_, err = io.WriteString(a.out, d)
	return err
}

func valueCmd(_ context.Context, a *app, args []string) error {
	v, err := a.u.LoadJSONFile(args[0])
	if err != nil {
		return err
	}
	defer v.Release()
	a.heading("value")
	if err := printer.Value(a.out, v); err != nil {
		return err
	}
	a.heading("type")
	return printer.Type(a.out, a.u, v.Type)
}

func tokensCmd(_ context.Context, a *app, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	toks, err := a.u.Tokenize(data)
	if err != nil {
		return err
	}
	return printer.Token(a.out, toks...)
}

func namesCmd(ctx context.Context, a *app, args []string) error {
	if _, err := a.schemaOf(ctx, args[0]); err != nil {
		return err
	}
	tb := a.u.Names()
	for n := tb.First(); n.Valid(); n = tb.Next(n) {
		fmt.Fprintf(a.out, "%6d  %s\n", n.Offset(), n.String())
	}
	return nil
}

func dupsCmd(_ context.Context, a *app, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	iss, err := a.u.DuplicateKeys(data, 0)
	if err != nil {
		return err
	}
	if len(iss) == 0 {
		fmt.Fprintln(a.out, a.style(okStyle, "no duplicate keys"))
		return nil
	}
	for _, it := range iss {
		fmt.Fprintln(a.out, a.style(errorStyle, fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)))
	}
	return checkFailed{}
}
