// ccsplit splits a compile commands document by execution result.
//
// Usage:
//
//	ccsplit --input build/compile_commands.txt
//	ccsplit -i cmds.json --protect-input
//
// Records whose "rebuild" field is truthy go to <stem>.fail.json; all
// others go to <stem>.json. When the input itself is named <stem>.json the
// success file replaces it unless --protect-input is set, in which case
// the success file is <stem>.success.json.
//
// Exit codes:
//
//	0  split written
//	1  input does not exist, or an output could not be written
//	2  usage or configuration error, including suffixes that make both
//	   outputs the same file
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkoosis/ccsplit/internal/config"
	"github.com/dkoosis/ccsplit/internal/logging"
	"github.com/dkoosis/ccsplit/internal/report"
	"github.com/dkoosis/ccsplit/internal/version"
	"github.com/dkoosis/ccsplit/pkg/compdb"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

// exitError carries an exit code out of a cobra RunE. A nil err means the
// failure was already logged.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "ccsplit: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "ccsplit: %v\n", err)
	return exitUsage
}

type options struct {
	input         string
	configPath    string
	successSuffix string
	failSuffix    string
	protectInput  bool
	debug         bool
	noColor       bool
	quiet         bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "ccsplit --input <file>",
		Short: "Split compile commands into succeeded and rebuild sets",
		Long: `ccsplit reads a JSON array of compile command records and writes the
records that need a rebuild ("rebuild" is truthy) to <stem>.fail.json and
all other records to <stem>.json, keeping input order and each record's
contents as read.`,
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return split(cmd, opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "compile commands JSON file to split")
	f.StringVar(&opts.configPath, "config", "", "config file (default: ./"+config.FileName+" or the user config dir)")
	f.StringVar(&opts.successSuffix, "success-suffix", compdb.DefaultSuccessSuffix, "suffix of the success output")
	f.StringVar(&opts.failSuffix, "fail-suffix", compdb.DefaultFailSuffix, "suffix of the fail output")
	f.BoolVar(&opts.protectInput, "protect-input", false, "never overwrite the input with the success output")
	f.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// cliFlags reports only the flags the user actually set, so unset flags do
// not mask the environment or config file.
func cliFlags(cmd *cobra.Command, opts options) config.Flags {
	f := cmd.Flags()
	flags := config.Flags{ConfigPath: opts.configPath}
	if f.Changed("success-suffix") {
		flags.SuccessSuffix = &opts.successSuffix
	}
	if f.Changed("fail-suffix") {
		flags.FailSuffix = &opts.failSuffix
	}
	if f.Changed("protect-input") {
		flags.ProtectInput = &opts.protectInput
	}
	if f.Changed("debug") {
		flags.Debug = &opts.debug
	}
	if f.Changed("no-color") {
		flags.NoColor = &opts.noColor
	}
	if f.Changed("quiet") {
		flags.Quiet = &opts.quiet
	}
	return flags
}

func split(cmd *cobra.Command, opts options, stdout, stderr io.Writer) error {
	if opts.input == "" {
		return &exitError{code: exitUsage, err: errors.New("--input must not be empty")}
	}

	cfg, err := config.Resolve(cliFlags(cmd, opts), env.ToMap(os.Environ()))
	if err != nil {
		return &exitError{code: exitUsage, err: fmt.Errorf("config: %w", err)}
	}

	log := logging.New(stderr, logging.Options{
		Debug: cfg.Debug,
		Color: !cfg.NoColor && logging.IsTerminal(stderr),
	})
	defer func() { _ = log.Sync() }()
	log.Debug("resolved config",
		zap.String("source", cfg.Source),
		zap.String("success_suffix", cfg.SuccessSuffix),
		zap.String("fail_suffix", cfg.FailSuffix),
		zap.Bool("protect_input", cfg.ProtectInput),
	)

	input, err := filepath.Abs(opts.input)
	if err != nil {
		return &exitError{code: exitUsage, err: fmt.Errorf("resolve input path: %w", err)}
	}
	if _, err := os.Stat(input); err != nil {
		log.Error("compile commands file does not exist", zap.String("input", input), zap.Error(err))
		return &exitError{code: exitFailure}
	}

	res, err := compdb.New(log, compdb.WithNaming(cfg.Naming())).Split(input)
	if errors.Is(err, compdb.ErrPathConflict) {
		return &exitError{code: exitUsage, err: fmt.Errorf("config: %w", err)}
	}
	if err != nil {
		log.Error("write split output failed", zap.String("input", input), zap.Error(err))
		return &exitError{code: exitFailure}
	}

	if !cfg.Quiet {
		theme := report.MonoTheme()
		if !cfg.NoColor && logging.IsTerminal(stdout) {
			theme = report.DefaultTheme()
		}
		fmt.Fprint(stdout, report.Render(res, theme))
	}
	return nil
}
