/*
rulematch is a console utility counting messages that match rule 0 of a numbered rule grammar.
Usage is

	rulematch [-i <file>] [-c <file>] [-log-level <level>] [-log-format <format>]

-i <file> defines input file name (rules, blank line, messages), default is the bundled input;

-c <file> defines HCL file with recursive rule overrides, default overrides are 8: 42 | 42 8
and 11: 42 31 | 42 11 31 (nesting depth up to 9);

-log-level <level> is one of debug, info, warn (default), error;

-log-format <format> is either text (default) or json, log is written to stderr.

Three lines are printed: match counts for textual substitution, recursive expansion,
and recursive expansion with overrides.
*/
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ava12/rulematch/config"
	"github.com/ava12/rulematch/internal/app"
	"github.com/ava12/rulematch/internal/ctxlog"
)

//go:embed input.txt
var bundledInput []byte

const bundledName = "input.txt"

// ExitError is an error that sets specific exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	if e := run(os.Stdout, os.Stderr, os.Args[1:]); e != nil {
		var exitErr *ExitError
		if errors.As(e, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(1)
	}
}

func run(outW, errW io.Writer, args []string) error {
	flags := flag.NewFlagSet("rulematch", flag.ContinueOnError)
	flags.SetOutput(errW)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "Usage is  rulematch [-i <file>] [-c <file>] [-log-level <level>] [-log-format <format>]")
		flags.PrintDefaults()
	}

	inFileName := flags.String("i", "", "input file name, default is the bundled input")
	configFileName := flags.String("c", "", "HCL file with recursive rule overrides")
	logLevel := flags.String("log-level", "warn", "log level: debug, info, warn, or error")
	logFormat := flags.String("log-format", "text", "log format: text or json")
	if e := flags.Parse(args); e != nil {
		if errors.Is(e, flag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: 2, Message: e.Error()}
	}

	if flags.NArg() > 0 {
		return &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flags.Arg(0))}
	}
	switch *logLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if *logFormat != "text" && *logFormat != "json" {
		return &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(*logLevel, *logFormat, errW))
	input := app.Input{Name: bundledName, Content: bundledInput, Recursion: config.Default()}
	if *inFileName != "" {
		content, e := os.ReadFile(*inFileName)
		if e != nil {
			return e
		}
		input.Name, input.Content = *inFileName, content
	}

	if *configFileName != "" {
		var e error
		input.Recursion, e = config.LoadFile(ctx, *configFileName)
		if e != nil {
			return e
		}
	}

	report, e := app.Run(ctx, input)
	if e != nil {
		return e
	}

	for _, line := range report.Lines() {
		fmt.Fprintln(outW, line)
	}
	return nil
}
