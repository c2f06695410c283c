// Command hwpxmd is the CLI collaborator around the convert façade
// (SPEC_FULL.md §6 "CLI surface"). It owns the only logger in this module;
// the core packages it calls never log.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"hwpxmd/common"
	"hwpxmd/config"
	"hwpxmd/convert"
	"hwpxmd/state"
)

// usageError marks a command-line misuse (bad flags, missing/unreadable
// arguments) as distinct from a conversion failure, so it maps to exit
// code 2 rather than 3/4 (§6 "Exit codes").
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	env := state.EnvFromContext(ctx)
	level := "normal"
	if cmd.Bool("debug") {
		level = "debug"
	}
	env.Log = (&config.LoggingConfig{Level: level}).Prepare()
	env.RedirectStdLog()
	return ctx, nil
}

func destroyAppContext(ctx context.Context, _ *cli.Command) error {
	state.EnvFromContext(ctx).RestoreStdLog()
	return nil
}

// errWasHandled tracks whether exitErrHandler already logged the failure,
// so main's final stderr fallback does not print it twice.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("command failed", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "hwpxmd",
		Usage:           "Markdown to HWPX conversion engine",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable verbose logging"},
		},
		Commands: []*cli.Command{
			{
				Name:         "convert",
				Usage:        "Converts a Markdown file to HWPX",
				ArgsUsage:    "SOURCE DESTINATION",
				OnUsageError: usageErrorHandler,
				Action:       runConvert,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "style", Value: "default", Usage: "style `PRESET` (default, academic, business, minimal)"},
					&cli.StringFlag{Name: "title", Usage: "document `TITLE`"},
					&cli.StringFlag{Name: "author", Usage: "document `AUTHOR`"},
				},
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "hwpxmd: %v\n", err)
			}
			os.Exit(exitCodeFor(err))
		}
	}()
	err = app.Run(ctx, os.Args)
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() != 2 {
		return usageError{"expected SOURCE and DESTINATION arguments"}
	}
	source := cmd.Args().Get(0)
	dest := cmd.Args().Get(1)

	data, err := os.ReadFile(source)
	if err != nil {
		return usageError{fmt.Sprintf("unable to read source file %q: %v", source, err)}
	}

	opts := convert.Options{}
	if v := cmd.String("title"); v != "" {
		opts["title"] = v
	}
	if v := cmd.String("author"); v != "" {
		opts["author"] = v
	}

	style := cmd.String("style")
	env.Log.Debug("starting conversion", zap.String("source", source), zap.String("style", style))

	res, err := convert.Convert(data, style, opts)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		env.Log.Warn("recovered parse condition",
			zap.Int("kind", int(w.Kind)), zap.Int("line", w.Line), zap.String("message", w.Message))
	}

	if err := os.WriteFile(dest, res.Bytes, 0o644); err != nil {
		writeErr := fmt.Errorf("unable to write destination file %q: %w", dest, err)
		// best-effort cleanup of a partially written archive; surface both
		// failures rather than hiding the cleanup one.
		if rmErr := os.Remove(dest); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return multierr.Combine(writeErr, rmErr)
		}
		return writeErr
	}

	env.Log.Info("conversion complete", zap.String("destination", dest), zap.Int("warnings", len(res.Warnings)))
	return nil
}

// exitCodeFor maps a command failure to the exit codes §6 defines: 2 usage,
// 3 parse/encoding error, 4 write/internal error.
func exitCodeFor(err error) int {
	var uErr usageError
	if errors.As(err, &uErr) {
		return 2
	}
	var cErr *convert.Error
	if errors.As(err, &cErr) {
		switch cErr.Kind() {
		case common.ErrorKindConfig:
			return 2
		case common.ErrorKindEncoding:
			return 3
		default:
			return 4
		}
	}
	return 4
}
