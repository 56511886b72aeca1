package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/helmcode/scriptmonkey/pkg/crash"
	"github.com/helmcode/scriptmonkey/pkg/model"
	"github.com/helmcode/scriptmonkey/pkg/traceback"
	"github.com/helmcode/scriptmonkey/pkg/ui"
)

// interruptExitCode is what shells report for a process ended by SIGINT.
const interruptExitCode = 130

var (
	dryRun       bool
	backup       bool
	outputFormat string
	targetFile   string
)

func addPatchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the corrected code instead of writing it")
	cmd.Flags().BoolVar(&backup, "backup", false, "Keep the original file as <file>.orig")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format for the patch (human, json, yaml)")
	cmd.Flags().StringVar(&targetFile, "file", "", "Repair this file instead of the deepest frame's file")
}

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- COMMAND [ARGS...]",
		Short: "Run a program and fix the file it crashes in",
		Long: `Run a program, mirroring its output. When it exits with an error and its
stderr holds a Python traceback or a Go panic, the file of the deepest frame
is sent to the model and overwritten with the corrected code.

Examples:
  # Run a Python script under scriptmonkey
  scriptmonkey run -- python app.py --port 8080

  # Run a Go program and keep a backup of the patched file
  scriptmonkey run --backup -- go run ./cmd/server

  # See the fix without touching the file
  scriptmonkey run --dry-run -- python app.py`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRun,
	}
	cmd.Flags().SetInterspersed(false)
	addPatchFlags(cmd)
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	var captured bytes.Buffer
	child := exec.Command(args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = io.MultiWriter(os.Stderr, &captured)

	// The terminal delivers Ctrl+C to the child too; scriptmonkey only
	// notes that it happened.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	if err := child.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", args[0], err)
	}

	done := make(chan error, 1)
	go func() { done <- child.Wait() }()

	waitErr, interrupted := waitChild(done, sigs, func(sig os.Signal) {
		_ = child.Process.Signal(sig)
	})

	if waitErr == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return fmt.Errorf("%s: %w", args[0], waitErr)
	}
	code := exitErr.ExitCode()
	if code < 0 {
		code = interruptExitCode
	}

	tb := traceback.Parse(captured.String())
	if interrupted {
		tb.Interrupt = true
	}
	log.WithFields(log.Fields{"exit_code": code, "frames": len(tb.Frames), "language": tb.Language}).Debug("child process failed")

	err := handleTraceback(cmd.Context(), tb)
	switch {
	case err == nil, errors.Is(err, crash.ErrInterrupted):
		return &ExitError{Code: code}
	case errors.Is(err, crash.ErrNoFrames):
		ui.Warning("No traceback found in the program's output, nothing to fix")
		return &ExitError{Code: code}
	default:
		return &ExitError{Code: code, Err: err}
	}
}

// waitChild waits for the child to exit. Only os.Interrupt marks the run as
// interrupted by the user; it already reached the child through the
// terminal. Any other signal is forwarded and the crash is handled as usual.
func waitChild(done <-chan error, sigs <-chan os.Signal, forward func(os.Signal)) (waitErr error, interrupted bool) {
	for {
		select {
		case sig := <-sigs:
			if sig == os.Interrupt {
				interrupted = true
				continue
			}
			forward(sig)
		case waitErr = <-done:
			return waitErr, interrupted
		}
	}
}

// handleTraceback builds the interceptor from the patch flags and hands it
// the traceback.
func handleTraceback(ctx context.Context, tb *model.Traceback) error {
	if tb.Interrupt {
		return crash.ErrInterrupted
	}
	if len(tb.Frames) == 0 && targetFile == "" {
		return crash.ErrNoFrames
	}

	client, err := newLLM()
	if err != nil {
		return err
	}

	opts := []crash.Option{
		crash.WithFormat(outputFormat),
		crash.WithDryRun(dryRun),
		crash.WithBackup(backup),
	}
	if targetFile != "" {
		opts = append(opts, crash.WithSelector(func(*model.Traceback) (model.Frame, error) {
			return model.Frame{File: targetFile}, nil
		}))
	}

	if ctx == nil {
		ctx = context.Background()
	}
	_, err = crash.New(client, opts...).Handle(ctx, tb)
	return err
}
