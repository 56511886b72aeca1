package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/scriptmonkey/pkg/crash"
	"github.com/helmcode/scriptmonkey/pkg/traceback"
)

var tracebackFile string

func NewFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Fix the file named by a captured traceback",
		Long: `Read a Python traceback or Go panic trace from a file or stdin and repair
the file of its deepest frame.

Examples:
  # Fix from a saved traceback
  scriptmonkey fix --traceback crash.log

  # Pipe a failing command's stderr straight in
  python app.py 2>&1 >/dev/null | scriptmonkey fix

  # Repair a specific file instead of the deepest frame's
  scriptmonkey fix --traceback crash.log --file app/handlers.py`,
		Args: cobra.NoArgs,
		RunE: runFix,
	}

	cmd.Flags().StringVarP(&tracebackFile, "traceback", "t", "", "File holding the traceback (default: stdin)")
	addPatchFlags(cmd)
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	switch {
	case tracebackFile != "":
		data, err = os.ReadFile(tracebackFile)
	case stdinIsTerminal():
		return errors.New("no traceback given: use --traceback FILE or pipe it on stdin")
	default:
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read traceback: %w", err)
	}

	tb := traceback.Parse(string(data))
	err = handleTraceback(cmd.Context(), tb)
	switch {
	case errors.Is(err, crash.ErrInterrupted):
		fmt.Fprintln(os.Stderr, "The program was interrupted by the user, nothing to fix.")
		return nil
	case errors.Is(err, crash.ErrNoFrames):
		return errors.New("no Python traceback or Go panic found in the input")
	}
	return err
}
