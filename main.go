package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/scriptmonkey/cmd"
	"github.com/helmcode/scriptmonkey/pkg/logging"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	logging.Close()
	if err == nil {
		return
	}

	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		os.Exit(exitErr.Code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scriptmonkey",
		Short: "AI-powered crash fixer and project builder",
		Long: `scriptmonkey sends the traceback of a crashed program, together with the
file it crashed in, to an LLM and rewrites that file with the fix. It can
also scaffold whole projects from a description, answer questions about your
code and bundle files for pasting into a chat.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddGlobalFlags(rootCmd)
	rootCmd.AddCommand(
		cmd.NewRunCmd(),
		cmd.NewFixCmd(),
		cmd.NewAskCmd(),
		cmd.NewCopyCmd(),
		cmd.NewBuildCmd(),
		cmd.NewConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scriptmonkey version %s\n", version)
		},
	}
}
