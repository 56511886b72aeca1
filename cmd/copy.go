package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/helmcode/scriptmonkey/pkg/ui"
	"github.com/helmcode/scriptmonkey/pkg/workspace"
)

var (
	copyFiles  []string
	copyTree   bool
	copyStdout bool
)

func NewCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy files and the project tree to the clipboard",
		Long: `Bundle the given files, and the directory tree of the working directory,
into one block of text ready to paste into a chat window.

Examples:
  scriptmonkey copy --files app.py --files utils.py
  scriptmonkey copy -f main.go --tree=false
  scriptmonkey copy -f main.go --stdout > context.txt`,
		Args: cobra.NoArgs,
		RunE: runCopy,
	}

	cmd.Flags().StringSliceVarP(&copyFiles, "files", "f", []string{}, "Files to copy")
	cmd.Flags().BoolVar(&copyTree, "tree", true, "Include the directory tree")
	cmd.Flags().BoolVar(&copyStdout, "stdout", false, "Print the bundle instead of copying it")
	return cmd
}

func runCopy(cmd *cobra.Command, args []string) error {
	if len(copyFiles) == 0 {
		return errors.New("no files specified to copy, use --files to specify file paths")
	}

	var tree string
	if copyTree {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		if tree, err = workspace.CreateTree(wd, workspace.TreeOptions{}); err != nil {
			return err
		}
	}

	bundle := workspace.Bundle(workspace.ReadDocuments(copyFiles), tree)

	if copyStdout || clipboard.Unsupported {
		if !copyStdout {
			log.Warn("no clipboard utility available, printing instead")
		}
		fmt.Print(bundle)
		return nil
	}

	if err := clipboard.WriteAll(bundle); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	msg := "🐒 Content has been copied to the clipboard."
	if tokens, err := workspace.EstimateTokens(bundle); err == nil {
		msg = fmt.Sprintf("🐒 Content has been copied to the clipboard (~%d tokens).", tokens)
	} else {
		log.WithError(err).Debug("token estimate failed")
	}
	ui.Success(msg)
	return nil
}
