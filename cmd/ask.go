package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/scriptmonkey/pkg/analyzer"
	"github.com/helmcode/scriptmonkey/pkg/editor"
	"github.com/helmcode/scriptmonkey/pkg/formatter"
	"github.com/helmcode/scriptmonkey/pkg/ui"
)

var (
	askFiles []string
	askTree  bool
)

func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [QUESTION]",
		Short: "Ask a question with project files as context",
		Long: `Ask the model a question, optionally attaching files and the directory tree
of the working directory. Without a question, it is read from stdin when
piped, otherwise your editor opens to write it.

Examples:
  scriptmonkey ask "Why is this loop slow?" --files app.py
  scriptmonkey ask --files main.go --files go.mod --tree
  git diff | scriptmonkey ask`,
		RunE: runAsk,
	}

	cmd.Flags().StringSliceVarP(&askFiles, "files", "f", []string{}, "Files to include in the prompt")
	cmd.Flags().BoolVar(&askTree, "tree", false, "Include the directory tree of the working directory")
	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question, err := readInput(args, editor.ModeAsk)
	if err != nil {
		return err
	}

	client, err := newLLM()
	if err != nil {
		return err
	}

	req := analyzer.Request{Question: question, Files: askFiles}
	if askTree {
		if req.TreeRoot, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	var answer *analyzer.Answer
	err = ui.Spin("🐒 ScriptMonkey is Thinking", func() error {
		var askErr error
		answer, askErr = analyzer.NewWithLLM(client).Ask(cmd.Context(), req)
		return askErr
	})
	if err != nil {
		return fmt.Errorf("AI request failed: %w", err)
	}

	if answer.Tree != "" {
		fmt.Println("- - Directory Tree - -")
		fmt.Println(answer.Tree)
	}
	formatter.RenderAnswer(os.Stdout, answer.Text)
	return nil
}
