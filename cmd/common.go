package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/helmcode/scriptmonkey/pkg/config"
	"github.com/helmcode/scriptmonkey/pkg/editor"
	"github.com/helmcode/scriptmonkey/pkg/llm"
	"github.com/helmcode/scriptmonkey/pkg/logging"
)

var (
	providerName string
	modelName    string
	verbose      bool
	logFile      string
)

// ExitError ends the process with Code. Err, when set, is printed first.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// AddGlobalFlags registers the flags every subcommand understands and sets
// up logging before any of them runs.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&providerName, "provider", "", "LLM provider (openai, claude); overrides config and LLM_PROVIDER")
	root.PersistentFlags().StringVar(&modelName, "model", "", "Model to use; overrides config")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return logging.Setup(logging.Options{Verbose: verbose, File: logFile})
	}
}

// newLLM builds the completion client from config, environment and flags.
func newLLM() (llm.LLM, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if logFile == "" && cfg.LogFile != "" {
		if err := logging.Setup(logging.Options{Verbose: verbose, File: cfg.LogFile}); err != nil {
			return nil, err
		}
	}

	llmCfg, err := cfg.LLMConfig(providerName, modelName)
	if err != nil {
		return nil, err
	}
	client, err := llm.NewFactory().Create(llmCfg)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"provider": client.Provider(), "model": client.Model()}).Debug("completion client ready")
	return client, nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// readInput returns the joined args, else piped stdin, else what the user
// writes in their editor.
func readInput(args []string, mode editor.Mode) (string, error) {
	if text := strings.TrimSpace(strings.Join(args, " ")); text != "" {
		return text, nil
	}
	if !stdinIsTerminal() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			return text, nil
		}
		return "", editor.ErrEmptyInput
	}

	fmt.Println("Opening prompt editor... ")
	text, err := editor.FromEnv().Prompt(mode)
	if errors.Is(err, editor.ErrEmptyInput) {
		fmt.Println("\nNo Prompt Provided (Tip: Did you save before closing the editor?).\n🐒 Quitting ScriptMonkey...")
	}
	return text, err
}
