// Package editor collects multi-line input through the user's text editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

const commentPrefix = "!#"

// ErrEmptyInput is returned when the user saved nothing but instructions.
var ErrEmptyInput = errors.New("no prompt provided")

// Mode selects the purpose shown to the user.
type Mode int

const (
	ModeAsk Mode = iota
	ModeBuild
)

func (m Mode) purpose() (string, string) {
	if m == ModeBuild {
		return "Project Builder", "Please describe your project in detail below."
	}
	return "Prompt Editor", "Please write your question down below."
}

// Editor opens files in an external editor program.
type Editor struct {
	// Command is the editor program, e.g. "vim" or "code --wait".
	Command string
	// Run starts the editor on path and waits for it to exit.
	Run func(command, path string) error
}

// FromEnv uses $EDITOR, falling back to nano (notepad on Windows).
func FromEnv() *Editor {
	return &Editor{Command: DefaultCommand(os.Getenv("EDITOR"), runtime.GOOS), Run: runEditor}
}

func DefaultCommand(env, goos string) string {
	if strings.TrimSpace(env) != "" {
		return env
	}
	if goos == "windows" {
		return "notepad"
	}
	return "nano"
}

// Instructions returns the comment header written above the input area.
func Instructions(command string, mode Mode) string {
	purpose, prompt := mode.purpose()

	var howTo string
	name := strings.ToLower(command)
	switch {
	case strings.Contains(name, "vim"):
		howTo = "!# Use 'i' to start editing, and when you're done, press 'Esc',\n!# type ':wq' to save and exit.\n"
	case strings.Contains(name, "nano"):
		howTo = "!# When you're done, press 'Ctrl+O' to save and 'Ctrl+X' to exit.\n"
	case strings.Contains(name, "notepad"):
		howTo = "!# When you're done, save and close the Notepad window.\n"
	case strings.Contains(name, "code"):
		howTo = "!# When you're done, save the file and close the editor window.\n"
	default:
		howTo = "!# Save and close the editor when you're done.\n"
	}

	return fmt.Sprintf("!# 🐒 Welcome to ScriptMonkey's %s!\n!# %s\n%s!# (Lines starting with '!#' will be ignored.)\n\n",
		purpose, prompt, howTo)
}

// Prompt writes the instructions to a temporary file, opens it and returns
// what the user typed with instruction lines removed.
func (e *Editor) Prompt(mode Mode) (string, error) {
	f, err := os.CreateTemp("", "scriptmonkey-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(Instructions(e.Command, mode)); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := e.Run(e.Command, path); err != nil {
		return "", fmt.Errorf("run editor %q: %w", e.Command, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read temp file: %w", err)
	}
	input := StripComments(string(raw))
	if input == "" {
		return "", ErrEmptyInput
	}
	return input, nil
}

// StripComments drops instruction lines and trims the rest.
func StripComments(text string) string {
	var kept []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, commentPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func runEditor(command, path string) error {
	fields := strings.Fields(command)
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
