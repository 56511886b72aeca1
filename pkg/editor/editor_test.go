package editor

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCommand(t *testing.T) {
	assert.Equal(t, "vim", DefaultCommand("vim", "linux"))
	assert.Equal(t, "nano", DefaultCommand("", "linux"))
	assert.Equal(t, "nano", DefaultCommand("  ", "darwin"))
	assert.Equal(t, "notepad", DefaultCommand("", "windows"))
}

func TestInstructions(t *testing.T) {
	tests := []struct {
		command string
		mode    Mode
		want    string
	}{
		{"nvim", ModeAsk, "type ':wq' to save and exit"},
		{"/usr/bin/nano", ModeAsk, "'Ctrl+O' to save"},
		{"notepad", ModeBuild, "close the Notepad window"},
		{"code --wait", ModeBuild, "close the editor window"},
		{"emacs", ModeAsk, "Save and close the editor when you're done."},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			got := Instructions(tt.command, tt.mode)
			assert.Contains(t, got, tt.want)
			assert.Equal(t, "", StripComments(got))
		})
	}

	assert.Contains(t, Instructions("vim", ModeBuild), "Project Builder")
	assert.Contains(t, Instructions("vim", ModeAsk), "Prompt Editor")
}

func TestStripComments(t *testing.T) {
	in := "!# header\n!# more\n\n  Build a todo app\r\n!# inline\nwith sqlite\n\n"
	assert.Equal(t, "Build a todo app\nwith sqlite", StripComments(in))
}

func TestPrompt(t *testing.T) {
	var opened string
	e := &Editor{Command: "nano", Run: func(command, path string) error {
		opened = path
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(path, append(content, []byte("Explain closures\n")...), 0o600)
	}}

	got, err := e.Prompt(ModeAsk)

	require.NoError(t, err)
	assert.Equal(t, "Explain closures", got)
	assert.NoFileExists(t, opened)
}

func TestPrompt_Empty(t *testing.T) {
	e := &Editor{Command: "vim", Run: func(string, string) error { return nil }}

	_, err := e.Prompt(ModeBuild)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestPrompt_EditorFails(t *testing.T) {
	e := &Editor{Command: "missing-editor", Run: func(string, string) error { return errors.New("not found") }}

	_, err := e.Prompt(ModeAsk)
	assert.ErrorContains(t, err, "not found")
}
