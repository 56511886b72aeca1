package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/scriptmonkey/pkg/llm"
)

type fakeLLM struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeLLM) Chat(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeLLM) ChatJSON(ctx context.Context, instructions, content, name string, out any) error {
	return errors.New("not used")
}

func (f *fakeLLM) Model() string { return "fake" }

func (f *fakeLLM) Provider() llm.Provider { return llm.ProviderClaude }

func TestAsk_WithFilesAndTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(path, []byte("print('hi')"), 0o644))
	client := &fakeLLM{reply: "Use `print`."}

	answer, err := NewWithLLM(client).Ask(context.Background(), Request{
		Question: "What does this do?",
		Files:    []string{path, filepath.Join(dir, "missing.py")},
		TreeRoot: dir,
	})

	require.NoError(t, err)
	assert.Equal(t, "Use `print`.", answer.Text)
	assert.Equal(t, "└── main.py\n", answer.Tree)
	assert.Contains(t, client.prompt, "### Question:\nWhat does this do?")
	assert.Contains(t, client.prompt, "print('hi')")
	assert.Contains(t, client.prompt, "### Directory Tree:")
	assert.NotContains(t, client.prompt, "missing.py")
}

func TestAsk_NoContext(t *testing.T) {
	client := &fakeLLM{reply: "42"}

	answer, err := NewWithLLM(client).Ask(context.Background(), Request{Question: "meaning?"})

	require.NoError(t, err)
	assert.Empty(t, answer.Tree)
	assert.Contains(t, client.prompt, "No specific files have been provided")
	assert.NotContains(t, client.prompt, "### Directory Tree:")
}

func TestAsk_ChatError(t *testing.T) {
	_, err := NewWithLLM(&fakeLLM{err: errors.New("boom")}).Ask(context.Background(), Request{Question: "q"})
	assert.ErrorContains(t, err, "boom")
}
