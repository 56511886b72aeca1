package crash

import (
	"context"
	"encoding/json"

	"github.com/helmcode/scriptmonkey/pkg/llm"
)

// fakeLLM answers ChatJSON with a fixed result or error and records calls.
type fakeLLM struct {
	result   any
	err      error
	calls    int
	contents []string
}

func (f *fakeLLM) Chat(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return "", f.err
}

func (f *fakeLLM) ChatJSON(ctx context.Context, instructions, content, name string, out any) error {
	f.calls++
	f.contents = append(f.contents, content)
	if f.err != nil {
		return f.err
	}
	b, err := json.Marshal(f.result)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeLLM) Model() string { return "fake" }

func (f *fakeLLM) Provider() llm.Provider { return llm.ProviderOpenAI }
