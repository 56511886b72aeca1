package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{"openai", ProviderOpenAI, false},
		{"OpenAI", ProviderOpenAI, false},
		{"claude", ProviderClaude, false},
		{" anthropic ", ProviderClaude, false},
		{"gemini", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProvider(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFactory_Create(t *testing.T) {
	f := NewFactory()

	c, err := f.Create(Config{Provider: ProviderOpenAI, APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, c)

	c, err = f.Create(Config{Provider: ProviderClaude, APIKey: "k", Model: "claude-3-5-haiku-latest"})
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-haiku-latest", c.Model())

	_, err = f.Create(Config{Provider: ProviderOpenAI})
	assert.ErrorContains(t, err, "API key is required")

	_, err = f.Create(Config{Provider: "gemini", APIKey: "k"})
	assert.Error(t, err)

	assert.Len(t, f.GetAvailableProviders(), 2)
}
