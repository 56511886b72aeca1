package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/helmcode/scriptmonkey/pkg/parser"
)

const (
	defaultClaudeModel   = "claude-sonnet-4-20250514"
	defaultClaudeBaseURL = "https://api.anthropic.com/v1"
)

type Claude struct {
	apiKey  string
	baseURL string
	client  *http.Client
	model   string
}

func NewClaude(cfg Config) *Claude {
	model := cfg.Model
	if model == "" {
		model = defaultClaudeModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultClaudeBaseURL
	}
	return &Claude{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: cfg.timeout()},
		model:   model,
	}
}

func (c *Claude) Chat(ctx context.Context, prompt string) (string, error) {
	return c.messages(ctx, "", prompt)
}

// ChatJSON has no server-side schema enforcement on this API, so the schema
// of out is spelled out in the system prompt and the reply is parsed
// leniently.
func (c *Claude) ChatJSON(ctx context.Context, instructions, content, name string, out any) error {
	schema, err := jsonschema.GenerateSchemaForType(out)
	if err != nil {
		return fmt.Errorf("generate schema for %s: %w", name, err)
	}
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema for %s: %w", name, err)
	}
	system := fmt.Sprintf("%s\n\nRespond ONLY with a JSON object (%s) that validates against this JSON schema:\n%s", instructions, name, schemaJSON)

	raw, err := c.messages(ctx, system, content)
	if err != nil {
		return err
	}
	if err := parser.ParseJSON(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (c *Claude) messages(ctx context.Context, system, prompt string) (string, error) {
	body := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
		"max_tokens":  8192,
		"temperature": 0,
	}
	if system != "" {
		body["system"] = system
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	log.WithField("model", c.model).Debug("sending message to Claude")
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Claude request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(respBytes, "error.message").String()
		if msg == "" {
			msg = string(respBytes)
		}
		return "", &APIError{Provider: ProviderClaude, StatusCode: resp.StatusCode, Message: msg}
	}

	if msg := gjson.GetBytes(respBytes, "error.message").String(); msg != "" {
		return "", &APIError{Provider: ProviderClaude, Message: msg}
	}
	text := gjson.GetBytes(respBytes, `content.#(type=="text").text`)
	if !text.Exists() {
		return "", &APIError{Provider: ProviderClaude, Message: "empty response"}
	}
	return text.String(), nil
}

func (c *Claude) Model() string {
	return c.model
}

func (c *Claude) Provider() Provider {
	return ProviderClaude
}
