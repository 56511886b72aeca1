package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON decodes a model reply into out. Replies wrapped in a ```json
// fence, or surrounded by prose, are tolerated: the outermost JSON object is
// extracted before decoding.
func ParseJSON(raw string, out any) error {
	cleaned := strings.TrimSpace(StripFences(raw))
	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
