package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain", `{"problem":"p","solution":"s","corrected_code":"c"}`},
		{"fenced", "```json\n{\"problem\":\"p\",\"solution\":\"s\",\"corrected_code\":\"c\"}\n```"},
		{"prose around", "Here you go:\n{\"problem\":\"p\",\"solution\":\"s\",\"corrected_code\":\"c\"}\nThanks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.PatchResult
			require.NoError(t, ParseJSON(tt.raw, &got))
			assert.Equal(t, model.PatchResult{Problem: "p", Solution: "s", CorrectedCode: "c"}, got)
		})
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	var got model.PatchResult
	assert.Error(t, ParseJSON("I could not fix this.", &got))
	assert.Error(t, ParseJSON("{not json}", &got))
}
