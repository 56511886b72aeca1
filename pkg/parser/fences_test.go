package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"python fence", "```python\nprint(1)\n```", "print(1)\n"},
		{"fence with trailing newline", "```python\nprint(1)\n```\n", "print(1)\n"},
		{"bare fence", "```\nx = 1\ny = 2\n```", "x = 1\ny = 2\n"},
		{"no fence", "x = 1/0 if False else 0\n", "x = 1/0 if False else 0\n"},
		{"no fence no newline", "x = 1", "x = 1"},
		{"space before language tag", "``` python\nprint(1)\n```\n", "print(1)\n"},
		{"blank lines around fence", "\n```go\npackage main\n```\n\n", "package main\n"},
		{"only opening fence", "```python\nprint(1)\n", "print(1)\n"},
		{"inner content preserved", "```\n  indented\n\n\tmore\n```", "  indented\n\n\tmore\n"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.input))
		})
	}
}

func TestStripFences_Idempotent(t *testing.T) {
	in := "```python\nprint(1)\n```"
	once := StripFences(in)
	assert.Equal(t, once, StripFences(once))
}

func TestIsFenceLine(t *testing.T) {
	assert.True(t, IsFenceLine("```"))
	assert.True(t, IsFenceLine("```python"))
	assert.True(t, IsFenceLine("  ```c++  "))
	assert.True(t, IsFenceLine("````\r\n"))
	assert.True(t, IsFenceLine("``` python"))
	assert.False(t, IsFenceLine("x = '```'"))
	assert.False(t, IsFenceLine("``"))
	assert.False(t, IsFenceLine("```python print(1)"))
}

func TestContainsFence(t *testing.T) {
	assert.True(t, ContainsFence("a\n```\nb"))
	assert.True(t, ContainsFence("a\n``` go\nb"))
	assert.False(t, ContainsFence("a\nb\n"))
}

func TestRemoveFenceLines(t *testing.T) {
	in := "```python\nimport os\n\nprint(os.getcwd())\n```"
	assert.Equal(t, "import os\n\nprint(os.getcwd())", RemoveFenceLines(in))
	assert.Equal(t, "plain\ntext", RemoveFenceLines("plain\ntext"))
}
