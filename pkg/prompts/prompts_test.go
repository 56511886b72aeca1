package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

func TestBuildFixContent(t *testing.T) {
	got := BuildFixContent("# Operating System: Linux, Version: 6.1\n\n", "x = 1/0", "ZeroDivisionError: division by zero")

	want := "# Operating System: Linux, Version: 6.1\n\n# Original Code:\n```\nx = 1/0\n```\n\n# Error Message:\nZeroDivisionError: division by zero"
	assert.Equal(t, want, got)
}

func TestProjectContext(t *testing.T) {
	files := []model.ProjectFile{
		{Path: "app/", Description: "package"},
		{Path: "app/main.py", Description: "entry", Functions: []model.FunctionDetails{{
			FunctionName: "main",
			Description:  "starts the app",
			Inputs:       []string{"argv: list[str]"},
			Outputs:      []string{"int"},
		}}},
	}

	got := ProjectContext("a todo app", files)

	assert.Contains(t, got, "Project Goal: a todo app")
	assert.Contains(t, got, "- 'app/' is defined with no specific functions listed.")
	assert.Contains(t, got, "  - main: starts the app (Inputs: [argv: list[str]], Outputs: [int])")
}

func TestBuildFilePrompt_ContentType(t *testing.T) {
	py := BuildFilePrompt(model.ProjectFile{Path: "src/app.py", Description: "d"}, "goal", nil)
	assert.True(t, strings.HasPrefix(py, "Write the complete content for a PY file content"))

	txt := BuildFilePrompt(model.ProjectFile{Path: "Makefile", Description: "d"}, "goal", nil)
	assert.True(t, strings.HasPrefix(txt, "Write the complete content for a text content"))
}

func TestBuildReadmePrompt(t *testing.T) {
	got, err := BuildReadmePrompt("goal", &model.ProjectStructure{Files: []model.ProjectFile{{Path: "main.go"}}})
	require.NoError(t, err)
	assert.Contains(t, got, "Project Description: goal")
	assert.Contains(t, got, `"path": "main.go"`)
}

func TestBuildAskPrompt(t *testing.T) {
	withFiles := BuildAskPrompt("why?", []model.Document{{Path: "a.py", Content: "print(1)"}}, "└── a.py")
	assert.Contains(t, withFiles, "### Question:\nwhy?")
	assert.Contains(t, withFiles, "## File: a.py")
	assert.Contains(t, withFiles, "```\nprint(1)\n```")
	assert.Contains(t, withFiles, "### Directory Tree:")

	bare := BuildAskPrompt("why?", nil, "")
	assert.Contains(t, bare, "No specific files have been provided")
	assert.NotContains(t, bare, "### Directory Tree:")
}
