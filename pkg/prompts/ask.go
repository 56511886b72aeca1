package prompts

import (
	"fmt"
	"strings"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

// BuildAskPrompt renders a free-form question with optional files and a
// directory tree as context.
func BuildAskPrompt(question string, docs []model.Document, tree string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Question:\n%s\n\n", question)
	b.WriteString("If I have included any files below, you can use them for additional context for this question. ")
	b.WriteString("Please analyze the provided files below (if available) as needed and reference them when forming your answer. ")
	b.WriteString("If the answer involves code, please format any code examples using Markdown with properly labeled language-specific code blocks. ")
	b.WriteString("Your response should be in Markdown format to preserve readability.\n\n")

	if len(docs) > 0 {
		b.WriteString("### Files Provided:\n")
		for _, d := range docs {
			fmt.Fprintf(&b, "## File: %s\n", d.Path)
			fmt.Fprintf(&b, "The content of the file '%s' is included below. Use this as context for answering the question:\n\n", d.Path)
			fmt.Fprintf(&b, "```\n%s\n```\n\n", d.Content)
		}
	} else {
		b.WriteString("No specific files have been provided, so please base your response solely on the question above.\n")
	}

	if tree != "" {
		b.WriteString("### Directory Tree:\n")
		fmt.Fprintf(&b, "The directory tree of the current working directory is included below:\n\n```\n%s\n```\n\n", tree)
	}
	return b.String()
}
