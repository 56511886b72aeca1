package prompts

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

// ProjectStructureInstructions asks for the manifest of a new project.
const ProjectStructureInstructions = `Generate a detailed project structure for a multi-level application. The project will be placed directly inside a folder named 'generated_project'.
- Do NOT include 'generated_project/' as part of the paths. All paths should be relative to the root of the project directory, meaning they should start directly with the file or folder names as if they are inside 'generated_project'.
- Provide a list of directories and files with their full relative paths.
- Each directory should end with a '/' to indicate that it is a folder.
- For each file or directory, include a 'description' that explains its purpose.
- If the file is a code file, also include a 'functions' list. For each function, include:
  - 'function_name': The name of the function.
  - 'description': A description of what the function does.
  - 'inputs': A list of the function's expected inputs, including data types.
  - 'outputs': A list of the function's expected outputs, including data types.
- Do not include any extra explanations, commentary, or introductory text. Only provide the structured data as requested.`

// ProjectContext summarises the goal of the project and the functions every
// planned file is expected to define.
func ProjectContext(description string, files []model.ProjectFile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project Goal: %s\n\n", description)
	b.WriteString("Project Context:\n")
	for _, f := range files {
		if len(f.Functions) == 0 {
			fmt.Fprintf(&b, "- '%s' is defined with no specific functions listed.\n", f.Path)
			continue
		}
		fmt.Fprintf(&b, "- In '%s', the following functions are defined:\n", f.Path)
		for _, fn := range f.Functions {
			fmt.Fprintf(&b, "  - %s\n", describeFunction(fn))
		}
	}
	return b.String()
}

// BuildFilePrompt asks for the full content of one file of the project.
func BuildFilePrompt(file model.ProjectFile, description string, files []model.ProjectFile) string {
	contentType := "text content"
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Path)), "."); ext != "" {
		contentType = strings.ToUpper(ext) + " file content"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write the complete content for a %s that fulfills the following requirements. ", contentType)
	b.WriteString("Consider the context of the entire project when generating the content and make use of imports where available and appropriate. ")
	b.WriteString("Use relevant imports, references, and appropriate formatting or structure where necessary. Do not add extra commentary or explanation. ")
	b.WriteString("Return the content directly as plain text, without wrapping it in code fences or triple backticks.")
	fmt.Fprintf(&b, "\n\nFile Path: %s", file.Path)
	fmt.Fprintf(&b, "\nFile Description: %s", file.Description)
	fmt.Fprintf(&b, "\n\n%s\n", ProjectContext(description, files))

	if len(file.Functions) > 0 {
		b.WriteString("\n\nFunctions:\n")
		for _, fn := range file.Functions {
			fmt.Fprintf(&b, "- %s\n", describeFunction(fn))
		}
	}
	return b.String()
}

// BuildReadmePrompt asks for the README of a generated project.
func BuildReadmePrompt(description string, structure *model.ProjectStructure) (string, error) {
	structureJSON, err := json.MarshalIndent(structure, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal project structure: %w", err)
	}

	return fmt.Sprintf(`Write a complete README.md file based on the following project details.
The README should include the project overview, installation instructions, usage guide, file structure summary, key features, and configuration details.
Make sure the README is well-structured and formatted using Markdown without wrapping the entire README in backticks.
Do not include any commentary, explanations, or text outside of the README content.

Project Description: %s

Project Structure:
%s
`, description, string(structureJSON)), nil
}

func describeFunction(fn model.FunctionDetails) string {
	return fmt.Sprintf("%s: %s (Inputs: [%s], Outputs: [%s])",
		fn.FunctionName, fn.Description, strings.Join(fn.Inputs, ", "), strings.Join(fn.Outputs, ", "))
}
