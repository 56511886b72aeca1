package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

// Output formats accepted by the display functions.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// DisplayPatch prints the problem and solution of a patch. The corrected
// code itself is only included in machine-readable formats.
func DisplayPatch(w io.Writer, result *model.PatchResult, format string) error {
	switch format {
	case FormatJSON:
		return displayJSON(w, result)
	case FormatYAML:
		return displayYAML(w, result)
	case FormatHuman:
		fallthrough
	default:
		displayPatchHuman(w, result)
	}
	return nil
}

// DisplayBlueprint prints the planned layout of a generated project.
func DisplayBlueprint(w io.Writer, structure *model.ProjectStructure, format string) error {
	switch format {
	case FormatJSON:
		return displayJSON(w, structure)
	case FormatYAML:
		return displayYAML(w, structure)
	case FormatHuman:
		fallthrough
	default:
		displayBlueprintHuman(w, structure)
	}
	return nil
}

func displayJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, v any) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayPatchHuman(w io.Writer, result *model.PatchResult) {
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "🐒 ScriptMonkey Fixed It:")
	red.Fprintln(w, "💡 PROBLEM:")
	fmt.Fprintf(w, "%s\n\n", wrapText(result.Problem, 80, "   "))
	green.Fprintln(w, "🚀 SUGGESTED SOLUTION:")
	fmt.Fprintf(w, "%s\n\n", wrapText(result.Solution, 80, "   "))
}

func displayBlueprintHuman(w io.Writer, structure *model.ProjectStructure) {
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "🐒 ScriptMonkey created a project blueprint:")
	for _, f := range structure.Files {
		icon := "📄"
		if f.IsDir() {
			icon = "📁"
		}
		fmt.Fprintf(w, "   %s %s\n", icon, f.Path)
		if f.Description != "" {
			fmt.Fprintf(w, "      %s\n", color.HiBlackString(f.Description))
		}
		for _, fn := range f.Functions {
			fmt.Fprintf(w, "      • %s: %s\n", color.CyanString(fn.FunctionName), fn.Description)
		}
	}
	fmt.Fprintln(w)
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
