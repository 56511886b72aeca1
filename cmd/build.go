package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/scriptmonkey/pkg/builder"
	"github.com/helmcode/scriptmonkey/pkg/editor"
	"github.com/helmcode/scriptmonkey/pkg/formatter"
	"github.com/helmcode/scriptmonkey/pkg/model"
	"github.com/helmcode/scriptmonkey/pkg/ui"
)

var (
	buildDir         string
	buildConcurrency int
	blueprintFormat  string
	skipReadme       bool
)

func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [DESCRIPTION]",
		Short: "Generate a new project from a description",
		Long: `Describe a project and let the model plan its files, write each one and
finish with a README. Without a description your editor opens to write it.
Files that already exist are never overwritten.

Examples:
  # Describe the project in your editor
  scriptmonkey build

  # Generate four files at a time into ./todo
  scriptmonkey build "A CLI todo list backed by SQLite" --dir ./todo --concurrency 4`,
		RunE: runBuild,
	}

	cmd.Flags().StringVarP(&buildDir, "dir", "d", builder.DefaultBaseDir, "Directory the project is generated in")
	cmd.Flags().IntVarP(&buildConcurrency, "concurrency", "c", 1, "Number of files generated at the same time")
	cmd.Flags().StringVarP(&blueprintFormat, "output", "o", "human", "Output format for the blueprint (human, json, yaml)")
	cmd.Flags().BoolVar(&skipReadme, "no-readme", false, "Do not generate README.md")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	description, err := readInput(args, editor.ModeBuild)
	if err != nil {
		return err
	}

	client, err := newLLM()
	if err != nil {
		return err
	}

	ui.Header("ScriptMonkey Project Builder")
	fmt.Printf("📝 Project Description: %s\n", description)

	b := builder.New(client,
		builder.WithBaseDir(buildDir),
		builder.WithConcurrency(buildConcurrency),
	)

	var structure *model.ProjectStructure
	err = ui.Spin("Planning the project structure...", func() error {
		var genErr error
		structure, genErr = b.GenerateStructure(cmd.Context(), description)
		return genErr
	})
	if err != nil {
		return err
	}

	fmt.Println("\n🐒 ScriptMonkey created a project blueprint:")
	if err := formatter.DisplayBlueprint(os.Stdout, structure, blueprintFormat); err != nil {
		return err
	}

	fmt.Println("\n🐒 ScriptMonkey is coding...")
	if err := b.Build(cmd.Context(), structure, description); err != nil {
		return fmt.Errorf("project generation failed: %w", err)
	}
	ui.Success("Project structure creation complete")

	if skipReadme {
		return nil
	}

	var readmePath string
	err = ui.Spin("Writing README.md...", func() error {
		var genErr error
		readmePath, genErr = b.GenerateReadme(cmd.Context(), description, structure)
		return genErr
	})
	if err != nil {
		return err
	}
	fmt.Printf("🐒 ScriptMonkey wrote a README.md file at: '%s'\n", readmePath)
	return nil
}
