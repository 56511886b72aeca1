package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/helmcode/scriptmonkey/pkg/config"
	"github.com/helmcode/scriptmonkey/pkg/llm"
	"github.com/helmcode/scriptmonkey/pkg/ui"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage API keys and settings",
	}
	cmd.AddCommand(newSetAPIKeyCmd(), newShowConfigCmd())
	return cmd
}

func newSetAPIKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-api-key [KEY]",
		Short: "Store the API key of a provider",
		Long: `Store the API key of the selected provider (--provider, default openai) in
~/.scriptmonkey/config.yaml. Without KEY you are prompted for it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSetAPIKey,
	}
}

func runSetAPIKey(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	name := providerName
	if name == "" {
		name = string(llm.ProviderOpenAI)
	}
	provider, err := llm.ParseProvider(name)
	if err != nil {
		return err
	}

	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		err := huh.NewInput().
			Title(fmt.Sprintf("Enter the new %s API key", provider)).
			EchoMode(huh.EchoModePassword).
			Value(&key).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("the API key cannot be empty")
				}
				return nil
			}).
			Run()
		if err != nil {
			return fmt.Errorf("no API key provided, the API key was not updated: %w", err)
		}
	}

	if err := cfg.SetAPIKey(provider, key); err != nil {
		return err
	}
	ui.Success(fmt.Sprintf("%s API key saved to %s", provider, cfg.Path()))
	return nil
}

func newShowConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDefault()
			if err != nil {
				return err
			}
			llmCfg, err := cfg.LLMConfig(providerName, modelName)
			if err != nil {
				return err
			}

			model := llmCfg.Model
			if model == "" {
				model = "(provider default)"
			}
			fmt.Printf("Config file: %s\n", cfg.Path())
			fmt.Printf("Provider:    %s\n", llmCfg.Provider)
			fmt.Printf("Model:       %s\n", model)
			fmt.Printf("API key:     %s\n", config.MaskKey(llmCfg.APIKey))
			if llmCfg.BaseURL != "" {
				fmt.Printf("Base URL:    %s\n", llmCfg.BaseURL)
			}
			return nil
		},
	}
}
