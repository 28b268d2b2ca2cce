package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/gemini"
	"github.com/brandforge/brandforge/internal/prompt"
)

func copyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <prompt-name> <input...>",
		Short: "Generate marketing copy with a simple or creative prompt",
		Long:  "Generate copy from a registered simple or creative prompt, e.g. social_copy, linkedin_copy, podcast_copy, copy_remix, or copy_story. The remaining arguments form the user input.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			input := strings.Join(args[1:], " ")

			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			registry, err := prompt.NewRegistry()
			if err != nil {
				return err
			}
			entry, ok := registry.Lookup(name)
			if !ok {
				return fmt.Errorf("prompt %q not found; try `brandforge prompts`", name)
			}
			if entry.Tier == prompt.TierStructured {
				return fmt.Errorf("prompt %q drives the pipeline; copy generation needs a simple or creative prompt", name)
			}

			text, entry, err := registry.GetWithConfig(name, map[string]string{"USER_INPUT": input})
			if err != nil {
				return err
			}

			apiKey, err := cfg.GeminiAPIKey()
			if err != nil {
				return err
			}
			gen, err := gemini.New(cmd.Context(), apiKey, cfg.Gemini.Model, time.Duration(cfg.Gemini.Timeout)*time.Second)
			if err != nil {
				return err
			}
			out, err := gen.Generate(cmd.Context(), gemini.Request{
				Prompt:      text,
				Temperature: entry.Temperature,
			})
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	return cmd
}
