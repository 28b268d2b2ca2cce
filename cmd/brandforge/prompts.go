package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/prompt"
)

func promptsCmd() *cobra.Command {
	var validate bool
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "List registered prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := prompt.NewRegistry()
			if err != nil {
				return err
			}

			failed := 0
			for _, name := range registry.Names() {
				entry, _ := registry.Lookup(name)
				fmt.Printf("%-38s %-10s %.1f  %s\n", name, entry.Tier, entry.Temperature, entry.Description)
				if validate {
					if err := registry.Validate(name); err != nil {
						fmt.Printf("  %s %v\n", failStyle.Render("invalid:"), err)
						failed++
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d prompts failed validation", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "check that every prompt's components exist")
	return cmd
}
