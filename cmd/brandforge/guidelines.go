package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func guidelinesCmd() *cobra.Command {
	var outPath string
	var raw bool
	cmd := &cobra.Command{
		Use:   "guidelines <client-name>",
		Short: "Render the final brand voice guidelines document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeFn, err := openStore(root)
			if err != nil {
				return err
			}
			defer closeFn()

			run, wc, err := latestContext(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			doc := wc.GetString("final_document")
			if doc == "" {
				return fmt.Errorf("run %s has no guidelines document yet; run the pipeline through step 9", run.RunID)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
					return fmt.Errorf("write guidelines: %w", err)
				}
				fmt.Printf("wrote guidelines to %s\n", outPath)
				return nil
			}
			if raw {
				fmt.Println(doc)
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return err
			}
			rendered, err := renderer.Render(doc)
			if err != nil {
				return err
			}
			fmt.Print(rendered)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write the raw markdown to a file instead of rendering")
	cmd.Flags().BoolVar(&raw, "raw", false, "print raw markdown without terminal rendering")
	return cmd
}
