package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/db"
	"github.com/brandforge/brandforge/internal/workflow"
)

func clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage clients in the Notion database",
	}
	cmd.AddCommand(clientsListCmd())
	cmd.AddCommand(clientsCreateCmd())
	return cmd
}

func clientsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := notionStore(cfg)
			if err != nil {
				return err
			}
			clients, err := store.ListClients(cmd.Context())
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Println("no clients found")
				return nil
			}
			for _, c := range clients {
				fmt.Printf("%s  %s\n", c.PageID, nameStyle.Render(c.Name))
			}
			return nil
		},
	}
}

func clientsCreateCmd() *cobra.Command {
	var industry string
	var website string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a client row, optionally seeding it from their website",
		Long:  "Create a client row in the Notion database. With --website, the website extraction and brand analysis steps run immediately and their results seed the new profile.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, root, err := loadConfig()
			if err != nil {
				return err
			}
			profile, err := notionStore(cfg)
			if err != nil {
				return err
			}
			if pageID, err := profile.FindClient(cmd.Context(), name); err != nil {
				return err
			} else if pageID != "" {
				return fmt.Errorf("client %q already exists (%s)", name, pageID)
			}
			pageID, err := profile.CreateClient(cmd.Context(), name, industry)
			if err != nil {
				return err
			}
			fmt.Printf("created client %s (%s)\n", name, pageID)
			if website == "" {
				return nil
			}

			store, closeFn, err := openStore(root)
			if err != nil {
				return err
			}
			defer closeFn()
			engine, err := newEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			wc := workflow.NewContext(map[string]any{
				"client_name": name,
				"website_url": website,
			})
			runID, err := newRunID()
			if err != nil {
				return err
			}
			snapshot, err := wc.ToJSON()
			if err != nil {
				return err
			}
			if err := store.CreateRun(cmd.Context(), runID, name, string(snapshot)); err != nil {
				return err
			}

			results, status, err := runSteps(cmd.Context(), engine, store, profile, pageID, runID, wc, 1, 2)
			if err != nil {
				return err
			}
			if finishErr := store.FinishRun(cmd.Context(), runID, status); finishErr != nil {
				return finishErr
			}
			for _, r := range results {
				fmt.Println(resultLine(r))
			}
			if status == db.RunStatusFailed {
				return fmt.Errorf("profile seeding failed; resume with `brandforge build %q --resume`", name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&industry, "industry", "", "industry select value")
	cmd.Flags().StringVar(&website, "website", "", "run website extraction and brand analysis to seed the profile")
	return cmd
}
