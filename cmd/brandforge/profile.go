package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/notion"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <client-name>",
		Short: "Show a client's brand profile and tool completion status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := notionStore(cfg)
			if err != nil {
				return err
			}
			pageID, err := store.FindClient(cmd.Context(), name)
			if err != nil {
				return err
			}
			if pageID == "" {
				return fmt.Errorf("client %q not found", name)
			}

			profile, err := store.GetProfile(cmd.Context(), pageID)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(profile))
			for k := range profile {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%-28s %v\n", k, profile[k])
			}

			status, err := store.ToolStatus(cmd.Context(), pageID)
			if err != nil {
				return err
			}
			fmt.Println()
			for _, tool := range notion.ToolNames() {
				badge := blockedStyle.Render("pending")
				if status[tool] {
					badge = okStyle.Render("done   ")
				}
				fmt.Printf("%s  %s\n", badge, tool)
			}
			return nil
		},
	}
	return cmd
}
