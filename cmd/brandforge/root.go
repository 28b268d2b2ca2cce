package main

import (
	"fmt"
	"path/filepath"

	"github.com/brandforge/brandforge/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	debug   bool
	rootCmd = &cobra.Command{
		Use:   "brandforge",
		Short: "brandforge builds brand voice profiles from websites and AI analysis",
	}
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", filepath.Join(".brandforge", "config.json"), "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("bind config flag: %w", err)
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.Init(debug)
	}
	rootCmd.SilenceUsage = true
	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(stepCmd())
	rootCmd.AddCommand(stepsCmd())
	rootCmd.AddCommand(clientsCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(copyCmd())
	rootCmd.AddCommand(guidelinesCmd())
	rootCmd.AddCommand(promptsCmd())
	rootCmd.AddCommand(runsCmd())
	rootCmd.AddCommand(configCmd())
	return rootCmd.Execute()
}
