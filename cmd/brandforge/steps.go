package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/workflow"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	readyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	nameStyle    = lipgloss.NewStyle().Bold(true)
)

func stepsCmd() *cobra.Command {
	var inputPath string
	var clientName string
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Show pipeline step status for a context file or a client's latest run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := loadConfig()
			if err != nil {
				return err
			}
			engine, err := statusEngine(cfg)
			if err != nil {
				return err
			}

			var wc *workflow.Context
			switch {
			case inputPath != "":
				if wc, err = readContextFile(inputPath); err != nil {
					return err
				}
			case clientName != "":
				store, closeFn, err := openStore(root)
				if err != nil {
					return err
				}
				defer closeFn()
				if _, wc, err = latestContext(cmd.Context(), store, clientName); err != nil {
					return err
				}
			default:
				wc = workflow.NewContext(nil)
			}

			status := engine.Status(wc)
			for _, num := range engine.StepNumbers() {
				step, _ := engine.Step(num)
				fmt.Printf("%2d  %s  %s\n", num, statusBadge(status[num]), nameStyle.Render(step.Name()))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "context JSON file to inspect")
	cmd.Flags().StringVar(&clientName, "client", "", "inspect the client's most recent run")
	return cmd
}

func statusBadge(status string) string {
	switch status {
	case workflow.StatusCompleted:
		return okStyle.Render("completed")
	case workflow.StatusFailed:
		return failStyle.Render("failed   ")
	case workflow.StatusReady:
		return readyStyle.Render("ready    ")
	default:
		return blockedStyle.Render("blocked  ")
	}
}

func resultLine(result workflow.StepResult) string {
	badge := okStyle.Render("ok")
	if !result.Success {
		badge = failStyle.Render("failed")
	}
	line := fmt.Sprintf("%s  %s", badge, nameStyle.Render(result.StepName))
	if len(result.Warnings) > 0 {
		line += fmt.Sprintf("  (%d warnings)", len(result.Warnings))
	}
	return line
}
