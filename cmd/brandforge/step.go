package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/workflow"
)

func stepCmd() *cobra.Command {
	var inputPath string
	var outputPath string
	cmd := &cobra.Command{
		Use:   "step <number>",
		Short: "Run a single pipeline step against a context file",
		Long:  "Run one step with the context read from --input and write the updated context to --output. Without --input the step starts from an empty context, which is only useful for step 1 seeded via --output inspection.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			num, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("step number must be an integer: %q", args[0])
			}

			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			wc := workflow.NewContext(nil)
			if inputPath != "" {
				if wc, err = readContextFile(inputPath); err != nil {
					return err
				}
			}

			result := engine.RunStep(cmd.Context(), num, wc)
			fmt.Println(resultLine(result))
			for _, w := range result.Warnings {
				fmt.Println("  warning:", w)
			}
			for _, e := range result.Errors {
				fmt.Println("  error:", e)
			}

			if outputPath != "" {
				if err := writeContextFile(outputPath, wc); err != nil {
					return err
				}
			} else {
				data, err := wc.ToJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(data))
			}
			if !result.Success {
				return fmt.Errorf("step %d failed", num)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "context JSON file to read")
	cmd.Flags().StringVar(&outputPath, "output", "", "context JSON file to write (default: print to stdout)")
	return cmd
}
