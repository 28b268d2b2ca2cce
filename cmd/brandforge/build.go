package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/db"
	"github.com/brandforge/brandforge/internal/notion"
	"github.com/brandforge/brandforge/internal/workflow"
)

func buildCmd() *cobra.Command {
	var website string
	var from int
	var to int
	var resume bool
	var skipNotion bool
	cmd := &cobra.Command{
		Use:   "build <client-name>",
		Short: "Run the brand building pipeline for a client",
		Long:  "Run the nine-step brand building pipeline. Each completed step is persisted, so an interrupted build can be resumed with --resume.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientName := args[0]
			cfg, root, err := loadConfig()
			if err != nil {
				return err
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

			var wc *workflow.Context
			var runID string
			if resume {
				run, restored, err := latestContext(cmd.Context(), store, clientName)
				if err != nil {
					return err
				}
				runID = run.RunID
				wc = restored
				if from <= 0 {
					from = run.CurrentStep + 1
				}
				log.Info().Str("run_id", runID).Int("from", from).Msg("resuming run")
			} else {
				initial := map[string]any{"client_name": clientName}
				if website != "" {
					initial["website_url"] = website
				}
				wc = workflow.NewContext(initial)
				runID, err = newRunID()
				if err != nil {
					return err
				}
				snapshot, err := wc.ToJSON()
				if err != nil {
					return err
				}
				if err := store.CreateRun(cmd.Context(), runID, clientName, string(snapshot)); err != nil {
					return err
				}
			}
			if from <= 0 {
				from = 1
			}

			var profile *notion.Store
			pageID := ""
			if !skipNotion {
				profile, err = notionStore(cfg)
				if err != nil {
					log.Warn().Err(err).Msg("notion sync disabled")
					profile = nil
				} else if pageID, err = ensureClientPage(cmd.Context(), profile, clientName); err != nil {
					return err
				}
			}

			results, status, err := runSteps(cmd.Context(), engine, store, profile, pageID, runID, wc, from, to)
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
				return fmt.Errorf("run %s failed", runID)
			}
			fmt.Printf("run %s %s\n", runID, status)
			return nil
		},
	}
	cmd.Flags().StringVar(&website, "website", "", "client website URL (required for step 1)")
	cmd.Flags().IntVar(&from, "from", 0, "first step to run (default 1, or after the last completed step with --resume)")
	cmd.Flags().IntVar(&to, "to", 0, "last step to run (default: run to the end)")
	cmd.Flags().BoolVar(&resume, "resume", false, "continue the client's most recent run")
	cmd.Flags().BoolVar(&skipNotion, "skip-notion", false, "do not sync results to the Notion client database")
	return cmd
}

// runSteps executes the requested step range, committing every result and
// context snapshot before moving on. Notion sync failures degrade to
// warnings so a flaky integration never loses pipeline progress.
func runSteps(ctx context.Context, engine *workflow.Engine, store *db.Store, profile *notion.Store, pageID, runID string, wc *workflow.Context, from, to int) ([]workflow.StepResult, string, error) {
	var results []workflow.StepResult
	status := db.RunStatusCompleted
	for _, num := range engine.StepNumbers() {
		if num < from {
			continue
		}
		if to > 0 && num > to {
			break
		}
		startedAt := time.Now().UTC().Format(time.RFC3339)
		result := engine.RunStep(ctx, num, wc)
		results = append(results, result)

		record := db.StepRecord{
			RunID:      runID,
			StepNumber: num,
			StepName:   result.StepName,
			Status:     db.RunStatusCompleted,
			Errors:     result.Errors,
			Warnings:   result.Warnings,
			StartedAt:  startedAt,
			EndedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if !result.Success {
			record.Status = db.RunStatusFailed
		}
		snapshot, err := wc.ToJSON()
		if err != nil {
			return results, db.RunStatusFailed, err
		}
		if err := store.CommitStep(ctx, record, string(snapshot), db.RunStatusRunning); err != nil {
			return results, db.RunStatusFailed, err
		}

		if profile != nil && result.Success {
			syncNotion(ctx, profile, pageID, num, result)
		}
		if !result.CanContinue() {
			status = db.RunStatusFailed
			break
		}
	}
	return results, status, nil
}

func syncNotion(ctx context.Context, profile *notion.Store, pageID string, num int, result workflow.StepResult) {
	if num <= 2 {
		if err := profile.UpdateProfile(ctx, pageID, result.Data); err != nil {
			log.Warn().Err(err).Int("step", num).Msg("notion profile update failed")
		}
	}
	tool, ok := toolForStep[num]
	if !ok {
		return
	}
	if err := profile.MarkToolComplete(ctx, pageID, tool); err != nil {
		log.Warn().Err(err).Str("tool", tool).Msg("notion tool completion failed")
	}
}

func ensureClientPage(ctx context.Context, profile *notion.Store, clientName string) (string, error) {
	pageID, err := profile.FindClient(ctx, clientName)
	if err != nil {
		return "", err
	}
	if pageID != "" {
		return pageID, nil
	}
	return profile.CreateClient(ctx, clientName, "")
}
