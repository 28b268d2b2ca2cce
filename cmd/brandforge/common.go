package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/brandforge/brandforge/internal/config"
	"github.com/brandforge/brandforge/internal/db"
	"github.com/brandforge/brandforge/internal/fetch"
	"github.com/brandforge/brandforge/internal/gemini"
	"github.com/brandforge/brandforge/internal/notion"
	"github.com/brandforge/brandforge/internal/prompt"
	"github.com/brandforge/brandforge/internal/workflow"
	"github.com/brandforge/brandforge/internal/workflow/steps"
)

// toolForStep maps step numbers to the profile tool they complete. The
// first two steps together form the context gatherer tool, so only step 2
// marks it done.
var toolForStep = map[int]string{
	2: "context_gatherer",
	3: "content_collector",
	4: "voice_auditor",
	5: "audience_definer",
	6: "voice_traits_builder",
	7: "gap_analyzer",
	8: "content_rewriter",
	9: "guidelines_finalizer",
}

func loadConfig() (config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", err
	}
	path := viper.GetString("config")
	if path == "" {
		path = filepath.Join(".brandforge", "config.json")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, root, nil
}

func openStore(root string) (*db.Store, func(), error) {
	dbPath := filepath.Join(root, ".brandforge", "brandforge.db")
	handle, err := db.Open(dbPath)
	if err != nil {
		return nil, func() {}, err
	}
	return db.NewStore(handle), func() { _ = handle.Close() }, nil
}

// newEngine wires the prompt registry, the Gemini client, and the website
// fetcher into a runnable pipeline.
func newEngine(ctx context.Context, cfg config.Config) (*workflow.Engine, error) {
	registry, err := prompt.NewRegistry()
	if err != nil {
		return nil, err
	}
	apiKey, err := cfg.GeminiAPIKey()
	if err != nil {
		return nil, err
	}
	gen, err := gemini.New(ctx, apiKey, cfg.Gemini.Model, time.Duration(cfg.Gemini.Timeout)*time.Second)
	if err != nil {
		return nil, err
	}
	fetcher := fetch.New(time.Duration(cfg.Fetcher.TimeoutSeconds)*time.Second, cfg.Fetcher.SectionLimit)
	return workflow.NewEngine(steps.All(steps.Deps{
		Generator: gen,
		Prompts:   prompt.NewWrapper(registry),
		Fetcher:   fetcher,
	}))
}

// statusEngine builds the pipeline without a model client, for commands
// that only classify step state and never execute a step.
func statusEngine(cfg config.Config) (*workflow.Engine, error) {
	registry, err := prompt.NewRegistry()
	if err != nil {
		return nil, err
	}
	fetcher := fetch.New(time.Duration(cfg.Fetcher.TimeoutSeconds)*time.Second, cfg.Fetcher.SectionLimit)
	return workflow.NewEngine(steps.All(steps.Deps{
		Prompts: prompt.NewWrapper(registry),
		Fetcher: fetcher,
	}))
}

func notionStore(cfg config.Config) (*notion.Store, error) {
	if cfg.Notion.ClientDatabaseID == "" {
		return nil, fmt.Errorf("notion.client_database_id is not configured")
	}
	apiKey, err := cfg.NotionAPIKey()
	if err != nil {
		return nil, err
	}
	return notion.NewStore(apiKey, cfg.Notion.ClientDatabaseID), nil
}

func newRunID() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	ts := time.Now().UTC().Format("20060102-150405")
	return fmt.Sprintf("%s-%s", ts, hex.EncodeToString(buf)), nil
}

func readContextFile(path string) (*workflow.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read context file: %w", err)
	}
	return workflow.FromJSON(data)
}

func writeContextFile(path string, wc *workflow.Context) error {
	data, err := wc.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write context file: %w", err)
	}
	return nil
}

func latestContext(ctx context.Context, store *db.Store, clientName string) (db.RunRecord, *workflow.Context, error) {
	run, contextJSON, err := store.LatestRunForClient(ctx, clientName)
	if err != nil {
		return db.RunRecord{}, nil, err
	}
	if run.RunID == "" {
		return db.RunRecord{}, nil, fmt.Errorf("no runs found for client %q", clientName)
	}
	wc, err := workflow.FromJSON([]byte(contextJSON))
	if err != nil {
		return db.RunRecord{}, nil, err
	}
	return run, wc, nil
}
