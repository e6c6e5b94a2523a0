package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/terra-clan/interview-assistant/internal/api"
	"github.com/terra-clan/interview-assistant/internal/countdown"
	"github.com/terra-clan/interview-assistant/internal/extractor"
	"github.com/terra-clan/interview-assistant/internal/services"
	"github.com/terra-clan/interview-assistant/internal/session"
	"github.com/terra-clan/interview-assistant/internal/store"
	"github.com/terra-clan/interview-assistant/pkg/client"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interview application server",
	Long:  "Serves the candidate interview flow, the interviewer dashboard and the live event stream. Requires AI_API_KEY.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(os.Stdout)
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	logger.Info("starting interview-assistant",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"store", cfg.Store.Backend,
		"ai_base_url", cfg.AI.BaseURL,
	)

	initCtx, initCancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer initCancel()

	persister, err := openPersister(initCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer persister.Close()

	st, err := store.Open(initCtx, persister, logger)
	if err != nil {
		return fmt.Errorf("failed to open candidate store: %w", err)
	}
	defer st.Close()

	aiClient := client.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, client.WithTimeout(cfg.AI.Timeout))

	ctrl := session.New(
		aiClient,
		extractor.New(logger),
		st,
		countdown.New(cfg.Interview.Tick),
		logger,
	)
	defer ctrl.Close()

	registry := services.NewRegistry()
	registry.Register("store", st)
	registry.Register("ai", aiClient)

	server := api.NewServer(cfg.Server, ctrl, st, registry, logger)
	if err := serveHTTP(cmd.Context(), logger, newHTTPServer(cfg.Server.Host, cfg.Server.Port, server.Router())); err != nil {
		return err
	}

	logger.Info("interview-assistant stopped")
	return nil
}
