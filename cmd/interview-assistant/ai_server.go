package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terra-clan/interview-assistant/internal/ai"
	"github.com/terra-clan/interview-assistant/internal/api"
	"github.com/terra-clan/interview-assistant/internal/questions"
)

var aiServerCmd = &cobra.Command{
	Use:   "ai-server",
	Short: "Run the question and scoring service",
	Long:  "Serves /ai/generate-questions, /ai/score and /ai/finalize. Questions come from QUESTIONS_FILE when set, otherwise the built-in set. Requires AI_API_KEY.",
	RunE:  runAIServer,
}

func init() {
	rootCmd.AddCommand(aiServerCmd)
}

func runAIServer(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(os.Stdout)
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	bank := questions.NewBank()
	if cfg.AIServer.QuestionsFile != "" {
		if err := bank.LoadFromFile(cfg.AIServer.QuestionsFile); err != nil {
			return fmt.Errorf("failed to load questions: %w", err)
		}
	}
	logger.Info("question bank loaded", "source", bank.Source(), "questions", bank.Len())

	server := api.NewAIServer(ai.NewService(bank, logger), cfg.AI.APIKey, logger)
	if err := serveHTTP(cmd.Context(), logger, newHTTPServer(cfg.AIServer.Host, cfg.AIServer.Port, server.Router())); err != nil {
		return err
	}

	logger.Info("ai-server stopped")
	return nil
}
