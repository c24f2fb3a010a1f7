// Package app assembles the question service from configuration. Both
// binaries (HTTP API and Telegram bot) start from here.
package app

import (
	"context"
	"fmt"

	"interview-helper/api/internal/config"
	"interview-helper/api/internal/interview"
	"interview-helper/api/internal/llm/gemini"
	"interview-helper/api/internal/logger"
	"interview-helper/api/internal/util"
)

// Build returns the service and a function releasing the upstream client.
func Build(ctx context.Context, cfg *config.Config, log logger.Logger) (*interview.Service, func() error, error) {
	prompt, err := loadPrompt(cfg.PromptFile)
	if err != nil {
		return nil, nil, err
	}
	eng, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTemperature)
	if err != nil {
		return nil, nil, fmt.Errorf("gemini client: %w", err)
	}
	log.Info("Gemini engine ready", "model", eng.GetModel(), "timeout", cfg.GeminiTimeout.String())
	return interview.NewService(eng, prompt, cfg.GeminiTimeout, log), eng.Close, nil
}

func loadPrompt(path string) (*interview.Prompt, error) {
	text, err := util.LoadPromptFile(path)
	if err != nil {
		return nil, err
	}
	return interview.NewPrompt(text)
}
