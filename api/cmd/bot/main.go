package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"interview-helper/api/internal/app"
	"interview-helper/api/internal/config"
	"interview-helper/api/internal/handle"
	"interview-helper/api/internal/httpserver"
	"interview-helper/api/internal/logger"
	"interview-helper/api/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.TelegramBotToken == "" {
		return errors.New("missing TELEGRAM_BOT_TOKEN")
	}

	log, err := logger.New(logger.Options{JSON: cfg.LogJSON, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, closeEngine, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeEngine()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	bot.Debug = false
	log.Info("Telegram bot authorized", "username", bot.Self.UserName)

	r := &telegram.Router{Bot: bot, Gen: svc, Log: log, Timeout: cfg.GeminiTimeout}

	h := handle.New(svc, log)
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/health", h.Health)

	g, gctx := errgroup.WithContext(ctx)

	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		path, err := telegram.SetWebhook(bot, webhookURL)
		if err != nil {
			return err
		}
		mux.Handle(path, telegram.WebhookHandler(gctx, bot, r, log))
		log.Info("Webhook mode", "path", path)
	} else {
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			log.Warn("Could not delete webhook", "error", err)
		}
		g.Go(func() error {
			telegram.RunPolling(gctx, bot, log, func(upd tgbotapi.Update) {
				r.Dispatch(gctx, upd)
			})
			return nil
		})
		log.Info("Polling mode")
	}

	g.Go(func() error {
		return httpserver.Run(gctx, httpserver.New(cfg.Addr(), mux, log), log)
	})

	err = g.Wait()
	// Updates still in flight use the engine closed by the deferred closeEngine.
	r.Wait()
	if err != nil {
		log.Error("Bot stopped with error", "error", err)
		return err
	}
	log.Info("Bot stopped")
	return nil
}
