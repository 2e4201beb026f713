package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"ai-tutor/internal/auth"
	"ai-tutor/internal/config"
	"ai-tutor/internal/conversation"
	"ai-tutor/internal/health"
	"ai-tutor/internal/history"
	"ai-tutor/internal/llm"
	"ai-tutor/internal/persona"
	"ai-tutor/internal/scheduler"
	"ai-tutor/internal/storage"
	"ai-tutor/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	tutor := persona.Load(cfg.SystemPromptPath)

	factory := llm.NewFactory(cfg)
	llmClient, err := factory.CreateClient(string(cfg.LLMProvider), cfg.GeminiModel, tutor.Params)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	store, err := history.NewStore(cfg.HistoryDir)
	if err != nil {
		log.Fatalf("failed to init history store: %v", err)
	}

	var rec storage.Recorder
	if cfg.LogFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.LogFilePath)
		if err != nil {
			log.Printf("failed to init file recorder: %v", err)
		} else {
			rec = fr
		}
	}

	authSvc := auth.New(cfg.AllowedUsers)
	convo := conversation.New(llmClient, store, tutor)

	bot, err := telegram.New(cfg.TelegramBotToken, authSvc, convo, store, rec, cfg.MessageParseMode)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	// Liveness probe for the hosting environment; independent of the bot.
	go func() {
		if err := health.NewServer(cfg.Port).ListenAndServe(); err != nil {
			log.Fatalf("health listener failed: %v", err)
		}
	}()

	sched := scheduler.New(store.PruneArchives, time.Duration(cfg.ArchiveRetentionDay)*24*time.Hour)
	if err := sched.Start(); err != nil {
		log.Printf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	bot.Start(context.Background())
}
