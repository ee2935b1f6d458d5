package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/scoopsfinder/scoopsd/internal/ai"
	"github.com/scoopsfinder/scoopsd/internal/config"
	"github.com/scoopsfinder/scoopsd/internal/feed"
	"github.com/scoopsfinder/scoopsd/internal/fetch"
	"github.com/scoopsfinder/scoopsd/internal/identity"
	"github.com/scoopsfinder/scoopsd/internal/notify"
	"github.com/scoopsfinder/scoopsd/internal/pipeline"
	"github.com/scoopsfinder/scoopsd/internal/server"
	"github.com/scoopsfinder/scoopsd/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var summarizer ai.Summarizer
	if cfg.OpenAIAPIKey != "" {
		summarizer = ai.NewOpenAIClient(cfg.OpenAIAPIKey)
	} else {
		log.Println("OPENAI_API_KEY not set; summarize requests will fail")
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		telegram, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to set up telegram notifier: %v", err)
		}
		notifier = telegram
	}

	sessions := store.NewSessions(cfg.SessionRetention)
	defer sessions.Close()

	p := pipeline.New(fetch.New(cfg.FetchTimeout), summarizer, cfg.MaxContentWords)
	feedClient := feed.NewClient(cfg.FeedURL, cfg.FetchTimeout)
	identityClient := identity.NewClient(cfg.IdentityURL, cfg.FetchTimeout)

	srv := server.New(cfg, sessions, p, feedClient, identityClient, notifier)

	log.Println("Starting scoopsd...")
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("scoopsd stopped gracefully")
}
