package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cinema-bot/internal/analytics"
	"cinema-bot/internal/auth"
	"cinema-bot/internal/config"
	"cinema-bot/internal/kinopoisk"
	"cinema-bot/internal/scheduler"
	"cinema-bot/internal/storage"
	"cinema-bot/internal/telegram"
	"cinema-bot/internal/websearch"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := storage.NewSQLiteStore(cfg.DatabasePath)
	if !store.Exists() {
		log.Printf("creating database at %s", cfg.DatabasePath)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	films := kinopoisk.New(cfg.KinopoiskToken, cfg.KinopoiskURL, cfg.HTTPTimeout)
	links, err := websearch.New(ctx, cfg.GoogleAPIToken, cfg.GoogleSearchEngineID, cfg.GoogleSearchEndpoint, cfg.HTTPTimeout)
	if err != nil {
		log.Fatalf("failed to create search client: %v", err)
	}

	authSvc := auth.New(cfg.AllowedUsers)
	if authSvc.Restricted() {
		log.Printf("allowlist enabled for %d users", len(cfg.AllowedUsers))
	} else {
		log.Println("allowlist disabled, bot is open to everybody")
	}

	bot, err := telegram.New(
		cfg.BotToken,
		authSvc,
		films,
		links,
		store,
		telegram.Limits{
			MaxCaptionSize:  cfg.MaxCaptionSize,
			MaxMessageSize:  cfg.MaxMessageSize,
			DescriptionClip: cfg.DescriptionClip,
			MaxLinks:        cfg.MaxLinks,
		},
		cfg.AdminUserID,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.AdminUserID != 0 {
		sched := scheduler.New(cfg.ReportCron)
		sched.SetReportFunction(func(ctx context.Context) error {
			r, err := analytics.Collect(ctx, store, time.Now())
			if err != nil {
				return err
			}
			bot.SendReport(r.Summary())
			return nil
		})
		if err := sched.Start(); err != nil {
			log.Printf("failed to start scheduler: %v", err)
		}
		if sched.IsRunning() {
			defer sched.Stop()
		}
	}

	bot.Start(ctx)
	log.Println("bot stopped")
}
