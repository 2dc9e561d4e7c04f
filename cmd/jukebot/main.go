package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hxnx/jukebot/config"
	"github.com/hxnx/jukebot/internal/bot"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Jukebot - Shared Spotify Controller")
	log.Println("===================================")

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error: Failed to load configuration: %v", err)
		log.Println("")
		log.Println("Please ensure you have set the following environment variables:")
		log.Println("  DISCORD_TOKEN          - Your Discord bot token (required)")
		log.Println("  DISCORD_APPLICATION_ID - Your Discord application ID (required)")
		log.Println("  SPOTIFY_CLIENT_ID      - Spotify application client id (required)")
		log.Println("  SPOTIFY_CLIENT_SECRET  - Spotify application client secret (required)")
		log.Println("  SPOTIFY_REDIRECT_URI   - OAuth redirect URI registered with Spotify (required)")
		log.Println("")
		log.Println("Optional environment variables:")
		log.Println("  DISCORD_GUILD_ID       - Guild ID for development (registers commands to specific guild)")
		log.Println("  ADMIN_USER_IDS         - Comma-separated Discord user ids with admin access")
		log.Println("  LOG_LEVEL              - Log level (debug, info, warn, error)")
		log.Println("")
		log.Println("Database configuration:")
		log.Println("  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE")
		log.Println("")
		log.Println("Redis configuration:")
		log.Println("  REDIS_HOST, REDIS_PORT, REDIS_PASSWORD, REDIS_DB")
		os.Exit(1)
	}

	log.Println("")
	log.Println("Configuration loaded successfully")
	log.Println("---------------------------------")

	if cfg.IsDevelopment() {
		log.Printf("Mode: Development (Guild ID: %s)", cfg.GuildID)
	} else {
		log.Printf("Mode: Production (global commands)")
	}
	log.Printf("Log Level: %s", cfg.LogLevel)
	log.Printf("Admins: %d configured", len(cfg.AdminUserIDs))

	log.Println("")
	log.Println("Database:")
	log.Printf("  Host: %s:%d", cfg.DBHost, cfg.DBPort)
	log.Printf("  Database: %s", cfg.DBName)
	log.Printf("  SSL Mode: %s", cfg.DBSSLMode)

	log.Println("")
	log.Println("Redis:")
	log.Printf("  Host: %s:%d", cfg.RedisHost, cfg.RedisPort)
	log.Printf("  Database: %d", cfg.RedisDB)

	log.Println("")
	log.Println("---------------------------------")

	b, err := bot.New(cfg)
	if err != nil {
		log.Fatalf("Error: Failed to create bot: %v", err)
	}

	log.Println("Starting bot...")
	if err := b.Start(); err != nil {
		log.Fatalf("Error: Bot error: %v", err)
	}

	log.Println("Bot is running. Press CTRL+C to exit.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	if err := b.Stop(); err != nil {
		log.Printf("Error: Failed to stop bot: %v", err)
	}
}
