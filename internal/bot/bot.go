package bot

import (
	"database/sql"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/hxnx/jukebot/config"
	"github.com/hxnx/jukebot/internal/app"
	"github.com/hxnx/jukebot/internal/database"
	"github.com/hxnx/jukebot/internal/features"
	"github.com/hxnx/jukebot/internal/session"
	"github.com/hxnx/jukebot/internal/spotify"
	"github.com/hxnx/jukebot/internal/trackcache"
)

type Bot struct {
	config  *config.Config
	app     *app.App
	session *discordgo.Session

	db    *sql.DB
	cache *trackcache.Cache

	started      bool
	presenceStop chan struct{}
}

func New(cfg *config.Config) (*Bot, error) {
	dbConfig := &database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}

	// Without the database everyone but the admins is denied; the bot
	// still runs.
	var users *database.UserRepository
	db, err := database.Open(dbConfig)
	if err != nil {
		log.Printf("Warning: Database initialization failed: %v", err)
		db = nil
	} else {
		users = database.NewUserRepository(db)
	}

	redisConfig := cfg.GetRedisConfig()
	cache, err := trackcache.Open(trackcache.Config{
		Host:     redisConfig.Host,
		Port:     redisConfig.Port,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})
	if err != nil {
		log.Printf("Warning: Redis initialization failed: %v", err)
		cache = nil
	}

	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	guard := session.NewGuard()
	auth := spotify.NewAuthenticator(spotify.Config{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		RedirectURI:  cfg.SpotifyRedirectURI,
	})

	return &Bot{
		config:  cfg,
		app:     app.New(cfg, guard, users, auth, cache),
		session: s,
		db:      db,
		cache:   cache,
	}, nil
}

func (b *Bot) Start() error {
	if b.started {
		return nil
	}

	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		if s.State != nil && s.State.User != nil {
			log.Printf("Bot ready as %s#%s", s.State.User.Username, s.State.User.Discriminator)
		} else {
			log.Printf("Bot ready")
		}
	})

	features.AddHandlers(b.session, b.app)

	if _, err := features.RegisterCommands(b.session, b.config.ApplicationID, b.config.GuildID); err != nil {
		log.Printf("Warning: failed to register slash commands: %v", err)
	}

	if err := b.session.Open(); err != nil {
		return err
	}

	b.startPresenceUpdater()
	b.started = true
	log.Printf("Bot session opened")
	return nil
}

func (b *Bot) Stop() error {
	if !b.started {
		return nil
	}

	b.started = false
	b.stopPresenceUpdater()

	if err := b.session.Close(); err != nil {
		return err
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			log.Printf("Warning: failed to close database: %v", err)
		}
	}

	if err := b.cache.Close(); err != nil {
		log.Printf("Warning: failed to close redis: %v", err)
	}

	log.Printf("Bot session closed")
	return nil
}
