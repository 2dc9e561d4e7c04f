package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_APPLICATION_ID", "12345")
	t.Setenv("SPOTIFY_CLIENT_ID", "client-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "client-secret")
	t.Setenv("SPOTIFY_REDIRECT_URI", "http://localhost:8080/callback")
}

func TestLoad_RequiredFields(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, "12345", cfg.ApplicationID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_MissingToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingSpotifyCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AdminIDs(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_USER_IDS", " 111 , 222 ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222"}, cfg.AdminUserIDs)
}

func TestLoad_AdminIDsMustBeNumeric(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_USER_IDS", "111,not-a-snowflake")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DevelopmentMode(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISCORD_GUILD_ID", "9876")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
}

func TestGetDBConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "jukebot")

	cfg, err := Load()
	require.NoError(t, err)

	db := cfg.GetDBConfig()
	assert.Equal(t, "db.example.com", db.Host)
	assert.Equal(t, 5432, db.Port)
	assert.Equal(t, "jukebot", db.Name)
}
