package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A nil repository stands in for a missing database: every lookup
// reports the user as absent while writes fail loudly.
func TestNilRepository_ReadsReportAbsent(t *testing.T) {
	var r *UserRepository
	ctx := context.Background()

	_, ok, err := r.GetPermission(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := r.Exists(ctx, 42)
	require.NoError(t, err)
	assert.False(t, exists)
}

// An add that cannot be stored must not look like a success; the
// record would never exist and the gate would keep denying the user.
func TestNilRepository_WritesFail(t *testing.T) {
	var r *UserRepository
	ctx := context.Background()

	err := r.Add(ctx, 42, 1)
	assert.ErrorIs(t, err, ErrNoDatabase)

	_, ok, err := r.GetPermission(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, r.Remove(ctx, 42), ErrNoDatabase)
}

func TestNewUserRepository_NilDB(t *testing.T) {
	assert.Nil(t, NewUserRepository(nil))
}

func TestConnectionString(t *testing.T) {
	cfg := &Config{
		Host:    "localhost",
		Port:    5432,
		User:    "jukebot",
		DBName:  "jukebot",
		SSLMode: "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=jukebot dbname=jukebot sslmode=disable", cfg.ConnectionString())

	cfg.Password = "secret"
	assert.Contains(t, cfg.ConnectionString(), "password=secret")
}
