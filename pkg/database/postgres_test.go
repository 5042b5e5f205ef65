package database

import (
	"testing"

	"movie-booking/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	t.Setenv("PGPASSWORD", "")
	t.Setenv("PGDATABASE", "")

	base := utils.DatabaseConfig{
		Host:    "db.internal",
		Port:    "5433",
		Name:    "movies",
		User:    "booking",
		SSLMode: "disable",
	}

	tests := []struct {
		name     string
		password string
	}{
		{"plain", "secret"},
		{"space", "p@ss word"},
		{"quotes and equals", `it's=a "test"`},
		{"slashes and query chars", "a/b?c#d&e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := base
			config.Password = tt.password

			parsed, err := pgconn.ParseConfig(ConnString(config))
			require.NoError(t, err)

			assert.Equal(t, tt.password, parsed.Password)
			assert.Equal(t, "movies", parsed.Database)
			assert.Equal(t, "booking", parsed.User)
			assert.Equal(t, "db.internal", parsed.Host)
			assert.Equal(t, uint16(5433), parsed.Port)
			assert.Nil(t, parsed.TLSConfig)
		})
	}
}

func TestConnStringEmptyPassword(t *testing.T) {
	t.Setenv("PGPASSWORD", "")
	t.Setenv("PGDATABASE", "")

	parsed, err := pgconn.ParseConfig(ConnString(utils.DatabaseConfig{
		Host:    "localhost",
		Port:    "5432",
		Name:    "movies",
		User:    "postgres",
		SSLMode: "disable",
	}))
	require.NoError(t, err)

	assert.Equal(t, "movies", parsed.Database)
	assert.Equal(t, "postgres", parsed.User)
}
