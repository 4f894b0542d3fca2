package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("NOTION_API_KEY", "")
	t.Setenv("NOTION_DATABASE_ID", "")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, DefaultNotionAPIURL, cfg.NotionAPIURL)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.NotionConfigured())
	assert.False(t, cfg.IsProduction())
}

func TestParseNotion(t *testing.T) {
	t.Run("Both values present", func(t *testing.T) {
		t.Setenv("NOTION_API_KEY", " secret_abc ")
		t.Setenv("NOTION_DATABASE_ID", "db123")
		t.Setenv("NOTION_API_URL", "http://localhost:9999/v1/")

		cfg, err := Parse()
		require.NoError(t, err)

		assert.True(t, cfg.NotionConfigured())
		assert.Equal(t, "http://localhost:9999/v1", cfg.NotionAPIURL)

		relay := cfg.Relay()
		assert.Equal(t, "secret_abc", relay.APIKey)
		assert.Equal(t, "db123", relay.DatabaseID)
		assert.True(t, relay.Configured())
	})

	t.Run("Database missing", func(t *testing.T) {
		t.Setenv("NOTION_API_KEY", "secret_abc")
		t.Setenv("NOTION_DATABASE_ID", "")

		cfg, err := Parse()
		require.NoError(t, err)
		assert.False(t, cfg.NotionConfigured())
		assert.False(t, cfg.Relay().Configured())
	})
}

func TestParseOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://didimdol.kr,https://www.didimdol.kr")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://didimdol.kr", "https://www.didimdol.kr"}, cfg.AllowedOrigins)
}

func TestParseInvalidDuration(t *testing.T) {
	t.Setenv("SERVER_WRITE_TIMEOUT", "soon")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParseSocialLinks(t *testing.T) {
	t.Setenv("YOUTUBE_URL", " https://youtube.com/@didimdol ")
	t.Setenv("BLOG_URL", "")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "https://youtube.com/@didimdol", cfg.YouTubeURL)
	assert.Equal(t, "", cfg.BlogURL)
}
