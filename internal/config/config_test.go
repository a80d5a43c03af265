package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaultCORSOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoadParsesCORSOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ORIGINS", "https://hustlx.example, https://staging.hustlx.example ,")

	cfg := Load()

	assert.Equal(t,
		[]string{"https://hustlx.example", "https://staging.hustlx.example"},
		cfg.CORSOrigins)
}
