package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "6000", cfg.Port)
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.MongoURI)
	assert.Equal(t, "agrinet", cfg.DBName)
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_NAME", "agrinet_test")
	t.Setenv("ALLOWED_ORIGINS", "https://agri.example,https://agri2.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "agrinet_test", cfg.DBName)
	assert.Equal(t, []string{"https://agri.example", "https://agri2.example"}, cfg.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"Missing Port", Config{MongoURI: "mongodb://x", DBName: "d"}},
		{"Missing URI", Config{Port: "6000", DBName: "d"}},
		{"Missing DB Name", Config{Port: "6000", MongoURI: "mongodb://x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}

	valid := Config{Port: "6000", MongoURI: "mongodb://x", DBName: "d"}
	assert.NoError(t, valid.Validate())
}
