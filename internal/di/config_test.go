package di

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketplace-assistant/internal/infrastructure/env"
)

type mapConfig map[string]string

func (m mapConfig) Get(key string) string { return m[key] }

func (m mapConfig) MustGet(key string) string {
	v, ok := m[key]
	if !ok {
		panic("missing " + key)
	}
	return v
}

func (m mapConfig) GetWithDefault(key, defaultValue string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return defaultValue
}

func (m mapConfig) GetBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(m[key])
	if err != nil {
		return defaultValue
	}
	return v
}

func (m mapConfig) GetInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(m[key])
	if err != nil {
		return defaultValue
	}
	return v
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(mapConfig{
		env.KeyOpenAIAPIKey:   "sk-test",
		env.KeyOpenAIJSONMode: "true",
		env.KeyMultiOnAPIKey:  "m-key",
		env.KeyMarketplaceURL: "https://www.facebook.com/marketplace/nyc",
		env.KeyHTTPTimeout:    "42",
		env.KeyDataLocation:   "/tmp/data",
		env.KeyLogLevel:       "debug",
	})

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, env.DefaultOpenAIModel, cfg.OpenAIModel)
	assert.True(t, cfg.JSONMode)
	assert.Equal(t, "m-key", cfg.MultiOnAPIKey)
	assert.Equal(t, "https://www.facebook.com/marketplace/nyc", cfg.MarketplaceURL)
	assert.Equal(t, 42*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "/tmp/data", cfg.DataLocation)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfigFrom_InvalidValuesFallBack(t *testing.T) {
	cfg := ConfigFrom(mapConfig{
		env.KeyOpenAIJSONMode: "maybe",
		env.KeyHTTPTimeout:    "soon",
	})

	assert.False(t, cfg.JSONMode)
	assert.Equal(t, 300*time.Second, cfg.HTTPTimeout)
	assert.Empty(t, cfg.OpenAIAPIKey)
}
