package di

import (
	"time"

	"marketplace-assistant/internal/application/port/output"
	"marketplace-assistant/internal/infrastructure/env"
)

const defaultHTTPTimeoutSeconds = 300

// ConfigFrom reads the container settings once from cfg.
func ConfigFrom(cfg output.ConfigPort) Config {
	return Config{
		OpenAIAPIKey:   cfg.Get(env.KeyOpenAIAPIKey),
		OpenAIModel:    cfg.GetWithDefault(env.KeyOpenAIModel, env.DefaultOpenAIModel),
		OpenAIBaseURL:  cfg.Get(env.KeyOpenAIBaseURL),
		JSONMode:       cfg.GetBool(env.KeyOpenAIJSONMode, false),
		MultiOnAPIKey:  cfg.Get(env.KeyMultiOnAPIKey),
		MultiOnBaseURL: cfg.Get(env.KeyMultiOnBaseURL),
		MarketplaceURL: cfg.Get(env.KeyMarketplaceURL),
		HTTPTimeout:    time.Duration(cfg.GetInt(env.KeyHTTPTimeout, defaultHTTPTimeoutSeconds)) * time.Second,
		DataLocation:   cfg.Get(env.KeyDataLocation),
		LogLevel:       cfg.Get(env.KeyLogLevel),
		LogFormat:      cfg.Get(env.KeyLogFormat),
	}
}
