package di

import (
	"context"
	"fmt"
	"time"

	"marketplace-assistant/internal/application/port/input"
	"marketplace-assistant/internal/application/port/output"
	"marketplace-assistant/internal/domain/entity"
	"marketplace-assistant/internal/infrastructure/automation/multion"
	"marketplace-assistant/internal/infrastructure/llm/openai"
	"marketplace-assistant/internal/infrastructure/logger"
	"marketplace-assistant/internal/usecase/marketplace"
	"marketplace-assistant/internal/usecase/normalizer"
)

type Container struct {
	Automation output.AutomationPort
	Session    output.BrowseSession
	LLM        output.LLMPort
	Logger     output.LoggerPort
	Assistant  input.MarketplaceAssistant
}

type Config struct {
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	JSONMode       bool
	MultiOnAPIKey  string
	MultiOnBaseURL string
	MarketplaceURL string
	HTTPTimeout    time.Duration
	// DataLocation is where per-run log files go; empty keeps logs on stderr only.
	DataLocation string
	LogLevel     string
	LogFormat    string
}

// NewContainer authenticates with the automation service before anything
// else can run. A failed login aborts construction with
// *entity.AuthenticationError.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	logCfg := logger.DefaultConfig()
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		logCfg.Format = cfg.LogFormat
	}
	logCfg.Dir = cfg.DataLocation

	log, err := logger.NewLoggerAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is not set, every completion call will fail")
	}

	return newContainer(ctx, cfg, log)
}

func newContainer(ctx context.Context, cfg Config, log output.LoggerPort) (*Container, error) {
	llmCfg := openai.DefaultConfig(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if cfg.OpenAIBaseURL != "" {
		llmCfg.BaseURL = cfg.OpenAIBaseURL
	}
	if cfg.HTTPTimeout > 0 {
		llmCfg.Timeout = cfg.HTTPTimeout
	}
	llmCfg.Logger = log
	llm := openai.NewAdapter(llmCfg)

	autoCfg := multion.DefaultConfig(cfg.MultiOnAPIKey)
	if cfg.MultiOnBaseURL != "" {
		autoCfg.BaseURL = cfg.MultiOnBaseURL
	}
	if cfg.HTTPTimeout > 0 {
		autoCfg.Timeout = cfg.HTTPTimeout
	}
	autoCfg.Logger = log
	automation := multion.NewClient(autoCfg)

	session, err := automation.Login(ctx)
	if err != nil {
		log.Error("Automation login failed", "error", err)
		log.Close()
		return nil, err
	}

	marketplaceURL := cfg.MarketplaceURL
	if marketplaceURL == "" {
		marketplaceURL = entity.DefaultMarketplaceURL
	}

	assistant := marketplace.New(
		session,
		normalizer.New(llm, log, cfg.JSONMode),
		log,
		marketplaceURL,
	)

	return &Container{
		Automation: automation,
		Session:    session,
		LLM:        llm,
		Logger:     log,
		Assistant:  assistant,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
