package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"marketplace-assistant/internal/application/port/output"
	"marketplace-assistant/internal/domain/entity"
)

const (
	KeyOpenAIAPIKey    = "OPENAI_API_KEY"
	KeyOpenAIModel     = "OPENAI_MODEL_NAME"
	KeyOpenAIBaseURL   = "OPENAI_BASE_URL"
	KeyOpenAIJSONMode  = "OPENAI_JSON_MODE"
	KeyDataLocation    = "DATA_LOCATION"
	KeyMultiOnAPIKey   = "MULTION_API_KEY"
	KeyMultiOnBaseURL  = "MULTION_BASE_URL"
	KeyMarketplaceURL  = "MARKETPLACE_URL"
	KeyHTTPTimeout     = "HTTP_TIMEOUT_SECONDS"
	KeyLogLevel        = "LOG_LEVEL"
	KeyLogFormat       = "LOG_FORMAT"
	DefaultOpenAIModel = "gpt-3.5-turbo-0125"
)

var _ output.ConfigPort = (*EnvService)(nil)

type EnvService struct {
	v      *viper.Viper
	appEnv string
}

// NewEnvService loads .env and the .env.<APP_ENV> overlay into the process
// environment, then layers an optional config file under it. Environment
// variables always win over the file.
func NewEnvService(configFile string) (*EnvService, error) {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	// Both files are optional; CI usually injects plain env vars.
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(fmt.Sprintf(".env.%s", appEnv))

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", configFile, err)
			}
		}
	}

	return &EnvService{v: v, appEnv: appEnv}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOpenAIModel, DefaultOpenAIModel)
	v.SetDefault(KeyOpenAIBaseURL, "https://api.openai.com/v1")
	v.SetDefault(KeyOpenAIJSONMode, false)
	v.SetDefault(KeyMultiOnBaseURL, "https://api.multion.ai/v1")
	v.SetDefault(KeyMarketplaceURL, entity.DefaultMarketplaceURL)
	v.SetDefault(KeyHTTPTimeout, 300)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

func (e *EnvService) AppEnv() string {
	return e.appEnv
}

func (e *EnvService) Get(key string) string {
	return strings.TrimSpace(e.v.GetString(key))
}

func (e *EnvService) MustGet(key string) string {
	val := e.Get(key)
	if val == "" {
		panic(fmt.Sprintf("ENV %s is missing", key))
	}
	return val
}

func (e *EnvService) GetWithDefault(key string, defaultValue string) string {
	if val := e.Get(key); val != "" {
		return val
	}
	return defaultValue
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
