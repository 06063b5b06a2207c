package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	DBPath         string
	StaticDir      string
	LLMEndpoint    string
	LLMAPIKey      string
	LLMModel       string
	LLMTimeout     time.Duration
	AnalyzeDelay   time.Duration
	DosageDebounce time.Duration
	WeatherTick    time.Duration
	StageConfig    string
	KafkaBrokers   []string
	AnalyticsTopic string
}

// Load reads the optional .env file and then the process environment.
// A missing .env is reported through the returned warning, never as a failure.
func Load() (AppConfig, error) {
	var warn error
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warn = fmt.Errorf("load .env: %w", err)
	}

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	dur := func(k string, def time.Duration) time.Duration {
		v := get(k, "")
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			if warn == nil {
				warn = fmt.Errorf("%s: invalid duration %q, using %s", k, v, def)
			}
			return def
		}
		return d
	}

	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		Env:            strings.ToLower(get("APP_ENV", "development")),
		LogLevel:       get("LOG_LEVEL", "info"),
		DBPath:         get("DB_PATH", "agrismart.db"),
		StaticDir:      get("STATIC_DIR", "static"),
		LLMEndpoint:    get("LLM_ENDPOINT", "https://openrouter.ai/api"),
		LLMAPIKey:      get("LLM_API_KEY", get("OPENROUTER_API_KEY", "")),
		LLMModel:       get("LLM_MODEL", "openai/gpt-3.5-turbo"),
		LLMTimeout:     dur("LLM_TIMEOUT", 25*time.Second),
		AnalyzeDelay:   dur("ANALYZE_DELAY", 2*time.Second),
		DosageDebounce: dur("DOSAGE_DEBOUNCE", 500*time.Millisecond),
		WeatherTick:    dur("WEATHER_INTERVAL", 5*time.Second),
		StageConfig:    get("STAGE_CONFIG", ""),
		KafkaBrokers:   splitList(get("KAFKA_BROKERS", "")),
		AnalyticsTopic: get("ANALYTICS_TOPIC", "agrismart.events"),
	}
	if cfg.WeatherTick == 0 {
		cfg.WeatherTick = 5 * time.Second
	}
	return cfg, warn
}

// Production reports whether internal error details must be withheld from callers.
func (c AppConfig) Production() bool { return c.Env == "production" || c.Env == "prod" }

// HasLLMKey reports whether an upstream credential is configured.
func (c AppConfig) HasLLMKey() bool { return c.LLMAPIKey != "" }

// String renders the config for logs with the credential redacted.
func (c AppConfig) String() string {
	key := ""
	if c.LLMAPIKey != "" {
		key = "<redacted>"
	}
	return fmt.Sprintf("{Port:%s Env:%s DBPath:%s LLMEndpoint:%s LLMModel:%s LLMAPIKey:%s AnalyzeDelay:%s Kafka:%v}",
		c.Port, c.Env, c.DBPath, c.LLMEndpoint, c.LLMModel, key, c.AnalyzeDelay, c.KafkaBrokers)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
