package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Mode selects which front-ends the process runs.
type Mode string

const (
	ModeREST     Mode = "rest"
	ModeWhatsApp Mode = "whatsapp"
	ModeHybrid   Mode = "hybrid"
)

const envPrefix = "ASSISTENTE"

// Config is loaded from the environment (optionally a .env file) and then
// overlaid with the YAML file named by ASSISTENTE_CONFIG_FILE, if present.
type Config struct {
	Mode      Mode            `yaml:"mode" envconfig:"MODE" default:"hybrid"`
	Server    ServerConfig    `yaml:"server"`
	AI        AIConfig        `yaml:"ai"`
	WhatsApp  WhatsAppConfig  `yaml:"whatsapp"`
	Cache     CacheConfig     `yaml:"cache"`
	History   HistoryConfig   `yaml:"history"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type AIConfig struct {
	Enabled      bool          `yaml:"enabled" envconfig:"AI_ENABLED" default:"true"`
	Provider     string        `yaml:"provider" envconfig:"AI_PROVIDER" default:"gemini"`
	GeminiAPIKey string        `yaml:"gemini_api_key" envconfig:"GEMINI_API_KEY"`
	GeminiModel  string        `yaml:"gemini_model" envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	OpenAIAPIKey string        `yaml:"openai_api_key" envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string        `yaml:"openai_model" envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIURL    string        `yaml:"openai_url" envconfig:"OPENAI_URL" default:"https://api.openai.com/v1/chat/completions"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"AI_TIMEOUT" default:"30s"`
	AnswerTTL    time.Duration `yaml:"answer_ttl" envconfig:"AI_ANSWER_TTL" default:"1h"`
}

type WhatsAppConfig struct {
	SessionDBPath   string        `yaml:"session_db_path" envconfig:"WHATSAPP_SESSION_DB" default:"data/whatsapp.db"`
	MaxConnAttempts int           `yaml:"max_conn_attempts" envconfig:"WHATSAPP_MAX_CONN_ATTEMPTS" default:"5"`
	ReconnectDelay  time.Duration `yaml:"reconnect_delay" envconfig:"WHATSAPP_RECONNECT_DELAY" default:"2s"`
	SendInterval    time.Duration `yaml:"send_interval" envconfig:"WHATSAPP_SEND_INTERVAL" default:"50ms"`
	SendBurst       int           `yaml:"send_burst" envconfig:"WHATSAPP_SEND_BURST" default:"5"`
	PrintQR         bool          `yaml:"print_qr" envconfig:"WHATSAPP_PRINT_QR" default:"true"`
}

type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" envconfig:"REDIS_DB" default:"0"`
	ResultTTL     time.Duration `yaml:"result_ttl" envconfig:"CACHE_RESULT_TTL" default:"24h"`
}

type HistoryConfig struct {
	SQLitePath string `yaml:"sqlite_path" envconfig:"HISTORY_DB"`
	Capacity   int    `yaml:"capacity" envconfig:"HISTORY_CAPACITY" default:"1000"`
}

type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"LOG_OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"LOG_FILE" default:"logs/assistente.log"`
}

type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled" envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Capacity int           `yaml:"capacity" envconfig:"RATE_LIMIT_CAPACITY" default:"30"`
	Refill   time.Duration `yaml:"refill" envconfig:"RATE_LIMIT_REFILL" default:"1m"`
}

// Load reads .env (if any), the environment and the optional YAML overlay.
func Load() (*Config, error) {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path := os.Getenv(envPrefix + "_CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.Mode = Mode(strings.ToLower(string(cfg.Mode)))
	cfg.AI.Provider = strings.ToLower(cfg.AI.Provider)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.Mode {
	case ModeREST, ModeWhatsApp, ModeHybrid:
	default:
		errs = append(errs, fmt.Errorf("mode %q inválido (rest, whatsapp, hybrid)", c.Mode))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("porta %d inválida", c.Server.Port))
	}

	if c.AI.Enabled {
		switch c.AI.Provider {
		case "gemini":
			if c.AI.GeminiAPIKey == "" {
				errs = append(errs, errors.New("GEMINI_API_KEY é obrigatória quando a IA está habilitada"))
			}
		case "openai":
			if c.AI.OpenAIAPIKey == "" {
				errs = append(errs, errors.New("OPENAI_API_KEY é obrigatória quando a IA está habilitada"))
			}
		default:
			errs = append(errs, fmt.Errorf("provedor de IA %q inválido (gemini, openai)", c.AI.Provider))
		}
		if c.AI.Timeout <= 0 {
			errs = append(errs, errors.New("AI_TIMEOUT deve ser positivo"))
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.Capacity <= 0 || c.RateLimit.Refill <= 0) {
		errs = append(errs, errors.New("rate limit requer capacidade e intervalo positivos"))
	}

	return errors.Join(errs...)
}

// RESTEnabled reports whether the HTTP API should be served. The health and
// status endpoints are always served, so this only gates the API routes.
func (c *Config) RESTEnabled() bool { return c.Mode != ModeWhatsApp }

func (c *Config) WhatsAppEnabled() bool { return c.Mode != ModeREST }
