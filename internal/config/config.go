package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration, read once at startup.
// Nothing below the handlers reads the environment directly.
type Config struct {
	// Environment
	Environment string
	Port        string
	CORSOrigins []string // Empty allows any origin

	// Generation providers
	GeminiAPIKey        string   // Google Gemini API key
	GeminiModels        []string // Tried in order
	GeminiRatePerMinute int      // Shared quota across all Gemini models
	OpenAIAPIKey        string   // Optional last-resort provider
	OpenAIModel         string
	GenerationTimeout   time.Duration // Per-provider attempt deadline

	// Payment (Circle)
	CircleAPIKey             string
	CircleAppID              string
	CircleBaseURL            string
	CircleDestinationAddress string
	PaymentSimulatedDelay    time.Duration
	PaymentDefaultAmount     string

	// Persistence: empty means the in-memory playlist
	DatabaseURL string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

const (
	defaultGeminiModels      = "gemini-2.5-flash,gemini-2.0-flash,gemini-1.5-flash"
	defaultGeminiRate        = 60
	defaultGenerationTimeout = 9 * time.Second
	defaultSimulatedDelay    = 1500 * time.Millisecond

	// Minimum credential shapes used by the configuration report
	minGeminiKeyLength = 30
	geminiKeyPrefix    = "AIza"
	minCircleLength    = 10
)

func Load() *Config {
	return &Config{
		Environment:              getEnv("ENVIRONMENT", "development"),
		Port:                     getEnv("PORT", "8080"),
		CORSOrigins:              splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		GeminiAPIKey:             getEnv("GEMINI_API_KEY", ""),
		GeminiModels:             splitList(getEnv("GEMINI_MODELS", defaultGeminiModels)),
		GeminiRatePerMinute:      getEnvInt("GEMINI_RATE_PER_MINUTE", defaultGeminiRate),
		OpenAIAPIKey:             getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:              getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GenerationTimeout:        getEnvDuration("GENERATION_TIMEOUT", defaultGenerationTimeout),
		CircleAPIKey:             getEnv("CIRCLE_API_KEY", ""),
		CircleAppID:              getEnv("CIRCLE_APP_ID", ""),
		CircleBaseURL:            getEnv("CIRCLE_BASE_URL", "https://api-sandbox.circle.com"),
		CircleDestinationAddress: getEnv("CIRCLE_DESTINATION_ADDRESS", ""),
		PaymentSimulatedDelay:    getEnvDuration("PAYMENT_SIMULATED_DELAY", defaultSimulatedDelay),
		PaymentDefaultAmount:     getEnv("PAYMENT_DEFAULT_AMOUNT", "0.001"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		SentryDSN:                getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:        getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:        getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:             getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:          getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsGeminiConfigured reports whether the Gemini key looks like a real key
func (c *Config) IsGeminiConfigured() bool {
	return geminiKeyValid(c.GeminiAPIKey)
}

// IsCircleConfigured reports whether both Circle credentials pass the minimum shape check
func (c *Config) IsCircleConfigured() bool {
	return circleCredentialsValid(c.CircleAPIKey, c.CircleAppID)
}

func geminiKeyValid(key string) bool {
	return len(key) > minGeminiKeyLength && strings.HasPrefix(key, geminiKeyPrefix)
}

func circleCredentialsValid(apiKey, appID string) bool {
	return len(apiKey) > minCircleLength && len(appID) > minCircleLength
}
