package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds configuration for the minutes server.
type Config struct {
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	ConfigFile  string `yaml:"-"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`

	TranscriptionTemperature float64 `yaml:"transcription_temperature"`
	SummarizationTemperature float64 `yaml:"summarization_temperature"`
	MaxOutputTokens          int     `yaml:"max_output_tokens"`

	MaxFileSizeMB    int           `yaml:"max_file_size_mb"`
	RequestTimeout   time.Duration `yaml:"-"`
	AllowedAudioExts []string      `yaml:"allowed_audio_extensions"`
	TempDir          string        `yaml:"temp_dir"`

	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SetDefaults initializes c with built-in defaults.
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-2.0-flash-exp"
	}
	if c.TranscriptionTemperature == 0 {
		c.TranscriptionTemperature = 0.1
	}
	if c.SummarizationTemperature == 0 {
		c.SummarizationTemperature = 0.3
	}
	if c.MaxOutputTokens == 0 {
		c.MaxOutputTokens = 16384
	}
	if c.MaxFileSizeMB == 0 {
		c.MaxFileSizeMB = 100
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 300 * time.Second
	}
	if c.AllowedAudioExts == nil {
		c.AllowedAudioExts = []string{".mp3", ".wav", ".m4a", ".ogg", ".webm"}
	}
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.AllowedOrigins == nil {
		c.AllowedOrigins = []string{"*"}
	}
	if c.ConfigFile == "" {
		c.ConfigFile = DefaultConfigPath("config.yaml")
	}
}

// ApplyEnv overlays environment variables onto the current config values.
func (c *Config) ApplyEnv() {
	if v := getEnv("CONFIG_FILE", ""); v != "" {
		c.ConfigFile = v
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("PORT", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = n
		}
	}
	if v := getEnv("ENVIRONMENT", ""); v != "" {
		c.Environment = v
	}
	if v := getEnv("GEMINI_API_KEY", ""); v != "" {
		c.GeminiAPIKey = v
	}
	if v := getEnv("GEMINI_MODEL", ""); v != "" {
		c.GeminiModel = v
	}
	if v := getEnv("TRANSCRIPTION_TEMPERATURE", ""); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.TranscriptionTemperature = f
		}
	}
	if v := getEnv("SUMMARIZATION_TEMPERATURE", ""); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.SummarizationTemperature = f
		}
	}
	if v := getEnv("MAX_OUTPUT_TOKENS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxOutputTokens = n
		}
	}
	if v := getEnv("MAX_FILE_SIZE_MB", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxFileSizeMB = n
		}
	}
	if v := getEnv("REQUEST_TIMEOUT", ""); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RequestTimeout = time.Duration(f * float64(time.Second))
		}
	}
	if v := getEnv("ALLOWED_AUDIO_EXTENSIONS", ""); v != "" {
		c.AllowedAudioExts = normalizeExts(splitComma(v))
	}
	if v := getEnv("AUDIO_TEMP_DIR", ""); v != "" {
		c.TempDir = v
	}
	if v := getEnv("ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = splitComma(v)
	}
}

// BindFlagsFromCurrent binds command line flags using the current config values as defaults.
func (c *Config) BindFlagsFromCurrent() {
	flag.StringVar(&c.ConfigFile, "config", c.ConfigFile, "server config file path")
	flag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log verbosity (all, debug, info, warn, error, fatal, none)")
	flag.IntVar(&c.Port, "port", c.Port, "HTTP listen port for the public API")
	flag.StringVar(&c.Environment, "env", c.Environment, "deployment environment reported by the health endpoints")
	flag.StringVar(&c.GeminiAPIKey, "gemini-api-key", c.GeminiAPIKey, "Gemini API key; required for all model operations")
	flag.StringVar(&c.GeminiModel, "gemini-model", c.GeminiModel, "Gemini model identifier used for generation")
	flag.IntVar(&c.MaxFileSizeMB, "max-file-size-mb", c.MaxFileSizeMB, "maximum accepted audio upload size in megabytes")
	flag.Func("request-timeout", "request timeout in seconds for model operations", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		c.RequestTimeout = time.Duration(f * float64(time.Second))
		return nil
	})
	flag.Func("allowed-origins", "comma separated list of allowed CORS origins", func(v string) error {
		c.AllowedOrigins = splitComma(v)
		return nil
	})
	flag.Func("allowed-audio-extensions", "comma separated list of accepted audio file extensions", func(v string) error {
		c.AllowedAudioExts = normalizeExts(splitComma(v))
		return nil
	})
	flag.StringVar(&c.TempDir, "temp-dir", c.TempDir, "directory for temporary audio files")
}

// LoadFile populates the config from a YAML file. The request_timeout key is
// expressed in seconds, matching the REQUEST_TIMEOUT environment variable.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return err
	}
	var extra struct {
		RequestTimeout *float64 `yaml:"request_timeout"`
	}
	if err := yaml.Unmarshal(b, &extra); err != nil {
		return err
	}
	if extra.RequestTimeout != nil {
		c.RequestTimeout = time.Duration(*extra.RequestTimeout * float64(time.Second))
	}
	c.AllowedAudioExts = normalizeExts(c.AllowedAudioExts)
	return nil
}

// Validate reports whether the config is usable for serving requests.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("gemini api key is required; set GEMINI_API_KEY")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.MaxFileSizeMB < 1 || c.MaxFileSizeMB > 500 {
		return fmt.Errorf("max file size %d MB out of range 1-500", c.MaxFileSizeMB)
	}
	if c.RequestTimeout < 30*time.Second || c.RequestTimeout > 600*time.Second {
		return fmt.Errorf("request timeout %s out of range 30s-600s", c.RequestTimeout)
	}
	if c.TranscriptionTemperature < 0 || c.TranscriptionTemperature > 2 {
		return fmt.Errorf("transcription temperature %g out of range 0-2", c.TranscriptionTemperature)
	}
	if c.SummarizationTemperature < 0 || c.SummarizationTemperature > 2 {
		return fmt.Errorf("summarization temperature %g out of range 0-2", c.SummarizationTemperature)
	}
	if c.MaxOutputTokens < 1 {
		return fmt.Errorf("max output tokens must be positive")
	}
	if len(c.AllowedAudioExts) == 0 {
		return fmt.Errorf("at least one audio extension must be allowed")
	}
	return nil
}

// MaxFileSizeBytes returns the upload size limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

func splitComma(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
