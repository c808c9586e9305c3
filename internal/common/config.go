package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	OCR      OCRConfig
	LLM      LLMConfig
	Storage  StorageConfig
	Log      LogConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver           string // sqlite | postgres
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Engine           string // cli | lib
	TesseractBin     string
	PdftoppmBin      string
	TessdataDir      string
	PageDPI          int
	DetectDPI        int
	MaxPages         int
	ExecTimeout      time.Duration
	HeicConverter    string
	ArtifactCacheDir string
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Model           string
	APIKey          string
	BaseURL         string
	Temperature     float32
	MaxTokens       int
	Timeout         time.Duration
	TranscribeModel string
}

// StorageConfig holds where uploads and generated files live.
type StorageConfig struct {
	UploadDir      string
	DataDir        string
	NativeFontPath string
}

// LogConfig mirrors logger.LogConfig so common stays free of logging imports.
type LogConfig struct {
	Level      string
	Format     string
	TimeFormat string
	Output     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:           strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:              getEnv("DB_URL", "file:linguabridge.db?_pragma=foreign_keys(1)"),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		OCR: OCRConfig{
			Engine:           strings.ToLower(getEnv("OCR_ENGINE", "cli")),
			TesseractBin:     getEnv("TESSERACT_BIN", "tesseract"),
			PdftoppmBin:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			TessdataDir:      getEnv("TESSDATA_PREFIX", ""),
			PageDPI:          getEnvAsInt("OCR_PAGE_DPI", 300),
			DetectDPI:        getEnvAsInt("OCR_DETECT_DPI", 150),
			MaxPages:         getEnvAsInt("OCR_MAX_PAGES", 0),
			ExecTimeout:      getEnvAsDuration("OCR_EXEC_TIMEOUT", 2*time.Minute),
			HeicConverter:    getEnv("HEIC_CONVERTER", "magick"),
			ArtifactCacheDir: getEnv("ARTIFACT_CACHE_DIR", "./tmp"),
		},
		LLM: LLMConfig{
			Model:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			BaseURL:         getEnv("OPENAI_BASE_URL", ""),
			Temperature:     getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			MaxTokens:       getEnvAsInt("OPENAI_MAX_TOKENS", 1200),
			Timeout:         getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
			TranscribeModel: getEnv("OPENAI_TRANSCRIBE_MODEL", "whisper-1"),
		},
		Storage: StorageConfig{
			UploadDir:      getEnv("UPLOAD_DIR", "tmp_uploads"),
			DataDir:        getEnv("DATA_DIR", "data"),
			NativeFontPath: getEnv("NATIVE_FONT_PATH", ""),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "console"),
			TimeFormat: getEnv("LOG_TIME_FORMAT", time.RFC3339),
			Output:     getEnv("LOG_OUTPUT", "stderr"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the settings every binary needs.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return NewAppError("CONFIG_ERROR", "DB_DRIVER must be sqlite or postgres", ErrInvalidInput)
	}
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Server.GRPCAddr == "" {
		return NewAppError("CONFIG_ERROR", "GRPC_ADDR is required", ErrInvalidInput)
	}
	switch c.OCR.Engine {
	case "cli", "lib":
	default:
		return NewAppError("CONFIG_ERROR", "OCR_ENGINE must be cli or lib", ErrInvalidInput)
	}
	if c.OCR.PageDPI <= 0 || c.OCR.DetectDPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_PAGE_DPI and OCR_DETECT_DPI must be positive", ErrInvalidInput)
	}
	return nil
}

// RequireLLM checks the settings needed by commands that call the model.
func (c *Config) RequireLLM() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	return nil
}
