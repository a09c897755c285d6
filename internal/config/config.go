// Package config loads server settings from defaults, an optional YAML
// file, and GEMINI_MCP_* environment variables, in that order of
// precedence (later wins).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/gateway"
)

// Config holds every tunable of the server and CLI.
type Config struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`

	// Binary is the gemini executable name or path.
	Binary string `yaml:"binary"`

	// Model settings.
	Model         string `yaml:"model"`
	FallbackModel string `yaml:"fallback_model"`

	// CLI flag passthrough.
	Sandbox         bool `yaml:"sandbox"`
	Debug           bool `yaml:"debug"`
	AllFiles        bool `yaml:"all_files"`
	ShowMemoryUsage bool `yaml:"show_memory_usage"`
	Yolo            bool `yaml:"yolo"`
	Checkpointing   bool `yaml:"checkpointing"`

	// TimeoutSeconds bounds one CLI invocation.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Response caching.
	EnableCaching   bool `yaml:"enable_caching"`
	CacheTTLSeconds int  `yaml:"cache_ttl_seconds"`

	// Context file limits.
	MaxFileSizeMB   float64 `yaml:"max_file_size_mb"`
	MaxContextFiles int     `yaml:"max_context_files"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Name:            "Gemini MCP Server",
		Version:         "0.1.0",
		Description:     "MCP server for Google Gemini CLI integration",
		Binary:          gateway.DefaultBinary,
		Model:           gateway.DefaultModel,
		FallbackModel:   gateway.DefaultFallbackModel,
		TimeoutSeconds:  gateway.DefaultTimeoutSeconds,
		EnableCaching:   true,
		CacheTTLSeconds: 3600,
		MaxFileSizeMB:   10.0,
		MaxContextFiles: 20,
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// at path (skipped when path is empty or the file doesn't exist), then
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file is fine.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = gateway.DefaultTimeoutSeconds
	}
	if cfg.MaxContextFiles <= 0 {
		cfg.MaxContextFiles = 20
	}
	if cfg.MaxFileSizeMB <= 0 {
		cfg.MaxFileSizeMB = 10.0
	}
	return cfg, nil
}

// applyEnv overlays GEMINI_MCP_* environment variables.
func (c *Config) applyEnv() {
	c.Binary = getEnv("GEMINI_MCP_BINARY", c.Binary)
	c.Model = getEnv("GEMINI_MCP_MODEL", c.Model)
	c.FallbackModel = getEnv("GEMINI_MCP_FALLBACK_MODEL", c.FallbackModel)
	c.Sandbox = getEnvBool("GEMINI_MCP_SANDBOX", c.Sandbox)
	c.Debug = getEnvBool("GEMINI_MCP_DEBUG", c.Debug)
	c.AllFiles = getEnvBool("GEMINI_MCP_ALL_FILES", c.AllFiles)
	c.Yolo = getEnvBool("GEMINI_MCP_YOLO", c.Yolo)
	c.Checkpointing = getEnvBool("GEMINI_MCP_CHECKPOINTING", c.Checkpointing)
	c.TimeoutSeconds = getEnvInt("GEMINI_MCP_TIMEOUT_SECONDS", c.TimeoutSeconds)
	c.EnableCaching = getEnvBool("GEMINI_MCP_ENABLE_CACHING", c.EnableCaching)
	c.CacheTTLSeconds = getEnvInt("GEMINI_MCP_CACHE_TTL_SECONDS", c.CacheTTLSeconds)
	c.MaxFileSizeMB = getEnvFloat("GEMINI_MCP_MAX_FILE_SIZE_MB", c.MaxFileSizeMB)
	c.MaxContextFiles = getEnvInt("GEMINI_MCP_MAX_CONTEXT_FILES", c.MaxContextFiles)
}

// GatewayOptions converts the config into per-invocation defaults.
func (c Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		Model:           c.Model,
		FallbackModel:   c.FallbackModel,
		Sandbox:         c.Sandbox,
		Debug:           c.Debug,
		AllFiles:        c.AllFiles,
		ShowMemoryUsage: c.ShowMemoryUsage,
		Yolo:            c.Yolo,
		Checkpointing:   c.Checkpointing,
		TimeoutSeconds:  c.TimeoutSeconds,
	}
}

// MaxFileSizeBytes returns the context file size limit in bytes.
func (c Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB * 1024 * 1024)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
