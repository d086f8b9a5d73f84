package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// Model store drivers.
const (
	StoreFile   = "file"
	StoreBolt   = "bolt"
	StoreRedis  = "redis"
	StoreValkey = "valkey"
)

// Config holds the resumatch API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Model    ModelConfig    `yaml:"model"`
	Database DatabaseConfig `yaml:"database"`
	Batch    BatchConfig    `yaml:"batch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys    []string `yaml:"api_keys"`    // empty: matching endpoints are public
	AdminToken string   `yaml:"admin_token"` // empty: admin endpoints are disabled
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ModelConfig holds the trained model storage and training settings.
type ModelConfig struct {
	Store         string `yaml:"store"` // file, bolt, redis, valkey (default: file)
	ArtifactPath  string `yaml:"artifact_path"`
	MetadataPath  string `yaml:"metadata_path"`
	BoltPath      string `yaml:"bolt_path"`
	CorpusDir     string `yaml:"corpus_dir"`
	MinCorpusSize int    `yaml:"min_corpus_size"`
}

// DatabaseConfig holds database connection settings, used by the redis and valkey stores.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// BatchConfig holds batch matching settings.
type BatchConfig struct {
	Workers       int `yaml:"workers"`
	MaxSize       int `yaml:"max_size"`
	PreviewLength int `yaml:"preview_length"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// Variables from an optional .env file are loaded first and never override the process environment.
func Load(env string) (Config, error) {
	_ = godotenv.Load()

	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from the given YAML file.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	match := domain.DefaultMatchConfig()

	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Model.Store == "" {
		c.Model.Store = StoreFile
	}
	if c.Model.ArtifactPath == "" {
		c.Model.ArtifactPath = "models/vectorizer.bin"
	}
	if c.Model.MetadataPath == "" {
		c.Model.MetadataPath = "models/metadata.json"
	}
	if c.Model.BoltPath == "" {
		c.Model.BoltPath = "models/models.db"
	}
	if c.Model.CorpusDir == "" {
		c.Model.CorpusDir = "data/corpus"
	}
	if c.Model.MinCorpusSize <= 0 {
		c.Model.MinCorpusSize = match.MinCorpusSize
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = match.Workers
	}
	if c.Batch.MaxSize <= 0 {
		c.Batch.MaxSize = match.MaxBatchSize
	}
	if c.Batch.PreviewLength <= 0 {
		c.Batch.PreviewLength = match.PreviewLength
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Model.Store {
	case StoreFile, StoreBolt:
	case StoreRedis, StoreValkey:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for model.store %q", c.Model.Store)
		}
	default:
		return fmt.Errorf("model.store must be one of file, bolt, redis, valkey, got %q", c.Model.Store)
	}
	if c.Batch.MaxSize > 1000 {
		return fmt.Errorf("batch.max_size must not exceed 1000, got %d", c.Batch.MaxSize)
	}
	return nil
}

// UsesDatabase reports whether the model store needs a database connection.
func (c *Config) UsesDatabase() bool {
	return c.Model.Store == StoreRedis || c.Model.Store == StoreValkey
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
