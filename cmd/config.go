package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/masklab/snowmask/internal/mask"
)

// Config represents the application configuration
type Config struct {
	Port             int
	Username         string
	PasswordHash     string
	DefaultCategory  string
	DefaultLevel     string
	MetricsNamespace string
	SnowBin          string
	DeployConfigDir  string
}

func LoadConfig() (*Config, error) {
	// Optional .env for local runs; silently ignored when absent.
	_ = godotenv.Load()

	config := &Config{
		Port:             8080,
		DefaultCategory:  string(mask.DefaultCategory),
		DefaultLevel:     string(mask.DefaultLevel),
		MetricsNamespace: "snowmask",
		SnowBin:          "snow",
		DeployConfigDir:  "config",
	}

	// Port
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		config.Port = p
	}

	// Auth credentials; only the server requires them, see ValidateServer
	config.Username = os.Getenv("AUTH_USERNAME")
	config.PasswordHash = os.Getenv("AUTH_PASSWORD_HASH")

	// Masking defaults
	if category := os.Getenv("MASK_DEFAULT_CATEGORY"); category != "" {
		normalized := strings.ToLower(category)
		if _, ok := mask.ParseCategory(normalized); !ok {
			return nil, fmt.Errorf("invalid MASK_DEFAULT_CATEGORY: %s", category)
		}
		config.DefaultCategory = normalized
	}
	if level := os.Getenv("MASK_DEFAULT_LEVEL"); level != "" {
		config.DefaultLevel = string(mask.ParseLevel(level))
	}

	// Metrics namespace
	if ns := os.Getenv("METRICS_NAMESPACE"); ns != "" {
		config.MetricsNamespace = ns
	}

	// Deploy tooling
	if bin := os.Getenv("SNOW_CLI"); bin != "" {
		config.SnowBin = bin
	}
	if dir := os.Getenv("DEPLOY_CONFIG_DIR"); dir != "" {
		config.DeployConfigDir = dir
	}

	return config, nil
}

// ValidateServer checks the settings the HTTP server cannot run without.
func (c *Config) ValidateServer() error {
	if c.Username == "" {
		return fmt.Errorf("AUTH_USERNAME is required")
	}
	if c.PasswordHash == "" {
		return fmt.Errorf("AUTH_PASSWORD_HASH is required")
	}
	return nil
}
