// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Fallback defaults. The system is operable out of the box with these, but
// they are placeholders for a real deployment, not the tested-against values.
const (
	defaultRegion      = "us-east-2"
	defaultTable       = "ciag-intake"
	defaultNotifyEmail = "tmorgan@coreholdingcorp.com"
	defaultSenderEmail = "tmorgan@coreholdingcorp.com"
	defaultMCPURL      = "https://mcp.coreidentity.coreholdingcorp.com"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Enable ENV override like MCP_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	applyDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults() {
	viper.SetDefault("app.name", "intake-gateway")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdown_timeout", 30)
	viper.SetDefault("aws.region", defaultRegion)
	viper.SetDefault("intake.table", defaultTable)
	viper.SetDefault("intake.notify_email", defaultNotifyEmail)
	viper.SetDefault("intake.sender_email", defaultSenderEmail)
	viper.SetDefault("intake.sns_topic_arn", "")
	viper.SetDefault("intake.rate_per_min", 0)
	viper.SetDefault("mcp.server_url", defaultMCPURL)
	viper.SetDefault("mcp.api_key", "")
	viper.SetDefault("redis.address", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// overrideFromEnv keeps the deployment variable names the dashboard stack
// already uses working, regardless of viper key mapping.
func overrideFromEnv(cfg *Config) {
	if val := os.Getenv("AWS_REGION"); val != "" {
		cfg.AWS.Region = val
	}
	if val := os.Getenv("CIAG_NOTIFY_EMAIL"); val != "" {
		cfg.Intake.NotifyEmail = val
	}
	if val := os.Getenv("CIAG_SENDER_EMAIL"); val != "" {
		cfg.Intake.SenderEmail = val
	}
	if val := os.Getenv("MCP_SERVER_URL"); val != "" {
		cfg.MCP.ServerURL = val
	}
	if val := os.Getenv("MCP_API_KEY"); val != "" {
		cfg.MCP.APIKey = val
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if cfg.AWS.Region == "" {
		return fmt.Errorf("aws.region must not be empty")
	}
	if cfg.Intake.Table == "" {
		return fmt.Errorf("intake.table must not be empty")
	}
	if cfg.MCP.ServerURL == "" {
		return fmt.Errorf("mcp.server_url must not be empty")
	}
	return nil
}

// loadEnvFile loads .env from the working directory or the module root, so
// the binary behaves the same whether started from the root or from cmd/.
func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
