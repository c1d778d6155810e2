// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Intake  IntakeConfig  `mapstructure:"intake"`
	MCP     MCPConfig     `mapstructure:"mcp"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // seconds
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// IntakeConfig holds settings for the intake service: the DynamoDB table
// that owns the submissions and the best-effort notification channels.
type IntakeConfig struct {
	Table       string `mapstructure:"table"`
	NotifyEmail string `mapstructure:"notify_email"`
	SenderEmail string `mapstructure:"sender_email"`
	SNSTopicARN string `mapstructure:"sns_topic_arn"` // optional second channel
	RatePerMin  int    `mapstructure:"rate_per_min"`  // 0 disables the limiter
}

// MCPConfig holds the remote tool server's base URL and shared API key.
// An empty key means the proxy is not deployed here.
type MCPConfig struct {
	ServerURL string `mapstructure:"server_url"`
	APIKey    string `mapstructure:"api_key"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"` // empty disables redis-backed features
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
