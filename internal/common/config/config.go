// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Engine        EngineConfig        `mapstructure:"engine"`
	Analyzer      AnalyzerConfig      `mapstructure:"analyzer"`
	Search        SearchConfig        `mapstructure:"search"`
	Notifications NotificationConfig  `mapstructure:"notifications"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Specific Configuration Sections ---

// EngineConfig holds matching engine weights, thresholds and cache settings.
// All values default to the production constants; tests may override.
type EngineConfig struct {
	SkillsWeight    float64 `mapstructure:"skills_weight"`
	CGPAWeight      float64 `mapstructure:"cgpa_weight"`
	BranchWeight    float64 `mapstructure:"branch_weight"`
	InterestsWeight float64 `mapstructure:"interests_weight"`
	LocationWeight  float64 `mapstructure:"location_weight"`

	MinSkillsMatch  float64 `mapstructure:"min_skills_match"`
	MinOverallScore float64 `mapstructure:"min_overall_score"`

	DefaultLimit       int `mapstructure:"default_limit"`
	TrendingWindowDays int `mapstructure:"trending_window_days"`
	CacheTTLSeconds    int `mapstructure:"cache_ttl_seconds"`
}

// AnalyzerConfig holds resume analyzer settings.
type AnalyzerConfig struct {
	MaxKeywords     int `mapstructure:"max_keywords"`
	TimeoutMillis   int `mapstructure:"timeout"` // milliseconds
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

// SearchConfig holds posting search settings.
type SearchConfig struct {
	Index         string `mapstructure:"index"`
	PageSize      int    `mapstructure:"page_size"`
	TimeoutMillis int    `mapstructure:"timeout"` // milliseconds
}

// NotificationConfig holds settings for application event publishing.
type NotificationConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// MetricsConfig holds the metrics/health HTTP endpoint settings.
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
