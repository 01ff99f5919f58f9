package config

import "time"

// Default configuration values.
const (
	defaultServiceName     = "report-triage"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8074
	defaultConcurrency     = 8
	defaultBatchSize       = 200
	defaultRatePerSecond   = 50
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBName          = "report_triage"
	defaultDBSSLMode       = "disable"
	defaultDBMaxConns      = 25
	defaultDBMaxIdleConns  = 5
	defaultPredictorURL    = "http://report-ml:8076"
	defaultPredictorTOSec  = 10
	defaultCategoriesPath  = "config/categories.json"
	defaultRulesPath       = "config/rules.json"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultHistoryRetained = 90
)

// Config holds all configuration for the triage service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Database  DatabaseConfig  `yaml:"database"`
	Predictor PredictorConfig `yaml:"predictor"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name          string `yaml:"name"`
	Version       string `yaml:"version"`
	Port          int    `env:"TRIAGE_PORT"            yaml:"port"`
	Debug         bool   `env:"APP_DEBUG"              yaml:"debug"`
	Concurrency   int    `env:"TRIAGE_CONCURRENCY"     yaml:"concurrency"`
	BatchSize     int    `yaml:"batch_size"`
	RatePerSecond int    `env:"TRIAGE_RATE_PER_SECOND" yaml:"rate_per_second"`
}

// DatabaseConfig holds database configuration. History persistence is
// optional: an empty host disables it.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
	RetentionDays   int           `yaml:"retention_days"`
	Enabled         bool          `env:"TRIAGE_DB_ENABLED" yaml:"enabled"`
}

// PredictorConfig holds the external model sidecar configuration.
type PredictorConfig struct {
	Enabled bool          `env:"PREDICTOR_ENABLED" yaml:"enabled"`
	URL     string        `env:"PREDICTOR_URL"     yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CatalogConfig points at the rule catalog resources.
type CatalogConfig struct {
	CategoriesPath string `env:"TRIAGE_CATEGORIES_PATH" yaml:"categories_path"`
	RulesPath      string `env:"TRIAGE_RULES_PATH"      yaml:"rules_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from the specified path. An empty path yields
// the defaults with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := load(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setPredictorDefaults(&cfg.Predictor)
	setCatalogDefaults(&cfg.Catalog)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchSize == 0 {
		s.BatchSize = defaultBatchSize
	}
	if s.RatePerSecond == 0 {
		s.RatePerSecond = defaultRatePerSecond
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
	if d.RetentionDays == 0 {
		d.RetentionDays = defaultHistoryRetained
	}
}

func setPredictorDefaults(p *PredictorConfig) {
	if p.URL == "" {
		p.URL = defaultPredictorURL
	}
	if p.Timeout == 0 {
		p.Timeout = defaultPredictorTOSec * time.Second
	}
}

func setCatalogDefaults(c *CatalogConfig) {
	if c.CategoriesPath == "" {
		c.CategoriesPath = defaultCategoriesPath
	}
	if c.RulesPath == "" {
		c.RulesPath = defaultRulesPath
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
