package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Planner   PlannerConfig   `mapstructure:"planner"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// PlannerConfig holds the scheduling policy. Weighting and packing limits are
// configuration, not constants, so the policy can be tuned without touching
// the allocator.
type PlannerConfig struct {
	SupportedDurations  []int   `mapstructure:"supported_durations"`   // weeks
	PriorityWeights     Weights `mapstructure:"priority_weights"`      // critical..low
	ToleranceFactor     float64 `mapstructure:"tolerance_factor"`      // daily overflow bound
	MinutesPerGapPoint  int     `mapstructure:"minutes_per_gap_point"` // demand estimate
	MinChunkMinutes     int     `mapstructure:"min_chunk_minutes"`
	MaxChunkMinutes     int     `mapstructure:"max_chunk_minutes"`
	CatalogTimeoutMs    int     `mapstructure:"catalog_timeout_ms"`
	ReviewChunkMinutes  int     `mapstructure:"review_chunk_minutes"`
	ActiveCacheTTLHours int     `mapstructure:"active_cache_ttl_hours"`
}

type Weights struct {
	Critical int `mapstructure:"critical"`
	High     int `mapstructure:"high"`
	Medium   int `mapstructure:"medium"`
	Low      int `mapstructure:"low"`
}

// DefaultPlanner matches the product defaults; used when the config file
// leaves the planner section empty (and by tests).
func DefaultPlanner() PlannerConfig {
	return PlannerConfig{
		SupportedDurations:  []int{4, 8, 12, 16},
		PriorityWeights:     Weights{Critical: 4, High: 3, Medium: 2, Low: 1},
		ToleranceFactor:     1.25,
		MinutesPerGapPoint:  30,
		MinChunkMinutes:     20,
		MaxChunkMinutes:     60,
		CatalogTimeoutMs:    2000,
		ReviewChunkMinutes:  45,
		ActiveCacheTTLHours: 24,
	}
}

func (p *PlannerConfig) fillDefaults() {
	d := DefaultPlanner()
	if len(p.SupportedDurations) == 0 {
		p.SupportedDurations = d.SupportedDurations
	}
	if p.PriorityWeights == (Weights{}) {
		p.PriorityWeights = d.PriorityWeights
	}
	if p.ToleranceFactor <= 1 {
		p.ToleranceFactor = d.ToleranceFactor
	}
	if p.MinutesPerGapPoint <= 0 {
		p.MinutesPerGapPoint = d.MinutesPerGapPoint
	}
	if p.MinChunkMinutes <= 0 {
		p.MinChunkMinutes = d.MinChunkMinutes
	}
	if p.MaxChunkMinutes <= 0 {
		p.MaxChunkMinutes = d.MaxChunkMinutes
	}
	if p.CatalogTimeoutMs <= 0 {
		p.CatalogTimeoutMs = d.CatalogTimeoutMs
	}
	if p.ReviewChunkMinutes <= 0 {
		p.ReviewChunkMinutes = d.ReviewChunkMinutes
	}
	if p.ActiveCacheTTLHours <= 0 {
		p.ActiveCacheTTLHours = d.ActiveCacheTTLHours
	}
}

func (p *PlannerConfig) CatalogTimeout() time.Duration {
	return time.Duration(p.CatalogTimeoutMs) * time.Millisecond
}

func (p *PlannerConfig) ActiveCacheTTL() time.Duration {
	return time.Duration(p.ActiveCacheTTLHours) * time.Hour
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("PLACEMENT_PREP")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Planner.fillDefaults()

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	return &cfg, nil
}
