package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Auth     AuthConfig
	Limits   LimitsConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	CategoriesCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type AuthConfig struct {
	JWTSecret string
}

// LimitsConfig - параметры поиска и лимитов заявок
type LimitsConfig struct {
	// DailySubmissions - максимум заявок от пользователя в календарный день
	DailySubmissions int
	// DefaultRadiusMeters - радиус поиска по умолчанию
	DefaultRadiusMeters float64
	// NearbyCandidates - сколько кандидатов забирается из геозапроса
	// до текстовой фильтрации
	NearbyCandidates int
	// NearbyLimit - максимум результатов в ответе
	NearbyLimit int
	// DuplicateRadiusMeters - радиус поиска дубликатов при заявке
	DuplicateRadiusMeters float64
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			CategoriesCacheTTL: time.Duration(viper.GetInt("CATEGORIES_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
		},
		Limits: LimitsConfig{
			DailySubmissions:      viper.GetInt("DAILY_SUBMISSION_LIMIT"),
			DefaultRadiusMeters:   viper.GetFloat64("DEFAULT_RADIUS_METERS"),
			NearbyCandidates:      viper.GetInt("NEARBY_CANDIDATES"),
			NearbyLimit:           viper.GetInt("NEARBY_LIMIT"),
			DuplicateRadiusMeters: viper.GetFloat64("DUPLICATE_RADIUS_METERS"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.CategoriesCacheTTL == 0 {
		cfg.Cache.CategoriesCacheTTL = 5 * time.Minute
	}
	if cfg.Limits.DailySubmissions == 0 {
		cfg.Limits.DailySubmissions = 5
	}
	if cfg.Limits.DefaultRadiusMeters == 0 {
		cfg.Limits.DefaultRadiusMeters = 3000
	}
	if cfg.Limits.NearbyCandidates == 0 {
		cfg.Limits.NearbyCandidates = 100
	}
	if cfg.Limits.NearbyLimit == 0 {
		cfg.Limits.NearbyLimit = 50
	}
	if cfg.Limits.DuplicateRadiusMeters == 0 {
		cfg.Limits.DuplicateRadiusMeters = 50
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
