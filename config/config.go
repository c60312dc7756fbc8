package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the application's configuration values.
type Config struct {
	AppName         string        `json:"appname"`
	AppEnv          string        `json:"appenv"`
	AppPort         uint16        `json:"appport"`
	GinMode         string        `json:"ginmode"`
	LogLevel        string        `json:"loglevel"`
	DBDriver        string        `json:"dbdriver"`
	DBHost          string        `json:"dbhost"`
	DBPort          uint16        `json:"dbport"`
	DBName          string        `json:"dbname"`
	DBUSER          string        `json:"dbuser"`
	DBPass          string        `json:"dbpass"`
	RedisAddr       string        `json:"redisaddr"`
	RedisPass       string        `json:"redispass"`
	RedisDB         int           `json:"redisdb"`
	RateLimit       int           `json:"ratelimit"`
	RateLimitWindow time.Duration `json:"ratelimitwindow"`
}

var config *Config
var once sync.Once

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APPNAME", "Hospital Management API")
	v.SetDefault("APPENV", "development")
	v.SetDefault("APPPORT", 8000)
	v.SetDefault("GINMODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DBDRIVER", "mysql")
	v.SetDefault("DBHOST", "localhost")
	v.SetDefault("DBPORT", 3306)
	v.SetDefault("DBNAME", "hospital")
	v.SetDefault("DBUSER", "root")
	v.SetDefault("DBPASS", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASS", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT", 120)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	return v
}

// LoadConfig loads the environment variables (from a .env file when one exists)
// and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("no .env file loaded, using process environment")
		}

		v := newViper()
		config = &Config{
			AppName:         v.GetString("APPNAME"),
			AppEnv:          v.GetString("APPENV"),
			AppPort:         v.GetUint16("APPPORT"),
			GinMode:         v.GetString("GINMODE"),
			LogLevel:        v.GetString("LOG_LEVEL"),
			DBDriver:        v.GetString("DBDRIVER"),
			DBHost:          v.GetString("DBHOST"),
			DBPort:          v.GetUint16("DBPORT"),
			DBName:          v.GetString("DBNAME"),
			DBUSER:          v.GetString("DBUSER"),
			DBPass:          v.GetString("DBPASS"),
			RedisAddr:       v.GetString("REDIS_ADDR"),
			RedisPass:       v.GetString("REDIS_PASS"),
			RedisDB:         v.GetInt("REDIS_DB"),
			RateLimit:       v.GetInt("RATE_LIMIT"),
			RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),
		}
	})
	return config
}

// ResetConfigForTest drops the cached configuration so the next LoadConfig
// call re-reads the environment. Only meant for tests.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
}

// dialector picks the gorm driver for the configured database.
func dialector(cfg *Config) (gorm.Dialector, error) {
	if cfg.AppEnv == "test" {
		return sqlite.Open(fmt.Sprintf("file:%s_test?mode=memory&cache=shared", cfg.DBName)), nil
	}

	switch cfg.DBDriver {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", cfg.DBHost, cfg.DBPort, cfg.DBUSER, cfg.DBPass, cfg.DBName)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}
}

// ConnectDatabase establishes a connection to the configured database.
// In the test environment it opens an in-memory SQLite database instead.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()

	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{TranslateError: true}
	if cfg.AppEnv == "test" {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(d, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	return db, nil
}
