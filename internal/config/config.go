package config

import (
	"errors"
	"log"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bargainbay/internal/services"
)

const (
	envPrefix         = "BARGAINBAY"
	configFileEnvName = envPrefix + "_CONFIG_FILE"
)

type Store struct {
	Driver    string `mapstructure:"driver"` // sqlite | redis
	DSN       string `mapstructure:"dsn"`
	RedisAddr string `mapstructure:"redis_addr"`
}

type Config struct {
	Port           string         `mapstructure:"port"`
	APIBase        string         `mapstructure:"api_base"`
	RequestTimeout time.Duration  `mapstructure:"request_timeout"`
	LogFile        string         `mapstructure:"log_file"`
	LogLevel       string         `mapstructure:"log_level"`
	Store          Store          `mapstructure:"store"`
	Coupons        map[string]int `mapstructure:"coupons"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8081")
	v.SetDefault("api_base", "http://localhost:8080/api")
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("log_file", "./bargainbay.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "bargainbay.db") // sqlite file in project root
	v.SetDefault("store.redis_addr", "localhost:6379")
}

// Load reads defaults, an optional config file, .env and BARGAINBAY_* variables.
// Exits the process when an explicitly named config file cannot be read.
func Load() Config {
	cfg, err := LoadArgs(os.Args[1:])
	if err != nil {
		log.Printf("[config] %v", err)
		os.Exit(2)
	}
	log.Printf("[config] PORT=%s API_BASE=%s STORE=%s(%s) LOG_FILE=%s COUPONS=%d",
		cfg.Port, cfg.APIBase, cfg.Store.Driver, cfg.storeTarget(), cfg.LogFile, len(cfg.Coupons))
	return cfg
}

// LoadArgs is Load without the exit and the startup line.
func LoadArgs(args []string) (Config, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := configFilepath(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	// a configured table replaces the defaults instead of merging key by key
	if len(cfg.Coupons) == 0 {
		cfg.Coupons = maps.Clone(services.DefaultCoupons)
	}
	if cfg.Store.Driver != "sqlite" && cfg.Store.Driver != "redis" {
		return Config{}, errors.New("store.driver must be sqlite or redis")
	}
	return cfg, nil
}

func configFilepath(args []string) string {
	cmdLine := pflag.NewFlagSet("bargainbay", pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(args)
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return *arg
}

func (c Config) storeTarget() string {
	if c.Store.Driver == "redis" {
		return c.Store.RedisAddr
	}
	return c.Store.DSN
}
