package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string   `yaml:"http-port" env:"HTTP_PORT" env-default:"8000"`
	SocketPort  string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8001"`
	TraceDepth  int      `yaml:"trace-depth" env:"TRACE_DEPTH" env-default:"3"`
	CORSOrigins []string `yaml:"cors-origins" env:"CORS_ORIGINS" env-default:"*"`
	Cache       Cache    `yaml:"cache"`
	Redis       Redis    `yaml:"redis"`
}

// Cache controls the optional Redis response cache.
type Cache struct {
	Enabled bool          `yaml:"enabled" env:"CACHE_ENABLED" env-default:"false"`
	TTL     time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"10m"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
