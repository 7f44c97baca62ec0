// Package config описывает настройки сервиса и их загрузку из YAML-файла
// и переменных окружения.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env             string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      HTTPServer      `yaml:"http_server"`
	Bootstrap       Bootstrap       `yaml:"bootstrap"`
	Password        Password        `yaml:"password"`
	Session         Session         `yaml:"session"`
	RedisConnection RedisConnection `yaml:"redis_connection"`
}

// HTTPServer настройки HTTP-сервера.
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Bootstrap учётная запись администратора, создаваемая при старте.
type Bootstrap struct {
	Login    string `yaml:"login" env-default:"admin"`
	Password string `yaml:"password" env:"BOOTSTRAP_PASSWORD" env-default:"12345"`
	Name     string `yaml:"name" env-default:"Admin"`
}

// Password параметры хэширования паролей.
type Password struct {
	BcryptCost int `yaml:"bcrypt_cost" env-default:"10"`
}

// Session настройки cookie-сессии, дублирующей токен доступа.
type Session struct {
	CookieName   string        `yaml:"cookie_name" env-default:"users_session"`
	CookieSecure bool          `yaml:"cookie_secure"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"10m"`
	SecretKey    string        `yaml:"secret_key" env:"SESSION_SECRET_KEY" env-required:"true"`
}

// RedisConnection подключение к Redis для cookie-сессий.
// Пустой Address означает хранение сессий в памяти процесса.
type RedisConnection struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	Timeout     time.Duration `yaml:"timeout"`
}

// MustLoad загружает конфиг из файла CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла path, переменные окружения имеют приоритет.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Bootstrap:\n"+
			"  Login: %s\n"+
			"  Password: %s\n"+
			"Password:\n"+
			"  BcryptCost: %d\n"+
			"Session:\n"+
			"  CookieName: %s\n"+
			"  IdleTimeout: %s\n"+
			"  SecretKey: %s\n"+
			"RedisConnection:\n"+
			"  Address: %s\n"+
			"  Password: %s\n",
		c.Env,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		c.Bootstrap.Login,
		mask(c.Bootstrap.Password),
		c.Password.BcryptCost,
		c.Session.CookieName,
		c.Session.IdleTimeout,
		mask(c.Session.SecretKey),
		c.RedisConnection.Address,
		mask(c.RedisConnection.Password),
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "******"
}
