package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config carries everything the process needs from config.yaml. The single
// administrator identity is configuration, not a user row: admin sign-in is
// an explicit comparison against these values.
type Config struct {
	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`

	BaseURL string `yaml:"base_url"`
	JWTKey  string `yaml:"jwt_key"`

	AdminEmail        string `yaml:"admin_email"`
	AdminPasswordHash string `yaml:"admin_password_hash"`

	// FullDayMinutes is the single tunable threshold separating Present
	// from Half-Day sessions.
	FullDayMinutes int `yaml:"full_day_minutes"`

	SQLDebug bool `yaml:"sql_debug"`
}

const DefaultFullDayMinutes = 480

func NewConfig(path string) (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	if err = yaml.Unmarshal(yamlFile, &c); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}
	if c.JWTKey == "" {
		return nil, errors.New("missing jwt_key")
	}
	if c.AdminEmail == "" || c.AdminPasswordHash == "" {
		return nil, errors.New("missing admin identity configuration")
	}

	if c.FullDayMinutes <= 0 {
		c.FullDayMinutes = DefaultFullDayMinutes
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}

	return &c, nil
}
