package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	JwtTTL              time.Duration `yaml:"jwt_ttl" validate:"required,gt=0"`
	LeaderboardSize     int           `yaml:"leaderboard_size" validate:"required,gt=0"`
	LeaderboardWindow   time.Duration `yaml:"leaderboard_window" validate:"required,gt=0"`
	LeaderboardCacheTTL time.Duration `yaml:"leaderboard_cache_ttl" validate:"gte=0"` // 0 disables the cache
	PostVoteWeight      int           `yaml:"post_vote_weight" validate:"required,gt=0"`
	CommentVoteWeight   int           `yaml:"comment_vote_weight" validate:"required,gt=0"`
	MaxContentLength    int           `yaml:"max_content_length" validate:"required,gt=0"`
	AllowedOrigins      []string      `yaml:"allowed_origins"`
	SecureCookies       bool          `yaml:"secure_cookies"`
	LogLevel            string        `yaml:"log_level"`
	LogJSON             bool          `yaml:"log_json"`
	HTTPPort            int           `yaml:"http_port"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key" validate:"required"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// overrideFromEnv lets deployments keep secrets out of private.yaml.
func overrideFromEnv(p *Private) {
	if v := os.Getenv("PG_HOST"); v != "" {
		p.Pg.Host = v
	}
	if v := os.Getenv("PG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			p.Pg.Port = port
		}
	}
	if v := os.Getenv("PG_USER"); v != "" {
		p.Pg.User = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		p.Pg.Password = v
	}
	if v := os.Getenv("PG_DBNAME"); v != "" {
		p.Pg.Dbname = v
	}
	if v := os.Getenv("JWT_KEY"); v != "" {
		p.JwtKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
	if c.Public.HTTPPort == 0 {
		c.Public.HTTPPort = 8080
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, applies
// .env and environment overrides and panics if a required field is missing.
func MustLoad(configFolder string) *Config {
	// .env files are optional, existing environment variables win
	_ = godotenv.Load(path.Join(configFolder, ".env"))
	_ = godotenv.Load()

	var cfg Config
	mustLoadPath(path.Join(configFolder, "public.yaml"), &cfg.Public)
	mustLoadPath(path.Join(configFolder, "private.yaml"), &cfg.Private)
	overrideFromEnv(&cfg.Private)
	cfg.applyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		panic("invalid config: " + err.Error())
	}
	return &cfg
}
