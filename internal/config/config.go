// internal/config/config.go
//
// Configuration for every wordlebot command.
// Sources, lowest precedence first:
//   1. Built-in defaults.
//   2. An optional YAML file (path passed to Load, or CONFIG_FILE).
//   3. Environment variables, including those from a .env file.
// Command-line flags are applied on top by cmd/wordlebot.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/davidsrrose/wordle-bot/internal/solver"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

type Config struct {
	LogLevel string `yaml:"log_level"`

	// solver
	WordsFile   string `yaml:"words_file"` // empty = embedded list
	OpeningWord string `yaml:"opening_word"`
	FilterMode  string `yaml:"filter_mode"`
	Strategy    string `yaml:"strategy"`
	Seed        uint64 `yaml:"seed"`

	// browser
	Headless bool   `yaml:"headless"`
	GameURL  string `yaml:"game_url"`
	HardMode bool   `yaml:"hard_mode"`

	// server
	Port             string `yaml:"port"`
	DBPath           string `yaml:"db_path"` // empty = in-memory run store
	JWTSecret        string `yaml:"jwt_secret"`
	JWTExpiresDays   int    `yaml:"jwt_expires_days"`
	ClientOrigin     string `yaml:"client_origin"`
	SessionCacheSize int    `yaml:"session_cache_size"`
	DailySalt        string `yaml:"daily_salt"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:         "info",
		OpeningWord:      solver.DefaultOpeningWord,
		FilterMode:       "strict",
		Strategy:         "random",
		Headless:         true,
		GameURL:          "https://www.nytimes.com/games/wordle/index.html",
		HardMode:         true,
		Port:             "5175",
		JWTExpiresDays:   14,
		ClientOrigin:     "http://localhost:5173",
		SessionCacheSize: 1024,
		DailySalt:        "local_dev_salt",
	}
}

// Load builds the configuration. path may be empty.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	path = firstNonEmpty(path, os.Getenv("CONFIG_FILE"))
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.WordsFile = getEnv("WORDS_FILE", c.WordsFile)
	c.OpeningWord = getEnv("OPENING_WORD", c.OpeningWord)
	c.FilterMode = getEnv("FILTER_MODE", c.FilterMode)
	c.Strategy = getEnv("STRATEGY", c.Strategy)
	c.GameURL = getEnv("GAME_URL", c.GameURL)
	c.Port = getEnv("PORT", c.Port)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.ClientOrigin = getEnv("CLIENT_ORIGIN", c.ClientOrigin)
	c.DailySalt = getEnv("DAILY_SALT", c.DailySalt)

	var err error
	if c.Seed, err = envUint("SEED", c.Seed); err != nil {
		return err
	}
	if c.Headless, err = envBool("HEADLESS", c.Headless); err != nil {
		return err
	}
	if c.HardMode, err = envBool("HARD_MODE", c.HardMode); err != nil {
		return err
	}
	if c.JWTExpiresDays, err = envInt("JWT_EXPIRES_DAYS", c.JWTExpiresDays); err != nil {
		return err
	}
	if c.SessionCacheSize, err = envInt("SESSION_CACHE_SIZE", c.SessionCacheSize); err != nil {
		return err
	}
	return nil
}

// Validate checks the values that are parsed later.
func (c Config) Validate() error {
	if _, err := solver.ParseMode(c.FilterMode); err != nil {
		return err
	}
	if _, err := solver.ParseStrategy(c.Strategy, c.Seed); err != nil {
		return err
	}
	if _, ok := words.Normalize(c.OpeningWord); !ok {
		return fmt.Errorf("opening word %q must be 5 letters A-Z", c.OpeningWord)
	}
	if c.SessionCacheSize <= 0 {
		return fmt.Errorf("session cache size must be positive, got %d", c.SessionCacheSize)
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) (bool, error) {
	v := getEnv(k, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}

func envInt(k string, def int) (int, error) {
	v := getEnv(k, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func envUint(k string, def uint64) (uint64, error) {
	v := getEnv(k, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
