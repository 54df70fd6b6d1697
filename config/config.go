// Package config loads the YAML run configuration of the kansou command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Supported report formats.
var Formats = []string{"csv", "json", "msgpack"}

// Source names the CSV column holding one title's reviews.
type Source struct {
	Title  string `yaml:"title"`
	Path   string `yaml:"path"`
	Column string `yaml:"column"`
}

// TfidfConfig controls term ranking.
type TfidfConfig struct {
	TopN        int  `yaml:"top_n"`
	NgramMin    int  `yaml:"ngram_min"`
	NgramMax    int  `yaml:"ngram_max"`
	Lowercase   bool `yaml:"lowercase"`
	PerDocument bool `yaml:"per_document"`
}

// FrequencyConfig controls the word and pair frequency tables.
type FrequencyConfig struct {
	TopN     int `yaml:"top_n"`
	PairTopN int `yaml:"pair_top_n"`
}

// SentimentConfig selects the polarity matching mode.
type SentimentConfig struct {
	AllCandidates bool `yaml:"all_candidates"`
}

// OutputConfig says where reports go and in which formats. SQLite is
// optional.
type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
	SQLite  string   `yaml:"sqlite"`
}

// Config is one analysis run.
type Config struct {
	Sources   []Source        `yaml:"sources"`
	Lexicon   string          `yaml:"lexicon"`
	Tfidf     TfidfConfig     `yaml:"tfidf"`
	Frequency FrequencyConfig `yaml:"frequency"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Workers   int             `yaml:"workers"`
	Output    OutputConfig    `yaml:"output"`
	LogLevel  string          `yaml:"log_level"`
}

// Default returns the configuration used for keys a file leaves out.
func Default() Config {
	return Config{
		Tfidf: TfidfConfig{
			TopN:      10,
			NgramMin:  1,
			NgramMax:  2,
			Lowercase: true,
		},
		Frequency: FrequencyConfig{TopN: 20, PairTopN: 20},
		Sentiment: SentimentConfig{AllCandidates: true},
		Output:    OutputConfig{Dir: "output", Formats: []string{"csv"}},
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path over Default, loads envFile into the
// process environment and applies KANSOU_* overrides. With no envFile, a
// .env in the working directory is loaded when present.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnv("KANSOU_LOG_LEVEL", c.LogLevel)
	c.Output.Dir = getEnv("KANSOU_OUTPUT_DIR", c.Output.Dir)
	c.Lexicon = getEnv("KANSOU_LEXICON", c.Lexicon)
	if v := os.Getenv("KANSOU_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: KANSOU_WORKERS=%q: %v", ErrInvalid, v, err)
		}
		c.Workers = n
	}
	return nil
}

// Titles returns the source titles in configured order, without duplicates.
func (c *Config) Titles() []string {
	seen := make(map[string]bool, len(c.Sources))
	var titles []string
	for _, s := range c.Sources {
		if !seen[s.Title] {
			seen[s.Title] = true
			titles = append(titles, s.Title)
		}
	}
	return titles
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Sources) == 0 {
		errs = append(errs, errors.New("no sources"))
	}
	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		switch {
		case strings.TrimSpace(s.Title) == "":
			errs = append(errs, fmt.Errorf("source %d: missing title", i))
		case seen[s.Title]:
			errs = append(errs, fmt.Errorf("source %d: duplicate title %q", i, s.Title))
		}
		seen[s.Title] = true
		if s.Path == "" {
			errs = append(errs, fmt.Errorf("source %d: missing path", i))
		}
		if s.Column == "" {
			errs = append(errs, fmt.Errorf("source %d: missing column", i))
		}
	}
	if c.Tfidf.TopN < 1 {
		errs = append(errs, fmt.Errorf("tfidf.top_n must be at least 1, got %d", c.Tfidf.TopN))
	}
	if c.Tfidf.NgramMin < 1 || c.Tfidf.NgramMax < c.Tfidf.NgramMin {
		errs = append(errs, fmt.Errorf("invalid n-gram range %d..%d", c.Tfidf.NgramMin, c.Tfidf.NgramMax))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	for _, f := range c.Output.Formats {
		if !isFormat(f) {
			errs = append(errs, fmt.Errorf("unknown output format %q (supported: %v)", f, Formats))
		}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
