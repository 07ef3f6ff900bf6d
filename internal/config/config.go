// Package config loads habitchart settings from a YAML or JSON file, a .env
// file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"habitchart/internal/engine"
	"habitchart/internal/notion"
	"habitchart/internal/storage"
)

// AnchorLayout is the date format of Config.Anchor.
const AnchorLayout = "2006-01-02"

// ErrMissingSecret means a live Notion fetch was requested without NOTION_SECRET.
var ErrMissingSecret = errors.New("NOTION_SECRET is not set; add it to your environment or .env file")

type NotionConfig struct {
	BaseURL        string `yaml:"base_url" json:"base_url"`
	Version        string `yaml:"version" json:"version"`
	TasksDB        string `yaml:"tasks_db" json:"tasks_db"`
	MeasuresDB     string `yaml:"measures_db" json:"measures_db"`
	TasksExport    string `yaml:"tasks_export" json:"tasks_export"`
	MeasuresExport string `yaml:"measures_export" json:"measures_export"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`

	Secret string `yaml:"-" json:"-"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type Config struct {
	// Anchor is the Monday that starts week 1.
	Anchor     string            `yaml:"anchor" json:"anchor"`
	OutputDir  string            `yaml:"output_dir" json:"output_dir"`
	DBPath     string            `yaml:"db_path" json:"db_path"`
	LogLevel   string            `yaml:"log_level" json:"log_level"`
	Notion     NotionConfig      `yaml:"notion" json:"notion"`
	Server     ServerConfig      `yaml:"server" json:"server"`
	Fields     engine.Fields     `yaml:"fields" json:"fields"`
	Categories engine.Categories `yaml:"categories" json:"categories"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dbPath, err := storage.DefaultDBPath()
	if err != nil {
		dbPath = "snapshot.db"
	}
	return &Config{
		Anchor:    "2025-10-27",
		OutputDir: "data",
		DBPath:    dbPath,
		LogLevel:  "info",
		Notion: NotionConfig{
			BaseURL:        notion.DefaultBaseURL,
			Version:        notion.DefaultVersion,
			TasksDB:        "294fd573-fcec-815a-bf2d-cc6d478b6be4",
			MeasuresDB:     "294fd573-fcec-808e-b0b2-c3cbc36c998d",
			TimeoutSeconds: 30,
		},
		Server:     ServerConfig{Addr: "127.0.0.1:8080"},
		Fields:     engine.DefaultFields(),
		Categories: engine.DefaultCategories(),
	}
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "habitchart.yaml"
	}
	return filepath.Join(homeDir, ".config", "habitchart", "config.yaml")
}

// Load reads the config file at path, falling back to defaults when it does not
// exist, then applies .env and environment overrides. Relative paths in the file
// are resolved against the file's directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, cfg); err != nil {
			return nil, err
		}
		cfg.resolvePaths(filepath.Dir(path))
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse YAML config: %w", err)
		}
	}
	return nil
}

// loadDotEnv loads ./.env when present. Existing environment variables win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NOTION_SECRET"); v != "" {
		c.Notion.Secret = v
	}
	if v := os.Getenv("HC_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("HC_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("HC_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.OutputDir = resolve(c.OutputDir)
	c.DBPath = resolve(c.DBPath)
	c.Notion.TasksExport = resolve(c.Notion.TasksExport)
	c.Notion.MeasuresExport = resolve(c.Notion.MeasuresExport)
}

func (c *Config) Validate() error {
	anchor, err := c.AnchorDate()
	if err != nil {
		return err
	}
	if anchor.Weekday() != time.Monday {
		return fmt.Errorf("anchor %s is a %s, want a Monday", c.Anchor, anchor.Weekday())
	}
	if err := c.Categories.Validate(); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	for i, d := range c.Fields.Days {
		if d == "" {
			return fmt.Errorf("fields.days[%d] is empty", i)
		}
	}
	return nil
}

func (c *Config) AnchorDate() (time.Time, error) {
	t, err := time.Parse(AnchorLayout, c.Anchor)
	if err != nil {
		return time.Time{}, fmt.Errorf("anchor %q: %w", c.Anchor, err)
	}
	return t, nil
}

// Calendar returns the week calendar. Call after Validate.
func (c *Config) Calendar() engine.Calendar {
	t, _ := c.AnchorDate()
	return engine.NewCalendar(t)
}

// UseExports reports whether rows come from saved query files instead of the API.
func (c *Config) UseExports() bool {
	return c.Notion.TasksExport != "" && c.Notion.MeasuresExport != ""
}

// Source builds the configured row source.
func (c *Config) Source(opts ...notion.Option) (engine.Source, error) {
	if c.UseExports() {
		return notion.NewFileSource(c.Notion.TasksExport, c.Notion.MeasuresExport), nil
	}
	if c.Notion.Secret == "" {
		return nil, ErrMissingSecret
	}
	base := []notion.Option{
		notion.WithBaseURL(c.Notion.BaseURL),
		notion.WithVersion(c.Notion.Version),
		notion.WithTimeout(time.Duration(c.Notion.TimeoutSeconds) * time.Second),
	}
	client := notion.NewClient(c.Notion.Secret, append(base, opts...)...)
	return notion.NewSource(client, c.Notion.TasksDB, c.Notion.MeasuresDB), nil
}

// Save writes cfg to path, YAML unless the extension is .json.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var (
		data []byte
		err  error
	)
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
