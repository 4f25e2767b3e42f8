package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/expensenote/expensenote/internal/importer"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Environment overrides, applied after the config file.
const (
	EnvStorageBackend = "EXPENSENOTE_STORAGE_BACKEND"
	EnvStoragePath    = "EXPENSENOTE_STORAGE_PATH"
	EnvLogLevel       = "EXPENSENOTE_LOG_LEVEL"
	EnvTimezone       = "EXPENSENOTE_TIMEZONE"
)

// FileName is the config file name inside the config directory.
const FileName = "config.yaml"

// Config represents the top-level config.yaml configuration.
type Config struct {
	Storage       StorageConfig       `yaml:"storage"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Log           LogConfig           `yaml:"log"`
	Import        ImportConfig        `yaml:"import,omitempty"`
}

// StorageConfig selects where the ledger snapshot lives.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"` // data directory
	Key     string `yaml:"key"`
}

// NotificationsConfig controls the weekly report.
type NotificationsConfig struct {
	Weekday  string        `yaml:"weekday"`
	Timezone string        `yaml:"timezone"` // IANA name or "Local"
	Interval time.Duration `yaml:"interval"` // heartbeat for notify watch
}

// ImportConfig holds the CSV import match rules, tried in order.
type ImportConfig struct {
	Rules []importer.MatchRule `yaml:"rules,omitempty"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Dir returns the default config and data directory.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".expensenote"
	}
	return filepath.Join(base, "expensenote")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// Default returns a Config storing data under dataDir.
func Default(dataDir string) *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    dataDir,
			Key:     "expense_note_data_v2",
		},
		Notifications: NotificationsConfig{
			Weekday:  "friday",
			Timezone: "Local",
			Interval: time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatConsole,
		},
	}
}

// Load reads a config.yaml file from disk. Fields missing from the file keep
// their defaults, and a missing file yields Default(Dir()).
func Load(path string) (*Config, error) {
	cfg := Default(Dir())
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LoadEnvFiles loads .env style files into the process environment. Missing
// files are skipped; variables that are already set win.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any EXPENSENOTE_* variables that are set.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvStorageBackend); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv(EnvStoragePath); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		cfg.Notifications.Timezone = v
	}
}

// Validate checks the config for values the program cannot use.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
		if c.Storage.Path == "" {
			problems = append(problems, fmt.Sprintf("storage path is required for the %s backend", c.Storage.Backend))
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("unknown storage backend %q", c.Storage.Backend))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		problems = append(problems, "storage key is required")
	}

	if _, err := c.Notifications.WeekdayValue(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.Notifications.Location(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Notifications.Interval < time.Second {
		problems = append(problems, fmt.Sprintf("notification interval %v must be at least 1s", c.Notifications.Interval))
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}
	if c.Log.Format != FormatConsole && c.Log.Format != FormatJSON {
		problems = append(problems, fmt.Sprintf("log format %q must be console or json", c.Log.Format))
	}

	for i, r := range c.Import.Rules {
		if r.Match == "" || r.Reference == "" {
			problems = append(problems, fmt.Sprintf("import rule %d needs match and reference", i+1))
		}
		if r.Kind != "" && !r.Kind.Valid() {
			problems = append(problems, fmt.Sprintf("import rule %d: kind %q must be income or expense", i+1, r.Kind))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// WeekdayValue parses Weekday ("friday", "Fri", "5").
func (n NotificationsConfig) WeekdayValue() (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(n.Weekday))
	if name == "" {
		return time.Friday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] || name == fmt.Sprint(int(d)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", n.Weekday)
}

// Location resolves Timezone. Empty and "Local" mean the process zone.
func (n NotificationsConfig) Location() (*time.Location, error) {
	if n.Timezone == "" || n.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(n.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", n.Timezone, err)
	}
	return loc, nil
}
