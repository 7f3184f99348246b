package internal

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultCompactThreshold is the tool-call count that triggers the first compact suggestion.
	DefaultCompactThreshold = 50
	// DefaultCompactInterval spaces the reminders after the threshold.
	DefaultCompactInterval = 25
	// DefaultRecentDays bounds the session markers reported at session start.
	DefaultRecentDays = 7
	// DefaultSessionIDEnv names the host-provided session identifier variable.
	DefaultSessionIDEnv = "CLAUDE_SESSION_ID"
	// ThresholdEnv overrides the compact threshold.
	ThresholdEnv = "COMPACT_THRESHOLD"

	// CounterBackendFile and CounterBackendSQLite select the Counter implementation.
	CounterBackendFile   = "file"
	CounterBackendSQLite = "sqlite"

	configName = "session-hooks"
	envPrefix  = "SESSION_HOOKS"
	sqliteName = "session-hooks.db"
)

// Config holds the resolved hook settings
type Config struct {
	BaseDir string
	Compact CompactConfig
	Session SessionConfig
	Counter CounterConfig
}

// CompactConfig controls the suggest-compact hook
type CompactConfig struct {
	Threshold int
	Interval  int
}

// SessionConfig controls session identification and reporting
type SessionConfig struct {
	IDEnv      string
	RecentDays int
}

// CounterConfig selects where tool-call counts live
type CounterConfig struct {
	Backend    string
	SQLitePath string
}

// NewDefaultConfig returns a Config with every default filled in. BaseDir is
// left empty so DetectPaths falls back to <home>/.claude.
func NewDefaultConfig() *Config {
	return &Config{
		Compact: CompactConfig{
			Threshold: DefaultCompactThreshold,
			Interval:  DefaultCompactInterval,
		},
		Session: SessionConfig{
			IDEnv:      DefaultSessionIDEnv,
			RecentDays: DefaultRecentDays,
		},
		Counter: CounterConfig{
			Backend: CounterBackendFile,
		},
	}
}

// InitViper builds a viper instance with defaults, the optional config file
// and environment bindings.
//
// Precedence (highest first): flags bound by the caller, environment
// (COMPACT_THRESHOLD, SESSION_HOOKS_*), the config file, defaults.
// configFile may be empty, in which case <baseDir>/session-hooks.yaml is tried.
func InitViper(configFile, baseDir string) (*viper.Viper, error) {
	v := viper.New()
	setViperDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if baseDir != "" {
			v.AddConfigPath(baseDir)
		} else if paths, err := DetectPaths(""); err == nil {
			v.AddConfigPath(paths.BaseDir)
		}
	}

	var cfgErr error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			cfgErr = &ConfigError{Path: v.ConfigFileUsed(), Err: err}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("compact.threshold", ThresholdEnv, envPrefix+"_COMPACT_THRESHOLD")

	if baseDir != "" {
		v.Set("base_dir", baseDir)
	}

	return v, cfgErr
}

func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("base_dir", d.BaseDir)
	v.SetDefault("compact.threshold", d.Compact.Threshold)
	v.SetDefault("compact.interval", d.Compact.Interval)
	v.SetDefault("session.id_env", d.Session.IDEnv)
	v.SetDefault("session.recent_days", d.Session.RecentDays)
	v.SetDefault("counter.backend", d.Counter.Backend)
	v.SetDefault("counter.sqlite_path", d.Counter.SQLitePath)
}

// LoadConfig reads configuration through viper. When the config file is
// unreadable the defaults (plus environment) are still returned together with
// the error, so hooks can log it and carry on.
func LoadConfig(configFile, baseDir string) (*Config, error) {
	v, err := InitViper(configFile, baseDir)

	// Getters rather than Unmarshal: an unparseable COMPACT_THRESHOLD reads
	// as zero and falls back to the default instead of failing the decode.
	// Integers are read as strings so "010" stays ten rather than octal.
	cfg := &Config{
		BaseDir: v.GetString("base_dir"),
		Compact: CompactConfig{
			Threshold: decimalInt(v.GetString("compact.threshold")),
			Interval:  decimalInt(v.GetString("compact.interval")),
		},
		Session: SessionConfig{
			IDEnv:      v.GetString("session.id_env"),
			RecentDays: decimalInt(v.GetString("session.recent_days")),
		},
		Counter: CounterConfig{
			Backend:    v.GetString("counter.backend"),
			SQLitePath: v.GetString("counter.sqlite_path"),
		},
	}
	cfg.normalize()
	return cfg, err
}

// decimalInt parses s as a base-10 integer, zero when it does not parse
func decimalInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func (c *Config) normalize() {
	if c.Compact.Threshold <= 0 {
		c.Compact.Threshold = DefaultCompactThreshold
	}
	if c.Compact.Interval <= 0 {
		c.Compact.Interval = DefaultCompactInterval
	}
	if c.Session.IDEnv == "" {
		c.Session.IDEnv = DefaultSessionIDEnv
	}
	if c.Session.RecentDays <= 0 {
		c.Session.RecentDays = DefaultRecentDays
	}
	c.Counter.Backend = strings.ToLower(strings.TrimSpace(c.Counter.Backend))
	if c.Counter.Backend == "" {
		c.Counter.Backend = CounterBackendFile
	}
}

// Paths resolves the hook directories for this configuration
func (c *Config) Paths() (Paths, error) {
	return DetectPaths(c.BaseDir)
}

// OpenCounter opens the configured counter store
func (c *Config) OpenCounter(ctx context.Context, paths Paths) (Counter, error) {
	switch c.Counter.Backend {
	case CounterBackendFile:
		return NewFileCounter(paths.TempDir), nil
	case CounterBackendSQLite:
		dbPath := c.Counter.SQLitePath
		if dbPath == "" {
			dbPath = filepath.Join(paths.BaseDir, sqliteName)
		}
		return NewSQLiteCounter(ctx, dbPath)
	default:
		return nil, &ConfigError{Err: errors.New("unsupported counter backend: " + c.Counter.Backend + " (supported: file, sqlite)")}
	}
}
