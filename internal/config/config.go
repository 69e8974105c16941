package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig   `toml:"server"`
	Fetch     FetchConfig    `toml:"fetch"`
	Theme     ThemeConfig    `toml:"theme"`
	LogLevels LogLevelConfig `toml:"log_levels"`
	Display   DisplayConfig  `toml:"display"`
}

// ServerConfig points at the remote content service
type ServerConfig struct {
	URL       string `toml:"url"`
	TimeoutMS int    `toml:"timeout_ms"`
}

// Timeout returns the request timeout as a duration
func (c ServerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// FetchConfig parameterizes window loading
type FetchConfig struct {
	// PageSize is the number of lines per directional load
	PageSize int `toml:"page_size"`
	// ContextRadius is the symmetric context around jump targets
	ContextRadius int `toml:"context_radius"`
	// CoolDownMS suppresses scroll-triggered loads after a load completes
	CoolDownMS int `toml:"cooldown_ms"`
	// EdgeThreshold is the scroll distance from an edge that triggers a load
	EdgeThreshold int `toml:"edge_threshold"`
}

// CoolDown returns the cool-down as a duration
func (c FetchConfig) CoolDown() time.Duration {
	return time.Duration(c.CoolDownMS) * time.Millisecond
}

// ThemeConfig defines color schemes
type ThemeConfig struct {
	Name          string         `toml:"name"`
	LineNumbers   string         `toml:"line_numbers"`
	StatusBar     string         `toml:"status_bar"`
	StatusBarText string         `toml:"status_bar_text"`
	LoadingText   string         `toml:"loading_text"`
	ErrorText     string         `toml:"error_text"`
	SyntaxTheme   string         `toml:"syntax_theme"`
	Levels        LogLevelColors `toml:"levels"`
}

// LogLevelColors defines colors for each log level
type LogLevelColors struct {
	Trace string `toml:"trace"`
	Debug string `toml:"debug"`
	Info  string `toml:"info"`
	Warn  string `toml:"warn"`
	Error string `toml:"error"`
	Fatal string `toml:"fatal"`
}

// LogLevelConfig defines log level detection patterns
type LogLevelConfig struct {
	TracePatterns []string `toml:"trace_patterns"`
	DebugPatterns []string `toml:"debug_patterns"`
	InfoPatterns  []string `toml:"info_patterns"`
	WarnPatterns  []string `toml:"warn_patterns"`
	ErrorPatterns []string `toml:"error_patterns"`
	FatalPatterns []string `toml:"fatal_patterns"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	ShowLineNumbers bool `toml:"show_line_numbers"`
	TabWidth        int  `toml:"tab_width"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:       "http://localhost:8844",
			TimeoutMS: 10000,
		},
		Fetch: FetchConfig{
			PageSize:      1000,
			ContextRadius: 500,
			CoolDownMS:    1000,
			EdgeThreshold: 200,
		},
		Theme: ThemeConfig{
			Name:          "subtle",
			LineNumbers:   "240", // Dark gray
			StatusBar:     "236", // Darker gray background
			StatusBarText: "252", // Light gray text
			LoadingText:   "214", // Orange
			ErrorText:     "196", // Bright red
			SyntaxTheme:   "monokai",
			Levels: LogLevelColors{
				Trace: "240", // Dark gray
				Debug: "244", // Medium gray
				Info:  "250", // Light gray (default)
				Warn:  "214", // Orange
				Error: "167", // Soft red
				Fatal: "196", // Bright red
			},
		},
		LogLevels: LogLevelConfig{
			TracePatterns: []string{"[TRC]", "[TRACE]", "TRACE", "TRC"},
			DebugPatterns: []string{"[DBG]", "[DEBUG]", "DEBUG", "DBG"},
			InfoPatterns:  []string{"[INF]", "[INFO]", "INFO", "INF"},
			WarnPatterns:  []string{"[WRN]", "[WARN]", "[WARNING]", "WARN", "WRN", "WARNING"},
			ErrorPatterns: []string{"[ERR]", "[ERROR]", "ERROR", "ERR"},
			FatalPatterns: []string{"[FTL]", "[FATAL]", "FATAL", "FTL", "[CRIT]", "CRITICAL"},
		},
		Display: DisplayConfig{
			ShowLineNumbers: true,
			TabWidth:        4,
		},
	}
}

// Load loads config from file, falling back to defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves config to file
func Save(cfg *Config) error {
	configPath := getConfigPath()
	if configPath == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rless", "config.toml")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "rless", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
