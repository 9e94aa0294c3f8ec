package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/solterra/towny-catalog/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envDataPath     = "TOWNY_CATALOG_DATA"
	envSeedPath     = "TOWNY_CATALOG_SEED"
	envSettingsPath = "TOWNY_CATALOG_SETTINGS"
	envViewer       = "TOWNY_CATALOG_VIEWER"
	envAdmin        = "TOWNY_CATALOG_ADMIN"
	envWidth        = "TOWNY_CATALOG_WIDTH"
	envHeight       = "TOWNY_CATALOG_HEIGHT"
	envShowFooter   = "TOWNY_CATALOG_FOOTER"
	envRefresh      = "TOWNY_CATALOG_REFRESH"
	envTrace        = "TOWNY_CATALOG_TRACE"
	envLogFile      = "TOWNY_CATALOG_LOG_FILE"
)

const (
	defaultDataPath     = "towny-catalog.db"
	defaultSettingsPath = "config.yml"
	defaultRefresh      = 5 * time.Second
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("towny-catalog", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	data := fs.String("data", envOrDefault(env, envDataPath, defaultDataPath), "path to the registry database")
	seed := fs.String("seed", envOrDefault(env, envSeedPath, ""), "YAML registry export imported into the database at startup")
	settingsPath := fs.String("settings", envOrDefault(env, envSettingsPath, defaultSettingsPath), "path to the catalog settings file")
	viewer := fs.String("viewer", envOrDefault(env, envViewer, ""), "resident name to browse as (defaults to the first resident)")
	admin := fs.Bool("admin", envOrBool(env, envAdmin, false), "grant the viewer the admin permission")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, defaultRefresh), "registry reload interval (0 disables polling)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *refresh < 0 {
		return Config{}, fmt.Errorf("refresh must be >= 0 (got %s)", *refresh)
	}

	cfg := Config{
		App: app.Config{
			DataPath:     *data,
			SeedPath:     *seed,
			SettingsPath: *settingsPath,
			Viewer:       *viewer,
			Admin:        *admin,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Refresh:      *refresh,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"data":     *data,
			"seed":     *seed,
			"settings": *settingsPath,
			"viewer":   *viewer,
			"admin":    strconv.FormatBool(*admin),
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"refresh":  refresh.String(),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.DataPath) == "" {
		return errors.New("a database path is required (-data)")
	}
	if strings.TrimSpace(cfg.App.SettingsPath) == "" {
		return errors.New("a settings path is required (-settings)")
	}
	if cfg.App.Width < 0 || cfg.App.Height < 0 {
		return fmt.Errorf("viewport size must not be negative (got %dx%d)", cfg.App.Width, cfg.App.Height)
	}
	return nil
}
