// Package config loads the optional electripy.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/electripy/electripy/pkg/app"
	"github.com/electripy/electripy/pkg/assets"
)

// FileName is the project configuration file.
const FileName = "electripy.yaml"

// DefaultLayout is the layout file used when none is configured.
const DefaultLayout = "layout.yaml"

// Config represents the optional electripy.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Bridge BridgeConfig `yaml:"bridge"`
	Assets AssetsConfig `yaml:"assets"`
	Log    LogConfig    `yaml:"log"`
	Layout string       `yaml:"layout,omitempty"`
}

// AppConfig contains window settings. Unset booleans keep their defaults.
type AppConfig struct {
	Title          string `yaml:"title,omitempty"`
	Width          int    `yaml:"width,omitempty"`
	Height         int    `yaml:"height,omitempty"`
	Transparent    *bool  `yaml:"transparent,omitempty"`
	RoundedCorners *bool  `yaml:"rounded_corners,omitempty"`
	WindowShadow   *bool  `yaml:"window_shadow,omitempty"`
	Resizable      *bool  `yaml:"resizable,omitempty"`
	IconPath       string `yaml:"icon_path,omitempty"`
}

// BridgeConfig contains the bridge listener settings.
type BridgeConfig struct {
	Host         string `yaml:"host,omitempty"`
	EelPort      int    `yaml:"eel_port,omitempty"`
	FrontendPort int    `yaml:"frontend_port,omitempty"`
	Development  bool   `yaml:"development,omitempty"`
}

// AssetsConfig contains image fetching settings.
type AssetsConfig struct {
	FetchTimeout string `yaml:"fetch_timeout,omitempty"`
	Cache        *bool  `yaml:"cache,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level       string `yaml:"level,omitempty"`
	Development bool   `yaml:"development,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root         string
	ModulePath   string
	Window       app.Window
	Host         string
	EelPort      int
	FrontendPort int
	Development  bool
	FetchTimeout time.Duration
	Cache        bool
	LogLevel     string
	LogDev       bool
	Layout       string
}

// LoadOptional reads electripy.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads electripy.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	modulePath := modulePath(dir)

	window := app.DefaultWindow()
	if title := strings.TrimSpace(cfg.App.Title); title != "" {
		window.Title = title
	} else if modulePath != "" {
		window.Title = defaultTitle(modulePath)
	}
	if cfg.App.Width > 0 && cfg.App.Height > 0 {
		window.Width, window.Height = cfg.App.Width, cfg.App.Height
	} else if cfg.App.Width != 0 || cfg.App.Height != 0 {
		return nil, fmt.Errorf("app.width and app.height must both be positive (got %dx%d)", cfg.App.Width, cfg.App.Height)
	}
	setBool(&window.Transparent, cfg.App.Transparent)
	setBool(&window.RoundedCorners, cfg.App.RoundedCorners)
	setBool(&window.WindowShadow, cfg.App.WindowShadow)
	setBool(&window.Resizable, cfg.App.Resizable)
	if icon := strings.TrimSpace(cfg.App.IconPath); icon != "" {
		window.IconPath = icon
	}

	res := &Resolved{
		Root:         dir,
		ModulePath:   modulePath,
		Window:       window,
		Host:         orDefault(cfg.Bridge.Host, app.DefaultHost),
		EelPort:      cfg.Bridge.EelPort,
		FrontendPort: cfg.Bridge.FrontendPort,
		Development:  cfg.Bridge.Development,
		FetchTimeout: assets.DefaultTimeout,
		Cache:        true,
		LogLevel:     orDefault(cfg.Log.Level, "info"),
		LogDev:       cfg.Log.Development,
		Layout:       orDefault(cfg.Layout, DefaultLayout),
	}
	if res.EelPort == 0 {
		res.EelPort = app.DefaultEelPort
	}
	if res.FrontendPort == 0 {
		res.FrontendPort = app.DefaultFrontendPort
	}
	if err := validatePort("bridge.eel_port", res.EelPort); err != nil {
		return nil, err
	}
	if err := validatePort("bridge.frontend_port", res.FrontendPort); err != nil {
		return nil, err
	}
	if s := strings.TrimSpace(cfg.Assets.FetchTimeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("assets.fetch_timeout must be a positive duration (got %q)", s)
		}
		res.FetchTimeout = d
	}
	setBool(&res.Cache, cfg.Assets.Cache)
	if !filepath.IsAbs(res.Layout) {
		res.Layout = filepath.Join(dir, res.Layout)
	}

	return res, nil
}

// FindProjectRoot walks up from the current directory to the nearest
// directory holding electripy.yaml or go.mod. Without either, the current
// directory is the root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := cwd; ; {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// modulePath returns the module path of dir/go.mod, or "" without one.
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

// defaultTitle is the last module path element without a major version
// suffix: "github.com/acme/todo/v2" -> "todo".
func defaultTitle(modulePath string) string {
	name := modulePath
	if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
		name = prefix
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return app.DefaultTitle
	}
	return name
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func validatePort(key string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be in 1..65535 (got %d)", key, port)
	}
	return nil
}
