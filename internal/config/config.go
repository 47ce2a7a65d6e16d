package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dshills/keysync/internal/config/loader"
	"github.com/dshills/keysync/internal/engine"
	"github.com/dshills/keysync/internal/input/key"
	"github.com/dshills/keysync/internal/renderer/core"
)

// Defaults.
const (
	EnvPrefix      = "KEYSYNC_"
	DefaultListen  = "127.0.0.1:3030"
	DefaultPath    = "/ws"
	DefaultLogFile = "debug.log"
)

// Config is the merged, validated configuration.
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Keys    KeysConfig
	UI      UIConfig
	Files   FilesConfig
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Enabled: true,
			Listen:  DefaultListen,
			Path:    DefaultPath,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  DefaultLogFile,
		},
		Keys: KeysConfig{
			Quit: "Ctrl+Q",
			Save: "Ctrl+S",
			Help: "Ctrl+H",
		},
		Files: FilesConfig{
			Watch: true,
		},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	file      string
	fs        loader.FileSystem
	envPrefix string
	overrides map[string]any
}

// WithFile sets the config file. An empty path skips the file layer.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithFileSystem sets the file system the config file is read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// skips the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithOverride sets a value in the top layer, above the environment. Used
// for command-line flags.
func WithOverride(path string, value any) Option {
	return func(o *options) {
		loader.SetByPath(o.overrides, path, value)
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/keysync/config.toml, falling
// back to ~/.config/keysync/config.toml.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keysync", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keysync", "config.toml")
}

// Load merges defaults, the config file, the environment and overrides,
// then decodes and validates the result.
func Load(opts ...Option) (*Config, error) {
	o := options{
		file:      DefaultConfigPath(),
		fs:        loader.DefaultFS(),
		envPrefix: EnvPrefix,
		overrides: make(map[string]any),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := Default().toMap()

	if o.file != "" {
		m, err := loader.ForFile(o.fs, o.file).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	if o.envPrefix != "" {
		m, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	merged = loader.DeepMerge(merged, o.overrides)

	cfg, err := decode(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Enabled && strings.TrimSpace(c.Server.Listen) == "" {
		errs = append(errs, &ValidationError{Path: "server.listen", Value: c.Server.Listen, Message: "must not be empty"})
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		errs = append(errs, &ValidationError{Path: "server.path", Value: c.Server.Path, Message: "must start with /"})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn or error"})
	}

	if _, err := c.Keymap(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.StatusStyle(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Keymap parses the command bindings.
func (c *Config) Keymap() (engine.Keymap, error) {
	var km engine.Keymap
	var errs []error

	bind := func(path, spec string, dst *key.Event) {
		ev, err := key.ParseBinding(spec)
		if err != nil {
			errs = append(errs, &ValidationError{Path: path, Value: spec, Message: "invalid key binding", Err: err})
			return
		}
		*dst = ev
	}
	bind("keys.quit", c.Keys.Quit, &km.Quit)
	bind("keys.save", c.Keys.Save, &km.Save)
	bind("keys.help", c.Keys.Help, &km.Help)

	if len(errs) == 0 {
		switch {
		case km.Quit.Matches(km.Save):
			errs = append(errs, &ValidationError{Path: "keys.save", Value: c.Keys.Save, Message: "same key as keys.quit"})
		case km.Quit.Matches(km.Help):
			errs = append(errs, &ValidationError{Path: "keys.help", Value: c.Keys.Help, Message: "same key as keys.quit"})
		case km.Save.Matches(km.Help):
			errs = append(errs, &ValidationError{Path: "keys.help", Value: c.Keys.Help, Message: "same key as keys.save"})
		}
	}

	return km, errors.Join(errs...)
}

// StatusStyle returns the status bar colors.
func (c *Config) StatusStyle() (core.Style, error) {
	style := core.DefaultStyle()
	var errs []error

	if s := c.UI.StatusForeground; s != "" {
		fg, err := core.ParseColor(s)
		if err != nil {
			errs = append(errs, &ValidationError{Path: "ui.statusForeground", Value: s, Message: "invalid color", Err: err})
		}
		style = style.WithForeground(fg)
	}
	if s := c.UI.StatusBackground; s != "" {
		bg, err := core.ParseColor(s)
		if err != nil {
			errs = append(errs, &ValidationError{Path: "ui.statusBackground", Value: s, Message: "invalid color", Err: err})
		}
		style = style.WithBackground(bg)
	}

	return style, errors.Join(errs...)
}

// toMap renders c as the bottom configuration layer.
func (c *Config) toMap() map[string]any {
	origins := make([]any, len(c.Server.AllowedOrigins))
	for i, o := range c.Server.AllowedOrigins {
		origins[i] = o
	}

	return map[string]any{
		"server": map[string]any{
			"enabled":        c.Server.Enabled,
			"listen":         c.Server.Listen,
			"path":           c.Server.Path,
			"allowedOrigins": origins,
		},
		"logging": map[string]any{
			"level": c.Logging.Level,
			"file":  c.Logging.File,
		},
		"keys": map[string]any{
			"quit": c.Keys.Quit,
			"save": c.Keys.Save,
			"help": c.Keys.Help,
		},
		"ui": map[string]any{
			"statusForeground": c.UI.StatusForeground,
			"statusBackground": c.UI.StatusBackground,
			"helpText":         c.UI.HelpText,
		},
		"files": map[string]any{
			"watch": c.Files.Watch,
		},
	}
}

func decode(m map[string]any) (*Config, error) {
	d := decoder{data: m}

	cfg := &Config{
		Server: ServerConfig{
			Enabled:        d.getBool("server.enabled"),
			Listen:         d.getString("server.listen"),
			Path:           d.getString("server.path"),
			AllowedOrigins: d.getStrings("server.allowedOrigins"),
		},
		Logging: LoggingConfig{
			Level: d.getString("logging.level"),
			File:  d.getString("logging.file"),
		},
		Keys: KeysConfig{
			Quit: d.getString("keys.quit"),
			Save: d.getString("keys.save"),
			Help: d.getString("keys.help"),
		},
		UI: UIConfig{
			StatusForeground: d.getString("ui.statusForeground"),
			StatusBackground: d.getString("ui.statusBackground"),
			HelpText:         d.getString("ui.helpText"),
		},
		Files: FilesConfig{
			Watch: d.getBool("files.watch"),
		},
	}

	return cfg, errors.Join(d.errs...)
}

// decoder reads typed values from a merged map, collecting type errors.
type decoder struct {
	data map[string]any
	errs []error
}

func (d *decoder) fail(path, expected string, v any) {
	d.errs = append(d.errs, &TypeError{Path: path, Expected: expected, Actual: typeName(v)})
}

func (d *decoder) getString(path string) string {
	v, ok := loader.GetByPath(d.data, path)
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		d.fail(path, "string", v)
		return ""
	}
}

func (d *decoder) getBool(path string) bool {
	v, ok := loader.GetByPath(d.data, path)
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			d.fail(path, "bool", v)
		}
		return b
	default:
		d.fail(path, "bool", v)
		return false
	}
}

// getStrings accepts a list of strings or a single comma-separated string.
func (d *decoder) getStrings(path string) []string {
	v, ok := loader.GetByPath(d.data, path)
	if !ok || v == nil {
		return nil
	}
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				d.fail(path, "[]string", v)
				return nil
			}
			out = append(out, s)
		}
		return out
	case string:
		var out []string
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		d.fail(path, "[]string", v)
		return nil
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
