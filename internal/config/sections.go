package config

// ServerConfig configures the websocket sync endpoint.
type ServerConfig struct {
	// Enabled starts the endpoint on launch.
	Enabled bool

	// Listen is the TCP address to bind.
	Listen string

	// Path is the URL path that accepts websocket upgrades.
	Path string

	// AllowedOrigins lists browser origins accepted besides the same host.
	AllowedOrigins []string
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string

	// File receives log output. The terminal belongs to the editor, so
	// logs never go to stderr while it runs.
	File string
}

// KeysConfig holds the command bindings.
type KeysConfig struct {
	Quit string
	Save string
	Help string
}

// UIConfig configures the status bar.
type UIConfig struct {
	// StatusForeground and StatusBackground are color names or hex
	// values. Empty means the terminal default.
	StatusForeground string
	StatusBackground string

	// HelpText replaces the message shown by the help binding.
	HelpText string
}

// FilesConfig configures file handling.
type FilesConfig struct {
	// Watch reports modifications of the edited file made by other
	// programs.
	Watch bool
}
