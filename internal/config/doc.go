// Package config provides the configuration system for keysync.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← KEYSYNC_SECTION_SETTING
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/keysync/config.toml (or .yaml)
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The merged layers are decoded into the typed sections of Config and
// validated once. A missing config file is not an error.
//
// # Sections
//
//	[server]   enabled, listen, path, allowedOrigins
//	[logging]  level, file
//	[keys]     quit, save, help   (bindings such as "Ctrl+Q" or "<C-q>")
//	[ui]       statusForeground, statusBackground, helpText
//	[files]    watch
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment variable loading
package config
