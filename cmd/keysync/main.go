// Package main is the entry point for the keysync editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/keysync/internal/app"
	"github.com/dshills/keysync/internal/config"
	"github.com/dshills/keysync/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath string
	listen     string
	noServer   bool
	logLevel   string
	logFile    string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := app.NullLogger
	if cfg.Logging.File != "" {
		out, err := app.OpenLogFile(cfg.Logging.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer out.Close()

		lc := app.DefaultLoggerConfig()
		lc.Level = app.ParseLogLevel(cfg.Logging.Level)
		lc.Output = out
		logger = app.NewLogger(lc)
	}
	logger.Info("keysync %s starting", version)

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(app.Options{
		Path:    f.file,
		Config:  cfg,
		Logger:  logger,
		Backend: term,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig layers the command line over the config file and environment.
// Only flags given explicitly override.
func loadConfig(f flags) (*config.Config, error) {
	opts := []config.Option{}
	if f.configPath != "" {
		opts = append(opts, config.WithFile(f.configPath))
	}

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "listen":
			opts = append(opts, config.WithOverride("server.listen", f.listen))
		case "no-server":
			opts = append(opts, config.WithOverride("server.enabled", !f.noServer))
		case "log-level":
			opts = append(opts, config.WithOverride("logging.level", f.logLevel))
		case "log-file":
			opts = append(opts, config.WithOverride("logging.file", f.logFile))
		}
	})

	return config.Load(opts...)
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.listen, "listen", config.DefaultListen, "Sync endpoint listen address")
	flag.BoolVar(&f.noServer, "no-server", false, "Disable the sync endpoint")
	flag.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.logFile, "log-file", config.DefaultLogFile, "Log file path (empty disables logging)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keysync - terminal editor with live websocket sync\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keysync [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keysync                         Open an empty document\n")
		fmt.Fprintf(os.Stderr, "  keysync notes.txt               Open a file\n")
		fmt.Fprintf(os.Stderr, "  keysync -listen :9000 notes.txt Sync on another port\n")
		fmt.Fprintf(os.Stderr, "  keysync -no-server notes.txt    Edit without sync\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keysync %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		f.file = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: at most one file may be given\n")
		os.Exit(1)
	}

	return f
}
