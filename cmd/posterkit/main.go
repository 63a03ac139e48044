// Package main provides the CLI entry point for posterkit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/posterkit/pkg/config"
	"github.com/user/posterkit/pkg/ports"
)

var version = "dev"

func main() {
	app := newApp()
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 "posterkit",
		Usage:                l10n.T("Crop a photo and frame it with a poster template"),
		Description:          l10n.T("posterkit crops an image to a fixed aspect ratio, lays it under an overlay template and exports poster.png at twice the view size."),
		Version:              version,
		EnableBashCompletion: true,
		Flags:                globalFlags(),
		Commands: []*cli.Command{
			cropCommand(),
			posterCommand(),
			serveCommand(),
			templatesCommand(),
			versionCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   l10n.T("Configuration file (default: ./posterkit.yaml if present)"),
			EnvVars: []string{"POSTERKIT_CONFIG"},
		},
		&cli.StringFlag{
			Name:     "rasterizer",
			Usage:    l10n.T("Rasterizer used for export (software, chrome)"),
			Category: l10n.T("Rendering"),
		},
		&cli.StringFlag{
			Name:     "chrome-path",
			Usage:    l10n.T("Path to Chrome executable"),
			EnvVars:  []string{"CHROME_PATH"},
			Category: l10n.T("Rendering"),
		},
		&cli.BoolFlag{
			Name:     "no-headless",
			Usage:    l10n.T("Run browser in non-headless mode"),
			Category: l10n.T("Rendering"),
		},
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Enable debug output"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.StringFlag{
			Name:     "log-file",
			Usage:    l10n.T("Also write logs to a rotated file"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
	}
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	path := c.String("config")
	if path == "" {
		if _, err := os.Stat("posterkit.yaml"); err == nil {
			path = "posterkit.yaml"
		}
	}
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("rasterizer") {
		cfg.Rasterizer = c.String("rasterizer")
	}
	if c.IsSet("chrome-path") {
		cfg.ChromePath = c.String("chrome-path")
	}
	if c.Bool("no-headless") {
		cfg.Headless = false
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.IsSet("ratio") {
		cfg.DefaultRatio = c.String("ratio")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("filename") {
		cfg.Filename = c.String("filename")
	}
	if c.IsSet("scale") {
		cfg.Scale = c.Float64("scale")
	}
	if c.IsSet("view-width") {
		cfg.ViewWidth = c.Int("view-width")
	}
	if c.IsSet("listen") {
		cfg.Listen = c.String("listen")
	}

	return cfg, cfg.Validate()
}

// withSignals cancels the returned context on SIGINT or SIGTERM.
func withSignals(parent context.Context, log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("posterkit version %s", version))
			return nil
		},
	}
}
