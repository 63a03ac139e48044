package main

import (
	"fmt"

	"github.com/user/posterkit/pkg/adapters/chromerasterizer"
	"github.com/user/posterkit/pkg/adapters/filesink"
	"github.com/user/posterkit/pkg/adapters/ggrenderer"
	"github.com/user/posterkit/pkg/adapters/logger"
	"github.com/user/posterkit/pkg/adapters/nullsink"
	"github.com/user/posterkit/pkg/adapters/osfilesystem"
	"github.com/user/posterkit/pkg/adapters/smartsuggest"
	"github.com/user/posterkit/pkg/adapters/softrasterizer"
	"github.com/user/posterkit/pkg/config"
	"github.com/user/posterkit/pkg/orchestrator"
	"github.com/user/posterkit/pkg/overlay"
	"github.com/user/posterkit/pkg/ports"
	"github.com/user/posterkit/pkg/session"
	"github.com/user/posterkit/pkg/stages/compose"
	"github.com/user/posterkit/pkg/stages/crop"
	"github.com/user/posterkit/pkg/stages/export"
	"github.com/user/posterkit/pkg/stages/load"
)

// components holds the wired adapters shared by every command.
type components struct {
	cfg      config.Config
	log      ports.Logger
	fs       *osfilesystem.FileSystem
	renderer *ggrenderer.Renderer
	registry *overlay.Registry
}

func newLogger(cfg config.Config, quiet bool) (ports.Logger, error) {
	if quiet {
		return logger.NewNoop(), nil
	}
	level, err := ports.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logger.NewConsole(level, logger.WithFile(cfg.LogFile, cfg.LogMaxSizeMB)), nil
}

func newComponents(cfg config.Config, quiet bool) (*components, error) {
	log, err := newLogger(cfg, quiet)
	if err != nil {
		return nil, err
	}
	fs := osfilesystem.New()
	renderer := ggrenderer.New(ggrenderer.WithLogger(log))

	registry, err := newRegistry(cfg, fs, renderer)
	if err != nil {
		return nil, err
	}

	return &components{
		cfg:      cfg,
		log:      log,
		fs:       fs,
		renderer: renderer,
		registry: registry,
	}, nil
}

// newRegistry draws the built-in templates and loads configured overrides.
func newRegistry(cfg config.Config, fs ports.FileSystem, renderer ports.Renderer) (*overlay.Registry, error) {
	overrides := make(map[string]overlay.Override, len(cfg.Templates))
	for ratio, path := range cfg.Templates {
		if path == "" {
			continue
		}
		data, err := fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
		img, err := renderer.DecodeImage(data)
		if err != nil {
			return nil, fmt.Errorf("decode template %s: %w", path, err)
		}
		overrides[ratio] = overlay.Override{Image: img, Origin: path}
	}
	return overlay.NewRegistry(cfg.Style(), overrides)
}

func (c *components) sink() (ports.DebugSink, error) {
	if !c.cfg.Debug {
		return nullsink.New(), nil
	}
	if err := c.fs.MkdirAll(c.cfg.DebugDir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return filesink.New(c.cfg.DebugDir, c.fs, c.renderer), nil
}

func (c *components) rasterizer() ports.Rasterizer {
	if c.cfg.Rasterizer == config.RasterizerChrome {
		return chromerasterizer.New(chromerasterizer.Options{
			ChromePath: c.cfg.ChromePath,
			Headless:   c.cfg.Headless,
			Timeout:    c.cfg.ChromeTimeoutDuration(),
		}, c.log)
	}
	return softrasterizer.New(c.renderer, c.log)
}

// orchestrator wires the stages against a fresh session.
func (c *components) orchestrator(orchConfig orchestrator.Config) (*orchestrator.Orchestrator, error) {
	sink, err := c.sink()
	if err != nil {
		return nil, err
	}
	ratio, err := overlay.ParseChoice(c.cfg.DefaultRatio)
	if err != nil {
		return nil, err
	}

	stages := orchestrator.Stages{
		Load:    load.NewStage(c.fs, c.renderer, sink, c.log),
		Crop:    crop.NewStage(c.renderer, sink, c.log),
		Compose: compose.NewStage(c.renderer, sink, c.log),
		Export:  export.NewStage(c.rasterizer(), c.renderer, c.fs, sink, c.log),
	}

	return orchestrator.New(
		stages,
		c.registry,
		c.renderer,
		smartsuggest.New(),
		session.New(ratio, c.log),
		orchConfig,
		c.log,
	), nil
}
