package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/posterkit/pkg/config"
	"github.com/user/posterkit/pkg/orchestrator"
	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/server"
	"github.com/user/posterkit/pkg/session"
	"github.com/user/posterkit/pkg/summarizer"
)

// selectionFlags choose the crop rectangle. Without any of them the
// default centred crop is used.
func selectionFlags() []cli.Flag {
	category := l10n.T("Crop selection")
	return []cli.Flag{
		&cli.StringFlag{Name: "ratio", Aliases: []string{"r"}, Usage: l10n.T("Aspect ratio (1:1, 4:3, 3:4)"), Category: category},
		&cli.BoolFlag{Name: "auto", Usage: l10n.T("Pick the most interesting area automatically"), Category: category},
		&cli.Float64Flag{Name: "x", Usage: l10n.T("Crop rectangle left edge"), Category: category},
		&cli.Float64Flag{Name: "y", Usage: l10n.T("Crop rectangle top edge"), Category: category},
		&cli.Float64Flag{Name: "width", Usage: l10n.T("Crop rectangle width"), Category: category},
		&cli.Float64Flag{Name: "height", Usage: l10n.T("Crop rectangle height"), Category: category},
		&cli.Float64Flag{Name: "ref-width", Usage: l10n.T("Width of the space the rectangle is expressed in (default: native pixels)"), Category: category},
		&cli.Float64Flag{Name: "ref-height", Usage: l10n.T("Height of the space the rectangle is expressed in (default: native pixels)"), Category: category},
		&cli.Float64Flag{Name: "offset-x", Usage: l10n.T("Pan offset in percent of the image width"), Category: category},
		&cli.Float64Flag{Name: "offset-y", Usage: l10n.T("Pan offset in percent of the image height"), Category: category},
		&cli.Float64Flag{Name: "zoom", Value: 1, Usage: l10n.T("Zoom factor (1 = largest crop)"), Category: category},
	}
}

// applySelection positions the crop on a loaded image.
func applySelection(ctx context.Context, c *cli.Context, orch *orchestrator.Orchestrator) error {
	switch {
	case c.Bool("auto"):
		return orch.Suggest(ctx)
	case c.IsSet("width") || c.IsSet("height"):
		region := pipeline.CropRegion{
			X:               c.Float64("x"),
			Y:               c.Float64("y"),
			Width:           c.Float64("width"),
			Height:          c.Float64("height"),
			Zoom:            1,
			ReferenceWidth:  c.Float64("ref-width"),
			ReferenceHeight: c.Float64("ref-height"),
		}
		return orch.Report(pipeline.CropOffset{}, 1, region)
	case c.IsSet("offset-x") || c.IsSet("offset-y") || c.IsSet("zoom"):
		offset := pipeline.CropOffset{X: c.Float64("offset-x"), Y: c.Float64("offset-y")}
		return orch.Adjust(ctx, offset, c.Float64("zoom"))
	}
	return nil
}

// loadAndCrop runs the shared part of crop and poster: load the image,
// position the selection and compose the view.
func loadAndCrop(ctx context.Context, c *cli.Context, orch *orchestrator.Orchestrator) error {
	path := c.Args().First()
	if path == "" {
		return errors.New(l10n.T("Image argument is required"))
	}
	if err := orch.Load(ctx, pipeline.LoadInput{Path: path}); err != nil {
		return err
	}
	if err := applySelection(ctx, c, orch); err != nil {
		return err
	}
	return orch.Crop(ctx)
}

func cropCommand() *cli.Command {
	return &cli.Command{
		Name:      "crop",
		Usage:     l10n.T("Crop an image to an aspect ratio"),
		ArgsUsage: "<image>",
		Flags: append(selectionFlags(),
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Value:    "cropped.png",
				Usage:    l10n.T("Output PNG file path"),
				Category: l10n.T("Output"),
			},
		),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			comp, err := newComponents(cfg, c.Bool("quiet"))
			if err != nil {
				return err
			}
			ctx, cancel := withSignals(c.Context, comp.log)
			defer cancel()

			orch, err := comp.orchestrator(cfg.ToOrchestratorConfig())
			if err != nil {
				return err
			}
			if err := loadAndCrop(ctx, c, orch); err != nil {
				return err
			}

			cropped := orch.Session().Cropped()
			output := c.String("output")
			if err := comp.fs.WriteFile(output, cropped.Data); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			comp.log.Info("Output saved to %s", output)
			return nil
		},
	}
}

func posterCommand() *cli.Command {
	return &cli.Command{
		Name:      "poster",
		Usage:     l10n.T("Crop an image, frame it and export poster.png"),
		ArgsUsage: "<image>",
		Flags: append(selectionFlags(),
			&cli.StringFlag{
				Name:     "output-dir",
				Aliases:  []string{"o"},
				Usage:    l10n.T("Directory poster.png is written to"),
				Category: l10n.T("Output"),
			},
			&cli.StringFlag{
				Name:     "filename",
				Usage:    l10n.T("Output file name"),
				Category: l10n.T("Output"),
			},
			&cli.Float64Flag{
				Name:     "scale",
				Usage:    l10n.T("Export scale factor (default: 2)"),
				Category: l10n.T("Output"),
			},
			&cli.IntFlag{
				Name:     "view-width",
				Usage:    l10n.T("Width of the composed view in CSS pixels"),
				Category: l10n.T("Output"),
			},
			&cli.StringFlag{
				Name:     "summary",
				Usage:    l10n.T("Output execution summary to file (Markdown format)"),
				Category: l10n.T("Output"),
			},
		),
		Action: func(c *cli.Context) error {
			start := time.Now()
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			comp, err := newComponents(cfg, c.Bool("quiet"))
			if err != nil {
				return err
			}
			ctx, cancel := withSignals(c.Context, comp.log)
			defer cancel()

			orch, err := comp.orchestrator(cfg.ToOrchestratorConfig())
			if err != nil {
				return err
			}
			if err := loadAndCrop(ctx, c, orch); err != nil {
				return err
			}
			result, err := orch.Export(ctx)
			if err != nil {
				return err
			}

			if path := c.String("summary"); path != "" {
				summary := buildSummary(orch.Session(), cfg, result, c.Bool("auto"), time.Since(start))
				formatter := summarizer.NewMarkdownFormatter(
					summarizer.WithTranslator(l10n.T),
					summarizer.WithVersion(version),
				)
				if err := summarizer.NewWriter(formatter, comp.fs).Write(path, summary); err != nil {
					comp.log.Warn("Failed to write summary: %s", err)
				} else {
					comp.log.Info("Summary saved to %s", path)
				}
			}
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: l10n.T("Run the poster tool in the browser"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: l10n.T("Address to listen on (default: 127.0.0.1:8080)"),
			},
			&cli.StringFlag{
				Name:  "ratio",
				Usage: l10n.T("Aspect ratio (1:1, 4:3, 3:4)"),
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: l10n.T("Also keep a copy of each export in this directory"),
			},
			&cli.IntFlag{
				Name:  "view-width",
				Usage: l10n.T("Width of the composed view in CSS pixels"),
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			comp, err := newComponents(cfg, c.Bool("quiet"))
			if err != nil {
				return err
			}
			ctx, cancel := withSignals(c.Context, comp.log)
			defer cancel()

			orchConfig := cfg.ToOrchestratorConfig()
			if !c.IsSet("output-dir") {
				// Downloads go to the browser only.
				orchConfig.OutputDir = ""
			}
			orch, err := comp.orchestrator(orchConfig)
			if err != nil {
				return err
			}

			srvConfig := server.DefaultConfig()
			srvConfig.Addr = cfg.Listen
			srvConfig.UploadLimit = cfg.UploadLimitBytes()
			if cfg.Rasterizer == config.RasterizerChrome {
				srvConfig.WriteTimeout = cfg.ChromeTimeoutDuration() + srvConfig.WriteTimeout
			}
			return server.New(orch, srvConfig, comp.log.WithComponent("server")).ListenAndServe(ctx)
		},
	}
}

// buildSummary collects what the run produced.
func buildSummary(sess *session.Session, cfg config.Config, result pipeline.ExportResult, auto bool, elapsed time.Duration) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithSettings(summarizer.Settings{
			ViewWidth:  cfg.ViewWidth,
			Scale:      cfg.Scale,
			Rasterizer: cfg.Rasterizer,
		}).
		WithElapsed(elapsed)

	if src := sess.Source(); src != nil {
		b.WithSource(summarizer.SourceInfo{
			Name:     src.Name,
			MIMEType: src.MIMEType,
			Width:    src.Width,
			Height:   src.Height,
			FileSize: int64(len(src.Data)),
		})
	}
	_, zoom := sess.Position()
	var rect image.Rectangle
	if cropped := sess.Cropped(); cropped != nil {
		rect = cropped.Rect
	}
	b.WithCrop(sess.Ratio().Name, rect, zoom, auto)

	poster := summarizer.PosterInfo{
		Path:     result.Path,
		Width:    result.Width,
		Height:   result.Height,
		FileSize: int64(len(result.Data)),
	}
	if p := sess.Poster(); p != nil {
		poster.ViewWidth, poster.ViewHeight = p.Target.Width, p.Target.Height
	}
	return b.WithPoster(poster).Build()
}
