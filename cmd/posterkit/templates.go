package main

import (
	"fmt"
	"image"
	"image/color"
	"text/tabwriter"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/posterkit/pkg/overlay"
	"github.com/user/posterkit/pkg/ports"
)

// Contact sheet layout
const (
	sheetCell   = 240
	sheetGap    = 16
	sheetLabel  = 40
	sheetFontPx = 18
)

var (
	sheetBackground = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	sheetBorder     = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	sheetText       = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

func templatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: l10n.T("List the overlay template for each aspect ratio"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "preview",
				Usage: l10n.T("Write a contact sheet of all templates to this PNG file"),
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

			templates := make([]overlay.Template, 0, len(overlay.Choices()))
			for _, choice := range overlay.Choices() {
				t, err := comp.registry.Template(choice)
				if err != nil {
					return err
				}
				templates = append(templates, t)
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n", l10n.T("Ratio"), l10n.T("Size"), l10n.T("Origin"))
			for _, t := range templates {
				b := t.Image.Bounds()
				fmt.Fprintf(w, "%s\t%dx%d\t%s\n", t.Choice.Name, b.Dx(), b.Dy(), t.Origin)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			preview := c.String("preview")
			if preview == "" {
				return nil
			}
			sheet := contactSheet(comp.renderer, templates)
			data, err := comp.renderer.EncodeImage(sheet, ports.FormatPNG, 0)
			if err != nil {
				return fmt.Errorf("encode preview: %w", err)
			}
			if err := comp.fs.WriteFile(preview, data); err != nil {
				return fmt.Errorf("write %s: %w", preview, err)
			}
			comp.log.Info("Output saved to %s", preview)
			return nil
		},
	}
}

// contactSheet lays the templates side by side, each contain-fitted into a
// square cell over a grey background so transparent areas stay visible.
func contactSheet(renderer ports.Renderer, templates []overlay.Template) image.Image {
	width := len(templates)*(sheetCell+sheetGap) + sheetGap
	height := sheetCell + sheetLabel + 2*sheetGap
	canvas := renderer.CreateCanvas(width, height, sheetBackground)

	for i, t := range templates {
		x := sheetGap + i*(sheetCell+sheetGap)
		cell := image.Rect(x, sheetGap, x+sheetCell, sheetGap+sheetCell)
		canvas.DrawImageFit(t.Image, cell, ports.FitContain)
		canvas.DrawRectStroke(cell.Min.X, cell.Min.Y, sheetCell, sheetCell, sheetBorder, 1)
		canvas.DrawText(t.Choice.Name, x+sheetCell/2, sheetGap+sheetCell+sheetLabel/2, ports.TextStyle{
			FontSize: sheetFontPx,
			Color:    sheetText,
			Align:    ports.AlignCenter,
		})
	}
	return canvas.ToImage()
}
