// Package chromerasterizer flattens render targets with headless Chrome.
package chromerasterizer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"time"

	"github.com/chromedp/cdproto/emulation"
	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/ports"
)

// imagesReady resolves once every <img> in the document has loaded or failed.
const imagesReady = `Promise.all(Array.from(document.images).map(function (img) {
  if (img.complete) { return true; }
  return new Promise(function (resolve) { img.onload = img.onerror = resolve; });
})).then(function () { return true; })`

// Options configures the browser.
type Options struct {
	ChromePath string
	Headless   bool
	Timeout    time.Duration
}

// Rasterizer implements ports.Rasterizer by screenshotting the target
// element in a fresh browser per call.
type Rasterizer struct {
	opts   Options
	logger ports.Logger
}

// New creates a new Rasterizer.
func New(opts Options, logger ports.Logger) *Rasterizer {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Rasterizer{
		opts:   opts,
		logger: logger.WithComponent("chromerasterizer"),
	}
}

// Rasterize loads target.HTML and captures the element target.ElementID
// at the given device scale factor.
func (r *Rasterizer) Rasterize(ctx context.Context, target ports.RenderTarget, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale %v", scale)
	}
	if target.ElementID == "" || target.HTML == "" {
		return nil, &pipeline.RenderTargetMissingError{ElementID: target.ElementID}
	}

	tmp, err := os.CreateTemp("", "posterkit-*.html")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(target.HTML); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, r.allocatorOptions(target)...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	r.logger.Debug("Launching browser")

	width, height := target.Width, target.Height
	if width <= 0 || height <= 0 {
		width, height = 1024, 768
	}

	var found bool
	if err := chromedp.Run(browserCtx,
		emulation.SetDeviceMetricsOverride(int64(width), int64(height), scale, false),
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.Evaluate("document.getElementById("+strconv.Quote(target.ElementID)+") !== null", &found),
	); err != nil {
		return nil, fmt.Errorf("load view: %w", err)
	}
	if !found {
		return nil, &pipeline.RenderTargetMissingError{ElementID: target.ElementID}
	}

	r.logger.Debug("Rasterizing %dx%d at %.1fx", target.Width, target.Height, scale)

	var ready bool
	var buf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.Evaluate(imagesReady, &ready, func(p *cdpruntime.EvaluateParams) *cdpruntime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.Screenshot("#"+target.ElementID, &buf, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("capture element: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

func (r *Rasterizer) allocatorOptions(target ports.RenderTarget) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if r.opts.Headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if target.Width > 0 && target.Height > 0 {
		opts = append(opts, chromedp.WindowSize(target.Width, target.Height))
	}
	if path := ResolveChromePath(r.opts.ChromePath); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	return opts
}

var _ ports.Rasterizer = (*Rasterizer)(nil)
