// Package load implements the image loader stage.
package load

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/ports"
)

// Stage turns a picked file into a SourceImage. It performs no validation:
// bytes that are not an image are accepted here and fail at decode time.
type Stage struct {
	fs       ports.FileSystem
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new load stage.
func NewStage(fs ports.FileSystem, renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		fs:       fs,
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("load"),
	}
}

// Execute reads the file. A missing selection yields Loaded=false and no error.
func (s *Stage) Execute(ctx context.Context, input pipeline.LoadInput) (pipeline.LoadResult, error) {
	result := pipeline.LoadResult{}

	name, data := input.Name, input.Data
	if data == nil {
		if input.Path == "" {
			s.logger.Debug("No file selected")
			return result, nil
		}
		s.logger.Debug("Reading %s", input.Path)
		b, err := s.fs.ReadFile(input.Path)
		if err != nil {
			return result, fmt.Errorf("read %s: %w", input.Path, err)
		}
		data = b
		if name == "" {
			name = filepath.Base(input.Path)
		}
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	mime := sniff(data)

	// Natural size as displayed, i.e. after EXIF orientation. Header
	// dimensions are not used because they ignore rotation.
	var w, h int
	if img, err := s.renderer.DecodeImage(data); err == nil {
		w, h = img.Bounds().Dx(), img.Bounds().Dy()
	} else {
		s.logger.Debug("Not decodable, dimensions unknown: %s", name)
	}

	result.Source = pipeline.SourceImage{
		ID:       uuid.NewString(),
		Name:     name,
		Data:     data,
		MIMEType: mime,
		DataURI:  DataURI(mime, data),
		Width:    w,
		Height:   h,
	}
	result.Loaded = true

	if s.sink.Enabled() {
		s.sink.SaveSource(name, data)
	}

	return result, nil
}

// sniff reports the media type of data.
func sniff(data []byte) string {
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		return "image/" + format
	}
	return http.DetectContentType(data)
}

// DataURI encodes data as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
