package session

import "github.com/user/posterkit/pkg/pipeline"

// Snapshot is a read-only copy of the session for display.
type Snapshot struct {
	Phase      string               `json:"phase"`
	Generation uint64               `json:"generation"`
	Ratio      string               `json:"ratio"`
	Source     *SourceInfo          `json:"source,omitempty"`
	Offset     pipeline.CropOffset  `json:"offset"`
	Zoom       float64              `json:"zoom"`
	Region     *pipeline.CropRegion `json:"region,omitempty"`
	Cropped    *Size                `json:"cropped,omitempty"`
	View       *Size                `json:"view,omitempty"`
	Export     *ExportInfo          `json:"export,omitempty"`
	Error      *ErrorInfo           `json:"error,omitempty"`
}

// SourceInfo describes the loaded image without its bytes.
type SourceInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Bytes    int    `json:"bytes"`
}

// Size is a pixel size.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ErrorInfo is the visible error.
type ErrorInfo struct {
	Action  string `json:"action"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:      s.phase.String(),
		Generation: s.generation,
		Ratio:      s.ratio.Name,
		Offset:     s.offset,
		Zoom:       s.zoom,
	}
	if s.source != nil {
		snap.Source = &SourceInfo{
			ID:       s.source.ID,
			Name:     s.source.Name,
			MIMEType: s.source.MIMEType,
			Width:    s.source.Width,
			Height:   s.source.Height,
			Bytes:    len(s.source.Data),
		}
	}
	if s.region != nil {
		r := *s.region
		snap.Region = &r
	}
	if s.cropped != nil {
		snap.Cropped = &Size{Width: s.cropped.Width, Height: s.cropped.Height}
	}
	if s.poster != nil {
		snap.View = &Size{Width: s.poster.Target.Width, Height: s.poster.Target.Height}
	}
	if s.export != nil {
		e := *s.export
		snap.Export = &e
	}
	if s.err != nil {
		snap.Error = &ErrorInfo{Action: string(s.err.Action), Code: s.err.Code, Message: s.err.Message}
	}
	return snap
}
