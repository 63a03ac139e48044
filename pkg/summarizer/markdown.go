package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// Formatter turns a Summary into a document.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a function to Formatter.
type FormatFunc func(summary *Summary) string

// Format calls f.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// MarkdownFormatter renders a Summary as a Markdown document with one
// table per section.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Poster Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	f.section(&b, t("Source"), [][2]string{
		{t("File"), s.Source.Name},
		{t("Type"), s.Source.MIMEType},
		{t("Dimensions"), dimensions(s.Source.Width, s.Source.Height)},
		{t("File Size"), formatBytes(s.Source.FileSize)},
	})

	selection := t("Manual")
	if s.Crop.Auto {
		selection = t("Automatic")
	}
	r := s.Crop.Rect
	f.section(&b, t("Crop"), [][2]string{
		{t("Aspect Ratio"), s.Crop.Ratio},
		{t("Crop Rectangle"), fmt.Sprintf("%dx%d @ %d,%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)},
		{t("Zoom"), fmt.Sprintf("%.2f", s.Crop.Zoom)},
		{t("Selection"), selection},
	})

	f.section(&b, t("Settings"), [][2]string{
		{t("View Width"), fmt.Sprintf("%d px", s.Settings.ViewWidth)},
		{t("Scale"), fmt.Sprintf("%.1fx", s.Settings.Scale)},
		{t("Rasterizer"), s.Settings.Rasterizer},
	})

	output := s.Poster.Path
	if output == "" {
		output = t("Download only")
	}
	rows := [][2]string{
		{t("Output"), output},
		{t("View Size"), dimensions(s.Poster.ViewWidth, s.Poster.ViewHeight)},
		{t("Dimensions"), dimensions(s.Poster.Width, s.Poster.Height)},
		{t("File Size"), formatBytes(s.Poster.FileSize)},
	}
	if s.Elapsed > 0 {
		rows = append(rows, [2]string{t("Elapsed"), fmt.Sprintf("%d ms", s.Elapsed.Round(time.Millisecond).Milliseconds())})
	}
	f.section(&b, t("Poster"), rows)

	b.WriteString("---\n")
	if f.version != "" {
		fmt.Fprintf(&b, "%s posterkit %s\n", t("Generated by"), f.version)
	} else {
		fmt.Fprintf(&b, "%s posterkit\n", t("Generated by"))
	}
	return b.String()
}

func (f *MarkdownFormatter) section(b *strings.Builder, title string, rows [][2]string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	b.WriteString("|------|-------|\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", row[0], escapeCell(row[1]))
	}
	b.WriteString("\n")
}

func dimensions(w, h int) string {
	if w <= 0 || h <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%dx%d", w, h)
}

// escapeCell keeps a value from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// formatBytes formats a byte count in binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
