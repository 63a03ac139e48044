// Package overlay holds the supported aspect ratios and the transparent
// template graphic bound to each of them.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

// Choice is one supported aspect ratio.
type Choice struct {
	Name string // "W:H"
	W    int
	H    int
}

// Aspect returns width divided by height.
func (c Choice) Aspect() float64 {
	return float64(c.W) / float64(c.H)
}

var (
	Square    = Choice{Name: "1:1", W: 1, H: 1}
	Landscape = Choice{Name: "4:3", W: 4, H: 3}
	Portrait  = Choice{Name: "3:4", W: 3, H: 4}
)

// Choices returns every supported ratio in display order.
func Choices() []Choice {
	return []Choice{Square, Landscape, Portrait}
}

// ErrUnsupportedRatio is returned for a ratio name outside Choices.
var ErrUnsupportedRatio = errors.New("unsupported aspect ratio")

// ParseChoice looks up a ratio by name.
func ParseChoice(name string) (Choice, error) {
	for _, c := range Choices() {
		if c.Name == name {
			return c, nil
		}
	}
	return Choice{}, fmt.Errorf("%w %q", ErrUnsupportedRatio, name)
}

// Template is the overlay graphic for a ratio.
type Template struct {
	Choice Choice
	Image  image.Image
	Origin string // "builtin" or the override's source
}

// Registry maps each Choice to exactly one Template.
type Registry struct {
	templates map[string]Template
}

// Override replaces a built-in template.
type Override struct {
	Image  image.Image
	Origin string
}

// NewRegistry draws the built-in templates in style and then applies
// overrides keyed by ratio name.
func NewRegistry(style Style, overrides map[string]Override) (*Registry, error) {
	r := &Registry{templates: make(map[string]Template)}
	for _, c := range Choices() {
		r.templates[c.Name] = Template{
			Choice: c,
			Image:  drawFrame(c, style),
			Origin: "builtin",
		}
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c, err := ParseChoice(name)
		if err != nil {
			return nil, fmt.Errorf("template override: %w", err)
		}
		o := overrides[name]
		if o.Image == nil || o.Image.Bounds().Empty() {
			return nil, fmt.Errorf("template override %s: empty image", name)
		}
		r.templates[c.Name] = Template{Choice: c, Image: o.Image, Origin: o.Origin}
	}
	return r, nil
}

// Template returns the template bound to c.
func (r *Registry) Template(c Choice) (Template, error) {
	t, ok := r.templates[c.Name]
	if !ok {
		return Template{}, fmt.Errorf("no template for aspect ratio %q", c.Name)
	}
	return t, nil
}
