package compose

import (
	"bytes"
	"fmt"
	"html/template"
)

// ElementID is the id of the element the exporter rasterizes.
const ElementID = "final-poster"

// viewVars holds the variables of the view document.
type viewVars struct {
	ElementID  string
	Ratio      string
	Width      int
	Height     int
	PhotoSrc   template.URL
	OverlaySrc template.URL
}

var viewTemplate = template.Must(template.New("view").Parse(viewHTML))

// renderHTML renders the composition view document.
func renderHTML(vars viewVars) (string, error) {
	var buf bytes.Buffer
	if err := viewTemplate.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

const viewHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>poster {{.Ratio}}</title>
    <style>
      html, body { margin: 0; padding: 0; background: #fff; }
      #{{.ElementID}} {
        position: relative;
        width: {{.Width}}px;
        height: {{.Height}}px;
        overflow: hidden;
        background: #fff;
      }
      #{{.ElementID}} img {
        position: absolute;
        inset: 0;
        width: 100%;
        height: 100%;
        display: block;
      }
      #{{.ElementID}} .photo { object-fit: cover; }
      #{{.ElementID}} .overlay { object-fit: contain; pointer-events: none; }
    </style>
  </head>
  <body>
    <div id="{{.ElementID}}" data-ratio="{{.Ratio}}">
      <img class="photo" src="{{.PhotoSrc}}" alt="">
      <img class="overlay" src="{{.OverlaySrc}}" alt="">
    </div>
  </body>
</html>
`
