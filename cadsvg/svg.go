// Serializes a converted drawing as a standalone SVG document,
// at its physical size.
package cadsvg

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"

	"github.com/benoitkugler/cadpath/cadpath"
)

// Options tunes the SVG output. The zero value
// strokes the outline in black, 0.01 inch wide.
type Options struct {
	Stroke        string  // color of the outline, default "black"
	StrokeWidthIn float64 // in inches, default 0.01
	Title         string  // optional title element
}

const defaultStrokeWidth = 0.01

type svgPath struct {
	D           string `xml:"d,attr"`
	Fill        string `xml:"fill,attr"`
	Stroke      string `xml:"stroke,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
}

type svgDocument struct {
	XMLName xml.Name `xml:"svg"`
	Xmlns   string   `xml:"xmlns,attr"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Title   string   `xml:"title,omitempty"`
	Path    svgPath  `xml:"path"`
}

// WriteDocument writes res as an SVG document: the width and height
// are the physical size in inches, and the view box spans the
// drawing, in drawing units.
func WriteDocument(w io.Writer, res cadpath.Result, opts Options) error {
	if !(res.UnitScale > 0) || math.IsInf(res.UnitScale, 1) {
		return fmt.Errorf("cadsvg: %w: got %g", cadpath.ErrInvalidUnitScale, res.UnitScale)
	}
	if opts.Stroke == "" {
		opts.Stroke = "black"
	}
	if opts.StrokeWidthIn <= 0 {
		opts.StrokeWidthIn = defaultStrokeWidth
	}
	vw, vh := res.ViewBox()
	doc := svgDocument{
		Xmlns:   "http://www.w3.org/2000/svg",
		Width:   fmt.Sprintf("%.3fin", res.WidthIn),
		Height:  fmt.Sprintf("%.3fin", res.HeightIn),
		ViewBox: fmt.Sprintf("0 0 %4.3f %4.3f", vw, vh),
		Title:   opts.Title,
		Path: svgPath{
			D:           res.Path.ToSVGPath(),
			Fill:        "none",
			Stroke:      opts.Stroke,
			StrokeWidth: fmt.Sprintf("%.4g", opts.StrokeWidthIn/res.UnitScale),
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
