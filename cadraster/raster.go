// Implements a raster backend to preview converted drawings,
// by wrapping rasterx.
package cadraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/cadpath/cadpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
)

var _ cadpath.Drawer = (*Renderer)(nil) // assert interface conformance

// ErrImageTooLarge is returned when the preview would exceed Options.MaxPixels.
var ErrImageTooLarge = errors.New("preview image too large")

// Options tunes the preview. The zero value draws a one pixel
// black outline at 96 DPI on a white background.
type Options struct {
	DPI         float64     // pixels per inch, default 96
	StrokeWidth float64     // in pixels, default 1
	Padding     int         // blank pixels around the drawing, default 2
	Stroke      color.Color // default black
	Background  color.Color // default white
	// Fill, if not nil, fills the closed outlines with the even-odd rule
	// before stroking them.
	Fill      color.Color
	MaxPixels int // default 1 << 26
}

func (opts *Options) setDefaults() {
	if opts.DPI <= 0 {
		opts.DPI = 96
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 1
	}
	if opts.Padding <= 0 {
		opts.Padding = 2
	}
	if opts.Stroke == nil {
		opts.Stroke = color.Black
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = 1 << 26
	}
}

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer drawing to img, stroking with a round join
// and a width of `strokeWidth` pixels.
func NewRenderer(img draw.Image, strokeWidth float64) *Renderer {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	rd := &Renderer{
		dasher: rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, img, img.Bounds())),
		filler: rasterx.NewFiller(w, h, rasterx.NewScannerGV(w, h, img, img.Bounds())),
	}
	rd.dasher.SetStroke(fixed.Int26_6(strokeWidth*64), 4*64, rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap, rasterx.Round, nil, 0)
	rd.filler.SetWinding(false)
	return rd
}

func (rd *Renderer) SetStrokeColor(c color.Color) { rd.dasher.SetColor(c) }

func (rd *Renderer) SetFillColor(c color.Color) { rd.filler.SetColor(c) }

func toFixed(p cadpath.Point) fixed.Point26_6 { return rasterx.ToFixedP(p.X, p.Y) }

func (rd *Renderer) Start(a cadpath.Point) {
	rd.filler.Start(toFixed(a))
	rd.dasher.Start(toFixed(a))
}

func (rd *Renderer) Line(b cadpath.Point) {
	rd.filler.Line(toFixed(b))
	rd.dasher.Line(toFixed(b))
}

func (rd *Renderer) CubeBezier(b, c, d cadpath.Point) {
	rd.filler.CubeBezier(toFixed(b), toFixed(c), toFixed(d))
	rd.dasher.CubeBezier(toFixed(b), toFixed(c), toFixed(d))
}

func (rd *Renderer) Stop(closeLoop bool) {
	rd.filler.Stop(closeLoop)
	rd.dasher.Stop(closeLoop)
}

func (rd *Renderer) Fill() {
	rd.filler.Draw()
}

func (rd *Renderer) Stroke() {
	rd.dasher.Draw()
}

// ImageSize returns the size in pixels of the preview of res.
// It fails with ErrImageTooLarge above opts.MaxPixels.
func ImageSize(res cadpath.Result, opts Options) (w, h int, err error) {
	opts.setDefaults()
	fw := math.Ceil(res.WidthIn*opts.DPI) + float64(2*opts.Padding)
	fh := math.Ceil(res.HeightIn*opts.DPI) + float64(2*opts.Padding)
	if !(fw*fh <= float64(opts.MaxPixels)) {
		return 0, 0, fmt.Errorf("%w: %g x %g pixels", ErrImageTooLarge, fw, fh)
	}
	return int(fw), int(fh), nil
}

// Rasterize draws the outline of res on a new image, at
// the physical size of the drawing.
func Rasterize(res cadpath.Result, opts Options) (*image.RGBA, error) {
	opts.setDefaults()
	if !(res.UnitScale > 0) {
		return nil, fmt.Errorf("cadraster: %w: got %g", cadpath.ErrInvalidUnitScale, res.UnitScale)
	}
	w, h, err := ImageSize(res, opts)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	// drawing units -> pixels, shifted by the padding
	s := res.UnitScale * opts.DPI
	pad := float64(opts.Padding)
	m := matrix.Scale(s, s).Mul(matrix.Translate(pad, pad))

	renderer := NewRenderer(img, opts.StrokeWidth)
	res.Path.DrawTo(renderer, m)
	if opts.Fill != nil {
		renderer.SetFillColor(opts.Fill)
		renderer.Fill()
	}
	renderer.SetStrokeColor(opts.Stroke)
	renderer.Stroke()

	cadpath.Logger().Debug("rasterized drawing", "width", w, "height", h, "dpi", opts.DPI)
	return img, nil
}

// WritePNG encodes img as a PNG image.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
