// Implements a PDF backend to print converted drawings
// at their physical size, by wrapping codeberg.org/go-pdf/fpdf.
package cadpdf

import (
	"fmt"
	"io"
	"math"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/benoitkugler/cadpath/cadpath"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

var _ cadpath.Drawer = (*pather)(nil) // assert interface conformance

// Options tunes the PDF output. The zero value uses half
// an inch margins and a half point black line.
type Options struct {
	MarginIn    float64 // default 0.5
	LineWidthPt float64 // default 0.5
	Title       string
	Creator     string
	// CreationDate is written in the document information,
	// and defaults to the current time.
	CreationDate time.Time
}

func (opts *Options) setDefaults() {
	if opts.MarginIn < 0 || math.IsNaN(opts.MarginIn) {
		opts.MarginIn = 0
	} else if opts.MarginIn == 0 {
		opts.MarginIn = 0.5
	}
	if opts.LineWidthPt <= 0 {
		opts.LineWidthPt = 0.5
	}
	if opts.Creator == "" {
		opts.Creator = "cad2path"
	}
	if opts.CreationDate.IsZero() {
		opts.CreationDate = time.Now()
	}
}

// implements the path commands, and
// tracks the extent of what is drawn
type pather struct {
	pdf     *fpdf.Fpdf
	a       cadpath.Point // current point, used to compute the extent
	extent  rect.Rect     // bounding box of all the drawn paths
	started bool
}

func (p *pather) union(r rect.Rect) {
	if !p.started {
		p.extent = r
		p.started = true
		return
	}
	p.extent = rect.Rect{
		LLx: math.Min(p.extent.LLx, r.LLx),
		LLy: math.Min(p.extent.LLy, r.LLy),
		URx: math.Max(p.extent.URx, r.URx),
		URy: math.Max(p.extent.URy, r.URy),
	}
}

func (p *pather) Start(a cadpath.Point) {
	p.pdf.MoveTo(a.X, a.Y)
	p.a = a
	p.union(rect.Rect{LLx: a.X, LLy: a.Y, URx: a.X, URy: a.Y}) // degenerate case
}

func (p *pather) Line(b cadpath.Point) {
	p.pdf.LineTo(b.X, b.Y)
	p.union(computeBoundingBox(line{p.a, b}))
	p.a = b
}

func (p *pather) CubeBezier(b, c, d cadpath.Point) {
	p.pdf.CurveBezierCubicTo(b.X, b.Y, c.X, c.Y, d.X, d.Y)
	p.union(computeBoundingBox(cubicBezier{p.a, b, c, d}))
	p.a = d
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// extentTolerance is the distance, in inches, the drawn extent may
// exceed the drawing area before a warning is logged
const extentTolerance = 1e-3

// Write renders res as a one page PDF document, whose page is the
// physical size of the drawing plus the margins. The drawing is
// printed at scale 1:1.
func Write(w io.Writer, res cadpath.Result, opts Options) error {
	opts.setDefaults()
	if !(res.UnitScale > 0) || math.IsInf(res.UnitScale, 1) {
		return fmt.Errorf("cadpdf: %w: got %g", cadpath.ErrInvalidUnitScale, res.UnitScale)
	}
	m := opts.MarginIn
	page := fpdf.SizeType{Wd: res.WidthIn + 2*m, Ht: res.HeightIn + 2*m}
	pdf := fpdf.NewCustom(&fpdf.InitType{OrientationStr: "P", UnitStr: "in", Size: page})
	pdf.SetCreator(opts.Creator, true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	pdf.SetCreationDate(opts.CreationDate)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(opts.LineWidthPt / 72)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	p := pather{pdf: pdf}
	// drawing units -> inches, inside the margins
	res.Path.DrawTo(&p, matrix.Scale(res.UnitScale, res.UnitScale).Mul(matrix.Translate(m, m)))
	pdf.DrawPath("D")

	area := rect.Rect{LLx: m, LLy: m, URx: m + res.WidthIn, URy: m + res.HeightIn}
	if p.extent.LLx < area.LLx-extentTolerance || p.extent.LLy < area.LLy-extentTolerance ||
		p.extent.URx > area.URx+extentTolerance || p.extent.URy > area.URy+extentTolerance {
		cadpath.Logger().Warn("drawing exceeds its page area",
			"extent", p.extent, "area", area)
	}
	cadpath.Logger().Debug("wrote pdf", "page_width", page.Wd, "page_height", page.Ht)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
