// Command cad2path converts a CAD drawing, given as an entity document,
// to a normalized vector path with its physical size, and optionally
// writes it as SVG, PNG or PDF.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/cadpath/cadcache"
	"github.com/benoitkugler/cadpath/caddoc"
	"github.com/benoitkugler/cadpath/cadpath"
	"github.com/benoitkugler/cadpath/cadpdf"
	"github.com/benoitkugler/cadpath/cadraster"
	"github.com/benoitkugler/cadpath/cadsvg"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "cad2path:", err)
		os.Exit(1)
	}
}

type outputs struct {
	svg, png, pdf string
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cad2path", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configFile = fs.String("config", "", "TOML configuration `file`")
		units      = fs.String("units", "", "drawing unit name, overriding the drawing header")
		scale      = fs.Float64("scale", 0, "inches per drawing unit, overriding -units")
		bounds     = fs.String("bounds", "", "bounds mode: exact or endpoints")
		encoding   = fs.String("encoding", "", "character set of the drawing document")
		strict     = fs.Bool("strict", false, "fail on unsupported entities")
		dpi        = fs.Float64("dpi", 0, "resolution of the PNG preview")
		cacheFile  = fs.String("cache", "", "sqlite `file` memoizing conversions")
		verbose    = fs.Bool("v", false, "log debug messages")
		out        outputs
	)
	fs.StringVar(&out.svg, "svg", "", "write an SVG document to `file`")
	fs.StringVar(&out.png, "png", "", "write a PNG preview to `file`")
	fs.StringVar(&out.pdf, "pdf", "", "write a PDF document to `file`")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: cad2path [flags] drawing.yaml")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one drawing, got %d arguments", fs.NArg())
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	cadpath.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer cadpath.SetLogger(nil)

	var cfg config
	if *configFile != "" {
		var err error
		cfg, err = loadConfig(*configFile)
		if err != nil {
			return err
		}
	}
	// flags take precedence over the configuration file
	if *units != "" {
		cfg.Units, cfg.UnitScale = *units, 0
	}
	if *scale != 0 {
		cfg.UnitScale = *scale
	}
	if *bounds != "" {
		cfg.Bounds = *bounds
	}
	if *encoding != "" {
		cfg.Encoding = *encoding
	}
	if *strict {
		cfg.ErrorMode = "strict"
	}
	if *dpi != 0 {
		cfg.Preview.DPI = *dpi
	}
	if *cacheFile != "" {
		cfg.Cache = *cacheFile
	}

	return convert(fs.Arg(0), cfg, out, stdout)
}

func convert(file string, cfg config, out outputs, stdout io.Writer) error {
	mode, err := parseBounds(cfg.Bounds)
	if err != nil {
		return err
	}
	errMode, err := parseErrorMode(cfg.ErrorMode)
	if err != nil {
		return err
	}
	drawing, err := caddoc.ReadDrawing(file, caddoc.Options{ErrorMode: errMode, Encoding: cfg.Encoding})
	if err != nil {
		return err
	}
	unitScale, err := cfg.unitScale(drawing)
	if err != nil {
		return err
	}

	opts := cadpath.Options{Bounds: mode}
	var res cadpath.Result
	if cfg.Cache != "" {
		cache, err := cadcache.Open(cfg.Cache)
		if err != nil {
			return err
		}
		defer cache.Close()
		res, err = cache.Convert(drawing.Entities, unitScale, opts)
		if err != nil {
			return err
		}
	} else {
		res, err = cadpath.ConvertWithOptions(drawing.Entities, unitScale, opts)
		if err != nil {
			return err
		}
	}

	if out == (outputs{}) {
		fmt.Fprintf(stdout, "width_in: %.4f\nheight_in: %.4f\npath: %s\n", res.WidthIn, res.HeightIn, res.Path.ToSVGPath())
		return nil
	}
	if out.svg != "" {
		err := writeFile(out.svg, func(w io.Writer) error {
			return cadsvg.WriteDocument(w, res, cadsvg.Options{Title: file})
		})
		if err != nil {
			return err
		}
	}
	if out.png != "" {
		img, err := cadraster.Rasterize(res, cadraster.Options{DPI: cfg.Preview.DPI, StrokeWidth: cfg.Preview.StrokeWidth})
		if err != nil {
			return err
		}
		if err := writeFile(out.png, func(w io.Writer) error { return cadraster.WritePNG(w, img) }); err != nil {
			return err
		}
	}
	if out.pdf != "" {
		err := writeFile(out.pdf, func(w io.Writer) error {
			return cadpdf.Write(w, res, cadpdf.Options{
				MarginIn:    cfg.PDF.MarginIn,
				LineWidthPt: cfg.PDF.LineWidthPt,
				Title:       file,
			})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(name string, write func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}
