package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/benoitkugler/cadpath/caddoc"
	"github.com/benoitkugler/cadpath/cadpath"
	"github.com/pelletier/go-toml/v2"
)

// config is the content of the optional TOML configuration file.
// Command line flags take precedence.
type config struct {
	Units     string  `toml:"units"`
	UnitScale float64 `toml:"unit_scale"`
	Bounds    string  `toml:"bounds"`
	Encoding  string  `toml:"encoding"`
	ErrorMode string  `toml:"error_mode"`
	Cache     string  `toml:"cache"`

	Preview struct {
		DPI         float64 `toml:"dpi"`
		StrokeWidth float64 `toml:"stroke_width"`
	} `toml:"preview"`

	PDF struct {
		MarginIn    float64 `toml:"margin_in"`
		LineWidthPt float64 `toml:"line_width_pt"`
	} `toml:"pdf"`
}

func loadConfig(file string) (config, error) {
	var cfg config
	f, err := os.Open(file)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration %s: %w", file, err)
	}
	return cfg, nil
}

func parseBounds(s string) (cadpath.BoundsMode, error) {
	switch strings.ToLower(s) {
	case "", "exact":
		return cadpath.ExactBounds, nil
	case "endpoints":
		return cadpath.EndpointBounds, nil
	default:
		return 0, fmt.Errorf("invalid bounds mode %q (expected exact or endpoints)", s)
	}
}

func parseErrorMode(s string) (caddoc.ErrorMode, error) {
	switch strings.ToLower(s) {
	case "", "warn":
		return caddoc.WarnErrorMode, nil
	case "ignore":
		return caddoc.IgnoreErrorMode, nil
	case "strict":
		return caddoc.StrictErrorMode, nil
	default:
		return 0, fmt.Errorf("invalid error mode %q (expected ignore, warn or strict)", s)
	}
}

// unitScale resolves the inches per drawing unit, from the
// configuration first, then from the drawing header.
// Drawings without units are read as inches.
func (cfg config) unitScale(d *caddoc.Drawing) (float64, error) {
	if cfg.UnitScale != 0 {
		return cfg.UnitScale, nil
	}
	if cfg.Units != "" {
		return cadpath.UnitScale(cfg.Units)
	}
	if d.Units == "" && d.InsUnits == 0 {
		cadpath.Logger().Warn("drawing without units, using inches")
		return 1, nil
	}
	return d.UnitScale()
}
