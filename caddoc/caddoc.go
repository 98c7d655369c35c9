// Provides reading of CAD drawings, as typed entity documents
// produced by a DXF parser. Drawings are read into a list of
// cadpath.Entity, which can then be converted to a normalized path.
package caddoc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/cadpath/cadpath"
	"golang.org/x/net/html/charset"
	"gopkg.in/yaml.v3"
)

// ErrorMode sets how the reader reacts to unsupported entities.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported entities silently
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for each unsupported entity
	WarnErrorMode
	// StrictErrorMode fails on the first unsupported entity
	StrictErrorMode
)

// ErrEmptyDocument is returned for a stream without any document.
var ErrEmptyDocument = errors.New("empty drawing document")

// Options tunes the reading of a drawing. The zero value
// reads UTF-8 documents and ignores unsupported entities.
type Options struct {
	ErrorMode ErrorMode
	// Encoding is the label of the character set of the document,
	// like "windows-1252". Empty means UTF-8.
	Encoding string
}

// Drawing holds the data of a parsed document.
type Drawing struct {
	Units    string // unit name, like "mm", or empty
	InsUnits int    // $INSUNITS header code, or 0
	Entities []cadpath.Entity
}

// UnitScale returns the number of inches per drawing unit,
// from the unit name if present, or the $INSUNITS code.
func (d *Drawing) UnitScale() (float64, error) {
	if d.Units != "" {
		return cadpath.UnitScale(d.Units)
	}
	if d.InsUnits != 0 {
		return cadpath.InsUnitsScale(d.InsUnits)
	}
	return 0, fmt.Errorf("%w: the drawing does not declare its units", cadpath.ErrUnknownUnit)
}

type document struct {
	Units    string      `yaml:"units"`
	InsUnits int         `yaml:"insunits"`
	Entities []yaml.Node `yaml:"entities"`
}

// ReadDrawingStream reads the Drawing from the given io.Reader.
// Only the first document of the stream is read.
func ReadDrawingStream(stream io.Reader, opts Options) (*Drawing, error) {
	if opts.Encoding != "" {
		var err error
		stream, err = charset.NewReaderLabel(opts.Encoding, stream)
		if err != nil {
			return nil, err
		}
	}
	var doc document
	if err := yaml.NewDecoder(stream).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyDocument
		}
		return nil, err
	}

	drawing := &Drawing{Units: doc.Units, InsUnits: doc.InsUnits}
	cursor := entityCursor{errorMode: opts.ErrorMode}
	for i := range doc.Entities {
		e, err := cursor.readEntity(&doc.Entities[i])
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		if e != nil {
			drawing.Entities = append(drawing.Entities, e)
		}
	}
	return drawing, nil
}

// ReadDrawing reads the Drawing from the named file.
func ReadDrawing(file string, opts Options) (*Drawing, error) {
	fin, errf := os.Open(file)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadDrawingStream(fin, opts)
}
