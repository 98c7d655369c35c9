package cadcache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"
	"math"

	"github.com/benoitkugler/cadpath/cadpath"
)

// binary encodings of the conversion inputs (hashed)
// and of the resulting paths (stored)

// version is hashed first, so that changing
// the encodings invalidates the stored entries
const version = 1

var errTruncated = errors.New("truncated path data")

type writer struct {
	w   io.Writer
	buf [8]byte
}

func (w *writer) writeByte(b byte) {
	w.buf[0] = b
	w.w.Write(w.buf[:1])
}

func (w *writer) writeFloat(f float64) {
	binary.LittleEndian.PutUint64(w.buf[:], math.Float64bits(f))
	w.w.Write(w.buf[:])
}

func (w *writer) writePoint(p cadpath.Point) {
	w.writeFloat(p.X)
	w.writeFloat(p.Y)
}

func (w *writer) writePoints(ps []cadpath.Point) {
	binary.LittleEndian.PutUint64(w.buf[:], uint64(len(ps)))
	w.w.Write(w.buf[:])
	for _, p := range ps {
		w.writePoint(p)
	}
}

func encodeParams(h hash.Hash, unitScale float64, opts cadpath.Options) {
	w := writer{w: h}
	w.writeByte(version)
	w.writeFloat(unitScale)
	w.writeByte(byte(opts.Bounds))
}

// encodeEntity writes a tag followed by the fields of e.
// Kinds unknown to cadpath translate to nothing and are not written.
func encodeEntity(h hash.Hash, e cadpath.Entity) {
	w := writer{w: h}
	switch e := e.(type) {
	case cadpath.Line:
		w.writeByte('L')
		w.writePoint(e.Start)
		w.writePoint(e.End)
	case cadpath.Polyline:
		w.writeByte('P')
		if e.Closed {
			w.writeByte(1)
		} else {
			w.writeByte(0)
		}
		binary.LittleEndian.PutUint64(w.buf[:], uint64(len(e.Vertices)))
		w.w.Write(w.buf[:])
		for _, v := range e.Vertices {
			w.writePoint(v.Point)
			w.writeFloat(v.Bulge)
		}
	case cadpath.Arc:
		w.writeByte('A')
		w.writePoint(e.Center)
		w.writeFloat(e.Radius)
		w.writeFloat(e.StartAngle)
		w.writeFloat(e.EndAngle)
	case cadpath.Circle:
		w.writeByte('C')
		w.writePoint(e.Center)
		w.writeFloat(e.Radius)
	case cadpath.Spline:
		w.writeByte('S')
		w.writePoints(e.FitPoints)
		w.writePoints(e.ControlPoints)
	}
}

const (
	tagMove byte = iota
	tagLine
	tagArc
	tagClose
)

func encodePath(p cadpath.Path) []byte {
	out := make([]byte, 0, 17*len(p))
	putFloat := func(f float64) {
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(f))
	}
	for _, op := range p {
		switch op := op.(type) {
		case cadpath.MoveTo:
			out = append(out, tagMove)
			putFloat(op.X)
			putFloat(op.Y)
		case cadpath.LineTo:
			out = append(out, tagLine)
			putFloat(op.X)
			putFloat(op.Y)
		case cadpath.ArcTo:
			var flags byte
			if op.Large {
				flags |= 1
			}
			if op.Sweep {
				flags |= 2
			}
			out = append(out, tagArc, flags)
			putFloat(op.Radius)
			putFloat(op.End.X)
			putFloat(op.End.Y)
		case cadpath.Close:
			out = append(out, tagClose)
		}
	}
	return out
}

func decodePath(data []byte) (cadpath.Path, error) {
	var p cadpath.Path
	readFloats := func(n int) ([]float64, error) {
		if len(data) < 8*n {
			return nil, errTruncated
		}
		fs := make([]float64, n)
		for i := range fs {
			fs[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
		}
		data = data[8*n:]
		return fs, nil
	}
	for len(data) > 0 {
		tag := data[0]
		data = data[1:]
		switch tag {
		case tagMove, tagLine:
			fs, err := readFloats(2)
			if err != nil {
				return nil, err
			}
			if tag == tagMove {
				p = append(p, cadpath.MoveTo{X: fs[0], Y: fs[1]})
			} else {
				p = append(p, cadpath.LineTo{X: fs[0], Y: fs[1]})
			}
		case tagArc:
			if len(data) == 0 {
				return nil, errTruncated
			}
			flags := data[0]
			data = data[1:]
			fs, err := readFloats(3)
			if err != nil {
				return nil, err
			}
			p = append(p, cadpath.ArcTo{
				Radius: fs[0],
				Large:  flags&1 != 0,
				Sweep:  flags&2 != 0,
				End:    cadpath.Point{X: fs[1], Y: fs[2]},
			})
		case tagClose:
			p = append(p, cadpath.Close{})
		default:
			return nil, fmt.Errorf("invalid path command tag %d", tag)
		}
	}
	return p, nil
}
