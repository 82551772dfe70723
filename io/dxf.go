package io

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/magsim/helmgo/geom"
)

// WriteWindingsDXF draws every winding as a chain of LINE entities, one
// layer per coil, so the generated geometry can be inspected in CAD
// before anything is wound.
func WriteWindingsDXF(fname string, windings []*geom.Polyline) error {
	d := dxf.NewDrawing()

	for i, w := range windings {
		layer := fmt.Sprintf("COIL_%d", i)
		if _, err := d.AddLayer(
			layer, dxf.DefaultColor, dxf.DefaultLineType, true,
		); err != nil {
			return err
		}

		pts := []geom.Vec{}
		for g := range w.Groups {
			pts = append(pts, w.Groups[g]...)
		}
		for j := range pts {
			p, q := pts[j], pts[(j+1)%len(pts)]
			_, err := d.Line(p[0], p[1], p[2], q[0], q[1], q[2])
			if err != nil {
				return err
			}
		}
	}

	return d.SaveAs(fname)
}
