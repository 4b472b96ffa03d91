/*
Copyright © 2025 the Relief authors.
This file is part of Relief.

Relief is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Relief is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Relief.  If not, see <http://www.gnu.org/licenses/>.
*/

package plot

import (
	"fmt"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/spatialrelief/relief"
)

// Profile saves an elevation cross-section of one grid row to path. The
// x axis is planar easting, the y axis elevation, so exaggeration and
// base-thickness choices can be eyeballed before committing to a mesh.
func Profile(h *relief.HeightMap, row int, path string) error {
	if row < 0 || row >= h.YRes {
		return fmt.Errorf("plot: row %d out of range 0..%d", row, h.YRes-1)
	}
	xTick, _ := h.Ticks()
	pts := make(XYs, h.XRes)
	for x := 0; x < h.XRes; x++ {
		v, err := h.Get(x, row)
		if err != nil {
			return err
		}
		pts[x] = XY{X: h.Bounds.MinX + float64(x)*xTick, Y: v}
	}

	p := gplot.New()
	p.Title.Text = fmt.Sprintf("elevation profile, row %d", row)
	p.X.Label.Text = "easting (m)"
	p.Y.Label.Text = "elevation (m)"
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plot: building profile line: %w", err)
	}
	p.Add(line)
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: saving profile: %w", err)
	}
	return nil
}
