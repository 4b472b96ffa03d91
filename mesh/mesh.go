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

/*Package mesh converts height grids into closed triangulated solids
suitable for 3D printing: a terrain top surface, a flat bottom, and side
walls, for the full grid or for an arbitrary mask-selected sub-region.*/
package mesh

import (
	"fmt"
	"math"

	"github.com/spatialrelief/relief"
)

// Vec3 is a single-precision position or direction.
type Vec3 [3]float32

// Triangle is one face of a solid: a facet normal and three vertices in
// counterclockwise order when viewed from outside.
type Triangle struct {
	Normal   Vec3
	Vertices [3]Vec3
}

// Options control the vertical shaping of a generated solid.
type Options struct {
	// ZScaling multiplies relative elevation. The effective scale is
	// ZScaling * xRes / xRange, so exaggeration is expressed relative to
	// horizontal grid units: 1.0 keeps terrain proportional to the grid.
	ZScaling float64
	// BaseThickness is added below the terrain surface, in grid units,
	// to keep thin valleys printable.
	BaseThickness float32
}

var (
	up    = Vec3{0, 0, 1}
	down  = Vec3{0, 0, -1}
	xPos  = Vec3{1, 0, 0}
	xNeg  = Vec3{-1, 0, 0}
	yPos  = Vec3{0, 1, 0}
	yNeg  = Vec3{0, -1, 0}
)

// quadTriangles splits the quad v1 v2 v3 v4 (passed in winding order)
// into two triangles along the v2-v4 diagonal. It is shared by the
// masked and unmasked paths: any nil vertex means the quad is not fully
// present and no triangles are produced.
func quadTriangles(v1, v2, v3, v4 *Vec3, normal Vec3) ([2]Triangle, bool) {
	if v1 == nil || v2 == nil || v3 == nil || v4 == nil {
		return [2]Triangle{}, false
	}
	return [2]Triangle{
		{Normal: normal, Vertices: [3]Vec3{*v1, *v2, *v4}},
		{Normal: normal, Vertices: [3]Vec3{*v2, *v3, *v4}},
	}, true
}

// clampHeight maps non-finite or negative relative elevations to zero,
// a defensive floor against degenerate input data.
func clampHeight(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// vertexGrids builds the top and bottom vertex arrays for hm. When m is
// non-nil, cells outside the mask get no vertex (nil) rather than a
// sentinel height.
func vertexGrids(hm *relief.HeightMap, m *relief.Mask, o Options) (top, bottom []*Vec3) {
	zScale := o.ZScaling * float64(hm.XRes) / hm.Bounds.XRange()
	top = make([]*Vec3, len(hm.Data.Elements))
	bottom = make([]*Vec3, len(hm.Data.Elements))
	for i, h := range hm.Data.Elements {
		if m != nil && !m.Data[i] {
			continue
		}
		x := float32(i % hm.XRes)
		y := float32(i / hm.XRes)
		z := float32(clampHeight(h-hm.Bounds.MinZ)*zScale) + o.BaseThickness
		top[i] = &Vec3{x, y, z}
		bottom[i] = &Vec3{x, y, 0}
	}
	return top, bottom
}

func checkGrid(hm *relief.HeightMap) error {
	if hm.XRes < 2 || hm.YRes < 2 {
		return fmt.Errorf("mesh: grid %d x %d is too small to mesh; both axes need at least 2 cells", hm.XRes, hm.YRes)
	}
	return nil
}

// Solid triangulates the whole height grid into a watertight solid: a
// terrain top, a flat bottom at z=0, and one wall along each of the four
// grid edges.
func Solid(hm *relief.HeightMap, o Options) ([]Triangle, error) {
	if err := checkGrid(hm); err != nil {
		return nil, err
	}
	top, bottom := vertexGrids(hm, nil, o)
	at := func(vs []*Vec3, x, y int) *Vec3 { return vs[y*hm.XRes+x] }

	nx, ny := hm.XRes, hm.YRes
	tris := make([]Triangle, 0, 4*(nx-1)*(ny-1)+4*(nx-1)+4*(ny-1))
	appendQuad := func(v1, v2, v3, v4 *Vec3, n Vec3) {
		// Vertices are always present on the unmasked path.
		q, _ := quadTriangles(v1, v2, v3, v4, n)
		tris = append(tris, q[0], q[1])
	}

	for x := 0; x < nx-1; x++ {
		for y := 0; y < ny-1; y++ {
			appendQuad(at(top, x, y), at(top, x, y+1), at(top, x+1, y+1), at(top, x+1, y), up)
			appendQuad(at(bottom, x+1, y), at(bottom, x+1, y+1), at(bottom, x, y+1), at(bottom, x, y), down)
		}
	}
	for x := 0; x < nx-1; x++ {
		// wall along the y = ny-1 edge, facing +y
		appendQuad(at(top, x+1, ny-1), at(top, x, ny-1), at(bottom, x, ny-1), at(bottom, x+1, ny-1), yPos)
		// wall along the y = 0 edge, facing -y
		appendQuad(at(top, x, 0), at(top, x+1, 0), at(bottom, x+1, 0), at(bottom, x, 0), yNeg)
	}
	for y := 0; y < ny-1; y++ {
		// wall along the x = nx-1 edge, facing +x
		appendQuad(at(top, nx-1, y+1), at(top, nx-1, y), at(bottom, nx-1, y), at(bottom, nx-1, y+1), xPos)
		// wall along the x = 0 edge, facing -x
		appendQuad(at(top, 0, y), at(top, 0, y+1), at(bottom, 0, y+1), at(bottom, 0, y), xNeg)
	}
	return tris, nil
}

// SolidMasked triangulates only the mask-selected region of the height
// grid into a closed solid. Top and bottom faces are emitted for quads
// whose four corner cells are all selected; side walls follow the
// selection boundary wherever it falls: the outer perimeter, interior
// holes, and between disconnected islands alike.
func SolidMasked(hm *relief.HeightMap, m *relief.Mask, o Options) ([]Triangle, error) {
	if err := checkGrid(hm); err != nil {
		return nil, err
	}
	if err := m.CompatibleWith(hm.XRes, hm.YRes, hm.Bounds); err != nil {
		return nil, err
	}
	top, bottom := vertexGrids(hm, m, o)
	at := func(vs []*Vec3, x, y int) *Vec3 { return vs[y*hm.XRes+x] }

	var tris []Triangle
	for x := 0; x < hm.XRes-1; x++ {
		for y := 0; y < hm.YRes-1; y++ {
			if q, ok := quadTriangles(at(top, x, y), at(top, x, y+1), at(top, x+1, y+1), at(top, x+1, y), up); ok {
				tris = append(tris, q[0], q[1])
			}
			if q, ok := quadTriangles(at(bottom, x+1, y), at(bottom, x+1, y+1), at(bottom, x, y+1), at(bottom, x, y), down); ok {
				tris = append(tris, q[0], q[1])
			}
		}
	}

	h := newBoundaryMask(m)
	wall := func(e [2]int, v1, v2, v3, v4 *Vec3, n Vec3) error {
		q, ok := quadTriangles(v1, v2, v3, v4, n)
		if !ok {
			// The boundary mask is derived from the same mask that placed
			// the vertices, so a missing vertex here is a logic defect,
			// not bad input.
			return fmt.Errorf("mesh: side wall at boundary cell (%d, %d) references a missing vertex", e[0], e[1])
		}
		tris = append(tris, q[0], q[1])
		return nil
	}

	for _, e := range h.edges(1, 0) {
		if err := wall(e, at(top, e[0]+1, e[1]+1), at(top, e[0]+1, e[1]), at(bottom, e[0]+1, e[1]), at(bottom, e[0]+1, e[1]+1), xPos); err != nil {
			return nil, err
		}
	}
	for _, e := range h.edges(-1, 0) {
		if err := wall(e, at(top, e[0], e[1]), at(top, e[0], e[1]+1), at(bottom, e[0], e[1]+1), at(bottom, e[0], e[1]), xNeg); err != nil {
			return nil, err
		}
	}
	for _, e := range h.edges(0, 1) {
		if err := wall(e, at(top, e[0]+1, e[1]+1), at(top, e[0], e[1]+1), at(bottom, e[0], e[1]+1), at(bottom, e[0]+1, e[1]+1), yPos); err != nil {
			return nil, err
		}
	}
	for _, e := range h.edges(0, -1) {
		if err := wall(e, at(top, e[0], e[1]), at(top, e[0]+1, e[1]), at(bottom, e[0]+1, e[1]), at(bottom, e[0], e[1]), yNeg); err != nil {
			return nil, err
		}
	}
	return tris, nil
}

// boundaryMask is the mask shrunk by one cell per axis: cell (x, y) is
// true only when the 2x2 block of mask cells starting there is fully
// selected, which is exactly the condition for the quad at (x, y) to
// have all four corner vertices. Scanning it for true cells with a false neighbor
// in a cardinal direction yields the quad edges that need side walls.
type boundaryMask struct {
	data       []bool
	xRes, yRes int
}

func newBoundaryMask(m *relief.Mask) *boundaryMask {
	h := &boundaryMask{
		data: make([]bool, (m.XRes-1)*(m.YRes-1)),
		xRes: m.XRes - 1,
		yRes: m.YRes - 1,
	}
	for y := 0; y < h.yRes; y++ {
		for x := 0; x < h.xRes; x++ {
			n := m.Neighbors(x, y)
			h.data[y*h.xRes+x] = n[4] && n[5] && n[7] && n[8]
		}
	}
	return h
}

func (h *boundaryMask) at(x, y int) bool {
	if x < 0 || y < 0 || x >= h.xRes || y >= h.yRes {
		return false
	}
	return h.data[y*h.xRes+x]
}

// edges returns the cells that are true but whose neighbor in direction
// (dx, dy) is false, off-grid counting as false.
func (h *boundaryMask) edges(dx, dy int) [][2]int {
	var out [][2]int
	for y := 0; y < h.yRes; y++ {
		for x := 0; x < h.xRes; x++ {
			if h.at(x, y) && !h.at(x+dx, y+dy) {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}
