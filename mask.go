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

package relief

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	log "github.com/sirupsen/logrus"
)

// A Mask is a boolean grid sharing the geometry of a height map. True
// cells select where masked operations (elevation offsets, masked mesh
// generation) apply. Masks are built once per run by stamping points,
// rasterizing trails and polygons, and combining with set algebra, so
// the rasterizers favor simplicity over speed.
type Mask struct {
	Data         []bool
	XRes, YRes   int
	xTick, yTick float64
	Bounds       Extent
}

// NewMask returns an all-false mask at the given resolution over bounds.
// Both resolutions must be at least 2 so cell sizes are well defined.
func NewMask(xRes, yRes int, bounds Extent) (*Mask, error) {
	if xRes < 2 || yRes < 2 {
		return nil, fmt.Errorf("relief: mask resolution %d x %d is too small; both axes need at least 2 cells", xRes, yRes)
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("relief: mask bounds are empty: %v", bounds)
	}
	xTick := bounds.XRange() / float64(xRes-1)
	yTick := bounds.YRange() / float64(yRes-1)
	if !tickValid(xTick) || !tickValid(yTick) {
		return nil, fmt.Errorf("relief: degenerate mask cell size %g x %g for bounds %v", xTick, yTick, bounds)
	}
	return &Mask{
		Data:   make([]bool, xRes*yRes),
		XRes:   xRes,
		YRes:   yRes,
		xTick:  xTick,
		yTick:  yTick,
		Bounds: bounds,
	}, nil
}

// NewMaskFor returns an all-false mask sharing the geometry of hm, which
// guarantees the two can be combined later.
func NewMaskFor(hm *HeightMap) (*Mask, error) {
	return NewMask(hm.XRes, hm.YRes, hm.Bounds)
}

// Ticks returns the cell size along each axis.
func (m *Mask) Ticks() (xTick, yTick float64) { return m.xTick, m.yTick }

// CompatibleWith checks that the mask shares the given grid geometry.
// Pairwise operations require identical resolution and bounds; two
// independently built grids can coincide, so this is a runtime check
// rather than a type-level one.
func (m *Mask) CompatibleWith(xRes, yRes int, bounds Extent) error {
	if m.XRes != xRes || m.YRes != yRes || m.Bounds != bounds {
		return &GeometryError{
			XRes: m.XRes, YRes: m.YRes, Bounds: m.Bounds,
			OtherXRes: xRes, OtherYRes: yRes, OtherBounds: bounds,
		}
	}
	return nil
}

// Get returns the cell at storage coordinates (x, y); row 0 is north.
func (m *Mask) Get(x, y int) (bool, error) {
	i, err := Index(m.XRes, m.YRes, x, y)
	if err != nil {
		return false, err
	}
	return m.Data[i], nil
}

// CountTrue returns the number of selected cells.
func (m *Mask) CountTrue() int {
	n := 0
	for _, v := range m.Data {
		if v {
			n++
		}
	}
	return n
}

// DiskDeltas returns the integer offsets (dx, dy) with dx*dx+dy*dy no
// greater than radius squared: a filled circle around the origin,
// boundary included. The shape is
// computed once per radius and reused across many stamped points.
func DiskDeltas(radius int) [][2]int {
	if radius < 0 {
		radius = 0
	}
	deltas := make([][2]int, 0, (2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx*dx+dy*dy <= radius*radius {
				deltas = append(deltas, [2]int{dx, dy})
			}
		}
	}
	return deltas
}

// SetWithDeltas sets every cell of a precomputed shape, centered on the
// geographic cell (cx, cy), to state. Offsets that land outside the grid
// are skipped individually; if every offset misses the grid the call
// fails with a *StampError. The row index is inverted at write time so
// row 0 stays the north edge.
func (m *Mask) SetWithDeltas(cx, cy int, state bool, deltas [][2]int) error {
	landed := false
	for _, d := range deltas {
		x := cx + d[0]
		y := cy + d[1]
		if x < 0 || y < 0 || x >= m.XRes || y >= m.YRes {
			log.Debugf("relief: stamp offset (%d, %d) from cell (%d, %d) is off grid; skipping", d[0], d[1], cx, cy)
			continue
		}
		m.Data[(m.YRes-y-1)*m.XRes+x] = state
		landed = true
	}
	if !landed {
		return &StampError{XRes: m.XRes, YRes: m.YRes, X: cx, Y: cy}
	}
	return nil
}

// cellOf converts a planar coordinate to geographic cell coordinates
// (no row inversion; that happens when writing).
func (m *Mask) cellOf(p geom.Point) (cx, cy int) {
	return int(math.Floor((p.X - m.Bounds.MinX) / m.xTick)),
		int(math.Floor((p.Y - m.Bounds.MinY) / m.yTick))
}

// AddPoint stamps one disk of the given cell radius centered on the
// planar coordinate p.
func (m *Mask) AddPoint(p geom.Point, radius int) error {
	cx, cy := m.cellOf(p)
	return m.SetWithDeltas(cx, cy, true, DiskDeltas(radius))
}

// AddPoints stamps a disk at each coordinate, computing the disk shape
// once.
func (m *Mask) AddPoints(points []geom.Point, radius int) error {
	deltas := DiskDeltas(radius)
	for _, p := range points {
		cx, cy := m.cellOf(p)
		if err := m.SetWithDeltas(cx, cy, true, deltas); err != nil {
			return err
		}
	}
	return nil
}

// AddTrail rasterizes a planar polyline as a band of overlapping disk
// stamps. The line is resampled by arc length at a spacing of radius
// cells (minimum one cell), which keeps consecutive stamps touching
// without computing a true polygon buffer. A degenerate line is an
// error.
func (m *Mask) AddTrail(line geom.LineString, radius int) error {
	if len(line) < 2 {
		return fmt.Errorf("relief: trail has %d points; at least 2 are needed to interpolate", len(line))
	}
	length := lineLength(line)
	if length == 0 {
		return fmt.Errorf("relief: trail is degenerate (zero length)")
	}
	avgTick := (m.xTick + m.yTick) / 2
	spacing := float64(radius)
	if spacing < 1 {
		spacing = 1
	}
	segments := int(math.Ceil(length / avgTick / spacing))
	if segments < 1 {
		segments = 1
	}
	deltas := DiskDeltas(radius)
	for i := 0; i <= segments; i++ {
		p := interpolateAt(line, length*float64(i)/float64(segments))
		cx, cy := m.cellOf(p)
		if err := m.SetWithDeltas(cx, cy, true, deltas); err != nil {
			return err
		}
	}
	return nil
}

func lineLength(line geom.LineString) float64 {
	var length float64
	for i := 1; i < len(line); i++ {
		length += math.Hypot(line[i].X-line[i-1].X, line[i].Y-line[i-1].Y)
	}
	return length
}

// interpolateAt returns the point at the given arc-length distance along
// the line, clamping to the endpoints.
func interpolateAt(line geom.LineString, dist float64) geom.Point {
	if dist <= 0 {
		return line[0]
	}
	for i := 1; i < len(line); i++ {
		seg := math.Hypot(line[i].X-line[i-1].X, line[i].Y-line[i-1].Y)
		if dist <= seg && seg > 0 {
			t := dist / seg
			return geom.Point{
				X: line[i-1].X + t*(line[i].X-line[i-1].X),
				Y: line[i-1].Y + t*(line[i].Y-line[i-1].Y),
			}
		}
		dist -= seg
	}
	return line[len(line)-1]
}

// AddFilledPolygon rasterizes a filled planar polygon into the mask. The
// polygon's bounding rectangle is clamped to the grid; a polygon whose
// rectangle misses the grid entirely is an error. Every cell in the
// clamped rectangle is tested for containment of its planar node
// coordinate and OR-ed into the mask. Brute force, but masks are built
// once per run, not per frame.
func (m *Mask) AddFilledPolygon(poly geom.Polygon) error {
	b := poly.Bounds()
	cx0 := int(math.Floor((b.Min.X - m.Bounds.MinX) / m.xTick))
	cx1 := int(math.Ceil((b.Max.X - m.Bounds.MinX) / m.xTick))
	cy0 := int(math.Floor((b.Min.Y - m.Bounds.MinY) / m.yTick))
	cy1 := int(math.Ceil((b.Max.Y - m.Bounds.MinY) / m.yTick))
	if cx1 < 0 || cy1 < 0 || cx0 >= m.XRes || cy0 >= m.YRes {
		return fmt.Errorf("relief: polygon bounds [%g, %g] x [%g, %g] lie outside grid extent %v",
			b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, m.Bounds)
	}
	cx0, cy0 = max(cx0, 0), max(cy0, 0)
	cx1, cy1 = min(cx1, m.XRes-1), min(cy1, m.YRes-1)
	for cy := cy0; cy <= cy1; cy++ {
		py := m.Bounds.MinY + float64(cy)*m.yTick
		row := (m.YRes - cy - 1) * m.XRes
		for cx := cx0; cx <= cx1; cx++ {
			px := m.Bounds.MinX + float64(cx)*m.xTick
			if (geom.Point{X: px, Y: py}).Within(poly) != geom.Outside {
				m.Data[row+cx] = true
			}
		}
	}
	return nil
}

// Union sets m to m OR other. The masks must share geometry.
func (m *Mask) Union(other *Mask) error {
	if err := m.CompatibleWith(other.XRes, other.YRes, other.Bounds); err != nil {
		return err
	}
	m.UnionUnchecked(other)
	return nil
}

// Intersect sets m to m AND other. The masks must share geometry.
func (m *Mask) Intersect(other *Mask) error {
	if err := m.CompatibleWith(other.XRes, other.YRes, other.Bounds); err != nil {
		return err
	}
	m.IntersectUnchecked(other)
	return nil
}

// Xor sets m to m XOR other. The masks must share geometry.
func (m *Mask) Xor(other *Mask) error {
	if err := m.CompatibleWith(other.XRes, other.YRes, other.Bounds); err != nil {
		return err
	}
	m.XorUnchecked(other)
	return nil
}

// Difference clears every cell of m that is set in other. The masks must
// share geometry.
func (m *Mask) Difference(other *Mask) error {
	if err := m.CompatibleWith(other.XRes, other.YRes, other.Bounds); err != nil {
		return err
	}
	m.DifferenceUnchecked(other)
	return nil
}

// The Unchecked combinators are the opt-in fast path: they compare only
// resolutions (panicking on mismatch) and trust the caller to have
// verified that the extents agree. Combining masks over different
// extents silently produces a misaligned result.

// UnionUnchecked is Union without the extent check.
func (m *Mask) UnionUnchecked(other *Mask) {
	m.assertSameResolution(other)
	for i, v := range other.Data {
		m.Data[i] = m.Data[i] || v
	}
}

// IntersectUnchecked is Intersect without the extent check.
func (m *Mask) IntersectUnchecked(other *Mask) {
	m.assertSameResolution(other)
	for i, v := range other.Data {
		m.Data[i] = m.Data[i] && v
	}
}

// XorUnchecked is Xor without the extent check.
func (m *Mask) XorUnchecked(other *Mask) {
	m.assertSameResolution(other)
	for i, v := range other.Data {
		m.Data[i] = m.Data[i] != v
	}
}

// DifferenceUnchecked is Difference without the extent check.
func (m *Mask) DifferenceUnchecked(other *Mask) {
	m.assertSameResolution(other)
	for i, v := range other.Data {
		m.Data[i] = m.Data[i] && !v
	}
}

func (m *Mask) assertSameResolution(other *Mask) {
	if m.XRes != other.XRes || m.YRes != other.YRes {
		panic(fmt.Sprintf("relief: mask resolutions differ: %d x %d vs %d x %d",
			m.XRes, m.YRes, other.XRes, other.YRes))
	}
}

// Invert flips every cell in place.
func (m *Mask) Invert() {
	for i := range m.Data {
		m.Data[i] = !m.Data[i]
	}
}

// Neighbors returns the 3x3 neighborhood around storage cell (x, y),
// including the cell itself, scanned row major: top row to bottom row,
// left to right within each row. Out-of-range neighbors read as false.
// The mesh generator's boundary detection builds on this.
func (m *Mask) Neighbors(x, y int) [9]bool {
	var out [9]bool
	i := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if nx >= 0 && ny >= 0 && nx < m.XRes && ny < m.YRes {
				out[i] = m.Data[ny*m.XRes+nx]
			}
			i++
		}
	}
	return out
}
