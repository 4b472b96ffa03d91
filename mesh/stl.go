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

package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// stlRecord is one binary STL facet: 50 bytes, little endian.
type stlRecord struct {
	Normal    Vec3
	A, B, C   Vec3
	Attribute uint16
}

// Encode writes the triangles to w in binary STL form: an 80-byte
// header, a uint32 triangle count, and one 50-byte record per facet.
func Encode(w io.Writer, tris []Triangle) error {
	var header [80]byte
	copy(header[:], "relief terrain solid")
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("mesh: writing stl header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(tris))); err != nil {
		return fmt.Errorf("mesh: writing stl triangle count: %w", err)
	}
	for i, t := range tris {
		rec := stlRecord{Normal: t.Normal, A: t.Vertices[0], B: t.Vertices[1], C: t.Vertices[2]}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("mesh: writing stl facet %d: %w", i, err)
		}
	}
	return nil
}

// Write saves the triangles as a binary STL file at path. It refuses to
// overwrite: a file already at path is an error, since a finished mesh
// may represent hours of ingestion work.
func Write(path string, tris []Triangle) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("mesh: creating stl file: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, tris); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("mesh: flushing stl file: %w", err)
	}
	return f.Close()
}
