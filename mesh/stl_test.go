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
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func testTriangles() []Triangle {
	return []Triangle{
		{Normal: up, Vertices: [3]Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
		{Normal: down, Vertices: [3]Vec3{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}}},
		{Normal: xPos, Vertices: [3]Vec3{{1, 0, 0}, {1, 1, 0}, {1, 0, 1}}},
	}
}

func TestEncode(t *testing.T) {
	tris := testTriangles()
	var buf bytes.Buffer
	if err := Encode(&buf, tris); err != nil {
		t.Fatal(err)
	}
	want := 84 + 50*len(tris)
	if buf.Len() != want {
		t.Errorf("encoded size: got %d bytes, want %d", buf.Len(), want)
	}
	count := binary.LittleEndian.Uint32(buf.Bytes()[80:84])
	if int(count) != len(tris) {
		t.Errorf("triangle count field: got %d, want %d", count, len(tris))
	}
	// The first facet's normal starts right after the count.
	var nx float32
	if err := binary.Read(bytes.NewReader(buf.Bytes()[84:88]), binary.LittleEndian, &nx); err != nil {
		t.Fatal(err)
	}
	if nx != up[0] {
		t.Errorf("first normal x: got %g, want %g", nx, up[0])
	}
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 84 {
		t.Errorf("got %d bytes, want 84", buf.Len())
	}
}

func TestWriteRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.stl")
	if err := Write(path, testTriangles()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(84 + 50*len(testTriangles())); info.Size() != want {
		t.Errorf("file size: got %d, want %d", info.Size(), want)
	}
	if err := Write(path, testTriangles()); err == nil {
		t.Error("second write to the same path: got nil error")
	}
}
