package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/clothsim/internal/dynamo"
)

// ExportData bundles a stored run for JSON export.
type ExportData struct {
	Meta   *RunMetadata         `json:"meta"`
	Times  []float64            `json:"times"`
	Series map[string][]float64 `json:"series"`
}

func ExportJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportOBJ writes positions and triangles as a Wavefront OBJ. Vertex
// normals are averaged from adjacent faces.
func ExportOBJ(w io.Writer, positions []float64, triangles []uint32) error {
	if len(positions) == 0 || len(positions)%3 != 0 {
		return fmt.Errorf("obj export: %w", dynamo.ErrNoData)
	}
	n := len(positions) / 3
	normals := vertexNormals(positions, triangles)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# cloth %d vertices %d faces\n", n, len(triangles)/3)
	fmt.Fprintln(bw, "o cloth")
	for k := 0; k < n; k++ {
		fmt.Fprintf(bw, "v %g %g %g\n", positions[k*3], positions[k*3+1], positions[k*3+2])
	}
	for _, nv := range normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", nv.X, nv.Y, nv.Z)
	}
	for t := 0; t+2 < len(triangles); t += 3 {
		a, b, c := triangles[t]+1, triangles[t+1]+1, triangles[t+2]+1
		if int(a) > n || int(b) > n || int(c) > n {
			return fmt.Errorf("obj export: triangle %d: %w", t/3, dynamo.ErrInvalidState)
		}
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	return bw.Flush()
}

func vertexNormals(positions []float64, triangles []uint32) []dynamo.Vec3 {
	n := len(positions) / 3
	at := func(k uint32) dynamo.Vec3 {
		return dynamo.V3(positions[k*3], positions[k*3+1], positions[k*3+2])
	}

	normals := make([]dynamo.Vec3, n)
	for t := 0; t+2 < len(triangles); t += 3 {
		a, b, c := triangles[t], triangles[t+1], triangles[t+2]
		if int(a) >= n || int(b) >= n || int(c) >= n {
			continue
		}
		face := at(b).Sub(at(a)).Cross(at(c).Sub(at(a)))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for k := range normals {
		normals[k] = normals[k].Normalize()
	}
	return normals
}
