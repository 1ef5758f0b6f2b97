package model

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape names one of the built-in polyhedra.
type Shape int

const (
	ShapeIcosahedron Shape = iota
	ShapeOctahedron
	ShapeTetrahedron
)

func (s Shape) String() string {
	switch s {
	case ShapeIcosahedron:
		return "icosahedron"
	case ShapeOctahedron:
		return "octahedron"
	case ShapeTetrahedron:
		return "tetrahedron"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape maps a shape name to its Shape.
//
// Parameters:
//   - name: one of "icosahedron", "octahedron", "tetrahedron"
//
// Returns:
//   - Shape: the matching shape
//   - error: error if the name is not recognized
func ParseShape(name string) (Shape, error) {
	for _, s := range []Shape{ShapeIcosahedron, ShapeOctahedron, ShapeTetrahedron} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

// polyhedron holds unit-direction corner points and CCW triangle faces.
type polyhedron struct {
	points [][3]float32
	faces  []uint32
}

var phi = float32((1 + math.Sqrt(5)) / 2)

var polyhedra = map[Shape]polyhedron{
	ShapeIcosahedron: {
		points: [][3]float32{
			{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
			{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
			{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
		},
		faces: []uint32{
			0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
			1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
			3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
			4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
		},
	},
	ShapeOctahedron: {
		points: [][3]float32{
			{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
		},
		faces: []uint32{
			0, 2, 4, 0, 4, 3, 0, 3, 5, 0, 5, 2,
			1, 2, 5, 1, 5, 3, 1, 3, 4, 1, 4, 2,
		},
	},
	ShapeTetrahedron: {
		points: [][3]float32{
			{1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}, {1, -1, -1},
		},
		faces: []uint32{
			2, 1, 0, 0, 3, 2, 1, 3, 0, 2, 3, 1,
		},
	},
}

// projectToRadius scales every point onto the sphere of the given radius.
func projectToRadius(points [][3]float32, radius float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(points))
	for i, p := range points {
		out[i] = mgl32.Vec3(p).Normalize().Mul(radius)
	}
	return out
}

// uniqueEdges returns a line-list index buffer with each undirected edge of the
// triangle list exactly once, in order of first appearance.
func uniqueEdges(triangles []uint32) []uint32 {
	seen := make(map[[2]uint32]struct{}, len(triangles))
	edges := make([]uint32, 0, len(triangles))
	for f := 0; f+2 < len(triangles); f += 3 {
		tri := [3]uint32{triangles[f], triangles[f+1], triangles[f+2]}
		for i := range 3 {
			a, b := tri[i], tri[(i+1)%3]
			key := [2]uint32{min(a, b), max(a, b)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, a, b)
		}
	}
	return edges
}
