package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name      string
	shape     Shape
	radius    float32
	vertices  []mgl32.Vec3
	triangles []uint32
	edges     []uint32

	vertexData, triangleData, edgeData []byte
}

// Mesh is an immutable polyhedron shared by every drifter in a scene.
// Fills are drawn from the triangle list and outlines from the edge list; both index
// the same vertex array so the two renderables line up exactly.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Shape returns which polyhedron this mesh was built from.
	//
	// Returns:
	//   - Shape: the polyhedron shape
	Shape() Shape

	// Radius returns the circumscribed radius of the mesh.
	//
	// Returns:
	//   - float32: distance from the origin to every vertex
	Radius() float32

	// Vertices returns the vertex positions in model space.
	//
	// Returns:
	//   - []mgl32.Vec3: the vertex positions
	Vertices() []mgl32.Vec3

	// Triangles returns the triangle-list indices (three per face, CCW when viewed from outside).
	//
	// Returns:
	//   - []uint32: the triangle indices
	Triangles() []uint32

	// Edges returns the line-list indices, each undirected edge once.
	//
	// Returns:
	//   - []uint32: the edge indices
	Edges() []uint32

	// VertexData returns the vertex buffer bytes, one GPUVertex per vertex.
	VertexData() []byte

	// TriangleData returns the triangle index buffer bytes.
	TriangleData() []byte

	// EdgeData returns the edge index buffer bytes.
	EdgeData() []byte
}

var _ Mesh = &mesh{}

// NewMesh creates a polyhedron Mesh.
// Defaults to a unit-radius icosahedron.
//
// Parameters:
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the newly created mesh
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &mesh{
		shape:  ShapeIcosahedron,
		radius: 1,
	}
	for _, option := range options {
		option(m)
	}
	if m.name == "" {
		m.name = m.shape.String()
	}

	p, ok := polyhedra[m.shape]
	if !ok {
		p = polyhedra[ShapeIcosahedron]
		m.shape = ShapeIcosahedron
	}
	m.vertices = projectToRadius(p.points, m.radius)
	m.triangles = append([]uint32(nil), p.faces...)
	m.edges = uniqueEdges(m.triangles)

	m.vertexData = MarshalVertices(m.vertices)
	m.triangleData = MarshalIndices(m.triangles)
	m.edgeData = MarshalIndices(m.edges)
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Shape() Shape {
	return m.shape
}

func (m *mesh) Radius() float32 {
	return m.radius
}

func (m *mesh) Vertices() []mgl32.Vec3 {
	return m.vertices
}

func (m *mesh) Triangles() []uint32 {
	return m.triangles
}

func (m *mesh) Edges() []uint32 {
	return m.edges
}

func (m *mesh) VertexData() []byte {
	return m.vertexData
}

func (m *mesh) TriangleData() []byte {
	return m.triangleData
}

func (m *mesh) EdgeData() []byte {
	return m.edgeData
}
