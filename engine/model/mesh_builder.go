package model

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithName sets the name of the Mesh.
//
// Parameters:
//   - name: the mesh identifier
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithShape selects the polyhedron to build.
//
// Parameters:
//   - shape: the polyhedron shape
//
// Returns:
//   - MeshBuilderOption: a function that applies the shape option to a mesh
func WithShape(shape Shape) MeshBuilderOption {
	return func(m *mesh) {
		m.shape = shape
	}
}

// WithRadius sets the circumscribed radius.
//
// Parameters:
//   - radius: distance from the origin to every vertex
//
// Returns:
//   - MeshBuilderOption: a function that applies the radius option to a mesh
func WithRadius(radius float32) MeshBuilderOption {
	return func(m *mesh) {
		m.radius = radius
	}
}
