package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertex is the GPU-aligned representation of a single polyhedron vertex.
// Matches the `@location(0) position: vec3<f32>` vertex input of the drift shader.
// Size: 12 bytes.
type GPUVertex struct {
	Position [3]float32 // offset 0: vertex position in model space (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 12-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	return buf
}

// GPUInstance is the per-instance model matrix fed to the drift shader as four vec4 attributes
// (locations 1 through 4). The outline and fill draws of a drifter read the same instance.
// Size: 64 bytes.
type GPUInstance struct {
	Model [16]float32 // offset 0: column-major model-to-world matrix (64 bytes)
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	return buf
}

// MarshalVertices packs positions into a tightly packed GPUVertex buffer.
//
// Parameters:
//   - vertices: model-space positions
//
// Returns:
//   - []byte: len(vertices)*12 bytes
func MarshalVertices(vertices []mgl32.Vec3) []byte {
	buf := make([]byte, 0, len(vertices)*12)
	for _, v := range vertices {
		g := GPUVertex{Position: v}
		buf = append(buf, g.Marshal()...)
	}
	return buf
}

// MarshalIndices packs uint32 indices little-endian.
//
// Parameters:
//   - indices: index list
//
// Returns:
//   - []byte: len(indices)*4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], idx)
	}
	return buf
}

// MarshalInstances packs model matrices into a GPUInstance buffer.
//
// Parameters:
//   - models: one model matrix per instance
//
// Returns:
//   - []byte: len(models)*64 bytes
func MarshalInstances(models []mgl32.Mat4) []byte {
	buf := make([]byte, 0, len(models)*64)
	for _, m := range models {
		g := GPUInstance{Model: m}
		buf = append(buf, g.Marshal()...)
	}
	return buf
}
