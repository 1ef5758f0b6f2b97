package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialUniform is the GPU-aligned uniform for the drift fragment shader.
// Matches the WGSL MaterialUniform struct layout exactly.
// Size: 16 bytes (one vec4<f32>).
type GPUMaterialUniform struct {
	Color [4]float32 // offset 0: RGBA color written to every fragment before fog (16 bytes)
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Color[3]))
	return buf
}

// Uniform converts a snapshot into its GPU layout.
//
// Parameters:
//   - p: the material parameters
//
// Returns:
//   - GPUMaterialUniform: the uniform data
func Uniform(p Params) GPUMaterialUniform {
	return GPUMaterialUniform{Color: p.RGBA()}
}
