package scene

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/lucasb-eyer/go-colorful"
)

// Fog is linear fog: fragments at view depth <= Near keep their color, at >= Far they
// take Color, with a smoothstep in between.
type Fog struct {
	Color colorful.Color
	Near  float32
	Far   float32
}

// Factor returns how much of the fog color applies at a view depth.
//
// Parameters:
//   - depth: distance in front of the camera
//
// Returns:
//   - float32: blend factor in [0, 1]
func (f Fog) Factor(depth float32) float32 {
	return common.Smoothstep(f.Near, f.Far, depth)
}

// GPUFogUniform is the GPU-aligned fog uniform of the drift shader.
// Size: 32 bytes.
type GPUFogUniform struct {
	Color [4]float32 // offset  0: fog color (vec4<f32>)
	Near  float32    // offset 16
	Far   float32    // offset 20
	_pad  [2]float32 // offset 24: padding to 32 bytes
}

// Size returns the size of the GPUFogUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUFogUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFogUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFogUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.Near))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.Far))
	return buf
}

// Uniform converts the fog into its GPU layout.
func (f Fog) Uniform() GPUFogUniform {
	return GPUFogUniform{
		Color: common.RGBA(f.Color, 1),
		Near:  f.Near,
		Far:   f.Far,
	}
}
