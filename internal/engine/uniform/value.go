// Package uniform holds typed shader uniform values and layered uniform sets.
package uniform

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ron/internal/engine/gpu"
	"github.com/Faultbox/ron/internal/engine/resource"
)

// Kind is the type tag of a Value.
type Kind uint8

const (
	Invalid Kind = iota
	Float1
	Float2
	Float3
	Float4
	Int1
	Int2
	Int3
	Int4
	Uint1
	Uint2
	Uint3
	Uint4
	// Matrix kinds use GLSL naming: MatCxR has C columns and R rows.
	Mat2
	Mat3
	Mat4
	Mat2x3
	Mat3x2
	Mat2x4
	Mat4x2
	Mat3x4
	Mat4x3
	// Texture references a CPU texture resolved through the texture cache.
	Texture
	// GPUTexture references an already uploaded texture handle.
	GPUTexture
)

var kindNames = [...]string{
	Invalid: "invalid",
	Float1:  "float", Float2: "vec2", Float3: "vec3", Float4: "vec4",
	Int1: "int", Int2: "ivec2", Int3: "ivec3", Int4: "ivec4",
	Uint1: "uint", Uint2: "uvec2", Uint3: "uvec3", Uint4: "uvec4",
	Mat2: "mat2", Mat3: "mat3", Mat4: "mat4",
	Mat2x3: "mat2x3", Mat3x2: "mat3x2", Mat2x4: "mat2x4",
	Mat4x2: "mat4x2", Mat3x4: "mat3x4", Mat4x3: "mat4x3",
	Texture: "texture", GPUTexture: "gpu texture",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// MatrixDims returns columns and rows for matrix kinds, zeros otherwise.
func (k Kind) MatrixDims() (cols, rows int) {
	switch k {
	case Mat2:
		return 2, 2
	case Mat3:
		return 3, 3
	case Mat4:
		return 4, 4
	case Mat2x3:
		return 2, 3
	case Mat3x2:
		return 3, 2
	case Mat2x4:
		return 2, 4
	case Mat4x2:
		return 4, 2
	case Mat3x4:
		return 3, 4
	case Mat4x3:
		return 4, 3
	}
	return 0, 0
}

// Value is one typed uniform value. The zero Value is Invalid.
type Value struct {
	kind Kind
	n    int
	f    [16]float32
	i    [4]int32
	u    [4]uint32
	tex  *resource.Texture
	gtex gpu.Texture
}

func floats(k Kind, v ...float32) Value {
	val := Value{kind: k, n: len(v)}
	copy(val.f[:], v)
	return val
}

func Float(v float32) Value        { return floats(Float1, v) }
func Vec2(v mgl32.Vec2) Value      { return floats(Float2, v[:]...) }
func Vec3(v mgl32.Vec3) Value      { return floats(Float3, v[:]...) }
func Vec4(v mgl32.Vec4) Value      { return floats(Float4, v[:]...) }
func Mat2Value(m mgl32.Mat2) Value { return floats(Mat2, m[:]...) }
func Mat3Value(m mgl32.Mat3) Value { return floats(Mat3, m[:]...) }
func Mat4Value(m mgl32.Mat4) Value { return floats(Mat4, m[:]...) }

// mgl32 names matrices rows x columns, GLSL columns x rows; the memory
// layout is column-major in both.
func Mat2x3Value(m mgl32.Mat3x2) Value { return floats(Mat2x3, m[:]...) }
func Mat3x2Value(m mgl32.Mat2x3) Value { return floats(Mat3x2, m[:]...) }
func Mat2x4Value(m mgl32.Mat4x2) Value { return floats(Mat2x4, m[:]...) }
func Mat4x2Value(m mgl32.Mat2x4) Value { return floats(Mat4x2, m[:]...) }
func Mat3x4Value(m mgl32.Mat4x3) Value { return floats(Mat3x4, m[:]...) }
func Mat4x3Value(m mgl32.Mat3x4) Value { return floats(Mat4x3, m[:]...) }

// Int builds an int, ivec2, ivec3 or ivec4 from 1 to 4 components.
func Int(v ...int32) Value {
	if len(v) < 1 || len(v) > 4 {
		panic(fmt.Sprintf("uniform: %d int components", len(v)))
	}
	val := Value{kind: Int1 + Kind(len(v)-1), n: len(v)}
	copy(val.i[:], v)
	return val
}

// Uint builds a uint, uvec2, uvec3 or uvec4 from 1 to 4 components.
func Uint(v ...uint32) Value {
	if len(v) < 1 || len(v) > 4 {
		panic(fmt.Sprintf("uniform: %d uint components", len(v)))
	}
	val := Value{kind: Uint1 + Kind(len(v)-1), n: len(v)}
	copy(val.u[:], v)
	return val
}

// TextureValue references a CPU texture.
func TextureValue(t *resource.Texture) Value {
	return Value{kind: Texture, tex: t}
}

// GPUTextureValue references an uploaded texture, bypassing the cache.
func GPUTextureValue(t gpu.Texture) Value {
	return Value{kind: GPUTexture, gtex: t}
}

func (v Value) Kind() Kind { return v.kind }

// Floats returns the components of float vector and matrix kinds.
func (v Value) Floats() []float32 {
	if v.kind >= Float1 && v.kind <= Float4 || v.kind >= Mat2 && v.kind <= Mat4x3 {
		return v.f[:v.n]
	}
	return nil
}

// Ints returns the components of int kinds.
func (v Value) Ints() []int32 {
	if v.kind >= Int1 && v.kind <= Int4 {
		return v.i[:v.n]
	}
	return nil
}

// Uints returns the components of uint kinds.
func (v Value) Uints() []uint32 {
	if v.kind >= Uint1 && v.kind <= Uint4 {
		return v.u[:v.n]
	}
	return nil
}

// Texture returns the referenced CPU texture for Texture values.
func (v Value) Texture() *resource.Texture {
	if v.kind == Texture {
		return v.tex
	}
	return nil
}

// GPUTexture returns the handle for GPUTexture values.
func (v Value) GPUTexture() gpu.Texture {
	if v.kind == GPUTexture {
		return v.gtex
	}
	return 0
}

func (v Value) String() string {
	switch {
	case v.kind == Texture:
		if v.tex == nil {
			return "texture(nil)"
		}
		return fmt.Sprintf("texture(%s)", v.tex.Name())
	case v.kind == GPUTexture:
		return fmt.Sprintf("gpu texture(%d)", v.gtex)
	case v.Ints() != nil:
		return fmt.Sprintf("%s%v", v.kind, v.Ints())
	case v.Uints() != nil:
		return fmt.Sprintf("%s%v", v.kind, v.Uints())
	}
	return fmt.Sprintf("%s%v", v.kind, v.Floats())
}
