package renderer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/engine/gpu"
	"github.com/Faultbox/ron/internal/engine/uniform"
	"github.com/Faultbox/ron/internal/logger"
)

// bindUniforms uploads every value of set to the program currently in use.
// Keys are visited in sorted order and each bound texture takes the next
// texture unit starting at 0. Textures without GPU data are skipped without
// consuming a unit.
func (r *Renderer) bindUniforms(prog gpu.Program, set uniform.Set) {
	unit := 0
	for _, name := range set.Keys() {
		v := set[name]
		loc := r.dev.UniformLocation(prog, name)

		switch k := v.Kind(); k {
		case uniform.Float1, uniform.Float2, uniform.Float3, uniform.Float4:
			r.dev.UniformFloat(loc, v.Floats()...)
		case uniform.Int1, uniform.Int2, uniform.Int3, uniform.Int4:
			r.dev.UniformInt(loc, v.Ints()...)
		case uniform.Uint1, uniform.Uint2, uniform.Uint3, uniform.Uint4:
			r.dev.UniformUint(loc, v.Uints()...)
		case uniform.Mat2, uniform.Mat3, uniform.Mat4,
			uniform.Mat2x3, uniform.Mat3x2, uniform.Mat2x4,
			uniform.Mat4x2, uniform.Mat3x4, uniform.Mat4x3:
			cols, rows := k.MatrixDims()
			r.dev.UniformMatrix(loc, cols, rows, v.Floats())
		case uniform.Texture:
			t := v.Texture()
			if t == nil {
				continue
			}
			if h := r.TextureGPUData(t).Texture; h != 0 {
				r.bindTextureUnit(loc, unit, h)
				unit++
			}
		case uniform.GPUTexture:
			if h := v.GPUTexture(); h != 0 {
				r.bindTextureUnit(loc, unit, h)
				unit++
			}
		default:
			logger.Debug("skipping uniform without value", zap.String("name", name))
		}
	}
}

func (r *Renderer) bindTextureUnit(loc int32, unit int, t gpu.Texture) {
	r.dev.UniformInt(loc, int32(unit))
	r.dev.ActiveTexture(unit)
	r.dev.BindTexture(t)
}
