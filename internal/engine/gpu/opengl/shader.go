package opengl

import (
	"errors"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/ron/internal/engine/gpu"
)

func (d *Device) CompileShader(stage gpu.ShaderStage, source string) (gpu.Shader, error) {
	shaderType := uint32(gl.VERTEX_SHADER)
	if stage == gpu.StageFragment {
		shaderType = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, errors.New(log)
	}

	return gpu.Shader(shader), nil
}

func (d *Device) DeleteShader(s gpu.Shader) {
	if s != 0 {
		gl.DeleteShader(uint32(s))
	}
}

func (d *Device) LinkProgram(stages ...gpu.Shader) (gpu.Program, error) {
	program := gl.CreateProgram()
	for _, s := range stages {
		gl.AttachShader(program, uint32(s))
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		return gpu.Program(program), errors.New(log)
	}

	for _, s := range stages {
		gl.DetachShader(program, uint32(s))
	}
	return gpu.Program(program), nil
}

func (d *Device) DeleteProgram(p gpu.Program) {
	if p != 0 {
		gl.DeleteProgram(uint32(p))
	}
}

func (d *Device) UseProgram(p gpu.Program) { gl.UseProgram(uint32(p)) }

func (d *Device) UniformLocation(p gpu.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *Device) UniformFloat(loc int32, v ...float32) {
	switch len(v) {
	case 1:
		gl.Uniform1f(loc, v[0])
	case 2:
		gl.Uniform2f(loc, v[0], v[1])
	case 3:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (d *Device) UniformInt(loc int32, v ...int32) {
	switch len(v) {
	case 1:
		gl.Uniform1i(loc, v[0])
	case 2:
		gl.Uniform2i(loc, v[0], v[1])
	case 3:
		gl.Uniform3i(loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4i(loc, v[0], v[1], v[2], v[3])
	}
}

func (d *Device) UniformUint(loc int32, v ...uint32) {
	switch len(v) {
	case 1:
		gl.Uniform1ui(loc, v[0])
	case 2:
		gl.Uniform2ui(loc, v[0], v[1])
	case 3:
		gl.Uniform3ui(loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4ui(loc, v[0], v[1], v[2], v[3])
	}
}

func (d *Device) UniformMatrix(loc int32, cols, rows int, v []float32) {
	if len(v) != cols*rows || len(v) == 0 {
		return
	}
	p := &v[0]
	switch {
	case cols == 2 && rows == 2:
		gl.UniformMatrix2fv(loc, 1, false, p)
	case cols == 3 && rows == 3:
		gl.UniformMatrix3fv(loc, 1, false, p)
	case cols == 4 && rows == 4:
		gl.UniformMatrix4fv(loc, 1, false, p)
	case cols == 2 && rows == 3:
		gl.UniformMatrix2x3fv(loc, 1, false, p)
	case cols == 3 && rows == 2:
		gl.UniformMatrix3x2fv(loc, 1, false, p)
	case cols == 2 && rows == 4:
		gl.UniformMatrix2x4fv(loc, 1, false, p)
	case cols == 4 && rows == 2:
		gl.UniformMatrix4x2fv(loc, 1, false, p)
	case cols == 3 && rows == 4:
		gl.UniformMatrix3x4fv(loc, 1, false, p)
	case cols == 4 && rows == 3:
		gl.UniformMatrix4x3fv(loc, 1, false, p)
	}
}

// infoLog reads a driver info log of length n.
func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "unknown error"
	}
	buf := make([]byte, n)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n ")
}
