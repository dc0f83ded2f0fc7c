package assets

import (
	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/logger"
)

// Built-in program sources.
const (
	ErrorVertexShader        = "default/shaders/error.vert"
	ErrorFragmentShader      = "default/shaders/error.frag"
	DepthVertexShader        = "default/shaders/depth.vert"
	DepthFragmentShader      = "default/shaders/depth.frag"
	AxesVertexShader         = "default/shaders/axes.vert"
	AxesFragmentShader       = "default/shaders/axes.frag"
	GridVertexShader         = "default/shaders/grid.vert"
	GridFragmentShader       = "default/shaders/grid.frag"
	BlinnPhongVertexShader   = "default/shaders/blinn_phong.vert"
	BlinnPhongFragmentShader = "default/shaders/blinn_phong.frag"
)

type shaderKey struct {
	vert string
	frag string
}

// normalize returns the canonical form of name, or name itself when it is
// not a valid asset path so the read reports it.
func normalize(name string) string {
	if p, err := cleanPath(name); err == nil {
		return p
	}
	return name
}

// LoadShaderProgram returns the program for the vert and frag pair. The
// first call creates it; later calls re-read both files and update the same
// instance, which only bumps its update count when a source changed.
// Unreadable files load as empty sources and fail at compile time.
func (l *Library) LoadShaderProgram(vert, frag string) *resource.ShaderProgram {
	key := shaderKey{vert: normalize(vert), frag: normalize(frag)}
	vertSrc := l.ReadTextFile(key.vert)
	fragSrc := l.ReadTextFile(key.frag)

	if p, ok := l.shaders.get(key); ok {
		p.Update(vertSrc, fragSrc)
		return p
	}

	p := resource.NewShaderProgram(key.vert+", "+key.frag, vertSrc, fragSrc)
	l.shaders.put(key, p.ID(), p)
	logger.Debug("shader program loaded", zap.String("name", p.Name()))
	return p
}

// ReloadShaderPrograms re-reads the sources of every registered program and
// returns how many changed.
func (l *Library) ReloadShaderPrograms() int {
	n := 0
	l.shaders.each(func(k shaderKey, p *resource.ShaderProgram) {
		if p.Update(l.ReadTextFile(k.vert), l.ReadTextFile(k.frag)) {
			n++
		}
	})
	logger.Info("shader programs reloaded", zap.Int("changed", n))
	return n
}

// ErrorShader draws solid magenta wherever a program is missing or broken.
func (l *Library) ErrorShader() *resource.ShaderProgram {
	if l.errorShader == nil {
		l.errorShader = l.LoadShaderProgram(ErrorVertexShader, ErrorFragmentShader)
	}
	return l.errorShader
}

// DepthShader writes depth only; it renders shadow maps.
func (l *Library) DepthShader() *resource.ShaderProgram {
	if l.depthShader == nil {
		l.depthShader = l.LoadShaderProgram(DepthVertexShader, DepthFragmentShader)
	}
	return l.depthShader
}

func (l *Library) AxesShader() *resource.ShaderProgram {
	if l.axesShader == nil {
		l.axesShader = l.LoadShaderProgram(AxesVertexShader, AxesFragmentShader)
	}
	return l.axesShader
}

func (l *Library) GridShader() *resource.ShaderProgram {
	if l.gridShader == nil {
		l.gridShader = l.LoadShaderProgram(GridVertexShader, GridFragmentShader)
	}
	return l.gridShader
}
