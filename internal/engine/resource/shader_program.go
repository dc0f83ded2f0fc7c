package resource

// ShaderProgram is a vertex and fragment source pair.
type ShaderProgram struct {
	id      ID
	name    string
	vertex  string
	frag    string
	updates uint64
}

// NewShaderProgram creates a program from sources. name is used in diagnostics.
func NewShaderProgram(name, vertexSrc, fragmentSrc string) *ShaderProgram {
	return &ShaderProgram{
		id:     NewID(),
		name:   name,
		vertex: vertexSrc,
		frag:   fragmentSrc,
	}
}

func (p *ShaderProgram) ID() ID                 { return p.id }
func (p *ShaderProgram) Name() string           { return p.name }
func (p *ShaderProgram) VertexSource() string   { return p.vertex }
func (p *ShaderProgram) FragmentSource() string { return p.frag }
func (p *ShaderProgram) UpdateCount() uint64    { return p.updates }

// Update replaces both sources. The update count only advances when either
// source actually differs, so reloading unchanged files is free.
func (p *ShaderProgram) Update(vertexSrc, fragmentSrc string) bool {
	if vertexSrc == p.vertex && fragmentSrc == p.frag {
		return false
	}
	p.vertex = vertexSrc
	p.frag = fragmentSrc
	p.updates++
	return true
}
