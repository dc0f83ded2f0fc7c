package material

import (
	"testing"

	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/uniform"
)

func TestCullingModeString(t *testing.T) {
	tests := []struct {
		mode CullingMode
		want string
	}{
		{CullNone, "none"},
		{CullFront, "front"},
		{CullBack, "back"},
		{CullingMode(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	m := New("plain", nil)
	if m.Culling != CullBack {
		t.Errorf("culling = %v, want back", m.Culling)
	}
	if m.Uniforms == nil {
		t.Fatal("uniform set not allocated")
	}

	tex := resource.NewTexture("albedo", resource.Image{}, resource.DefaultMeta(), resource.DefaultSample())
	m.Uniforms["albedo_tex"] = uniform.TextureValue(tex)
	m.Uniforms["albedo_color"] = uniform.Float(1)
	if got := m.Textures(); len(got) != 1 || got[0] != tex {
		t.Errorf("Textures() = %v", got)
	}
}
