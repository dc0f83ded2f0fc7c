package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/ron/internal/engine/gpu/gputest"
	"github.com/Faultbox/ron/internal/engine/material"
	"github.com/Faultbox/ron/internal/engine/renderer"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/uniform"
	"github.com/Faultbox/ron/internal/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Set(zap.New(core)))
	return logs
}

func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestBuiltinShaders(t *testing.T) {
	lib := New("")
	tests := []struct {
		name string
		get  func() *resource.ShaderProgram
		want string
	}{
		{"error", lib.ErrorShader, ErrorVertexShader + ", " + ErrorFragmentShader},
		{"depth", lib.DepthShader, DepthVertexShader + ", " + DepthFragmentShader},
		{"axes", lib.AxesShader, AxesVertexShader + ", " + AxesFragmentShader},
		{"grid", lib.GridShader, GridVertexShader + ", " + GridFragmentShader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.get()
			if p == nil {
				t.Fatal("nil program")
			}
			if p.Name() != tt.want {
				t.Errorf("name = %q, want %q", p.Name(), tt.want)
			}
			if !strings.Contains(p.VertexSource(), "void main") || !strings.Contains(p.FragmentSource(), "void main") {
				t.Error("built-in sources missing main")
			}
			if tt.get() != p {
				t.Error("second call returned a different program")
			}
		})
	}
}

func TestBuiltinsSatisfyRenderer(t *testing.T) {
	observe(t)
	lib := New("")
	r, err := renderer.New(gputest.New(), lib)
	if err != nil {
		t.Fatalf("renderer.New: %v", err)
	}
	r.Release()
}

func TestReadFileLayering(t *testing.T) {
	lib := New("")
	lib.AddSource(fstest.MapFS{
		"default/shaders/error.frag": {Data: []byte("override")},
	})

	if got := lib.ReadTextFile("default/shaders/error.frag"); got != "override" {
		t.Errorf("layered file = %q, want override", got)
	}
	if got := lib.ReadTextFile("/default/shaders/error.vert"); !strings.Contains(got, "void main") {
		t.Errorf("embedded file not found through the overlay: %q", got)
	}
}

func TestReadTextFileMissing(t *testing.T) {
	logs := observe(t)
	lib := New("")

	if got := lib.ReadTextFile("nope/missing.vert"); got != "" {
		t.Errorf("missing file read as %q", got)
	}
	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("got %d error logs, want 1", len(entries))
	}
	if path := entries[0].ContextMap()["path"]; path != "nope/missing.vert" {
		t.Errorf("logged path = %v", path)
	}
}

func TestReadText(t *testing.T) {
	lib := New("")
	lib.AddSource(fstest.MapFS{"empty.txt": {Data: nil}})

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"empty", "empty.txt", ErrEmptyFile},
		{"missing", "missing.txt", os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := lib.ReadText(tt.path); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := lib.ReadFile("../outside.txt"); err == nil {
		t.Error("path escaping the sources was accepted")
	}
}

func TestLoadShaderProgramDedup(t *testing.T) {
	observe(t)
	files := fstest.MapFS{
		"a.vert": {Data: []byte("void main() {}")},
		"a.frag": {Data: []byte("void main() {}")},
		"b.frag": {Data: []byte("void main() { }")},
	}
	lib := New("")
	lib.AddSource(files)

	p := lib.LoadShaderProgram("a.vert", "a.frag")
	if p.Name() != "a.vert, a.frag" {
		t.Errorf("name = %q", p.Name())
	}
	if again := lib.LoadShaderProgram("/a.vert", "a.frag"); again != p {
		t.Error("same pair loaded twice")
	}
	if p.UpdateCount() != 0 {
		t.Errorf("unchanged reload bumped update count to %d", p.UpdateCount())
	}

	files["a.frag"].Data = []byte("void main() { discard; }")
	if again := lib.LoadShaderProgram("a.vert", "a.frag"); again != p {
		t.Error("changed pair created a new program")
	}
	if p.UpdateCount() != 1 || !strings.Contains(p.FragmentSource(), "discard") {
		t.Errorf("program not updated in place: count %d", p.UpdateCount())
	}

	if other := lib.LoadShaderProgram("a.vert", "b.frag"); other == p {
		t.Error("different pair shares a program")
	}
	if st := lib.Stats(); st.ShaderPrograms != 2 || st.Hits != 2 || st.Misses != 2 {
		t.Errorf("stats = %+v", st)
	}
}

func TestReloadShaderPrograms(t *testing.T) {
	observe(t)
	files := fstest.MapFS{
		"s.vert": {Data: []byte("v1")},
		"s.frag": {Data: []byte("f1")},
		"t.frag": {Data: []byte("f1")},
	}
	lib := New("")
	lib.AddSource(files)
	s := lib.LoadShaderProgram("s.vert", "s.frag")
	u := lib.LoadShaderProgram("s.vert", "t.frag")

	if n := lib.ReloadShaderPrograms(); n != 0 {
		t.Errorf("reload without changes updated %d programs", n)
	}
	files["t.frag"].Data = []byte("f2")
	if n := lib.ReloadShaderPrograms(); n != 1 {
		t.Errorf("reload updated %d programs, want 1", n)
	}
	if s.UpdateCount() != 0 || u.UpdateCount() != 1 {
		t.Errorf("update counts = %d, %d", s.UpdateCount(), u.UpdateCount())
	}
}

func TestLoadTexture(t *testing.T) {
	observe(t)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	files := fstest.MapFS{
		"tex.png": {Data: encodePNG(t, 2, 2, color.NRGBA{255, 0, 0, 128}), ModTime: t0},
	}
	lib := New("")
	lib.AddSource(files)

	tex := lib.LoadColorTexture("tex.png")
	if !tex.Good() || !tex.HasFile() || tex.Path() != "tex.png" {
		t.Fatalf("texture not loaded: good=%v path=%q", tex.Good(), tex.Path())
	}
	if img := tex.Image(); img.Width != 2 || img.Channels != 4 {
		t.Errorf("image = %dx%d/%d", img.Width, img.Height, img.Channels)
	}
	if again := lib.LoadColorTexture("tex.png"); again != tex {
		t.Error("same texture loaded twice")
	}
	if tex.UpdateCount() != 0 {
		t.Error("unchanged file was decoded again")
	}

	data := lib.LoadDataTexture("tex.png", resource.ChannelsR)
	if data == tex {
		t.Error("different meta shares a texture")
	}
	if data.Image().Channels != 1 {
		t.Errorf("forced channels = %d, want 1", data.Image().Channels)
	}

	files["tex.png"].Data = encodePNG(t, 4, 4, color.NRGBA{0, 255, 0, 255})
	files["tex.png"].ModTime = t0.Add(time.Minute)
	if again := lib.LoadColorTexture("tex.png"); again != tex {
		t.Error("newer file created a new texture")
	}
	if tex.UpdateCount() != 1 || tex.Image().Width != 4 {
		t.Errorf("texture not refreshed: count %d width %d", tex.UpdateCount(), tex.Image().Width)
	}

	if n := lib.ReloadTextures(); n != 2 {
		t.Errorf("ReloadTextures updated %d, want both textures", n)
	}
	if data.Image().Width != 4 {
		t.Error("data texture not refreshed")
	}
	if tex.UpdateCount() != 2 {
		t.Errorf("forced reload skipped an up-to-date texture: count %d", tex.UpdateCount())
	}
}

func TestLoadTextureMissing(t *testing.T) {
	logs := observe(t)
	lib := New("")

	tex := lib.LoadColorTexture("missing.png")
	if tex.Good() {
		t.Error("missing file produced a good texture")
	}
	if !tex.HasFile() {
		t.Error("missing texture should keep its path for reloading")
	}
	if n := logs.FilterMessage("failed to read asset file").Len(); n != 1 {
		t.Errorf("got %d read errors, want 1", n)
	}
}

func TestLoadTextureGarbage(t *testing.T) {
	logs := observe(t)
	lib := New("")
	lib.AddSource(fstest.MapFS{"bad.png": {Data: []byte("not an image")}})

	if tex := lib.LoadColorTexture("bad.png"); tex.Good() {
		t.Error("garbage decoded to a good texture")
	}
	entries := logs.FilterMessage("failed to decode texture").All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Errorf("decode failure logs = %v", entries)
	}
}

func TestAliveRelease(t *testing.T) {
	observe(t)
	lib := New("")
	p := lib.ErrorShader()
	tex := lib.LoadColorTexture(WhiteTexture)

	for _, id := range []resource.ID{p.ID(), tex.ID()} {
		if !lib.Alive(id) {
			t.Errorf("id %d not alive after load", id)
		}
	}
	if !lib.Release(tex.ID()) {
		t.Fatal("release failed")
	}
	if lib.Alive(tex.ID()) {
		t.Error("released id still alive")
	}
	if lib.Release(tex.ID()) {
		t.Error("double release succeeded")
	}
	if again := lib.LoadColorTexture(WhiteTexture); again == tex || again.ID() == tex.ID() {
		t.Error("load after release returned the released texture")
	}
	if !lib.Alive(p.ID()) {
		t.Error("unrelated program released")
	}
}

func TestReloadPath(t *testing.T) {
	observe(t)
	files := fstest.MapFS{
		"m.vert":  {Data: []byte("v")},
		"m.frag":  {Data: []byte("f")},
		"tex.png": {Data: encodePNG(t, 1, 1, color.NRGBA{1, 2, 3, 255})},
	}
	lib := New("")
	lib.AddSource(files)
	p := lib.LoadShaderProgram("m.vert", "m.frag")
	tex := lib.LoadColorTexture("tex.png")

	files["m.vert"].Data = []byte("v2")
	if n := lib.ReloadPath("m.vert"); n != 1 || p.UpdateCount() != 1 {
		t.Errorf("shader reload: n=%d count=%d", n, p.UpdateCount())
	}
	if n := lib.ReloadPath("tex.png"); n != 1 || tex.UpdateCount() != 1 {
		t.Errorf("texture reload: n=%d count=%d", n, tex.UpdateCount())
	}
	if n := lib.ReloadPath("unrelated.txt"); n != 0 {
		t.Errorf("unrelated path reloaded %d resources", n)
	}
	if !lib.ReloadTexture(tex) || tex.UpdateCount() != 2 {
		t.Error("forced texture reload failed")
	}
}

func TestDefaultMaterial(t *testing.T) {
	logs := observe(t)
	lib := New("")
	m := lib.DefaultMaterial()

	if m != lib.DefaultMaterial() {
		t.Error("default material is not shared")
	}
	if m.Culling != material.CullBack {
		t.Errorf("culling = %v", m.Culling)
	}
	if want := BlinnPhongVertexShader + ", " + BlinnPhongFragmentShader; m.Shader.Name() != want {
		t.Errorf("shader = %q", m.Shader.Name())
	}

	textures := []struct {
		name       string
		colorSpace resource.ColorSpace
	}{
		{UniformAlbedoTexture, resource.ColorSpaceSRGB},
		{UniformNormalTexture, resource.ColorSpaceNonColor},
		{UniformMetallicRoughnessTexture, resource.ColorSpaceNonColor},
	}
	for _, tt := range textures {
		v := m.Uniforms[tt.name]
		if v.Kind() != uniform.Texture || v.Texture() == nil {
			t.Errorf("%s is not a texture", tt.name)
			continue
		}
		tex := v.Texture()
		if !tex.Good() {
			t.Errorf("%s did not decode", tt.name)
		}
		if tex.Meta().ColorSpace != tt.colorSpace {
			t.Errorf("%s color space = %v", tt.name, tex.Meta().ColorSpace)
		}
	}

	floats := []struct {
		name string
		want []float32
	}{
		{UniformAlbedoColor, []float32{1, 1, 1, 1}},
		{UniformMetallicFactor, []float32{0}},
		{UniformRoughnessFactor, []float32{0.5}},
	}
	for _, tt := range floats {
		got := m.Uniforms[tt.name].Floats()
		if len(got) != len(tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
				break
			}
		}
	}

	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len() + logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 0 {
		t.Errorf("loading defaults logged %d problems", n)
	}
}

func TestRootOverridesDefaults(t *testing.T) {
	observe(t)
	root := t.TempDir()
	dir := filepath.Join(root, "default", "shaders")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "error.frag"), []byte("custom"), 0o644); err != nil {
		t.Fatal(err)
	}

	lib := New(root)
	p := lib.ErrorShader()
	if p.FragmentSource() != "custom" {
		t.Errorf("fragment = %q, want the file under root", p.FragmentSource())
	}
	if !strings.Contains(p.VertexSource(), "void main") {
		t.Error("vertex source should still come from the embedded defaults")
	}
}
