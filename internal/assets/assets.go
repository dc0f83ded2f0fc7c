// Package assets loads shader programs and textures from layered file
// sources and keeps one instance per distinct request.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/engine/material"
	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/logger"
)

//go:embed default
var defaults embed.FS

// ErrEmptyFile is returned by ReadText for files without content.
var ErrEmptyFile = errors.New("empty file")

// Library resolves asset paths against its sources and registers every
// program and texture it loads. It is safe for concurrent use, but the
// resources it returns belong to the render thread.
type Library struct {
	root    string
	sources []fs.FS
	mu      sync.RWMutex

	shaders  *registry[shaderKey, *resource.ShaderProgram]
	textures *registry[textureKey, *textureEntry]

	errorShader     *resource.ShaderProgram
	depthShader     *resource.ShaderProgram
	axesShader      *resource.ShaderProgram
	gridShader      *resource.ShaderProgram
	defaultMaterial *material.Material
}

// New creates a library over the embedded defaults. When root is not empty
// the directory is layered on top, so its files shadow the defaults.
func New(root string) *Library {
	l := &Library{
		root:     root,
		shaders:  newRegistry[shaderKey, *resource.ShaderProgram](),
		textures: newRegistry[textureKey, *textureEntry](),
	}
	l.AddSource(defaults)
	if root != "" {
		l.AddSource(os.DirFS(root))
	}
	return l
}

// AddSource layers fsys over the existing sources.
// Sources are searched in reverse order (last added = highest priority).
func (l *Library) AddSource(fsys fs.FS) {
	l.mu.Lock()
	l.sources = append(l.sources, fsys)
	l.mu.Unlock()
}

// Root returns the directory given to New.
func (l *Library) Root() string { return l.root }

// cleanPath turns an OS style or rooted path into an io/fs path.
func cleanPath(name string) (string, error) {
	p := path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "/"))
	if !fs.ValidPath(p) || p == "." {
		return "", fmt.Errorf("invalid asset path %q", name)
	}
	return p, nil
}

// ReadFile returns the content of name from the highest priority source
// that has it.
func (l *Library) ReadFile(name string) ([]byte, error) {
	p, err := cleanPath(name)
	if err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(l.sources[i], p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("file not found: %s: %w", name, fs.ErrNotExist)
}

// Stat describes name as seen by ReadFile.
func (l *Library) Stat(name string) (fs.FileInfo, error) {
	p, err := cleanPath(name)
	if err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.sources) - 1; i >= 0; i-- {
		info, err := fs.Stat(l.sources[i], p)
		if err == nil {
			return info, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("file not found: %s: %w", name, fs.ErrNotExist)
}

// ReadText reads name as text.
func (l *Library) ReadText(name string) (string, error) {
	data, err := l.ReadFile(name)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("reading %s: %w", name, ErrEmptyFile)
	}
	return string(data), nil
}

// ReadTextFile is ReadText for callers that degrade instead of failing: a
// missing file is logged and read as "". Empty files are not an error here.
func (l *Library) ReadTextFile(name string) string {
	s, err := l.ReadText(name)
	if err != nil && !errors.Is(err, ErrEmptyFile) {
		logger.Error("failed to read asset file",
			zap.String("path", name),
			zap.String("error", err.Error()),
		)
	}
	return s
}

// Alive reports whether id is a program or texture still registered here.
func (l *Library) Alive(id resource.ID) bool {
	return l.shaders.alive(id) || l.textures.alive(id)
}

// Release forgets the resource with the given id. Later loads of the same
// files create a new instance.
func (l *Library) Release(id resource.ID) bool {
	return l.shaders.release(id) || l.textures.release(id)
}

// Stats describes the registries.
type Stats struct {
	ShaderPrograms int
	Textures       int
	Hits           int
	Misses         int
}

// Stats returns registry sizes and the combined hit and miss counts.
func (l *Library) Stats() Stats {
	sh, sm := l.shaders.stats()
	th, tm := l.textures.stats()
	return Stats{
		ShaderPrograms: l.shaders.len(),
		Textures:       l.textures.len(),
		Hits:           sh + th,
		Misses:         sm + tm,
	}
}

// ReloadPath reloads every program and texture that reads name and returns
// how many changed.
func (l *Library) ReloadPath(name string) int {
	p, err := cleanPath(name)
	if err != nil {
		return 0
	}
	n := 0
	l.shaders.each(func(k shaderKey, prog *resource.ShaderProgram) {
		if k.vert == p || k.frag == p {
			if prog.Update(l.ReadTextFile(k.vert), l.ReadTextFile(k.frag)) {
				n++
			}
		}
	})
	l.textures.each(func(k textureKey, e *textureEntry) {
		if k.path == p {
			l.reloadTexture(k, e)
			n++
		}
	})
	if n > 0 {
		logger.Info("asset reloaded", zap.String("path", p), zap.Int("resources", n))
	}
	return n
}
