package assets

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ron/internal/engine/resource"
	"github.com/Faultbox/ron/internal/engine/texture"
	"github.com/Faultbox/ron/internal/logger"
)

type textureKey struct {
	path   string
	meta   resource.Meta
	sample resource.Sample
}

type textureEntry struct {
	tex     *resource.Texture
	modTime time.Time
}

// channelCount is the decoded channel count forced by meta; 0 keeps the
// file's own layout.
func channelCount(c resource.Channels) int {
	switch c {
	case resource.ChannelsR:
		return 1
	case resource.ChannelsRG:
		return 2
	case resource.ChannelsRGB, resource.ChannelsBGR:
		return 3
	case resource.ChannelsRGBA, resource.ChannelsBGRA:
		return 4
	}
	return 0
}

// readImage loads and decodes path. Failures are logged and yield an empty
// image, which the renderer reports and skips.
func (l *Library) readImage(path string, meta resource.Meta) resource.Image {
	data, err := l.ReadFile(path)
	if err != nil {
		logger.Error("failed to read asset file",
			zap.String("path", path),
			zap.String("error", err.Error()),
		)
		return resource.Image{}
	}
	img, err := texture.Decode(data, path, channelCount(meta.Channels))
	if err != nil {
		logger.Warn("failed to decode texture",
			zap.String("path", path),
			zap.String("error", err.Error()),
		)
		return resource.Image{}
	}
	return img
}

func (l *Library) modTime(path string) time.Time {
	info, err := l.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// LoadTexture returns the texture for path with the given interpretation
// and sampling. Each distinct combination is one instance; asking again
// re-decodes the file only when its modification time advanced.
func (l *Library) LoadTexture(path string, meta resource.Meta, sample resource.Sample) *resource.Texture {
	key := textureKey{path: normalize(path), meta: meta, sample: sample}

	if e, ok := l.textures.get(key); ok {
		if l.modTime(key.path).After(e.modTime) {
			l.reloadTexture(key, e)
		}
		return e.tex
	}

	e := &textureEntry{modTime: l.modTime(key.path)}
	e.tex = resource.NewFileTexture(key.path, l.readImage(key.path, meta), meta, sample)
	l.textures.put(key, e.tex.ID(), e)
	logger.Debug("texture loaded",
		zap.String("path", key.path),
		zap.Int("width", e.tex.Image().Width),
		zap.Int("height", e.tex.Image().Height),
	)
	return e.tex
}

// LoadColorTexture loads an sRGB texture with default sampling.
func (l *Library) LoadColorTexture(path string) *resource.Texture {
	return l.LoadTexture(path, resource.DefaultMeta(), resource.DefaultSample())
}

// LoadDataTexture loads a non-color texture, such as a normal map, with the
// given channel layout and default sampling.
func (l *Library) LoadDataTexture(path string, channels resource.Channels) *resource.Texture {
	meta := resource.Meta{Channels: channels, ColorSpace: resource.ColorSpaceNonColor}
	return l.LoadTexture(path, meta, resource.DefaultSample())
}

func (l *Library) reloadTexture(key textureKey, e *textureEntry) {
	e.modTime = l.modTime(key.path)
	e.tex.Update(l.readImage(key.path, key.meta))
}

// ReloadTextures re-decodes every registered texture from disk and returns
// how many there were. Unlike LoadTexture it ignores modification times.
func (l *Library) ReloadTextures() int {
	n := 0
	l.textures.each(func(k textureKey, e *textureEntry) {
		l.reloadTexture(k, e)
		n++
	})
	logger.Info("textures reloaded", zap.Int("count", n))
	return n
}

// ReloadTexture re-decodes t from its file regardless of modification time.
// It reports false for textures this library did not load.
func (l *Library) ReloadTexture(t *resource.Texture) bool {
	if t == nil || !t.HasFile() {
		return false
	}
	found := false
	l.textures.each(func(k textureKey, e *textureEntry) {
		if e.tex == t {
			l.reloadTexture(k, e)
			found = true
		}
	})
	return found
}
