package uniform

import (
	"maps"
	"slices"

	"github.com/Faultbox/ron/internal/engine/resource"
)

// Set maps uniform names to values.
type Set map[string]Value

// Keys returns the names in lexical order. Binding walks a set in this order,
// which fixes texture unit assignment.
func (s Set) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns a shallow copy.
func (s Set) Clone() Set {
	if s == nil {
		return Set{}
	}
	return maps.Clone(s)
}

// Merge flattens layers into one set. Later layers win on name collisions.
func Merge(layers ...Set) Set {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	out := make(Set, n)
	for _, l := range layers {
		maps.Copy(out, l)
	}
	return out
}

// Textures returns the CPU textures referenced by the set in key order.
func (s Set) Textures() []*resource.Texture {
	var out []*resource.Texture
	for _, k := range s.Keys() {
		if t := s[k].Texture(); t != nil {
			out = append(out, t)
		}
	}
	return out
}
