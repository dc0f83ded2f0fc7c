// gltfinfo prints what the viewer would load from a glTF file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	qgltf "github.com/qmuntal/gltf"

	"github.com/Faultbox/ron/internal/assets"
	"github.com/Faultbox/ron/internal/engine/mesh"
	"github.com/Faultbox/ron/internal/gltf"
	"github.com/Faultbox/ron/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gltfinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tangents := fs.Bool("tangents", false, "Report which primitives get generated tangents")
	verbose := fs.Bool("v", false, "Log while importing")
	assetsRoot := fs.String("assets", "", "Asset root directory")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: gltfinfo [-tangents] [-v] [-assets dir] <file.gltf|file.glb>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(stderr, "Logger error: %v\n", err)
			return 1
		}
		defer logger.Sync()
	}

	s, unsupported, err := gltf.Import(path, assets.New(*assetsRoot))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var sections, vertices, triangles int
	meshes := make(map[*mesh.Mesh]bool)
	for _, n := range s.Nodes() {
		if n.Mesh() == nil {
			continue
		}
		meshes[n.Mesh()] = true
		for _, sec := range n.Mesh().Sections {
			if sec.Geometry == nil {
				continue
			}
			sections++
			vertices += sec.Geometry.VertexCount()
			triangles += sec.Geometry.IndexCount() / 3
		}
	}

	fmt.Fprintf(stdout, "File:      %s\n", path)
	fmt.Fprintf(stdout, "Nodes:     %d\n", len(s.Nodes()))
	fmt.Fprintf(stdout, "Meshes:    %d\n", len(meshes))
	fmt.Fprintf(stdout, "Sections:  %d\n", sections)
	fmt.Fprintf(stdout, "Vertices:  %d\n", vertices)
	fmt.Fprintf(stdout, "Triangles: %d\n", triangles)
	fmt.Fprintf(stdout, "Materials: %d\n", len(s.Materials())-1)
	fmt.Fprintf(stdout, "Textures:  %d\n", len(s.Textures()))
	if min, max, ok := s.Bounds(); ok {
		fmt.Fprintf(stdout, "Bounds:    %v .. %v\n", min, max)
	}

	if *tangents {
		if err := reportTangents(stdout, path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if len(unsupported) > 0 {
		fmt.Fprintf(stdout, "\nUnsupported (%d):\n", len(unsupported))
		for _, u := range unsupported {
			fmt.Fprintf(stdout, "  %s\n", u)
		}
	}
	return 0
}

// reportTangents lists, per primitive, whether tangents come from the file,
// are generated, or are missing.
func reportTangents(w io.Writer, path string) error {
	doc, err := qgltf.Open(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\nTangents:")
	for mi, m := range doc.Meshes {
		for pi, p := range m.Primitives {
			_, hasTangent := p.Attributes[qgltf.TANGENT]
			_, hasNormal := p.Attributes[qgltf.NORMAL]
			_, hasUV := p.Attributes[qgltf.TEXCOORD_0]

			status := "none (needs NORMAL and TEXCOORD_0)"
			switch {
			case hasTangent:
				status = "from file"
			case hasNormal && hasUV:
				status = "generated"
			}
			name := m.Name
			if name == "" {
				name = fmt.Sprintf("mesh%d", mi)
			}
			fmt.Fprintf(w, "  %s[%d]: %s\n", name, pi, status)
		}
	}
	return nil
}
