package renderer

import (
	"github.com/Faultbox/ron/internal/engine/gpu"
)

const (
	axesExtent   = 10000
	gridDistance = 210
)

// overlay is a static line list with a position and a color stream at
// locations 0 and 1.
type overlay struct {
	vao       gpu.VertexArray
	positions gpu.Buffer
	colors    gpu.Buffer
	count     int32
	lineWidth float32
}

func newOverlay(dev gpu.Device, positions, colors []float32, lineWidth float32) *overlay {
	o := &overlay{
		count:     int32(len(positions) / 3),
		lineWidth: lineWidth,
	}
	o.vao = dev.CreateVertexArray()
	dev.BindVertexArray(o.vao)
	o.positions = dev.CreateVertexBuffer(positions)
	dev.VertexAttrib(0, 3)
	o.colors = dev.CreateVertexBuffer(colors)
	dev.VertexAttrib(1, 3)
	dev.BindVertexArray(0)
	return o
}

// axesVertices returns one long line per world axis.
func axesVertices() (positions, colors []float32) {
	const e = axesExtent
	positions = []float32{
		-e, 0, 0, e, 0, 0,
		0, -e, 0, 0, e, 0,
		0, 0, -e, 0, 0, e,
	}
	x := [3]float32{0.604, 0.239, 0.290}
	y := [3]float32{0.388, 0.541, 0.153}
	z := [3]float32{0.235, 0.406, 0.604}
	for _, c := range [][3]float32{x, x, y, y, z, z} {
		colors = append(colors, c[:]...)
	}
	return positions, colors
}

// gridVertices returns lines on the XZ plane one unit apart, brighter every
// tenth line.
func gridVertices() (positions, colors []float32) {
	const d = gridDistance
	positions = make([]float32, 0, 8*d*3)
	colors = make([]float32, 0, 8*d*3)
	for i := 0; i < d; i++ {
		f := float32(i)
		positions = append(positions,
			d, 0, f, -d, 0, f,
			d, 0, -f, -d, 0, -f,
			f, 0, d, f, 0, -d,
			-f, 0, d, -f, 0, -d,
		)
		brightness := float32(0.29)
		if i%10 == 0 {
			brightness = 0.34
		}
		for j := 0; j < 8; j++ {
			colors = append(colors, brightness, brightness, brightness)
		}
	}
	return positions, colors
}

// draw renders the lines. The colors are already sRGB encoded, so the
// framebuffer conversion is off while drawing.
func (o *overlay) draw(dev gpu.Device) {
	dev.Disable(gpu.FramebufferSRGB)
	dev.BindVertexArray(o.vao)
	dev.LineWidth(o.lineWidth)
	dev.DrawArrays(gpu.Lines, 0, o.count)
	dev.BindVertexArray(0)
	dev.Enable(gpu.FramebufferSRGB)
}

func (o *overlay) release(dev gpu.Device) {
	dev.DeleteBuffer(o.positions)
	dev.DeleteBuffer(o.colors)
	dev.DeleteVertexArray(o.vao)
}
