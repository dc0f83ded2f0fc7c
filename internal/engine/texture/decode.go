// Package texture decodes image files into tightly packed pixel buffers.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/ron/internal/engine/resource"
)

// Decode decodes an image file. name is only used to pick the TGA decoder.
// channels forces the packed channel count (1 to 4); 0 keeps the file's own.
func Decode(data []byte, name string, channels int) (resource.Image, error) {
	var (
		img image.Image
		err error
	)
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return resource.Image{}, fmt.Errorf("decoding %s: %w", name, err)
	}
	return FromImage(img, channels), nil
}

// NativeChannels returns the channel count an image was stored with.
func NativeChannels(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// FromImage packs img into straight-alpha bytes with the given channel count.
// Two channel output is gray plus alpha.
func FromImage(img image.Image, channels int) resource.Image {
	if channels < 1 || channels > 4 {
		channels = NativeChannels(img)
	}

	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	w, h := b.Dx(), b.Dy()
	out := resource.Image{
		Width:    w,
		Height:   h,
		Channels: channels,
		Pixels:   make([]byte, w*h*channels),
	}

	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < w; x++ {
			src := row[x*4 : x*4+4]
			dst := out.Pixels[(y*w+x)*channels:]
			switch channels {
			case 1:
				dst[0] = src[0]
			case 2:
				dst[0] = src[0]
				dst[1] = src[3]
			default:
				copy(dst[:channels], src)
			}
		}
	}

	return out
}
