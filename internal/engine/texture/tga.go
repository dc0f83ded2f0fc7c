package texture

import (
	"fmt"
	"image"
)

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA
// files with 24 or 32 bits per pixel. TGA has no magic number, so callers pick
// this decoder by file extension.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := tgaDecoder{
		src:         data[offset:],
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if len(d.src) < width*height*d.bpp {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < width*height; i++ {
			d.put(i, d.src[i*d.bpp:])
		}
		return d.img, nil
	}

	d.decodeRLE()
	return d.img, nil
}

type tgaDecoder struct {
	src           []byte
	img           *image.NRGBA
	width, height int
	bpp           int
	topToBottom   bool
}

// put writes the BGR(A) pixel px to pixel index i.
func (d *tgaDecoder) put(i int, px []byte) {
	x, y := i%d.width, i/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	o := d.img.PixOffset(x, y)
	d.img.Pix[o+0] = px[2]
	d.img.Pix[o+1] = px[1]
	d.img.Pix[o+2] = px[0]
	d.img.Pix[o+3] = 255
	if d.bpp == 4 {
		d.img.Pix[o+3] = px[3]
	}
}

// decodeRLE stops silently at the end of the data; missing pixels stay transparent.
func (d *tgaDecoder) decodeRLE() {
	total := d.width * d.height
	pixel, pos := 0, 0

	for pixel < total && pos < len(d.src) {
		header := d.src[pos]
		pos++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			if pos+d.bpp > len(d.src) {
				return
			}
			px := d.src[pos : pos+d.bpp]
			pos += d.bpp
			for n := 0; n < count && pixel < total; n++ {
				d.put(pixel, px)
				pixel++
			}
			continue
		}

		for n := 0; n < count && pixel < total; n++ {
			if pos+d.bpp > len(d.src) {
				return
			}
			d.put(pixel, d.src[pos:pos+d.bpp])
			pos += d.bpp
			pixel++
		}
	}
}
