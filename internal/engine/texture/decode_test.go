package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePNGChannels(t *testing.T) {
	opaque := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	opaque.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	opaque.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 255})

	translucent := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	translucent.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 77})

	tests := []struct {
		name     string
		img      image.Image
		channels int
		want     []byte
	}{
		{"opaque native", opaque, 0, []byte{10, 20, 30, 40, 50, 60}},
		{"opaque forced rgba", opaque, 4, []byte{10, 20, 30, 255, 40, 50, 60, 255}},
		{"translucent native", translucent, 0, []byte{200, 100, 50, 128}},
		{"gray native", gray, 0, []byte{77}},
		{"gray alpha", gray, 2, []byte{77, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(encodePNG(t, tt.img), "img.png", tt.channels)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !got.Good() {
				t.Fatalf("decoded image not good: %+v", got)
			}
			if !bytes.Equal(got.Pixels, tt.want) {
				t.Errorf("pixels = %v, want %v", got.Pixels, tt.want)
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image"), "broken.png", 0); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestDecodeTGA(t *testing.T) {
	// 2x1 uncompressed 24-bit, bottom-up: pixels stored BGR.
	header := make([]byte, 18)
	header[2] = TGATypeUncompressed
	header[12] = 2
	header[14] = 1
	header[16] = 24
	data := append(header, 1, 2, 3, 4, 5, 6)

	got, err := Decode(data, "tex.TGA", 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []byte{3, 2, 1, 6, 5, 4}
	if !bytes.Equal(got.Pixels, want) {
		t.Errorf("pixels = %v, want %v", got.Pixels, want)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	header := make([]byte, 18)
	header[2] = TGATypeRLE
	header[12] = 3
	header[14] = 1
	header[16] = 32
	header[17] = 0x20
	// one run packet of 3 pixels
	data := append(header, 0x82, 10, 20, 30, 40)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for x := 0; x < 3; x++ {
		c := img.(*image.NRGBA).NRGBAAt(x, 0)
		if c != (color.NRGBA{R: 30, G: 20, B: 10, A: 40}) {
			t.Errorf("pixel %d = %v", x, c)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := make([]byte, 18); h[1] = 1; h[2] = 2; h[16] = 24; return h }()},
		{"bad type", func() []byte { h := make([]byte, 18); h[2] = 3; h[16] = 24; return h }()},
		{"bad depth", func() []byte { h := make([]byte, 18); h[2] = 2; h[16] = 16; return h }()},
	}
	for _, tt := range tests {
		if _, err := DecodeTGA(tt.data); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
