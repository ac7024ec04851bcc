package graphics

import (
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"

	"golang.org/x/image/draw"
)

// Image is a decoded texture: row-major RGBA8, top row first.
type Image struct {
	Pix           []byte
	Width, Height int
}

// Decoder turns an asset path into pixels.
type Decoder interface {
	Decode(path string) (Image, error)
}

// PNGDecoder decodes PNG files from disk.
type PNGDecoder struct{}

// Decode reads and converts the image at path to RGBA.
func (PNGDecoder) Decode(path string) (Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return Image{Pix: rgba.Pix, Width: b.Dx(), Height: b.Dy()}, nil
}

// LoadTexture decodes path and uploads it to a new 2D texture with nearest
// filtering. On any failure it logs and returns 0, leaving nothing bound.
func LoadTexture(gl GL, dec Decoder, path string) uint32 {
	img, err := dec.Decode(path)
	if err != nil {
		log.Printf("couldn't load texture %s: %v", path, err)
		return 0
	}
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height*4 {
		log.Printf("couldn't load texture %s: %d bytes for %dx%d", path, len(img.Pix), img.Width, img.Height)
		return 0
	}

	texture := gl.GenTexture()
	gl.BindTexture(Texture2D, texture)

	gl.TexImage2DRGBA(Texture2D, int32(img.Width), int32(img.Height), img.Pix)
	gl.TexParameteri(Texture2D, TextureMagFilter, Nearest)
	gl.TexParameteri(Texture2D, TextureMinFilter, Nearest)

	gl.BindTexture(Texture2D, 0)

	return texture
}
