package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	MinPlaceholderDim = 16
	MaxPlaceholderDim = 2000

	placeholderCacheSize = 64
)

var (
	gradientFrom = color.RGBA{R: 0x58, G: 0x1c, B: 0x87, A: 0xff}
	gradientTo   = color.RGBA{R: 0x31, G: 0x2e, B: 0x81, A: 0xff}
)

func clampDim(v int) int {
	return min(max(v, MinPlaceholderDim), MaxPlaceholderDim)
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// RenderPlaceholder draws a w by h PNG with a diagonal purple gradient and
// label centered in white. Dimensions are clamped to the supported range.
func RenderPlaceholder(w, h int, label string) ([]byte, error) {
	w, h = clampDim(w), clampDim(h)
	if label == "" {
		label = fmt.Sprintf("%dx%d", w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	span := float64(w + h - 2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := float64(x+y) / span
			img.SetRGBA(x, y, color.RGBA{
				R: lerp(gradientFrom.R, gradientTo.R, t),
				G: lerp(gradientFrom.G, gradientTo.G, t),
				B: lerp(gradientFrom.B, gradientTo.B, t),
				A: 0xff,
			})
		}
	}

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}),
		Face: face,
	}
	textWidth := d.MeasureString(label).Round()
	x := max((w-textWidth)/2, 0)
	y := (h + face.Metrics().Ascent.Round()) / 2
	d.Dot = fixed.P(x, y)
	d.DrawString(label)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

// Placeholders caches rendered placeholder images.
type Placeholders struct {
	cache *lru.Cache[string, []byte]
}

func NewPlaceholders() (*Placeholders, error) {
	cache, err := lru.New[string, []byte](placeholderCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create placeholder cache: %w", err)
	}
	return &Placeholders{cache: cache}, nil
}

func (p *Placeholders) PNG(w, h int, label string) ([]byte, error) {
	w, h = clampDim(w), clampDim(h)
	key := fmt.Sprintf("%d:%d:%s", w, h, label)
	if data, ok := p.cache.Get(key); ok {
		return data, nil
	}

	data, err := RenderPlaceholder(w, h, label)
	if err != nil {
		return nil, err
	}
	p.cache.Add(key, data)
	return data, nil
}
