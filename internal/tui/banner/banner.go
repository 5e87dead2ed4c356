// Package banner renders short strings as large half-block text using the
// bundled Go Bold font.
package banner

import (
	"fmt"
	"image"
	"math"
	"strings"
	"sync"

	"github.com/maxwellsmart84/portfolio-2025/internal/assets"
	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const padding = 4

var (
	faceOnce sync.Once
	face     font.Face

	mu    sync.Mutex
	cache = make(map[cacheKey]string)
)

type cacheKey struct {
	text string
	rows int
}

func loadFace() font.Face {
	faceOnce.Do(func() {
		face = openFace(gobold.TTF)
	})
	return face
}

// openFace returns nil, and logs why, when ttf cannot be used.
func openFace(ttf []byte) font.Face {
	f, err := newFace(ttf)
	if err != nil {
		logger.Log.WithError(err).Error("loading banner font, banners disabled")
		return nil
	}
	return f
}

func newFace(ttf []byte) (font.Face, error) {
	fnt, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size: 64,
		DPI:  72,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	return f, nil
}

// Render draws text rows cells tall. The width follows the text's aspect
// ratio. It returns "" for empty text or rows < 1.
func Render(text string, rows int) string {
	if text == "" || rows < 1 {
		return ""
	}
	key := cacheKey{text, rows}
	mu.Lock()
	defer mu.Unlock()
	if out, ok := cache[key]; ok {
		return out
	}
	out := render(text, rows)
	cache[key] = out
	return out
}

func render(text string, rows int) string {
	f := loadFace()
	if f == nil {
		return ""
	}
	metrics := f.Metrics()
	advance := font.MeasureString(f, text).Ceil()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()

	w := advance + padding*2
	h := ascent + descent + padding*2
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P(padding, padding+ascent),
	}
	d.DrawString(text)

	// Half-block pixels are square, so a cell is one pixel wide and two tall.
	cols := int(math.Round(float64(rows*2) * float64(w) / float64(h)))
	frame := assets.Rasterize(img, max(cols, 1), rows, xdraw.ApproxBiLinear)
	return strings.Join(frame, "\n")
}

// Width returns the width in cells Render produces for text.
func Width(text string, rows int) int {
	out := Render(text, rows)
	if out == "" {
		return 0
	}
	first, _, _ := strings.Cut(out, "\n")
	return len([]rune(first))
}
