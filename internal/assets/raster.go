package assets

import (
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// alphaThreshold is the coverage above which a pixel counts as lit.
const alphaThreshold = 0x8000

func decodeImage(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening sprite image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding sprite image %q: %w", name, err)
	}
	return img, nil
}

// Rasterize scales img to cols x rows*2 pixels and turns each pair of
// vertical pixels into one half-block cell. Transparent pixels are off.
// A nil scaler means nearest neighbour, which keeps pixel art crisp.
func Rasterize(img image.Image, cols, rows int, scaler xdraw.Scaler) Frame {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if scaler == nil {
		scaler = xdraw.NearestNeighbor
	}
	dst := image.NewNRGBA(image.Rect(0, 0, cols, rows*2))
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)

	lit := func(x, y int) bool {
		_, _, _, a := dst.At(x, y).RGBA()
		return a >= alphaThreshold
	}

	frame := make(Frame, rows)
	var b strings.Builder
	for row := 0; row < rows; row++ {
		b.Reset()
		for col := 0; col < cols; col++ {
			top, bottom := lit(col, row*2), lit(col, row*2+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		frame[row] = b.String()
	}
	return frame
}
