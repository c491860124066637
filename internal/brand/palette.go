package brand

import (
	"fmt"
	"image"
	"os"
	"sort"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// sampleSize is the square resolution images are downscaled to before
	// histogramming. Small enough to stay fast, large enough to keep the
	// dominant colors.
	sampleSize       = 128
	maxPaletteColors = 5
)

// paletteFromImage extracts up to maxColors dominant colors from an image as
// lowercase "#rrggbb" strings, most frequent first.
func paletteFromImage(path string, maxColors int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, sampleSize, sampleSize))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	counts := make(map[[3]uint8]int)
	for y := 0; y < sampleSize; y++ {
		for x := 0; x < sampleSize; x++ {
			c := dst.RGBAAt(x, y)
			counts[[3]uint8{c.R, c.G, c.B}]++
		}
	}

	type colorCount struct {
		rgb   [3]uint8
		count int
	}
	ranked := make([]colorCount, 0, len(counts))
	for rgb, n := range counts {
		ranked = append(ranked, colorCount{rgb, n})
	}
	// Descending by frequency; ties break on channel values so repeated
	// calls on the same file return the same palette.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		a, b := ranked[i].rgb, ranked[j].rgb
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})

	if len(ranked) > maxColors {
		ranked = ranked[:maxColors]
	}

	palette := make([]string, 0, len(ranked))
	for _, cc := range ranked {
		palette = append(palette, fmt.Sprintf("#%02x%02x%02x", cc.rgb[0], cc.rgb[1], cc.rgb[2]))
	}
	return palette, nil
}
