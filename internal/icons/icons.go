// Package icons renders width-scaled PNG icon sets from a source PNG.
package icons

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// DefaultWidths is the icon set generated when no sizes are requested.
var DefaultWidths = []int{16, 32, 48, 64, 128, 256, 512, 1024}

// Generate scales the PNG at inputPath to each requested width, preserving
// aspect ratio, and writes icon_<width>.png files into outputDir. Widths
// wider than the source are skipped. It returns the paths written.
func Generate(inputPath, outputDir string, widths []int) ([]string, error) {
	src, err := readPNG(inputPath)
	if err != nil {
		return nil, err
	}

	if len(widths) == 0 {
		widths = DefaultWidths
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	var written []string
	for _, width := range widths {
		if width <= 0 || width > srcW {
			continue
		}
		height := width * srcH / srcW
		if height < 1 {
			height = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

		outPath := filepath.Join(outputDir, fmt.Sprintf("icon_%d.png", width))
		if err := writePNG(outPath, dst); err != nil {
			return written, err
		}
		written = append(written, outPath)
	}
	return written, nil
}

// DefaultOutputDir returns the conventional output directory for a source
// image: a sibling directory named <stem>_icons.
func DefaultOutputDir(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(filepath.Dir(inputPath), stem+"_icons")
}

func readPNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
