// Package preview displays an extracted composition frame inline in the
// terminal, falling back to plain text when the terminal has no graphics
// protocol.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/blacktop/go-termimg"
	"github.com/nfnt/resize"
)

// Terminal cells are roughly twice as tall as wide, and most graphics
// protocols address cells, not pixels.
const (
	cellAspect    = 2.0
	pixelsPerCell = 8

	minWidthCells = 20
	maxWidthCells = 100
)

// AutoWidth derives a preview width in terminal cells from a source
// width in pixels, clamped to a range that stays legible without
// overflowing common terminal sizes.
func AutoWidth(pixelWidth int) int {
	cells := pixelWidth / pixelsPerCell
	if cells < minWidthCells {
		return minWidthCells
	}
	if cells > maxWidthCells {
		return maxWidthCells
	}
	return cells
}

// Show renders the image at path inline, scaled to fit widthCells terminal
// columns. It returns an error when the terminal cannot display images;
// callers should then fall back to printing the file path.
func Show(w io.Writer, path string, widthCells int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open preview image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode preview image: %w", err)
	}

	if widthCells < 2 {
		widthCells = 2
	}

	bounds := img.Bounds()
	aspect := float64(bounds.Dx()) / float64(bounds.Dy())
	heightCells := int(float64(widthCells) / aspect / cellAspect)
	if heightCells < 1 {
		heightCells = 1
	}

	pixelWidth := uint(widthCells * pixelsPerCell)
	pixelHeight := uint(float64(pixelWidth) / aspect)
	resized := resize.Resize(pixelWidth, pixelHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return fmt.Errorf("failed to encode preview image: %w", err)
	}

	ti, err := termimg.From(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("terminal image rendering unavailable: %w", err)
	}

	ti.Protocol(termimg.DetectProtocol()).
		Width(widthCells).
		Height(heightCells).
		Scale(termimg.ScaleFit)

	rendered, err := ti.Render()
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	_, err = fmt.Fprintln(w, rendered)
	return err
}
