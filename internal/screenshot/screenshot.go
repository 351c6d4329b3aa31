// Package screenshot persists the post-submission capture to disk.
package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"
)

// Options configures where and how captures are written.
type Options struct {
	Dir string
	// PreviewWidth, when non-zero, also writes a downscaled copy next to
	// the full capture for quick review.
	PreviewWidth uint
}

// Save writes the PNG capture to a timestamped file and returns its path.
func Save(data []byte, taken time.Time, opts Options) (string, error) {
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return "", fmt.Errorf("create screenshot dir: %w", err)
		}
	}

	name := fmt.Sprintf("form_submission_%s.png", taken.Format("20060102_150405"))
	path := filepath.Join(opts.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}

	if opts.PreviewWidth > 0 {
		if err := writePreview(data, path, opts.PreviewWidth); err != nil {
			return "", err
		}
	}

	return path, nil
}

// PreviewPath returns the path of the preview written for a capture.
func PreviewPath(capturePath string) string {
	return strings.TrimSuffix(capturePath, ".png") + "_preview.png"
}

func writePreview(data []byte, capturePath string, width uint) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode screenshot for preview: %w", err)
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) > width {
		aspectRatio := float64(bounds.Dy()) / float64(bounds.Dx())
		height := uint(float64(width) * aspectRatio)
		img = resize.Resize(width, height, img, resize.Lanczos3)
	}

	out, err := os.Create(PreviewPath(capturePath))
	if err != nil {
		return fmt.Errorf("create preview file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}
