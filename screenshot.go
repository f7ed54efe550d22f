package rowan

import (
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"
)

// Screenshot queues a labeled capture of the next drawn frame. Each label is
// written as a timestamped PNG under the configured screenshot directory on
// the world filesystem.
func (e *Engine) Screenshot(label string) {
	e.shots = append(e.shots, label)
}

// flushScreenshots captures screen for every queued label. Called at the end
// of Draw.
func (e *Engine) flushScreenshots(screen *ebiten.Image) {
	if len(e.shots) == 0 {
		return
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range e.shots {
		path := filepath.Join(e.cfg.ScreenshotPath, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(e.world.Fs(), path, img); err != nil {
			e.log.Write(LogError, LogEngine, "Screenshot failed: %v", err)
			continue
		}
		e.log.Write(LogInfo, LogEngine, "Saved screenshot %s", path)
	}
	e.shots = e.shots[:0]
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to straight
// alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	copy(img.Pix, pixels[:n])
	for i := 0; i+3 < n; i += 4 {
		px := img.Pix[i : i+4 : i+4]
		a := int(px[3])
		if a == 0 || a == 255 {
			continue
		}
		for c := range 3 {
			px[c] = uint8(min(int(px[c])*255/a, 255))
		}
	}
	return img
}

func writePNG(fs afero.Fs, path string, img image.Image) (err error) {
	if err = fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("screenshot dir: %w", err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("screenshot %s: %w", path, cerr)
		}
	}()
	if err = png.Encode(f, img); err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel makes label safe as part of a file name: letters, digits,
// '-' and '.' are kept and anything else becomes '_'.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || (r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			return r
		}
		return '_'
	}, label)
}
