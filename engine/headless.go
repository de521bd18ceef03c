package engine

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/tinyrender/engine/assets/loaders"
	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/renderer"
)

/**
 * @brief A presenter without a window: every presented frame is written
 * to Path, as PNG or TGA depending on the extension. It never reports keys.
 */
type HeadlessPresenter struct {
	Path   string
	Frames int
}

func NewHeadlessPresenter(path string) (*HeadlessPresenter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".tga":
		return &HeadlessPresenter{Path: path}, nil
	default:
		return nil, fmt.Errorf("output %s must be .png or .tga: %w", path, core.ErrUnsupportedFormat)
	}
}

func (hp *HeadlessPresenter) Present(frame renderer.Frame) error {
	file, err := os.Create(hp.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(hp.Path), ".tga") {
		err = loaders.EncodeTGA(file, frame.Width, frame.Height, frame.Pixels)
	} else {
		err = png.Encode(file, frame.RGBA())
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", hp.Path, err)
	}
	hp.Frames++
	core.LogInfo("Wrote %dx%d frame to %s", frame.Width, frame.Height, hp.Path)
	return file.Close()
}

func (hp *HeadlessPresenter) Poll() []core.KeyEvent {
	return nil
}
