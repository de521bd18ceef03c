package platform

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spaghettifunk/tinyrender/engine/containers"
	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/renderer"
)

// Key transitions collected between two polls. Older ones win when full.
const keyQueueSize = 64

var keyMap = map[ebiten.Key]core.KeyCode{
	ebiten.KeyBackspace:      core.KEY_BACKSPACE,
	ebiten.KeyTab:            core.KEY_TAB,
	ebiten.KeyEnter:          core.KEY_ENTER,
	ebiten.KeyEscape:         core.KEY_ESCAPE,
	ebiten.KeySpace:          core.KEY_SPACE,
	ebiten.KeyArrowLeft:      core.KEY_LEFT,
	ebiten.KeyArrowUp:        core.KEY_UP,
	ebiten.KeyArrowRight:     core.KEY_RIGHT,
	ebiten.KeyArrowDown:      core.KEY_DOWN,
	ebiten.KeyDigit0:         core.KEY_0,
	ebiten.KeyDigit1:         core.KEY_1,
	ebiten.KeyDigit2:         core.KEY_2,
	ebiten.KeyDigit3:         core.KEY_3,
	ebiten.KeyDigit4:         core.KEY_4,
	ebiten.KeyA:              core.KEY_A,
	ebiten.KeyD:              core.KEY_D,
	ebiten.KeyP:              core.KEY_P,
	ebiten.KeyQ:              core.KEY_Q,
	ebiten.KeyR:              core.KEY_R,
	ebiten.KeyS:              core.KEY_S,
	ebiten.KeyW:              core.KEY_W,
	ebiten.KeyEqual:          core.KEY_PLUS,
	ebiten.KeyNumpadAdd:      core.KEY_PLUS,
	ebiten.KeyMinus:          core.KEY_MINUS,
	ebiten.KeyNumpadSubtract: core.KEY_MINUS,
}

/**
 * @brief A window that shows the latest presented frame and reports key
 * transitions. ebiten owns the loop: Run blocks and calls the step function
 * once per tick on the main thread.
 */
type Platform struct {
	Name   string
	PosX   int
	PosY   int
	Width  int
	Height int

	keys  *containers.RingQueue[core.KeyEvent]
	frame *image.RGBA
	step  func() error
}

func New(name string, x, y, width, height int) *Platform {
	return &Platform{
		Name:   name,
		PosX:   x,
		PosY:   y,
		Width:  width,
		Height: height,
		keys:   containers.NewRingQueue[core.KeyEvent](keyQueueSize),
	}
}

// Run opens the window and calls step every tick until step returns an
// error. core.ErrApplicationQuit and closing the window end the loop cleanly.
func (p *Platform) Run(step func() error) error {
	p.step = step

	ebiten.SetWindowTitle(p.Name)
	ebiten.SetWindowSize(p.Width, p.Height)
	ebiten.SetWindowPosition(p.PosX, p.PosY)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(&window{p: p})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Present keeps a copy of the frame for the next draw.
func (p *Platform) Present(frame renderer.Frame) error {
	if frame.Width != p.Width || frame.Height != p.Height {
		core.LogWarn("frame %dx%d does not match window %dx%d", frame.Width, frame.Height, p.Width, p.Height)
		return nil
	}
	p.frame = frame.RGBA()
	return nil
}

// Poll returns the key transitions seen since the last call.
func (p *Platform) Poll() []core.KeyEvent {
	return p.keys.Drain()
}

func (p *Platform) SetTitle(title string) {
	ebiten.SetWindowTitle(title)
}

func (p *Platform) Shutdown() error {
	p.frame = nil
	p.step = nil
	return nil
}

func (p *Platform) collectKeys() {
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		p.enqueue(key, true)
	}
	for _, key := range inpututil.AppendJustReleasedKeys(nil) {
		p.enqueue(key, false)
	}
}

func (p *Platform) enqueue(key ebiten.Key, pressed bool) {
	code, ok := keyMap[key]
	if !ok {
		return
	}
	if err := p.keys.Enqueue(core.KeyEvent{KeyCode: code, Pressed: pressed}); err != nil {
		core.LogWarn("dropping key %d: %s", code, err)
	}
}

// window adapts the platform to ebiten.Game.
type window struct {
	p *Platform
}

func (w *window) Update() error {
	w.p.collectKeys()
	if w.p.step == nil {
		return nil
	}
	if err := w.p.step(); err != nil {
		if errors.Is(err, core.ErrApplicationQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	if w.p.frame == nil {
		return
	}
	screen.WritePixels(w.p.frame.Pix)
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.p.Width, w.p.Height
}
