package engine

import (
	"github.com/spaghettifunk/tinyrender/engine/renderer/components"
	"github.com/spaghettifunk/tinyrender/engine/renderer/metadata"
)

// Game is the application driven by the engine. Every hook is optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	// The camera of the scene. Set by the engine before FnInitialize.
	Camera       *components.Camera
	State        interface{}
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnShutdown   Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error

// Render may change any field of the packet before the frame is drawn.
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type Shutdown func() error
