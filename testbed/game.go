package testbed

import (
	"fmt"
	m "math"

	"github.com/spaghettifunk/tinyrender/engine"
	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/math"
	"github.com/spaghettifunk/tinyrender/engine/renderer/metadata"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	// Angle of the camera around the center, tweened over a full turn.
	orbit      *gween.Tween
	startAngle float32
	radius     float32
	paused     bool

	shader    metadata.ShaderType
	wireframe bool
	reloads   int
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				shader:    config.ShaderType(),
				wireframe: config.Wireframe,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.Camera == nil {
		return fmt.Errorf("the engine did not provide a camera: %w", core.ErrEngineNotInitialized)
	}

	state := g.state()
	offset := g.Camera.GetEye().Sub(g.Camera.Center)
	state.radius = float32(m.Hypot(float64(offset.X()), float64(offset.Z())))
	state.startAngle = float32(m.Atan2(float64(offset.X()), float64(offset.Z())))
	if seconds := g.ApplicationConfig.OrbitSeconds; seconds > 0 && state.radius > 0 {
		state.orbit = gween.New(state.startAngle, state.startAngle+math.K_2PI, float32(seconds), ease.Linear)
	}

	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, g.onKey)
	core.EventRegister(core.EVENT_CODE_ASSET_RELOADED, g.onAssetReloaded)

	core.LogInfo("Keys: 1 flat, 2 gouraud, 3 textured, 4 unlit, W wireframe, Space pause, R reset, Esc quit.")
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.state()
	if state.paused || state.orbit == nil {
		return nil
	}
	angle, finished := state.orbit.Update(float32(deltaTime))
	if finished {
		state.orbit.Reset()
	}
	g.Camera.Orbit(angle, state.radius)
	return nil
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.state()
	packet.Shader = state.shader
	packet.Wireframe = state.wireframe
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogDebug("TestGame Shutdown fn.... (%d reloads seen)", g.state().reloads)
	return nil
}

func (g *TestGame) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return false
	}

	state := g.state()
	switch ke.KeyCode {
	case core.KEY_1:
		state.shader = metadata.SHADER_TYPE_FLAT
	case core.KEY_2:
		state.shader = metadata.SHADER_TYPE_GOURAUD
	case core.KEY_3:
		state.shader = metadata.SHADER_TYPE_TEXTURED
	case core.KEY_4:
		state.shader = metadata.SHADER_TYPE_UNLIT
	case core.KEY_W:
		state.wireframe = !state.wireframe
	case core.KEY_SPACE, core.KEY_P:
		state.paused = !state.paused
	case core.KEY_R:
		g.Camera.Orbit(state.startAngle, state.radius)
		if state.orbit != nil {
			state.orbit.Reset()
		}
	default:
		return false
	}
	core.LogDebug("shader %s, wireframe %v, paused %v", state.shader, state.wireframe, state.paused)
	return true
}

func (g *TestGame) onAssetReloaded(context core.EventContext) bool {
	if ae, ok := context.Data.(*core.AssetEvent); ok {
		g.state().reloads++
		core.LogInfo("asset %s reloaded", ae.Path)
	}
	return false
}
