package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/spaghettifunk/tinyrender/engine/assets"
	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/math"
	"github.com/spaghettifunk/tinyrender/engine/renderer"
	"github.com/spaghettifunk/tinyrender/engine/renderer/components"
	"github.com/spaghettifunk/tinyrender/engine/renderer/metadata"
	"github.com/spaghettifunk/tinyrender/engine/renderer/shaders"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Presenter shows finished frames and reports key transitions.
type Presenter interface {
	Present(frame renderer.Frame) error
	Poll() []core.KeyEvent
}

// A Looper is a presenter that owns the frame loop, like a window does.
// Presenters that are not loopers get exactly one frame.
type Looper interface {
	Run(step func() error) error
}

type titler interface {
	SetTitle(title string)
}

type shutdowner interface {
	Shutdown() error
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *ApplicationConfig
	isRunning    bool
	quit         atomic.Bool
	presenter    Presenter
	assetManager *assets.AssetManager
	scene        *renderer.Scene
	camera       *components.Camera
	clock        *core.Clock
	lastTime     float64

	model        *metadata.Model
	modelPath    string
	texture      *metadata.Texture
	texturePath  string
	material     *metadata.MaterialConfig
	materialPath string
	lastStats    renderer.Stats
}

func New(g *Game, presenter Presenter) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game without configuration: %w", core.ErrInvalidConfig)
	}
	if presenter == nil {
		return nil, fmt.Errorf("no presenter: %w", core.ErrInvalidConfig)
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       g.ApplicationConfig,
		presenter:    presenter,
		assetManager: am,
		clock:        core.NewClock(),
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("initialize in stage %d", e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	core.SetLogLevel(e.config.LogLevel)

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)

	// initialize subsystems
	assetsDir := e.config.AssetsDir
	if assetsDir == "" {
		assetsDir = filepath.Dir(e.config.Model)
	}
	if err := e.assetManager.Initialize(assetsDir, e.config.HotReload); err != nil {
		return err
	}
	if err := e.loadAssets(); err != nil {
		return err
	}

	e.scene = renderer.NewScene(e.config.StartWidth, e.config.StartHeight)
	e.camera = components.NewCamera(e.config.CameraEye(), e.config.CameraCenter(), e.config.CameraUp())
	e.gameInstance.Camera = e.camera

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("Engine initialized: %s, %d faces, %dx%d.", e.model.Name, e.model.FaceCount(), e.scene.Width(), e.scene.Height())
	return nil
}

/**
 * @brief Loads the model, its material library and the diffuse texture.
 * An explicitly configured texture must load; a texture named by the
 * material only produces a warning when missing.
 */
func (e *Engine) loadAssets() error {
	model, err := e.assetManager.LoadModel(e.config.Model)
	if err != nil {
		return err
	}
	e.model = model
	e.modelPath = e.assetManager.Resolve(e.config.Model)

	e.material = metadata.DefaultMaterial()
	if model.MaterialLib != "" {
		e.materialPath = filepath.Join(filepath.Dir(e.modelPath), model.MaterialLib)
		library, err := e.assetManager.LoadMaterialLibrary(e.materialPath)
		if err != nil {
			core.LogWarn("Material library of %s not loaded: %s", model.Name, err)
		} else {
			e.material = library.Select(model.MaterialName)
		}
	}
	return e.loadDiffuseMap()
}

// loadDiffuseMap binds the configured texture, or else the material's
// diffuse map. Only a configured texture is required to load.
func (e *Engine) loadDiffuseMap() error {
	textureName := e.config.Texture
	if textureName == "" && e.material.DiffuseMapName != "" {
		textureName = filepath.Join(filepath.Dir(e.materialPath), e.material.DiffuseMapName)
	}
	if textureName == "" {
		e.texture, e.texturePath = nil, ""
		return nil
	}
	texture, err := e.assetManager.LoadTexture(textureName, nil)
	if err != nil {
		if e.config.Texture != "" {
			return err
		}
		core.LogWarn("Diffuse map of %s not loaded: %s", e.material.Name, err)
		return nil
	}
	e.texture = texture
	e.texturePath = e.assetManager.Resolve(textureName)
	return nil
}

/**
 * @brief Runs the frame loop until the game or the user quits. Loopers
 * drive the frames themselves; any other presenter gets a single frame.
 */
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrEngineNotInitialized
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var err error
	if looper, ok := e.presenter.(Looper); ok {
		err = looper.Run(e.Frame)
	} else {
		err = e.Frame()
	}
	e.isRunning = false
	if errors.Is(err, core.ErrApplicationQuit) {
		return nil
	}
	return err
}

// Frame advances the game by one frame and presents the result. It
// returns core.ErrApplicationQuit once a quit was requested.
func (e *Engine) Frame() error {
	if e.quit.Load() {
		e.isRunning = false
	}
	if !e.isRunning {
		return core.ErrApplicationQuit
	}

	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	e.lastTime = currentTime

	for _, path := range e.assetManager.DrainReloads() {
		e.reload(path)
	}

	core.InputUpdate()
	for _, ke := range e.presenter.Poll() {
		core.InputProcessKey(ke.KeyCode, ke.Pressed)
	}
	if !e.isRunning {
		return core.ErrApplicationQuit
	}

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down.")
			return err
		}
	}

	packet := e.buildPacket(delta)
	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down.")
			return err
		}
	}

	e.lastStats = e.render(packet)

	if core.MetricsUpdate(delta, e.lastStats.Pixels) {
		fps, frameMS := core.MetricsFrame()
		core.LogDebug("%.0f fps, %.2f ms/frame, %d faces, %d pixels", fps, frameMS, e.lastStats.Faces, e.lastStats.Pixels)
		if t, ok := e.presenter.(titler); ok {
			t.SetTitle(fmt.Sprintf("%s - %.0f fps", e.config.Name, fps))
		}
	}

	return e.presenter.Present(e.scene.Snapshot())
}

func (e *Engine) buildPacket(delta float64) *metadata.RenderPacket {
	return &metadata.RenderPacket{
		DeltaTime:       delta,
		Shader:          e.config.ShaderType(),
		Wireframe:       e.config.Wireframe,
		WireframeColour: e.config.WireframeColour,
		Background:      e.config.Background,
		DiffuseColour:   e.material.DiffuseColour,
		Model:           math.Identity(4),
		LightDir:        e.config.Light(),
	}
}

// Viewport covers the central 3/4 of the framebuffer.
func (e *Engine) viewport() math.Matrix {
	w, h := float32(e.scene.Width()), float32(e.scene.Height())
	return math.Viewport(w/8, h/8, w*3/4, h*3/4, e.config.Depth)
}

func (e *Engine) render(packet *metadata.RenderPacket) renderer.Stats {
	e.scene.Clear(packet.Background)

	model := packet.Model
	if model.Rows() == 0 {
		model = math.Identity(4)
	}
	modelView := e.camera.GetView().Mul(model)
	projection := e.camera.GetProjection()
	viewport := e.viewport()

	if packet.Wireframe {
		return renderer.DrawWireframe(e.scene, e.model, viewport.Mul(projection).Mul(modelView), packet.WireframeColour)
	}

	uniforms := shaders.Uniforms{
		ModelView:  modelView,
		Projection: projection,
		LightDir:   packet.LightDir,
	}
	return renderer.DrawMesh(e.scene, e.model, e.shader(packet, uniforms), viewport)
}

func (e *Engine) shader(packet *metadata.RenderPacket, uniforms shaders.Uniforms) renderer.Shader {
	switch packet.Shader {
	case metadata.SHADER_TYPE_FLAT:
		return shaders.NewFlatShader(e.model, uniforms, packet.DiffuseColour)
	case metadata.SHADER_TYPE_TEXTURED, metadata.SHADER_TYPE_UNLIT:
		if e.texture != nil {
			s := shaders.NewTexturedShader(e.model, e.texture, uniforms)
			s.ColorKey = e.config.ColorKey
			s.Unlit = packet.Shader == metadata.SHADER_TYPE_UNLIT
			return s
		}
	}
	return shaders.NewGouraudShader(e.model, uniforms, packet.DiffuseColour)
}

// reload replaces a loaded asset that changed on disk. A failed reload
// keeps the previous version.
func (e *Engine) reload(path string) {
	switch path {
	case e.modelPath:
		model, err := e.assetManager.LoadModel(path)
		if err != nil {
			core.LogError("Reload of %s failed: %s", path, err)
			return
		}
		model.Generation = e.model.Generation + 1
		e.model = model
	case e.texturePath:
		texture, err := e.assetManager.LoadTexture(path, nil)
		if err != nil {
			core.LogError("Reload of %s failed: %s", path, err)
			return
		}
		texture.Generation = e.texture.Generation + 1
		e.texture = texture
	case e.materialPath:
		library, err := e.assetManager.LoadMaterialLibrary(path)
		if err != nil {
			core.LogError("Reload of %s failed: %s", path, err)
			return
		}
		previous := e.material.DiffuseMapName
		e.material = library.Select(e.model.MaterialName)
		if e.config.Texture == "" && e.material.DiffuseMapName != previous {
			if err := e.loadDiffuseMap(); err != nil {
				core.LogError("Diffuse map of %s not reloaded: %s", e.material.Name, err)
			}
		}
	default:
		return
	}
	core.LogInfo("Reloaded %s", path)
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_ASSET_RELOADED, Data: &core.AssetEvent{Path: path}})
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageUninitialized {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	errs = append(errs, e.assetManager.Shutdown())
	if s, ok := e.presenter.(shutdowner); ok {
		errs = append(errs, s.Shutdown())
	}
	errs = append(errs, core.EventSystemShutdown(), core.InputShutdown())

	e.currentStage = EngineStageUninitialized
	return errors.Join(errs...)
}

// RequestQuit stops the frame loop before the next frame. Safe to call
// from any goroutine.
func (e *Engine) RequestQuit() {
	e.quit.Store(true)
}

// Stage returns the current lifecycle stage.
func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Stats returns the counts of the last drawn frame.
func (e *Engine) Stats() renderer.Stats {
	return e.lastStats
}

func (e *Engine) Scene() *renderer.Scene {
	return e.scene
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return true
	}
	return false
}
