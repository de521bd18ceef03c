package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/math"
	"github.com/spaghettifunk/tinyrender/engine/renderer/metadata"
)

type CameraConfig struct {
	Eye    [3]float32 `toml:"eye"`
	Center [3]float32 `toml:"center"`
	Up     [3]float32 `toml:"up"`
}

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX int `toml:"pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY int `toml:"pos_y"`
	// Window and framebuffer width.
	StartWidth int `toml:"width"`
	// Window and framebuffer height.
	StartHeight int `toml:"height"`
	// The application name used in windowing, if applicable.
	Name     string        `toml:"name"`
	LogLevel core.LogLevel `toml:"log_level"`

	// Wavefront OBJ file to draw.
	Model string `toml:"model"`
	// Diffuse texture. When empty, the map_Kd of the model's material is used.
	Texture string `toml:"texture"`
	// Texels of this 0xRRGGBB colour are discarded by the textured shader.
	ColorKey *uint32 `toml:"color_key"`
	// One of flat, gouraud, textured.
	Shader          string `toml:"shader"`
	Wireframe       bool   `toml:"wireframe"`
	WireframeColour uint32 `toml:"wireframe_colour"`
	Background      uint32 `toml:"background"`

	Camera CameraConfig `toml:"camera"`
	// Direction towards the light, in object space.
	LightDir [3]float32 `toml:"light_dir"`
	// Depth range of the viewport.
	Depth float32 `toml:"depth"`
	// Time of a full camera orbit in the testbed. 0 disables the orbit.
	OrbitSeconds float64 `toml:"orbit_seconds"`

	// Directory indexed and watched for asset changes. Defaults to the
	// directory of the model.
	AssetsDir string `toml:"assets_dir"`
	HotReload bool   `toml:"hot_reload"`
}

// DefaultConfig returns the configuration used for every field a config
// file leaves out.
func DefaultConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:       100,
		StartPosY:       100,
		StartWidth:      800,
		StartHeight:     800,
		Name:            "tinyrender",
		LogLevel:        core.InfoLevel,
		Model:           "assets/obj/cube.obj",
		Shader:          metadata.BUILTIN_SHADER_NAME_GOURAUD,
		WireframeColour: 0xFFFFFF,
		Background:      0x000000,
		Camera: CameraConfig{
			Eye:    [3]float32{1, 1, 3},
			Center: [3]float32{0, 0, 0},
			Up:     [3]float32{0, 1, 0},
		},
		LightDir:     [3]float32{1, 1, 1},
		Depth:        255,
		OrbitSeconds: 8,
		HotReload:    true,
	}
}

// LoadConfig reads a TOML configuration file on top of DefaultConfig and
// validates the result.
func LoadConfig(path string) (*ApplicationConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %s: %w", path, row, col, derr.Error(), core.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%s: %s: %w", path, err, core.ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.StartWidth <= 0 || c.StartHeight <= 0 {
		return fmt.Errorf("size %dx%d must be positive: %w", c.StartWidth, c.StartHeight, core.ErrInvalidConfig)
	}
	if c.Model == "" {
		return fmt.Errorf("no model given: %w", core.ErrInvalidConfig)
	}
	level, err := core.ParseLogLevel(string(c.LogLevel))
	if err != nil {
		return err
	}
	c.LogLevel = level
	if _, err := metadata.ParseShaderType(c.Shader); err != nil {
		return fmt.Errorf("%s: %w", err, core.ErrInvalidConfig)
	}
	if c.CameraEye().Sub(c.CameraCenter()).Norm() == 0 {
		return fmt.Errorf("camera eye and center coincide: %w", core.ErrInvalidConfig)
	}
	if c.CameraUp().Norm() == 0 {
		return fmt.Errorf("camera up is a zero vector: %w", core.ErrInvalidConfig)
	}
	if c.Light().Norm() == 0 {
		return fmt.Errorf("light direction is a zero vector: %w", core.ErrInvalidConfig)
	}
	if c.Depth <= 0 {
		return fmt.Errorf("depth %v must be positive: %w", c.Depth, core.ErrInvalidConfig)
	}
	if c.OrbitSeconds < 0 {
		return fmt.Errorf("orbit seconds %v must not be negative: %w", c.OrbitSeconds, core.ErrInvalidConfig)
	}
	if c.Background > 0xFFFFFF || c.WireframeColour > 0xFFFFFF {
		return fmt.Errorf("colours must be 0xRRGGBB: %w", core.ErrInvalidConfig)
	}
	return nil
}

func (c *ApplicationConfig) ShaderType() metadata.ShaderType {
	st, _ := metadata.ParseShaderType(c.Shader)
	return st
}

func (c *ApplicationConfig) CameraEye() math.Vector[float32] {
	return math.NewVector(c.Camera.Eye[:]...)
}

func (c *ApplicationConfig) CameraCenter() math.Vector[float32] {
	return math.NewVector(c.Camera.Center[:]...)
}

func (c *ApplicationConfig) CameraUp() math.Vector[float32] {
	return math.NewVector(c.Camera.Up[:]...)
}

func (c *ApplicationConfig) Light() math.Vector[float32] {
	return math.NewVector(c.LightDir[:]...)
}
