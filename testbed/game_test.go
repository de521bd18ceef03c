package testbed

import (
	"testing"

	"github.com/spaghettifunk/tinyrender/engine"
	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/math"
	"github.com/spaghettifunk/tinyrender/engine/renderer/components"
	"github.com/spaghettifunk/tinyrender/engine/renderer/metadata"
)

func newGame(t *testing.T, orbitSeconds float64) *TestGame {
	t.Helper()
	if !core.EventSystemInitialize() {
		t.Fatal("event system already initialized")
	}
	t.Cleanup(func() { core.EventSystemShutdown() })

	config := engine.DefaultConfig()
	config.Camera.Eye = [3]float32{0, 1, 2}
	config.OrbitSeconds = orbitSeconds

	g := NewTestGame(config)
	g.Camera = components.NewCamera(config.CameraEye(), config.CameraCenter(), config.CameraUp())
	if err := g.Initialize(); err != nil {
		t.Fatal(err)
	}
	return g
}

func press(key core.KeyCode) {
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: key, Pressed: true}})
}

func TestOrbitFollowsTween(t *testing.T) {
	g := newGame(t, 4)

	// A quarter of the orbit: from +z towards +x.
	if err := g.Update(1); err != nil {
		t.Fatal(err)
	}
	if want := math.NewVector[float32](2, 1, 0); !g.Camera.GetEye().Compare(want, 1e-4) {
		t.Errorf("eye = %v, want %v", g.Camera.GetEye(), want)
	}

	press(core.KEY_SPACE)
	g.Update(1)
	if want := math.NewVector[float32](2, 1, 0); !g.Camera.GetEye().Compare(want, 1e-4) {
		t.Errorf("paused eye moved to %v", g.Camera.GetEye())
	}

	press(core.KEY_R)
	if want := math.NewVector[float32](0, 1, 2); !g.Camera.GetEye().Compare(want, 1e-4) {
		t.Errorf("reset eye = %v, want %v", g.Camera.GetEye(), want)
	}
}

func TestNoOrbitWhenDisabled(t *testing.T) {
	g := newGame(t, 0)
	g.Update(10)
	if want := math.NewVector[float32](0, 1, 2); !g.Camera.GetEye().Equal(want) {
		t.Errorf("eye = %v, want %v", g.Camera.GetEye(), want)
	}
}

func TestKeysChangePacket(t *testing.T) {
	g := newGame(t, 0)

	tests := []struct {
		key       core.KeyCode
		shader    metadata.ShaderType
		wireframe bool
	}{
		{core.KEY_1, metadata.SHADER_TYPE_FLAT, false},
		{core.KEY_3, metadata.SHADER_TYPE_TEXTURED, false},
		{core.KEY_W, metadata.SHADER_TYPE_TEXTURED, true},
		{core.KEY_4, metadata.SHADER_TYPE_UNLIT, true},
		{core.KEY_2, metadata.SHADER_TYPE_GOURAUD, true},
		{core.KEY_W, metadata.SHADER_TYPE_GOURAUD, false},
	}
	for _, tt := range tests {
		press(tt.key)
		packet := &metadata.RenderPacket{}
		if err := g.Render(packet, 0); err != nil {
			t.Fatal(err)
		}
		if packet.Shader != tt.shader || packet.Wireframe != tt.wireframe {
			t.Errorf("after key %#x: shader %v wireframe %v, want %v %v", tt.key, packet.Shader, packet.Wireframe, tt.shader, tt.wireframe)
		}
	}
}

func TestInitializeWithoutCamera(t *testing.T) {
	g := NewTestGame(engine.DefaultConfig())
	if err := g.Initialize(); err == nil {
		t.Error("initialize without camera succeeded")
	}
}
