package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/opd-ai/mason/pkg/physics"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if err := config.Validate(); err != nil {
		t.Fatalf("Default config should validate, got %v", err)
	}

	if config.Player.Integration != "velocity" {
		t.Errorf("Expected velocity integration, got %q", config.Player.Integration)
	}
	if config.Player.Accel != 150 || config.Player.MaxSpeed != 150 {
		t.Errorf("Expected accel/max speed 150/150, got %v/%v", config.Player.Accel, config.Player.MaxSpeed)
	}
	if config.Player.FloorSpeed != 25 || config.Player.Drag != 4 {
		t.Errorf("Expected floor/drag 25/4, got %v/%v", config.Player.FloorSpeed, config.Player.Drag)
	}
	if config.Player.DirectScale != 0.25 {
		t.Errorf("Expected direct scale 0.25, got %v", config.Player.DirectScale)
	}

	if config.Camera.Policy != "clamped" {
		t.Errorf("Expected clamped camera policy, got %q", config.Camera.Policy)
	}
	if config.Camera.Offset != [3]float64{0, 0, -2} {
		t.Errorf("Expected camera offset (0,0,-2), got %v", config.Camera.Offset)
	}
	if config.Camera.ZFar != 48 {
		t.Errorf("Expected z-far 48, got %v", config.Camera.ZFar)
	}

	if len(config.Balls.Positions) != 3 {
		t.Errorf("Expected 3 balls, got %d", len(config.Balls.Positions))
	}
	if config.Physics.Gravity != [3]float64{} {
		t.Errorf("Expected zero gravity, got %v", config.Physics.Gravity)
	}
	if len(config.Input.Bindings) != 6 {
		t.Errorf("Expected 6 default bindings, got %d", len(config.Input.Bindings))
	}
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name     string
		file     string
		contents string
	}{
		{
			name: "json",
			file: "config.json",
			contents: `{
  "player": {"integration": "direct", "directScale": 0.5},
  "camera": {"policy": "free"},
  "input": {"bindings": {"Up": "forward"}},
  "loop": {"scripts": ["player"]}
}`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			contents: `player:
  integration: direct
  directScale: 0.5
camera:
  policy: free
input:
  bindings:
    Up: forward
loop:
  scripts: [player]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tt.file)
			if err := os.WriteFile(path, []byte(tt.contents), 0o644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}

			if config.Player.Integration != "direct" || config.Player.DirectScale != 0.5 {
				t.Errorf("Player overrides not applied: %+v", config.Player)
			}
			if config.Player.MaxSpeed != 150 {
				t.Errorf("Expected untouched fields to keep defaults, got max speed %v", config.Player.MaxSpeed)
			}
			if config.Camera.Policy != "free" {
				t.Errorf("Expected free policy, got %q", config.Camera.Policy)
			}
			if len(config.Input.Bindings) != 1 || config.Input.Bindings["Up"] != "forward" {
				t.Errorf("Expected bindings to be replaced, got %v", config.Input.Bindings)
			}
			if len(config.Loop.Scripts) != 1 || config.Loop.Scripts[0] != "player" {
				t.Errorf("Expected scripts [player], got %v", config.Loop.Scripts)
			}
			if err := config.Validate(); err != nil {
				t.Errorf("Loaded config should validate, got %v", err)
			}
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(tempDir, "missing.json")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(tempDir, "config.toml"))
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Expected ErrUnknownFormat, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(tempDir, "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("Expected parse error")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(tempDir, "bad.yml")
		if err := os.WriteFile(path, []byte("player: [unterminated"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("Expected parse error")
		}
	})
}

func TestSaveConfig(t *testing.T) {
	tempDir := t.TempDir()

	for _, file := range []string{"saved.json", "saved.yaml"} {
		t.Run(file, func(t *testing.T) {
			original := DefaultConfig()
			original.Camera.Policy = "free"
			original.Balls.Positions = [][3]float64{{1, 2, 3}}

			path := filepath.Join(tempDir, file)
			if err := SaveConfig(original, path); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}

			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}

			if loaded.Camera.Policy != "free" {
				t.Errorf("Expected policy free, got %q", loaded.Camera.Policy)
			}
			if len(loaded.Balls.Positions) != 1 || loaded.Balls.Positions[0] != [3]float64{1, 2, 3} {
				t.Errorf("Ball positions not preserved: %v", loaded.Balls.Positions)
			}
			if loaded.Input.Bindings["LSHIFT"] != "up" {
				t.Errorf("Bindings not preserved: %v", loaded.Input.Bindings)
			}
		})
	}

	t.Run("unknown extension", func(t *testing.T) {
		err := SaveConfig(DefaultConfig(), filepath.Join(tempDir, "saved.ini"))
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Expected ErrUnknownFormat, got %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown integration", func(c *Config) { c.Player.Integration = "verlet" }},
		{"zero accel", func(c *Config) { c.Player.Accel = 0 }},
		{"negative drag", func(c *Config) { c.Player.Drag = -1 }},
		{"floor above max", func(c *Config) { c.Player.FloorSpeed = 200 }},
		{"unknown policy", func(c *Config) { c.Camera.Policy = "orbit" }},
		{"zero sensitivity", func(c *Config) { c.Camera.Sensitivity = 0 }},
		{"zero boundary", func(c *Config) { c.Physics.BoundaryRadius = 0 }},
		{"empty boundary name", func(c *Config) { c.Physics.BoundaryName = " " }},
		{"zero ball radius", func(c *Config) { c.Balls.Radius = 0 }},
		{"bad binding", func(c *Config) { c.Input.Bindings = map[string]string{"W": "sideways"} }},
		{"nan start", func(c *Config) { c.Player.Start[1] = math.NaN() }},
		{"infinite gravity", func(c *Config) { c.Physics.Gravity[1] = math.Inf(-1) }},
		{"infinite ball position", func(c *Config) { c.Balls.Positions[2][0] = math.Inf(1) }},
		{"zero tick rate", func(c *Config) { c.Loop.TickRate = 0 }},
		{"bad script name", func(c *Config) { c.Loop.Scripts = []string{"1player"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			err := config.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestIntegrator(t *testing.T) {
	config := DefaultConfig()

	integrator, err := config.Integrator()
	if err != nil {
		t.Fatalf("Integrator() failed: %v", err)
	}
	if integrator.Mode() != physics.LinearVelocity {
		t.Errorf("Expected velocity integrator, got %v", integrator.Mode())
	}

	config.Player.Integration = "DIRECT"
	integrator, err = config.Integrator()
	if err != nil {
		t.Fatalf("Integrator() failed: %v", err)
	}
	direct, ok := integrator.(*physics.DirectIntegrator)
	if !ok || direct.Scale != 0.25 {
		t.Errorf("Expected direct integrator with scale 0.25, got %#v", integrator)
	}
}

func TestPolicyAndBindings(t *testing.T) {
	config := DefaultConfig()
	config.Camera.Policy = "free"

	policy, err := config.Policy()
	if err != nil || policy.Name() != "free" {
		t.Errorf("Policy() = %v, %v", policy, err)
	}

	bindings, err := config.Bindings()
	if err != nil {
		t.Fatalf("Bindings() failed: %v", err)
	}
	if _, ok := bindings.Lookup("w"); !ok {
		t.Error("Expected w to be bound")
	}
}
