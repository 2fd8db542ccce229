// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/mason/pkg/camera"
	"github.com/opd-ai/mason/pkg/input"
	"github.com/opd-ai/mason/pkg/physics"
	"github.com/opd-ai/mason/pkg/validation"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrUnknownFormat is returned for config paths with an unsupported extension
var ErrUnknownFormat = errors.New("unknown config format")

// Config contains the configuration for a mason game
type Config struct {
	Player  PlayerConfig  `json:"player" yaml:"player"`
	Camera  CameraConfig  `json:"camera" yaml:"camera"`
	Physics PhysicsConfig `json:"physics" yaml:"physics"`
	Balls   BallsConfig   `json:"balls" yaml:"balls"`
	Input   InputConfig   `json:"input" yaml:"input"`
	Loop    LoopConfig    `json:"loop" yaml:"loop"`
}

// PlayerConfig configures the player body and its locomotion
type PlayerConfig struct {
	Integration       string     `json:"integration" yaml:"integration"`
	DirectScale       float64    `json:"directScale" yaml:"directScale"`
	Accel             float64    `json:"accel" yaml:"accel"`
	MaxSpeed          float64    `json:"maxSpeed" yaml:"maxSpeed"`
	FloorSpeed        float64    `json:"floorSpeed" yaml:"floorSpeed"`
	Drag              float64    `json:"drag" yaml:"drag"`
	Start             [3]float64 `json:"start" yaml:"start"`
	CapsuleHalfHeight float64    `json:"capsuleHalfHeight" yaml:"capsuleHalfHeight"`
	CapsuleRadius     float64    `json:"capsuleRadius" yaml:"capsuleRadius"`
	Friction          float64    `json:"friction" yaml:"friction"`
	GravityScale      float64    `json:"gravityScale" yaml:"gravityScale"`
	CanSleep          bool       `json:"canSleep" yaml:"canSleep"`
}

// CameraConfig configures the player's camera rig and the free camera
type CameraConfig struct {
	Policy      string     `json:"policy" yaml:"policy"`
	Sensitivity float64    `json:"sensitivity" yaml:"sensitivity"`
	Offset      [3]float64 `json:"offset" yaml:"offset"`
	ZFar        float64    `json:"zFar" yaml:"zFar"`
	PivotSync   bool       `json:"pivotSync" yaml:"pivotSync"`
	// FreeSensitivity is the free camera's mouse sensitivity in
	// thousandths of a radian per unit.
	FreeSensitivity float64 `json:"freeSensitivity" yaml:"freeSensitivity"`
}

// PhysicsConfig contains scene physics configuration
type PhysicsConfig struct {
	Gravity        [3]float64 `json:"gravity" yaml:"gravity"`
	BoundaryRadius float64    `json:"boundaryRadius" yaml:"boundaryRadius"`
	BoundaryName   string     `json:"boundaryName" yaml:"boundaryName"`
}

// BallsConfig configures the decorative balls
type BallsConfig struct {
	Positions    [][3]float64 `json:"positions" yaml:"positions"`
	Radius       float64      `json:"radius" yaml:"radius"`
	GravityScale float64      `json:"gravityScale" yaml:"gravityScale"`
	CCD          bool         `json:"ccd" yaml:"ccd"`
}

// InputConfig maps host key names to thrust directions
type InputConfig struct {
	Bindings   map[string]string `json:"bindings" yaml:"bindings"`
	MouseScale float64           `json:"mouseScale" yaml:"mouseScale"`
}

// LoopConfig configures the frame loop
type LoopConfig struct {
	TickRate int      `json:"tickRate" yaml:"tickRate"`
	MaxDelta float64  `json:"maxDelta" yaml:"maxDelta"`
	Scripts  []string `json:"scripts" yaml:"scripts"`
}

// DefaultConfig returns the reference configuration
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			Integration:       physics.LinearVelocity.String(),
			DirectScale:       physics.DefaultDirectScale,
			Accel:             physics.DefaultAccel,
			MaxSpeed:          physics.DefaultMaxSpeed,
			FloorSpeed:        physics.DefaultFloorSpeed,
			Drag:              physics.DefaultDrag,
			CapsuleHalfHeight: 0.55,
			CapsuleRadius:     0.15,
			Friction:          0,
			GravityScale:      0,
			CanSleep:          false,
		},
		Camera: CameraConfig{
			Policy:          camera.NewClampedPivot().Name(),
			Sensitivity:     camera.DefaultSensitivity,
			Offset:          camera.DefaultOffset,
			ZFar:            camera.DefaultZFar,
			PivotSync:       true,
			FreeSensitivity: 2.5,
		},
		Physics: PhysicsConfig{
			BoundaryRadius: 100,
			BoundaryName:   "WorldBoundary",
		},
		Balls: BallsConfig{
			Positions:    [][3]float64{{50, 0, 0}, {0, 50, 0}, {0, 0, 50}},
			Radius:       5,
			GravityScale: 0,
			CCD:          true,
		},
		Input: InputConfig{
			Bindings:   input.DefaultBindingNames(),
			MouseScale: 1,
		},
		Loop: LoopConfig{
			TickRate: 60,
			MaxDelta: 0.1,
			Scripts:  []string{"boundary", "player", "balls", "hud"},
		},
	}
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// LoadConfig loads a configuration from a JSON or YAML file. Fields the
// file leaves out keep their default values.
func LoadConfig(path string) (*Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data, f == formatYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

// Parse decodes a configuration over the defaults. Lists and the binding
// table replace the defaults rather than merging with them.
func Parse(data []byte, isYAML bool) (*Config, error) {
	config := DefaultConfig()
	config.Input.Bindings = nil

	var err error
	if isYAML {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, err
	}

	if config.Input.Bindings == nil {
		config.Input.Bindings = input.DefaultBindingNames()
	}
	return config, nil
}

// SaveConfig saves a configuration to a file, choosing JSON or YAML from
// the extension
func SaveConfig(config *Config, path string) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	data, err := Marshal(config, f == formatYAML)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal encodes a configuration as indented JSON or YAML
func Marshal(config *Config, isYAML bool) ([]byte, error) {
	if isYAML {
		return yaml.Marshal(config)
	}
	return json.MarshalIndent(config, "", "  ")
}

// Validate checks every section and returns the first problem wrapped in
// ErrInvalidConfig
func (c *Config) Validate() error {
	checks := []func() error{
		c.validateVectors,
		c.validatePlayer,
		c.validateCamera,
		c.validatePhysics,
		c.validateBalls,
		c.validateInput,
		c.validateLoop,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// validateVectors rejects NaN and infinite components in every configured
// position or direction
func (c *Config) validateVectors() error {
	vectors := map[string][3]float64{
		"player.start":    c.Player.Start,
		"camera.offset":   c.Camera.Offset,
		"physics.gravity": c.Physics.Gravity,
	}
	for i, p := range c.Balls.Positions {
		vectors[fmt.Sprintf("balls.positions[%d]", i)] = p
	}
	for name, v := range vectors {
		if !physics.IsFinite(physics.FromArray(v)) {
			return fmt.Errorf("%s has a non-finite component: %v", name, v)
		}
	}
	return nil
}

func (c *Config) validatePlayer() error {
	p := c.Player
	if _, err := c.Integrator(); err != nil {
		return err
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"player.directScale", p.DirectScale},
		{"player.accel", p.Accel},
		{"player.maxSpeed", p.MaxSpeed},
		{"player.capsuleHalfHeight", p.CapsuleHalfHeight},
		{"player.capsuleRadius", p.CapsuleRadius},
	} {
		if err := validation.ValidatePositive(v.name, v.value); err != nil {
			return err
		}
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"player.floorSpeed", p.FloorSpeed},
		{"player.drag", p.Drag},
		{"player.friction", p.Friction},
		{"player.gravityScale", p.GravityScale},
	} {
		if err := validation.ValidateNonNegative(v.name, v.value); err != nil {
			return err
		}
	}
	if p.FloorSpeed > p.MaxSpeed {
		return fmt.Errorf("player.floorSpeed %v exceeds player.maxSpeed %v", p.FloorSpeed, p.MaxSpeed)
	}
	return nil
}

func (c *Config) validateCamera() error {
	if _, ok := camera.PolicyByName(c.Camera.Policy); !ok {
		return fmt.Errorf("unknown camera policy %q (want clamped or free)", c.Camera.Policy)
	}
	if err := validation.ValidateSensitivity(c.Camera.Sensitivity); err != nil {
		return err
	}
	if err := validation.ValidateSensitivity(c.Camera.FreeSensitivity * 0.001); err != nil {
		return fmt.Errorf("camera.freeSensitivity: %w", err)
	}
	return validation.ValidatePositive("camera.zFar", c.Camera.ZFar)
}

func (c *Config) validatePhysics() error {
	if err := validation.ValidatePositive("physics.boundaryRadius", c.Physics.BoundaryRadius); err != nil {
		return err
	}
	if strings.TrimSpace(c.Physics.BoundaryName) == "" {
		return fmt.Errorf("physics.boundaryName cannot be empty")
	}
	return nil
}

func (c *Config) validateBalls() error {
	if err := validation.ValidatePositive("balls.radius", c.Balls.Radius); err != nil {
		return err
	}
	return validation.ValidateNonNegative("balls.gravityScale", c.Balls.GravityScale)
}

func (c *Config) validateInput() error {
	if _, err := input.ParseBindings(c.Input.Bindings); err != nil {
		return err
	}
	return validation.ValidatePositive("input.mouseScale", c.Input.MouseScale)
}

func (c *Config) validateLoop() error {
	if c.Loop.TickRate <= 0 || c.Loop.TickRate > 1000 {
		return fmt.Errorf("loop.tickRate must be in 1..1000: %d", c.Loop.TickRate)
	}
	if err := validation.ValidatePositive("loop.maxDelta", c.Loop.MaxDelta); err != nil {
		return err
	}
	for _, name := range c.Loop.Scripts {
		if _, err := validation.ValidateScriptName(name); err != nil {
			return err
		}
	}
	return nil
}

// Integrator builds the configured integration strategy
func (c *Config) Integrator() (physics.Integrator, error) {
	p := c.Player
	switch strings.ToLower(p.Integration) {
	case physics.PositionDelta.String():
		return &physics.DirectIntegrator{Scale: p.DirectScale}, nil
	case physics.LinearVelocity.String():
		return &physics.VelocityIntegrator{
			Accel:      p.Accel,
			MaxSpeed:   p.MaxSpeed,
			FloorSpeed: p.FloorSpeed,
			Drag:       p.Drag,
		}, nil
	default:
		return nil, fmt.Errorf("unknown integration %q (want direct or velocity)", p.Integration)
	}
}

// Policy builds the configured camera rotation policy
func (c *Config) Policy() (camera.RotationPolicy, error) {
	policy, ok := camera.PolicyByName(c.Camera.Policy)
	if !ok {
		return nil, fmt.Errorf("unknown camera policy %q", c.Camera.Policy)
	}
	return policy, nil
}

// Bindings builds the configured key bindings
func (c *Config) Bindings() (input.Bindings, error) {
	return input.ParseBindings(c.Input.Bindings)
}
