// pkg/config/env_config_test.go
package config

import (
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		config, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() failed: %v", err)
		}

		if config.Player.Integration != "velocity" {
			t.Errorf("Expected integration 'velocity', got '%s'", config.Player.Integration)
		}
		if config.Loop.TickRate != 60 {
			t.Errorf("Expected TickRate 60, got %d", config.Loop.TickRate)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv(EnvIntegration, "Direct")
		t.Setenv(EnvCameraPolicy, "FREE")
		t.Setenv(EnvSensitivity, "0.01")
		t.Setenv(EnvBoundaryRadius, "250")
		t.Setenv(EnvTickRate, "120")
		t.Setenv(EnvMaxDelta, "0.05")
		t.Setenv(EnvPivotSync, "false")
		t.Setenv(EnvScripts, "player, hud,,")

		config, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() failed: %v", err)
		}

		if config.Player.Integration != "direct" {
			t.Errorf("Expected integration 'direct', got '%s'", config.Player.Integration)
		}
		if config.Camera.Policy != "free" {
			t.Errorf("Expected policy 'free', got '%s'", config.Camera.Policy)
		}
		if config.Camera.Sensitivity != 0.01 {
			t.Errorf("Expected sensitivity 0.01, got %v", config.Camera.Sensitivity)
		}
		if config.Physics.BoundaryRadius != 250 {
			t.Errorf("Expected boundary radius 250, got %v", config.Physics.BoundaryRadius)
		}
		if config.Loop.TickRate != 120 {
			t.Errorf("Expected TickRate 120, got %d", config.Loop.TickRate)
		}
		if config.Loop.MaxDelta != 0.05 {
			t.Errorf("Expected MaxDelta 0.05, got %v", config.Loop.MaxDelta)
		}
		if config.Camera.PivotSync {
			t.Error("Expected PivotSync false")
		}
		if len(config.Loop.Scripts) != 2 || config.Loop.Scripts[0] != "player" || config.Loop.Scripts[1] != "hud" {
			t.Errorf("Expected scripts [player hud], got %v", config.Loop.Scripts)
		}
	})

	t.Run("BlankValuesIgnored", func(t *testing.T) {
		t.Setenv(EnvTickRate, "  ")

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("ApplyEnv() failed: %v", err)
		}
		if config.Loop.TickRate != 60 {
			t.Errorf("Expected TickRate 60, got %d", config.Loop.TickRate)
		}
	})

	invalid := []struct {
		name  string
		key   string
		value string
	}{
		{"InvalidFloat", EnvSensitivity, "fast"},
		{"InvalidInt", EnvTickRate, "sixty"},
		{"InvalidBool", EnvPivotSync, "maybe"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if err := ApplyEnv(DefaultConfig()); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}

	t.Run("ValidationFailure", func(t *testing.T) {
		t.Setenv(EnvCameraPolicy, "orbit")
		if _, err := LoadConfigFromEnv(); err == nil {
			t.Error("Expected validation error for unknown policy")
		}
	})
}
