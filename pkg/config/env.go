// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables that override configuration values
const (
	EnvIntegration    = "MASON_INTEGRATION"
	EnvCameraPolicy   = "MASON_CAMERA_POLICY"
	EnvSensitivity    = "MASON_SENSITIVITY"
	EnvBoundaryRadius = "MASON_BOUNDARY_RADIUS"
	EnvTickRate       = "MASON_TICK_RATE"
	EnvMaxDelta       = "MASON_MAX_DELTA"
	EnvScripts        = "MASON_SCRIPTS"
	EnvPivotSync      = "MASON_PIVOT_SYNC"
)

// ApplyEnv overrides c with any MASON_* variables that are set. Values that
// fail to parse are reported and leave c partially updated.
func ApplyEnv(c *Config) error {
	if v, ok := lookup(EnvIntegration); ok {
		c.Player.Integration = strings.ToLower(v)
	}
	if v, ok := lookup(EnvCameraPolicy); ok {
		c.Camera.Policy = strings.ToLower(v)
	}
	if err := envFloat(EnvSensitivity, &c.Camera.Sensitivity); err != nil {
		return err
	}
	if err := envFloat(EnvBoundaryRadius, &c.Physics.BoundaryRadius); err != nil {
		return err
	}
	if err := envInt(EnvTickRate, &c.Loop.TickRate); err != nil {
		return err
	}
	if err := envFloat(EnvMaxDelta, &c.Loop.MaxDelta); err != nil {
		return err
	}
	if err := envBool(EnvPivotSync, &c.Camera.PivotSync); err != nil {
		return err
	}
	if v, ok := lookup(EnvScripts); ok {
		c.Loop.Scripts = splitList(v)
	}
	return nil
}

// LoadConfigFromEnv returns the default configuration with environment
// overrides applied and validated
func LoadConfigFromEnv() (*Config, error) {
	c := DefaultConfig()
	if err := ApplyEnv(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func envFloat(key string, dst *float64) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = f
	return nil
}

func envInt(key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
