// Package config loads editor settings from YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains all editor settings
type Config struct {
	Editor     EditorConfig     `yaml:"editor"`
	Picking    PickingConfig    `yaml:"picking"`
	History    HistoryConfig    `yaml:"history"`
	Operations OperationsConfig `yaml:"operations"`
	Autosave   AutosaveConfig   `yaml:"autosave"`
}

// EditorConfig contains interaction settings
type EditorConfig struct {
	// SnapEnabled snaps without holding shift
	SnapEnabled bool    `yaml:"snap_enabled"`
	SnapStep    float64 `yaml:"snap_step"`
	// SnapAngle is the rotation increment in degrees
	SnapAngle float64 `yaml:"snap_angle"`
	ScaleStep float64 `yaml:"scale_step"`
	// GroundY is the height of the reference plane new vertices land on
	GroundY float64 `yaml:"ground_y"`
}

// PickingConfig contains pick radii in normalized device coordinates
type PickingConfig struct {
	VertexThreshold float64 `yaml:"vertex_threshold"`
	EdgeThreshold   float64 `yaml:"edge_threshold"`
}

// HistoryConfig contains undo settings
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// OperationsConfig contains parameters of the editing operations
type OperationsConfig struct {
	ExtrudeHeight    float64 `yaml:"extrude_height"`
	InsetAmount      float64 `yaml:"inset_amount"`
	InsetHeight      float64 `yaml:"inset_height"`
	SmoothIterations int     `yaml:"smooth_iterations"`
	SmoothLambda     float64 `yaml:"smooth_lambda"`
	WeldEpsilon      float64 `yaml:"weld_epsilon"`
}

// AutosaveConfig contains autosave settings
type AutosaveConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Path     string        `yaml:"path"`
	Key      string        `yaml:"key"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Editor: EditorConfig{
			SnapStep:  0.5,
			SnapAngle: 15,
			ScaleStep: 0.1,
		},
		Picking: PickingConfig{
			VertexThreshold: 0.05,
			EdgeThreshold:   0.03,
		},
		History: HistoryConfig{
			Capacity: 150,
		},
		Operations: OperationsConfig{
			ExtrudeHeight:    0.2,
			InsetAmount:      0.1,
			InsetHeight:      0,
			SmoothIterations: 1,
			SmoothLambda:     0.5,
			WeldEpsilon:      1e-4,
		},
		Autosave: AutosaveConfig{
			Enabled:  true,
			Interval: 3 * time.Second,
			Path:     defaultStorePath(),
			Key:      "modeling.autosave",
		},
	}
}

func defaultStorePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".gomesh"
	}
	return dir + string(os.PathSeparator) + "gomesh"
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that all values are usable
func (c Config) Validate() error {
	var errs []error
	if c.Editor.SnapStep <= 0 {
		errs = append(errs, errors.New("editor.snap_step must be positive"))
	}
	if c.Editor.SnapAngle <= 0 {
		errs = append(errs, errors.New("editor.snap_angle must be positive"))
	}
	if c.Editor.ScaleStep <= 0 {
		errs = append(errs, errors.New("editor.scale_step must be positive"))
	}
	if c.Picking.VertexThreshold <= 0 || c.Picking.EdgeThreshold <= 0 {
		errs = append(errs, errors.New("picking thresholds must be positive"))
	}
	if c.History.Capacity < 1 {
		errs = append(errs, errors.New("history.capacity must be at least 1"))
	}
	if c.Operations.SmoothIterations < 0 {
		errs = append(errs, errors.New("operations.smooth_iterations must not be negative"))
	}
	if c.Operations.WeldEpsilon <= 0 {
		errs = append(errs, errors.New("operations.weld_epsilon must be positive"))
	}
	if c.Autosave.Enabled && c.Autosave.Interval <= 0 {
		errs = append(errs, errors.New("autosave.interval must be positive"))
	}
	return errors.Join(errs...)
}

// Write stores the configuration as YAML
func (c Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
