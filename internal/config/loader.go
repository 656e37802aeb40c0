package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the directory under $HOME holding user configs and data.
const AppDir = ".brickshot"

// LoadBrickshot loads brickshot configuration.
// Search order: customPath -> ~/.brickshot/configs/brickshot.yaml -> ./configs/brickshot.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func LoadBrickshot(customPath string) (BrickshotConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BrickshotConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decodeBrickshot(data)
		if err != nil {
			return BrickshotConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return BrickshotConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", "brickshot.yaml")}
	if userCfgPath := userConfigPath("brickshot.yaml"); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decodeBrickshot(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg, err := decodeBrickshot(defaultBrickshotYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultBrickshotConfig(), nil
	}
	return cfg, nil
}

func decodeBrickshot(data []byte) (BrickshotConfig, error) {
	cfg := DefaultBrickshotConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BrickshotConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects configurations the simulation cannot run with.
func (c BrickshotConfig) Validate() error {
	switch {
	case c.Field.BlockSize <= 0:
		return fmt.Errorf("%w: field.block_size must be positive", ErrInvalidConfig)
	case c.Field.BallSize <= 0:
		return fmt.Errorf("%w: field.ball_size must be positive", ErrInvalidConfig)
	case c.Field.BallSize >= c.Field.BlockSize:
		return fmt.Errorf("%w: field.ball_size must be smaller than block_size", ErrInvalidConfig)
	case c.Field.Cols() < 1:
		return fmt.Errorf("%w: field.window_width must fit at least one block", ErrInvalidConfig)
	case c.Field.Rows() < 4:
		return fmt.Errorf("%w: field.window_height must fit at least four blocks", ErrInvalidConfig)
	case c.Physics.BallSpeed <= 0:
		return fmt.Errorf("%w: physics.ball_speed must be positive", ErrInvalidConfig)
	case c.Physics.MaxFrameStep <= 0:
		return fmt.Errorf("%w: physics.max_frame_step must be positive", ErrInvalidConfig)
	case c.Physics.Integration != IntegrationScaled && c.Physics.Integration != IntegrationFixed:
		return fmt.Errorf("%w: physics.integration %q is not scaled or fixed", ErrInvalidConfig, c.Physics.Integration)
	case c.Physics.Integration == IntegrationFixed && c.Physics.FixedStep <= 0:
		return fmt.Errorf("%w: physics.fixed_step must be positive", ErrInvalidConfig)
	case c.Shooter.InitialCount < 1:
		return fmt.Errorf("%w: shooter.initial_count must be at least 1", ErrInvalidConfig)
	case c.Shooter.EmitInterval < 0:
		return fmt.Errorf("%w: shooter.emit_interval must not be negative", ErrInvalidConfig)
	case c.Layout.FillRatio < 0 || c.Layout.FillRatio > 1:
		return fmt.Errorf("%w: layout.fill_ratio must be within [0, 1]", ErrInvalidConfig)
	case c.Layout.AddBallChance < 0 || c.Layout.AddBallChance > 1:
		return fmt.Errorf("%w: layout.add_ball_chance must be within [0, 1]", ErrInvalidConfig)
	case c.Layout.BaseHealth < 1:
		return fmt.Errorf("%w: layout.base_health must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// ApplyBrickshotPreset modifies the config based on a difficulty preset.
func ApplyBrickshotPreset(cfg *BrickshotConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Shooter.InitialCount = 50
		cfg.Layout.BaseHealth = 2
		cfg.Physics.BallSpeed *= 0.85
	case DifficultyHard:
		cfg.Shooter.InitialCount = 25
		cfg.Layout.BaseHealth = 6
		cfg.Physics.BallSpeed *= 1.25
	}
}
