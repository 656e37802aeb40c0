// Package config provides YAML-based game configuration loading and
// difficulty management for brickshot.
package config

// BrickshotConfig contains all configuration for the brickshot game.
// It is loaded once at startup and treated as immutable afterwards.
type BrickshotConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Shooter    ShooterConfig    `yaml:"shooter"`
	Layout     LayoutConfig     `yaml:"layout"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the playfield geometry in world units.
type FieldConfig struct {
	BlockSize     float64 `yaml:"block_size"`
	BallSize      float64 `yaml:"ball_size"`
	WindowWidth   float64 `yaml:"window_width"`
	WindowHeight  float64 `yaml:"window_height"`
	TopOffsetRows int     `yaml:"top_offset_rows"` // Empty rows above the first brick row
}

// Cols returns the number of brick columns that fit the field.
func (f FieldConfig) Cols() int {
	if f.BlockSize <= 0 {
		return 0
	}
	return int(f.WindowWidth / f.BlockSize)
}

// Rows returns the number of brick rows that fit the field.
func (f FieldConfig) Rows() int {
	if f.BlockSize <= 0 {
		return 0
	}
	return int(f.WindowHeight / f.BlockSize)
}

// Integration policies for ball movement.
const (
	IntegrationScaled = "scaled" // speed * min(dt, max_frame_step)
	IntegrationFixed  = "fixed"  // constant step per tick
)

// PhysicsConfig defines ball movement parameters.
type PhysicsConfig struct {
	BallSpeed    float64 `yaml:"ball_speed"`     // World units per second
	MaxFrameStep float64 `yaml:"max_frame_step"` // Seconds, clamps long frames
	Integration  string  `yaml:"integration"`    // "scaled" or "fixed"
	FixedStep    float64 `yaml:"fixed_step"`     // World units per tick for "fixed"
}

// ShooterConfig defines the volley.
type ShooterConfig struct {
	InitialCount int     `yaml:"initial_count"` // Balls per volley at start
	EmitInterval float64 `yaml:"emit_interval"` // Seconds between balls
}

// LayoutConfig defines how brick layouts are produced.
type LayoutConfig struct {
	File          string  `yaml:"file"`            // Optional YAML layout file
	Rows          int     `yaml:"rows"`            // Generated brick rows
	FillRatio     float64 `yaml:"fill_ratio"`      // Share of cells holding a brick
	AddBallChance float64 `yaml:"add_ball_chance"` // Share of bricks that are +1 bricks
	BaseHealth    int     `yaml:"base_health"`     // Health at round 1 and level 0
	MaxHealth     int     `yaml:"max_health"`      // Upper bound of generated health
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "round", or "none"
	MaxAt int    `yaml:"max_at"` // Score/round at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Added to ball speed at max difficulty
	HealthMultiplier float64 `yaml:"health_multiplier"` // Added to brick health at max difficulty
	FillBonus        float64 `yaml:"fill_bonus"`        // Added to fill ratio at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
// The empty string maps to DifficultyNormal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
