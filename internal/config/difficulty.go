package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/round.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/round.
func (d *DifficultyManager) Level(score int, round int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "round":
		progress = float64(round) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the ball speed for the current difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, round int) float64 {
	level := d.Level(score, round)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// Health returns the brick health for the current difficulty level.
// Health grows with the round number on top of the level scaling, and never
// drops below 1.
func (d *DifficultyManager) Health(baseHealth int, score int, round int) int {
	level := d.Level(score, round)
	h := float64(baseHealth+max(round-1, 0)) * (1.0 + level*d.cfg.Scaling.HealthMultiplier)
	return max(int(math.Round(h)), 1)
}

// FillRatio returns the share of occupied layout cells for the current level.
func (d *DifficultyManager) FillRatio(base float64, score int, round int) float64 {
	level := d.Level(score, round)
	return clampF(base+level*d.cfg.Scaling.FillBonus, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
