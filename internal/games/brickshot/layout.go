package brickshot

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/brickshot/internal/config"
)

// BrickKind is the content of one layout cell.
type BrickKind int

const (
	BrickNone BrickKind = iota
	BrickStandard
	BrickAddBall
)

// BrickSpec places one brick on the grid. Rows count from the first brick
// row, below the configured top offset.
type BrickSpec struct {
	Col    int
	Row    int
	Kind   BrickKind
	Health uint
}

// LayoutGenerator produces the bricks of a new layout.
// round starts at 1 and grows with every layout cleared in the same game.
type LayoutGenerator interface {
	Generate(cols, rows, round int) []BrickSpec
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 0x9E3779B97F4A7C15
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// State returns the internal state, for snapshots.
func (r *SimpleRNG) State() uint64 {
	return r.state
}

// RandomLayout scatters bricks over the top rows of the field.
// Health and density follow the difficulty manager when one is set.
type RandomLayout struct {
	cfg        config.LayoutConfig
	difficulty *config.DifficultyManager
	rng        *SimpleRNG
}

// NewRandomLayout creates a seeded random layout generator.
func NewRandomLayout(cfg config.LayoutConfig, difficulty *config.DifficultyManager, seed int64) *RandomLayout {
	return &RandomLayout{cfg: cfg, difficulty: difficulty, rng: NewRNG(seed)}
}

// RNG exposes the generator state, for snapshots.
func (l *RandomLayout) RNG() *SimpleRNG {
	return l.rng
}

// Generate implements LayoutGenerator.
func (l *RandomLayout) Generate(cols, rows, round int) []BrickSpec {
	if l.cfg.Rows > 0 {
		rows = min(rows, l.cfg.Rows)
	}
	if cols <= 0 || rows <= 0 {
		return nil
	}

	fill := l.cfg.FillRatio
	health := max(l.cfg.BaseHealth, 1)
	if l.difficulty != nil {
		fill = l.difficulty.FillRatio(fill, 0, round)
		health = l.difficulty.Health(health, 0, round)
	}

	var specs []BrickSpec
	standard := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if l.rng.Float64() >= fill {
				continue
			}
			if l.rng.Float64() < l.cfg.AddBallChance {
				specs = append(specs, BrickSpec{Col: col, Row: row, Kind: BrickAddBall})
				continue
			}
			specs = append(specs, BrickSpec{Col: col, Row: row, Kind: BrickStandard, Health: l.health(health)})
			standard++
		}
	}

	if standard == 0 {
		specs = append(specs, BrickSpec{Col: cols / 2, Row: 0, Kind: BrickStandard, Health: l.health(health)})
	}
	return specs
}

// health jitters the nominal health between half and one and a half times.
func (l *RandomLayout) health(nominal int) uint {
	h := nominal/2 + 1 + l.rng.Intn(nominal)
	if l.cfg.MaxHealth > 0 {
		h = min(h, l.cfg.MaxHealth)
	}
	return uint(max(h, 1)) //#nosec G115 -- h is at least 1
}

// FileLayout is a hand-made layout read from YAML:
//
//	name: gate
//	health_per_round: 2
//	rows:
//	  - "..3333.."
//	  - ".+5..5+."
//
// '.' or ' ' is empty, '+' is an add-ball brick and a digit is a standard
// brick with that health. Every later round adds health_per_round to each
// standard brick.
type FileLayout struct {
	Name           string   `yaml:"name"`
	HealthPerRound uint     `yaml:"health_per_round"`
	Rows           []string `yaml:"rows"`
}

// ErrEmptyLayout is returned for a layout without standard bricks.
var ErrEmptyLayout = errors.New("layout has no standard bricks")

// LoadFileLayout reads and validates a YAML layout file.
func LoadFileLayout(path string) (*FileLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	l, err := ParseFileLayout(data)
	if err != nil {
		return nil, fmt.Errorf("layout: %s: %w", path, err)
	}
	return l, nil
}

// ParseFileLayout decodes and validates a YAML layout.
func ParseFileLayout(data []byte) (*FileLayout, error) {
	var l FileLayout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, err
	}

	standard := 0
	for r, line := range l.Rows {
		for c, ch := range []rune(line) {
			kind, _, ok := parseCell(ch)
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unknown cell %q", r, c, ch)
			}
			if kind == BrickStandard {
				standard++
			}
		}
	}
	if standard == 0 {
		return nil, ErrEmptyLayout
	}
	return &l, nil
}

func parseCell(ch rune) (BrickKind, uint, bool) {
	switch {
	case ch == '.' || ch == ' ':
		return BrickNone, 0, true
	case ch == '+':
		return BrickAddBall, 0, true
	case ch >= '1' && ch <= '9':
		return BrickStandard, uint(ch - '0'), true
	default:
		return BrickNone, 0, false
	}
}

// Generate implements LayoutGenerator. Cells outside cols x rows are dropped.
func (l *FileLayout) Generate(cols, rows, round int) []BrickSpec {
	bonus := l.HealthPerRound * uint(max(round-1, 0)) //#nosec G115 -- non-negative
	var specs []BrickSpec
	for r, line := range l.Rows {
		if r >= rows {
			break
		}
		for c, ch := range []rune(line) {
			if c >= cols {
				break
			}
			kind, health, ok := parseCell(ch)
			if !ok || kind == BrickNone {
				continue
			}
			spec := BrickSpec{Col: c, Row: r, Kind: kind}
			if kind == BrickStandard {
				spec.Health = health + bonus
			}
			specs = append(specs, spec)
		}
	}
	return specs
}
