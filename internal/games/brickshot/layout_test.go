package brickshot

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/brickshot/internal/config"
)

func TestRNGDeterminism(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("RNG diverged at step %d", i)
		}
	}

	zero := NewRNG(0)
	if zero.Next() == 0 {
		t.Error("zero seed should not produce a stuck generator")
	}
	for i := 0; i < 100; i++ {
		if f := zero.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64() = %f, expected [0, 1)", f)
		}
		if n := zero.Intn(7); n < 0 || n >= 7 {
			t.Fatalf("Intn(7) = %d", n)
		}
	}
	if zero.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
}

func TestRandomLayoutDeterminism(t *testing.T) {
	cfg := config.DefaultBrickshotConfig().Layout
	a := NewRandomLayout(cfg, nil, 7).Generate(16, 17, 1)
	b := NewRandomLayout(cfg, nil, 7).Generate(16, 17, 1)

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should generate the same layout")
	}
}

func TestRandomLayoutBounds(t *testing.T) {
	cfg := config.DefaultBrickshotConfig().Layout
	diff := config.NewDifficultyManager(config.DefaultBrickshotConfig().Difficulty)

	for seed := int64(1); seed <= 50; seed++ {
		l := NewRandomLayout(cfg, diff, seed)
		for round := 1; round <= 5; round++ {
			specs := l.Generate(16, 17, round)
			standard := 0
			for _, s := range specs {
				if s.Col < 0 || s.Col >= 16 || s.Row < 0 || s.Row >= cfg.Rows {
					t.Fatalf("seed %d: brick out of range %+v", seed, s)
				}
				switch s.Kind {
				case BrickStandard:
					standard++
					if s.Health < 1 || int(s.Health) > cfg.MaxHealth {
						t.Fatalf("seed %d: health %d out of range", seed, s.Health)
					}
				case BrickAddBall:
					if s.Health != 0 {
						t.Fatalf("seed %d: add-ball brick with health %d", seed, s.Health)
					}
				default:
					t.Fatalf("seed %d: unexpected kind %v", seed, s.Kind)
				}
			}
			if standard == 0 {
				t.Fatalf("seed %d round %d: no standard brick", seed, round)
			}
		}
	}
}

func TestRandomLayoutEmptyFill(t *testing.T) {
	cfg := config.DefaultBrickshotConfig().Layout
	cfg.FillRatio = 0

	specs := NewRandomLayout(cfg, nil, 3).Generate(16, 17, 1)
	if len(specs) != 1 || specs[0].Kind != BrickStandard || specs[0].Col != 8 {
		t.Errorf("Generate() = %+v, expected one fallback brick in the middle", specs)
	}
}

const testLayoutYAML = `
name: test
health_per_round: 2
rows:
  - "1.+"
  - "9 3"
`

func TestParseFileLayout(t *testing.T) {
	l, err := ParseFileLayout([]byte(testLayoutYAML))
	if err != nil {
		t.Fatalf("ParseFileLayout() error = %v", err)
	}
	if l.Name != "test" || l.HealthPerRound != 2 {
		t.Errorf("ParseFileLayout() = %+v", l)
	}

	expected := []BrickSpec{
		{Col: 0, Row: 0, Kind: BrickStandard, Health: 1},
		{Col: 2, Row: 0, Kind: BrickAddBall},
		{Col: 0, Row: 1, Kind: BrickStandard, Health: 9},
		{Col: 2, Row: 1, Kind: BrickStandard, Health: 3},
	}
	if got := l.Generate(10, 10, 1); !reflect.DeepEqual(got, expected) {
		t.Errorf("Generate() = %+v, expected %+v", got, expected)
	}
}

func TestFileLayoutRoundBonus(t *testing.T) {
	l, err := ParseFileLayout([]byte(testLayoutYAML))
	if err != nil {
		t.Fatal(err)
	}

	specs := l.Generate(10, 10, 3)
	if specs[0].Health != 5 {
		t.Errorf("round 3 health = %d, expected 1 + 2*2", specs[0].Health)
	}
	if specs[1].Health != 0 {
		t.Errorf("add-ball brick got health %d", specs[1].Health)
	}
}

func TestFileLayoutClipping(t *testing.T) {
	l, err := ParseFileLayout([]byte(testLayoutYAML))
	if err != nil {
		t.Fatal(err)
	}

	specs := l.Generate(2, 1, 1)
	if len(specs) != 1 || specs[0].Col != 0 || specs[0].Row != 0 {
		t.Errorf("Generate(2, 1) = %+v, expected only the top-left brick", specs)
	}
}

func TestParseFileLayoutErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		empty bool
	}{
		{"bad cell", "rows: [\"1x1\"]", false},
		{"no standard bricks", "rows: [\"..+..\"]", true},
		{"no rows", "name: nothing", true},
		{"bad yaml", "rows: [", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFileLayout([]byte(tc.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if errors.Is(err, ErrEmptyLayout) != tc.empty {
				t.Errorf("errors.Is(ErrEmptyLayout) = %v, expected %v (err: %v)", !tc.empty, tc.empty, err)
			}
		})
	}
}

func TestLoadFileLayout(t *testing.T) {
	l, err := LoadFileLayout("../../../configs/layouts/gate.yaml")
	if err != nil {
		t.Fatalf("LoadFileLayout() error = %v", err)
	}
	if l.Name != "gate" {
		t.Errorf("Name = %q, expected gate", l.Name)
	}
	if len(l.Generate(16, 17, 1)) == 0 {
		t.Error("gate layout should place bricks")
	}

	if _, err := LoadFileLayout("does/not/exist.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
