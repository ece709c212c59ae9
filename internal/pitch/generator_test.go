package pitch

import (
	"math/rand"
	"testing"
)

func TestValidateLevels(t *testing.T) {
	if err := ValidateLevels(); err != nil {
		t.Fatalf("level configuration invalid: %v", err)
	}
}

func TestNextRespectsLevelConfig(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	gen := NewGenerator(rnd)
	for lvl := 1; lvl <= MaxLevel; lvl++ {
		cfg := Levels[lvl]
		gen.Reset()
		for i := 0; i < 10; i++ {
			targets := gen.Next(lvl)
			if len(targets) != cfg.NoteCount {
				t.Fatalf("level %d: expected %d notes, got %d", lvl, cfg.NoteCount, len(targets))
			}
			seen := map[int]struct{}{}
			prev := -1
			for _, idx := range targets {
				if idx < 0 || idx >= len(Notes) {
					t.Fatalf("level %d: index %d out of range", lvl, idx)
				}
				if !cfg.AllowBlack && Notes[idx].Black {
					t.Fatalf("level %d: black key %d drawn with black keys disallowed", lvl, idx)
				}
				if _, dup := seen[idx]; dup {
					t.Fatalf("level %d: duplicate index %d in stimulus", lvl, idx)
				}
				seen[idx] = struct{}{}
				if idx <= prev {
					t.Fatalf("level %d: indices not sorted ascending: %v", lvl, targets)
				}
				prev = idx
			}
		}
	}
}

func TestNextAvoidsRepeatsWithinLevelPass(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	gen := NewGenerator(rnd)
	// Level 3 draws 2 of 8 white keys: 28 distinct combinations.
	keys := map[string]struct{}{}
	for i := 0; i < 20; i++ {
		key := canonicalKey(gen.Next(3))
		if _, dup := keys[key]; dup {
			t.Fatalf("draw %d repeated combination %s", i, key)
		}
		keys[key] = struct{}{}
	}
}

func TestResetClearsUsedSet(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	gen := NewGenerator(rnd)
	// Level 1 has 8 possible single-note stimuli; exhaust them.
	for i := 0; i < 8; i++ {
		gen.Next(1)
	}
	if len(gen.used) != 8 {
		t.Fatalf("expected 8 used keys, got %d", len(gen.used))
	}
	gen.Reset()
	if len(gen.used) != 0 {
		t.Fatalf("expected empty used set after reset, got %d", len(gen.used))
	}
}

func TestNextAcceptsRepeatWhenPoolExhausted(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	gen := NewGenerator(rnd)
	// Draw more level-1 stimuli than there are combinations. The retry
	// budget must run out and accept a repeat instead of blocking.
	for i := 0; i < 12; i++ {
		targets := gen.Next(1)
		if len(targets) != 1 {
			t.Fatalf("draw %d: expected 1 note, got %d", i, len(targets))
		}
	}
}
