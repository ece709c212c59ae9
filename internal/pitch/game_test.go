package pitch

import (
	"math/rand"
	"testing"
)

func newTestGame(seed int64) *Game {
	return New(rand.New(rand.NewSource(seed)))
}

func TestStartResetsSession(t *testing.T) {
	g := newTestGame(1)
	g.Start()
	if g.Status() != Playing {
		t.Fatalf("expected Playing, got %v", g.Status())
	}
	if g.Level() != 1 || g.Question() != 1 || g.Score() != 0 || g.Lives() != 1 {
		t.Fatalf("unexpected initial state: level=%d question=%d score=%d lives=%d",
			g.Level(), g.Question(), g.Score(), g.Lives())
	}
	if len(g.Targets()) != Levels[1].NoteCount {
		t.Fatalf("expected %d targets, got %d", Levels[1].NoteCount, len(g.Targets()))
	}
}

func TestPressIgnoredWhenNotPlaying(t *testing.T) {
	g := newTestGame(1)
	if res := g.Press(0); res.Judgment != Ignored {
		t.Fatalf("expected Ignored before start, got %v", res.Judgment)
	}
}

func TestFullClearScoresMaximum(t *testing.T) {
	g := newTestGame(5)
	g.Start()
	prevScore := 0
	for g.Status() == Playing {
		targets := append([]int(nil), g.Targets()...)
		for i, idx := range targets {
			res := g.Press(idx)
			if i < len(targets)-1 {
				if res.Judgment != Hit {
					t.Fatalf("expected Hit, got %v", res.Judgment)
				}
			} else if res.Judgment != Complete {
				t.Fatalf("expected Complete, got %v", res.Judgment)
			}
		}
		if g.Score() < prevScore {
			t.Fatalf("score decreased: %d -> %d", prevScore, g.Score())
		}
		prevScore = g.Score()
		g.Advance()
	}
	if g.Status() != Finished {
		t.Fatalf("expected Finished, got %v", g.Status())
	}
	if g.Score() != 5250 {
		t.Fatalf("expected full-clear score 5250, got %d", g.Score())
	}
}

func TestMissConsumesLifeBeforeStimulus(t *testing.T) {
	g := newTestGame(2)
	g.Start()
	targets := append([]int(nil), g.Targets()...)
	wrong := pickNonTarget(t, g)

	res := g.Press(wrong)
	if res.Judgment != Miss {
		t.Fatalf("expected Miss on first wrong key, got %v", res.Judgment)
	}
	if g.Lives() != 0 {
		t.Fatalf("expected 0 lives after miss, got %d", g.Lives())
	}
	if g.Status() != Playing {
		t.Fatalf("expected Playing after first miss, got %v", g.Status())
	}
	// The stimulus must survive the miss.
	after := g.Targets()
	for i := range targets {
		if targets[i] != after[i] {
			t.Fatalf("stimulus changed after miss: %v -> %v", targets, after)
		}
	}

	res = g.Press(wrong)
	if res.Judgment != Fatal {
		t.Fatalf("expected Fatal on second wrong key, got %v", res.Judgment)
	}
	if g.Status() != GameOver {
		t.Fatalf("expected GameOver, got %v", g.Status())
	}
}

func TestRepeatedPressOnFoundKeyIgnored(t *testing.T) {
	g := newTestGame(9)
	g.Start()
	// Find a level with multiple targets so a found key can be re-pressed.
	for g.Level() < 3 {
		for _, idx := range append([]int(nil), g.Targets()...) {
			g.Press(idx)
		}
		g.Advance()
	}
	first := g.Targets()[0]
	if res := g.Press(first); res.Judgment != Hit {
		t.Fatalf("expected Hit, got %v", res.Judgment)
	}
	score := g.Score()
	if res := g.Press(first); res.Judgment != Ignored {
		t.Fatalf("expected Ignored on duplicate press, got %v", res.Judgment)
	}
	if g.Score() != score {
		t.Fatalf("duplicate press changed score: %d -> %d", score, g.Score())
	}
}

func TestAdvanceTransitionsLevels(t *testing.T) {
	g := newTestGame(11)
	g.Start()
	for q := 0; q < QuestionsPerLevel; q++ {
		if g.Level() != 1 {
			t.Fatalf("expected level 1, got %d", g.Level())
		}
		for _, idx := range append([]int(nil), g.Targets()...) {
			g.Press(idx)
		}
		g.Advance()
	}
	if g.Level() != 2 || g.Question() != 1 {
		t.Fatalf("expected level 2 question 1, got level %d question %d", g.Level(), g.Question())
	}
	if len(g.gen.used) != 1 {
		t.Fatalf("expected used set cleared on level transition, got %d entries", len(g.gen.used))
	}
}

func TestRankThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{5250, "Absolute God"},
		{5000, "Absolute God"},
		{4999, "Maestro"},
		{4000, "Maestro"},
		{3500, "Professional"},
		{2000, "Musician"},
		{1000, "Student"},
		{999, "Novice"},
		{0, "Novice"},
	}
	for _, tc := range cases {
		if got := Rank(tc.score); got != tc.want {
			t.Fatalf("Rank(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func pickNonTarget(t *testing.T, g *Game) int {
	t.Helper()
	for i := range Notes {
		if !g.isTarget(i) {
			return i
		}
	}
	t.Fatal("no non-target key available")
	return -1
}
