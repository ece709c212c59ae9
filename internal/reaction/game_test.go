package reaction

import (
	"math/rand"
	"testing"
	"time"
)

func newTestGame() *Game {
	return New(rand.New(rand.NewSource(1)))
}

func TestFullSessionRecordsFiveAttempts(t *testing.T) {
	g := newTestGame()
	base := time.Unix(0, 0)
	latencies := []int64{180, 220, 260, 300, 340}

	for i, lat := range latencies {
		out := g.Press(base)
		if out.Kind != OutcomeArmed {
			t.Fatalf("round %d: expected OutcomeArmed, got %v", i, out.Kind)
		}
		if out.Delay < 2*time.Second || out.Delay >= 5*time.Second {
			t.Fatalf("round %d: signal delay %v outside [2s,5s)", i, out.Delay)
		}
		signalAt := base.Add(out.Delay)
		if !g.Signal(out.Generation, signalAt) {
			t.Fatalf("round %d: signal rejected", i)
		}
		out = g.Press(signalAt.Add(time.Duration(lat) * time.Millisecond))
		if i < len(latencies)-1 {
			if out.Kind != OutcomeRecorded {
				t.Fatalf("round %d: expected OutcomeRecorded, got %v", i, out.Kind)
			}
		} else if out.Kind != OutcomeCompleted {
			t.Fatalf("round %d: expected OutcomeCompleted, got %v", i, out.Kind)
		}
		if out.LatencyMs != lat {
			t.Fatalf("round %d: latency = %d, want %d", i, out.LatencyMs, lat)
		}
	}

	if g.State() != Done {
		t.Fatalf("expected Done, got %v", g.State())
	}
	if len(g.Results()) != Attempts {
		t.Fatalf("expected %d results, got %d", Attempts, len(g.Results()))
	}
	if mean := g.Mean(); mean != 260 {
		t.Fatalf("mean = %d, want 260", mean)
	}
	if rank := Rank(g.Mean()); rank != "Excellent" {
		t.Fatalf("rank = %q, want Excellent", rank)
	}
	// Done is terminal until Reset.
	if out := g.Press(base); out.Kind != OutcomeIgnored {
		t.Fatalf("expected OutcomeIgnored in Done, got %v", out.Kind)
	}
}

func TestFalseStartCancelsSignal(t *testing.T) {
	g := newTestGame()
	now := time.Unix(0, 0)

	out := g.Press(now)
	gen := out.Generation
	out = g.Press(now.Add(time.Second))
	if out.Kind != OutcomeFalseStart {
		t.Fatalf("expected OutcomeFalseStart, got %v", out.Kind)
	}
	if g.State() != Waiting {
		t.Fatalf("expected Waiting after false start, got %v", g.State())
	}
	// The cancelled signal must not fire.
	if g.Signal(gen, now.Add(3*time.Second)) {
		t.Fatal("stale signal accepted after false start")
	}
	if len(g.Results()) != 0 {
		t.Fatalf("false start recorded a latency: %v", g.Results())
	}
}

func TestStaleSignalIgnoredAfterReset(t *testing.T) {
	g := newTestGame()
	now := time.Unix(0, 0)
	out := g.Press(now)
	g.Reset()
	if g.Signal(out.Generation, now.Add(3*time.Second)) {
		t.Fatal("stale signal accepted after reset")
	}
	if g.State() != Waiting {
		t.Fatalf("expected Waiting after reset, got %v", g.State())
	}
}

func TestMeanRoundsToNearestMillisecond(t *testing.T) {
	g := newTestGame()
	g.results = []int64{201, 202}
	if mean := g.Mean(); mean != 202 {
		t.Fatalf("mean = %d, want 202", mean)
	}
	g.results = []int64{201, 202, 202}
	if mean := g.Mean(); mean != 202 {
		t.Fatalf("mean = %d, want 202", mean)
	}
}

func TestRankThresholds(t *testing.T) {
	cases := []struct {
		mean int64
		want string
	}{
		{150, "GOD"},
		{199, "GOD"},
		{200, "Pro Gamer"},
		{249, "Pro Gamer"},
		{250, "Excellent"},
		{260, "Excellent"},
		{299, "Excellent"},
		{300, "Good"},
		{350, "Normal"},
		{399, "Normal"},
		{400, "Turtle"},
		{1000, "Turtle"},
	}
	for _, tc := range cases {
		if got := Rank(tc.mean); got != tc.want {
			t.Fatalf("Rank(%d) = %q, want %q", tc.mean, got, tc.want)
		}
	}
}
