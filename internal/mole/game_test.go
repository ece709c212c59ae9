package mole

import (
	"math/rand"
	"testing"
)

func newTestGame() *Game {
	return New(rand.New(rand.NewSource(1)))
}

func TestCountdownEndsSession(t *testing.T) {
	g := newTestGame()
	g.Start()
	for i := 0; i < GameSeconds-1; i++ {
		if g.TickSecond() {
			t.Fatalf("session ended early on tick %d", i+1)
		}
	}
	if !g.TickSecond() {
		t.Fatal("expected session to end on the final tick")
	}
	if !g.Over() || g.Playing() {
		t.Fatalf("expected over session, got over=%v playing=%v", g.Over(), g.Playing())
	}
	if g.Score() != 0 {
		t.Fatalf("expected score 0 without hits, got %d", g.Score())
	}
	if g.TimeLeft() != 0 {
		t.Fatalf("expected 0 seconds left, got %d", g.TimeLeft())
	}
}

func TestSpawnActivatesSingleSlot(t *testing.T) {
	g := newTestGame()
	g.Start()
	first := g.Spawn()
	if first < 0 || first >= Slots {
		t.Fatalf("spawned slot %d out of range", first)
	}
	second := g.Spawn()
	if second < 0 || second >= Slots {
		t.Fatalf("spawned slot %d out of range", second)
	}
	// Only the latest slot is active.
	if g.Active() != second {
		t.Fatalf("active = %d, want %d", g.Active(), second)
	}
}

func TestHitScoresAndDeactivates(t *testing.T) {
	g := newTestGame()
	g.Start()
	slot := g.Spawn()
	if !g.Hit(slot) {
		t.Fatal("expected hit on active slot")
	}
	if g.Score() != 1 {
		t.Fatalf("score = %d, want 1", g.Score())
	}
	if g.Active() != -1 {
		t.Fatalf("expected slot deactivated after hit, active = %d", g.Active())
	}
	// Duplicate strikes are no-ops.
	if g.Hit(slot) {
		t.Fatal("hit on deactivated slot scored")
	}
	if g.Score() != 1 {
		t.Fatalf("score changed on dead hit: %d", g.Score())
	}
}

func TestHitOnInactiveSlotIgnored(t *testing.T) {
	g := newTestGame()
	g.Start()
	active := g.Spawn()
	other := (active + 1) % Slots
	if g.Hit(other) {
		t.Fatal("hit on inactive slot scored")
	}
	if g.Score() != 0 {
		t.Fatalf("score = %d, want 0", g.Score())
	}
	if g.Active() != active {
		t.Fatalf("active slot changed: %d -> %d", active, g.Active())
	}
}

func TestPauseSuspendsProcesses(t *testing.T) {
	g := newTestGame()
	g.Start()
	g.Spawn()
	g.Hit(g.Active())
	g.TickSecond()
	score, left := g.Score(), g.TimeLeft()

	g.TogglePause()
	if g.TickSecond() {
		t.Fatal("paused session ticked to completion")
	}
	if g.Spawn() != -1 {
		t.Fatal("paused session spawned a mole")
	}
	if g.Hit(0) {
		t.Fatal("paused session accepted a hit")
	}
	if g.Score() != score || g.TimeLeft() != left {
		t.Fatalf("pause lost state: score %d->%d timeLeft %d->%d", score, g.Score(), left, g.TimeLeft())
	}

	g.TogglePause()
	if g.TickSecond() {
		t.Fatal("session ended immediately after resume")
	}
	if g.TimeLeft() != left-1 {
		t.Fatalf("timeLeft = %d, want %d", g.TimeLeft(), left-1)
	}
}
