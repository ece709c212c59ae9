package blocks

import (
	"math/rand"
	"testing"
	"time"
)

func newTestWorld() *World {
	return New(rand.New(rand.NewSource(1)))
}

func TestOverlaps(t *testing.T) {
	player := Rect{X: 180, Y: 570, W: 40, H: 20}
	if !Overlaps(Rect{X: 190, Y: 575, W: 40, H: 20}, player) {
		t.Fatal("expected overlap for intersecting rects")
	}
	if Overlaps(Rect{X: 300, Y: 100, W: 40, H: 20}, player) {
		t.Fatal("expected no overlap without y intersection")
	}
	// Touching edges do not count as overlap.
	if Overlaps(Rect{X: 220, Y: 570, W: 40, H: 20}, player) {
		t.Fatal("expected no overlap for edge-adjacent rects")
	}
}

func TestSpawnTimerAccumulatesDelta(t *testing.T) {
	w := newTestWorld()
	w.Start()
	w.Step(350 * time.Millisecond)
	if len(w.Obstacles()) != 0 {
		t.Fatalf("obstacle spawned before interval elapsed: %d", len(w.Obstacles()))
	}
	w.Step(400 * time.Millisecond)
	if len(w.Obstacles()) != 1 {
		t.Fatalf("expected 1 obstacle after 750ms, got %d", len(w.Obstacles()))
	}
	b := w.Obstacles()[0]
	if b.X < 0 || b.X >= FieldW-BlockW {
		t.Fatalf("spawn x %f out of range", b.X)
	}
	// A fresh spawn advances once in the same tick it was created.
	if b.Y != -BlockH+b.Speed {
		t.Fatalf("spawn y = %f, want %f", b.Y, -BlockH+b.Speed)
	}
	if b.Speed < 2 || b.Speed >= 4 {
		t.Fatalf("spawn speed %f outside [2,4)", b.Speed)
	}
}

func TestObstacleMovesPerTickNotPerDelta(t *testing.T) {
	w := newTestWorld()
	w.Start()
	w.obstacles = []Obstacle{{ID: 1, X: 0, Y: 0, Speed: 3}}
	w.Step(time.Millisecond)
	if y := w.Obstacles()[0].Y; y != 3 {
		t.Fatalf("y = %f after 1ms tick, want 3", y)
	}
	w.Step(100 * time.Millisecond)
	if y := w.Obstacles()[0].Y; y != 6 {
		t.Fatalf("y = %f after 100ms tick, want 6", y)
	}
}

func TestPlayerMovementClampedToField(t *testing.T) {
	w := newTestWorld()
	w.Start()
	w.SetHeld(true, false)
	for i := 0; i < 100; i++ {
		w.Step(time.Millisecond)
	}
	if x := w.PlayerRect().X; x != 0 {
		t.Fatalf("player x = %f, want clamped to 0", x)
	}
	w.SetHeld(false, true)
	for i := 0; i < 200; i++ {
		w.Step(time.Millisecond)
	}
	if x := w.PlayerRect().X; x != FieldW-PlayerW {
		t.Fatalf("player x = %f, want clamped to %d", x, FieldW-PlayerW)
	}
}

func TestDodgedObstacleScores(t *testing.T) {
	w := newTestWorld()
	w.Start()
	w.obstacles = []Obstacle{{ID: 1, X: 0, Y: FieldH - 1, Speed: 2}}
	w.Step(time.Millisecond)
	if w.Score() != 1 {
		t.Fatalf("score = %d, want 1", w.Score())
	}
	if len(w.Obstacles()) != 0 {
		t.Fatalf("expected dodged obstacle removed, got %d", len(w.Obstacles()))
	}
	if w.GameOver() {
		t.Fatal("dodge ended the session")
	}
}

func TestCollisionEndsSession(t *testing.T) {
	w := newTestWorld()
	w.Start()
	px := w.PlayerRect().X
	w.obstacles = []Obstacle{
		{ID: 1, X: px, Y: PlayerY - BlockH - 1, Speed: 3},
		{ID: 2, X: 0, Y: FieldH - 1, Speed: 2},
	}
	w.Step(time.Millisecond)
	if !w.GameOver() {
		t.Fatal("expected collision to end the session")
	}
	// The second obstacle is not processed after the collision.
	if w.Score() != 0 {
		t.Fatalf("score = %d, want 0 after collision tick", w.Score())
	}
	w.Step(time.Millisecond)
	if w.Score() != 0 {
		t.Fatalf("ended session kept simulating: score = %d", w.Score())
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	w := newTestWorld()
	w.Start()
	w.obstacles = []Obstacle{{ID: 1, X: 0, Y: 10, Speed: 3}}
	w.SetPaused(true)
	w.Step(time.Second)
	if y := w.Obstacles()[0].Y; y != 10 {
		t.Fatalf("paused obstacle moved to y=%f", y)
	}
	if len(w.Obstacles()) != 1 || w.spawnTimer != 0 {
		t.Fatal("paused world accumulated spawn time")
	}
	w.SetPaused(false)
	w.Step(16 * time.Millisecond)
	if y := w.Obstacles()[0].Y; y != 13 {
		t.Fatalf("y = %f after resume, want 13", y)
	}
}
