// Package blocks implements the falling-block dodging simulation.
package blocks

import (
	"math/rand"
	"time"
)

// Field and sprite dimensions, in position units.
const (
	FieldW = 400
	FieldH = 600

	PlayerW     = 40
	PlayerH     = 20
	PlayerSpeed = 6 // horizontal units per tick while a direction is held

	BlockW = 40
	BlockH = 20
)

// PlayerY is the fixed vertical position of the player rectangle.
const PlayerY = FieldH - PlayerH - 10

// SpawnInterval is the accumulated simulation time between obstacle spawns.
const SpawnInterval = 700 * time.Millisecond

// Obstacle is one falling block.
type Obstacle struct {
	ID    int
	X, Y  float64
	Speed float64 // vertical units per tick
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rectangles intersect.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// World is the falling-blocks simulation state. Step is callable from any
// scheduler; nothing in here depends on rendering cadence.
//
// Obstacle motion is a raw per-tick step, not scaled by elapsed time, so
// difficulty varies with frame rate. Kept as-is pending a product decision
// on time-scaled movement.
type World struct {
	rnd *rand.Rand

	playerX     float64
	heldLeft    bool
	heldRight   bool
	obstacles   []Obstacle
	spawnTimer  time.Duration
	score       int
	over        bool
	paused      bool
	playing     bool
	nextBlockID int
}

// New returns an idle world backed by the given random source.
func New(rnd *rand.Rand) *World {
	w := &World{rnd: rnd}
	w.resetField()
	return w
}

// Start resets the field and begins a session.
func (w *World) Start() {
	w.resetField()
	w.score = 0
	w.over = false
	w.paused = false
	w.playing = true
}

func (w *World) resetField() {
	w.playerX = FieldW/2 - PlayerW/2
	w.heldLeft = false
	w.heldRight = false
	w.obstacles = nil
	w.spawnTimer = 0
}

// SetHeld records whether a direction key is currently held.
func (w *World) SetHeld(left, right bool) {
	w.heldLeft = left
	w.heldRight = right
}

// SetPaused freezes or resumes the simulation. The caller keeps ticking
// while paused so resuming does not see an inflated delta.
func (w *World) SetPaused(paused bool) {
	if !w.playing {
		return
	}
	w.paused = paused
}

// Step advances the simulation by one tick with the given elapsed time.
func (w *World) Step(dt time.Duration) {
	if !w.playing || w.over || w.paused {
		return
	}

	// Player movement: constant step per tick while held, clamped.
	if w.heldLeft {
		w.playerX -= PlayerSpeed
	}
	if w.heldRight {
		w.playerX += PlayerSpeed
	}
	if w.playerX < 0 {
		w.playerX = 0
	}
	if w.playerX > FieldW-PlayerW {
		w.playerX = FieldW - PlayerW
	}

	w.spawnTimer += dt
	if w.spawnTimer > SpawnInterval {
		w.spawnTimer = 0
		w.spawn()
	}

	player := w.PlayerRect()
	kept := w.obstacles[:0]
	for i := range w.obstacles {
		b := w.obstacles[i]
		b.Y += b.Speed

		if Overlaps(Rect{X: b.X, Y: b.Y, W: BlockW, H: BlockH}, player) {
			// First overlap ends the session; remaining obstacles are
			// not processed this tick.
			w.over = true
			w.playing = false
			w.obstacles[i] = b
			return
		}
		if b.Y > FieldH {
			// Dodged past the bottom edge.
			w.score++
			continue
		}
		kept = append(kept, b)
	}
	w.obstacles = kept
}

func (w *World) spawn() {
	w.nextBlockID++
	w.obstacles = append(w.obstacles, Obstacle{
		ID:    w.nextBlockID,
		X:     w.rnd.Float64() * (FieldW - BlockW),
		Y:     -BlockH,
		Speed: 2 + w.rnd.Float64()*2,
	})
}

// PlayerRect returns the player's bounding rectangle.
func (w *World) PlayerRect() Rect {
	return Rect{X: w.playerX, Y: PlayerY, W: PlayerW, H: PlayerH}
}

// Obstacles returns the live obstacles.
func (w *World) Obstacles() []Obstacle { return w.obstacles }

// Score returns the number of dodged blocks.
func (w *World) Score() int { return w.score }

// GameOver reports whether the session ended on a collision.
func (w *World) GameOver() bool { return w.over }

// Playing reports whether a session is running.
func (w *World) Playing() bool { return w.playing }

// Paused reports whether the simulation is frozen.
func (w *World) Paused() bool { return w.paused }
