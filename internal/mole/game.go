// Package mole implements the mole-catch game engine.
package mole

import (
	"math/rand"
	"time"
)

// Slots is the number of mole holes.
const Slots = 9

// GameSeconds is the session duration of the countdown.
const GameSeconds = 20

// SpawnInterval is how often a new mole pops up. The caller drives the
// interval; the engine only reacts to Spawn calls.
const SpawnInterval = 600 * time.Millisecond

// Game is the mole-catch session state. Two periodic processes drive it
// while playing and unpaused: a 1-second countdown tick and the spawn
// interval. Both are scheduled by the caller.
type Game struct {
	rnd      *rand.Rand
	playing  bool
	paused   bool
	over     bool
	score    int
	timeLeft int
	active   int // active slot index, -1 when none
}

// New returns an idle game backed by the given random source.
func New(rnd *rand.Rand) *Game {
	return &Game{rnd: rnd, timeLeft: GameSeconds, active: -1}
}

// Start resets score, countdown and slots and begins a session.
func (g *Game) Start() {
	g.playing = true
	g.paused = false
	g.over = false
	g.score = 0
	g.timeLeft = GameSeconds
	g.active = -1
}

// TickSecond advances the countdown by one second. It reports whether the
// session ended on this tick. Paused or idle sessions do not tick.
func (g *Game) TickSecond() bool {
	if !g.playing || g.paused {
		return false
	}
	g.timeLeft--
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.playing = false
		g.over = true
		g.active = -1
		return true
	}
	return false
}

// Spawn activates one random slot, clearing any previously active slot.
// Returns the activated index, or -1 when not playing or paused.
func (g *Game) Spawn() int {
	if !g.playing || g.paused {
		return -1
	}
	g.active = g.rnd.Intn(Slots)
	return g.active
}

// Hit resolves a strike on the given slot. A hit on the active slot scores
// one point and deactivates it immediately; anything else is a no-op.
func (g *Game) Hit(slot int) bool {
	if !g.playing || g.paused {
		return false
	}
	if slot != g.active || slot < 0 {
		return false
	}
	g.score++
	g.active = -1
	return true
}

// TogglePause suspends or resumes both periodic processes. Countdown and
// score are preserved across a pause.
func (g *Game) TogglePause() {
	if !g.playing {
		return
	}
	g.paused = !g.paused
}

// Playing reports whether a session is running.
func (g *Game) Playing() bool { return g.playing }

// Paused reports whether the session is paused.
func (g *Game) Paused() bool { return g.paused }

// Over reports whether the last session ran to completion.
func (g *Game) Over() bool { return g.over }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// TimeLeft returns the remaining seconds.
func (g *Game) TimeLeft() int { return g.timeLeft }

// Active returns the active slot index, or -1 when no mole is up.
func (g *Game) Active() int { return g.active }
