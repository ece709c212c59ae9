// Package reaction implements the reaction-latency test.
package reaction

import (
	"math"
	"math/rand"
	"time"
)

// State is the test state.
type State int

// Test states. Done is terminal until Reset.
const (
	Waiting  State = iota // idle between rounds
	Ready                 // armed, signal pending
	Signaled              // signal shown, measuring
	Done                  // all attempts recorded
)

// Attempts is the number of rounds per session.
const Attempts = 5

// Signal delay bounds: uniform in [2000, 5000) ms.
const (
	minSignalDelay      = 2 * time.Second
	signalDelaySpreadMs = 3000 // additional milliseconds, exclusive upper bound
)

// OutcomeKind classifies a press.
type OutcomeKind int

// Press outcomes.
const (
	OutcomeIgnored    OutcomeKind = iota
	OutcomeArmed                  // round started, signal scheduled
	OutcomeFalseStart             // pressed before the signal, nothing recorded
	OutcomeRecorded               // latency recorded, more rounds remain
	OutcomeCompleted              // latency recorded, session done
)

// Outcome describes the result of a press. Delay and Generation are set
// for OutcomeArmed so the caller can schedule the signal and discard it
// if a false start supersedes it.
type Outcome struct {
	Kind       OutcomeKind
	LatencyMs  int64
	Delay      time.Duration
	Generation int
}

// Game is the reaction-latency session state machine. Timers are driven
// by the caller; a generation counter invalidates cancelled signals.
type Game struct {
	rnd        *rand.Rand
	state      State
	generation int
	signaledAt time.Time
	results    []int64
}

// New returns an idle game backed by the given random source.
func New(rnd *rand.Rand) *Game {
	return &Game{rnd: rnd, state: Waiting}
}

// Press advances the state machine on user input at the given time.
func (g *Game) Press(now time.Time) Outcome {
	switch g.state {
	case Waiting:
		g.state = Ready
		g.generation++
		delay := minSignalDelay + time.Duration(g.rnd.Intn(signalDelaySpreadMs))*time.Millisecond
		return Outcome{Kind: OutcomeArmed, Delay: delay, Generation: g.generation}
	case Ready:
		// False start: invalidate the pending signal, record nothing.
		g.generation++
		g.state = Waiting
		return Outcome{Kind: OutcomeFalseStart}
	case Signaled:
		latency := now.Sub(g.signaledAt).Milliseconds()
		g.results = append(g.results, latency)
		if len(g.results) < Attempts {
			g.state = Waiting
			return Outcome{Kind: OutcomeRecorded, LatencyMs: latency}
		}
		g.state = Done
		return Outcome{Kind: OutcomeCompleted, LatencyMs: latency}
	default:
		return Outcome{Kind: OutcomeIgnored}
	}
}

// Signal fires the scheduled signal. A stale generation (false start or
// reset since scheduling) is ignored.
func (g *Game) Signal(generation int, now time.Time) bool {
	if g.state != Ready || generation != g.generation {
		return false
	}
	g.state = Signaled
	g.signaledAt = now
	return true
}

// Reset clears all recorded attempts and returns to Waiting.
func (g *Game) Reset() {
	g.generation++
	g.state = Waiting
	g.results = nil
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// Results returns the recorded latencies in order.
func (g *Game) Results() []int64 { return g.results }

// Mean returns the arithmetic mean latency rounded to the nearest
// millisecond, or 0 when nothing is recorded.
func (g *Game) Mean() int64 {
	if len(g.results) == 0 {
		return 0
	}
	var sum int64
	for _, v := range g.results {
		sum += v
	}
	return int64(math.Round(float64(sum) / float64(len(g.results))))
}
