package pitch

import "math/rand"

// Status is the session state.
type Status int

// Session states. Finished and GameOver are stable until Start is called.
const (
	Ready Status = iota
	Playing
	Finished
	GameOver
)

// Judgment classifies one key press against the current stimulus.
type Judgment int

// Press outcomes.
const (
	Ignored  Judgment = iota // not playing, between rounds, or key already found
	Hit                      // target key found, round not yet complete
	Complete                 // last target found, round complete
	Miss                     // wrong key, extra life consumed
	Fatal                    // wrong key with no lives left, session over
)

// Result describes the outcome of a key press.
type Result struct {
	Judgment Judgment
	Found    int // targets found so far this round
	Total    int // targets in the current stimulus
	Points   int // awarded on Complete
}

// Game is the pitch-matching session controller. It owns all mutable
// session state; the caller drives timers and rendering.
type Game struct {
	gen *Generator

	status   Status
	level    int
	question int
	score    int
	lives    int

	targets  []int
	found    map[int]struct{}
	awaiting bool // round complete, waiting for Advance
}

// New returns an idle game backed by the given random source.
func New(rnd *rand.Rand) *Game {
	return &Game{gen: NewGenerator(rnd), status: Ready}
}

// Start resets the session and generates the first stimulus.
func (g *Game) Start() {
	g.status = Playing
	g.level = 1
	g.question = 1
	g.score = 0
	g.lives = 1
	g.found = map[int]struct{}{}
	g.awaiting = false
	g.gen.Reset()
	g.targets = g.gen.Next(g.level)
}

// Press judges a key press against the current stimulus.
func (g *Game) Press(index int) Result {
	if g.status != Playing || g.awaiting {
		return Result{Judgment: Ignored}
	}
	if _, ok := g.found[index]; ok {
		return Result{Judgment: Ignored}
	}

	if g.isTarget(index) {
		g.found[index] = struct{}{}
		if len(g.found) == len(g.targets) {
			points := Levels[g.level].Points
			g.score += points
			g.awaiting = true
			return Result{Judgment: Complete, Found: len(g.found), Total: len(g.targets), Points: points}
		}
		return Result{Judgment: Hit, Found: len(g.found), Total: len(g.targets)}
	}

	// The extra life is consumed before the stimulus is discarded: the
	// same targets persist after a first miss.
	if g.lives > 0 {
		g.lives--
		return Result{Judgment: Miss, Found: len(g.found), Total: len(g.targets)}
	}
	g.status = GameOver
	return Result{Judgment: Fatal, Found: len(g.found), Total: len(g.targets)}
}

// Advance moves to the next round after a completed one. The caller
// invokes it once the round-complete feedback delay has elapsed.
func (g *Game) Advance() {
	if g.status != Playing || !g.awaiting {
		return
	}
	g.awaiting = false
	g.found = map[int]struct{}{}
	g.lives = 1

	g.question++
	if g.question > QuestionsPerLevel {
		g.level++
		g.question = 1
		g.gen.Reset()
	}
	if g.level > MaxLevel {
		g.status = Finished
		return
	}
	g.targets = g.gen.Next(g.level)
}

func (g *Game) isTarget(index int) bool {
	for _, t := range g.targets {
		if t == index {
			return true
		}
	}
	return false
}

// Status returns the session state.
func (g *Game) Status() Status { return g.status }

// Level returns the current level, 1-based.
func (g *Game) Level() int { return g.level }

// Question returns the current question index within the level, 1-based.
func (g *Game) Question() int { return g.question }

// Score returns the accumulated score.
func (g *Game) Score() int { return g.score }

// Lives returns the extra lives remaining for the current round.
func (g *Game) Lives() int { return g.lives }

// Targets returns the current stimulus indices, sorted ascending.
func (g *Game) Targets() []int { return g.targets }

// FoundCount returns how many targets have been matched this round.
func (g *Game) FoundCount() int { return len(g.found) }

// IsFound reports whether the key index was already matched this round.
func (g *Game) IsFound(index int) bool {
	_, ok := g.found[index]
	return ok
}

// AwaitingAdvance reports whether the round is complete and the game is
// waiting for Advance.
func (g *Game) AwaitingAdvance() bool { return g.awaiting }
