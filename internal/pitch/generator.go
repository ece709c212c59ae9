package pitch

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// maxDrawAttempts bounds the non-repetition retry loop. On exhaustion a
// repeated combination is accepted rather than blocking.
const maxDrawAttempts = 100

// Generator draws note combinations for a level, avoiding repeats within
// one level pass.
type Generator struct {
	rnd  *rand.Rand
	used map[string]struct{}
}

// NewGenerator returns a Generator backed by the given random source.
func NewGenerator(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd, used: map[string]struct{}{}}
}

// Reset clears the non-repetition memory. Called on game start and on
// every level transition, since the candidate pool changes per level.
func (g *Generator) Reset() {
	g.used = map[string]struct{}{}
}

// Next draws the target note indices for the given level: distinct indices
// without replacement, sorted ascending. The canonical comma-joined key is
// recorded so the same combination is not asked twice in a level pass.
func (g *Generator) Next(level int) []int {
	cfg := Levels[level]
	pool := candidatePool(cfg.AllowBlack)

	var candidate []int
	var key string
	for attempt := 0; attempt < maxDrawAttempts; attempt++ {
		candidate = g.draw(pool, cfg.NoteCount)
		key = canonicalKey(candidate)
		if _, seen := g.used[key]; !seen {
			break
		}
	}
	g.used[key] = struct{}{}
	return candidate
}

func (g *Generator) draw(pool []int, n int) []int {
	tmp := make([]int, len(pool))
	copy(tmp, pool)
	if n > len(tmp) {
		n = len(tmp)
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		j := g.rnd.Intn(len(tmp))
		out = append(out, tmp[j])
		tmp = append(tmp[:j], tmp[j+1:]...)
	}
	sort.Ints(out)
	return out
}

func canonicalKey(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}
