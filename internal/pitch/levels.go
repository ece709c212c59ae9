package pitch

import "fmt"

// LevelConfig defines difficulty and reward for one level.
type LevelConfig struct {
	Label      string
	Points     int
	NoteCount  int
	AllowBlack bool
}

// MaxLevel is the last level; clearing it finishes the game.
const MaxLevel = 6

// QuestionsPerLevel is the number of rounds per level.
const QuestionsPerLevel = 5

// Levels maps level number (1-based) to its configuration.
var Levels = map[int]LevelConfig{
	1: {Label: "Lv.1 Beginner", Points: 50, NoteCount: 1},
	2: {Label: "Lv.2 Intermediate", Points: 100, NoteCount: 1, AllowBlack: true},
	3: {Label: "Lv.3 Advanced", Points: 150, NoteCount: 2},
	4: {Label: "Lv.4 Expert", Points: 200, NoteCount: 2, AllowBlack: true},
	5: {Label: "Lv.5 Master", Points: 250, NoteCount: 3, AllowBlack: true},
	6: {Label: "Lv.6 Perfect Pitch", Points: 300, NoteCount: 4, AllowBlack: true},
}

// ValidateLevels checks that every level can draw its note count from the
// candidate pool. Called once at startup.
func ValidateLevels() error {
	for lvl := 1; lvl <= MaxLevel; lvl++ {
		cfg, ok := Levels[lvl]
		if !ok {
			return fmt.Errorf("missing configuration for level %d", lvl)
		}
		if cfg.NoteCount < 1 {
			return fmt.Errorf("level %d: note count must be >= 1", lvl)
		}
		if pool := len(candidatePool(cfg.AllowBlack)); cfg.NoteCount > pool {
			return fmt.Errorf("level %d: note count %d exceeds pool size %d", lvl, cfg.NoteCount, pool)
		}
	}
	return nil
}

func candidatePool(allowBlack bool) []int {
	pool := make([]int, 0, len(Notes))
	for i, n := range Notes {
		if n.Black && !allowBlack {
			continue
		}
		pool = append(pool, i)
	}
	return pool
}
