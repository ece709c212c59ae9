// Package model defines shared data structures.
package model

import "time"

// GameID identifies one of the arcade games on the leaderboard.
type GameID string

// Known game ids. These double as the leaderboard partition keys.
const (
	AbsolutePitch GameID = "AbsolutePitch"
	ReactionSpeed GameID = "ReactionSpeed"
	MoleCatch     GameID = "MoleCatch"
	FallingBlocks GameID = "FallingBlocks"
)

// Games lists all known game ids in menu order.
var Games = []GameID{AbsolutePitch, ReactionSpeed, MoleCatch, FallingBlocks}

// Title returns the human-readable name of a game.
func (g GameID) Title() string {
	switch g {
	case AbsolutePitch:
		return "Absolute Pitch"
	case ReactionSpeed:
		return "Reaction Speed"
	case MoleCatch:
		return "Mole Catch"
	case FallingBlocks:
		return "Falling Blocks"
	}
	return string(g)
}

// AscendingScore reports whether lower scores rank higher for the game.
// Reaction latency is measured in milliseconds, so less is better.
func (g GameID) AscendingScore() bool {
	return g == ReactionSpeed
}

// BetterScore reports whether candidate beats incumbent under the
// per-game comparator.
func BetterScore(game GameID, candidate, incumbent int) bool {
	if game.AscendingScore() {
		return candidate < incumbent
	}
	return candidate > incumbent
}

// Entry is one leaderboard record. IDs are assigned by whichever backend
// stores the record and are opaque strings to everything else.
type Entry struct {
	ID       string
	Game     GameID
	Nickname string
	Score    int
}

// Config carries player and leaderboard settings resolved from flags and
// the config file.
type Config struct {
	Nickname string
	APIURL   string
}

// HistoryRecord is one finished session kept in the local history table.
type HistoryRecord struct {
	ID      int64
	Game    GameID
	Score   int
	EndedAt time.Time
}
