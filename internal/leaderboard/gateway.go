// Package leaderboard persists best scores and serves per-game rankings.
package leaderboard

import (
	"context"
	"sort"

	"github.com/minicade/minicade/internal/model"
)

// TopN is the number of entries kept per game after any write.
const TopN = 10

// Gateway is the persistence surface the session controllers talk to.
// Failures are non-fatal to gameplay: callers log the error and treat the
// boolean as an optional notice, never as a blocker.
type Gateway interface {
	// SubmitScore upserts the best score for (game, nickname). An existing
	// record is overwritten only when the candidate is better under the
	// per-game comparator; afterwards the board is trimmed to TopN.
	SubmitScore(ctx context.Context, game model.GameID, nickname string, score int) (bool, error)
	// FetchRankings returns at most TopN entries sorted best-first.
	FetchRankings(ctx context.Context, game model.GameID) ([]model.Entry, error)
	// FetchAllRankings returns the sorted board for every known game.
	FetchAllRankings(ctx context.Context) (map[model.GameID][]model.Entry, error)
	// DeleteRecord removes a record by id.
	DeleteRecord(ctx context.Context, id string) (bool, error)
	// RenameRecord re-upserts a record under a new nickname.
	RenameRecord(ctx context.Context, id string, game model.GameID, score int, newNickname string) (bool, error)
}

// sortEntries orders entries best-first under the per-game comparator,
// breaking score ties by nickname for stable output.
func sortEntries(game model.GameID, entries []model.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score == entries[j].Score {
			return entries[i].Nickname < entries[j].Nickname
		}
		if game.AscendingScore() {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].Score > entries[j].Score
	})
}
