// Package report renders leaderboards and score history as text.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/minicade/minicade/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderRankings prints one leaderboard table per game.
func RenderRankings(w io.Writer, rankings map[model.GameID][]model.Entry) error {
	for _, game := range model.Games {
		if err := RenderGameRankings(w, game, rankings[game]); err != nil {
			return err
		}
	}
	return nil
}

// RenderGameRankings prints a single game's leaderboard table.
func RenderGameRankings(w io.Writer, game model.GameID, entries []model.Entry) error {
	if _, err := fmt.Fprintln(w, game.Title()); err != nil {
		return err
	}
	if len(entries) == 0 {
		if _, err := fmt.Fprintln(w, "No scores yet."); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "")
		return err
	}
	headers := []string{"#", "Nickname", scoreHeader(game)}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Nickname,
			strconv.Itoa(e.Score),
		})
	}
	rightAlign := map[int]bool{0: true, 2: true}
	for _, line := range FormatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistory prints the local session history for one game: a summary
// line, score and moving-average sparklines, and the recent sessions.
func RenderHistory(w io.Writer, game model.GameID, records []model.HistoryRecord, window int) error {
	if _, err := fmt.Fprintln(w, game.Title()); err != nil {
		return err
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded.")
		return err
	}

	scores := make([]float64, len(records))
	best := records[0].Score
	var total int
	for i, rec := range records {
		scores[i] = float64(rec.Score)
		total += rec.Score
		if model.BetterScore(game, rec.Score, best) {
			best = rec.Score
		}
	}
	avg := float64(total) / float64(len(records))

	if _, err := fmt.Fprintf(w, "Sessions: %d  Best: %d  Avg: %.1f\n", len(records), best, avg); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scores: %s\n", Sparkline(scores)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Trend:  %s\n", Sparkline(MovingAverage(scores, window))); err != nil {
		return err
	}

	headers := []string{"#", scoreHeader(game), "Played"}
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(rec.Score),
			rec.EndedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	rightAlign := map[int]bool{0: true, 1: true}
	for _, line := range FormatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func scoreHeader(game model.GameID) string {
	if game.AscendingScore() {
		return "Latency (ms)"
	}
	return "Score"
}
