package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/minicade/minicade/internal/model"
)

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %f, want %f", i, out[i], want[i])
		}
	}
	// Window <= 1 returns a copy.
	same := MovingAverage(values, 1)
	for i := range values {
		if same[i] != values[i] {
			t.Fatalf("window 1 altered values: %v", same)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	flat := Sparkline([]float64{3, 3, 3})
	if len(flat) != 3 {
		t.Fatalf("expected 3 chars, got %q", flat)
	}
	ramp := Sparkline([]float64{0, 10})
	if ramp[0] != sparkChars[0] || ramp[1] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected full-range ramp, got %q", ramp)
	}
}

func TestFormatTableAlignment(t *testing.T) {
	lines := FormatTable(
		[]string{"#", "Name", "Score"},
		[][]string{{"1", "dana", "1200"}, {"10", "bo", "50"}},
		map[int]bool{0: true, 2: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != " 1 dana  1200" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "10 bo      50" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestRenderRankings(t *testing.T) {
	var buf bytes.Buffer
	rankings := map[model.GameID][]model.Entry{
		model.MoleCatch: {
			{ID: "1", Game: model.MoleCatch, Nickname: "dana", Score: 12},
		},
		model.ReactionSpeed: {
			{ID: "2", Game: model.ReactionSpeed, Nickname: "fast", Score: 210},
		},
	}
	if err := RenderRankings(&buf, rankings); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Mole Catch") {
		t.Fatalf("missing game title: %q", out)
	}
	if !strings.Contains(out, "dana") {
		t.Fatalf("missing entry: %q", out)
	}
	if !strings.Contains(out, "No scores yet.") {
		t.Fatalf("missing empty-board notice: %q", out)
	}
	if !strings.Contains(out, "Latency (ms)") {
		t.Fatalf("missing latency header for reaction board: %q", out)
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	base := time.Unix(0, 0).UTC()
	records := []model.HistoryRecord{
		{ID: 1, Game: model.FallingBlocks, Score: 3, EndedAt: base},
		{ID: 2, Game: model.FallingBlocks, Score: 7, EndedAt: base.Add(time.Hour)},
	}
	if err := RenderHistory(&buf, model.FallingBlocks, records, 2); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Sessions: 2  Best: 7  Avg: 5.0") {
		t.Fatalf("missing summary: %q", out)
	}
	if !strings.Contains(out, "Scores:") || !strings.Contains(out, "Trend:") {
		t.Fatalf("missing sparklines: %q", out)
	}

	buf.Reset()
	if err := RenderHistory(&buf, model.MoleCatch, nil, 2); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions recorded.") {
		t.Fatalf("missing empty notice: %q", buf.String())
	}
}
