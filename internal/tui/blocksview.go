package tui

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minicade/minicade/internal/blocks"
	"github.com/minicade/minicade/internal/model"
)

const (
	frameInterval = 33 * time.Millisecond
	// Terminals deliver no key-up events, so a held direction is emulated
	// from key repeat and expires shortly after the last press.
	holdWindow = 200 * time.Millisecond
)

// Character-grid projection of the simulation field.
const (
	gridCols = 40
	gridRows = 20
)

type blocksFrameMsg struct {
	gen int
	at  time.Time
}

type blocksView struct {
	world *blocks.World
	gen   int

	lastFrame  time.Time
	leftUntil  time.Time
	rightUntil time.Time
}

func newBlocksView(rnd *rand.Rand) *blocksView {
	return &blocksView{world: blocks.New(rnd)}
}

func (v *blocksView) leave() {
	v.gen++
}

func (v *blocksView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.updateKey(msg)
	case blocksFrameMsg:
		if msg.gen != v.gen {
			return nil
		}
		dt := msg.at.Sub(v.lastFrame)
		v.lastFrame = msg.at
		v.applyHeld(msg.at)
		v.world.Step(dt)
		if v.world.GameOver() {
			v.gen++
			return endSession(model.FallingBlocks, v.world.Score())
		}
		return v.tickFrame()
	}
	return nil
}

func (v *blocksView) updateKey(msg tea.KeyMsg) tea.Cmd {
	now := time.Now()
	switch msg.String() {
	case "enter", " ":
		if !v.world.Playing() {
			v.gen++
			v.world.Start()
			v.lastFrame = now
			v.leftUntil = time.Time{}
			v.rightUntil = time.Time{}
			return v.tickFrame()
		}
	case "p":
		v.world.SetPaused(!v.world.Paused())
	case "left", "h":
		v.leftUntil = now.Add(holdWindow)
		v.rightUntil = time.Time{}
	case "right", "l":
		v.rightUntil = now.Add(holdWindow)
		v.leftUntil = time.Time{}
	}
	return nil
}

func (v *blocksView) applyHeld(now time.Time) {
	v.world.SetHeld(now.Before(v.leftUntil), now.Before(v.rightUntil))
}

func (v *blocksView) tickFrame() tea.Cmd {
	gen := v.gen
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return blocksFrameMsg{gen: gen, at: t}
	})
}

func (v *blocksView) render() string {
	w := v.world

	if !w.Playing() && !w.GameOver() {
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(model.FallingBlocks.Title()),
			"",
			dimStyle.Render("Dodge the falling blocks with the arrow keys."),
			dimStyle.Render("Press enter to start."),
		)
	}
	if w.GameOver() {
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(model.FallingBlocks.Title()),
			"",
			"Crushed!",
			fmt.Sprintf("Dodged %d", w.Score()),
			"",
			dimStyle.Render("Press enter to play again."),
		)
	}

	header := fmt.Sprintf("Dodged %d", w.Score())
	if w.Paused() {
		header += "  " + accentStyle.Render("PAUSED")
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		dimStyle.Render(header),
		v.renderField(),
	)
}

func (v *blocksView) renderField() string {
	grid := make([][]rune, gridRows)
	for i := range grid {
		grid[i] = make([]rune, gridCols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for _, b := range v.world.Obstacles() {
		drawRect(grid, blocks.Rect{X: b.X, Y: b.Y, W: blocks.BlockW, H: blocks.BlockH}, '▒')
	}
	drawRect(grid, v.world.PlayerRect(), '█')

	lines := make([]string, 0, gridRows+2)
	border := "+" + strings.Repeat("-", gridCols) + "+"
	lines = append(lines, border)
	for _, row := range grid {
		lines = append(lines, "|"+string(row)+"|")
	}
	lines = append(lines, border)
	return strings.Join(lines, "\n")
}

// drawRect projects a field rectangle onto the character grid. Floor
// division keeps partially off-field rectangles (fresh spawns above the
// top edge) from wrapping onto row zero.
func drawRect(grid [][]rune, r blocks.Rect, ch rune) {
	colScale := float64(blocks.FieldW) / gridCols
	rowScale := float64(blocks.FieldH) / gridRows
	left := int(math.Floor(r.X / colScale))
	right := int(math.Floor((r.X + r.W - 1) / colScale))
	top := int(math.Floor(r.Y / rowScale))
	bottom := int(math.Floor((r.Y + r.H - 1) / rowScale))
	for row := top; row <= bottom; row++ {
		if row < 0 || row >= len(grid) {
			continue
		}
		for col := left; col <= right; col++ {
			if col < 0 || col >= len(grid[row]) {
				continue
			}
			grid[row][col] = ch
		}
	}
}

func (v *blocksView) help() string {
	return "left/right: move  p: pause  enter: start  esc: menu"
}
