package tui

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minicade/minicade/internal/model"
	"github.com/minicade/minicade/internal/mole"
)

type moleSecondMsg struct{ gen int }

type moleSpawnMsg struct{ gen int }

type moleView struct {
	game *mole.Game
	gen  int
}

func newMoleView(rnd *rand.Rand) *moleView {
	return &moleView{game: mole.New(rnd)}
}

func (v *moleView) leave() {
	v.gen++
}

func (v *moleView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.updateKey(msg)
	case moleSecondMsg:
		if msg.gen != v.gen {
			return nil
		}
		if ended := v.game.TickSecond(); ended {
			v.gen++
			return endSession(model.MoleCatch, v.game.Score())
		}
		if !v.game.Playing() {
			return nil
		}
		return v.tickSecond()
	case moleSpawnMsg:
		if msg.gen != v.gen || !v.game.Playing() {
			return nil
		}
		v.game.Spawn()
		return v.tickSpawn()
	}
	return nil
}

func (v *moleView) updateKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "enter", " ":
		if !v.game.Playing() {
			v.gen++
			v.game.Start()
			return tea.Batch(v.tickSecond(), v.tickSpawn())
		}
	case "p":
		v.game.TogglePause()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		v.game.Hit(int(key[0]-'1'))
	}
	return nil
}

func (v *moleView) tickSecond() tea.Cmd {
	gen := v.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return moleSecondMsg{gen: gen}
	})
}

func (v *moleView) tickSpawn() tea.Cmd {
	gen := v.gen
	return tea.Tick(mole.SpawnInterval, func(time.Time) tea.Msg {
		return moleSpawnMsg{gen: gen}
	})
}

func (v *moleView) render() string {
	g := v.game

	if !g.Playing() && !g.Over() {
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(model.MoleCatch.Title()),
			"",
			dimStyle.Render("Whack the mole with keys 1-9."),
			dimStyle.Render("Press enter to start."),
		)
	}
	if g.Over() {
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(model.MoleCatch.Title()),
			"",
			"Time's up!",
			fmt.Sprintf("Score %d", g.Score()),
			"",
			dimStyle.Render("Press enter to play again."),
		)
	}

	header := fmt.Sprintf("Time %2ds  Score %d", g.TimeLeft(), g.Score())
	if g.Paused() {
		header += "  " + accentStyle.Render("PAUSED")
	}

	rows := make([]string, 0, 3)
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			slot := row*3 + col
			label := fmt.Sprintf(" %d ", slot+1)
			style := unselectedStyle
			if slot == g.Active() {
				label = " ● "
				style = selectedStyle
			}
			cells = append(cells, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		dimStyle.Render(header),
		"",
		lipgloss.JoinVertical(lipgloss.Center, rows...),
	)
}

func (v *moleView) help() string {
	return "1-9: whack  p: pause  enter: start  esc: menu"
}
