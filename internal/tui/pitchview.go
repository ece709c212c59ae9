package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minicade/minicade/internal/model"
	"github.com/minicade/minicade/internal/pitch"
)

const (
	wrongFlashDelay   = 500 * time.Millisecond
	roundAdvanceDelay = 1500 * time.Millisecond
)

// pitchKeys maps the piano key row to note indices: white keys on the
// home row, black keys on the row above.
var pitchKeys = map[string]int{
	"a": 0, "w": 1, "s": 2, "e": 3, "d": 4, "f": 5, "t": 6,
	"g": 7, "y": 8, "h": 9, "u": 10, "j": 11, "k": 12,
}

// pitchKeyOrder lists key labels in note order for rendering.
var pitchKeyOrder = []string{"a", "w", "s", "e", "d", "f", "t", "g", "y", "h", "u", "j", "k"}

type pitchFlashClearMsg struct{ gen int }

type pitchAdvanceMsg struct{ gen int }

type pitchView struct {
	game *pitch.Game
	gen  int

	wrongFlash bool
	feedback   string
}

func newPitchView(rnd *rand.Rand) *pitchView {
	return &pitchView{game: pitch.New(rnd)}
}

func (v *pitchView) leave() {
	v.gen++
	v.wrongFlash = false
	v.feedback = ""
}

func (v *pitchView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.updateKey(msg)
	case pitchFlashClearMsg:
		if msg.gen == v.gen {
			v.wrongFlash = false
		}
	case pitchAdvanceMsg:
		if msg.gen != v.gen {
			return nil
		}
		v.game.Advance()
		v.feedback = ""
		if v.game.Status() == pitch.Finished {
			return endSession(model.AbsolutePitch, v.game.Score())
		}
	}
	return nil
}

func (v *pitchView) updateKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "enter" || key == " " {
		if v.game.Status() != pitch.Playing {
			v.gen++
			v.wrongFlash = false
			v.feedback = ""
			v.game.Start()
		}
		return nil
	}
	index, ok := pitchKeys[key]
	if !ok {
		return nil
	}
	result := v.game.Press(index)
	switch result.Judgment {
	case pitch.Hit:
		v.feedback = fmt.Sprintf("%d of %d", result.Found, result.Total)
	case pitch.Complete:
		v.feedback = fmt.Sprintf("+%d", result.Points)
		gen := v.gen
		return tea.Tick(roundAdvanceDelay, func(time.Time) tea.Msg {
			return pitchAdvanceMsg{gen: gen}
		})
	case pitch.Miss:
		v.wrongFlash = true
		v.feedback = "wrong key, extra life spent"
		gen := v.gen
		return tea.Tick(wrongFlashDelay, func(time.Time) tea.Msg {
			return pitchFlashClearMsg{gen: gen}
		})
	case pitch.Fatal:
		v.wrongFlash = true
		v.feedback = ""
		return endSession(model.AbsolutePitch, v.game.Score())
	}
	return nil
}

func (v *pitchView) render() string {
	g := v.game
	switch g.Status() {
	case pitch.Ready:
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(model.AbsolutePitch.Title()),
			"",
			dimStyle.Render("Match the shown notes on the key row."),
			dimStyle.Render("Press enter to start."),
		)
	case pitch.Finished, pitch.GameOver:
		verdict := "Cleared every level!"
		if g.Status() == pitch.GameOver {
			verdict = "Out of lives."
		}
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(model.AbsolutePitch.Title()),
			"",
			verdict,
			fmt.Sprintf("Score %d", g.Score()),
			accentStyle.Render(pitch.Rank(g.Score())),
			"",
			dimStyle.Render("Press enter to play again."),
		)
	}

	header := fmt.Sprintf("Level %d/%d  Question %d/%d  Score %d  Lives %d",
		g.Level(), pitch.MaxLevel, g.Question(), pitch.QuestionsPerLevel, g.Score(), g.Lives())

	targets := make([]string, 0, len(g.Targets()))
	for _, idx := range g.Targets() {
		name := pitch.Notes[idx].Name
		if g.IsFound(idx) {
			targets = append(targets, accentStyle.Render(name))
		} else {
			targets = append(targets, titleStyle.Render(name))
		}
	}
	stimulus := "Play: " + strings.Join(targets, " ")

	feedback := v.feedback
	if v.wrongFlash {
		feedback = errorStyle.Render("✗ " + feedback)
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		dimStyle.Render(header),
		"",
		stimulus,
		"",
		v.renderKeyboard(),
		"",
		feedback,
	)
}

func (v *pitchView) renderKeyboard() string {
	cells := make([]string, 0, len(pitch.Notes))
	for i, note := range pitch.Notes {
		label := fmt.Sprintf("%s\n%s", note.Name, pitchKeyOrder[i])
		style := whiteKeyStyle
		if note.Black {
			style = blackKeyStyle
		}
		if v.game.IsFound(i) {
			style = foundKeyStyle
		}
		cells = append(cells, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (v *pitchView) help() string {
	return "keys a-k (w e t y u for sharps)  enter: start  esc: menu"
}
