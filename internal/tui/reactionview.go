package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minicade/minicade/internal/model"
	"github.com/minicade/minicade/internal/reaction"
)

type reactionSignalMsg struct{ gen int }

type reactionView struct {
	game   *reaction.Game
	notice string
}

func newReactionView(rnd *rand.Rand) *reactionView {
	return &reactionView{game: reaction.New(rnd)}
}

func (v *reactionView) leave() {
	// Reset bumps the generation, so a pending signal cannot land later.
	v.game.Reset()
	v.notice = ""
}

func (v *reactionView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.updateKey(msg)
	case reactionSignalMsg:
		v.game.Signal(msg.gen, time.Now())
	}
	return nil
}

func (v *reactionView) updateKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "r" {
		v.game.Reset()
		v.notice = ""
		return nil
	}
	if key != " " && key != "enter" {
		return nil
	}

	outcome := v.game.Press(time.Now())
	switch outcome.Kind {
	case reaction.OutcomeArmed:
		v.notice = ""
		gen := outcome.Generation
		return tea.Tick(outcome.Delay, func(time.Time) tea.Msg {
			return reactionSignalMsg{gen: gen}
		})
	case reaction.OutcomeFalseStart:
		v.notice = errorStyle.Render("Too soon! That round does not count.")
	case reaction.OutcomeRecorded:
		v.notice = fmt.Sprintf("%d ms", outcome.LatencyMs)
	case reaction.OutcomeCompleted:
		v.notice = fmt.Sprintf("%d ms", outcome.LatencyMs)
		return endSession(model.ReactionSpeed, int(v.game.Mean()))
	}
	return nil
}

func (v *reactionView) render() string {
	g := v.game

	var prompt string
	switch g.State() {
	case reaction.Waiting:
		prompt = dimStyle.Render("Press space to arm, then wait for the signal.")
	case reaction.Ready:
		prompt = dimStyle.Render("Wait for it...")
	case reaction.Signaled:
		prompt = accentStyle.Render("PRESS!")
	case reaction.Done:
		mean := g.Mean()
		prompt = lipgloss.JoinVertical(lipgloss.Center,
			fmt.Sprintf("Mean %d ms", mean),
			accentStyle.Render(reaction.Rank(mean)),
			"",
			dimStyle.Render("Press r to try again."),
		)
	}

	results := g.Results()
	recorded := make([]string, 0, reaction.Attempts)
	for _, r := range results {
		recorded = append(recorded, fmt.Sprintf("%d", r))
	}
	for len(recorded) < reaction.Attempts {
		recorded = append(recorded, "·")
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(model.ReactionSpeed.Title()),
		"",
		fmt.Sprintf("Attempt %d/%d", min(len(results)+1, reaction.Attempts), reaction.Attempts),
		dimStyle.Render(strings.Join(recorded, "  ")+" ms"),
		"",
		prompt,
		"",
		v.notice,
	)
}

func (v *reactionView) help() string {
	return "space/enter: arm and press  r: restart  esc: menu"
}
