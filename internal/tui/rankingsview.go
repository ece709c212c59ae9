package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minicade/minicade/internal/leaderboard"
	"github.com/minicade/minicade/internal/model"
)

type rankingsLoadedMsg struct {
	all map[model.GameID][]model.Entry
	err error
}

type rankingsChangedMsg struct {
	err error
}

type rankingsView struct {
	gateway leaderboard.Gateway

	all       map[model.GameID][]model.Entry
	activeTab int
	tbl       table.Model
	loading   bool
	errMsg    string

	renameMode  bool
	renameInput textinput.Model
	renameID    string
	renameScore int

	width  int
	height int
}

func newRankingsView(gw leaderboard.Gateway) *rankingsView {
	input := textinput.New()
	input.Prompt = "New nickname: "
	input.CharLimit = 24

	tbl := table.New(
		table.WithColumns(rankingsColumns()),
		table.WithHeight(leaderboard.TopN+1),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	tbl.SetStyles(styles)

	return &rankingsView{gateway: gw, renameInput: input, tbl: tbl}
}

func rankingsColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Nickname", Width: 24},
		{Title: "Score", Width: 12},
	}
}

func (v *rankingsView) resize(width, height int) {
	v.width = width
	v.height = height
}

func (v *rankingsView) capturesEsc() bool {
	return v.renameMode
}

func (v *rankingsView) load() tea.Cmd {
	v.loading = true
	v.errMsg = ""
	gw := v.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		all, err := gw.FetchAllRankings(ctx)
		return rankingsLoadedMsg{all: all, err: err}
	}
}

func (v *rankingsView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case rankingsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.all = msg.all
		v.refreshRows()
		return nil
	case rankingsChangedMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		return v.load()
	case tea.KeyMsg:
		if v.renameMode {
			return v.updateRename(msg)
		}
		return v.updateKey(msg)
	}
	return nil
}

func (v *rankingsView) updateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		v.moveTab(-1)
		return nil
	case "right", "l":
		v.moveTab(1)
		return nil
	case "R":
		return v.load()
	case "d":
		entry, ok := v.selectedEntry()
		if !ok {
			return nil
		}
		gw := v.gateway
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
			defer cancel()
			_, err := gw.DeleteRecord(ctx, entry.ID)
			return rankingsChangedMsg{err: err}
		}
	case "r":
		entry, ok := v.selectedEntry()
		if !ok {
			return nil
		}
		v.renameMode = true
		v.renameID = entry.ID
		v.renameScore = entry.Score
		v.renameInput.SetValue(entry.Nickname)
		return v.renameInput.Focus()
	}
	var cmd tea.Cmd
	v.tbl, cmd = v.tbl.Update(msg)
	return cmd
}

func (v *rankingsView) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.renameMode = false
		return nil
	case tea.KeyEnter:
		nickname := strings.TrimSpace(v.renameInput.Value())
		v.renameMode = false
		if nickname == "" {
			return nil
		}
		gw := v.gateway
		game := v.activeGame()
		id, score := v.renameID, v.renameScore
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
			defer cancel()
			_, err := gw.RenameRecord(ctx, id, game, score, nickname)
			return rankingsChangedMsg{err: err}
		}
	}
	var cmd tea.Cmd
	v.renameInput, cmd = v.renameInput.Update(msg)
	return cmd
}

func (v *rankingsView) moveTab(delta int) {
	count := len(model.Games)
	v.activeTab = (v.activeTab + delta + count) % count
	v.refreshRows()
}

func (v *rankingsView) activeGame() model.GameID {
	return model.Games[v.activeTab]
}

func (v *rankingsView) selectedEntry() (model.Entry, bool) {
	entries := v.all[v.activeGame()]
	cursor := v.tbl.Cursor()
	if cursor < 0 || cursor >= len(entries) {
		return model.Entry{}, false
	}
	return entries[cursor], true
}

func (v *rankingsView) refreshRows() {
	entries := v.all[v.activeGame()]
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			e.Nickname,
			strconv.Itoa(e.Score),
		})
	}
	v.tbl.SetRows(rows)
	v.tbl.GotoTop()
}

func (v *rankingsView) render() string {
	tabs := make([]string, 0, len(model.Games))
	for i, game := range model.Games {
		if i == v.activeTab {
			tabs = append(tabs, selectedStyle.Render(game.Title()))
		} else {
			tabs = append(tabs, unselectedStyle.Render(game.Title()))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch {
	case v.loading:
		body = dimStyle.Render("Loading rankings...")
	case v.errMsg != "":
		body = errorStyle.Render("Failed to load rankings: " + v.errMsg)
	case len(v.all[v.activeGame()]) == 0:
		body = dimStyle.Render("No scores yet.")
	default:
		body = v.tbl.View()
	}

	if v.renameMode {
		modal := modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Rename record"),
			v.renameInput.View(),
			dimStyle.Render("Enter to apply, esc to cancel."),
		))
		return lipgloss.JoinVertical(lipgloss.Center, header, "", modal)
	}

	unit := "points"
	if v.activeGame().AscendingScore() {
		unit = "ms, lower is better"
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		header,
		dimStyle.Render(fmt.Sprintf("Top %d (%s)", leaderboard.TopN, unit)),
		"",
		body,
	)
}

func (v *rankingsView) help() string {
	if v.renameMode {
		return "enter: apply  esc: cancel"
	}
	return "left/right: game  up/down: select  r: rename  d: delete  R: reload  esc: menu"
}
