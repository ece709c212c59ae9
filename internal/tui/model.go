// Package tui provides the Bubble Tea arcade interface.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minicade/minicade/internal/leaderboard"
	"github.com/minicade/minicade/internal/model"
)

type view int

const (
	viewMenu view = iota
	viewPitch
	viewReaction
	viewMole
	viewBlocks
	viewRankings
	viewNickname
)

const submitTimeout = 10 * time.Second

// sessionEndedMsg reports a finished game session to the root model.
type sessionEndedMsg struct {
	game  model.GameID
	score int
}

// submitResultMsg carries the outcome of a leaderboard submission.
type submitResultMsg struct {
	game model.GameID
	ok   bool
	err  error
}

type historySavedMsg struct {
	err error
}

// Model is the root arcade shell. It owns the menu, routes input and
// timer messages to the active game view, and handles score submission.
type Model struct {
	cfg     model.Config
	store   *leaderboard.Store
	gateway leaderboard.Gateway

	width  int
	height int

	view      view
	menuIndex int
	status    string

	pitch    *pitchView
	reaction *reactionView
	mole     *moleView
	blocks   *blocksView
	rankings *rankingsView

	nicknameInput textinput.Model
	nicknameAsked bool
	pendingGame   model.GameID
	pendingScore  int
	returnView    view
}

type menuItem struct {
	label string
	view  view
}

var menuItems = []menuItem{
	{label: model.AbsolutePitch.Title(), view: viewPitch},
	{label: model.ReactionSpeed.Title(), view: viewReaction},
	{label: model.MoleCatch.Title(), view: viewMole},
	{label: model.FallingBlocks.Title(), view: viewBlocks},
	{label: "Rankings", view: viewRankings},
}

// NewModel constructs the arcade shell. The store is used for local
// session history; the gateway may be the same store or a remote client.
func NewModel(cfg model.Config, st *leaderboard.Store, gw leaderboard.Gateway, rnd *rand.Rand) *Model {
	input := textinput.New()
	input.Prompt = "Nickname: "
	input.CharLimit = 24
	return &Model{
		cfg:           cfg,
		store:         st,
		gateway:       gw,
		view:          viewMenu,
		pitch:         newPitchView(rnd),
		reaction:      newReactionView(rnd),
		mole:          newMoleView(rnd),
		blocks:        newBlocksView(rnd),
		rankings:      newRankingsView(gw),
		nicknameInput: input,
	}
}

// StartAtRankings opens the shell directly on the rankings view.
func (m *Model) StartAtRankings() {
	m.view = viewRankings
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.view == viewRankings {
		return m.rankings.load()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rankings.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.updateKey(msg)
	case sessionEndedMsg:
		return m.handleSessionEnd(msg)
	case submitResultMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("score submission failed: %v", msg.err))
		} else if msg.ok {
			m.status = dimStyle.Render("score submitted to the " + msg.game.Title() + " board")
		} else {
			m.status = dimStyle.Render("existing record is better, board unchanged")
		}
		return m, nil
	case historySavedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("failed to save history: %v", msg.err))
		}
		return m, nil
	}
	return m, m.routeToActive(msg)
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMenu:
		return m.updateMenu(msg)
	case viewNickname:
		return m.updateNickname(msg)
	}
	if msg.Type == tea.KeyEsc {
		if m.view == viewRankings && m.rankings.capturesEsc() {
			return m, m.rankings.update(msg)
		}
		m.leaveActive()
		m.view = viewMenu
		m.status = ""
		return m, nil
	}
	return m, m.routeToActive(msg)
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.menuIndex--
		if m.menuIndex < 0 {
			m.menuIndex = len(menuItems) - 1
		}
	case "down", "j":
		m.menuIndex++
		if m.menuIndex >= len(menuItems) {
			m.menuIndex = 0
		}
	case "enter", " ":
		item := menuItems[m.menuIndex]
		m.view = item.view
		m.status = ""
		if item.view == viewRankings {
			return m, m.rankings.load()
		}
	}
	return m, nil
}

func (m *Model) updateNickname(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.view = m.returnView
		return m, nil
	case tea.KeyEnter:
		nickname := strings.TrimSpace(m.nicknameInput.Value())
		m.view = m.returnView
		if nickname == "" {
			// Declined: skip this and future submissions silently.
			return m, nil
		}
		m.cfg.Nickname = nickname
		return m, m.submitCmd(m.pendingGame, m.pendingScore)
	}
	var cmd tea.Cmd
	m.nicknameInput, cmd = m.nicknameInput.Update(msg)
	return m, cmd
}

func (m *Model) routeToActive(msg tea.Msg) tea.Cmd {
	switch m.view {
	case viewPitch:
		return m.pitch.update(msg)
	case viewReaction:
		return m.reaction.update(msg)
	case viewMole:
		return m.mole.update(msg)
	case viewBlocks:
		return m.blocks.update(msg)
	case viewRankings:
		return m.rankings.update(msg)
	}
	// Timer messages for backgrounded views are dropped; their generation
	// counters were bumped on leave.
	return nil
}

func (m *Model) leaveActive() {
	switch m.view {
	case viewPitch:
		m.pitch.leave()
	case viewReaction:
		m.reaction.leave()
	case viewMole:
		m.mole.leave()
	case viewBlocks:
		m.blocks.leave()
	}
}

func (m *Model) handleSessionEnd(msg sessionEndedMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.saveHistoryCmd(msg.game, msg.score)}
	if !shouldSubmit(msg.game, msg.score) {
		return m, tea.Batch(cmds...)
	}
	if m.cfg.Nickname == "" {
		if m.nicknameAsked {
			return m, tea.Batch(cmds...)
		}
		m.nicknameAsked = true
		m.pendingGame = msg.game
		m.pendingScore = msg.score
		m.returnView = m.view
		m.view = viewNickname
		m.nicknameInput.SetValue("")
		cmds = append(cmds, m.nicknameInput.Focus())
		return m, tea.Batch(cmds...)
	}
	cmds = append(cmds, m.submitCmd(msg.game, msg.score))
	return m, tea.Batch(cmds...)
}

// shouldSubmit applies the per-game submission policy: catch and dodge
// scores of zero stay local, everything else goes to the board.
func shouldSubmit(game model.GameID, score int) bool {
	switch game {
	case model.MoleCatch, model.FallingBlocks:
		return score > 0
	}
	return true
}

func (m *Model) submitCmd(game model.GameID, score int) tea.Cmd {
	gw := m.gateway
	nickname := m.cfg.Nickname
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		ok, err := gw.SubmitScore(ctx, game, nickname, score)
		return submitResultMsg{game: game, ok: ok, err: err}
	}
}

func (m *Model) saveHistoryCmd(game model.GameID, score int) tea.Cmd {
	st := m.store
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		return historySavedMsg{err: st.InsertHistory(ctx, game, score, time.Now())}
	}
}

func endSession(game model.GameID, score int) tea.Cmd {
	return func() tea.Msg {
		return sessionEndedMsg{game: game, score: score}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content, help string
	switch m.view {
	case viewMenu:
		content = m.renderMenu()
		help = "up/down: select  enter: play  q: quit"
	case viewPitch:
		content = m.pitch.render()
		help = m.pitch.help()
	case viewReaction:
		content = m.reaction.render()
		help = m.reaction.help()
	case viewMole:
		content = m.mole.render()
		help = m.mole.help()
	case viewBlocks:
		content = m.blocks.render()
		help = m.blocks.help()
	case viewRankings:
		content = m.rankings.render()
		help = m.rankings.help()
	case viewNickname:
		content = m.renderNicknamePrompt()
		help = "enter: save and submit  esc: skip"
	}

	footer := footerStyle.Render(help)
	if m.status != "" {
		footer = m.status + "\n" + footer
	}
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	footerHeight := lipgloss.Height(footer)
	bodyHeight := m.height - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
}

func (m *Model) renderMenu() string {
	lines := []string{titleStyle.Render("minicade"), ""}
	for i, item := range menuItems {
		if i == m.menuIndex {
			lines = append(lines, selectedStyle.Render(item.label))
		} else {
			lines = append(lines, unselectedStyle.Render(item.label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderNicknamePrompt() string {
	body := strings.Join([]string{
		titleStyle.Render("Join the leaderboard"),
		m.nicknameInput.View(),
		dimStyle.Render("Leave empty to keep scores local."),
	}, "\n")
	return modalStyle.Render(body)
}
