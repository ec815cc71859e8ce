package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

// MenuItem is one playable variant with its stored record.
type MenuItem struct {
	GameID string
	Title  string
	Rule   string
	Best   int
	Runs   int
	Streak int
}

// menuStyles are built from the session renderer.
type menuStyles struct {
	title, tower, rule, record, hint, card, active lipgloss.Style
}

func newMenuStyles(r *lipgloss.Renderer) menuStyles {
	card := r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1).Width(44)
	return menuStyles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		tower:  r.NewStyle().Foreground(lipgloss.Color("245")),
		rule:   r.NewStyle().Foreground(lipgloss.Color("250")),
		record: r.NewStyle().Foreground(lipgloss.Color("241")),
		hint:   r.NewStyle().Foreground(lipgloss.Color("241")),
		card:   card,
		active: card.BorderForeground(lipgloss.Color("214")),
	}
}

// MenuModel is the start screen: one card per variant.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	styles         menuStyles
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates the start screen.
// Records are read from opts.Store when it is set.
func NewMenuModel(cfg core.RuntimeConfig, opts Options) MenuModel {
	opts = opts.withDefaults()
	return MenuModel{
		items:     menuItems(opts),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		styles:    newMenuStyles(opts.Renderer),
	}
}

// menuItems lists every registered variant with its best, run count and
// longest perfect streak.
func menuItems(opts Options) []MenuItem {
	var stats map[string]*storage.GameStats
	if opts.Store != nil {
		var err error
		if stats, err = opts.Store.GetAllGamesStats(); err != nil {
			opts.Logger.Warn("cannot load records", "error", err)
		}
	}

	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title, Rule: ruleOf(g.ID)}
		if gs, ok := stats[g.ID]; ok {
			items[i].Best = gs.HighScore
			items[i].Runs = gs.GamesCount
			items[i].Streak = gs.BestStreak
		}
	}
	return items
}

// ruleOf describes how a variant sizes its moving blocks.
func ruleOf(gameID string) string {
	cfg := config.DefaultFor(gameID)
	if cfg.Blocks.InheritWidth {
		return "Each block is as wide as what landed"
	}
	return fmt.Sprintf("Every block starts %.0f wide", cfg.Blocks.BaseWidth)
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)

	case MenuActionDown:
		m.cursor = min(m.cursor+1, len(m.items)-1)

	case MenuActionSelect:
		if len(m.items) > 0 {
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerBlock(m.styles.tower.Render(towerArt), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.styles.title.Render("S T A C K E R"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		style := m.styles.card
		title := "  " + item.Title
		if i == m.cursor {
			style = m.styles.active
			title = "> " + item.Title
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			m.styles.title.Render(title),
			m.styles.rule.Render("  "+item.Rule),
			m.styles.record.Render("  "+item.record()),
		)
		b.WriteString(centerBlock(style.Render(body), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.styles.hint.Render("↑/↓ choose  enter play  tab scores  q quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// record is the card line under the rule.
func (item MenuItem) record() string {
	if item.Runs == 0 {
		return "Not played yet"
	}
	runs := "runs"
	if item.Runs == 1 {
		runs = "run"
	}
	return fmt.Sprintf("Best %d  ·  %d %s  ·  streak %d", item.Best, item.Runs, runs, item.Streak)
}

const towerArt = `  ▄▄▄▄
 ██████
████████`

// Selected returns the chosen item, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized to the last window size seen.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers one line within width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers a multi-line block as a whole.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(max(width, lipgloss.Width(block)), lipgloss.Center, block)
}

// MenuResult is what the user chose on the start screen.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the start screen until the user picks something.
func RunMenu(cfg core.RuntimeConfig, opts Options) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg, opts), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
