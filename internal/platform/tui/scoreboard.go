package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

const (
	boardMaxRows    = 100 // runs loaded per variant
	boardSideBySide = 72  // min width to put the record panel beside the table
	boardPanelW     = 24
)

// boardKeys are the scoreboard bindings, shown by the help line.
type boardKeys struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab/←/→", "switch variant")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardStyles are built from the session renderer.
type boardStyles struct {
	title, tabOn, tabOff, panel, label, value, empty, help lipgloss.Style
	table                                                  table.Styles
}

func newBoardStyles(r *lipgloss.Renderer) boardStyles {
	ts := table.DefaultStyles()
	ts.Header = r.NewStyle().Bold(true).Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true)
	ts.Cell = r.NewStyle().Padding(0, 1)
	ts.Selected = r.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	return boardStyles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		tabOn:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		tabOff: r.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		panel:  r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		label:  r.NewStyle().Foreground(lipgloss.Color("241")),
		value:  r.NewStyle().Bold(true),
		empty:  r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2),
		help:   r.NewStyle().Foreground(lipgloss.Color("241")),
		table:  ts,
	}
}

// ScoreboardModel lists the best runs of one variant next to its records.
// Switching variants reloads both from the store.
type ScoreboardModel struct {
	variants []registry.GameInfo
	current  int
	store    *storage.Store
	runs     []storage.ScoreEntry
	record   storage.GameStats
	table    table.Model
	help     help.Model
	keys     boardKeys
	styles   boardStyles
	width    int
	height   int
	back     bool
	quitting bool
}

// NewScoreboardModel creates a scoreboard showing the first registered variant.
func NewScoreboardModel(opts Options, width, height int) ScoreboardModel {
	opts = opts.withDefaults()
	m := ScoreboardModel{
		variants: registry.List(),
		store:    opts.Store,
		help:     help.New(),
		keys:     newBoardKeys(),
		styles:   newBoardStyles(opts.Renderer),
		width:    width,
		height:   height,
	}
	m.table = table.New(
		table.WithColumns(boardColumns()),
		table.WithFocused(true),
		table.WithStyles(m.styles.table),
	)
	m.resize()
	m.load()
	return m
}

func boardColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Blocks", Width: 6},
		{Title: "Streak", Width: 6},
		{Title: "Played", Width: 12},
	}
}

// resize fits the table below the title, tabs and help line.
func (m *ScoreboardModel) resize() {
	rows := m.height - 9
	if m.width < boardSideBySide {
		rows -= 7 // record panel stacked above the table
	}
	m.table.SetHeight(max(rows, 3))
	m.help.Width = m.width
}

// load reads the runs and records of the current variant.
func (m *ScoreboardModel) load() {
	m.runs = nil
	m.record = storage.GameStats{}
	if m.store == nil || len(m.variants) == 0 {
		m.table.SetRows(nil)
		return
	}

	id := m.variants[m.current].ID
	if runs, err := m.store.TopScores(id, boardMaxRows); err == nil {
		m.runs = runs
	}
	if rec, err := m.store.GetGameStats(id); err == nil {
		m.record = *rec
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Placements),
			fmt.Sprint(r.BestStreak),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// switchVariant moves by delta through the variants, wrapping around.
func (m *ScoreboardModel) switchVariant(delta int) {
	if n := len(m.variants); n > 0 {
		m.current = (m.current + delta + n) % n
		m.load()
	}
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			delta := 1
			if s := msg.String(); s == "shift+tab" || s == "left" || s == "h" {
				delta = -1
			}
			m.switchVariant(delta)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.styles.title.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	runs := m.styles.panel.Render(m.runsView())
	record := m.styles.panel.Width(boardPanelW).Render(m.recordView())
	if m.width >= boardSideBySide {
		b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, record, " ", runs), m.width))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, record, runs))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the variant switch with the current variant highlighted.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			parts[i] = m.styles.tabOn.Render(v.Title)
		} else {
			parts[i] = m.styles.tabOff.Render(v.Title)
		}
	}
	return strings.Join(parts, " ")
}

// recordView summarizes every stored run of the current variant.
func (m ScoreboardModel) recordView() string {
	if m.record.GamesCount == 0 {
		return m.styles.label.Render("No runs yet")
	}
	line := func(label, value string) string {
		return m.styles.label.Render(fmt.Sprintf("%-8s", label)) + m.styles.value.Render(value)
	}
	last := "-"
	if !m.record.LastPlayed.IsZero() {
		last = m.record.LastPlayed.Format("Jan 02 15:04")
	}
	return strings.Join([]string{
		line("Best", fmt.Sprint(m.record.HighScore)),
		line("Runs", fmt.Sprint(m.record.GamesCount)),
		line("Average", fmt.Sprintf("%.0f", m.record.AvgScore)),
		line("Streak", fmt.Sprint(m.record.BestStreak)),
		line("Last", last),
	}, "\n")
}

func (m ScoreboardModel) runsView() string {
	if len(m.runs) == 0 {
		return m.styles.empty.Render("No scores recorded yet.\nStack a few blocks to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the user left for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user quit the program.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard and reports whether to return to the menu.
func RunScoreboard(opts Options, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(opts, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
