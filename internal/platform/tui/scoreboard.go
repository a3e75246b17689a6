package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-brawl/internal/registry"
	"github.com/vovakirdan/tui-brawl/internal/storage"
)

const (
	minWidthForSidebar = 90
	sidebarWidth       = 22
	maxMatches         = 100
)

// HistoryOrder selects how matches are listed.
type HistoryOrder int

const (
	OrderBest   HistoryOrder = iota // highest score first
	OrderRecent                     // newest first
)

func (o HistoryOrder) String() string {
	if o == OrderRecent {
		return "recent"
	}
	return "best"
}

// arena is one entry of the history sidebar. An empty ID covers every arena.
type arena struct {
	ID    string
	Title string
}

// ScoreboardKeyMap defines the key bindings for the match history.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Order key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Order, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Order, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next arena"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev arena"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows recorded fights per arena.
type ScoreboardModel struct {
	arenas    []arena
	cursor    int
	order     HistoryOrder
	store     *storage.Store
	matches   []storage.Match
	stats     map[string]*storage.VariantStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates the history view, starting on every arena.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	arenas := []arena{{Title: "All arenas"}}
	for _, g := range registry.List() {
		arenas = append(arenas, arena{ID: g.ID, Title: g.Title})
	}

	m := ScoreboardModel{
		arenas: arenas,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool { return m.width >= minWidthForSidebar }

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Arena", Width: 9},
		{Title: "Score", Width: 6},
		{Title: "Kills", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Result", Width: 7},
		{Title: "Date", Width: 12},
	}

	avail := m.width - 6
	if m.wide() {
		avail -= sidebarWidth + 4
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := avail - used; spare > 0 {
		columns[6].Width += min(spare, 6)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-14, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("52")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches matches and aggregates for the selected arena.
func (m *ScoreboardModel) reload() {
	m.matches = nil
	m.stats = nil
	if m.store != nil {
		m.matches = m.query(m.arenas[m.cursor].ID)
		if st, err := m.store.Stats(); err == nil {
			m.stats = st
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) query(variant string) []storage.Match {
	if m.order == OrderBest {
		matches, err := m.store.TopMatches(variant, maxMatches)
		if err != nil {
			return nil
		}
		return matches
	}

	recent, err := m.store.RecentMatches(maxMatches)
	if err != nil || variant == "" {
		return recent
	}
	filtered := recent[:0]
	for _, r := range recent {
		if r.Variant == variant {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, len(m.matches))
	for i, r := range m.matches {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Variant,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d/%d", r.Kills, r.Bots),
			fmt.Sprintf("%.0fs", r.Elapsed),
			r.Outcome,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history view.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.arenas)
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.arenas) - 1) % len(m.arenas)
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.newTable()
		m.fillRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	historyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	historyDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	historyPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	historyBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// View renders the history view.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	current := m.arenas[m.cursor]
	title := fmt.Sprintf("FIGHT HISTORY - %s (%s)", current.Title, m.order)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(historyTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	body := historyBoxStyle.Render(m.renderMatches())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body))
	} else {
		b.WriteString(centerText(historyDimStyle.Render("< "+current.Title+" >"), m.width))
		b.WriteString("\n")
		b.WriteString(body)
	}

	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n")
	b.WriteString(historyDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Arenas\n")
	for i, a := range m.arenas {
		name := a.Title
		if limit := sidebarWidth - 6; len(name) > limit {
			name = name[:limit-1] + "."
		}
		if i == m.cursor {
			sb.WriteString(historyPickStyle.Render("> " + name))
		} else {
			sb.WriteString("  " + name)
		}
		sb.WriteString("\n")
	}
	return historyBoxStyle.Width(sidebarWidth).Render(sb.String())
}

func (m ScoreboardModel) renderMatches() string {
	if len(m.matches) == 0 {
		return historyDimStyle.Italic(true).Padding(1, 3).
			Render("No fights recorded yet.\nEnter the arena to set a score!")
	}
	return m.table.View() + "\n" + historyDimStyle.Render(m.selectedDetail())
}

// selectedDetail describes the highlighted match.
func (m ScoreboardModel) selectedDetail() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.matches) {
		return ""
	}
	r := m.matches[i]
	return fmt.Sprintf("dealt %d  taken %d  seed %d", r.DamageDealt, r.DamageTaken, r.Seed)
}

// renderSummary aggregates the selected arena, or every arena at once.
func (m ScoreboardModel) renderSummary() string {
	id := m.arenas[m.cursor].ID
	var total storage.VariantStats
	for variant, st := range m.stats {
		if id != "" && variant != id {
			continue
		}
		total.Matches += st.Matches
		total.Clears += st.Clears
		total.Deaths += st.Deaths
		total.TotalKills += st.TotalKills
		total.BestScore = max(total.BestScore, st.BestScore)
		total.LongestRun = max(total.LongestRun, st.LongestRun)
	}
	if total.Matches == 0 {
		return ""
	}
	return historyDimStyle.Render(fmt.Sprintf(
		"%d fights  %d cleared  %d died  %d kills  best %d  longest %.0fs",
		total.Matches, total.Clears, total.Deaths, total.TotalKills, total.BestScore, total.LongestRun,
	))
}

// Order returns the current listing order.
func (m ScoreboardModel) Order() HistoryOrder { return m.order }

// Matches returns the matches currently listed.
func (m ScoreboardModel) Matches() []storage.Match { return m.matches }

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the history view.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
