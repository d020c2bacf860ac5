// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     logviewer
// Description: Bubbletea model for browsing the command journal
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package logviewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/cta/internal/journal"
	"github.com/msto63/cta/pkg/core/version"
)

// Operations the viewer can filter on, in cycle order
var operations = []string{
	"", "config", "get", "create", "delete", "connect", "disconnect", "reserve", "release", "perform",
}

// StatusFilter tracks which outcomes are shown
type StatusFilter struct {
	OK     bool
	Failed bool
}

// Model is the Bubbletea model for the journal viewer
type Model struct {
	// State
	width      int
	height     int
	ready      bool
	loading    bool
	paused     bool
	autoScroll bool
	details    bool
	err        error

	// Components
	viewport viewport.Model
	spinner  spinner.Model

	// Entry state
	allEntries      []*journal.Entry
	filteredEntries []*journal.Entry
	statusFilter    StatusFilter
	opIndex         int
	searchFilter    string

	// Stats
	stats *journal.Stats

	// Configuration
	store           journal.Store
	sessionID       string
	maxEntries      int
	refreshInterval time.Duration
}

// Config holds viewer configuration
type Config struct {
	Store           journal.Store
	SessionID       string // only this session when set
	Search          string // initial case-insensitive call filter
	MaxEntries      int
	RefreshInterval time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig(store journal.Store) Config {
	return Config{
		Store:           store,
		MaxEntries:      1000,
		RefreshInterval: 2 * time.Second,
	}
}

// New creates a new viewer model
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1000
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 2 * time.Second
	}

	return Model{
		spinner:         sp,
		statusFilter:    StatusFilter{OK: true, Failed: true},
		searchFilter:    cfg.Search,
		autoScroll:      true,
		loading:         true,
		store:           cfg.Store,
		sessionID:       cfg.SessionID,
		maxEntries:      cfg.MaxEntries,
		refreshInterval: cfg.RefreshInterval,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadEntries,
		m.loadStats,
		m.tick(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title + filter bar
		footerHeight := 4 // Status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.allEntries = msg.entries
			m.applyFilters()
			m.updateViewportContent()
			if m.autoScroll {
				m.viewport.GotoBottom()
			}
		}

	case statsLoadedMsg:
		if msg.err == nil {
			m.stats = msg.stats
		}

	case tickMsg:
		if !m.paused {
			cmds = append(cmds, m.loadEntries, m.loadStats)
		}
		cmds = append(cmds, m.tick())

	case refreshMsg:
		m.loading = true
		cmds = append(cmds, m.loadEntries, m.loadStats)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit

		// Outcome filters
		case "1":
			m.statusFilter.OK = !m.statusFilter.OK
		case "2":
			m.statusFilter.Failed = !m.statusFilter.Failed
		case "0":
			m.statusFilter = StatusFilter{OK: true, Failed: true}
			m.opIndex = 0

		// Operation filter
		case "o":
			m.opIndex = (m.opIndex + 1) % len(operations)

		// Command and result lines
		case "d":
			m.details = !m.details

		// Pause/Resume
		case "p", " ":
			m.paused = !m.paused
			return m, nil

		case "r":
			m.loading = true
			return m, func() tea.Msg { return refreshMsg{} }

		case "a":
			m.autoScroll = !m.autoScroll
			if m.autoScroll {
				m.viewport.GotoBottom()
			}
			return m, nil

		case "g":
			m.viewport.GotoTop()
			m.autoScroll = false
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			m.autoScroll = true
			return m, nil

		default:
			return m, nil
		}
		m.applyFilters()
		m.updateViewportContent()
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		m.autoScroll = false
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyUp:
		m.viewport.LineUp(1)
		m.autoScroll = false
		return m, nil

	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading journal..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(m.renderEntryArea())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the header with logo and state
func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)

	scope := StatusOnlineStyle.Render("all sessions")
	if m.sessionID != "" {
		scope = StatusOnlineStyle.Render("session " + m.sessionID)
	}
	if m.err != nil {
		scope = StatusOfflineStyle.Render("error: " + m.err.Error())
	}

	pauseStatus := ""
	if m.paused {
		pauseStatus = "  " + StatusPausedStyle.Render("PAUSED")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		scope,
		pauseStatus,
	)

	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderFilterBar renders the outcome and operation filters
func (m Model) renderFilterBar() string {
	op := operations[m.opIndex]
	if op == "" {
		op = "all"
	}
	filters := []string{
		fmt.Sprintf("1:%s", RenderFilterStatus("OK", m.statusFilter.OK)),
		fmt.Sprintf("2:%s", RenderFilterStatus("FAIL", m.statusFilter.Failed)),
		fmt.Sprintf("o:%s", FilterActiveStyle.Render(op)),
	}
	if m.searchFilter != "" {
		filters = append(filters, "search:"+FilterActiveStyle.Render(m.searchFilter))
	}

	countStr := HelpDescStyle.Render(fmt.Sprintf("[%d/%d entries]", len(m.filteredEntries), len(m.allEntries)))

	scrollStr := ""
	if m.autoScroll {
		scrollStr = "  " + FilterActiveStyle.Render("[Auto-Scroll]")
	}

	content := strings.Join(filters, "  ") + "  " + countStr + scrollStr
	return FilterBarStyle.Width(m.width - 2).Render(content)
}

// renderEntryArea renders the main viewport
func (m Model) renderEntryArea() string {
	style := EntryPanelStyle.Width(m.width - 2).Height(m.viewport.Height + 2)
	return style.Render(m.viewport.View())
}

// renderStatusBar renders totals, version and load state
func (m Model) renderStatusBar() string {
	leftPart := HelpDescStyle.Render("Journal: empty")
	if m.stats != nil {
		leftPart = HelpDescStyle.Render(fmt.Sprintf("Journal: %d commands, %d failed, %d sessions",
			m.stats.Total, m.stats.Failed, m.stats.Sessions))
	}

	centerPart := HelpDescStyle.Render("v" + version.Version)

	var rightPart string
	switch {
	case m.loading:
		rightPart = m.spinner.View() + " Loading..."
	case m.stats != nil && !m.stats.LastEntry.IsZero():
		rightPart = StatusOnlineStyle.Render("last " + m.stats.LastEntry.Format("15:04:05"))
	default:
		rightPart = HelpDescStyle.Render("idle")
	}

	leftLen := lipgloss.Width(leftPart)
	centerLen := lipgloss.Width(centerPart)
	rightLen := lipgloss.Width(rightPart)
	availableSpace := m.width - leftLen - centerLen - rightLen - 4
	if availableSpace < 2 {
		availableSpace = 2
	}
	leftPadding := availableSpace / 2
	rightPadding := availableSpace - leftPadding

	content := leftPart + strings.Repeat(" ", leftPadding) + centerPart + strings.Repeat(" ", rightPadding) + rightPart
	return StatusBarStyle.Width(m.width - 2).Render(content)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("1/2", "OK/Fail"),
		RenderKeyHint("o", "Operation"),
		RenderKeyHint("0", "All"),
		RenderKeyHint("d", "Details"),
		RenderKeyHint("p", "Pause"),
		RenderKeyHint("r", "Refresh"),
		RenderKeyHint("g/G", "Top/Bottom"),
		RenderKeyHint("q", "Quit"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent renders the filtered entries into the viewport
func (m *Model) updateViewportContent() {
	var content strings.Builder

	for _, e := range m.filteredEntries {
		// Format: TIME [STATUS] OPERATION call (duration)
		timeStr := EntryTimestampStyle.Render(e.Timestamp.Format("15:04:05"))
		opStr := EntryOperationStyle.Render(fmt.Sprintf("%-10s", truncateString(e.Operation, 10)))
		callStr := EntryCallStyle.Render(e.Call)
		durStr := EntryDurationStyle.Render(fmt.Sprintf("(%s)", e.Duration.Round(time.Millisecond)))

		content.WriteString(fmt.Sprintf("%s %s %s %s %s", timeStr, RenderStatusBadge(e.Failed()), opStr, callStr, durStr))
		content.WriteString("\n")

		if m.details {
			content.WriteString(EntryDetailStyle.Render("command: " + e.Command))
			content.WriteString("\n")
			if e.Failed() {
				content.WriteString(EntryDetailStyle.Render("error:   " + e.Error))
			} else {
				content.WriteString(EntryDetailStyle.Render("result:  " + e.Result))
			}
			content.WriteString("\n")
		}
	}

	m.viewport.SetContent(content.String())
}

// applyFilters filters entries based on current filter settings
func (m *Model) applyFilters() {
	m.filteredEntries = make([]*journal.Entry, 0, len(m.allEntries))
	op := operations[m.opIndex]

	for _, e := range m.allEntries {
		if e.Failed() && !m.statusFilter.Failed {
			continue
		}
		if !e.Failed() && !m.statusFilter.OK {
			continue
		}
		if op != "" && e.Operation != op {
			continue
		}
		if m.searchFilter != "" && !strings.Contains(strings.ToLower(e.Call), strings.ToLower(m.searchFilter)) {
			continue
		}
		m.filteredEntries = append(m.filteredEntries, e)
	}
}

// loadEntries reads the newest entries, oldest first
func (m Model) loadEntries() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := m.store.Query(ctx, journal.Filter{
		SessionID: m.sessionID,
		Limit:     m.maxEntries,
	})
	if err != nil {
		return entriesLoadedMsg{err: err}
	}

	// Reverse to get oldest first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entriesLoadedMsg{entries: entries}
}

// loadStats reads journal totals
func (m Model) loadStats() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stats, err := m.store.Stats(ctx)
	return statsLoadedMsg{stats: stats, err: err}
}

// truncateString truncates s to n bytes
func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}

// Run starts the viewer
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
