// Package tui is the interactive browser: one ticker at a time with its
// valuation figures and statement series, plus a watchlist screen.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/komsit37/fcff/pkg/fcff/enrich"
	"github.com/komsit37/fcff/pkg/fcff/render"
	"github.com/komsit37/fcff/pkg/fcff/session"
	"github.com/komsit37/fcff/pkg/fcff/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	likedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selStyle    = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("236"))
)

const emptyWatchlist = "Watchlist is currently empty"

type screen int

const (
	screenMain screen = iota
	screenWatchlist
)

// quoteMsg delivers a live quote fetched off the update loop.
type quoteMsg struct {
	ticker string
	quote  types.Quote
	err    error
}

// Options configures the browser.
type Options struct {
	// Quotes is optional; without it no live price is shown.
	Quotes enrich.QuoteService
	Color  bool
	Logger *slog.Logger
}

// Model is the bubbletea model.
type Model struct {
	ctx    context.Context
	sess   *session.Session
	quotes enrich.QuoteService
	color  bool
	log    *slog.Logger

	screen   screen
	snap     session.Snapshot
	status   string
	isErr    bool
	entries  []session.Entry
	cursor   int
	search   textinput.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func New(ctx context.Context, sess *session.Session, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "search: "
	ti.Placeholder = "D05.SI"
	ti.CharLimit = 32

	m := Model{
		ctx:    ctx,
		sess:   sess,
		quotes: opts.Quotes,
		color:  opts.Color,
		log:    opts.Logger,
		search: ti,
	}
	if m.log == nil {
		m.log = slog.New(slog.DiscardHandler)
	}
	m.reload()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.quoteCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := max(1, m.height-4)
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refresh()
		return m, nil

	case quoteMsg:
		if msg.err != nil {
			m.log.Warn("quote lookup failed", "ticker", msg.ticker, "error", msg.err)
			return m, nil
		}
		if msg.ticker == m.snap.Record.Ticker && m.snap.Quote == nil {
			q := msg.quote
			m.snap.Quote = &q
			m.snap.Info = append(m.snap.Info, session.QuoteFields(m.snap.Record, &q)...)
			m.refresh()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		if m.screen == screenWatchlist {
			return m.updateWatchlist(msg)
		}
		return m.updateMain(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n", "right":
		return m.navigate(m.sess.Next())
	case "b", "left":
		return m.navigate(m.sess.Prev())
	case "l":
		liked, err := m.sess.ToggleLike(m.ctx)
		if err != nil {
			m.setError(err)
		} else {
			m.snap.Liked = liked
			if liked {
				m.setStatus("Added " + m.sess.Ticker() + " to watchlist")
			} else {
				m.setStatus("Removed " + m.sess.Ticker() + " from watchlist")
			}
		}
		m.refresh()
		return m, nil
	case "w":
		m.screen = screenWatchlist
		m.cursor = 0
		m.loadEntries()
		m.refresh()
		m.viewport.GotoTop()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateWatchlist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.screen = screenMain
		m.reload()
		m.refresh()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.entries) == 0 {
			return m, nil
		}
		if err := m.sess.ViewEntry(m.entries[m.cursor]); err != nil {
			m.setError(err)
			break
		}
		m.screen = screenMain
		return m.navigate(nil)
	case "d":
		if len(m.entries) == 0 {
			return m, nil
		}
		e := m.entries[m.cursor]
		if err := m.sess.RemoveEntry(m.ctx, e); err != nil {
			m.setError(err)
			break
		}
		m.setStatus("Removed " + e.Ticker)
		m.loadEntries()
		if m.cursor >= len(m.entries) {
			m.cursor = max(0, len(m.entries)-1)
		}
	case "/":
		m.search.SetValue("")
		cmd := m.search.Focus()
		m.refresh()
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Blur()
		m.refresh()
		return m, nil
	case "enter":
		query := m.search.Value()
		m.search.Blur()
		if err := m.sess.Search(query); err != nil {
			m.setError(err)
			m.refresh()
			return m, nil
		}
		m.screen = screenMain
		return m.navigate(nil)
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

// navigate reloads the current ticker after a cursor move. A failed move
// leaves the cursor and the snapshot as they were.
func (m Model) navigate(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.setError(err)
		m.refresh()
		return m, nil
	}
	m.status = ""
	m.reload()
	m.refresh()
	m.viewport.GotoTop()
	return m, m.quoteCmd()
}

// reload replaces the snapshot with the cursor's ticker, keeping the
// partial snapshot when loading fails so the screen never names a
// ticker other than the one Like acts on.
func (m *Model) reload() {
	snap, err := m.sess.Current(m.ctx)
	m.snap = snap
	if err != nil {
		m.setError(err)
	}
}

func (m *Model) loadEntries() {
	entries, err := m.sess.Watchlist(m.ctx)
	if err != nil {
		m.setError(err)
		return
	}
	m.entries = entries
}

func (m Model) quoteCmd() tea.Cmd {
	if m.quotes == nil {
		return nil
	}
	ctx, svc, ticker := m.ctx, m.quotes, m.sess.Ticker()
	return func() tea.Msg {
		q, err := svc.Get(ctx, ticker)
		return quoteMsg{ticker: ticker, quote: q, err: err}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.isErr = false
}

func (m *Model) setError(err error) {
	m.log.Debug("action failed", "error", err)
	m.status = session.UserMessage(err)
	m.isErr = true
}

// refresh re-renders the viewport content for the active screen.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	if m.screen == screenWatchlist {
		m.viewport.SetContent(m.watchlistContent())
		return
	}
	m.viewport.SetContent(m.mainContent())
}

func (m Model) mainContent() string {
	var b strings.Builder
	render.Info(&b, "", m.snap.Info, m.color)
	b.WriteString("\n")
	switch {
	case m.snap.SeriesErr != nil:
		b.WriteString(dimStyle.Render(session.UserMessage(m.snap.SeriesErr)))
		b.WriteString("\n")
	case len(m.snap.Series) > 0:
		render.Series(&b, m.snap.Series, m.color)
	}
	return b.String()
}

func (m Model) watchlistContent() string {
	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n\n")
	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render(emptyWatchlist))
		b.WriteString("\n")
		return b.String()
	}
	for i, e := range m.entries {
		line := fmt.Sprintf("  %-12s", e.Ticker)
		if e.Index < 0 {
			line += dimStyle.Render("  not in catalog")
		}
		if i == m.cursor {
			line = selStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var header string
	if m.screen == screenWatchlist {
		header = fmt.Sprintf(" Watchlist    %d tickers ", len(m.entries))
	} else {
		name := ""
		if len(m.snap.Info) > 0 {
			name = m.snap.Info[0].Value
		}
		header = fmt.Sprintf(" %s  %s    [%d/%d] ", m.snap.Record.Ticker, name, m.snap.Index+1, m.snap.Len)
	}
	headerBar := headerStyle.Render(padOrTrunc(header, m.width))
	if m.screen == screenMain && m.snap.Liked {
		headerBar += "\n" + likedStyle.Render(" * in watchlist")
	}

	keys := " n/→ next  b/← back  l like  w watchlist  q quit"
	if m.screen == screenWatchlist {
		keys = " ↑/↓ select  enter view  d remove  / search  esc back"
	}
	footer := footerStyle.Render(padOrTrunc(keys, m.width))
	if m.status != "" {
		st := " " + m.status
		if m.isErr {
			st = errStyle.Render(st)
		}
		footer = st + "\n" + footer
	}

	return headerBar + "\n" + m.viewport.View() + "\n" + footer
}

func padOrTrunc(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		r := []rune(s)
		if len(r) > width {
			return string(r[:width])
		}
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Run starts the browser on the alternate screen and blocks until quit.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	p := tea.NewProgram(New(ctx, sess, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
