package tui

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/MarcinSonic/TheNewsApp/internal/browser"
	"github.com/MarcinSonic/TheNewsApp/internal/config"
	"github.com/MarcinSonic/TheNewsApp/internal/feed"
	"github.com/MarcinSonic/TheNewsApp/internal/update"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Loader runs one query against the news service.
type Loader interface {
	Load(ctx context.Context, spec feed.QuerySpec) feed.Result
}

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeNormal mode = iota
	modeFilter
	modeHelp
)

type App struct {
	cfg     *config.Config
	cfgPath string
	loader  Loader
	log     *slog.Logger
	version string
	updates *update.Checker

	articles []feed.Article
	cursor   int
	focus    focusPane
	mode     mode

	width  int
	height int

	spinner   spinner.Model
	filterBar filterBar

	// State
	loading       bool
	loadSeq       int
	reason        feed.Reason
	skipped       int
	previewScroll int
	currentDate   string
	updateVersion string
	err           error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg     *config.Config
	CfgPath string
	Loader  Loader
	Log     *slog.Logger
	Version string
	// Updates is optional; without it no release check runs.
	Updates *update.Checker
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	return &App{
		cfg:         opts.Cfg,
		cfgPath:     opts.CfgPath,
		loader:      opts.Loader,
		log:         log,
		version:     opts.Version,
		updates:     opts.Updates,
		filterBar:   newFilterBar(opts.Cfg.EnabledSections()),
		spinner:     sp,
		currentDate: time.Now().Format("Jan 2"),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.startLoad(), checkUpdateCmd(a.updates, a.version))
}

// startLoad issues a new query. Results of earlier queries still in flight are dropped.
func (a *App) startLoad() tea.Cmd {
	return tea.Batch(a.loadCmds()...)
}

// loadCmds starts the spinner only when no load is running; its tick chain is
// already alive otherwise.
func (a *App) loadCmds() []tea.Cmd {
	a.loadSeq++
	cmds := []tea.Cmd{a.loadCmd(a.loadSeq, a.cfg.QuerySpec())}
	if !a.loading {
		cmds = append(cmds, a.spinner.Tick)
	}
	a.loading = true
	return cmds
}

// loadCmd captures the query in the closure; it runs off the event loop.
func (a *App) loadCmd(seq int, spec feed.QuerySpec) tea.Cmd {
	loader := a.loader
	timeout := a.cfg.LoadTimeoutDuration()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return articlesLoadedMsg{seq: seq, result: loader.Load(ctx, spec)}
	}
}

// saveConfigCmd persists a snapshot of the section settings.
func (a *App) saveConfigCmd() tea.Cmd {
	snapshot := *a.cfg
	snapshot.Sections = maps.Clone(a.cfg.Sections)
	path := a.cfgPath
	return func() tea.Msg {
		if err := snapshot.Save(path); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func checkUpdateCmd(updates *update.Checker, version string) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		latest, ok := updates.Newer(context.Background(), version)
		if !ok {
			return nil
		}
		return updateAvailableMsg{version: latest}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case articlesLoadedMsg:
		if msg.seq != a.loadSeq {
			a.log.Debug("discarding stale load", "seq", msg.seq, "current", a.loadSeq)
			return a, nil
		}
		a.loading = false
		a.reason = msg.result.Reason
		a.skipped = msg.result.Skipped
		a.articles = msg.result.Articles
		a.previewScroll = 0
		if a.cursor >= len(a.articles) {
			a.cursor = max(0, len(a.articles)-1)
		}
		return a, nil

	case errMsg:
		a.log.Error("tui action failed", "err", msg.err)
		a.err = msg.err
		return a, nil

	case updateAvailableMsg:
		a.updateVersion = msg.version
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.articles)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if a.cursor < len(a.articles) {
			return a, openBrowserCmd(a.articles[a.cursor].URL)
		}
		return a, nil
	case "f":
		a.mode = modeFilter
		a.filterBar.filterMode = true
		return a, nil
	case "r":
		return a, a.startLoad()
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f", "q":
		a.mode = modeNormal
		a.filterBar.filterMode = false
		return a, nil
	case "left", "h":
		if a.filterBar.filterCursor > 0 {
			a.filterBar.filterCursor--
		}
		return a, nil
	case "right", "l":
		if a.filterBar.filterCursor < len(a.filterBar.sections)-1 {
			a.filterBar.filterCursor++
		}
		return a, nil
	case " ", "enter":
		if s, ok := a.filterBar.current(); ok {
			return a, a.toggleSection(s)
		}
		return a, nil
	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		if idx < len(a.filterBar.sections) {
			a.filterBar.filterCursor = idx
			return a, a.toggleSection(a.filterBar.sections[idx])
		}
		return a, nil
	}
	return a, nil
}

// toggleSection flips a section, persists the setting and replaces the list.
func (a *App) toggleSection(s feed.Section) tea.Cmd {
	enabled := a.filterBar.toggle(s)
	a.cfg.SetSection(s, enabled)
	a.cursor = 0
	return tea.Batch(a.saveConfigCmd(), a.startLoad())
}

// emptyMessage explains an empty list.
func emptyMessage(loading bool, reason feed.Reason) string {
	switch {
	case loading:
		return "Loading articles..."
	case reason == feed.ReasonNoNetwork:
		return "No internet connection"
	case reason == feed.ReasonFetchFailed:
		return "Could not reach the news service"
	case reason == feed.ReasonParseFailed:
		return "Could not read the news response"
	default:
		return "No articles found"
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newsapp")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.45)
	previewWidth := a.width - listWidth - 1

	if contentHeight < 3 {
		contentHeight = 3
	}

	headerLeft := headerStyle.Render("newsapp")
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	filter := a.filterBar.render(a.width)

	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.articles, a.cursor, contentHeight, innerListW, emptyMessage(a.loading, a.reason))

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	var selected *feed.Article
	if a.cursor < len(a.articles) {
		selected = &a.articles[a.cursor]
	}
	previewContent := renderPreview(selected, previewWidth-4, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	status := renderStatusBar(statusInfo{
		articleCount:  len(a.articles),
		filterLabel:   a.filterBar.activeLabel(),
		skipped:       a.skipped,
		updateVersion: a.updateVersion,
		loading:       a.loading,
		filtering:     a.mode == modeFilter,
	}, a.width)

	if a.loading {
		status = a.spinner.View() + " " + status
	}

	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("newsapp")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓      Navigate article list\n" +
		"  tab           Switch focus between list and preview\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open article in browser\n" +
		"  r             Reload articles\n" +
		"  f             Choose sections\n\n" +
		dim.Render("Sections") + "\n" +
		"  ←/→, h/l      Move between sections\n" +
		"  space/enter   Toggle section\n" +
		"  1-5           Toggle section by number\n" +
		"  esc, f        Done\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c     Quit"

	card := helpCardStyle.Render(strings.TrimRight(help, "\n"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
