// Package tui provides the Bubble Tea characters dashboard.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/disneydash/internal/api"
	"github.com/verte-zerg/disneydash/internal/characters"
	"github.com/verte-zerg/disneydash/internal/debounce"
	"github.com/verte-zerg/disneydash/internal/export"
	"github.com/verte-zerg/disneydash/internal/films"
	"github.com/verte-zerg/disneydash/internal/journal"
	"github.com/verte-zerg/disneydash/internal/logging"
	"github.com/verte-zerg/disneydash/internal/model"
)

type overlay int

const (
	overlayNone overlay = iota
	overlayDetail
	overlayChart
)

type fetchSettledMsg struct {
	result characters.Result
}

type filterTickMsg struct {
	seq int
}

type exportDoneMsg struct {
	path string
	err  error
}

type filterQuery struct {
	field model.FilterField
	value string
}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB77E"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Options configures the dashboard.
type Options struct {
	Fetcher      api.Fetcher
	Journal      *journal.Journal
	PageSize     int
	Debounce     time.Duration
	ExportDir    string
	ExportFormat export.Format
}

// Model implements the Bubble Tea characters dashboard. It is the only
// owner of the characters state.
type Model struct {
	fetcher      api.Fetcher
	journal      *journal.Journal
	exportDir    string
	exportFormat export.Format

	state   characters.State
	pending model.RequestParams
	settled int
	filter  *debounce.Debouncer[filterQuery]

	field       model.FilterField
	filterInput textinput.Model
	filterMode  bool
	order       model.SortOrder
	rowIDs      []int

	table    table.Model
	layout   tableLayout
	spinner  spinner.Model
	spinning bool
	overlay  overlay
	modal    viewport.Model
	notice   string

	width  int
	height int
}

// NewModel constructs a dashboard model.
func NewModel(opts Options) *Model {
	format := opts.ExportFormat
	if format == "" {
		format = export.FormatXLSX
	}
	m := &Model{
		fetcher:      opts.Fetcher,
		journal:      opts.Journal,
		exportDir:    opts.ExportDir,
		exportFormat: format,
		state:        characters.NewState(opts.PageSize),
		filter:       debounce.New[filterQuery](opts.Debounce),
		table:        newCharacterTable(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(titleStyle)),
		modal:        viewport.New(0, 0),
	}
	m.pending = m.state.Params
	m.filterInput = newFilterInput()
	m.setFilterPrompt()
	return m
}

func newFilterInput() textinput.Model {
	input := textinput.New()
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.fetch(m.state.Params)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case fetchSettledMsg:
		return m, m.applySettled(msg.result)
	case filterTickMsg:
		q, ok := m.filter.Fire(msg.seq)
		if !ok {
			return m, nil
		}
		return m, m.fetch(m.state.Params.WithFilter(q.field, q.value))
	case exportDoneMsg:
		if msg.err != nil {
			logging.Error().Err(msg.err).Msg("export failed")
			m.notice = "Export failed: " + msg.err.Error()
			return m, nil
		}
		logging.Info().Str("path", msg.path).Msg("exported films participation")
		m.notice = "Exported " + msg.path
		return m, nil
	case spinner.TickMsg:
		if !m.state.Fetching {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.overlay != overlayNone {
		return fitLines(m.renderModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// State returns the current characters state.
func (m *Model) State() characters.State {
	return m.state
}

// Close stops pending filter triggers.
func (m *Model) Close() {
	m.filter.Stop()
}

// fetch marks a request as in flight and returns the command that runs it.
// Superseded requests are not cancelled; whichever settles last wins.
func (m *Model) fetch(params model.RequestParams) tea.Cmd {
	m.state = characters.Apply(m.state, characters.FetchStarted{})
	m.pending = params
	fetcher := m.fetcher
	cmds := []tea.Cmd{func() tea.Msg {
		return fetchSettledMsg{result: characters.Fetch(context.Background(), fetcher, params)}
	}}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) applySettled(r characters.Result) tea.Cmd {
	m.state = characters.ApplyResult(m.state, r)
	m.settled++
	m.refreshTable()
	switch m.overlay {
	case overlayDetail:
		if _, ok := characters.ActiveCharacter(m.state); !ok {
			m.overlay = overlayNone
		} else {
			m.refreshModal()
		}
	case overlayChart:
		if len(m.state.Records) == 0 {
			m.overlay = overlayNone
		} else {
			m.refreshModal()
		}
	}
	return m.recordCmd(r)
}

func (m *Model) recordCmd(r characters.Result) tea.Cmd {
	if m.journal == nil {
		return nil
	}
	j := m.journal
	settledAt := time.Now()
	return func() tea.Msg {
		if _, err := j.Record(context.Background(), journal.FromResult(r, settledAt)); err != nil {
			logging.Warn().Err(err).Str("request_id", r.RequestID).Msg("failed to record fetch")
		}
		return nil
	}
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.filterMode {
		return m.updateFilter(msg)
	}
	if m.overlay != overlayNone {
		return m.updateOverlay(msg)
	}
	switch msg.String() {
	case "q":
		return m.quit()
	case "/":
		if m.filterDisabled() {
			return m, nil
		}
		m.filterMode = true
		return m, m.filterInput.Focus()
	case "tab":
		return m, m.cycleField()
	case "n", "right":
		if !characters.CanGoForward(m.state) {
			return m, nil
		}
		return m, m.fetch(m.state.Params.WithPage(m.state.Params.Page + 1))
	case "p", "left":
		if !characters.CanGoBack(m.state) {
			return m, nil
		}
		return m, m.fetch(m.state.Params.WithPage(m.state.Params.Page - 1))
	case "f":
		if !characters.CanGoBack(m.state) {
			return m, nil
		}
		return m, m.fetch(m.state.Params.WithPage(model.DefaultPage))
	case "L":
		last, ok := characters.LastPage(m.state)
		if !ok || last == m.state.Params.Page {
			return m, nil
		}
		return m, m.fetch(m.state.Params.WithPage(last))
	case "+", "=":
		return m, m.fetch(m.state.Params.WithPageSize(cyclePageSize(m.state.Params.PageSize, 1)))
	case "-":
		return m, m.fetch(m.state.Params.WithPageSize(cyclePageSize(m.state.Params.PageSize, -1)))
	case "s":
		m.order = m.order.Toggle()
		m.refreshTable()
		return m, nil
	case "enter":
		return m.openDetail()
	case "c":
		if !m.canChart() {
			return m, nil
		}
		m.overlay = overlayChart
		m.refreshModal()
		return m, nil
	case "x":
		if !m.canChart() {
			return m, nil
		}
		return m, m.exportCmd()
	case "e":
		if m.state.LastError == "" {
			return m, nil
		}
		m.state = characters.Apply(m.state, characters.ClearError{})
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyTab:
		return m, m.cycleField()
	}
	prev := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	value := m.filterInput.Value()
	if value == prev {
		return m, cmd
	}
	tick := m.filter.Push(filterQuery{field: m.field, value: value})
	return m, tea.Batch(cmd, tea.Tick(tick.After, func(time.Time) tea.Msg {
		return filterTickMsg{seq: tick.Seq}
	}))
}

func (m *Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc":
		if m.overlay == overlayDetail {
			m.state = characters.Apply(m.state, characters.ClearSelected{})
		}
		m.overlay = overlayNone
		return m, nil
	case "x":
		if m.overlay == overlayChart && m.canChart() {
			return m, m.exportCmd()
		}
		return m, nil
	case "e":
		m.state = characters.Apply(m.state, characters.ClearError{})
		return m, nil
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.filter.Stop()
	return m, tea.Quit
}

// cycleField moves to the next filter field. A non-empty filter is
// dropped and the list reloaded without it.
func (m *Model) cycleField() tea.Cmd {
	if m.filterDisabled() {
		return nil
	}
	prev := m.filterInput.Value()
	m.filter.Cancel()
	m.field = m.field.Next()
	m.filterInput.SetValue("")
	m.setFilterPrompt()
	if prev == "" {
		return nil
	}
	return m.fetch(m.state.Params.WithoutFilter())
}

func (m *Model) setFilterPrompt() {
	m.filterInput.Prompt = fmt.Sprintf("Search by %s: ", m.field.Label())
}

// filterDisabled holds the filter until the first response has arrived.
func (m *Model) filterDisabled() bool {
	return m.settled == 0 && len(m.state.Records) == 0 && m.filterInput.Value() == ""
}

func (m *Model) canChart() bool {
	return !m.state.Fetching && len(m.state.Records) > 0
}

func (m *Model) openDetail() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rowIDs) {
		return m, nil
	}
	m.state = characters.Apply(m.state, characters.SetSelected{ID: m.rowIDs[idx]})
	if _, ok := characters.ActiveCharacter(m.state); !ok {
		return m, nil
	}
	m.overlay = overlayDetail
	m.refreshModal()
	return m, nil
}

func (m *Model) exportCmd() tea.Cmd {
	entries := films.Aggregate(m.state.Records)
	page := m.state.Params.Page
	dir := m.exportDir
	format := m.exportFormat
	return func() tea.Msg {
		path, err := export.ToFile(dir, films.FileBase(page), format, films.Header, films.Rows(entries))
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *Model) refreshTable() {
	sorted := characters.SortByName(m.state.Records, m.order)
	rows, ids := buildRows(sorted)
	m.rowIDs = ids
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(maxInt(0, len(rows)-1))
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.setTableSize(m.width, bodyHeight)
	promptWidth := lipgloss.Width(m.filterInput.Prompt)
	m.filterInput.Width = maxInt(10, m.width-promptWidth-2)
	m.modal.Width = modalInnerWidth(m.width)
	m.modal.Height = maxInt(3, m.height-8)
	m.refreshModal()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = 2
	footerHeight = 2
	if m.state.LastError != "" {
		footerHeight++
	}
	if m.notice != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("Disney Characters")
	if m.state.Fetching {
		title += " " + m.spinner.View()
	}
	var filter string
	switch {
	case m.filterMode:
		filter = m.filterInput.View()
	case m.filterInput.Value() != "":
		filter = headerStyle.Render(truncateLine(m.filterInput.Prompt+m.filterInput.Value(), m.width))
	default:
		filter = headerStyle.Render(truncateLine(m.filterInput.Prompt+"(press / to search)", m.width))
	}
	return title + "\n" + filter
}

func (m *Model) renderBody() string {
	if len(m.state.Records) == 0 {
		switch {
		case m.state.Fetching:
			return m.spinner.View() + " Loading characters..."
		case characters.IsFirstRequest(m.state):
			return ""
		default:
			return mutedStyle.Render("No results found\nTry another search or page size.")
		}
	}
	return tableStyle.Render(m.table.View())
}

func (m *Model) renderFooter() string {
	lines := []string{
		headerStyle.Render(truncateLine(m.renderPagination(), m.width)),
		headerStyle.Render(truncateLine(m.renderHelp(), m.width)),
	}
	if m.state.LastError != "" {
		lines = append(lines, errorStyle.Render(truncateLine("Error: "+m.state.LastError+" (e to dismiss)", m.width)))
	}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(truncateLine(m.notice, m.width)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderPagination() string {
	params := characters.Params(m.state)
	pages := "?"
	if n, ok := characters.TotalPages(m.state); ok && n > 0 {
		pages = strconv.Itoa(n)
	}
	total := "more pages available"
	if n := characters.TotalCount(m.state); n != characters.UnknownCount {
		total = fmt.Sprintf("%d characters", n)
	}
	segments := []string{
		fmt.Sprintf("Page %d of %s", params.Page, pages),
		fmt.Sprintf("%d per page", params.PageSize),
		total,
		"sort " + m.order.String(),
	}
	if m.state.Fetching {
		segments = append(segments, fmt.Sprintf("loading page %d", m.pending.Page))
	}
	return strings.Join(segments, "  ·  ")
}

func (m *Model) renderHelp() string {
	return "Search: /  Field: tab  Page: n/p f/L  Size: +/-  Sort: s  Details: enter  Films: c  Export: x  Quit: q"
}

func (m *Model) renderModal() string {
	var title, help string
	switch m.overlay {
	case overlayDetail:
		title = "Character Details"
		help = "Scroll: up/down  Close: esc"
	case overlayChart:
		title = films.Title(m.state.Params.Page)
		help = fmt.Sprintf("Export %s: x  Scroll: up/down  Close: esc", strings.ToUpper(string(m.exportFormat)))
	}
	body := []string{cardValueStyle.Render(title), m.modal.View(), headerStyle.Render(help)}
	if m.notice != "" {
		body = append(body, noticeStyle.Render(m.notice))
	}
	if m.state.LastError != "" {
		body = append(body, errorStyle.Render("Error: "+m.state.LastError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) refreshModal() {
	width := modalInnerWidth(m.width)
	switch m.overlay {
	case overlayDetail:
		c, ok := characters.ActiveCharacter(m.state)
		if !ok {
			return
		}
		m.modal.SetContent(renderDetail(c, width))
	case overlayChart:
		m.modal.SetContent(renderChart(m.state.Records, width))
	default:
		return
	}
	m.modal.GotoTop()
}

func cyclePageSize(current, delta int) int {
	sizes := model.PageSizes
	idx := -1
	for i, size := range sizes {
		if size == current {
			idx = i
			break
		}
	}
	if idx == -1 {
		if delta > 0 {
			for _, size := range sizes {
				if size > current {
					return size
				}
			}
			return sizes[0]
		}
		for i := len(sizes) - 1; i >= 0; i-- {
			if sizes[i] < current {
				return sizes[i]
			}
		}
		return sizes[len(sizes)-1]
	}
	next := (idx + delta + len(sizes)) % len(sizes)
	return sizes[next]
}
