package ui

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/checkoff/internal/api"
	"github.com/five82/checkoff/internal/prefs"
	"github.com/five82/checkoff/internal/session"
	"github.com/five82/checkoff/internal/state"
	"github.com/five82/checkoff/internal/syncer"
)

const defaultTick = 250 * time.Millisecond

// mode is what currently receives keystrokes.
type mode int

const (
	modeBrowse mode = iota
	modeCompose
	modeEdit
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *syncer.Controller
	Prefs      prefs.Prefs
	PrefsPath  string
	Endpoint   string
	Tick       time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *syncer.Controller
	prefsPath string
	endpoint  string
	tick      time.Duration

	// UI state
	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	mode    mode
	width   int
	height  int

	compose textinput.Model
	edit    textinput.Model

	// Data state
	snapshot      state.Snapshot
	selected      int
	hideCompleted bool
	notice        string // transient hint for rejected intents
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = defaultTick
	}

	compose := textinput.New()
	compose.Prompt = "+ "
	compose.Placeholder = "New todo..."
	compose.CharLimit = 200

	edit := textinput.New()
	edit.Prompt = "> "
	edit.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:           ctx,
		ctrl:          opts.Controller,
		prefsPath:     opts.PrefsPath,
		endpoint:      opts.Endpoint,
		tick:          tick,
		theme:         GetTheme(opts.Prefs.Theme),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		spinner:       sp,
		compose:       compose,
		edit:          edit,
		hideCompleted: opts.Prefs.HideCompleted,
	}
	if m.ctrl != nil {
		m.snapshot = m.ctrl.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(m.tick),
		m.runOp(opRefresh, m.ctrl.Refresh),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.compose.Width = max(msg.Width-8, 10)
		m.edit.Width = max(msg.Width-12, 10)
		return m, nil

	case tickMsg:
		m.syncSnapshot()
		return m, tickCmd(m.tick)

	case opDoneMsg:
		return m.handleOpDone(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey routes keystrokes by mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case modeCompose:
		return m.handleComposeKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	visible := m.visibleItems()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.HideCompleted):
		m.hideCompleted = !m.hideCompleted
		m.clampSelection()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.mode = modeCompose
		m.compose.SetValue(m.ctrl.Compose())
		m.compose.CursorEnd()
		cmd := m.compose.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		return m, m.runOp(opRefresh, m.ctrl.Refresh)

	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.DismissError()
		m.syncSnapshot()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(visible)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(len(visible)-1, 0)
		return m, nil
	}

	item, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	id := item.ID

	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m, m.runOp(opToggle, func(ctx context.Context) error {
			return m.ctrl.Toggle(ctx, id)
		})

	case key.Matches(msg, m.keys.Delete):
		return m, m.runOp(opDelete, func(ctx context.Context) error {
			return m.ctrl.Remove(ctx, id)
		})

	case key.Matches(msg, m.keys.Edit):
		if err := m.ctrl.StartEdit(id); err != nil {
			m.notice = noticeFor(err)
			return m, nil
		}
		m.mode = modeEdit
		m.edit.SetValue(m.ctrl.Session().Draft())
		m.edit.CursorEnd()
		cmd := m.edit.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		title := m.compose.Value()
		m.ctrl.SetCompose(title)
		return m, m.runOp(opCreate, func(ctx context.Context) error {
			return m.ctrl.Create(ctx, title)
		})

	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.SetCompose(m.compose.Value())
		m.compose.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	m.ctrl.SetCompose(m.compose.Value())
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		_ = m.ctrl.UpdateDraft(m.edit.Value())
		return m, m.runOp(opCommit, m.ctrl.Commit)

	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CancelEdit()
		m.edit.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	_ = m.ctrl.UpdateDraft(m.edit.Value())
	return m, cmd
}

// handleOpDone reconciles the view after a controller call returns.
func (m Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	m.syncSnapshot()
	if msg.err != nil && syncer.IsValidation(msg.err) {
		m.notice = noticeFor(msg.err)
	}

	switch msg.op {
	case opCreate:
		// The controller clears the buffer only on success.
		m.compose.SetValue(m.ctrl.Compose())
		if msg.err == nil {
			m.compose.Blur()
			m.mode = modeBrowse
			m.notice = ""
		}
	case opCommit:
		if m.mode == modeEdit && m.ctrl.Session().State() == session.Viewing {
			m.edit.Blur()
			m.mode = modeBrowse
		}
	}
	return m, nil
}

func (m *Model) syncSnapshot() {
	if m.ctrl == nil {
		return
	}
	m.snapshot = m.ctrl.Snapshot()
	m.clampSelection()
}

func (m *Model) clampSelection() {
	n := len(m.visibleItems())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// visibleItems applies the hide-completed preference in server order.
func (m Model) visibleItems() []api.Todo {
	if !m.hideCompleted {
		return m.snapshot.Items
	}
	out := make([]api.Todo, 0, len(m.snapshot.Items))
	for _, item := range m.snapshot.Items {
		if !item.Completed {
			out = append(out, item)
		}
	}
	return out
}

func (m Model) selectedItem() (api.Todo, bool) {
	items := m.visibleItems()
	if m.selected < 0 || m.selected >= len(items) {
		return api.Todo{}, false
	}
	return items[m.selected], true
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, HideCompleted: m.hideCompleted}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs failed: %v", err)
	}
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, syncer.ErrLocked):
		return "Completed todos cannot be edited"
	case errors.Is(err, syncer.ErrEmptyTitle):
		return "Title cannot be empty"
	case errors.Is(err, syncer.ErrNotFound):
		return "That todo is gone; refresh with r"
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type opKind int

const (
	opRefresh opKind = iota
	opCreate
	opToggle
	opDelete
	opCommit
)

type opDoneMsg struct {
	op  opKind
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runOp runs a controller call off the update loop. Calls are not
// serialized; whichever refresh resolves last wins.
func (m Model) runOp(op opKind, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Controller == nil {
		return errors.New("ui requires a controller")
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
