// Package tui is the terminal interface of the protocol tracker: a
// dashboard, a searchable list with row actions, the creation form and the
// AI assist prompt, all driven by an app.App.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/docprotocol/pkg/app"
	"github.com/aretw0/docprotocol/pkg/core"
)

// Form field order.
const (
	fieldTitle = iota
	fieldSender
	fieldRecipient
	fieldCategory
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Título", "Remetente", "Destinatário", "Categoria", "Descrição"}

// refreshMsg carries freshly loaded records.
type refreshMsg struct {
	stats   core.Stats
	recent  []core.Protocol
	visible []core.Protocol
	err     error
}

// submitMsg reports the outcome of a form submission.
type submitMsg struct{ err error }

// assistMsg reports the outcome of an assist request.
type assistMsg struct{ err error }

// actionMsg reports the outcome of a row action.
type actionMsg struct{ err error }

// Model is the bubbletea model of the TUI.
type Model struct {
	ctx    context.Context
	app    *app.App
	keys   KeyMap
	styles Styles

	width  int
	height int

	stats   core.Stats
	recent  []core.Protocol
	visible []core.Protocol
	cursor  int

	search    textinput.Model
	searching bool

	form      [fieldCount]textinput.Model
	formFocus int

	prompt textinput.Model
}

// New creates the TUI model for a.
func New(ctx context.Context, a *app.App) Model {
	m := Model{
		ctx:    ctx,
		app:    a,
		keys:   DefaultKeyMap,
		styles: DefaultStyles(),
		search: newInput("Buscar por título, código ou remetente...", 60),
		prompt: newInput("Descreva o documento recebido ou enviado...", 400),
	}
	for i := range m.form {
		m.form[i] = newInput(fieldLabels[i], 200)
	}
	m.loadForm(a.Snapshot().Draft)
	m.focusView(a.Snapshot().View)
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 50
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init loads the records.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case refreshMsg:
		if msg.err != nil {
			m.app.SetNotice(msg.err.Error())
			return m, nil
		}
		m.stats, m.recent, m.visible = msg.stats, msg.recent, msg.visible
		m.clampCursor()
		return m, nil

	case submitMsg:
		if msg.err == nil {
			m.loadForm(m.app.Snapshot().Draft)
			m.focusView(m.app.Snapshot().View)
		}
		return m, m.refresh()

	case assistMsg:
		if msg.err == nil {
			m.prompt.SetValue("")
			m.loadForm(m.app.Snapshot().Draft)
			m.focusView(m.app.Snapshot().View)
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.app.SetNotice(msg.err.Error())
		}
		return m, m.refresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.app.Snapshot().View {
	case app.ViewNew:
		return m.handleFormKey(msg)
	case app.ViewAssist:
		return m.handlePromptKey(msg)
	case app.ViewList:
		if m.searching {
			return m.handleSearchKey(msg)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.TabDashboard):
		return m.switchView(app.ViewDashboard)
	case key.Matches(msg, m.keys.TabList):
		return m.switchView(app.ViewList)
	case key.Matches(msg, m.keys.TabNew):
		return m.switchView(app.ViewNew)
	case key.Matches(msg, m.keys.TabAssist):
		return m.switchView(app.ViewAssist)
	case key.Matches(msg, m.keys.NextTab):
		return m.switchView(nextView(m.app.Snapshot().View))
	}

	if m.app.Snapshot().View == app.ViewList {
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Sign):
		return m, m.rowAction(m.app.Sign)
	case key.Matches(msg, m.keys.Deliver):
		return m, m.rowAction(m.app.Deliver)
	case key.Matches(msg, m.keys.Cancel):
		return m, m.rowAction(m.app.Cancel)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.app.SetQuery("")
		return m, m.refresh()
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.app.Snapshot().Query {
		m.app.SetQuery(m.search.Value())
		m.cursor = 0
		return m, tea.Batch(cmd, m.refresh())
	}
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.switchView(app.ViewDashboard)
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.Confirm):
		if m.formFocus == fieldCount-1 {
			return m, m.submit()
		}
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.NextField):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.moveFocus(-1)
	case key.Matches(msg, m.keys.ToggleType):
		m.app.EditDraft(func(d *core.Draft) {
			if d.Type == core.TypeDigital {
				d.Type = core.TypePhysical
			} else {
				d.Type = core.TypeDigital
			}
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	m.storeForm()
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.switchView(app.ViewDashboard)
	case key.Matches(msg, m.keys.Confirm):
		if m.app.Snapshot().Busy {
			return m, nil
		}
		return m, m.assist(m.prompt.Value())
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) switchView(v app.View) (tea.Model, tea.Cmd) {
	m.app.SetView(v)
	m.app.SetNotice("")
	return m, tea.Batch(m.focusView(v), m.refresh())
}

// focusView moves keyboard focus to the input owned by v.
func (m *Model) focusView(v app.View) tea.Cmd {
	m.search.Blur()
	m.searching = false
	m.prompt.Blur()
	for i := range m.form {
		m.form[i].Blur()
	}

	switch v {
	case app.ViewNew:
		m.formFocus = 0
		return m.form[0].Focus()
	case app.ViewAssist:
		return m.prompt.Focus()
	}
	return nil
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.form[m.formFocus].Blur()
	m.formFocus = (m.formFocus + delta + fieldCount) % fieldCount
	return m.form[m.formFocus].Focus()
}

// loadForm copies the draft into the form inputs.
func (m *Model) loadForm(d core.Draft) {
	m.form[fieldTitle].SetValue(d.Title)
	m.form[fieldSender].SetValue(d.Sender)
	m.form[fieldRecipient].SetValue(d.Recipient)
	m.form[fieldCategory].SetValue(d.Category)
	m.form[fieldDescription].SetValue(d.Description)
}

// storeForm copies the form inputs into the draft.
func (m Model) storeForm() {
	m.app.EditDraft(func(d *core.Draft) {
		d.Title = m.form[fieldTitle].Value()
		d.Sender = m.form[fieldSender].Value()
		d.Recipient = m.form[fieldRecipient].Value()
		d.Category = m.form[fieldCategory].Value()
		d.Description = m.form[fieldDescription].Value()
	})
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (core.Protocol, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return core.Protocol{}, false
	}
	return m.visible[m.cursor], true
}

func (m Model) refresh() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		stats, recent, err := a.Dashboard(ctx)
		if err != nil {
			return refreshMsg{err: err}
		}
		visible, err := a.Visible(ctx)
		return refreshMsg{stats: stats, recent: recent, visible: visible, err: err}
	}
}

func (m Model) submit() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		_, err := a.Submit(ctx)
		return submitMsg{err: err}
	}
}

func (m Model) assist(text string) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		_, err := a.Assist(ctx, text)
		return assistMsg{err: err}
	}
}

func (m Model) rowAction(fn func(context.Context, string) (core.Protocol, error)) tea.Cmd {
	p, ok := m.selected()
	if !ok {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		_, err := fn(ctx, p.ID)
		return actionMsg{err: err}
	}
}

func nextView(v app.View) app.View {
	for i, known := range app.Views {
		if known == v {
			return app.Views[(i+1)%len(app.Views)]
		}
	}
	return app.ViewDashboard
}

// Run starts the TUI on the terminal and blocks until the user quits.
func Run(ctx context.Context, a *app.App) error {
	p := tea.NewProgram(New(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
