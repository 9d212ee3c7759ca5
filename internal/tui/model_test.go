package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/docprotocol/pkg/adapters/memory"
	"github.com/aretw0/docprotocol/pkg/app"
	"github.com/aretw0/docprotocol/pkg/assist"
	"github.com/aretw0/docprotocol/pkg/core"
)

// testModel builds a model over a memory store seeded with the two
// demonstration records (PRT-2026-001 pending, PRT-2026-002 delivered).
func testModel(t *testing.T, opts ...app.Option) Model {
	t.Helper()
	t0 := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	svc := core.NewService(memory.NewRepository(), core.WithClock(func() time.Time { return t0 }))
	a, err := app.New(context.Background(), svc, append([]app.Option{app.WithSeed(true)}, opts...)...)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	m := New(context.Background(), a)
	return drain(t, m, m.Init())
}

// drain executes cmd and feeds every resulting message back into the
// model until no commands remain.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
		default:
			updated, c := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, c)
		}
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key (or typed string) and drains the resulting commands.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyMsg(k))
		m = drain(t, updated.(Model), cmd)
	}
	return m
}

func TestTabsSwitchViews(t *testing.T) {
	m := testModel(t)
	if got := m.app.Snapshot().View; got != app.ViewDashboard {
		t.Fatalf("initial view = %s, want dashboard", got)
	}

	m = press(t, m, "2")
	if got := m.app.Snapshot().View; got != app.ViewList {
		t.Errorf("after '2' view = %s, want list", got)
	}

	m = press(t, m, "tab")
	if got := m.app.Snapshot().View; got != app.ViewNew {
		t.Errorf("after tab view = %s, want new", got)
	}

	m = press(t, m, "esc")
	if got := m.app.Snapshot().View; got != app.ViewDashboard {
		t.Errorf("after esc view = %s, want dashboard", got)
	}
}

func TestDashboardShowsStatsAndRecent(t *testing.T) {
	m := testModel(t)

	if m.stats.Total != 2 || m.stats.Pending != 1 || m.stats.Delivered != 1 {
		t.Errorf("stats = %+v", m.stats)
	}
	view := m.View()
	for _, want := range []string{"Pendente", "PRT-2026-001", "Mega Store Informatica"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestSearchFiltersList(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "2", "/", "mega")

	if len(m.visible) != 1 || m.visible[0].Code != "PRT-2026-002" {
		t.Fatalf("visible = %v, want only PRT-2026-002", codes(m.visible))
	}
	if q := m.app.Snapshot().Query; q != "mega" {
		t.Errorf("query = %q, want mega", q)
	}

	m = press(t, m, "esc")
	if len(m.visible) != 2 {
		t.Errorf("after clearing search visible = %v, want 2 records", codes(m.visible))
	}
	if m.searching {
		t.Error("search still focused after esc")
	}
}

func TestCreateThroughForm(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "3", "Contrato X", "tab", "ACME", "tab", "TI", "tab", "Contrato", "ctrl+s")

	state := m.app.Snapshot()
	if state.View != app.ViewList {
		t.Fatalf("view after submit = %s, want list (notice %q)", state.View, state.Notice)
	}
	if len(m.visible) != 3 || m.visible[0].Code != "PRT-2026-003" {
		t.Fatalf("visible = %v, want PRT-2026-003 first", codes(m.visible))
	}
	if m.visible[0].Title != "Contrato X" || m.visible[0].Status != core.StatusPending {
		t.Errorf("created = %+v", m.visible[0])
	}
	if state.Draft != core.DefaultDraft() {
		t.Errorf("draft not reset: %+v", state.Draft)
	}
	if m.form[fieldTitle].Value() != "" {
		t.Errorf("form not cleared: %q", m.form[fieldTitle].Value())
	}
}

func TestFormValidationKeepsInput(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "3", "Só título", "ctrl+s")

	state := m.app.Snapshot()
	if state.View != app.ViewNew {
		t.Errorf("view = %s, want new", state.View)
	}
	if state.Draft.Title != "Só título" {
		t.Errorf("draft title = %q", state.Draft.Title)
	}
	if state.Notice == "" {
		t.Error("expected a validation notice")
	}
}

func TestFormTypingDoesNotQuit(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "3")

	_, cmd := m.Update(keyMsg("q"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("typing q in the form quit the program")
		}
	}
}

func TestToggleType(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "3", "ctrl+t")
	if got := m.app.Snapshot().Draft.Type; got != core.TypeDigital {
		t.Errorf("type = %s, want DIGITAL", got)
	}
	m = press(t, m, "ctrl+t")
	if got := m.app.Snapshot().Draft.Type; got != core.TypePhysical {
		t.Errorf("type = %s, want PHYSICAL", got)
	}
}

func TestRowActions(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "2", "s")

	if got := m.visible[0].Status; got != core.StatusSigned {
		t.Fatalf("first row status = %s, want SIGNED", got)
	}

	// Signing again is rejected and reported.
	m = press(t, m, "s")
	if n := m.app.Snapshot().Notice; !strings.Contains(n, "not allowed") {
		t.Errorf("notice = %q, want transition error", n)
	}

	m = press(t, m, "j", "x")
	if got := m.visible[1].Status; got != core.StatusCancelled {
		t.Errorf("second row status = %s, want CANCELLED", got)
	}
}

func replying(answer string) app.Option {
	return app.WithAssistant(assist.New(assist.CompleterFunc(func(ctx context.Context, req assist.Request) (string, error) {
		return answer, nil
	})))
}

func TestAssistFillsForm(t *testing.T) {
	m := testModel(t, replying(`{"title":"Ofício 45","category":"Ofício","priority":"Medium","executive_summary":"Pedido da prefeitura."}`))
	m = press(t, m, "4", "ofício da prefeitura pedindo informações", "enter")

	state := m.app.Snapshot()
	if state.View != app.ViewNew {
		t.Fatalf("view = %s, want new (notice %q)", state.View, state.Notice)
	}
	if got := m.form[fieldTitle].Value(); got != "Ofício 45" {
		t.Errorf("title field = %q", got)
	}
	if got := m.form[fieldDescription].Value(); got != "Pedido da prefeitura." {
		t.Errorf("description field = %q", got)
	}
	if state.Draft.Priority != core.PriorityMedium {
		t.Errorf("priority = %q", state.Draft.Priority)
	}
}

func TestAssistMalformedKeepsDraft(t *testing.T) {
	m := testModel(t, replying("Claro, segue o resumo do documento."))
	m = press(t, m, "3", "Rascunho", "esc", "4", "texto qualquer", "enter")

	state := m.app.Snapshot()
	if state.View != app.ViewAssist {
		t.Errorf("view = %s, want assist", state.View)
	}
	if state.Notice != app.NoticeAssistMalformed {
		t.Errorf("notice = %q", state.Notice)
	}
	if state.Draft.Title != "Rascunho" {
		t.Errorf("draft changed: %+v", state.Draft)
	}
	if m.stats.Total != 2 {
		t.Errorf("records = %d, want 2", m.stats.Total)
	}
}

func TestQuit(t *testing.T) {
	m := testModel(t)
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func codes(records []core.Protocol) []string {
	out := make([]string, len(records))
	for i, p := range records {
		out[i] = p.Code
	}
	return out
}
