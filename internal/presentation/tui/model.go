// Package tui is the interactive terminal host for the briefing action.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/briefing/internal/application/usecase"
	"github.com/tesso57/briefing/internal/domain/news"
	"github.com/tesso57/briefing/internal/presentation/tui/components/header"
	"github.com/tesso57/briefing/internal/presentation/tui/metrics"
	"github.com/tesso57/briefing/internal/presentation/tui/presenter"
	"github.com/tesso57/briefing/internal/presentation/tui/view"
	listview "github.com/tesso57/briefing/internal/presentation/tui/view/list"
)

const title = "📰 Tech News Briefing"

// ActionRunner runs one briefing invocation.
type ActionRunner interface {
	Execute(ctx context.Context, emitter usecase.Emitter) (usecase.ActionResult, error)
}

type eventMsg struct {
	gen   int
	event usecase.Event
}

type resultMsg struct {
	gen    int
	result usecase.ActionResult
	err    error
}

type openedMsg struct {
	err error
}

// Model represents the TUI state.
type Model struct {
	ctx     context.Context
	runner  ActionRunner
	keys    KeyMap
	help    help.Model
	list    list.Model
	spinner spinner.Model
	now     func() time.Time

	status  string
	loading bool
	empty   bool
	err     error

	// gen identifies the current run; messages from older runs are dropped.
	gen     int
	updates chan tea.Msg

	width  int
	height int
}

// NewModel creates a new model bound to runner.
func NewModel(ctx context.Context, runner ActionRunner) *Model {
	l := list.New(nil, listview.NewArticleDelegate(), 0, 0)
	l.Title = "Articles"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &Model{
		ctx:     ctx,
		runner:  runner,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		list:    l,
		spinner: s,
		now:     time.Now,
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, runner ActionRunner) error {
	p := tea.NewProgram(NewModel(ctx, runner), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init starts the first run.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startRun())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			return m, tea.Batch(m.spinner.Tick, m.startRun())
		case key.Matches(msg, m.keys.Open):
			return m, m.openSelected()
		}
	case eventMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.applyEvent(msg.event)
		return m, waitForUpdate(m.updates)
	case resultMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.finish(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case openedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not open link: %v", msg.err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m *Model) View() string {
	props := view.Props{
		Header: header.Props{
			Title:   title,
			Status:  m.status,
			Spinner: m.spinner.View(),
			Loading: m.loading,
		},
		Body:   m.list.View(),
		Footer: m.help.View(m.keys),
	}
	switch {
	case m.err != nil:
		props.Error = fmt.Sprintf("Error: %v", m.err)
	case m.empty && !m.loading:
		props.Empty = usecase.NoNewsMessage
	}
	return view.Render(props)
}

func (m *Model) startRun() tea.Cmd {
	m.gen++
	gen := m.gen
	m.loading = true
	m.empty = false
	m.err = nil

	ctx := m.ctx
	runner := m.runner
	updates := make(chan tea.Msg, 8)
	m.updates = updates

	go func() {
		defer close(updates)
		emitter := usecase.EmitterFunc(func(ctx context.Context, event usecase.Event) error {
			select {
			case updates <- eventMsg{gen: gen, event: event}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		result, err := runner.Execute(ctx, emitter)
		updates <- resultMsg{gen: gen, result: result, err: err}
	}()

	return waitForUpdate(updates)
}

func waitForUpdate(updates <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) applyEvent(event usecase.Event) {
	if data, ok := event.Data.(usecase.StatusData); ok {
		m.status = data.Description
	}
}

func (m *Model) finish(msg resultMsg) {
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		return
	}
	presenter.ApplyArticleList(&m.list, msg.result.Articles, news.Naive(m.now()))
	m.empty = len(msg.result.Articles) == 0
}

func (m *Model) openSelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(*presenter.Item)
	if !ok || !item.HasLink() {
		return nil
	}
	url := item.URL()
	return func() tea.Msg {
		return openedMsg{err: openBrowser(url)}
	}
}

func (m *Model) resize() {
	h := m.height - metrics.HeaderLines - metrics.FooterLines - 1
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width, h)
	m.help.Width = m.width
}
