package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"querydeck/internal/domain"
	"querydeck/internal/eventbus"
	"querydeck/internal/ui/commands"
	"querydeck/internal/ui/coordinator"
	"querydeck/internal/ui/handlers"
	"querydeck/internal/ui/input"
	inputtypes "querydeck/internal/ui/input/types"
	"querydeck/internal/ui/screens"
	"querydeck/internal/ui/services/navigation"
	"querydeck/internal/ui/state"
	"querydeck/internal/ui/viewmodels"
	"querydeck/internal/ui/views"
)

// Model is the Bubble Tea model of one list screen. The coordinator owns the
// query and the results; the model only turns keys into edits and renders
// the view models the coordinator pushes.
type Model[T any] struct {
	bus    eventbus.EventBus
	logger *zap.Logger
	screen screens.Screen[T]
	coord  *coordinator.Coordinator[T]
	state  *state.ScreenState

	inPagerMode bool // tracks if we're currently in pager mode
	ticking     bool // spinner tick loop running

	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel[T]
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	pager        *Pager

	program     *tea.Program
	unsubscribe func()
}

// NewModel creates the model for screen, driven by coord
func NewModel[T any](screen screens.Screen[T], coord *coordinator.Coordinator[T], bus eventbus.EventBus, logger *zap.Logger) *Model[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	screenState := state.NewScreenState(len(screen.SortOptions))

	m := &Model[T]{
		bus:          bus,
		logger:       logger.Named("ui").With(zap.String("screen", screen.Name)),
		screen:       screen,
		coord:        coord,
		state:        screenState,
		renderer:     views.NewRenderer(),
		eventHandler: handlers.NewEventHandler(screenState, screen.Name),
		viewModel:    viewmodels.NewViewModel(screen, screenState),
		cmdExecutor:  commands.NewExecutor(screenState, coord, bus),
		inputHandler: input.New(),
	}
	m.viewModel.Update(coord.Snapshot())
	m.unsubscribe = coord.OnChange(func(vm domain.ViewModel[T]) {
		m.send(viewModelMsg[T]{vm: vm})
	})
	return m
}

// SetProgram sets the program reference used to deliver view models and run the pager
func (m *Model[T]) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPager(p)
}

// Close detaches from the coordinator and disposes it
func (m *Model[T]) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.coord.Close()
}

// Init issues the initial load
func (m *Model[T]) Init() tea.Cmd {
	m.coord.Start()
	return nil
}

// Update handles messages
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		ctx := &input.ModelContext{State: m.state}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case viewModelMsg[T]:
		m.viewModel.Update(msg.vm)
		if msg.vm.Loading && !m.ticking {
			m.ticking = true
			return m, handlers.Tick()
		}
		return m, nil

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model[T]) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.state.Width == 0 {
		return "Loading..."
	}
	m.viewModel.SetInputMode(m.inputHandler.CurrentMode(), m.inputHandler.TextInput(), m.inputHandler.SortIndex())
	return m.renderer.Render(m.viewModel.BuildViewState())
}

// State exposes the screen state, mainly for tests
func (m *Model[T]) State() *state.ScreenState {
	return m.state
}

// processAction processes an action from the input handler
func (m *Model[T]) processAction(action inputtypes.Action) tea.Cmd {
	m.logger.Debug("action", zap.String("type", action.Type()))

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.state.Navigation.Navigate(navigation.Direction(a.Direction))

	case inputtypes.PageAction:
		return m.cmdExecutor.ExecutePage(a.Page)

	case inputtypes.UpdateTextAction:
		if a.Mode == inputtypes.ModeSearch {
			return m.cmdExecutor.ExecuteSearchText(a.Text)
		}

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeSearch:
			return m.cmdExecutor.ExecuteSubmitSearch(a.Text)
		case inputtypes.ModeFilter:
			return m.cmdExecutor.ExecuteFilterExpression(a.Text, m.screen.AcceptsFilter)
		}

	case inputtypes.RefreshAction:
		return m.cmdExecutor.ExecuteRefresh()

	case inputtypes.ToggleFacetAction:
		value, ok := m.viewModel.ChipValue(a.Index)
		if !ok {
			return nil
		}
		return m.cmdExecutor.ExecuteFilter(m.screen.ToggleChip(m.coord.Query(), value))

	case inputtypes.ClearAllAction:
		return m.cmdExecutor.ExecuteClearAll()

	case inputtypes.SortByAction:
		if a.Index < 0 || a.Index >= len(m.screen.SortOptions) {
			return nil
		}
		q := m.coord.Query()
		return m.cmdExecutor.ExecuteSort(m.screen.SortOptions[a.Index].Field, q.SortDescending)

	case inputtypes.ReverseSortAction:
		q := m.coord.Query()
		field := q.SortBy
		if field == "" && len(m.screen.SortOptions) > 0 {
			field = m.screen.SortOptions[0].Field
		}
		return m.cmdExecutor.ExecuteSort(field, !q.SortDescending)

	case inputtypes.OpenDetailAction:
		item, ok := m.viewModel.ItemAt(a.Index)
		if !ok || m.screen.Detail == nil {
			return nil
		}
		return m.showInPager("detail", m.screen.Detail(item))

	case inputtypes.ToggleHelpAction:
		return m.showInPager("help", m.renderer.RenderHelp(m.viewModel.HelpInfo()))

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}

	return nil
}

func (m *Model[T]) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case handlers.TickMsg:
		// Stop the loop once nothing is loading; the next dispatch restarts it
		if m.inPagerMode || !m.viewModel.Data().Loading {
			m.ticking = false
			return m, nil
		}
		m.viewModel.AdvanceSpinner()
		return m, handlers.Tick()

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.String("content", msg.title), zap.Error(msg.err))
			m.state.SetStatus(fmt.Sprintf("Could not open %s: %v", msg.title, msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		m.state.Paused = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		m.state.Paused = false
		if m.viewModel.Data().Loading && !m.ticking {
			m.ticking = true
			return m, handlers.Tick()
		}
		return m, nil
	}
	return m, nil
}

// showInPager returns a command that shows content in the ov pager,
// pausing rendering while it owns the terminal
func (m *Model[T]) showInPager(title, content string) tea.Cmd {
	pager := m.pager
	return func() tea.Msg {
		m.send(pauseRenderingMsg{})
		err := pager.Show(content)
		m.send(resumeRenderingMsg{})
		return pagerMsg{title: title, err: err}
	}
}

func (m *Model[T]) send(msg tea.Msg) {
	if m.program != nil {
		m.program.Send(msg)
	}
}
