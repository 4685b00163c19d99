package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"querydeck/internal/client"
	"querydeck/internal/config"
	"querydeck/internal/eventbus"
	"querydeck/internal/ui/coordinator"
	"querydeck/internal/ui/screens"
	"querydeck/internal/ui/services/filter"
)

// Deps are the shared services every screen is built from
type Deps struct {
	Client *client.Client
	Search config.SearchConfig
	Bus    eventbus.EventBus
	Events *EventForwarder
	Logger *zap.Logger
}

// App runs one list screen as a full-screen program
type App interface {
	Run(ctx context.Context) error
}

// Open builds the app for the screen called name
func Open(name string, deps Deps) (App, error) {
	switch name {
	case "search":
		return newApp(screens.Search(), deps), nil
	case "projects":
		return newApp(screens.Projects(), deps), nil
	case "queries":
		return newApp(screens.Queries(), deps), nil
	case "users":
		return newApp(screens.Users(), deps), nil
	case "workspaces":
		return newApp(screens.Workspaces(), deps), nil
	case "reports":
		return newApp(screens.Reports(), deps), nil
	case "roles":
		return newApp(screens.Roles(), deps), nil
	}
	return nil, fmt.Errorf("unknown screen %q", name)
}

// ScreenDefaults applies the configured page size and default sort on top of
// the screen's own defaults. A sort the screen does not offer is ignored.
func ScreenDefaults[T any](screen screens.Screen[T], cfg config.SearchConfig) filter.Defaults {
	d := screen.Defaults
	if cfg.PageSize > 0 {
		d.PageSize = cfg.PageSize
	}
	if cfg.DefaultSort != "" && screen.SortIndex(cfg.DefaultSort) >= 0 {
		d.SortBy = cfg.DefaultSort
		d.SortDescending = cfg.DefaultDescending
	}
	return d
}

// NewCoordinator builds the coordinator behind screen
func NewCoordinator[T any](screen screens.Screen[T], deps Deps) *coordinator.Coordinator[T] {
	opts := []coordinator.Option{
		coordinator.WithName(screen.Name),
		coordinator.WithDefaults(ScreenDefaults(screen, deps.Search)),
		coordinator.WithEventBus(deps.Bus),
		coordinator.WithLogger(deps.Logger),
	}
	if deps.Search.Debounce > 0 {
		opts = append(opts, coordinator.WithDebounce(deps.Search.Debounce))
	}
	if deps.Search.PageRadius > 0 {
		opts = append(opts, coordinator.WithPageRadius(deps.Search.PageRadius))
	}
	return coordinator.New(screen.Fetcher(deps.Client), screen.Category, opts...)
}

type screenApp[T any] struct {
	screen screens.Screen[T]
	deps   Deps
}

func newApp[T any](screen screens.Screen[T], deps Deps) *screenApp[T] {
	return &screenApp[T]{screen: screen, deps: deps}
}

// Run shows the screen until the user quits or ctx is cancelled
func (a *screenApp[T]) Run(ctx context.Context) error {
	logger := a.deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	coord := NewCoordinator(a.screen, a.deps)
	model := NewModel(a.screen, coord, a.deps.Bus, logger)
	defer func() {
		model.Close()
		coord.Wait()
	}()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	if a.deps.Events != nil {
		go a.deps.Events.Run(p.Send)
	}

	logger.Info("starting screen", zap.String("screen", a.screen.Name))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running %s: %w", a.screen.Name, err)
	}
	logger.Info("screen closed", zap.String("screen", a.screen.Name))
	return nil
}
