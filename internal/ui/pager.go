package ui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// ErrNoProgram is returned when the pager is opened before the program runs
var ErrNoProgram = errors.New("program not set")

// Pager shows long text (item details, help) in ov
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPager creates a new pager
func NewPager(program *tea.Program) *Pager {
	return &Pager{program: program}
}

// Show hands the terminal to ov until the user closes it
func (p *Pager) Show(content string) error {
	if p == nil || p.program == nil {
		return ErrNoProgram
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Give ov time to exit before Bubble Tea takes the screen back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
