package navigation

// reservedLines is the chrome around the results table: title, search box,
// chips, table header, pagination bar and key help
const reservedLines = 10

// Service moves the row cursor over the current result page and keeps it
// inside the visible viewport
type Service struct {
	state State
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{state: State{ViewportHeight: 20}}
}

// Cursor returns the current row
func (s *Service) Cursor() int {
	return s.state.Cursor
}

// ViewportOffset returns the first visible row
func (s *Service) ViewportOffset() int {
	return s.state.ViewportOffset
}

// ViewportHeight returns the number of visible rows
func (s *Service) ViewportHeight() int {
	return s.state.ViewportHeight
}

// State returns a copy of the navigation state
func (s *Service) State() State {
	return s.state
}

// SetWindowHeight derives the viewport from the terminal height
func (s *Service) SetWindowHeight(height int) {
	s.state.ViewportHeight = max(height-reservedLines, 1)
	s.ensureVisible()
}

// SetCount updates the number of rows, e.g. after a new page was applied.
// The cursor is clamped rather than reset so a refresh keeps the position.
func (s *Service) SetCount(n int) {
	s.state.Count = max(n, 0)
	s.state.Cursor = s.clampIndex(s.state.Cursor)
	s.ensureVisible()
}

// Reset moves back to the first row, used when a different page arrives
func (s *Service) Reset() {
	s.state.Cursor = 0
	s.state.ViewportOffset = 0
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	switch direction {
	case DirectionUp:
		s.MoveToIndex(s.state.Cursor - 1)
	case DirectionDown:
		s.MoveToIndex(s.state.Cursor + 1)
	case DirectionPageUp:
		s.pageUp()
	case DirectionPageDown:
		s.MoveToIndex(s.state.Cursor + s.step())
	case DirectionHome:
		s.state.Cursor = 0
		s.state.ViewportOffset = 0
	case DirectionEnd:
		s.MoveToIndex(s.maxIndex())
	}
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

func (s *Service) pageUp() {
	s.state.Cursor = s.clampIndex(s.state.Cursor - s.step())
	s.state.ViewportOffset = max(s.state.ViewportOffset-s.step(), 0)
	s.ensureVisible()
}

func (s *Service) step() int {
	return max(s.state.ViewportHeight-1, 1)
}

func (s *Service) maxIndex() int {
	return max(s.state.Count-1, 0)
}

func (s *Service) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index > s.maxIndex() {
		return s.maxIndex()
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}
}
