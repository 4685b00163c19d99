package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newService(rows, windowHeight int) *Service {
	s := NewService()
	s.SetWindowHeight(windowHeight)
	s.SetCount(rows)
	return s
}

func TestNavigateClampsAtEdges(t *testing.T) {
	s := newService(3, 30)

	s.Navigate(DirectionUp)
	assert.Equal(t, 0, s.Cursor())

	s.Navigate(DirectionDown)
	s.Navigate(DirectionDown)
	s.Navigate(DirectionDown)
	assert.Equal(t, 2, s.Cursor())

	s.Navigate(DirectionHome)
	assert.Equal(t, 0, s.Cursor())
	s.Navigate(DirectionEnd)
	assert.Equal(t, 2, s.Cursor())
}

func TestViewportFollowsCursor(t *testing.T) {
	s := newService(50, reservedLines+5)
	assert.Equal(t, 5, s.ViewportHeight())

	s.MoveToIndex(7)
	assert.Equal(t, 3, s.ViewportOffset())

	s.Navigate(DirectionPageUp)
	assert.Equal(t, 3, s.Cursor())
	assert.LessOrEqual(t, s.ViewportOffset(), s.Cursor())

	s.Navigate(DirectionPageDown)
	assert.Equal(t, 7, s.Cursor())
	assert.Equal(t, 3, s.ViewportOffset())
}

func TestSetCountClampsCursor(t *testing.T) {
	s := newService(20, 40)
	s.MoveToIndex(15)

	s.SetCount(4)
	assert.Equal(t, 3, s.Cursor())

	s.SetCount(0)
	assert.Equal(t, 0, s.Cursor())
	s.Navigate(DirectionDown)
	assert.Equal(t, 0, s.Cursor())
}

func TestReset(t *testing.T) {
	s := newService(20, reservedLines+5)
	s.MoveToIndex(12)
	s.Reset()
	assert.Equal(t, State{Cursor: 0, ViewportOffset: 0, ViewportHeight: 5, Count: 20}, s.State())
}
