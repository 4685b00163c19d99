package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"querydeck/internal/domain"
	"querydeck/internal/eventbus"
	"querydeck/internal/ui/coordinator"
	"querydeck/internal/ui/services/filter"
	"querydeck/internal/ui/state"
)

type mockQuery struct {
	mock.Mock
}

func (m *mockQuery) SubmitAll(edits ...filter.Edit) error {
	args := m.Called(edits)
	return args.Error(0)
}

func (m *mockQuery) Flush() {
	m.Called()
}

func (m *mockQuery) Refresh() error {
	args := m.Called()
	return args.Error(0)
}

type recordingBus struct {
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) { b.events = append(b.events, e) }
func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}
func (b *recordingBus) Close() {}

func newExecutor(q *mockQuery) (*Executor, *state.ScreenState, *recordingBus) {
	s := state.NewScreenState(2)
	bus := &recordingBus{}
	return NewExecutor(s, q, bus), s, bus
}

func TestExecuteSearchText(t *testing.T) {
	q := new(mockQuery)
	q.On("SubmitAll", []filter.Edit{filter.TextChanged{Text: "sal"}}).Return(nil)
	e, _, _ := newExecutor(q)

	assert.Nil(t, e.ExecuteSearchText("sal"))
	q.AssertExpectations(t)
	q.AssertNotCalled(t, "Flush")
}

func TestExecuteSubmitSearchFlushes(t *testing.T) {
	q := new(mockQuery)
	q.On("SubmitAll", []filter.Edit{filter.TextChanged{Text: "sales"}}).Return(nil).Once()
	q.On("Flush").Return().Once()
	e, _, _ := newExecutor(q)

	e.ExecuteSubmitSearch("sales")
	q.AssertExpectations(t)
}

func TestExecuteFilterExpression(t *testing.T) {
	q := new(mockQuery)
	q.On("SubmitAll", []filter.Edit{
		filter.FilterSet{Key: "status", Value: "Active"},
		filter.FilterSet{Key: "type"},
	}).Return(nil).Once()
	e, s, _ := newExecutor(q)
	s.Query.Filters = map[string]string{"type": "Chart"}

	e.ExecuteFilterExpression("status:Active", nil)
	q.AssertExpectations(t)
	assert.Empty(t, s.StatusMessage)
}

func TestExecuteFilterExpressionInvalid(t *testing.T) {
	q := new(mockQuery)
	e, s, bus := newExecutor(q)

	e.ExecuteFilterExpression("colour:red", func(key string) bool { return key == "status" })
	q.AssertNotCalled(t, "SubmitAll", mock.Anything)
	assert.Contains(t, s.StatusMessage, `unknown filter "colour"`)
	if assert.Len(t, bus.events, 1) {
		ev := bus.events[0].(eventbus.ErrorEvent)
		assert.ErrorIs(t, ev.Err, domain.ErrValidation)
	}
}

func TestFilterExpressionIsOneSubmit(t *testing.T) {
	q := new(mockQuery)
	q.On("SubmitAll", []filter.Edit{
		filter.FilterSet{Key: "status", Value: "active"},
		filter.FilterSet{Key: "tag", Value: "pii"},
		filter.FilterSet{Key: "owner", Value: "bob"},
	}).Return(nil).Once()
	e, _, _ := newExecutor(q)

	e.ExecuteFilterExpression("status:active tag:pii owner:bob", nil)
	q.AssertExpectations(t)
	q.AssertNumberOfCalls(t, "SubmitAll", 1)
}

func TestRefusedExpressionReportsOnce(t *testing.T) {
	q := new(mockQuery)
	refused := errors.New("boom")
	q.On("SubmitAll", []filter.Edit{
		filter.FilterSet{Key: "a", Value: "1"},
		filter.FilterSet{Key: "b", Value: "2"},
	}).Return(refused).Once()
	e, s, bus := newExecutor(q)

	e.ExecuteFilterExpression("a:1 b:2", nil)
	q.AssertNumberOfCalls(t, "SubmitAll", 1)
	assert.Len(t, bus.events, 1)
	assert.Equal(t, "Error: filter: boom", s.StatusMessage)
}

func TestDisposedIsQuiet(t *testing.T) {
	q := new(mockQuery)
	q.On("SubmitAll", []filter.Edit{filter.PageRequested{Page: 2}}).Return(coordinator.ErrDisposed)
	q.On("Refresh").Return(coordinator.ErrDisposed)
	e, s, bus := newExecutor(q)

	e.ExecutePage(2)
	e.ExecuteRefresh()
	assert.Empty(t, s.StatusMessage)
	assert.Empty(t, bus.events)
}

func TestExecuteSortPageClearRefresh(t *testing.T) {
	q := new(mockQuery)
	q.On("SubmitAll", []filter.Edit{filter.SortChanged{Field: "name", Descending: true}}).Return(nil).Once()
	q.On("SubmitAll", []filter.Edit{filter.PageRequested{Page: 3}}).Return(nil).Once()
	q.On("SubmitAll", []filter.Edit{filter.ClearAll{}}).Return(nil).Once()
	q.On("SubmitAll", []filter.Edit{filter.FilterSet{Key: "status", Value: "Draft"}}).Return(nil).Once()
	q.On("Refresh").Return(nil).Once()
	e, s, _ := newExecutor(q)

	e.ExecuteSort("name", true)
	e.ExecutePage(3)
	e.ExecuteFilter(filter.FilterSet{Key: "status", Value: "Draft"})
	e.ExecuteRefresh()
	assert.Equal(t, "Refreshing...", s.StatusMessage)
	e.ExecuteClearAll()
	assert.Empty(t, s.StatusMessage)

	q.AssertExpectations(t)
}
