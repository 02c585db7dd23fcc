package finance

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/history"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/tracker"
)

// Manager owns the live tracker state, its undo history and the display
// filter. It is not safe for concurrent use.
type Manager struct {
	live      *tracker.State
	history   *history.History
	histOpts  []history.Option
	version   uint64
	filter    Predicate
	observers []func(Event)
	logger    *slog.Logger
}

var _ Model = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for commit, undo and redo traces.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithHistoryLimit caps the number of undo snapshots kept.
func WithHistoryLimit(n int) Option {
	return func(m *Manager) { m.histOpts = append(m.histOpts, history.WithLimit(n)) }
}

// NewManager creates a Manager starting from initial. The initial state is
// copied; later changes to it are not seen.
func NewManager(initial *tracker.State, opts ...Option) *Manager {
	m := &Manager{
		filter: ShowAll,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.live = initial.Clone()
	m.history = history.New(m.live, m.histOpts...)
	return m
}

// Subscribe registers fn to be called after every change to the live state.
func (m *Manager) Subscribe(fn func(Event)) {
	m.observers = append(m.observers, fn)
}

// Apply runs fn inside a Tx and commits it if fn succeeds. On error nothing
// changes.
func (m *Manager) Apply(description string, fn func(tx *Tx) error) error {
	tx := m.Begin()
	defer tx.Discard()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(description)
}

// AddRecord appends r and commits.
func (m *Manager) AddRecord(r model.Record) error {
	return m.Apply("add "+r.Name, func(tx *Tx) error { return tx.AddRecord(r) })
}

// DeleteRecord removes the record with id and commits.
func (m *Manager) DeleteRecord(id uuid.UUID) error {
	return m.Apply("delete "+id.String(), func(tx *Tx) error { return tx.DeleteRecord(id) })
}

// SetRecord replaces the record with targetID and commits.
func (m *Manager) SetRecord(targetID uuid.UUID, edited model.Record) error {
	return m.Apply("edit "+edited.Name, func(tx *Tx) error { return tx.SetRecord(targetID, edited) })
}

// AddCategoryBudget upserts a category allocation and commits.
func (m *Manager) AddCategoryBudget(cb model.CategoryBudget) error {
	return m.Apply("allocate "+cb.Category, func(tx *Tx) error { return tx.AddCategoryBudget(cb) })
}

// RemoveCategoryBudget drops a category allocation and commits. Removing an
// absent category changes nothing and adds no undo step.
func (m *Manager) RemoveCategoryBudget(category string) error {
	if _, ok := m.live.Ledger().Allocation(category); !ok {
		return nil
	}
	return m.Apply("deallocate "+category, func(tx *Tx) error { return tx.RemoveCategoryBudget(category) })
}

// SetTotalBudget replaces the total budget and commits.
func (m *Manager) SetTotalBudget(amount decimal.Decimal) error {
	return m.Apply("budget "+amount.StringFixed(2), func(tx *Tx) error { return tx.SetTotalBudget(amount) })
}

// UpdateFilteredRecordList sets the display filter. A nil predicate shows
// everything.
func (m *Manager) UpdateFilteredRecordList(pred Predicate) {
	if pred == nil {
		pred = ShowAll
	}
	m.filter = pred
}

// FilteredRecords returns the live records matching the current filter.
func (m *Manager) FilteredRecords() []model.Record {
	rs := m.live.Records()
	return slices.DeleteFunc(rs, func(r model.Record) bool { return !m.filter(r) })
}

// RecordAt resolves a 1-based index in the filtered view.
func (m *Manager) RecordAt(index int) (model.Record, error) {
	rs := m.FilteredRecords()
	if index < 1 || index > len(rs) {
		return model.Record{}, &InvalidIndexError{Index: index, Size: len(rs)}
	}
	return rs[index-1], nil
}

// Undo restores the previous snapshot and clears the filter.
func (m *Manager) Undo() error {
	state, err := m.history.Undo()
	if err != nil {
		return err
	}
	m.restore(state, EventUndone)
	return nil
}

// Redo restores the next snapshot and clears the filter.
func (m *Manager) Redo() error {
	state, err := m.history.Redo()
	if err != nil {
		return err
	}
	m.restore(state, EventRedone)
	return nil
}

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool { return m.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (m *Manager) CanRedo() bool { return m.history.CanRedo() }

// Tracker returns a copy of the live state.
func (m *Manager) Tracker() *tracker.State { return m.live.Clone() }

// CaseInsensitive reports whether category names are folded.
func (m *Manager) CaseInsensitive() bool { return m.live.Ledger().CaseInsensitive() }

// Reset replaces the live state, for example after loading from storage,
// and starts a fresh history.
func (m *Manager) Reset(state *tracker.State) {
	m.swap(state.Clone())
	m.history = history.New(m.live, m.histOpts...)
	m.filter = ShowAll
	m.notify(Event{Kind: EventReset, BudgetChanged: true})
}

func (m *Manager) restore(state *tracker.State, kind EventKind) {
	budgetChanged := !m.live.Ledger().Equal(state.Ledger())
	m.swap(state)
	m.filter = ShowAll
	m.logger.Debug("history moved", "kind", kind.String(), "cursor", m.history.Cursor(), "snapshots", m.history.Len())
	m.notify(Event{Kind: kind, BudgetChanged: budgetChanged})
}

func (m *Manager) swap(state *tracker.State) {
	m.live = state
	m.version++
}

func (m *Manager) notify(e Event) {
	for _, fn := range m.observers {
		fn(e)
	}
}
