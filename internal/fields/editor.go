package fields

import (
	"fmt"
	"slices"
)

// Callbacks receives the next state computed by an Editor so the host can
// persist it.
type Callbacks interface {
	OnCategoryDataChange(values Values)
	OnFieldOrderChange(order []string)
	OnCategoryChange(category string, order []string)
}

// EditorState is the confirmation state of an Editor.
type EditorState int

const (
	StateIdle EditorState = iota
	StateAwaitingConfirmation
)

func (s EditorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	}
	return fmt.Sprintf("EditorState(%d)", int(s))
}

// Snapshot is a copy of an Editor's current state.
type Snapshot struct {
	Category     string                `json:"category"`
	FieldOrder   []string              `json:"fieldOrder"`
	CategoryData Values                `json:"categoryData"`
	Completeness CompletenessBreakdown `json:"completeness"`
	Pending      *MigrationPlan        `json:"pending,omitempty"`
}

// Editor is the editing session of one project's category metadata. It
// owns the category, the visible field order and the value bag, and hands
// every change to its Callbacks.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	category string
	order    []string
	values   Values
	pending  *MigrationPlan
	cb       Callbacks
}

// NewEditor starts a session. values and order are copied. An unknown
// category is treated as other.
func NewEditor(category string, order []string, values Values, cb Callbacks) *Editor {
	if cb == nil {
		cb = noopCallbacks{}
	}
	resolved, _ := ResolveCategory(category)
	return &Editor{
		category: string(resolved),
		order:    slices.Clone(order),
		values:   values.Clone(),
		cb:       cb,
	}
}

func (e *Editor) State() EditorState {
	if e.pending != nil {
		return StateAwaitingConfirmation
	}
	return StateIdle
}

func (e *Editor) Category() string     { return e.category }
func (e *Editor) FieldOrder() []string { return slices.Clone(e.order) }
func (e *Editor) Values() Values       { return e.values.Clone() }

// Pending returns the plan awaiting confirmation, or nil.
func (e *Editor) Pending() *MigrationPlan {
	if e.pending == nil {
		return nil
	}
	p := *e.pending
	return &p
}

func (e *Editor) Snapshot() Snapshot {
	return Snapshot{
		Category:     e.category,
		FieldOrder:   e.FieldOrder(),
		CategoryData: e.Values(),
		Completeness: CompletenessDetails(e.order, e.values),
		Pending:      e.Pending(),
	}
}

// ============================================
// Category Changes
// ============================================

// RequestCategoryChange starts a move to category to. When no data-bearing
// field would be hidden the change is applied at once and nil is returned.
// Otherwise the plan is returned and held until ConfirmMigration or
// CancelMigration. Unknown categories resolve to other, and requesting the
// current category does nothing.
func (e *Editor) RequestCategoryChange(to string) (*MigrationPlan, error) {
	if e.pending != nil {
		return nil, ErrMigrationPending
	}
	target, _ := ResolveCategory(to)
	if string(target) == e.category {
		return nil, nil
	}

	plan := AnalyzeFieldMigration(e.category, string(target), e.order, e.values)
	if plan.RequiresConfirmation() {
		e.pending = &plan
		return e.Pending(), nil
	}

	e.applyCategory(string(target), plan.NewFieldOrder)
	return nil, nil
}

// ConfirmMigration applies the pending change with newOrder, which is the
// NewFieldOrder of the pending plan.
func (e *Editor) ConfirmMigration(newOrder []string) error {
	if e.pending == nil {
		return ErrNoPendingMigration
	}
	to := string(e.pending.ToCategory)
	e.pending = nil
	e.applyCategory(to, newOrder)
	return nil
}

// CancelMigration drops the pending change, leaving category and order as
// they were.
func (e *Editor) CancelMigration() error {
	if e.pending == nil {
		return ErrNoPendingMigration
	}
	e.pending = nil
	return nil
}

func (e *Editor) applyCategory(to string, order []string) {
	e.category = to
	e.order = slices.Clone(order)
	e.cb.OnCategoryChange(to, slices.Clone(order))
}

// ============================================
// Field Order
// ============================================

func (e *Editor) AddField(fieldID string) error {
	return e.setOrder(AddField(e.order, fieldID))
}

func (e *Editor) ToggleField(fieldID string) error {
	return e.setOrder(ToggleField(e.order, fieldID))
}

func (e *Editor) MoveField(fieldID string, direction Direction) error {
	return e.setOrder(MoveField(e.order, fieldID, direction))
}

func (e *Editor) SetFieldPosition(fieldID string, position int) error {
	return e.setOrder(SetFieldPosition(e.order, fieldID, position))
}

func (e *Editor) setOrder(order []string) error {
	if e.pending != nil {
		return ErrMigrationPending
	}
	e.order = order
	e.cb.OnFieldOrderChange(slices.Clone(order))
	return nil
}

// ============================================
// Values
// ============================================

// SetValue validates v against the field definition of the current
// category and stores it. Ids the category does not define are rejected.
func (e *Editor) SetValue(fieldID string, v any) error {
	def, ok := GetFieldByID(e.category, fieldID)
	if !ok {
		return &ValidationError{FieldID: fieldID, Reason: "not a field of category " + e.category}
	}
	if err := ValidateValue(def, v); err != nil {
		return err
	}
	e.values[fieldID] = v
	e.cb.OnCategoryDataChange(e.values.Clone())
	return nil
}

type noopCallbacks struct{}

func (noopCallbacks) OnCategoryDataChange(Values)       {}
func (noopCallbacks) OnFieldOrderChange([]string)       {}
func (noopCallbacks) OnCategoryChange(string, []string) {}
