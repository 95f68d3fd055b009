package port

import "probimport/internal/domain"

// Control is a single fillable control on the host form.
type Control interface {
	Name() string
	Kind() domain.ControlKind
	Value() string
	SetValue(v string)
}

// Form exposes the host page's singleton fields by identifier.
type Form interface {
	Field(id string) (Control, bool)
}

// Row is one row of a repeating-record widget.
type Row interface {
	ID() string
	Controls() []Control
}

// RowWidget is the host widget that manages a growing list of rows.
// AddRow appends exactly one row after an unspecified delay.
// Rows returns a snapshot in creation order.
type RowWidget interface {
	AddRow()
	Rows() []Row
}

// RowNotifier is implemented by widgets that publish row insertions.
// Rows are delivered in insertion order until stop is called.
type RowNotifier interface {
	SubscribeRows() (rows <-chan Row, stop func())
}
