package form

import (
	"sync"

	"probimport/internal/domain"
)

// Control is an in-memory form control. It implements port.Control.
type Control struct {
	mu    sync.RWMutex
	name  string
	kind  domain.ControlKind
	value string
}

// NewControl creates an empty control.
func NewControl(name string, kind domain.ControlKind) *Control {
	return &Control{name: name, kind: kind}
}

func (c *Control) Name() string {
	return c.name
}

func (c *Control) Kind() domain.ControlKind {
	return c.kind
}

func (c *Control) Value() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *Control) SetValue(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
}

// Checked reports whether a checkbox control is checked.
func (c *Control) Checked() bool {
	return c.Value() == domain.CheckedValue
}

// SetChecked checks or unchecks a checkbox control.
func (c *Control) SetChecked(checked bool) {
	if checked {
		c.SetValue(domain.CheckedValue)
		return
	}
	c.SetValue("")
}
