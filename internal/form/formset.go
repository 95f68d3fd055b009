package form

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"probimport/internal/domain"
	"probimport/internal/port"
)

// Row control suffixes, following the admin inline naming scheme
// "<prefix>-<index>-<field>".
const (
	SuffixInput    = "input"
	SuffixOutput   = "output"
	SuffixIsSample = "is_sample"
	SuffixDelete   = "DELETE"
)

// Row is one inline test case row. It implements port.Row.
type Row struct {
	id       string
	controls []*Control
}

func newRow(prefix string, index int) *Row {
	id := fmt.Sprintf("%s-%d", prefix, index)
	return &Row{
		id: id,
		controls: []*Control{
			NewControl(id+"-"+SuffixInput, domain.ControlTextarea),
			NewControl(id+"-"+SuffixOutput, domain.ControlTextarea),
			NewControl(id+"-"+SuffixIsSample, domain.ControlCheckbox),
			NewControl(id+"-"+SuffixDelete, domain.ControlCheckbox),
		},
	}
}

func (r *Row) ID() string {
	return r.id
}

func (r *Row) Controls() []port.Control {
	out := make([]port.Control, len(r.controls))
	for i, c := range r.controls {
		out[i] = c
	}
	return out
}

// Control returns the row control whose name ends with "-<suffix>".
func (r *Row) Control(suffix string) *Control {
	for _, c := range r.controls {
		if strings.HasSuffix(c.name, "-"+suffix) {
			return c
		}
	}
	return nil
}

// Deleted reports whether the row is flagged for deletion.
func (r *Row) Deleted() bool {
	c := r.Control(SuffixDelete)
	return c != nil && c.Checked()
}

// LatencyFunc returns how long the n-th AddRow call takes to insert its row.
type LatencyFunc func(n int) time.Duration

// FixedLatency inserts every row after d.
func FixedLatency(d time.Duration) LatencyFunc {
	return func(int) time.Duration { return d }
}

// JitterLatency inserts every row after a random delay in [lo, hi].
func JitterLatency(lo, hi time.Duration) LatencyFunc {
	return func(int) time.Duration {
		if hi <= lo {
			return lo
		}
		return lo + time.Duration(rand.Int64N(int64(hi-lo)+1))
	}
}

type subscriber struct {
	ch   chan port.Row
	done chan struct{}
}

// Formset is an in-memory repeating-record widget. AddRow inserts a row
// asynchronously after the configured latency; rows are only ever appended.
// It implements port.RowWidget and port.RowNotifier.
type Formset struct {
	prefix  string
	latency LatencyFunc

	mu      sync.Mutex
	rows    []*Row
	added   int
	subs    map[int]*subscriber
	nextSub int

	notifyMu sync.Mutex
	pending  sync.WaitGroup
}

// NewFormset creates an empty formset whose rows are named "<prefix>-<n>-...".
// A nil latency inserts rows immediately on a separate goroutine.
func NewFormset(prefix string, latency LatencyFunc) *Formset {
	if latency == nil {
		latency = FixedLatency(0)
	}
	return &Formset{
		prefix:  prefix,
		latency: latency,
		subs:    make(map[int]*subscriber),
	}
}

// AddRow schedules the insertion of one blank row.
func (f *Formset) AddRow() {
	f.mu.Lock()
	n := f.added
	f.added++
	f.mu.Unlock()

	f.pending.Add(1)
	time.AfterFunc(f.latency(n), func() {
		defer f.pending.Done()
		f.insert(nil)
	})
}

// Append inserts a row synchronously and fills it, as rows rendered with the
// page would be.
func (f *Formset) Append(tc domain.TestCase) *Row {
	return f.insert(func(r *Row) {
		r.Control(SuffixInput).SetValue(tc.Input)
		r.Control(SuffixOutput).SetValue(tc.Output)
		r.Control(SuffixIsSample).SetChecked(tc.IsSample)
	})
}

func (f *Formset) insert(fill func(*Row)) *Row {
	f.mu.Lock()
	row := newRow(f.prefix, len(f.rows))
	if fill != nil {
		fill(row)
	}
	f.rows = append(f.rows, row)
	subs := make([]*subscriber, 0, len(f.subs))
	for _, s := range f.subs {
		subs = append(subs, s)
	}
	// Taken before releasing mu so notifications leave in insertion order.
	f.notifyMu.Lock()
	f.mu.Unlock()
	defer f.notifyMu.Unlock()

	for _, s := range subs {
		select {
		case s.ch <- row:
		case <-s.done:
		}
	}
	return row
}

// Rows returns a snapshot of the rows in creation order.
func (f *Formset) Rows() []port.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]port.Row, len(f.rows))
	for i, r := range f.rows {
		out[i] = r
	}
	return out
}

// RowAt returns the i-th row, or nil.
func (f *Formset) RowAt(i int) *Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.rows) {
		return nil
	}
	return f.rows[i]
}

// Len returns the number of inserted rows.
func (f *Formset) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// SubscribeRows delivers every row inserted after the call, in insertion order.
func (f *Formset) SubscribeRows() (<-chan port.Row, func()) {
	s := &subscriber{ch: make(chan port.Row, 16), done: make(chan struct{})}

	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = s
	f.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
			close(s.done)
		})
	}
	return s.ch, stop
}

// Wait blocks until every scheduled insertion has happened.
func (f *Formset) Wait() {
	f.pending.Wait()
}

// Silent returns a view of the formset without insertion notifications,
// for hosts that cannot observe their row container.
func (f *Formset) Silent() port.RowWidget {
	return silentFormset{f: f}
}

type silentFormset struct {
	f *Formset
}

func (s silentFormset) AddRow()          { s.f.AddRow() }
func (s silentFormset) Rows() []port.Row { return s.f.Rows() }
