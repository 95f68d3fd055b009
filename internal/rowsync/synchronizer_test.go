package rowsync_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probimport/internal/domain"
	"probimport/internal/form"
	"probimport/internal/port"
	"probimport/internal/rowsync"
)

var fastOpts = rowsync.Options{BaseDelay: 20 * time.Millisecond, RowTimeout: time.Second}

func pairs(n int) []domain.SamplePair {
	out := make([]domain.SamplePair, n)
	for i := range out {
		out[i] = domain.SamplePair{Input: fmt.Sprintf("in-%d", i), Output: fmt.Sprintf("out-%d", i)}
	}
	return out
}

func liveRows(fs *form.Formset) []*form.Row {
	var out []*form.Row
	for _, r := range fs.Rows() {
		row := r.(*form.Row)
		if !row.Deleted() {
			out = append(out, row)
		}
	}
	return out
}

// assertImported checks the widget holds exactly want as its live rows, in
// order, with only the first flagged as sample.
func assertImported(t *testing.T, fs *form.Formset, want []domain.SamplePair) {
	t.Helper()
	live := liveRows(fs)
	require.Len(t, live, len(want))
	for i, row := range live {
		assert.Equal(t, want[i].Input, row.Control(form.SuffixInput).Value(), "row %d input", i)
		assert.Equal(t, want[i].Output, row.Control(form.SuffixOutput).Value(), "row %d output", i)
		assert.Equal(t, i == 0, row.Control(form.SuffixIsSample).Checked(), "row %d sample flag", i)
	}
}

func seed(fs *form.Formset, n int) {
	for i := 0; i < n; i++ {
		fs.Append(domain.TestCase{Input: "old", Output: "old", IsSample: i == 0})
	}
}

func TestApply_Observed_FillsRowsInOrder(t *testing.T) {
	for _, n := range []int{1, 2, 7} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			fs := form.NewFormset(form.TestCasePrefix, form.JitterLatency(0, 10*time.Millisecond))
			seed(fs, 2)
			s := rowsync.New(fs, fastOpts, nil)

			res, err := s.Apply(context.Background(), pairs(n))

			require.NoError(t, err)
			assert.Equal(t, rowsync.Result{Requested: n, Filled: n, MarkedDeleted: 2}, res)
			assertImported(t, fs, pairs(n))
			assert.Equal(t, 2+n, fs.Len())
		})
	}
}

func TestApply_Timed_FillsRowsInOrder(t *testing.T) {
	fs := form.NewFormset(form.TestCasePrefix, form.JitterLatency(0, 5*time.Millisecond))
	seed(fs, 3)
	s := rowsync.New(fs.Silent(), fastOpts, nil)

	res, err := s.Apply(context.Background(), pairs(4))

	require.NoError(t, err)
	assert.Equal(t, 4, res.Filled)
	assert.Equal(t, 0, res.Dropped)
	assert.Equal(t, 0, res.Ambiguous)
	assert.Equal(t, 3, res.MarkedDeleted)
	assertImported(t, fs, pairs(4))
}

func TestApply_ZeroRecords_TouchesNothing(t *testing.T) {
	fs := form.NewFormset(form.TestCasePrefix, nil)
	seed(fs, 2)
	s := rowsync.New(fs, fastOpts, nil)

	res, err := s.Apply(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, rowsync.Result{}, res)
	assert.Equal(t, 2, fs.Len())
	assert.Len(t, liveRows(fs), 2)
}

func TestApply_RerunIsIdempotent(t *testing.T) {
	fs := form.NewFormset(form.TestCasePrefix, form.JitterLatency(0, 5*time.Millisecond))
	seed(fs, 1)
	s := rowsync.New(fs, fastOpts, nil)
	records := pairs(3)

	_, err := s.Apply(context.Background(), records)
	require.NoError(t, err)
	first := liveRows(fs)

	res, err := s.Apply(context.Background(), records)
	require.NoError(t, err)

	// Rows already flagged by the first run are flagged again.
	assert.Equal(t, 4, res.MarkedDeleted)
	assertImported(t, fs, records)
	for _, row := range first {
		assert.True(t, row.Deleted(), "rows of the first run must be flagged for deletion")
	}
}

// fakeWidget appends rows synchronously. perAdd rows are created per AddRow
// and each row carries only the listed control suffixes.
type fakeWidget struct {
	mu       sync.Mutex
	rows     []port.Row
	perAdd   int
	suffixes []string
}

type fakeRow struct {
	id       string
	controls []port.Control
}

func (r *fakeRow) ID() string               { return r.id }
func (r *fakeRow) Controls() []port.Control { return r.controls }

func (w *fakeWidget) AddRow() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for k := 0; k < w.perAdd; k++ {
		id := fmt.Sprintf("row-%d", len(w.rows))
		row := &fakeRow{id: id}
		for _, sfx := range w.suffixes {
			row.controls = append(row.controls, form.NewControl(id+"-"+sfx, domain.ControlTextarea))
		}
		w.rows = append(w.rows, row)
	}
}

func (w *fakeWidget) Rows() []port.Row {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]port.Row(nil), w.rows...)
}

// mutedWidget claims to publish insertions but never does.
type mutedWidget struct {
	*fakeWidget
}

func (w mutedWidget) SubscribeRows() (<-chan port.Row, func()) {
	return make(chan port.Row), func() {}
}

var allSuffixes = []string{form.SuffixInput, form.SuffixOutput, form.SuffixIsSample, form.SuffixDelete}

func TestApply_MissingControls_DropsRecord(t *testing.T) {
	w := &fakeWidget{perAdd: 1, suffixes: []string{form.SuffixInput, form.SuffixDelete}}
	s := rowsync.New(w, fastOpts, nil)

	res, err := s.Apply(context.Background(), pairs(2))

	require.NoError(t, err)
	assert.Equal(t, 0, res.Filled)
	assert.Equal(t, 2, res.Dropped)
	assert.Len(t, w.Rows(), 2)
}

func TestApply_Timed_RowNeverCreated_CountsAmbiguous(t *testing.T) {
	w := &fakeWidget{perAdd: 0, suffixes: allSuffixes}
	s := rowsync.New(w, fastOpts, nil)

	res, err := s.Apply(context.Background(), pairs(3))

	require.NoError(t, err)
	assert.Equal(t, rowsync.Result{Requested: 3, Dropped: 3, Ambiguous: 3}, res)
}

func TestApply_Timed_ExtraRows_FlaggedAmbiguous(t *testing.T) {
	w := &fakeWidget{perAdd: 2, suffixes: allSuffixes}
	s := rowsync.New(w, fastOpts, nil)

	res, err := s.Apply(context.Background(), pairs(2))

	require.NoError(t, err)
	assert.Equal(t, 2, res.Filled)
	assert.Equal(t, 2, res.Ambiguous)
}

func TestApply_Observed_TimeoutFallsBackToPosition(t *testing.T) {
	w := mutedWidget{&fakeWidget{perAdd: 1, suffixes: allSuffixes}}
	s := rowsync.New(w, rowsync.Options{RowTimeout: 10 * time.Millisecond}, nil)

	res, err := s.Apply(context.Background(), pairs(3))

	require.NoError(t, err)
	assert.Equal(t, 3, res.Filled)
	rows := w.Rows()
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, fmt.Sprintf("in-%d", i), r.Controls()[0].Value())
	}
	assert.Equal(t, domain.CheckedValue, rows[0].Controls()[2].Value())
	assert.Equal(t, "", rows[1].Controls()[2].Value())
}

func TestApply_Observed_NoRowAndTimeout_DropsRecord(t *testing.T) {
	w := mutedWidget{&fakeWidget{perAdd: 0, suffixes: allSuffixes}}
	s := rowsync.New(w, rowsync.Options{RowTimeout: 5 * time.Millisecond}, nil)

	res, err := s.Apply(context.Background(), pairs(2))

	require.NoError(t, err)
	assert.Equal(t, rowsync.Result{Requested: 2, Dropped: 2, Ambiguous: 2}, res)
}

func TestApply_Observed_ContextCanceled(t *testing.T) {
	w := mutedWidget{&fakeWidget{perAdd: 0, suffixes: allSuffixes}}
	s := rowsync.New(w, rowsync.Options{RowTimeout: time.Minute}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Apply(ctx, pairs(1))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
