// Package rowsync fills a repeating-record widget with an ordered list of
// input/output records. The widget only offers an "add one row" action and
// inserts the row after an unknown delay, so each created row has to be
// located before it can be filled.
package rowsync

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"probimport/internal/domain"
	"probimport/internal/logger"
	"probimport/internal/port"
)

// Row control name suffixes.
const (
	suffixInput    = "-input"
	suffixOutput   = "-output"
	suffixIsSample = "-is_sample"
	suffixDelete   = "-DELETE"
)

const (
	defaultBaseDelay  = 200 * time.Millisecond
	defaultRowTimeout = 2 * time.Second
)

// Options tune the synchronizer's waits.
type Options struct {
	// BaseDelay spaces the deferred checks of the timer strategy: the check for
	// record i fires after BaseDelay*(i+1).
	BaseDelay time.Duration
	// RowTimeout bounds the wait for each row notification.
	RowTimeout time.Duration
}

// Result reports what one Apply did.
type Result struct {
	Requested     int `json:"requested"`
	Filled        int `json:"filled"`
	Dropped       int `json:"dropped"`
	Ambiguous     int `json:"ambiguous"`
	MarkedDeleted int `json:"marked_deleted"`
}

// Synchronizer writes records into newly created widget rows.
type Synchronizer struct {
	widget port.RowWidget
	opts   Options
	log    *zap.Logger
}

// New creates a Synchronizer for the widget. Zero options take defaults.
func New(widget port.RowWidget, opts Options, log *zap.Logger) *Synchronizer {
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	if opts.RowTimeout <= 0 {
		opts.RowTimeout = defaultRowTimeout
	}
	return &Synchronizer{widget: widget, opts: opts, log: logger.OrNop(log)}
}

// Apply replaces the widget's rows with records: existing rows are flagged for
// deletion, then one row per record is added and filled in order. The first
// record's row is flagged as the sample. With no records nothing is touched.
//
// Widgets implementing port.RowNotifier are driven one row at a time from
// insertion notifications; others fall back to increasing-delay checks.
func (s *Synchronizer) Apply(ctx context.Context, records []domain.SamplePair) (Result, error) {
	res := Result{Requested: len(records)}
	if len(records) == 0 {
		return res, nil
	}

	existing := s.widget.Rows()
	res.MarkedDeleted = markDeleted(existing)
	baseline := len(existing)

	var err error
	if n, ok := s.widget.(port.RowNotifier); ok {
		err = s.applyObserved(ctx, n, records, baseline, &res)
	} else {
		err = s.applyTimed(ctx, records, baseline, &res)
	}

	s.log.Info("rowsync: apply finished",
		zap.Int("requested", res.Requested),
		zap.Int("filled", res.Filled),
		zap.Int("dropped", res.Dropped),
		zap.Int("ambiguous", res.Ambiguous),
		zap.Int("marked_deleted", res.MarkedDeleted),
	)
	return res, err
}

// markDeleted checks the DELETE box of every row that holds an input control.
func markDeleted(rows []port.Row) int {
	n := 0
	for _, r := range rows {
		if findControl(r, suffixInput) == nil {
			continue
		}
		if del := findControl(r, suffixDelete); del != nil {
			del.SetValue(domain.CheckedValue)
			n++
		}
	}
	return n
}

// fill writes rec into row and reports whether both controls resolved.
func (s *Synchronizer) fill(row port.Row, index int, rec domain.SamplePair) bool {
	in := findControl(row, suffixInput)
	out := findControl(row, suffixOutput)
	if in == nil || out == nil {
		s.log.Warn("rowsync: row controls missing, record dropped",
			zap.Int("index", index), zap.String("row", row.ID()), zap.Error(domain.ErrFieldMissing))
		return false
	}
	in.SetValue(rec.Input)
	out.SetValue(rec.Output)

	if flag := findControl(row, suffixIsSample); flag != nil {
		if index == 0 {
			flag.SetValue(domain.CheckedValue)
		} else {
			flag.SetValue("")
		}
	} else if index == 0 {
		s.log.Warn("rowsync: sample flag missing on first row",
			zap.String("row", row.ID()), zap.Error(domain.ErrFieldMissing))
	}
	return true
}

func (s *Synchronizer) record(res *Result, row port.Row, index int, rec domain.SamplePair) {
	if s.fill(row, index, rec) {
		res.Filled++
	} else {
		res.Dropped++
	}
}

func findControl(row port.Row, suffix string) port.Control {
	for _, c := range row.Controls() {
		if strings.HasSuffix(c.Name(), suffix) {
			return c
		}
	}
	return nil
}
