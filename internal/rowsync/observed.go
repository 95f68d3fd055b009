package rowsync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"probimport/internal/domain"
	"probimport/internal/port"
)

// applyObserved adds one row at a time and fills the row announced by the
// widget. A row already filled (late delivery after a timeout) is skipped.
func (s *Synchronizer) applyObserved(ctx context.Context, n port.RowNotifier, records []domain.SamplePair, baseline int, res *Result) error {
	rows, stop := n.SubscribeRows()
	defer stop()

	filled := make(map[string]bool, len(records))
	for i, rec := range records {
		s.widget.AddRow()

		row, err := s.awaitRow(ctx, rows, filled, baseline+i+1)
		if err != nil {
			return err
		}
		if row == nil {
			res.Ambiguous++
			res.Dropped++
			s.log.Warn("rowsync: no row appeared, record dropped",
				zap.Int("index", i), zap.Error(domain.ErrRowCreationAmbiguous))
			continue
		}
		filled[row.ID()] = true
		s.record(res, row, i, rec)
	}
	return nil
}

// awaitRow returns the next unfilled row announced by the widget. On timeout
// it falls back to the want-th row when the widget already holds it;
// otherwise it returns nil.
func (s *Synchronizer) awaitRow(ctx context.Context, rows <-chan port.Row, filled map[string]bool, want int) (port.Row, error) {
	timer := time.NewTimer(s.opts.RowTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case row := <-rows:
			if filled[row.ID()] {
				continue
			}
			return row, nil
		case <-timer.C:
			snapshot := s.widget.Rows()
			if len(snapshot) < want {
				return nil, nil
			}
			row := snapshot[want-1]
			if filled[row.ID()] {
				return nil, nil
			}
			s.log.Debug("rowsync: notification timed out, using row by position", zap.String("row", row.ID()))
			return row, nil
		}
	}
}
