package rowsync

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"probimport/internal/domain"
	"probimport/internal/port"
)

// applyTimed triggers every row up front and schedules the check for record i
// after BaseDelay*(i+1). Checks run one at a time; once scheduled they always
// fire, even if ctx is canceled, but they no longer affect the returned Result.
func (s *Synchronizer) applyTimed(ctx context.Context, records []domain.SamplePair, baseline int, res *Result) error {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		local = *res
	)
	total := baseline + len(records)

	for i, rec := range records {
		s.widget.AddRow()

		wg.Add(1)
		time.AfterFunc(s.opts.BaseDelay*time.Duration(i+1), func() {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			s.check(s.widget.Rows(), i, rec, baseline, total, &local)
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		*res = local
		return nil
	case <-ctx.Done():
		mu.Lock()
		*res = local
		mu.Unlock()
		return ctx.Err()
	}
}

// check fills the row created for record i. The widget only appends, so that
// row sits at baseline+i. When it does not exist yet the record is dropped;
// writing the last row instead would overwrite an earlier record. Rows beyond
// what this run requested mean someone else touched the widget.
func (s *Synchronizer) check(rows []port.Row, i int, rec domain.SamplePair, baseline, total int, res *Result) {
	idx := baseline + i
	if len(rows) <= idx {
		res.Ambiguous++
		res.Dropped++
		s.log.Warn("rowsync: row not created in time, record dropped",
			zap.Int("index", i), zap.Int("rows", len(rows)), zap.Error(domain.ErrRowCreationAmbiguous))
		return
	}
	if len(rows) > total {
		res.Ambiguous++
		s.log.Warn("rowsync: widget holds more rows than requested",
			zap.Int("index", i), zap.Int("rows", len(rows)), zap.Int("expected", total),
			zap.Error(domain.ErrRowCreationAmbiguous))
	}
	s.record(res, rows[idx], i, rec)
}
