package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"probimport/internal/binder"
	"probimport/internal/domain"
	"probimport/internal/logger"
	"probimport/internal/metrics"
	"probimport/internal/port"
	"probimport/internal/preview"
	"probimport/internal/rowsync"
)

// ImportState is the lifecycle state of an import session.
type ImportState string

const (
	StateIdle      ImportState = "idle"
	StateEditing   ImportState = "editing"
	StateParsing   ImportState = "parsing"
	StatePreviewed ImportState = "previewed"
	StateApplying  ImportState = "applying"
	StateCompleted ImportState = "completed"
	StateFailed    ImportState = "failed"
	StateCancelled ImportState = "cancelled"
)

// ImportSession is one pass through the import surface.
type ImportSession struct {
	ID        uuid.UUID
	RawText   string
	Document  *domain.StructuredDocument
	Preview   *preview.View
	State     ImportState
	LastError error
}

// ApplyResult reports what Confirm wrote into the form.
type ApplyResult struct {
	SessionID   uuid.UUID      `json:"session_id"`
	FieldsBound int            `json:"fields_bound"`
	Rows        rowsync.Result `json:"rows"`
}

// ImportController drives the import lifecycle against one host form:
// collect text, parse it remotely, preview, then apply on confirmation.
type ImportController struct {
	parser port.ParseClient
	binder *binder.Binder
	rows   *rowsync.Synchronizer
	log    *zap.Logger

	mu       sync.Mutex
	session  *ImportSession
	applying bool
	last     ImportState
}

// NewImportController creates a controller writing into f and its test case
// widget.
func NewImportController(parser port.ParseClient, f port.Form, widget port.RowWidget, opts rowsync.Options, log *zap.Logger) *ImportController {
	log = logger.OrNop(log)
	return &ImportController{
		parser: parser,
		binder: binder.New(f, log),
		rows:   rowsync.New(widget, opts, log),
		log:    log,
		last:   StateIdle,
	}
}

// State returns the current session state, or StateIdle without a session.
func (c *ImportController) State() ImportState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return StateIdle
	}
	return c.session.State
}

// LastOutcome returns the state the previous session ended in
// (completed, failed or cancelled), or StateIdle if none has ended.
func (c *ImportController) LastOutcome() ImportState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Session returns a copy of the open session.
func (c *ImportController) Session() (ImportSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ImportSession{}, false
	}
	return *c.session, true
}

// Open starts a new session.
func (c *ImportController) Open() (uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return uuid.Nil, fmt.Errorf("import.Open: session %s is %s: %w", c.session.ID, c.session.State, domain.ErrInvalidTransition)
	}
	c.session = &ImportSession{ID: uuid.New(), State: StateEditing}
	c.log.Debug("import: session opened", zap.String("session", c.session.ID.String()))
	return c.session.ID, nil
}

// Edit replaces the session text. A failed session returns to editing.
func (c *ImportController) Edit(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.expect("import.Edit", StateEditing, StateFailed); err != nil {
		return err
	}
	c.session.RawText = text
	c.session.State = StateEditing
	return nil
}

// Submit parses the session text and renders its preview. Blank text fails
// with domain.ErrEmptyInput and leaves the state unchanged. A parse failure
// moves the session to failed, keeping the text for another attempt.
func (c *ImportController) Submit(ctx context.Context) (*preview.View, error) {
	c.mu.Lock()
	if err := c.expect("import.Submit", StateEditing, StateFailed); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	sess := c.session
	text := sess.RawText
	if strings.TrimSpace(text) == "" {
		c.mu.Unlock()
		return nil, domain.ErrEmptyInput
	}
	sess.State = StateParsing
	sess.LastError = nil
	c.mu.Unlock()

	doc, err := c.parser.Parse(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != sess || sess.State != StateParsing {
		c.log.Info("import: discarding parse result of closed session", zap.String("session", sess.ID.String()))
		return nil, fmt.Errorf("import.Submit: %w", domain.ErrSessionClosed)
	}
	if err != nil {
		metrics.ObserveImport("parse", failureOutcome(err))
		sess.State = StateFailed
		sess.LastError = err
		c.log.Warn("import: parse failed", zap.String("session", sess.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("import.Submit: %w", err)
	}

	view := preview.Render(doc)
	sess.Document = doc
	sess.Preview = &view
	sess.State = StatePreviewed
	metrics.ObserveImport("parse", "ok")
	c.log.Info("import: document parsed",
		zap.String("session", sess.ID.String()),
		zap.Int("records", len(doc.Records())),
		zap.Int("missing", view.MissingCount()),
	)
	return &view, nil
}

// Confirm writes the previewed document into the form: singleton fields
// first, then the test case rows. Only one apply runs at a time; a second
// Confirm while one is pending fails with domain.ErrApplyInProgress, even
// when the first belongs to a session that was cancelled since. The session
// ends either way.
func (c *ImportController) Confirm(ctx context.Context) (*ApplyResult, error) {
	c.mu.Lock()
	if c.applying {
		c.mu.Unlock()
		return nil, domain.ErrApplyInProgress
	}
	if err := c.expect("import.Confirm", StatePreviewed); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	sess := c.session
	if sess.Document == nil {
		c.mu.Unlock()
		return nil, domain.ErrNoDocument
	}
	c.applying = true
	sess.State = StateApplying
	doc := sess.Document
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.applying = false
		c.mu.Unlock()
	}()

	res := &ApplyResult{SessionID: sess.ID}
	res.FieldsBound = c.binder.BindDocument(doc)
	rows, err := c.rows.Apply(ctx, doc.Records())
	res.Rows = rows
	metrics.ObserveSync(rows.Filled, rows.Dropped, rows.Ambiguous)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		metrics.ObserveImport("apply", failureOutcome(err))
		sess.LastError = err
		c.finish(sess, StateFailed)
		c.log.Error("import: apply failed", zap.String("session", sess.ID.String()), zap.Error(err))
		return res, fmt.Errorf("import.Confirm: %w", err)
	}
	metrics.ObserveImport("apply", "ok")
	c.finish(sess, StateCompleted)
	c.log.Info("import: apply completed",
		zap.String("session", sess.ID.String()),
		zap.Int("fields", res.FieldsBound),
		zap.Int("rows_filled", rows.Filled),
		zap.Int("rows_dropped", rows.Dropped),
	)
	return res, nil
}

// Cancel dismisses the open session. Work already handed to the synchronizer
// is not stopped.
func (c *ImportController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return
	}
	c.log.Info("import: session cancelled",
		zap.String("session", c.session.ID.String()), zap.String("state", string(c.session.State)))
	c.finish(c.session, StateCancelled)
}

// finish ends sess in state. A session already replaced by a newer one is
// only marked, never the current one. Callers hold c.mu.
func (c *ImportController) finish(sess *ImportSession, state ImportState) {
	if sess.State == StateCancelled {
		return
	}
	sess.State = state
	if c.session == sess {
		c.session = nil
		c.last = state
	}
}

// expect checks the open session is in one of states. Callers hold c.mu.
func (c *ImportController) expect(op string, states ...ImportState) error {
	if c.session == nil {
		return fmt.Errorf("%s: no open session: %w", op, domain.ErrInvalidTransition)
	}
	for _, s := range states {
		if c.session.State == s {
			return nil
		}
	}
	return fmt.Errorf("%s: session is %s: %w", op, c.session.State, domain.ErrInvalidTransition)
}

func failureOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return "empty"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, domain.ErrRemoteFailure):
		return "remote_error"
	default:
		return "error"
	}
}
