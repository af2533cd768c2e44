package board

import (
	"context"
	"sync"
	"time"

	charmLog "github.com/charmbracelet/log"

	"github.com/hylla/fardplan/internal/domain"
)

// DefaultQuietWindow is how long the autosaver waits for edits to stop
// before persisting, so rapid successive edits collapse into one write.
const DefaultQuietWindow = 2 * time.Second

// Autosaver observes document changes and debounces full-document writes
// through the Saver port. The persisted copy may lag the in-memory copy by
// up to the quiet window. Save failures are recorded and logged, never
// retried here, and never roll back the in-memory mutation.
type Autosaver struct {
	saver   Saver
	logger  *charmLog.Logger
	quiet   time.Duration
	changes chan domain.Document

	mu      sync.Mutex
	lastErr error
	saves   int
}

// NewAutosaver constructs an autosaver. Register its Notify with the
// store's OnChange, then run it on its own goroutine.
func NewAutosaver(saver Saver, logger *charmLog.Logger, quiet time.Duration) *Autosaver {
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	return &Autosaver{
		saver:   saver,
		logger:  logger,
		quiet:   quiet,
		changes: make(chan domain.Document, 1),
	}
}

// Notify records the latest document without blocking the mutating caller.
// Only the most recent document matters; older pending values are replaced.
func (a *Autosaver) Notify(doc domain.Document) {
	for {
		select {
		case a.changes <- doc:
			return
		default:
			select {
			case <-a.changes:
			default:
			}
		}
	}
}

// Run debounces and persists until ctx is canceled, flushing any pending
// document on the way out.
func (a *Autosaver) Run(ctx context.Context) {
	var pending *domain.Document
	timer := time.NewTimer(a.quiet)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case doc := <-a.changes:
			if pending != nil && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			pending = &doc
			timer.Reset(a.quiet)
		case <-timer.C:
			if pending != nil {
				a.save(ctx, *pending)
				pending = nil
			}
		case <-ctx.Done():
			if pending != nil {
				a.save(context.WithoutCancel(ctx), *pending)
			}
			return
		}
	}
}

// Flush persists the freshest pending document immediately, if any.
func (a *Autosaver) Flush(ctx context.Context) {
	select {
	case doc := <-a.changes:
		a.save(ctx, doc)
	default:
	}
}

// LastError returns the most recent save failure, or nil after a clean save.
func (a *Autosaver) LastError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Saves returns how many persistence writes completed successfully.
func (a *Autosaver) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}

func (a *Autosaver) save(ctx context.Context, doc domain.Document) {
	err := a.saver.SaveDocument(ctx, doc)
	a.mu.Lock()
	a.lastErr = err
	if err == nil {
		a.saves++
	}
	a.mu.Unlock()
	if err != nil && a.logger != nil {
		a.logger.Error("autosave failed", "err", err)
	}
}
