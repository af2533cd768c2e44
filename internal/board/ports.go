package board

import (
	"context"

	"github.com/hylla/fardplan/internal/domain"
)

// Saver persists a full serialized document. Failures are reported upward
// and never roll back the in-memory mutation that triggered them.
type Saver interface {
	SaveDocument(context.Context, domain.Document) error
}

// Loader supplies the previously persisted document at startup, or reports
// that none is available.
type Loader interface {
	LoadDocument(context.Context) (domain.Document, bool, error)
}
