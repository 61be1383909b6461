// Package batch drives composed labels through a sink with per-record
// failure isolation.
//
// One bad record never aborts a batch: records that cannot be composed
// (missing identifier, unencodable payload) or whose printer block fails to
// transmit are recorded in the [Result] failure list and processing moves to
// the next record. Only a sink write failure terminates the batch, because
// at that point the artifact itself can no longer be completed.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/labelforge/labelforge/pkg/label"
	"github.com/labelforge/labelforge/pkg/printer"
	"github.com/labelforge/labelforge/pkg/record"
	"github.com/labelforge/labelforge/pkg/sink"
)

// Failure describes one skipped record.
type Failure struct {
	// Index is the record's zero-based position in the source.
	Index int

	// ID is the record's label identifier, "" when that was the problem.
	ID string

	// Err is the cause.
	Err error
}

func (f Failure) String() string {
	if f.ID == "" {
		return fmt.Sprintf("record %d: %v", f.Index, f.Err)
	}
	return fmt.Sprintf("record %d (%s): %v", f.Index, f.ID, f.Err)
}

// Result is the outcome of one batch run. It is immutable once Render
// returns.
type Result struct {
	// Succeeded counts labels the sink accepted.
	Succeeded int

	// Failures lists skipped records in source order.
	Failures []Failure

	// Artifact is the sealed output. Empty for immediate-mode sinks and
	// when the batch aborted before sealing.
	Artifact []byte

	// Partial is true when the batch was cancelled or aborted before every
	// record was processed.
	Partial bool
}

// Renderer runs batches. It holds no per-batch state, so one Renderer can
// serve consecutive batches; each Render call gets a fresh Result and the
// sink it is handed must be fresh too.
type Renderer struct {
	composer *label.Composer
	logger   *log.Logger
}

// NewRenderer creates a batch renderer. A nil logger disables logging.
func NewRenderer(c *label.Composer, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Renderer{composer: c, logger: logger}
}

// Render processes records in source order: compose, then hand the composed
// label to the sink. Composition failures and printer transmit failures are
// recorded and skipped. A sink write failure aborts with the error and a
// partial Result.
//
// Cancellation is checked at each record boundary. On cancellation the sink
// is still sealed so buffering sinks yield a partial artifact, and the
// Result is marked partial.
func (r *Renderer) Render(ctx context.Context, records []record.Record, fields []string, s sink.Sink) (*Result, error) {
	result := &Result{}

	for i, rec := range records {
		if ctx.Err() != nil {
			r.logger.Warn("batch cancelled", "processed", i, "total", len(records))
			result.Partial = true
			break
		}

		composed, err := r.composer.Compose(rec, fields)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Index: i, ID: rec.ID(), Err: err})
			r.logger.Warn("skipping record", "index", i, "id", rec.ID(), "err", err)
			continue
		}

		if err := s.Place(ctx, composed); err != nil {
			if errors.Is(err, printer.ErrTransmit) {
				// No rollback unit larger than one label: report and move on.
				result.Failures = append(result.Failures, Failure{Index: i, ID: rec.ID(), Err: err})
				r.logger.Error("transmit failed", "index", i, "id", rec.ID(), "err", err)
				continue
			}
			result.Partial = true
			return result, fmt.Errorf("place record %d (%s): %w", i, rec.ID(), err)
		}

		result.Succeeded++
	}

	artifact, err := s.Seal()
	if err != nil {
		result.Partial = true
		return result, fmt.Errorf("seal artifact: %w", err)
	}
	result.Artifact = artifact

	r.logger.Info("batch complete",
		"succeeded", result.Succeeded,
		"failed", len(result.Failures),
		"partial", result.Partial)
	return result, nil
}
