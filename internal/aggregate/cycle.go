// Package aggregate drives one fetch cycle: page-by-page retrieval from the
// telemetry API, one-shot fuel field detection on the first non-empty page,
// and a running sum of the detected field across every record of every page.
package aggregate

import (
	"context"

	"go.uber.org/zap"

	"github.com/blue-edge/carbonclock/internal/detect"
	"github.com/blue-edge/carbonclock/internal/payload"
	"github.com/blue-edge/carbonclock/pkg/intangles"
)

const defaultMaxPages = 1000

// Aggregator runs fetch cycles against the paged fuel_consumed endpoint.
// Cycles are independent and idempotent: every run recomputes the total
// from zero.
type Aggregator struct {
	client   intangles.Client
	query    intangles.Query
	maxPages int
	log      *zap.Logger
}

// Option configures the aggregator.
type Option func(*Aggregator)

// WithMaxPages overrides the pagination safety cap. Values <= 0 keep the
// default.
func WithMaxPages(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxPages = n
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Aggregator) {
		a.log = log
	}
}

// New creates an aggregator for the given client and query.
func New(client intangles.Client, q intangles.Query, opts ...Option) *Aggregator {
	a := &Aggregator{
		client:   client,
		query:    q,
		maxPages: defaultMaxPages,
		log:      zap.L().With(zap.String("component", "aggregate")),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run executes one complete fetch cycle and returns the summed fuel
// quantity in the remote's input unit. Pages are fetched sequentially from
// page 1; the loop ends on an empty page or on a page shorter than the
// requested page size, whichever comes first. Records whose field is
// missing, null, or unparsable are skipped, never fatal. Failures are
// typed: TransportError, ErrFieldNotDetected, or TooManyPagesError.
func (a *Aggregator) Run(ctx context.Context) (float64, error) {
	var (
		total   float64
		fuelKey string
	)

	for page := 1; ; page++ {
		if page > a.maxPages {
			return 0, &TooManyPagesError{Pages: a.maxPages}
		}

		body, err := a.client.FuelConsumedPage(ctx, a.query, page)
		if err != nil {
			return 0, &TransportError{Page: page, Err: err}
		}

		rows := payload.Rows(body)
		if len(rows) == 0 {
			break
		}

		if fuelKey == "" {
			key, ok := detect.FuelKey(rows)
			if !ok {
				return 0, ErrFieldNotDetected
			}
			fuelKey = key
			a.log.Debug("detected fuel field",
				zap.String("field", key),
				zap.Int("sample_rows", len(rows)),
			)
		}

		for _, row := range rows {
			if v, ok := payload.ValueAt(row, fuelKey); ok {
				total += v
			}
		}

		if len(rows) < a.query.PageSize {
			break
		}
	}

	return total, nil
}
