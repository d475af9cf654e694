package poll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blue-edge/carbonclock/internal/metric"
)

// CycleRunner abstracts the aggregator method the poller needs.
type CycleRunner interface {
	Run(ctx context.Context) (float64, error)
}

// Poller recomputes the savings value on a fixed interval and publishes the
// outcome to a Holder. It performs no retries of its own; a failed cycle is
// simply tried again on the next tick.
type Poller struct {
	runner     CycleRunner
	holder     *Holder
	unit       string
	density    float64
	offsetTons float64
	interval   time.Duration
}

// Options configures a Poller.
type Options struct {
	Unit       string
	Density    float64
	OffsetTons float64
	Interval   time.Duration
}

// NewPoller creates a poller publishing into holder.
func NewPoller(runner CycleRunner, holder *Holder, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = 5 * time.Second
	}
	return &Poller{
		runner:     runner,
		holder:     holder,
		unit:       opts.Unit,
		density:    opts.Density,
		offsetTons: opts.OffsetTons,
		interval:   opts.Interval,
	}
}

// Run executes one cycle immediately, then one per tick. It blocks until
// ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	log := zap.L().With(zap.String("component", "poll"))
	log.Info("starting poller", zap.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx, log)
	for {
		select {
		case <-ctx.Done():
			log.Info("poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx, log)
		}
	}
}

// Tick runs a single fetch cycle and publishes its outcome. Exposed for the
// one-shot fetch command and tests.
func (p *Poller) Tick(ctx context.Context) {
	p.tick(ctx, zap.L().With(zap.String("component", "poll")))
}

func (p *Poller) tick(ctx context.Context, log *zap.Logger) {
	cycleID := uuid.NewString()

	total, err := p.runner.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.holder.Fail(cycleID, err)
		log.Error("fetch cycle failed",
			zap.String("cycle_id", cycleID),
			zap.Error(err),
		)
		return
	}

	tons, err := metric.Finalize(total, p.unit, p.density)
	if err != nil {
		p.holder.Fail(cycleID, err)
		log.Error("fetch cycle misconfigured",
			zap.String("cycle_id", cycleID),
			zap.Error(err),
		)
		return
	}

	value := tons + p.offsetTons
	p.holder.Update(value, cycleID)
	log.Info("fetch cycle complete",
		zap.String("cycle_id", cycleID),
		zap.Float64("fuel_total", total),
		zap.Float64("savings_tons", value),
	)
}
