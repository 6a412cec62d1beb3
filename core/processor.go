package core

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/Skryldev/grayscale/errors"
)

// Processor runs file-pipeline invocations. It is safe for concurrent use;
// invocations share nothing but the registry, hooks and counters.
type Processor struct {
	registry Registry
	hooks    []Hook
	logger   Logger
	metrics  MetricsCollector

	// Atomic counters for lightweight internal metrics.
	processedCount int64
	errorCount     int64
}

// New creates a Processor bound to reg.
func New(reg Registry) *Processor {
	return &Processor{registry: reg, logger: NopLogger()}
}

// SetLogger attaches the diagnostic sink.
func (p *Processor) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger()
	}
	p.logger = l
}

// SetMetrics attaches a metrics collector.
func (p *Processor) SetMetrics(m MetricsCollector) { p.metrics = m }

// AddHook registers a pipeline hook. Hooks must be added before the first Run.
func (p *Processor) AddHook(h Hook) { p.hooks = append(p.hooks, h) }

// Registry returns the underlying registry so callers can register
// encoders/decoders after construction.
func (p *Processor) Registry() Registry { return p.registry }

// Run starts one invocation of steps over the file handle h and returns
// immediately. The returned Completion settles exactly once.
//
// Cancellation of ctx is not propagated to the pipeline; only its values are.
func (p *Processor) Run(ctx context.Context, h FileHandle, steps ...Step) *Completion {
	c := newCompletion(uuid.NewString())
	if h == nil {
		p.fail(c, apperrors.New(apperrors.CategoryRead, "run", apperrors.ErrNilHandle))
		return c
	}
	go p.run(context.WithoutCancel(ctx), c, h, steps)
	return c
}

func (p *Processor) run(ctx context.Context, c *Completion, h FileHandle, steps []Step) {
	defer func() {
		if r := recover(); r != nil {
			p.fail(c, apperrors.New(stageCategory(c.Stage()), "recover", fmt.Errorf("panic: %v", r)))
		}
	}()

	current := &ImageData{Source: h}
	for i, step := range steps {
		if !c.advance(step.Stage()) {
			p.fail(c, apperrors.New(apperrors.CategoryPipeline, step.Name(),
				fmt.Errorf("%w: %s after %s", apperrors.ErrStageOrder, step.Stage(), c.Stage())))
			return
		}
		// Touch the handle only after the first stage is entered.
		if i == 0 {
			p.logger.Debug("completion.start", "id", c.ID(), "source", h.Name(), "steps", len(steps))
		}
		p.logger.Debug("completion.stage", "id", c.ID(), "stage", step.Stage().String())

		p.notifyBefore(ctx, step.Name(), current)
		t := time.Now()
		next, err := step.Execute(ctx, current)
		elapsed := time.Since(t)
		if err == nil && next == nil {
			err = apperrors.ErrEmptyInput
		}
		err = apperrors.Wrap(stageCategory(step.Stage()), step.Name(), err)
		p.notifyAfter(ctx, step.Name(), next, elapsed, err)
		if err != nil {
			p.fail(c, err)
			return
		}
		current = next
	}

	if len(current.Data) == 0 {
		p.fail(c, apperrors.New(apperrors.CategoryEncode, "run", apperrors.ErrEmptyInput))
		return
	}
	atomic.AddInt64(&p.processedCount, 1)
	p.recordOutcome("resolved")
	p.logger.Debug("completion.resolved", "id", c.ID(), "bytes", len(current.Data))
	c.resolve(current.Data)
}

// fail reports err to the diagnostic sink and rejects c. Only the
// invocation's own goroutine settles c, so the terminal check cannot race.
func (p *Processor) fail(c *Completion, err error) {
	stage := c.Stage()
	if stage.Terminal() {
		return
	}
	atomic.AddInt64(&p.errorCount, 1)
	p.recordOutcome("rejected")
	p.logger.Error("completion.rejected", "id", c.ID(), "stage", stage.String(), "error", err.Error())
	c.reject(err)
}

func (p *Processor) recordOutcome(outcome string) {
	if p.metrics != nil {
		p.metrics.RecordOutcome(outcome)
	}
}

func (p *Processor) notifyBefore(ctx context.Context, name string, img *ImageData) {
	for _, h := range p.hooks {
		h.BeforeStep(ctx, name, img)
	}
}

func (p *Processor) notifyAfter(ctx context.Context, name string, img *ImageData, d time.Duration, err error) {
	for _, h := range p.hooks {
		h.AfterStep(ctx, name, img, d, err)
	}
}

// stageCategory maps a pipeline stage to the error category it reports.
func stageCategory(s Stage) apperrors.Category {
	switch s {
	case StageLoading:
		return apperrors.CategoryRead
	case StageDecoding:
		return apperrors.CategoryDecode
	case StageTransforming:
		return apperrors.CategoryTransform
	case StageEncoding:
		return apperrors.CategoryEncode
	}
	return apperrors.CategoryPipeline
}

// ProcessedCount returns the number of resolved invocations.
func (p *Processor) ProcessedCount() int64 { return atomic.LoadInt64(&p.processedCount) }

// ErrorCount returns the number of rejected invocations.
func (p *Processor) ErrorCount() int64 { return atomic.LoadInt64(&p.errorCount) }
