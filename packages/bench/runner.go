package bench

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/fetchkit/packages/fetch"
)

// Config controls one bench run.
type Config struct {
	// URL and Options describe the request issued on every iteration.
	URL     string
	Options *fetch.RequestOptions

	// Duration bounds the run.
	Duration time.Duration

	// Rate caps requests per second; 0 means unlimited.
	Rate float64

	// Concurrency is the number of in-flight exchanges allowed; defaults
	// to 10.
	Concurrency int
}

// Runner drives repeated exchanges through one fetch client.
type Runner struct {
	client  *fetch.Client
	config  *Config
	limiter *rate.Limiter
	sem     chan struct{} // semaphore for max concurrency
	metrics *Metrics
}

// NewRunner creates a runner for the given client and config.
func NewRunner(client *fetch.Client, config *Config) *Runner {
	r := &Runner{
		client:  client,
		config:  config,
		metrics: NewMetrics(),
	}

	if config.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(config.Rate), 1)
	}

	concurrency := config.Concurrency
	if concurrency < 1 {
		concurrency = 10
	}
	r.sem = make(chan struct{}, concurrency)

	return r
}

// Run issues exchanges until the configured duration elapses or ctx is
// cancelled, then returns the aggregated report. Non-2xx responses count as
// successes; only transport and validation failures count as errors.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	runCtx := ctx
	if r.config.Duration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.config.Duration)
		defer cancel()
	}

	var wg sync.WaitGroup
	r.metrics.Start()

	for runCtx.Err() == nil {
		if r.limiter != nil {
			if err := r.limiter.Wait(runCtx); err != nil {
				break
			}
		}

		select {
		case <-runCtx.Done():
		case r.sem <- struct{}{}:
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-r.sem }()
				r.once(runCtx)
			}()
		}
	}

	wg.Wait()
	r.metrics.Stop()

	if ctx.Err() != nil {
		return r.metrics.Report(), ctx.Err()
	}
	return r.metrics.Report(), nil
}

func (r *Runner) once(ctx context.Context) {
	start := time.Now()
	_, err := r.client.Do(ctx, r.config.URL, r.config.Options)
	if ctx.Err() != nil && err != nil {
		// Cancellation at shutdown is not a request failure.
		return
	}
	r.metrics.Record(time.Since(start), err)
}
