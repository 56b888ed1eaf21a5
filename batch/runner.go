// Package batch converts a folder of OMF files concurrently.
//
// Files are paired with CSV rows by sorted position, decoded, converted to MAT-files or
// snapshots and written to a store.Store by a bounded worker pool.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/arloliu/omf"
	"github.com/arloliu/omf/csvmeta"
	"github.com/arloliu/omf/format"
	"github.com/arloliu/omf/internal/options"
	"github.com/arloliu/omf/store"
)

// FileResult is the outcome of one job.
type FileResult struct {
	Index    int
	Input    string
	Output   string
	Mode     format.DataMode
	Bytes    int
	Duration time.Duration
	// Err is nil on success.
	Err error
}

// Report summarises a run. Results are in job order; jobs never started have no entry.
type Report struct {
	RunID     string
	Started   time.Time
	Finished  time.Time
	Skipped   int
	Succeeded int
	Failed    int
	Results   []FileResult
}

// Errors returns the failed results.
func (r *Report) Errors() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}

	return out
}

// Runner converts jobs into a store.
type Runner struct {
	cfg   *Config
	store store.Store
}

// New creates a Runner writing into st.
func New(st store.Store, opts ...Option) (*Runner, error) {
	if st == nil {
		return nil, errors.New("batch: nil store")
	}

	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Runner{cfg: cfg, store: st}, nil
}

// OutputName returns the store name written for job.
func (r *Runner) OutputName(job Job) string {
	return job.Base() + r.cfg.format.Ext()
}

// RunDir plans dir against table (nil for none) and runs the jobs.
func (r *Runner) RunDir(ctx context.Context, dir string, table *csvmeta.Table) (*Report, error) {
	jobs, skipped, err := Plan(dir, table)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		r.cfg.logger.Warn("files without a csv row are skipped", "skipped", skipped, "rows", len(jobs))
	}

	rep, err := r.Run(ctx, jobs)
	if rep != nil {
		rep.Skipped = skipped
	}

	return rep, err
}

// Run converts jobs with at most the configured number of workers.
//
// Without fail-fast every job runs and failures are only recorded in the report. With
// fail-fast the first failure cancels the remaining jobs and is returned.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Report, error) {
	rep := &Report{RunID: uuid.NewString(), Started: time.Now()}
	log := r.cfg.logger.With("run_id", rep.RunID)
	log.Info("batch started", "files", len(jobs), "workers", r.cfg.workers, "format", r.cfg.format.String())

	var limiter *rate.Limiter
	if r.cfg.rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.cfg.rate), 1)
	}

	results := make([]FileResult, len(jobs))
	started := make([]bool, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.workers)

	var waitErr error
	for i, job := range jobs {
		if limiter != nil {
			if err := limiter.Wait(gctx); err != nil {
				waitErr = fmt.Errorf("rate limit: %w", err)
				break
			}
		}
		if gctx.Err() != nil {
			break
		}
		started[i] = true

		g.Go(func() error {
			res := r.convert(gctx, job)
			results[i] = res
			if res.Err != nil {
				log.Error("convert failed", "input", res.Input, "error", res.Err)
				if r.cfg.failFast {
					return fmt.Errorf("job %d: %w", res.Index, res.Err)
				}

				return nil
			}
			log.Debug("converted", "input", res.Input, "output", res.Output, "bytes", res.Bytes, "duration", res.Duration)

			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err == nil && waitErr != nil {
		err = waitErr
	}

	for i, ok := range started {
		if !ok {
			continue
		}
		rep.Results = append(rep.Results, results[i])
		if results[i].Err != nil {
			rep.Failed++
		} else {
			rep.Succeeded++
		}
	}
	rep.Finished = time.Now()

	log.Info("batch finished", "succeeded", rep.Succeeded, "failed", rep.Failed,
		"elapsed", rep.Finished.Sub(rep.Started))

	return rep, err
}

func (r *Runner) convert(ctx context.Context, job Job) FileResult {
	start := time.Now()
	res := FileResult{Index: job.Index, Input: job.Input, Output: r.OutputName(job)}

	finish := func(err error) FileResult {
		res.Err = err
		res.Duration = time.Since(start)

		return res
	}

	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	decoded, err := omf.DecodeFile(job.Input, r.cfg.decoderOpts...)
	if err != nil {
		return finish(err)
	}
	res.Mode = decoded.Mode

	data, err := omf.Convert(decoded, job.Energy, omf.ConvertOptions{
		Format:      r.cfg.format,
		Compression: r.cfg.compression,
		Encoding:    r.cfg.encoding,
		BigEndian:   r.cfg.bigEndian,
	})
	if err != nil {
		return finish(err)
	}

	if err := r.store.Put(ctx, res.Output, data); err != nil {
		return finish(fmt.Errorf("write %s: %w", res.Output, err))
	}
	res.Bytes = len(data)

	return finish(nil)
}
