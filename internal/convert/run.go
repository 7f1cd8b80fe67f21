package convert

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Run executes one batch: discover the full task list, fan it out across
// opts.Jobs workers, and return once every task has produced its outcome.
// The returned Summary always satisfies
// Total == Converted + Skipped + Errors.
//
// updates may be nil; when set, counter deltas are streamed to it for a
// live progress display.
func Run(ctx context.Context, opts Options, updates chan<- ProgressUpdate) (Summary, []Outcome, error) {
	start := time.Now()

	opts, err := opts.normalized()
	if err != nil {
		return Summary{}, nil, err
	}

	tasks, err := Discover(opts)
	if err != nil {
		return Summary{}, nil, err
	}

	if updates != nil {
		updates <- ProgressUpdate{TotalDelta: len(tasks)}
	}

	jobs := make(chan Task)
	results := make(chan Outcome)

	var wg sync.WaitGroup
	wg.Add(opts.Jobs)
	for i := 0; i < opts.Jobs; i++ {
		go func() {
			defer wg.Done()
			worker(ctx, jobs, results, opts)
		}()
	}

	var summary Summary
	var outcomes []Outcome
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			summary.Total++
			var delta ProgressUpdate
			switch res.Status {
			case StatusConverted:
				summary.Converted++
				delta.ConvertedDelta = 1
			case StatusSkipped:
				summary.Skipped++
				delta.SkippedDelta = 1
			case StatusFailed:
				summary.Errors++
				delta.ErrorDelta = 1
			}
			if updates != nil {
				updates <- delta
			}
			outcomes = append(outcomes, res)
		}
	}()

	go func() {
		defer close(jobs)
		for _, task := range tasks {
			if ctx == nil {
				jobs <- task
				continue
			}
			select {
			case jobs <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	summary.Elapsed = time.Since(start)

	if ctx != nil {
		if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
			return summary, outcomes, err
		}
	}

	return summary, outcomes, nil
}

func worker(ctx context.Context, jobs <-chan Task, results chan<- Outcome, opts Options) {
	for task := range jobs {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return
			}
		}
		results <- processTask(task, opts)
	}
}
