// Package serial provides a single-goroutine executor for CPU-bound crypto
// work, keeping key derivation off caller goroutines and serialised onto one
// dedicated consumer.
package serial

import "context"

// Runner runs submitted jobs one at a time on its own goroutine. Results are
// delivered back on the submitting goroutine.
type Runner struct {
	jobs chan func()
	stop chan struct{}
	done chan struct{}
}

// New starts a runner.
func New() *Runner {
	r := &Runner{
		jobs: make(chan func()),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *Runner) loop() {
	defer close(r.done)
	for {
		select {
		case job := <-r.jobs:
			job()
		case <-r.stop:
			return
		}
	}
}

// Do runs fn on the runner's goroutine and waits for its result. If ctx is
// done before the job is picked up, the job never runs and ctx.Err() is
// returned. Once a job is running it completes even if ctx is cancelled;
// the result is then discarded and ctx.Err() returned.
func (r *Runner) Do(ctx context.Context, fn func() error) error {
	res := make(chan error, 1)
	job := func() {
		select {
		case <-ctx.Done():
			res <- ctx.Err()
		default:
			res <- fn()
		}
	}

	select {
	case r.jobs <- job:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.stop:
		return context.Canceled
	}

	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the runner's goroutine and waits for it to exit. Jobs
// submitted after Close fail with context.Canceled.
func (r *Runner) Close() {
	close(r.stop)
	<-r.done
}
