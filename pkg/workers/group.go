package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

type Worker interface {
	Name() string
	Start(ctx context.Context) error
}

type Group []Worker

// Start runs every worker and returns once all of them have exited. The first
// worker failure cancels the shared context so the rest shut down; every
// failure is collected into the returned error.
func (g Group) Start(ctx context.Context) error {
	runCtx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	var (
		mu   sync.Mutex
		errs *multierror.Error
		wg   sync.WaitGroup
	)

	wg.Add(len(g))
	for _, w := range g {
		go func(w Worker) {
			defer wg.Done()

			if err := w.Start(runCtx); err != nil {
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", w.Name(), err))
				mu.Unlock()
				cancelFn()
			}
		}(w)
	}
	wg.Wait()

	return errs.ErrorOrNil()
}
