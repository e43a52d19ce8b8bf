package pipeline

import (
	"context"
	"sync"
)

// settled is the outcome of one fan-out branch: either a value or an error,
// never both in flight.
type settled struct {
	Value string
	Err   error
}

// branch is one independently optional enrichment call.
type branch struct {
	Name string
	Run  func(ctx context.Context) (string, error)
}

// settleAll runs every branch concurrently and waits for all of them to
// settle. A failing or slow branch never cancels or starves its siblings;
// failure tolerance is the contract here, not an accident. This is
// deliberately not a fail-fast group.
func settleAll(ctx context.Context, branches []branch) map[string]settled {
	results := make([]settled, len(branches))

	var wg sync.WaitGroup
	for i, b := range branches {
		wg.Add(1)
		go func(i int, b branch) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = settled{Err: &panicError{value: r}}
				}
			}()
			value, err := b.Run(ctx)
			results[i] = settled{Value: value, Err: err}
		}(i, b)
	}
	wg.Wait()

	out := make(map[string]settled, len(branches))
	for i, b := range branches {
		out[b.Name] = results[i]
	}
	return out
}

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return "enrichment branch panicked"
}
