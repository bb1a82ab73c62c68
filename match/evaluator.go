package match

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*Evaluator)

// WithWorkers sets the number of concurrent evaluation goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *Evaluator) {
		if workers > 0 {
			e.workers = workers
		}
	}
}

// WithBatchSize sets the chunk size used for concurrent evaluation
func WithBatchSize(size int) EvaluatorOption {
	return func(e *Evaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// Evaluator applies a Matcher to a list of items
type Evaluator struct {
	workers   int
	batchSize int
}

// NewEvaluator creates a new evaluator
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		workers:   runtime.GOMAXPROCS(0),
		batchSize: 100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Filter returns the items matching m, keeping their order.
// The first evaluation error aborts the whole call.
func (e *Evaluator) Filter(ctx context.Context, m *Matcher, items []Item) ([]Item, error) {
	if len(items) == 0 {
		return []Item{}, nil
	}

	// Small lists are not worth the goroutines
	if len(items) <= e.batchSize || e.workers == 1 {
		return filterChunk(ctx, m, items)
	}

	chunks := make([][]Item, 0, len(items)/e.batchSize+1)
	for start := 0; start < len(items); start += e.batchSize {
		chunks = append(chunks, items[start:min(start+e.batchSize, len(items))])
	}

	results := make([][]Item, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, chunk := range chunks {
		g.Go(func() error {
			matches, err := filterChunk(ctx, m, chunk)
			if err != nil {
				return err
			}
			results[i] = matches
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]Item, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func filterChunk(ctx context.Context, m *Matcher, items []Item) ([]Item, error) {
	matches := make([]Item, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok, err := m.Match(item)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// Filter applies m to items with a default evaluator
func Filter(ctx context.Context, m *Matcher, items []Item) ([]Item, error) {
	return NewEvaluator().Filter(ctx, m, items)
}
