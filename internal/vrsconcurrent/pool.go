// Package vrsconcurrent generalizes the teacher's worker-pool pattern
// (internal/annotate/parallel.go: ParallelAnnotate + OrderedCollect) from
// "workers calling Annotator.Annotate over vcf.Variant" to any fan-out job
// over a generic input/output pair, such as translate_from or normalize.Allele
// calls across a batch of VCF records (spec §5: "operations are safe to
// invoke concurrently ... provided the injected collaborators are themselves
// safe"). No package in this module calls it; the annotate command processes
// records sequentially.
package vrsconcurrent

import (
	"runtime"
	"sync"
	"time"
)

// WorkItem is one unit of input, tagged with its position in the original
// sequence so results can be reassembled in order downstream.
type WorkItem[In any] struct {
	Seq   int
	Input In
}

// WorkResult is the outcome of running fn over one WorkItem.
type WorkResult[In, Out any] struct {
	Seq    int
	Input  In
	Output Out
	Err    error
}

// Run starts a pool of workers pulling from items and applying fn,
// returning a channel of results in arrival order (not sequence order). If
// workers is 0, runtime.NumCPU() is used. Use OrderedCollect to consume
// results in sequence-number order.
func Run[In, Out any](items <-chan WorkItem[In], workers int, fn func(In) (Out, error)) <-chan WorkResult[In, Out] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult[In, Out], 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				out, err := fn(item.Input)
				results <- WorkResult[In, Out]{Seq: item.Seq, Input: item.Input, Output: out, Err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order. Blocks
// until the results channel is closed.
func OrderedCollect[In, Out any](results <-chan WorkResult[In, Out], fn func(WorkResult[In, Out]) error) error {
	return OrderedCollectWithProgress(results, 0, nil, fn)
}

// OrderedCollectWithProgress is like OrderedCollect but periodically calls
// progress with the number of items processed so far. If interval is 0 or
// progress is nil, no progress reporting is done.
func OrderedCollectWithProgress[In, Out any](results <-chan WorkResult[In, Out], interval time.Duration, progress func(int), fn func(WorkResult[In, Out]) error) error {
	pending := make(map[int]WorkResult[In, Out])
	nextSeq := 0

	var ticker *time.Ticker
	var tickC <-chan time.Time
	if interval > 0 && progress != nil {
		ticker = time.NewTicker(interval)
		tickC = ticker.C
		defer ticker.Stop()
	}

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				for range results {
					// drain remaining results to unblock workers
				}
				return err
			}
		}

		if tickC != nil {
			select {
			case <-tickC:
				progress(nextSeq)
			default:
			}
		}
	}

	return nil
}

// Feed sends each element of in to a fresh unbuffered WorkItem channel,
// tagging it with its slice index as Seq, then closes the channel. A
// convenience for callers batching a known-size slice of inputs rather than
// streaming from an external source (e.g. a VCF reader).
func Feed[In any](in []In) <-chan WorkItem[In] {
	items := make(chan WorkItem[In])
	go func() {
		defer close(items)
		for i, v := range in {
			items <- WorkItem[In]{Seq: i, Input: v}
		}
	}()
	return items
}
