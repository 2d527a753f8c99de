package raycast

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// DefaultPoolThreshold is the candidate count below which Intersect stays on the calling goroutine.
const DefaultPoolThreshold = 64

// Pool fans intersection tests for large candidate sets out to a reusable worker pool.
// Results are merged back in candidate order, so pooled and serial runs return identical hits.
type Pool struct {
	workers   int
	threshold int
	pool      worker.DynamicWorkerPool
}

// NewPool creates a pool of reusable intersection workers.
//
// Parameters:
//   - workers: number of workers; values < 1 use NumCPU-1 (at least 1)
//   - threshold: minimum candidate count that is worth fanning out; values < 1 use DefaultPoolThreshold
//
// Returns:
//   - *Pool: the worker pool
func NewPool(workers, threshold int) *Pool {
	if workers < 1 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	if threshold < 1 {
		threshold = DefaultPoolThreshold
	}
	return &Pool{
		workers:   workers,
		threshold: threshold,
		// Each call submits at most `workers` chunks, far below the queue size.
		pool: worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
	}
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int {
	return p.workers
}

func (p *Pool) accepts(candidates int) bool {
	return p.workers > 1 && candidates >= p.threshold
}

// intersect splits the candidates into contiguous chunks, one task per chunk, and waits on a
// WaitGroup barrier. Each task only writes its own result slots.
func (p *Pool) intersect(r Ray, candidates []Surface, recursive bool) [][]Hit {
	results := make([][]Hit, len(candidates))
	chunk := (len(candidates) + p.workers - 1) / p.workers

	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		wg.Add(1)
		lo, hi := start, end
		p.pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					results[i] = intersectCandidate(r, candidates[i], i, recursive)
				}
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
	return results
}
