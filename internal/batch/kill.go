package batch

import (
	"context"
	"sync"
	"time"

	"github.com/pranshuparmar/procmon/internal/control"
)

// DefaultConcurrency bounds simultaneous kill tool invocations.
const DefaultConcurrency = 4

// KillAsync kills pids concurrently.
// Outcomes stream to the returned channel as they complete; it is closed
// once every pid has an outcome.
func KillAsync(ctx context.Context, killer control.Killer, pids []int, concurrency int) <-chan control.Outcome {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	results := make(chan control.Outcome)
	semaphore := make(chan struct{}, concurrency) // Limit concurrent workers
	var wg sync.WaitGroup

	for _, pid := range pids {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			results <- killer.KillProcess(ctx, pid)
		}(pid)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// KillAll runs KillAsync and collects every outcome into a Summary.
func KillAll(ctx context.Context, killer control.Killer, pids []int, concurrency int) ([]control.Outcome, Summary) {
	start := time.Now()
	outcomes := make([]control.Outcome, 0, len(pids))
	for o := range KillAsync(ctx, killer, pids, concurrency) {
		outcomes = append(outcomes, o)
	}
	sortOutcomes(outcomes)

	s := Summarize(outcomes)
	s.Elapsed = time.Since(start)
	return outcomes, s
}
