package main

import (
	"fmt"
	"sync"

	lightmap "github.com/nexo-exp/lightmap_go/pkg"
)

type WorkerData struct {
	Index int
	Event lightmap.EventType
}

// Workers write disjoint rows of the pre-sized output table, so no result
// channel is needed and the row order never depends on scheduling.
func worker(id int, jobs <-chan WorkerData, set *lightmap.ObservableSet,
	params lightmap.Params, wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			message := fmt.Sprintf("Worker %d recovered from panic: %v", id, r)
			logger.Error(message)
		}
	}()

	for job := range jobs {
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Worker %d processing event %d", id, job.Event.EventID)
			logger.Info(message, "workers")
		}
		rec := lightmap.ComputeEventObservables(&job.Event, job.Index, params)
		set.SetRecord(job.Index, rec)
	}
}

func computeParallel(events []lightmap.EventType, params lightmap.Params,
	numWorkers int) *lightmap.ObservableSet {
	set := lightmap.NewObservableSet(len(events))

	jobs := make(chan WorkerData, numWorkers)
	var wg sync.WaitGroup
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go worker(w, jobs, set, params, &wg)
	}

	for i := range events {
		jobs <- WorkerData{Index: i, Event: events[i]}
	}
	close(jobs)
	wg.Wait()
	return set
}
