package game

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum slot count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// tickResult captures one slot's outcome to apply after the parallel phase.
type tickResult struct {
	terminated bool
	err        error
}

// workChunk represents a range of slots for a worker to process.
type workChunk struct {
	start, end int
}

// parallelState holds resources for concurrent slot ticking.
type parallelState struct {
	results    []tickResult
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(workers int) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &parallelState{
		numWorkers: workers,
		results:    make([]tickResult, 0, 256),
	}
}

// startWorkers launches persistent worker goroutines.
func (ps *parallelState) startWorkers(p *Population) {
	if ps.running {
		return
	}

	ps.workChan = make(chan workChunk, ps.numWorkers)
	ps.doneChan = make(chan struct{}, ps.numWorkers)
	ps.stopChan = make(chan struct{})
	ps.running = true

	for i := 0; i < ps.numWorkers; i++ {
		ps.wg.Add(1)
		go ps.worker(p)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (ps *parallelState) stopWorkers() {
	if !ps.running {
		return
	}

	close(ps.stopChan)
	ps.wg.Wait()
	close(ps.workChan)
	close(ps.doneChan)
	ps.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (ps *parallelState) worker(p *Population) {
	defer ps.wg.Done()

	for {
		select {
		case <-ps.stopChan:
			return
		case chunk, ok := <-ps.workChan:
			if !ok {
				return
			}
			p.computeChunk(chunk.start, chunk.end)
			ps.doneChan <- struct{}{}
		}
	}
}

// tickSlots advances every live slot by one tick and returns how many slots
// terminated during it. Slots share no state within a tick, so the compute
// phase may run on the worker pool; the apply phase is single-threaded.
func (p *Population) tickSlots() (int, error) {
	ps := p.parallel
	n := len(p.slots)

	if cap(ps.results) < n {
		ps.results = make([]tickResult, n)
	}
	ps.results = ps.results[:n]

	// Compute - choose single or parallel based on slot count
	if n < parallelThreshold || ps.numWorkers == 1 {
		p.computeChunk(0, n)
	} else {
		p.computeParallel(n)
	}

	// Apply - count terminations in slot order
	terminated := 0
	for i := range ps.results {
		r := &ps.results[i]
		if r.err != nil {
			return terminated, r.err
		}
		if r.terminated {
			terminated++
		}
	}
	return terminated, nil
}

// computeParallel dispatches work to the worker pool.
func (p *Population) computeParallel(n int) {
	ps := p.parallel
	if !ps.running {
		ps.startWorkers(p)
	}

	chunkSize := (n + ps.numWorkers - 1) / ps.numWorkers

	// Dispatch chunks to workers
	chunksDispatched := 0
	for w := 0; w < ps.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		ps.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-ps.doneChan
	}
}

// computeChunk ticks a range of slots for a single worker.
func (p *Population) computeChunk(i0, i1 int) {
	for i := i0; i < i1; i++ {
		slot := &p.slots[i]
		done, err := slot.Env.Tick(slot.Genome)
		p.parallel.results[i] = tickResult{terminated: done, err: err}
	}
}
