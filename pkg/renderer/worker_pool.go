package renderer

import (
	"image"
	"runtime"
	"sync"
)

// tileJob is one tile of a frame. Workers report the tile's stats on done.
type tileJob struct {
	tile            *Tile
	frame           *frameContext
	canvas          *image.RGBA // Shared canvas, each tile writes only its bounds
	samplesPerPixel int
	done            chan<- RenderStats
}

// WorkerPool renders tiles on a fixed set of goroutines that live as long
// as the raytracer, so an animation does not start goroutines every frame
type WorkerPool struct {
	jobs       chan tileJob
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// NewWorkerPool starts numWorkers workers, or one per CPU when numWorkers
// is not positive
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		jobs:       make(chan tileJob, numWorkers*2),
		numWorkers: numWorkers,
	}
	wp.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go wp.work()
	}
	return wp
}

// RenderTiles renders every tile of a frame into canvas and blocks until
// all are done. It must not be called after Stop.
func (wp *WorkerPool) RenderTiles(tiles []*Tile, frame *frameContext, canvas *image.RGBA, samplesPerPixel int) RenderStats {
	// Buffered for every tile so workers never wait on the collector
	done := make(chan RenderStats, len(tiles))
	for _, tile := range tiles {
		wp.jobs <- tileJob{
			tile:            tile,
			frame:           frame,
			canvas:          canvas,
			samplesPerPixel: samplesPerPixel,
			done:            done,
		}
	}

	var stats RenderStats
	for range tiles {
		stats.Merge(<-done)
	}
	return stats
}

// Stop shuts down all workers once queued tiles finish. It is safe to call
// more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.jobs)
		wp.wg.Wait()
	})
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) work() {
	defer wp.wg.Done()
	for job := range wp.jobs {
		job.done <- renderTileBounds(job.tile.Bounds, job.frame, job.canvas, job.samplesPerPixel)
	}
}
