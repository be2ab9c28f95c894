// Package worker runs a fixed pool of goroutines draining a buffered
// channel of ingested alerts.
package worker

import (
	"context"
	"sync"

	"github.com/havenapp/haven/internal/models"
)

type ProcessFunc func(ctx context.Context, alert models.DisasterAlert) error

type Pool struct {
	numWorkers int
	jobs       chan models.DisasterAlert
	processor  ProcessFunc
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, bufferSize int, processor ProcessFunc) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan models.DisasterAlert, bufferSize),
		processor:  processor,
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case alert, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processor(ctx, alert)
		}
	}
}

func (p *Pool) Submit(alert models.DisasterAlert) {
	p.jobs <- alert
}

func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
