package geocode

import (
	"context"
	"sync"
	"time"

	"github.com/havenapp/haven/internal/models"
)

// Searcher is the lookup the debouncer wraps.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.Location, error)
}

// Debouncer coalesces rapid-fire search input. Each Search call resets
// a timer; only the query standing when the timer fires is looked up,
// and results of a superseded lookup are discarded.
type Debouncer struct {
	searcher Searcher
	delay    time.Duration
	deliver  func([]models.Location, error)

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
}

// NewDebouncer wires a searcher to a delivery callback. deliver runs on
// the timer goroutine once per settled query.
func NewDebouncer(searcher Searcher, delay time.Duration, deliver func([]models.Location, error)) *Debouncer {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Debouncer{
		searcher: searcher,
		delay:    delay,
		deliver:  deliver,
	}
}

// Search schedules a lookup for query, cancelling any pending one.
func (d *Debouncer) Search(ctx context.Context, query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	gen := d.generation

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		locations, err := d.searcher.Search(ctx, query)

		d.mu.Lock()
		current := d.generation == gen
		d.mu.Unlock()
		if current {
			d.deliver(locations, err)
		}
	})
}

// Stop cancels any pending lookup.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
}
