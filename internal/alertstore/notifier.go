package alertstore

import (
	"sync"
	"sync/atomic"

	"github.com/havenapp/haven/internal/models"
)

// Notifier fans newly ingested critical alerts out to UI subscribers.
// Slow subscribers are skipped rather than blocking the publisher.
type Notifier struct {
	subscribers map[uint64]chan models.DisasterAlert
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewNotifier() *Notifier {
	return &Notifier{
		subscribers: make(map[uint64]chan models.DisasterAlert),
	}
}

// Subscribe registers a buffered channel receiving future critical
// alerts. The returned id is used to unsubscribe.
func (n *Notifier) Subscribe() (uint64, <-chan models.DisasterAlert) {
	id := n.nextID.Add(1)
	ch := make(chan models.DisasterAlert, 32)

	n.mu.Lock()
	n.subscribers[id] = ch
	n.mu.Unlock()

	return id, ch
}

func (n *Notifier) Unsubscribe(id uint64) {
	n.mu.Lock()
	if ch, ok := n.subscribers[id]; ok {
		close(ch)
		delete(n.subscribers, id)
	}
	n.mu.Unlock()
}

func (n *Notifier) Publish(alert models.DisasterAlert) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, ch := range n.subscribers {
		select {
		case ch <- alert:
		default:
		}
	}
}

func (n *Notifier) SubscriberCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}

// Close closes all subscriber channels.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, ch := range n.subscribers {
		close(ch)
		delete(n.subscribers, id)
	}
}
