package stores

import "sync"

// Event names the part of a store's state that changed.
type Event int

const (
	EventMoviesChanged Event = iota
	EventLoadingChanged
	EventQueryChanged
	EventResultsChanged
	EventSelectionChanged
)

func (e Event) String() string {
	switch e {
	case EventMoviesChanged:
		return "movies"
	case EventLoadingChanged:
		return "loading"
	case EventQueryChanged:
		return "query"
	case EventResultsChanged:
		return "results"
	case EventSelectionChanged:
		return "selection"
	default:
		return "unknown"
	}
}

const subscriberBuffer = 16

type broadcaster struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// subscribe registers a buffered channel. The returned func unregisters and closes it; calling it twice is safe.
func (b *broadcaster) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]chan Event)
	}
	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

// notify sends e to every subscriber without blocking.
func (b *broadcaster) notify(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
