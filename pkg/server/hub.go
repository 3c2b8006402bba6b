package server

import "sync"

// subscriberBuffer bounds the queue of each live client. A client that falls
// behind drops stale payloads; only the newest signature matters.
const subscriberBuffer = 4

// Hub fans rendered signatures out to live preview clients.
type Hub struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
	latest  []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan []byte]struct{})}
}

// Subscribe registers a client. The returned channel receives the latest
// payload immediately when one exists. Call the cancel function once the
// client goes away.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberBuffer)

	h.mu.Lock()
	h.clients[ch] = struct{}{}
	if h.latest != nil {
		ch <- h.latest
	}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.clients, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish records payload as the latest signature and queues it for every
// client.
func (h *Hub) Publish(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = append([]byte(nil), payload...)
	for ch := range h.clients {
		select {
		case ch <- h.latest:
		default:
			// drop the oldest queued payload
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- h.latest:
			default:
			}
		}
	}
}

// Latest returns the last published payload.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
