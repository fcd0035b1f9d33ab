// Package notify delivers fire-and-forget webhook events to the external
// automation endpoint. Mutations enqueue after their own writes commit; a
// worker goroutine delivers independently, so an unreachable endpoint can
// never fail or block the triggering operation.
package notify

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"
)

const queueSize = 64

type ProjectCreatedEvent struct {
	Email     string `json:"email"`
	ProjectID string `json:"projectId"`
	InviteURL string `json:"inviteUrl"`
}

type InvoiceRequestedEvent struct {
	ProjectID   string `json:"projectId"`
	Amount      int64  `json:"amount"`
	ClientEmail string `json:"clientEmail"`
}

type event struct {
	path    string
	payload interface{}
}

type Notifier struct {
	baseURL string
	client  *http.Client

	queue chan event
	wg    sync.WaitGroup
	once  sync.Once
}

func NewNotifier(baseURL string) *Notifier {
	n := &Notifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		queue:   make(chan event, queueSize),
	}

	n.wg.Add(1)
	go n.run()

	return n
}

func (n *Notifier) EnqueueProjectCreated(e ProjectCreatedEvent) {
	n.enqueue(event{path: "/project-created", payload: e})
}

func (n *Notifier) EnqueueInvoiceRequested(e InvoiceRequestedEvent) {
	n.enqueue(event{path: "/invoice-requested", payload: e})
}

// Stop drains the queue and stops the worker.
func (n *Notifier) Stop() {
	n.once.Do(func() {
		close(n.queue)
	})
	n.wg.Wait()
}

func (n *Notifier) enqueue(e event) {
	select {
	case n.queue <- e:
	default:
		// Best-effort channel: dropping beats blocking a mutation.
		log.Printf("Warning: webhook queue full, dropping %s event", e.path)
	}
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for e := range n.queue {
		n.deliver(e)
	}
}

func (n *Notifier) deliver(e event) {
	if n.baseURL == "" {
		log.Printf("Warning: automation webhook URL not configured, skipping %s event", e.path)
		return
	}

	body, err := json.Marshal(e.payload)
	if err != nil {
		log.Printf("Error: failed to encode %s webhook payload: %v", e.path, err)
		return
	}

	resp, err := n.client.Post(n.baseURL+e.path, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("Error: webhook %s delivery failed: %v", e.path, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Error: webhook %s returned status %d", e.path, resp.StatusCode)
	}
}
