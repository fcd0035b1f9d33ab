package notify_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"client-portal-backend/internal/notify"
)

type received struct {
	path string
	body []byte
}

func captureServer(t *testing.T) (*httptest.Server, func() []received) {
	t.Helper()

	var mu sync.Mutex
	var got []received

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, received{path: r.URL.Path, body: body})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))

	return server, func() []received {
		mu.Lock()
		defer mu.Unlock()
		out := make([]received, len(got))
		copy(out, got)
		return out
	}
}

func TestNotifier_DeliversProjectCreated(t *testing.T) {
	server, events := captureServer(t)
	defer server.Close()

	n := notify.NewNotifier(server.URL)
	n.EnqueueProjectCreated(notify.ProjectCreatedEvent{
		Email:     "c@x.com",
		ProjectID: "project-1",
		InviteURL: "http://localhost:3000/portal/project-1",
	})
	n.Stop()

	got := events()
	require.Len(t, got, 1)
	assert.Equal(t, "/project-created", got[0].path)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(got[0].body, &payload))
	assert.Equal(t, "c@x.com", payload["email"])
	assert.Equal(t, "project-1", payload["projectId"])
	assert.Equal(t, "http://localhost:3000/portal/project-1", payload["inviteUrl"])
}

func TestNotifier_DeliversInvoiceRequested(t *testing.T) {
	server, events := captureServer(t)
	defer server.Close()

	n := notify.NewNotifier(server.URL)
	n.EnqueueInvoiceRequested(notify.InvoiceRequestedEvent{
		ProjectID:   "project-1",
		Amount:      350000,
		ClientEmail: "c@x.com",
	})
	n.Stop()

	got := events()
	require.Len(t, got, 1)
	assert.Equal(t, "/invoice-requested", got[0].path)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(got[0].body, &payload))
	assert.Equal(t, float64(350000), payload["amount"])
	assert.Equal(t, "c@x.com", payload["clientEmail"])
}

func TestNotifier_FailedDeliveryIsSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := notify.NewNotifier(server.URL)
	// Must not panic or block; the error is logged and dropped.
	n.EnqueueProjectCreated(notify.ProjectCreatedEvent{Email: "c@x.com"})
	n.Stop()
}

func TestNotifier_NoBaseURLSkipsDelivery(t *testing.T) {
	n := notify.NewNotifier("")
	n.EnqueueInvoiceRequested(notify.InvoiceRequestedEvent{ProjectID: "p"})
	n.Stop()
}
