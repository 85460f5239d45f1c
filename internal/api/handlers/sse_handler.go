package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
)

const defaultHeartbeat = 30 * time.Second

// SSEHandler streams appointment events to admin dashboards
type SSEHandler struct {
	eventBus  providers.EventBus
	heartbeat time.Duration
	clients   map[chan *entities.DomainEvent]struct{}
	mu        sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus:  eventBus,
		heartbeat: defaultHeartbeat,
		clients:   make(map[chan *entities.DomainEvent]struct{}),
	}
}

// WithHeartbeat overrides the keep-alive interval
func (h *SSEHandler) WithHeartbeat(d time.Duration) *SSEHandler {
	h.heartbeat = d
	return h
}

// StreamAppointments handles GET /Appointment/stream[?specialist=]
func (h *SSEHandler) StreamAppointments(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	if h.eventBus == nil {
		respondWithError(w, http.StatusServiceUnavailable, "event stream unavailable")
		return
	}

	specialist := r.URL.Query().Get("specialist")

	eventChan, err := h.eventBus.Subscribe(r.Context(), providers.EventChannelAppointments)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to subscribe to appointment events")
		respondWithError(w, http.StatusServiceUnavailable, "event stream unavailable")
		return
	}

	// Streams outlive the server's write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	clientChan := make(chan *entities.DomainEvent, 16)
	h.registerClient(clientChan)
	defer h.unregisterClient(clientChan)

	h.sendEvent(w, "connected", map[string]interface{}{
		"channel":   providers.EventChannelAppointments,
		"timestamp": time.Now().UTC(),
	})
	flusher.Flush()

	go h.forwardEvents(r.Context(), eventChan, clientChan, specialist)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now().UTC(),
			})
			flusher.Flush()
		case event := <-clientChan:
			h.sendEvent(w, string(event.Type), event)
			flusher.Flush()
		}
	}
}

// forwardEvents copies bus events to the client, dropping them when the client falls behind
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.DomainEvent, clientChan chan<- *entities.DomainEvent, specialist string) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil || !matchesSpecialist(event, specialist) {
				continue
			}
			select {
			case clientChan <- event:
			default:
				log.Debug().Str("event_id", event.ID).Msg("sse client full, dropping event")
			}
		}
	}
}

func matchesSpecialist(event *entities.DomainEvent, specialist string) bool {
	if specialist == "" || len(event.Payload) == 0 {
		return true
	}
	var appointment entities.Appointment
	if err := json.Unmarshal(event.Payload, &appointment); err != nil || appointment.SpecialistName == "" {
		return true
	}
	return appointment.SpecialistName == specialist
}

func (h *SSEHandler) registerClient(clientChan chan *entities.DomainEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientChan] = struct{}{}
	log.Debug().Int("clients", len(h.clients)).Msg("sse client connected")
}

func (h *SSEHandler) unregisterClient(clientChan chan *entities.DomainEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, clientChan)
	log.Debug().Int("clients", len(h.clients)).Msg("sse client disconnected")
}

// sendEvent writes one SSE frame
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// ClientCount returns the number of connected clients
func (h *SSEHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
