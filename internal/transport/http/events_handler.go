package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/list_events"
)

// EventsHandler exposes the outbox for operational inspection.
type EventsHandler struct {
	listEvents *list_events.Query
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(listEvents *list_events.Query) *EventsHandler {
	return &EventsHandler{listEvents: listEvents}
}

// Routes mounts the events endpoints.
func (h *EventsHandler) Routes(r chi.Router) {
	r.Get("/", h.handleList)
}

type eventResponse struct {
	EventID     string  `json:"eventId"`
	EventType   string  `json:"eventType"`
	AggregateID string  `json:"aggregateId"`
	Payload     string  `json:"payload"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	ProcessedAt *string `json:"processedAt,omitempty"`
}

type listEventsResponse struct {
	Events     []eventResponse `json:"events"`
	TotalCount int64           `json:"totalCount"`
}

func (h *EventsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &list_events.Request{}
	if v := q.Get("eventType"); v != "" {
		req.EventType = &v
	}
	if v := q.Get("aggregateId"); v != "" {
		req.AggregateID = &v
	}
	if v := q.Get("status"); v != "" {
		req.Status = &v
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	events, total, err := h.listEvents.Execute(r.Context(), req)
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp := eventResponse{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Payload:     e.Payload.String(),
			Status:      e.Status,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
		if e.ProcessedAt.Valid {
			processedAt := e.ProcessedAt.Time.Format(time.RFC3339)
			resp.ProcessedAt = &processedAt
		}
		out = append(out, resp)
	}

	render.JSON(w, r, &listEventsResponse{Events: out, TotalCount: total})
}
