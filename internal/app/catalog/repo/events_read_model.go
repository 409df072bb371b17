package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/sellerhub-service/internal/models/m_outbox"
	"github.com/light-bringer/sellerhub-service/internal/pkg/query"
)

// EventsReadModel reads outbox events for the operational events endpoint.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new events read model.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{client: client}
}

// ListEvents retrieves outbox events, newest first, with optional filters.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, int64, error) {
	builder := query.From(m_outbox.TableName).
		Select(m_outbox.Columns()...)

	if req.EventType != nil {
		builder = builder.Where(query.Eq(m_outbox.EventType, *req.EventType))
	}
	if req.AggregateID != nil {
		builder = builder.Where(query.Eq(m_outbox.AggregateID, *req.AggregateID))
	}
	if req.Status != nil {
		builder = builder.Where(query.Eq(m_outbox.Status, *req.Status))
	}

	stmt := builder.
		OrderBy(m_outbox.CreatedAt, query.Desc).
		Limit(int64(req.Limit)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*m_outbox.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate events: %w", err)
		}

		var event m_outbox.Data
		if err := row.Columns(
			&event.EventID,
			&event.EventType,
			&event.AggregateID,
			&event.Payload,
			&event.Status,
			&event.CreatedAt,
			&event.ProcessedAt,
			&event.RetryCount,
			&event.ErrorMessage,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	countStmt := builder.Count().Build()
	countIter := r.client.Single().Query(ctx, countStmt)
	defer countIter.Stop()

	var total int64
	row, err := countIter.Next()
	if err != nil && err != iterator.Done {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}
	if err == nil {
		if err := row.Columns(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event count: %w", err)
		}
	}

	return events, total, nil
}
