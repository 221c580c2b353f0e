package ticket

import (
	"context"

	"reldesk/internal/shared/query"
)

// TicketFilter holds list filters for tickets.
type TicketFilter struct {
	query.BaseFilter
	Status   *string
	Assignee *string
	Priority *string
}

// TicketRepository is the persistence contract for ticket projections.
// GetByTicketID returns a not-found AppError when no record exists; callers
// distinguish that from store failures via errors.IsNotFoundError.
type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByTicketID(ctx context.Context, ticketID string) (*Ticket, error)
	// GetByTicketIDs resolves tickets in the order of the given identifiers.
	// Identifiers without a record are skipped, not errors.
	GetByTicketIDs(ctx context.Context, ticketIDs []string) ([]*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
}
