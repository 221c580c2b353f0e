package usecases

import (
	"context"

	"reldesk/internal/application/ticket/dto"
)

// TransactionRunner executes a function within a store transaction,
// satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type IngestTicketsExecutor interface {
	Execute(ctx context.Context, cmd IngestTicketsCommand) (*IngestTicketsResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}
