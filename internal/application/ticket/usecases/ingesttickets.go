package usecases

import (
	"context"

	"reldesk/internal/application/ticket/dto"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/errors"
	"reldesk/internal/shared/logger"
)

type IngestTicketsCommand struct {
	Tickets []ticket.Description
}

type IngestTicketsResult struct {
	Ingested []*dto.TicketDTO       `json:"ingested"`
	Failed   []dto.IngestFailureDTO `json:"failed"`
}

// IngestTicketsUseCase refreshes the local ticket mirror from freshly
// fetched tracker data. Unlike release reconciliation, ingestion does
// overwrite existing records; this is the one path that updates mirrored
// fields after the first write.
type IngestTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	txMgr      TransactionRunner
	logger     logger.Interface
}

func NewIngestTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	txMgr TransactionRunner,
	logger logger.Interface,
) *IngestTicketsUseCase {
	return &IngestTicketsUseCase{
		ticketRepo: ticketRepo,
		txMgr:      txMgr,
		logger:     logger,
	}
}

func (uc *IngestTicketsUseCase) Execute(ctx context.Context, cmd IngestTicketsCommand) (*IngestTicketsResult, error) {
	uc.logger.Infow("executing ingest tickets use case", "ticket_count", len(cmd.Tickets))

	if len(cmd.Tickets) == 0 {
		return nil, errors.NewValidationError("at least one ticket is required")
	}

	ingested := make([]*dto.TicketDTO, 0, len(cmd.Tickets))
	failed := make([]dto.IngestFailureDTO, 0)

	for _, desc := range cmd.Tickets {
		// Each item is a read-modify-write against the mirror; lookup and
		// the following write share one transaction.
		var t *ticket.Ticket
		err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			var ingestErr error
			t, ingestErr = uc.ingestOne(txCtx, desc)
			return ingestErr
		})
		if err != nil {
			uc.logger.Warnw("ticket ingestion failed for item",
				"ticket_id", desc.TicketID,
				"error", err)
			failed = append(failed, dto.IngestFailureDTO{
				TicketID: desc.TicketID,
				Error:    err.Error(),
			})
			continue
		}
		ingested = append(ingested, dto.ToTicketDTO(t))
	}

	uc.logger.Infow("ticket ingestion finished",
		"ingested", len(ingested),
		"failed", len(failed))

	return &IngestTicketsResult{
		Ingested: ingested,
		Failed:   failed,
	}, nil
}

func (uc *IngestTicketsUseCase) ingestOne(ctx context.Context, desc ticket.Description) (*ticket.Ticket, error) {
	existing, err := uc.ticketRepo.GetByTicketID(ctx, desc.TicketID)
	if err == nil {
		if err := existing.SyncFromDescription(desc); err != nil {
			return nil, err
		}
		if err := uc.ticketRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.IsNotFoundError(err) {
		return nil, err
	}

	newTicket, err := ticket.NewTicketFromDescription(desc)
	if err != nil {
		return nil, err
	}
	if err := uc.ticketRepo.Create(ctx, newTicket); err != nil {
		return nil, err
	}
	return newTicket, nil
}
