package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/errors"
)

func existingTicket(t *testing.T, id uint, ticketID string) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(
		id, ticketID, "old summary", "Open", "alice", "High",
		[]string{"core"}, []string{"1.0"}, "2024-01-01", "2024-02-01", time.Now(),
	)
	assert.NoError(t, err)
	return tk
}

func TestIngestTicketsUseCase_Execute_CreatesNewTickets(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").
		Return(nil, errors.NewNotFoundError("ticket not found"))
	ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*ticket.Ticket")).Return(nil)

	uc := NewIngestTicketsUseCase(ticketRepo, &fakeTxRunner{}, quietLogger())

	result, err := uc.Execute(context.Background(), IngestTicketsCommand{
		Tickets: []ticket.Description{{TicketID: "DNIO-1", Summary: "Fix login"}},
	})

	assert.NoError(t, err)
	assert.Len(t, result.Ingested, 1)
	assert.Equal(t, "DNIO-1", result.Ingested[0].TicketID)
	assert.Equal(t, ticket.DefaultAssignee, result.Ingested[0].Assignee)
	assert.Empty(t, result.Failed)
	ticketRepo.AssertExpectations(t)
}

func TestIngestTicketsUseCase_Execute_RefreshesExistingTickets(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	stored := existingTicket(t, 1, "DNIO-1")
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").Return(stored, nil)
	ticketRepo.On("Update", mock.Anything, stored).Return(nil)

	uc := NewIngestTicketsUseCase(ticketRepo, &fakeTxRunner{}, quietLogger())

	result, err := uc.Execute(context.Background(), IngestTicketsCommand{
		Tickets: []ticket.Description{{
			TicketID: "DNIO-1",
			Summary:  "new summary",
			Status:   "Done",
		}},
	})

	assert.NoError(t, err)
	assert.Len(t, result.Ingested, 1)
	assert.Equal(t, "new summary", result.Ingested[0].Summary)
	assert.Equal(t, "Done", result.Ingested[0].Status)
	ticketRepo.AssertExpectations(t)
}

func TestIngestTicketsUseCase_Execute_EmptyBatchRejected(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	uc := NewIngestTicketsUseCase(ticketRepo, &fakeTxRunner{}, quietLogger())

	result, err := uc.Execute(context.Background(), IngestTicketsCommand{})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
}

func TestIngestTicketsUseCase_Execute_PartialFailureContinues(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	stored := existingTicket(t, 1, "DNIO-1")
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").Return(stored, nil)
	ticketRepo.On("Update", mock.Anything, stored).Return(nil)
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-2").
		Return(nil, errors.NewInternalError("store unavailable"))

	uc := NewIngestTicketsUseCase(ticketRepo, &fakeTxRunner{}, quietLogger())

	result, err := uc.Execute(context.Background(), IngestTicketsCommand{
		Tickets: []ticket.Description{
			{TicketID: "DNIO-1", Summary: "refreshed"},
			{TicketID: "DNIO-2", Summary: "unreachable"},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, result.Ingested, 1)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, "DNIO-2", result.Failed[0].TicketID)
}

func TestIngestTicketsUseCase_Execute_MissingTicketIDFails(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	ticketRepo.On("GetByTicketID", mock.Anything, "").
		Return(nil, errors.NewNotFoundError("ticket not found"))

	uc := NewIngestTicketsUseCase(ticketRepo, &fakeTxRunner{}, quietLogger())

	result, err := uc.Execute(context.Background(), IngestTicketsCommand{
		Tickets: []ticket.Description{{Summary: "anonymous"}},
	})

	assert.NoError(t, err)
	assert.Empty(t, result.Ingested)
	assert.Len(t, result.Failed, 1)
}

func TestIngestTicketsUseCase_Execute_WrapsEachItemInTransaction(t *testing.T) {
	ticketRepo := new(mockTicketRepository)
	txRunner := &fakeTxRunner{}

	stored := existingTicket(t, 1, "DNIO-1")
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").Return(stored, nil)
	ticketRepo.On("Update", mock.Anything, stored).Return(nil)
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-2").
		Return(nil, errors.NewNotFoundError("ticket not found"))
	ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*ticket.Ticket")).Return(nil)

	uc := NewIngestTicketsUseCase(ticketRepo, txRunner, quietLogger())

	result, err := uc.Execute(context.Background(), IngestTicketsCommand{
		Tickets: []ticket.Description{
			{TicketID: "DNIO-1", Summary: "refreshed"},
			{TicketID: "DNIO-2", Summary: "brand new"},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, result.Ingested, 2)
	// Each item's lookup and write run inside their own transaction.
	assert.Equal(t, 2, txRunner.calls)
	ticketRepo.AssertExpectations(t)
}
