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
		id, ticketID, "stored summary", "In Progress", "alice", "High",
		[]string{"core"}, []string{"1.0"}, "2024-01-01", "2024-02-01", time.Now(),
	)
	assert.NoError(t, err)
	return tk
}

func TestTicketReconciler_Reconcile_CreatesUnknownTickets(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").
		Return(nil, errors.NewNotFoundError("ticket not found"))
	ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*ticket.Ticket")).Return(nil)

	r := NewTicketReconciler(ticketRepo, quietLogger())

	keys, failures := r.Reconcile(context.Background(), []ticket.Description{
		{TicketID: "DNIO-1", Summary: "Fix login"},
	})

	assert.Equal(t, []string{"DNIO-1"}, keys)
	assert.Empty(t, failures)
	ticketRepo.AssertExpectations(t)
}

func TestTicketReconciler_Reconcile_ReusesExistingUntouched(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	stored := existingTicket(t, 1, "DNIO-1")
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").Return(stored, nil)

	r := NewTicketReconciler(ticketRepo, quietLogger())

	// The caller's copy carries different field values; the stored record
	// must win and no update may be issued.
	keys, failures := r.Reconcile(context.Background(), []ticket.Description{
		{TicketID: "DNIO-1", Summary: "stale summary", Status: "Done"},
	})

	assert.Equal(t, []string{"DNIO-1"}, keys)
	assert.Empty(t, failures)
	ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	ticketRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTicketReconciler_Reconcile_PartialFailureContinues(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	good := existingTicket(t, 1, "DNIO-1")
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").Return(good, nil)
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-2").
		Return(nil, errors.NewInternalError("store unavailable"))
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-3").
		Return(nil, errors.NewNotFoundError("ticket not found"))
	ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*ticket.Ticket")).Return(nil)

	r := NewTicketReconciler(ticketRepo, quietLogger())

	keys, failures := r.Reconcile(context.Background(), []ticket.Description{
		{TicketID: "DNIO-1"},
		{TicketID: "DNIO-2"},
		{TicketID: "DNIO-3"},
	})

	assert.Equal(t, []string{"DNIO-1", "DNIO-3"}, keys)
	assert.Len(t, failures, 1)
	assert.Equal(t, "DNIO-2", failures[0].TicketID)
}

func TestTicketReconciler_Reconcile_MissingTicketIDFails(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	r := NewTicketReconciler(ticketRepo, quietLogger())

	keys, failures := r.Reconcile(context.Background(), []ticket.Description{
		{Summary: "no identity"},
	})

	assert.Empty(t, keys)
	assert.Len(t, failures, 1)
	assert.Equal(t, "ticket ID is required", failures[0].Error)
}

func TestTicketReconciler_Reconcile_DeduplicatesBatch(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	stored := existingTicket(t, 1, "DNIO-1")
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").Return(stored, nil).Once()

	r := NewTicketReconciler(ticketRepo, quietLogger())

	keys, failures := r.Reconcile(context.Background(), []ticket.Description{
		{TicketID: "DNIO-1"},
		{TicketID: "DNIO-1"},
	})

	assert.Equal(t, []string{"DNIO-1"}, keys)
	assert.Empty(t, failures)
	ticketRepo.AssertExpectations(t)
}

func TestTicketReconciler_Reconcile_RecoversFromCreateRace(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	stored := existingTicket(t, 1, "DNIO-1")
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").
		Return(nil, errors.NewNotFoundError("ticket not found")).Once()
	ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*ticket.Ticket")).
		Return(errors.NewConflictError("ticket already exists"))
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").Return(stored, nil).Once()

	r := NewTicketReconciler(ticketRepo, quietLogger())

	keys, failures := r.Reconcile(context.Background(), []ticket.Description{
		{TicketID: "DNIO-1"},
	})

	assert.Equal(t, []string{"DNIO-1"}, keys)
	assert.Empty(t, failures)
	ticketRepo.AssertExpectations(t)
}

func TestTicketReconciler_Reconcile_RepeatedFailingIDReportedOnce(t *testing.T) {
	ticketRepo := new(mockTicketRepository)

	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-2").
		Return(nil, errors.NewInternalError("store unavailable")).Once()

	r := NewTicketReconciler(ticketRepo, quietLogger())

	keys, failures := r.Reconcile(context.Background(), []ticket.Description{
		{TicketID: "DNIO-2"},
		{TicketID: "DNIO-2"},
	})

	assert.Empty(t, keys)
	assert.Len(t, failures, 1)
	assert.Equal(t, "DNIO-2", failures[0].TicketID)
	ticketRepo.AssertExpectations(t)
}
