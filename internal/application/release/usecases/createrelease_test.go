package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reldesk/internal/domain/release"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/errors"
)

func TestCreateReleaseUseCase_Execute_Success(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	stored := existingTicket(t, 1, "DNIO-1")

	releaseRepo.On("ExistsByVersion", mock.Anything, "2.4.0").Return(false, nil)
	releaseRepo.On("Create", mock.Anything, mock.AnythingOfType("*release.Release")).Return(nil)
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").Return(stored, nil)
	ticketRepo.On("GetByTicketIDs", mock.Anything, []string{"DNIO-1"}).
		Return([]*ticket.Ticket{stored}, nil)

	uc := NewCreateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), CreateReleaseCommand{
		Version:   "2.4.0",
		Tickets:   []ticket.Description{{TicketID: "DNIO-1"}},
		Notes:     "hotfix batch",
		ServiceID: "svc-auth",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "2.4.0", result.Release.Version)
	assert.Equal(t, "Planned", result.Release.Status)
	assert.Len(t, result.Release.Tickets, 1)
	assert.Equal(t, "DNIO-1", result.Release.Tickets[0].TicketID)
	assert.Empty(t, result.FailedTickets)
	releaseRepo.AssertExpectations(t)
}

func TestCreateReleaseUseCase_Execute_MissingVersion(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	uc := NewCreateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), CreateReleaseCommand{})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
	releaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReleaseUseCase_Execute_DuplicateVersion(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	releaseRepo.On("ExistsByVersion", mock.Anything, "2.4.0").Return(true, nil)

	uc := NewCreateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), CreateReleaseCommand{Version: "2.4.0"})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsConflictError(err))
	releaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReleaseUseCase_Execute_ConcurrentCreateLosesToIndex(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	// Both writers pass the pre-check; the unique index rejects the second
	// insert and the conflict must surface unchanged.
	releaseRepo.On("ExistsByVersion", mock.Anything, "2.4.0").Return(false, nil)
	releaseRepo.On("Create", mock.Anything, mock.AnythingOfType("*release.Release")).
		Return(errors.NewConflictError("release version already exists", "2.4.0"))

	uc := NewCreateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), CreateReleaseCommand{Version: "2.4.0"})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsConflictError(err))
}

func TestCreateReleaseUseCase_Execute_PartialTicketFailureStillCreates(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	ok1 := existingTicket(t, 1, "DNIO-1")
	ok3 := existingTicket(t, 3, "DNIO-3")

	releaseRepo.On("ExistsByVersion", mock.Anything, "2.4.0").Return(false, nil)
	releaseRepo.On("Create", mock.Anything, mock.AnythingOfType("*release.Release")).Return(nil)
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").Return(ok1, nil)
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-2").
		Return(nil, errors.NewInternalError("store unavailable"))
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-3").Return(ok3, nil)
	ticketRepo.On("GetByTicketIDs", mock.Anything, []string{"DNIO-1", "DNIO-3"}).
		Return([]*ticket.Ticket{ok1, ok3}, nil)

	uc := NewCreateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), CreateReleaseCommand{
		Version: "2.4.0",
		Tickets: []ticket.Description{
			{TicketID: "DNIO-1"},
			{TicketID: "DNIO-2"},
			{TicketID: "DNIO-3"},
		},
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Len(t, result.Release.Tickets, 2)
	assert.Len(t, result.FailedTickets, 1)
	assert.Equal(t, "DNIO-2", result.FailedTickets[0].TicketID)
	releaseRepo.AssertExpectations(t)
}

func TestCreateReleaseUseCase_Execute_UnnamedDeliveryRejected(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	releaseRepo.On("ExistsByVersion", mock.Anything, "2.4.0").Return(false, nil)

	uc := NewCreateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), CreateReleaseCommand{
		Version:             "2.4.0",
		ComponentDeliveries: []release.ComponentDelivery{{DockerHubLink: "https://hub.docker.com/r/acme/core"}},
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
	releaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReleaseUseCase_Execute_ValidationFailurePrecedesTicketWrites(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	releaseRepo.On("ExistsByVersion", mock.Anything, "2.4.0").Return(false, nil)

	uc := NewCreateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	// An invalid delivery must reject the whole create before reconciliation
	// touches the ticket store; "nothing happened" has to hold for the caller.
	result, err := uc.Execute(context.Background(), CreateReleaseCommand{
		Version:             "2.4.0",
		Tickets:             []ticket.Description{{TicketID: "DNIO-9", Summary: "New ticket"}},
		ComponentDeliveries: []release.ComponentDelivery{{DockerHubLink: "https://hub.docker.com/r/acme/core"}},
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
	ticketRepo.AssertNotCalled(t, "GetByTicketID", mock.Anything, mock.Anything)
	ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	releaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
