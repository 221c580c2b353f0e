package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reldesk/internal/domain/release"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/errors"
)

func strPtr(s string) *string {
	return &s
}

func storedRelease(t *testing.T, version string, ticketKeys []string) *release.Release {
	t.Helper()
	rel, err := release.ReconstructRelease(
		1, version, "Planned", ticketKeys,
		[]string{}, "", []string{}, []release.ComponentDelivery{},
		"", "", "svc-auth", []string{},
		time.Now(), time.Now(),
	)
	assert.NoError(t, err)
	return rel
}

func TestUpdateReleaseUseCase_Execute_UpdatesFields(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	rel := storedRelease(t, "2.4.0", []string{"DNIO-1"})
	stored := existingTicket(t, 1, "DNIO-1")

	releaseRepo.On("GetByVersion", mock.Anything, "2.4.0").Return(rel, nil)
	releaseRepo.On("Update", mock.Anything, rel).Return(nil)
	ticketRepo.On("GetByTicketIDs", mock.Anything, []string{"DNIO-1"}).
		Return([]*ticket.Ticket{stored}, nil)

	uc := NewUpdateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), UpdateReleaseCommand{
		ID:     "2.4.0",
		Status: strPtr("Released"),
		Notes:  strPtr("shipped"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Released", result.Release.Status)
	assert.Equal(t, "shipped", result.Release.Notes)
	assert.Len(t, result.Release.Tickets, 1)
	releaseRepo.AssertExpectations(t)
}

func TestUpdateReleaseUseCase_Execute_NotFound(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	releaseRepo.On("GetByVersion", mock.Anything, "9.9.9").
		Return(nil, errors.NewNotFoundError("release not found", "9.9.9"))

	uc := NewUpdateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), UpdateReleaseCommand{ID: "9.9.9"})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUpdateReleaseUseCase_Execute_RenameToFreeVersion(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	rel := storedRelease(t, "2.4.0", nil)

	releaseRepo.On("GetByVersion", mock.Anything, "2.4.0").Return(rel, nil)
	releaseRepo.On("ExistsByVersion", mock.Anything, "2.4.1").Return(false, nil)
	releaseRepo.On("Update", mock.Anything, rel).Return(nil)
	ticketRepo.On("GetByTicketIDs", mock.Anything, []string{}).
		Return([]*ticket.Ticket{}, nil)

	uc := NewUpdateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), UpdateReleaseCommand{
		ID:      "2.4.0",
		Version: strPtr("2.4.1"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "2.4.1", result.Release.Version)
	releaseRepo.AssertExpectations(t)
}

func TestUpdateReleaseUseCase_Execute_RenameToTakenVersionConflicts(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	rel := storedRelease(t, "2.4.0", nil)

	releaseRepo.On("GetByVersion", mock.Anything, "2.4.0").Return(rel, nil)
	releaseRepo.On("ExistsByVersion", mock.Anything, "2.5.0").Return(true, nil)

	uc := NewUpdateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), UpdateReleaseCommand{
		ID:      "2.4.0",
		Version: strPtr("2.5.0"),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsConflictError(err))
	releaseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateReleaseUseCase_Execute_SameVersionIsNotConflict(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	rel := storedRelease(t, "2.4.0", nil)

	releaseRepo.On("GetByVersion", mock.Anything, "2.4.0").Return(rel, nil)
	releaseRepo.On("Update", mock.Anything, rel).Return(nil)
	ticketRepo.On("GetByTicketIDs", mock.Anything, []string{}).
		Return([]*ticket.Ticket{}, nil)

	uc := NewUpdateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	// Resubmitting the release's own version must not trip the availability
	// check.
	result, err := uc.Execute(context.Background(), UpdateReleaseCommand{
		ID:      "2.4.0",
		Version: strPtr("2.4.0"),
		Notes:   strPtr("unchanged identity"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "2.4.0", result.Release.Version)
	releaseRepo.AssertNotCalled(t, "ExistsByVersion", mock.Anything, mock.Anything)
}

func TestUpdateReleaseUseCase_Execute_EmptyTicketsClearsReferences(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	rel := storedRelease(t, "2.4.0", []string{"DNIO-1", "DNIO-2"})

	releaseRepo.On("GetByVersion", mock.Anything, "2.4.0").Return(rel, nil)
	releaseRepo.On("Update", mock.Anything, rel).Return(nil)
	ticketRepo.On("GetByTicketIDs", mock.Anything, []string{}).
		Return([]*ticket.Ticket{}, nil)

	uc := NewUpdateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	emptyTickets := []ticket.Description{}
	result, err := uc.Execute(context.Background(), UpdateReleaseCommand{
		ID:      "2.4.0",
		Tickets: &emptyTickets,
	})

	assert.NoError(t, err)
	assert.Empty(t, result.Release.Tickets)
	assert.Empty(t, rel.TicketKeys())
	releaseRepo.AssertExpectations(t)
}

func TestUpdateReleaseUseCase_Execute_NilTicketsLeavesReferences(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	rel := storedRelease(t, "2.4.0", []string{"DNIO-1"})
	stored := existingTicket(t, 1, "DNIO-1")

	releaseRepo.On("GetByVersion", mock.Anything, "2.4.0").Return(rel, nil)
	releaseRepo.On("Update", mock.Anything, rel).Return(nil)
	ticketRepo.On("GetByTicketIDs", mock.Anything, []string{"DNIO-1"}).
		Return([]*ticket.Ticket{stored}, nil)

	uc := NewUpdateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	result, err := uc.Execute(context.Background(), UpdateReleaseCommand{
		ID:    "2.4.0",
		Notes: strPtr("notes only"),
	})

	assert.NoError(t, err)
	assert.Len(t, result.Release.Tickets, 1)
	assert.Equal(t, []string{"DNIO-1"}, rel.TicketKeys())
	ticketRepo.AssertNotCalled(t, "GetByTicketID", mock.Anything, mock.Anything)
}

func TestUpdateReleaseUseCase_Execute_ReconcileFailureDoesNotAbort(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	rel := storedRelease(t, "2.4.0", nil)
	ok := existingTicket(t, 1, "DNIO-1")

	releaseRepo.On("GetByVersion", mock.Anything, "2.4.0").Return(rel, nil)
	releaseRepo.On("Update", mock.Anything, rel).Return(nil)
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-1").Return(ok, nil)
	ticketRepo.On("GetByTicketID", mock.Anything, "DNIO-2").
		Return(nil, errors.NewInternalError("store unavailable"))
	ticketRepo.On("GetByTicketIDs", mock.Anything, []string{"DNIO-1"}).
		Return([]*ticket.Ticket{ok}, nil)

	uc := NewUpdateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	tickets := []ticket.Description{{TicketID: "DNIO-1"}, {TicketID: "DNIO-2"}}
	result, err := uc.Execute(context.Background(), UpdateReleaseCommand{
		ID:      "2.4.0",
		Tickets: &tickets,
	})

	assert.NoError(t, err)
	assert.Len(t, result.Release.Tickets, 1)
	assert.Len(t, result.FailedTickets, 1)
	assert.Equal(t, "DNIO-2", result.FailedTickets[0].TicketID)
	releaseRepo.AssertExpectations(t)
}

func TestUpdateReleaseUseCase_Execute_InvalidPatchPrecedesTicketWrites(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	rel := storedRelease(t, "2.4.0", nil)

	releaseRepo.On("GetByVersion", mock.Anything, "2.4.0").Return(rel, nil)

	uc := NewUpdateReleaseUseCase(releaseRepo, ticketRepo, NewTicketReconciler(ticketRepo, logger), logger)

	// An invalid patch must reject the update before reconciliation touches
	// the ticket store, so the caller can read the error as "nothing happened".
	tickets := []ticket.Description{{TicketID: "DNIO-9", Summary: "New ticket"}}
	deliveries := []release.ComponentDelivery{{DockerHubLink: "https://hub.docker.com/r/acme/core"}}
	result, err := uc.Execute(context.Background(), UpdateReleaseCommand{
		ID:                  "2.4.0",
		Tickets:             &tickets,
		ComponentDeliveries: &deliveries,
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
	ticketRepo.AssertNotCalled(t, "GetByTicketID", mock.Anything, mock.Anything)
	ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	releaseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
