package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reldesk/internal/domain/release"
	"reldesk/internal/domain/ticket"
)

func TestListReleasesUseCase_Execute_PaginationMeta(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	pageRows := make([]*release.Release, 0, 20)
	for i := 0; i < 20; i++ {
		pageRows = append(pageRows, storedRelease(t, fmt.Sprintf("2.%d.0", i), nil))
	}

	releaseRepo.On("List", mock.Anything, mock.AnythingOfType("release.ReleaseFilter")).
		Return(pageRows, int64(45), nil)

	uc := NewListReleasesUseCase(releaseRepo, ticketRepo, logger)

	result, err := uc.Execute(context.Background(), ListReleasesQuery{Page: 2, PageSize: 20})

	assert.NoError(t, err)
	assert.Len(t, result.Releases, 20)
	assert.Equal(t, int64(45), result.TotalCount)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 20, result.PageSize)
	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasMore)
}

func TestListReleasesUseCase_Execute_LastPageHasNoMore(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	pageRows := []*release.Release{storedRelease(t, "2.44.0", nil)}

	releaseRepo.On("List", mock.Anything, mock.AnythingOfType("release.ReleaseFilter")).
		Return(pageRows, int64(45), nil)

	uc := NewListReleasesUseCase(releaseRepo, ticketRepo, logger)

	result, err := uc.Execute(context.Background(), ListReleasesQuery{Page: 3, PageSize: 20})

	assert.NoError(t, err)
	assert.Equal(t, 3, result.TotalPages)
	assert.False(t, result.HasMore)
}

func TestListReleasesUseCase_Execute_ServiceFilterPassedThrough(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	svc := "svc-auth"
	releaseRepo.On("List", mock.Anything, mock.MatchedBy(func(f release.ReleaseFilter) bool {
		return f.ServiceID != nil && *f.ServiceID == svc
	})).Return([]*release.Release{}, int64(0), nil)

	uc := NewListReleasesUseCase(releaseRepo, ticketRepo, logger)

	result, err := uc.Execute(context.Background(), ListReleasesQuery{ServiceID: &svc})

	assert.NoError(t, err)
	assert.Empty(t, result.Releases)
	releaseRepo.AssertExpectations(t)
}

func TestListReleasesUseCase_Execute_BatchesTicketExpansion(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	relA := storedRelease(t, "2.4.0", []string{"DNIO-1", "DNIO-2"})
	relB := storedRelease(t, "2.5.0", []string{"DNIO-2"})
	tk1 := existingTicket(t, 1, "DNIO-1")
	tk2 := existingTicket(t, 2, "DNIO-2")

	releaseRepo.On("List", mock.Anything, mock.AnythingOfType("release.ReleaseFilter")).
		Return([]*release.Release{relA, relB}, int64(2), nil)
	// One batched lookup covers both releases; the shared ticket appears
	// once in the request.
	ticketRepo.On("GetByTicketIDs", mock.Anything, []string{"DNIO-1", "DNIO-2"}).
		Return([]*ticket.Ticket{tk1, tk2}, nil).Once()

	uc := NewListReleasesUseCase(releaseRepo, ticketRepo, logger)

	result, err := uc.Execute(context.Background(), ListReleasesQuery{})

	assert.NoError(t, err)
	assert.Len(t, result.Releases, 2)
	assert.Len(t, result.Releases[0].Tickets, 2)
	assert.Len(t, result.Releases[1].Tickets, 1)
	assert.Equal(t, "DNIO-2", result.Releases[1].Tickets[0].TicketID)
	ticketRepo.AssertExpectations(t)
}

func TestListReleasesUseCase_Execute_DefaultsPagination(t *testing.T) {
	releaseRepo := new(mockReleaseRepository)
	ticketRepo := new(mockTicketRepository)
	logger := quietLogger()

	releaseRepo.On("List", mock.Anything, mock.MatchedBy(func(f release.ReleaseFilter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return([]*release.Release{}, int64(0), nil)

	uc := NewListReleasesUseCase(releaseRepo, ticketRepo, logger)

	result, err := uc.Execute(context.Background(), ListReleasesQuery{Page: 0, PageSize: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
	releaseRepo.AssertExpectations(t)
}
