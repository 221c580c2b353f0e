package usecases

import (
	"context"

	"reldesk/internal/application/release/dto"
	"reldesk/internal/domain/release"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/errors"
	"reldesk/internal/shared/logger"
	"reldesk/internal/shared/query"
	"reldesk/internal/shared/utils"
)

type ListReleasesQuery struct {
	ServiceID *string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListReleasesResult struct {
	Releases   []*dto.ReleaseDTO `json:"releases"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	HasMore    bool              `json:"has_more"`
}

type ListReleasesUseCase struct {
	releaseRepo release.ReleaseRepository
	ticketRepo  ticket.TicketRepository
	logger      logger.Interface
}

func NewListReleasesUseCase(
	releaseRepo release.ReleaseRepository,
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ListReleasesUseCase {
	return &ListReleasesUseCase{
		releaseRepo: releaseRepo,
		ticketRepo:  ticketRepo,
		logger:      logger,
	}
}

func (uc *ListReleasesUseCase) Execute(ctx context.Context, q ListReleasesQuery) (*ListReleasesResult, error) {
	pagination := utils.ValidatePagination(q.Page, q.PageSize)
	page, pageSize := pagination.Page, pagination.PageSize

	filter := release.ReleaseFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(page, pageSize),
			query.WithSort(q.SortBy, q.SortOrder),
		),
		ServiceID: q.ServiceID,
	}

	releases, total, err := uc.releaseRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list releases", "error", err)
		return nil, errors.NewInternalError("failed to list releases")
	}

	// Collect every distinct ticket key on the page and expand them in one
	// batched read instead of one lookup per release.
	keySet := make(map[string]bool)
	allKeys := make([]string, 0)
	for _, rel := range releases {
		for _, key := range rel.TicketKeys() {
			if !keySet[key] {
				keySet[key] = true
				allKeys = append(allKeys, key)
			}
		}
	}

	byKey := make(map[string]*ticket.Ticket, len(allKeys))
	if len(allKeys) > 0 {
		tickets, err := uc.ticketRepo.GetByTicketIDs(ctx, allKeys)
		if err != nil {
			uc.logger.Errorw("failed to expand ticket references", "error", err)
			return nil, errors.NewInternalError("failed to expand ticket references")
		}
		for _, t := range tickets {
			byKey[t.TicketID()] = t
		}
	}

	releaseDTOs := make([]*dto.ReleaseDTO, 0, len(releases))
	for _, rel := range releases {
		expanded := make([]*ticket.Ticket, 0, len(rel.TicketKeys()))
		for _, key := range rel.TicketKeys() {
			if t, ok := byKey[key]; ok {
				expanded = append(expanded, t)
			}
		}
		releaseDTOs = append(releaseDTOs, dto.ToReleaseDTO(rel, expanded))
	}

	totalPages := utils.TotalPages(total, pageSize)

	return &ListReleasesResult{
		Releases:   releaseDTOs,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}, nil
}
