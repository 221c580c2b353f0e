package usecases

import (
	"context"

	"reldesk/internal/application/ticket/dto"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/errors"
	"reldesk/internal/shared/logger"
	"reldesk/internal/shared/query"
	"reldesk/internal/shared/utils"
)

type ListTicketsQuery struct {
	Status    *string
	Assignee  *string
	Priority  *string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListTicketsResult struct {
	Tickets    []*dto.TicketDTO `json:"tickets"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	HasMore    bool             `json:"has_more"`
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	pagination := utils.ValidatePagination(q.Page, q.PageSize)
	page, pageSize := pagination.Page, pagination.PageSize

	filter := ticket.TicketFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(page, pageSize),
			query.WithSort(q.SortBy, q.SortOrder),
		),
		Status:   q.Status,
		Assignee: q.Assignee,
		Priority: q.Priority,
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	totalPages := utils.TotalPages(total, pageSize)

	return &ListTicketsResult{
		Tickets:    dto.ToTicketDTOs(tickets),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}, nil
}
