package usecases

import (
	"context"

	"reldesk/internal/application/release/dto"
	"reldesk/internal/domain/release"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/errors"
	"reldesk/internal/shared/logger"
)

type GetReleaseQuery struct {
	Version string
}

type GetReleaseResult struct {
	Release *dto.ReleaseDTO `json:"release"`
}

type GetReleaseUseCase struct {
	releaseRepo release.ReleaseRepository
	ticketRepo  ticket.TicketRepository
	logger      logger.Interface
}

func NewGetReleaseUseCase(
	releaseRepo release.ReleaseRepository,
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *GetReleaseUseCase {
	return &GetReleaseUseCase{
		releaseRepo: releaseRepo,
		ticketRepo:  ticketRepo,
		logger:      logger,
	}
}

func (uc *GetReleaseUseCase) Execute(ctx context.Context, query GetReleaseQuery) (*GetReleaseResult, error) {
	if len(query.Version) == 0 {
		return nil, errors.NewValidationError("version is required")
	}

	rel, err := uc.releaseRepo.GetByVersion(ctx, query.Version)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to get release", "version", query.Version, "error", err)
		return nil, errors.NewInternalError("failed to get release")
	}

	// Dangling keys are skipped rather than failing the read; a referenced
	// ticket may have been removed out of band.
	tickets, err := uc.ticketRepo.GetByTicketIDs(ctx, rel.TicketKeys())
	if err != nil {
		uc.logger.Errorw("failed to expand ticket references", "version", query.Version, "error", err)
		return nil, errors.NewInternalError("failed to expand ticket references")
	}

	return &GetReleaseResult{
		Release: dto.ToReleaseDTO(rel, tickets),
	}, nil
}
