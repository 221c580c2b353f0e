package usecases

import (
	"context"

	"reldesk/internal/application/release/dto"
	"reldesk/internal/domain/release"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/errors"
	"reldesk/internal/shared/logger"
)

type CreateReleaseCommand struct {
	Version             string
	Status              string
	Tickets             []ticket.Description
	Commits             []string
	Notes               string
	AdditionalPoints    []string
	ComponentDeliveries []release.ComponentDelivery
	ReleasedBy          string
	BuildURL            string
	ServiceID           string
	Customers           []string
}

type CreateReleaseResult struct {
	Release       *dto.ReleaseDTO           `json:"release"`
	FailedTickets []dto.ReconcileFailureDTO `json:"failed_tickets"`
}

type CreateReleaseUseCase struct {
	releaseRepo release.ReleaseRepository
	ticketRepo  ticket.TicketRepository
	reconciler  *TicketReconciler
	logger      logger.Interface
}

func NewCreateReleaseUseCase(
	releaseRepo release.ReleaseRepository,
	ticketRepo ticket.TicketRepository,
	reconciler *TicketReconciler,
	logger logger.Interface,
) *CreateReleaseUseCase {
	return &CreateReleaseUseCase{
		releaseRepo: releaseRepo,
		ticketRepo:  ticketRepo,
		reconciler:  reconciler,
		logger:      logger,
	}
}

func (uc *CreateReleaseUseCase) Execute(ctx context.Context, cmd CreateReleaseCommand) (*CreateReleaseResult, error) {
	uc.logger.Infow("executing create release use case",
		"version", cmd.Version,
		"ticket_count", len(cmd.Tickets))

	if len(cmd.Version) == 0 {
		return nil, errors.NewValidationError("version is required")
	}

	exists, err := uc.releaseRepo.ExistsByVersion(ctx, cmd.Version)
	if err != nil {
		uc.logger.Errorw("failed to check release existence", "error", err)
		return nil, errors.NewInternalError("failed to check release existence")
	}
	if exists {
		return nil, errors.NewConflictError("release version already exists", cmd.Version)
	}

	// The full payload must validate before reconciliation runs; reconciling
	// first would persist ticket records for a release that is then rejected.
	newRelease, err := release.NewRelease(cmd.Version)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.applyPayload(newRelease, cmd); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	keys, failures := uc.reconciler.Reconcile(ctx, cmd.Tickets)
	newRelease.ReplaceTicketKeys(keys)

	if err := uc.releaseRepo.Create(ctx, newRelease); err != nil {
		// Two concurrent creates for the same version can both pass the
		// pre-check; the unique index decides, and the loser gets the
		// conflict mapped by the repository.
		if errors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to save release", "version", cmd.Version, "error", err)
		return nil, err
	}

	expanded, err := uc.ticketRepo.GetByTicketIDs(ctx, newRelease.TicketKeys())
	if err != nil {
		uc.logger.Errorw("failed to expand ticket references", "version", cmd.Version, "error", err)
		return nil, errors.NewInternalError("failed to expand ticket references")
	}

	uc.logger.Infow("release created successfully",
		"version", newRelease.Version(),
		"tickets", len(expanded),
		"failed_tickets", len(failures))

	return &CreateReleaseResult{
		Release:       dto.ToReleaseDTO(newRelease, expanded),
		FailedTickets: failures,
	}, nil
}

func (uc *CreateReleaseUseCase) applyPayload(rel *release.Release, cmd CreateReleaseCommand) error {
	if cmd.Status != "" {
		if err := rel.UpdateStatus(cmd.Status); err != nil {
			return err
		}
	}
	if cmd.Commits != nil {
		rel.UpdateCommits(cmd.Commits)
	}
	if cmd.Notes != "" {
		rel.UpdateNotes(cmd.Notes)
	}
	if cmd.AdditionalPoints != nil {
		rel.UpdateAdditionalPoints(cmd.AdditionalPoints)
	}
	if cmd.ComponentDeliveries != nil {
		if err := rel.UpdateComponentDeliveries(cmd.ComponentDeliveries); err != nil {
			return err
		}
	}
	if cmd.ReleasedBy != "" {
		rel.UpdateReleasedBy(cmd.ReleasedBy)
	}
	if cmd.BuildURL != "" {
		rel.UpdateBuildURL(cmd.BuildURL)
	}
	if cmd.ServiceID != "" {
		rel.AssignService(cmd.ServiceID)
	}
	if cmd.Customers != nil {
		rel.UpdateCustomers(cmd.Customers)
	}
	return nil
}
