package usecases

import (
	"context"

	"reldesk/internal/application/release/dto"
	"reldesk/internal/domain/release"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/errors"
	"reldesk/internal/shared/logger"
)

// UpdateReleaseCommand applies a partial field-level merge: nil pointers
// leave fields untouched. Tickets follows full-replacement semantics: a
// non-nil empty slice clears all ticket references.
type UpdateReleaseCommand struct {
	ID                  string // current version, the caller-facing identifier
	Version             *string
	Status              *string
	Tickets             *[]ticket.Description
	Commits             *[]string
	Notes               *string
	AdditionalPoints    *[]string
	ComponentDeliveries *[]release.ComponentDelivery
	ReleasedBy          *string
	BuildURL            *string
	ServiceID           *string
	Customers           *[]string
}

type UpdateReleaseResult struct {
	Release       *dto.ReleaseDTO           `json:"release"`
	FailedTickets []dto.ReconcileFailureDTO `json:"failed_tickets"`
}

type UpdateReleaseUseCase struct {
	releaseRepo release.ReleaseRepository
	ticketRepo  ticket.TicketRepository
	reconciler  *TicketReconciler
	logger      logger.Interface
}

func NewUpdateReleaseUseCase(
	releaseRepo release.ReleaseRepository,
	ticketRepo ticket.TicketRepository,
	reconciler *TicketReconciler,
	logger logger.Interface,
) *UpdateReleaseUseCase {
	return &UpdateReleaseUseCase{
		releaseRepo: releaseRepo,
		ticketRepo:  ticketRepo,
		reconciler:  reconciler,
		logger:      logger,
	}
}

func (uc *UpdateReleaseUseCase) Execute(ctx context.Context, cmd UpdateReleaseCommand) (*UpdateReleaseResult, error) {
	uc.logger.Infow("executing update release use case", "version", cmd.ID)

	if len(cmd.ID) == 0 {
		return nil, errors.NewValidationError("version identifier is required")
	}

	rel, err := uc.releaseRepo.GetByVersion(ctx, cmd.ID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load release", "version", cmd.ID, "error", err)
		return nil, errors.NewInternalError("failed to load release")
	}

	// Version rename. The row identity is the surrogate id, so the rename is
	// an ordinary column update under the unique index; the target version
	// must be free, and the release itself is exempt from the check.
	if cmd.Version != nil && *cmd.Version != cmd.ID {
		taken, err := uc.releaseRepo.ExistsByVersion(ctx, *cmd.Version)
		if err != nil {
			uc.logger.Errorw("failed to check version availability", "error", err)
			return nil, errors.NewInternalError("failed to check version availability")
		}
		if taken {
			return nil, errors.NewConflictError("release version already exists", *cmd.Version)
		}
		if err := rel.Rename(*cmd.Version); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	// Patch validation comes before reconciliation; a rejected patch must not
	// leave freshly created ticket records behind.
	if err := uc.applyPatch(rel, cmd); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var failures []dto.ReconcileFailureDTO
	if cmd.Tickets != nil {
		// Full replacement: the reconciled set becomes the entire reference
		// list, so omitting a previously-selected ticket removes it.
		keys, reconcileFailures := uc.reconciler.Reconcile(ctx, *cmd.Tickets)
		rel.ReplaceTicketKeys(keys)
		failures = reconcileFailures
	}
	if failures == nil {
		failures = []dto.ReconcileFailureDTO{}
	}

	if err := uc.releaseRepo.Update(ctx, rel); err != nil {
		if errors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update release", "version", rel.Version(), "error", err)
		return nil, err
	}

	expanded, err := uc.ticketRepo.GetByTicketIDs(ctx, rel.TicketKeys())
	if err != nil {
		uc.logger.Errorw("failed to expand ticket references", "version", rel.Version(), "error", err)
		return nil, errors.NewInternalError("failed to expand ticket references")
	}

	uc.logger.Infow("release updated successfully",
		"version", rel.Version(),
		"tickets", len(expanded),
		"failed_tickets", len(failures))

	return &UpdateReleaseResult{
		Release:       dto.ToReleaseDTO(rel, expanded),
		FailedTickets: failures,
	}, nil
}

func (uc *UpdateReleaseUseCase) applyPatch(rel *release.Release, cmd UpdateReleaseCommand) error {
	if cmd.Status != nil {
		if err := rel.UpdateStatus(*cmd.Status); err != nil {
			return err
		}
	}
	if cmd.Commits != nil {
		rel.UpdateCommits(*cmd.Commits)
	}
	if cmd.Notes != nil {
		rel.UpdateNotes(*cmd.Notes)
	}
	if cmd.AdditionalPoints != nil {
		rel.UpdateAdditionalPoints(*cmd.AdditionalPoints)
	}
	if cmd.ComponentDeliveries != nil {
		if err := rel.UpdateComponentDeliveries(*cmd.ComponentDeliveries); err != nil {
			return err
		}
	}
	if cmd.ReleasedBy != nil {
		rel.UpdateReleasedBy(*cmd.ReleasedBy)
	}
	if cmd.BuildURL != nil {
		rel.UpdateBuildURL(*cmd.BuildURL)
	}
	if cmd.ServiceID != nil {
		rel.AssignService(*cmd.ServiceID)
	}
	if cmd.Customers != nil {
		rel.UpdateCustomers(*cmd.Customers)
	}
	return nil
}
