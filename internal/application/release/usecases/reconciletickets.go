package usecases

import (
	"context"

	"reldesk/internal/application/release/dto"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/errors"
	"reldesk/internal/shared/logger"
)

// TicketReconciler ensures every ticket description referenced by a release
// payload exists in the ticket store, creating records for unknown tickets
// and reusing existing ones untouched. First write wins: an existing record
// is never refreshed from the caller's copy, so externally-synced fields
// are not clobbered by stale release payloads.
type TicketReconciler struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewTicketReconciler(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *TicketReconciler {
	return &TicketReconciler{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Reconcile resolves descriptions to stable ticket keys. A failing item is
// recorded and skipped; one bad ticket never aborts the batch. Duplicate
// keys within one batch collapse to a single reference, and a key that
// fails is not re-attempted, so it yields a single failure entry.
func (r *TicketReconciler) Reconcile(
	ctx context.Context,
	descriptions []ticket.Description,
) ([]string, []dto.ReconcileFailureDTO) {
	keys := make([]string, 0, len(descriptions))
	failures := make([]dto.ReconcileFailureDTO, 0)
	seen := make(map[string]bool, len(descriptions))

	for _, desc := range descriptions {
		if desc.TicketID == "" {
			failures = append(failures, dto.ReconcileFailureDTO{
				TicketID: "",
				Error:    "ticket ID is required",
			})
			continue
		}

		if seen[desc.TicketID] {
			continue
		}

		key, err := r.reconcileOne(ctx, desc)
		if err != nil {
			r.logger.Warnw("ticket reconciliation failed for item",
				"ticket_id", desc.TicketID,
				"error", err)
			failures = append(failures, dto.ReconcileFailureDTO{
				TicketID: desc.TicketID,
				Error:    err.Error(),
			})
			seen[desc.TicketID] = true
			continue
		}

		seen[key] = true
		keys = append(keys, key)
	}

	return keys, failures
}

func (r *TicketReconciler) reconcileOne(ctx context.Context, desc ticket.Description) (string, error) {
	existing, err := r.ticketRepo.GetByTicketID(ctx, desc.TicketID)
	if err == nil {
		return existing.TicketID(), nil
	}
	if !errors.IsNotFoundError(err) {
		return "", err
	}

	newTicket, err := ticket.NewTicketFromDescription(desc)
	if err != nil {
		return "", err
	}

	if createErr := r.ticketRepo.Create(ctx, newTicket); createErr != nil {
		// A concurrent release write may have created the same ticket
		// between lookup and insert. Re-check once before giving up.
		if recheck, getErr := r.ticketRepo.GetByTicketID(ctx, desc.TicketID); getErr == nil {
			return recheck.TicketID(), nil
		}
		return "", createErr
	}

	return newTicket.TicketID(), nil
}
