package dto

import (
	"time"

	"reldesk/internal/domain/ticket"
)

type TicketDTO struct {
	TicketID     string    `json:"ticket_id"`
	Summary      string    `json:"summary"`
	Status       string    `json:"status"`
	Assignee     string    `json:"assignee"`
	Priority     string    `json:"priority"`
	Components   []string  `json:"components"`
	FixVersions  []string  `json:"fix_versions"`
	Created      string    `json:"created"`
	Updated      string    `json:"updated"`
	LastSyncedAt time.Time `json:"last_synced_at"`
}

// IngestFailureDTO reports one description that could not be ingested.
type IngestFailureDTO struct {
	TicketID string `json:"ticket_id"`
	Error    string `json:"error"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		TicketID:     t.TicketID(),
		Summary:      t.Summary(),
		Status:       t.Status(),
		Assignee:     t.Assignee(),
		Priority:     t.Priority(),
		Components:   t.Components(),
		FixVersions:  t.FixVersions(),
		Created:      t.Created(),
		Updated:      t.Updated(),
		LastSyncedAt: t.LastSyncedAt(),
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket) []*TicketDTO {
	dtos := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		dtos = append(dtos, ToTicketDTO(t))
	}
	return dtos
}
