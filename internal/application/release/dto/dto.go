package dto

import (
	"time"

	"reldesk/internal/domain/release"
	"reldesk/internal/domain/ticket"
)

// TicketDTO is the expanded form of a ticket reference on a release.
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

type ComponentDeliveryDTO struct {
	Name          string `json:"name"`
	DockerHubLink string `json:"docker_hub_link,omitempty"`
	EDeliveryLink string `json:"e_delivery_link,omitempty"`
}

type ReleaseDTO struct {
	Version             string                 `json:"version"`
	Status              string                 `json:"status"`
	Tickets             []TicketDTO            `json:"tickets"`
	Commits             []string               `json:"commits"`
	Notes               string                 `json:"notes"`
	AdditionalPoints    []string               `json:"additional_points"`
	ComponentDeliveries []ComponentDeliveryDTO `json:"component_deliveries"`
	ReleasedBy          string                 `json:"released_by"`
	BuildURL            string                 `json:"build_url"`
	ServiceID           string                 `json:"service_id"`
	Customers           []string               `json:"customers"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// ReconcileFailureDTO reports one ticket description that could not be
// persisted during a release write. It rides along with a successful
// result; it is never an error by itself.
type ReconcileFailureDTO struct {
	TicketID string `json:"ticket_id"`
	Error    string `json:"error"`
}

func ToTicketDTO(t *ticket.Ticket) TicketDTO {
	return TicketDTO{
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

// ToReleaseDTO assembles a release with its ticket references expanded to
// full ticket data.
func ToReleaseDTO(r *release.Release, tickets []*ticket.Ticket) *ReleaseDTO {
	if r == nil {
		return nil
	}

	ticketDTOs := make([]TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		ticketDTOs = append(ticketDTOs, ToTicketDTO(t))
	}

	deliveries := make([]ComponentDeliveryDTO, 0, len(r.ComponentDeliveries()))
	for _, d := range r.ComponentDeliveries() {
		deliveries = append(deliveries, ComponentDeliveryDTO{
			Name:          d.Name,
			DockerHubLink: d.DockerHubLink,
			EDeliveryLink: d.EDeliveryLink,
		})
	}

	return &ReleaseDTO{
		Version:             r.Version(),
		Status:              r.Status(),
		Tickets:             ticketDTOs,
		Commits:             r.Commits(),
		Notes:               r.Notes(),
		AdditionalPoints:    r.AdditionalPoints(),
		ComponentDeliveries: deliveries,
		ReleasedBy:          r.ReleasedBy(),
		BuildURL:            r.BuildURL(),
		ServiceID:           r.ServiceID(),
		Customers:           r.Customers(),
		CreatedAt:           r.CreatedAt(),
		UpdatedAt:           r.UpdatedAt(),
	}
}
