package release

import (
	"github.com/gin-gonic/gin"

	"reldesk/internal/application/release/usecases"
	"reldesk/internal/domain/release"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/utils"
)

// TicketDescriptionRequest carries the caller's copy of an external ticket.
// The ticket id is validated during reconciliation, not binding, so a bad
// item surfaces as a failure entry instead of rejecting the whole payload.
type TicketDescriptionRequest struct {
	TicketID    string   `json:"ticket_id"`
	Summary     string   `json:"summary"`
	Status      string   `json:"status"`
	Assignee    string   `json:"assignee"`
	Priority    string   `json:"priority"`
	Components  []string `json:"components"`
	FixVersions []string `json:"fix_versions"`
	Created     string   `json:"created"`
	Updated     string   `json:"updated"`
}

func (r TicketDescriptionRequest) toDescription() ticket.Description {
	return ticket.Description{
		TicketID:    r.TicketID,
		Summary:     r.Summary,
		Status:      r.Status,
		Assignee:    r.Assignee,
		Priority:    r.Priority,
		Components:  r.Components,
		FixVersions: r.FixVersions,
		Created:     r.Created,
		Updated:     r.Updated,
	}
}

func toDescriptions(reqs []TicketDescriptionRequest) []ticket.Description {
	descs := make([]ticket.Description, 0, len(reqs))
	for _, r := range reqs {
		descs = append(descs, r.toDescription())
	}
	return descs
}

type ComponentDeliveryRequest struct {
	Name          string `json:"name" binding:"required"`
	DockerHubLink string `json:"docker_hub_link"`
	EDeliveryLink string `json:"e_delivery_link"`
}

func toDeliveries(reqs []ComponentDeliveryRequest) []release.ComponentDelivery {
	deliveries := make([]release.ComponentDelivery, 0, len(reqs))
	for _, r := range reqs {
		deliveries = append(deliveries, release.ComponentDelivery{
			Name:          r.Name,
			DockerHubLink: r.DockerHubLink,
			EDeliveryLink: r.EDeliveryLink,
		})
	}
	return deliveries
}

type CreateReleaseRequest struct {
	Version             string                     `json:"version" binding:"required,max=100" validate:"required,min=1,max=100"`
	Status              string                     `json:"status"`
	Tickets             []TicketDescriptionRequest `json:"tickets"`
	Commits             []string                   `json:"commits"`
	Notes               string                     `json:"notes"`
	AdditionalPoints    []string                   `json:"additional_points"`
	ComponentDeliveries []ComponentDeliveryRequest `json:"component_deliveries"`
	ReleasedBy          string                     `json:"released_by"`
	BuildURL            string                     `json:"build_url" validate:"omitempty,url"`
	ServiceID           string                     `json:"service_id"`
	Customers           []string                   `json:"customers"`
}

func (r *CreateReleaseRequest) ToCommand() usecases.CreateReleaseCommand {
	return usecases.CreateReleaseCommand{
		Version:             r.Version,
		Status:              r.Status,
		Tickets:             toDescriptions(r.Tickets),
		Commits:             r.Commits,
		Notes:               r.Notes,
		AdditionalPoints:    r.AdditionalPoints,
		ComponentDeliveries: toDeliveries(r.ComponentDeliveries),
		ReleasedBy:          r.ReleasedBy,
		BuildURL:            r.BuildURL,
		ServiceID:           r.ServiceID,
		Customers:           r.Customers,
	}
}

type UpdateReleaseRequest struct {
	Version             *string                     `json:"version" binding:"omitempty,max=100" validate:"omitempty,min=1,max=100"`
	Status              *string                     `json:"status"`
	Tickets             *[]TicketDescriptionRequest `json:"tickets"`
	Commits             *[]string                   `json:"commits"`
	Notes               *string                     `json:"notes"`
	AdditionalPoints    *[]string                   `json:"additional_points"`
	ComponentDeliveries *[]ComponentDeliveryRequest `json:"component_deliveries"`
	ReleasedBy          *string                     `json:"released_by"`
	BuildURL            *string                     `json:"build_url" validate:"omitempty,url"`
	ServiceID           *string                     `json:"service_id"`
	Customers           *[]string                   `json:"customers"`
}

func (r *UpdateReleaseRequest) ToCommand(version string) usecases.UpdateReleaseCommand {
	cmd := usecases.UpdateReleaseCommand{
		ID:               version,
		Version:          r.Version,
		Status:           r.Status,
		Notes:            r.Notes,
		ReleasedBy:       r.ReleasedBy,
		BuildURL:         r.BuildURL,
		ServiceID:        r.ServiceID,
		Commits:          r.Commits,
		AdditionalPoints: r.AdditionalPoints,
		Customers:        r.Customers,
	}
	if r.Tickets != nil {
		descs := toDescriptions(*r.Tickets)
		cmd.Tickets = &descs
	}
	if r.ComponentDeliveries != nil {
		deliveries := toDeliveries(*r.ComponentDeliveries)
		cmd.ComponentDeliveries = &deliveries
	}
	return cmd
}

func parseListReleasesQuery(c *gin.Context) usecases.ListReleasesQuery {
	pagination := utils.ParsePagination(c)

	q := usecases.ListReleasesQuery{
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if serviceID := c.Query("service_id"); serviceID != "" {
		q.ServiceID = &serviceID
	}

	return q
}
