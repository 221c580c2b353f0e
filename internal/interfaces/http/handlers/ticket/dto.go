package ticket

import (
	"github.com/gin-gonic/gin"

	"reldesk/internal/application/ticket/usecases"
	"reldesk/internal/domain/ticket"
	"reldesk/internal/shared/utils"
)

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

type IngestTicketsRequest struct {
	Tickets []TicketDescriptionRequest `json:"tickets" binding:"required,min=1"`
}

func (r *IngestTicketsRequest) ToCommand() usecases.IngestTicketsCommand {
	descs := make([]ticket.Description, 0, len(r.Tickets))
	for _, t := range r.Tickets {
		descs = append(descs, ticket.Description{
			TicketID:    t.TicketID,
			Summary:     t.Summary,
			Status:      t.Status,
			Assignee:    t.Assignee,
			Priority:    t.Priority,
			Components:  t.Components,
			FixVersions: t.FixVersions,
			Created:     t.Created,
			Updated:     t.Updated,
		})
	}
	return usecases.IngestTicketsCommand{Tickets: descs}
}

func parseListTicketsQuery(c *gin.Context) usecases.ListTicketsQuery {
	pagination := utils.ParsePagination(c)

	q := usecases.ListTicketsQuery{
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if status := c.Query("status"); status != "" {
		q.Status = &status
	}
	if assignee := c.Query("assignee"); assignee != "" {
		q.Assignee = &assignee
	}
	if priority := c.Query("priority"); priority != "" {
		q.Priority = &priority
	}

	return q
}
