package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reldesk/internal/application/ticket/usecases"
	"reldesk/internal/shared/errors"
	"reldesk/internal/shared/logger"
	"reldesk/internal/shared/utils"
)

type TicketHandler struct {
	ingestTicketsUC usecases.IngestTicketsExecutor
	getTicketUC     usecases.GetTicketExecutor
	listTicketsUC   usecases.ListTicketsExecutor
	logger          logger.Interface
}

func NewTicketHandler(
	ingestTicketsUC usecases.IngestTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
) *TicketHandler {
	return &TicketHandler{
		ingestTicketsUC: ingestTicketsUC,
		getTicketUC:     getTicketUC,
		listTicketsUC:   listTicketsUC,
		logger:          logger.NewLogger(),
	}
}

// IngestTickets handles POST /tickets/ingest
func (h *TicketHandler) IngestTickets(c *gin.Context) {
	var req IngestTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for ingest tickets", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.ingestTicketsUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tickets ingested", result)
}

// GetTicket handles GET /tickets/:ticket_id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID := c.Param("ticket_id")

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	result, err := h.listTicketsUC.Execute(c.Request.Context(), parseListTicketsQuery(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.TotalCount, result.Page, result.PageSize)
}
