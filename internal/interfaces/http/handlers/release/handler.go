package release

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reldesk/internal/application/release/usecases"
	"reldesk/internal/shared/errors"
	"reldesk/internal/shared/logger"
	"reldesk/internal/shared/utils"
)

type ReleaseHandler struct {
	createReleaseUC usecases.CreateReleaseExecutor
	updateReleaseUC usecases.UpdateReleaseExecutor
	deleteReleaseUC usecases.DeleteReleaseExecutor
	getReleaseUC    usecases.GetReleaseExecutor
	listReleasesUC  usecases.ListReleasesExecutor
	logger          logger.Interface
}

func NewReleaseHandler(
	createReleaseUC usecases.CreateReleaseExecutor,
	updateReleaseUC usecases.UpdateReleaseExecutor,
	deleteReleaseUC usecases.DeleteReleaseExecutor,
	getReleaseUC usecases.GetReleaseExecutor,
	listReleasesUC usecases.ListReleasesExecutor,
) *ReleaseHandler {
	return &ReleaseHandler{
		createReleaseUC: createReleaseUC,
		updateReleaseUC: updateReleaseUC,
		deleteReleaseUC: deleteReleaseUC,
		getReleaseUC:    getReleaseUC,
		listReleasesUC:  listReleasesUC,
		logger:          logger.NewLogger(),
	}
}

// CreateRelease handles POST /releases
func (h *ReleaseHandler) CreateRelease(c *gin.Context) {
	var req CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create release", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createReleaseUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Release created successfully")
}

// UpdateRelease handles PUT /releases/:version
func (h *ReleaseHandler) UpdateRelease(c *gin.Context) {
	version := c.Param("version")

	var req UpdateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update release",
			"version", version,
			"error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateReleaseUC.Execute(c.Request.Context(), req.ToCommand(version))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Release updated successfully", result)
}

// DeleteRelease handles DELETE /releases/:version
func (h *ReleaseHandler) DeleteRelease(c *gin.Context) {
	version := c.Param("version")

	cmd := usecases.DeleteReleaseCommand{Version: version}
	if err := h.deleteReleaseUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GetRelease handles GET /releases/:version
func (h *ReleaseHandler) GetRelease(c *gin.Context) {
	version := c.Param("version")

	result, err := h.getReleaseUC.Execute(c.Request.Context(), usecases.GetReleaseQuery{Version: version})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Release)
}

// ListReleases handles GET /releases
func (h *ReleaseHandler) ListReleases(c *gin.Context) {
	result, err := h.listReleasesUC.Execute(c.Request.Context(), parseListReleasesQuery(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Releases, result.TotalCount, result.Page, result.PageSize)
}
