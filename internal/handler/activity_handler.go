package handler

import (
	"net/http"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/middleware"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/service"
	"github.com/raihanuddin561/skyzonebd-sub004/pkg/pagination"
	"github.com/raihanuddin561/skyzonebd-sub004/pkg/response"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/activity-logs", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.ListLogs)
}

// ListLogs returns the paginated activity log
// @Summary      List activity logs
// @Description  Newest entries first, optionally filtered by action
// @Tags         activity
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Param        action  query     string  false  "Filter by action"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/activity-logs [get]
func (h *ActivityHandler) ListLogs(c *gin.Context) {
	p := pagination.Parse(c)

	logs, total, err := h.activityService.List(c.Request.Context(), p.Page, p.Limit, c.Query("action"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated(logs, total, p.Page, p.Limit)))
}
