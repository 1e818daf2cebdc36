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

type LedgerHandler struct {
	ledgerService service.LedgerService
}

func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	ledger := router.Group("/api/financial/ledger", middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		ledger.GET("", h.ListEntries)
		ledger.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateEntry)
		ledger.POST("/reconcile", middleware.RequireRole(model.RoleAdmin), h.Reconcile)
	}
}

type reconcileRequest struct {
	Action    string   `json:"action" binding:"required,oneof=compare reconcile"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	EntryIDs  []string `json:"entry_ids"`
}

// ListEntries returns paginated ledger entries
// @Summary      List ledger entries
// @Tags         ledger
// @Security     BearerAuth
// @Produce      json
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Items per page (default 20)"
// @Param        sourceType  query     string  false  "Filter by source type"
// @Param        direction   query     string  false  "Filter by CREDIT or DEBIT"
// @Param        startDate   query     string  false  "Period start (YYYY-MM-DD)"
// @Param        endDate     query     string  false  "Period end (YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=object}
// @Failure      500         {object}  response.Response
// @Router       /api/financial/ledger [get]
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	p := pagination.Parse(c)
	filter := service.LedgerFilter{
		SourceType: c.Query("sourceType"),
		Direction:  c.Query("direction"),
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
		Page:       p.Page,
		Limit:      p.Limit,
	}

	entries, total, err := h.ledgerService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated(entries, total, p.Page, p.Limit)))
}

// CreateEntry records a manual ledger entry
// @Summary      Create ledger entry
// @Tags         ledger
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLedgerEntryRequest  true  "Ledger Entry Payload"
// @Success      201      {object}  response.Response{data=model.LedgerEntry}
// @Failure      400      {object}  response.Response
// @Router       /api/financial/ledger [post]
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	var req service.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// Reconcile compares ledger totals against order totals, or marks entries reconciled
// @Summary      Reconcile ledger
// @Description  action=compare reports revenue and COGS differences between ledger ORDER entries and delivered orders for the period; action=reconcile marks the given entries as reconciled
// @Tags         ledger
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      reconcileRequest  true  "Reconcile Payload"
// @Success      200      {object}  response.Response{data=object}
// @Failure      400      {object}  response.Response
// @Router       /api/financial/ledger/reconcile [post]
func (h *LedgerHandler) Reconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case "compare":
		report, err := h.ledgerService.Compare(ctx, req.StartDate, req.EndDate)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
	case "reconcile":
		if len(req.EntryIDs) == 0 {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "entry_ids is required for action=reconcile"))
			return
		}
		updated, err := h.ledgerService.MarkReconciled(ctx, c.GetString("userID"), req.EntryIDs)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"reconciled": updated}))
	}
}
