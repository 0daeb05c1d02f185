package handler

import (
	"net/http"
	"strconv"

	"fabcost/internal/apierror"
	"fabcost/internal/dto"
	"fabcost/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CostHistoryHandler serves the per-item price history.
type CostHistoryHandler struct{ svc service.CostHistoryService }

func NewCostHistoryHandler(svc service.CostHistoryService) *CostHistoryHandler {
	return &CostHistoryHandler{svc: svc}
}

// Add appends one history entry for the item in the path.
func (h *CostHistoryHandler) Add(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid item ID"))
		return
	}
	var req dto.CreateCostHistoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Add(c.Request.Context(), itemID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns the item's history newest-first, paginated.
func (h *CostHistoryHandler) List(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid item ID"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.svc.List(c.Request.Context(), itemID, page, limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a single history entry by its own id.
func (h *CostHistoryHandler) Delete(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid entry ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), entryID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
