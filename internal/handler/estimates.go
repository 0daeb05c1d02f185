package handler

import (
	"net/http"

	"fabcost/internal/dto"
	"fabcost/internal/service"

	"github.com/gin-gonic/gin"
)

// EstimatesHandler serves the one-shot manufactured-part estimator.
type EstimatesHandler struct{ svc service.EstimateService }

func NewEstimatesHandler(svc service.EstimateService) *EstimatesHandler {
	return &EstimatesHandler{svc: svc}
}

// Estimate godoc
// @Summary      Price a manufactured part from a design template
// @Tags         estimates
// @Security     BearerAuth
// @Param        request body dto.EstimateRequest true "Estimate input"
// @Success      200 {object} dto.EstimateResponse
// @Router       /v1/estimates [post]
func (h *EstimatesHandler) Estimate(c *gin.Context) {
	var req dto.EstimateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Estimate(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
