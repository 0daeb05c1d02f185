package handler

import (
	"net/http"

	"fabcost/internal/dto"
	"fabcost/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the labour-rate singleton.
type SettingsHandler struct{ svc *service.SettingsService }

func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) GetLabourRate(c *gin.Context) {
	rate, err := h.svc.LabourRate(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LabourRateResponse{CentsPerHour: rate})
}

func (h *SettingsHandler) UpdateLabourRate(c *gin.Context) {
	var req dto.UpdateLabourRateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateLabourRate(c.Request.Context(), req.CentsPerHour); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LabourRateResponse{CentsPerHour: req.CentsPerHour})
}
