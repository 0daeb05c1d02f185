package handler

import (
	"net/http"

	"fabcost/internal/apierror"
	"fabcost/internal/dto"
	"fabcost/internal/model"
	"fabcost/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BOMHandler serves the bill-of-materials document of a product or
// sub-assembly. The owner type is fixed at route registration.
type BOMHandler struct{ svc service.BOMService }

func NewBOMHandler(svc service.BOMService) *BOMHandler {
	return &BOMHandler{svc: svc}
}

func (h *BOMHandler) Get(ownerType model.BOMOwnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
			return
		}
		resp, err := h.svc.Get(c.Request.Context(), ownerType, ownerID)
		if err != nil {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *BOMHandler) Put(ownerType model.BOMOwnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
			return
		}
		var req dto.PutBOMRequest
		if !bindAndValidate(c, &req) {
			return
		}
		resp, err := h.svc.Put(c.Request.Context(), ownerType, ownerID, req)
		if err != nil {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *BOMHandler) UpsertLine(ownerType model.BOMOwnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
			return
		}
		var req dto.UpsertBOMLineRequest
		if !bindAndValidate(c, &req) {
			return
		}
		resp, err := h.svc.UpsertLine(c.Request.Context(), ownerType, ownerID, req)
		if err != nil {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *BOMHandler) RemoveLine(ownerType model.BOMOwnerType) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
			return
		}
		var req dto.RemoveBOMLineRequest
		if !bindAndValidate(c, &req) {
			return
		}
		resp, err := h.svc.RemoveLine(c.Request.Context(), ownerType, ownerID, req)
		if err != nil {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
