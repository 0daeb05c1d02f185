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

// CatalogHandler serves the three costable catalogs. The kind is fixed at
// route registration, so one handler covers parts, fasteners and electrical.
type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) Create(kind model.ItemKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateItemRequest
		if !bindAndValidate(c, &req) {
			return
		}
		resp, err := h.svc.Create(c.Request.Context(), kind, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

func (h *CatalogHandler) Get(kind model.ItemKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
			return
		}
		resp, err := h.svc.Get(c.Request.Context(), kind, id)
		if err != nil {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *CatalogHandler) List(kind model.ItemKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := c.DefaultQuery("active", "true") != "false"
		resp, err := h.svc.List(c.Request.Context(), kind, activeOnly)
		if err != nil {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *CatalogHandler) Update(kind model.ItemKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
			return
		}
		var req dto.UpdateItemRequest
		if !bindAndValidate(c, &req) {
			return
		}
		resp, err := h.svc.Update(c.Request.Context(), kind, id, req)
		if err != nil {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *CatalogHandler) Delete(kind model.ItemKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
			return
		}
		if err := h.svc.Delete(c.Request.Context(), kind, id); err != nil {
			serviceError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
