package handler

import (
	"net/http"

	"fabcost/internal/apierror"
	"fabcost/internal/dto"
	"fabcost/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssembliesHandler serves products and sub-assemblies. Both share the
// same request/response shape; the route decides which half it talks to.
type AssembliesHandler struct{ svc service.AssemblyService }

func NewAssembliesHandler(svc service.AssemblyService) *AssembliesHandler {
	return &AssembliesHandler{svc: svc}
}

// ── Products ──

func (h *AssembliesHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateAssemblyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AssembliesHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssembliesHandler) ListProducts(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"
	resp, err := h.svc.ListProducts(c.Request.Context(), activeOnly)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssembliesHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateAssemblyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssembliesHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Sub-assemblies ──

func (h *AssembliesHandler) CreateSubAssembly(c *gin.Context) {
	var req dto.CreateAssemblyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSubAssembly(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AssembliesHandler) GetSubAssembly(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetSubAssembly(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssembliesHandler) ListSubAssemblies(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"
	resp, err := h.svc.ListSubAssemblies(c.Request.Context(), activeOnly)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssembliesHandler) UpdateSubAssembly(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateAssemblyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateSubAssembly(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssembliesHandler) DeleteSubAssembly(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeleteSubAssembly(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
