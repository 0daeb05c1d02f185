package handler

import (
	"errors"
	"net/http"
	"time"

	"fabcost/internal/apierror"
	"fabcost/internal/dto"
	"fabcost/internal/infra"
	"fabcost/internal/repository"
	"fabcost/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CostingHandler serves BOM cost rollups and the printable cost sheet.
type CostingHandler struct {
	svc            service.CostingService
	assemblies     repository.AssemblyRepository
	pdfStoragePath string
}

func NewCostingHandler(svc service.CostingService, assemblies repository.AssemblyRepository, pdfStoragePath string) *CostingHandler {
	return &CostingHandler{svc: svc, assemblies: assemblies, pdfStoragePath: pdfStoragePath}
}

// ProductCost godoc
// @Summary      Product cost rollup with per-line breakdown
// @Tags         costing
// @Security     BearerAuth
// @Param        id   path  string true  "Product UUID"
// @Param        date query string false "RFC 3339 or YYYY-MM-DD (default now)"
// @Success      200 {object} dto.ProductCostResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/products/{id}/cost [get]
func (h *CostingHandler) ProductCost(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product ID"))
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ProductCost(c.Request.Context(), productID, date)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubAssemblyCost returns a single total — no breakdown.
func (h *CostingHandler) SubAssemblyCost(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid sub-assembly ID"))
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}
	total, err := h.svc.SubAssemblyCost(c.Request.Context(), subID, date)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubAssemblyCostResponse{
		SubAssemblyID: subID.String(),
		Date:          date.UTC().Format(time.RFC3339),
		TotalCost:     total,
	})
}

// ProductCostPDF renders the rollup to a cost sheet and streams the file.
func (h *CostingHandler) ProductCostPDF(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product ID"))
		return
	}
	date, ok := dateQuery(c)
	if !ok {
		return
	}

	cost, err := h.svc.ProductCost(c.Request.Context(), productID, date)
	if err != nil {
		serviceError(c, err)
		return
	}

	product, err := h.assemblies.FindProduct(c.Request.Context(), productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		return
	}
	if err != nil {
		serviceError(c, err)
		return
	}

	path, err := infra.GenerateCostSheetPDF(product, cost, h.pdfStoragePath)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.FileAttachment(path, "costsheet_"+product.SKU+".pdf")
}
