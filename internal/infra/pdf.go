package infra

// pdf.go — cost breakdown sheet generation using go-pdf/fpdf.
// Produces an A4 sheet with the product header, the effective date, one row
// per breakdown line (type, component, unit cost, quantity, subtotal), and a
// bold total. The output file is saved to storagePath/costsheet_{sku}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"fabcost/internal/dto"
	"fabcost/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateCostSheetPDF renders a product cost rollup to a PDF file and
// returns its absolute path. storagePath is created if needed.
func GenerateCostSheetPDF(product *model.Product, cost *dto.ProductCostResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("costsheet_%s.pdf", product.SKU)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Cost Breakdown", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s  (%s)", product.Name, product.SKU), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Effective "+cost.Date, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.16 // line type
	col2 := contentW * 0.40 // component
	col3 := contentW * 0.16 // unit cost
	col4 := contentW * 0.12 // quantity
	col5 := contentW * 0.16 // subtotal

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Type", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Component", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Unit Cost", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "Subtotal", "B", 1, "R", false, 0, "")

	// ── Line rows ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range cost.Breakdown {
		component := line.ComponentID
		if component == "" {
			component = "—"
		}
		if len(component) > 36 {
			component = component[:35] + "…"
		}
		pdf.CellFormat(col1, 6, line.Type, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, component, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, formatCents(line.UnitCost), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, line.Quantity.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, formatCents(line.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3+col4, 7, "TOTAL COST:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col5, 7, formatCents(cost.TotalCost), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
