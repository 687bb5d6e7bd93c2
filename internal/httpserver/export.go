package httpserver

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"storefront/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"ID", "Name", "Description", "Price", "CompareAtPrice", "CostPerItem", "Quantity", "Images", "CreatedAt", "UpdatedAt",
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func (h *handlers) exportItems(c *gin.Context) {
	storeID := c.Query("storeID")
	items, err := h.catalog.List(c.Request.Context(), storeID)
	if err != nil {
		h.catalogError(c, "export", storeID, err)
		return
	}

	file, err := buildCatalogWorkbook(items)
	if err != nil {
		h.logger.Printf("catalog handler: export store_id=%s error=%v", storeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error building export"})
		return
	}

	name := strings.Trim(unsafeFilename.ReplaceAllString(storeID, "-"), "-")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="catalog-%s.xlsx"`, name))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		h.logger.Printf("catalog handler: export write store_id=%s error=%v", storeID, err)
	}
}

// buildCatalogWorkbook lays out one row per item. Images are inline data and
// would overflow cells, so only their count is exported.
func buildCatalogWorkbook(items []domain.CatalogItem) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Items")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, title := range exportHeaders {
		header.AddCell().SetString(title)
	}

	for _, it := range items {
		row := sheet.AddRow()
		row.AddCell().SetString(it.ID)
		row.AddCell().SetString(it.ItemName)
		row.AddCell().SetString(it.ItemDescription)
		row.AddCell().SetFloat(it.ItemPrice)
		row.AddCell().SetFloat(it.CompareAtPrice)
		row.AddCell().SetFloat(it.CostPerItem)
		row.AddCell().SetInt(it.Quantity)
		row.AddCell().SetInt(len(it.ItemImages))
		row.AddCell().SetString(it.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(it.UpdatedAt.UTC().Format("2006-01-02 15:04:05"))
	}
	return file, nil
}
