package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	catalogsvc "storefront/internal/service/catalog"
	ordersvc "storefront/internal/service/order"
)

type handlers struct {
	logger  *log.Logger
	orders  orderService
	catalog catalogService
}

// bindStatus maps a JSON binding failure to a response status.
func bindStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (h *handlers) submitOrder(c *gin.Context) {
	var in ordersvc.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(bindStatus(err), gin.H{"success": false, "message": "invalid order payload"})
		return
	}

	order, err := h.orders.Submit(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		h.logger.Printf("order handler: submit email=%s error=%v", in.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orderID": order.ID})
}

func (h *handlers) addItem(c *gin.Context) {
	var in catalogsvc.AddInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(bindStatus(err), gin.H{"message": "invalid item payload"})
		return
	}
	item, err := h.catalog.Add(c.Request.Context(), in)
	if err != nil {
		h.catalogError(c, "add", in.StoreID, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handlers) updateItem(c *gin.Context) {
	var in catalogsvc.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(bindStatus(err), gin.H{"message": "invalid item payload"})
		return
	}
	item, err := h.catalog.Update(c.Request.Context(), in)
	if err != nil {
		h.catalogError(c, "update", in.StoreID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully", "item": item})
}

func (h *handlers) deleteItems(c *gin.Context) {
	var in catalogsvc.DeleteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(bindStatus(err), gin.H{"message": "invalid delete payload"})
		return
	}
	res, err := h.catalog.Delete(c.Request.Context(), in)
	if err != nil {
		h.catalogError(c, "delete", in.StoreID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Items deleted successfully",
		"deleted":  res.Deleted,
		"notFound": res.NotFound,
	})
}

func (h *handlers) viewItems(c *gin.Context) {
	storeID := c.Query("storeID")
	items, err := h.catalog.List(c.Request.Context(), storeID)
	if err != nil {
		h.catalogError(c, "list", storeID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *handlers) catalogError(c *gin.Context, op, storeID string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "item not found"})
	default:
		h.logger.Printf("catalog handler: %s store_id=%s error=%v", op, storeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error processing " + op + " request"})
	}
}
