package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/workshop_backend/models"
)

type purchaseRequest struct {
	models.NewPurchase
	PurchaseDate string `json:"purchase_date"`
}

func (h *Handler) recordPurchase(c *gin.Context) {
	var req purchaseRequest
	if !h.bind(c, &req) {
		return
	}
	date, err := parseDate("purchase_date", req.PurchaseDate, false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	req.NewPurchase.PurchaseDate = date

	purchase, err := h.ledger.RecordPurchase(c.Request.Context(), &req.NewPurchase)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (h *Handler) listPurchases(c *gin.Context) {
	purchases, err := h.ledger.ListPurchases(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

type inventoryItemResponse struct {
	*models.InventoryItem
	StockValue string `json:"stock_value"`
}

func (h *Handler) listInventory(c *gin.Context) {
	items, err := h.ledger.ListInventoryItems(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]inventoryItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, inventoryItemResponse{InventoryItem: item, StockValue: item.StockValue().String()})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listStockMovements(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	movements, err := h.ledger.ListStockMovements(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

type thresholdRequest struct {
	StockThreshold *int `json:"stock_threshold"`
}

func (h *Handler) setStockThreshold(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	var req thresholdRequest
	if !h.bind(c, &req) {
		return
	}
	item, err := h.ledger.SetStockThreshold(c.Request.Context(), id, req.StockThreshold)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// checkInventory answers 200 either way; the body says whether it is healthy.
func (h *Handler) checkInventory(c *gin.Context) {
	report, err := h.ledger.CheckInventory(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"healthy": report.Healthy(), "report": report})
}
