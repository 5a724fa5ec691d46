package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/workshop_backend/middlewares"
	"github.com/mmdatafocus/workshop_backend/models"
)

type partResponse struct {
	*models.Part
	InventoryItem *models.InventoryItem `json:"inventory_item,omitempty"`
}

type productResponse struct {
	*models.Product
	InventoryItem *models.InventoryItem `json:"inventory_item,omitempty"`
}

type linkInventoryRequest struct {
	InventoryItemId int `json:"inventory_item_id"`
}

func (h *Handler) addPart(c *gin.Context) {
	var input models.NewPart
	if !h.bind(c, &input) {
		return
	}
	part, err := h.ledger.AddPart(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}

// listParts attaches linked inventory items with ?expand=inventory.
func (h *Handler) listParts(c *gin.Context) {
	ctx := c.Request.Context()
	parts, err := h.ledger.ListParts(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]partResponse, len(parts))
	linked := make([]int, 0, len(parts))
	for i, part := range parts {
		resp[i].Part = part
		if part.InventoryItemId != nil {
			linked = append(linked, *part.InventoryItemId)
		}
	}
	if expands(c, "inventory") && len(linked) > 0 {
		items, err := middlewares.GetInventoryItems(ctx, linked)
		if err != nil {
			h.respondError(c, err)
			return
		}
		n := 0
		for i := range resp {
			if resp[i].InventoryItemId != nil {
				resp[i].InventoryItem = items[n]
				n++
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) setPartRecipe(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	var input models.NewPartRecipe
	if !h.bind(c, &input) {
		return
	}
	part, err := h.ledger.SetPartRecipe(c.Request.Context(), id, &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (h *Handler) linkPartInventory(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	var req linkInventoryRequest
	if !h.bind(c, &req) {
		return
	}
	part, err := h.ledger.LinkPartInventory(c.Request.Context(), id, req.InventoryItemId)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (h *Handler) addProduct(c *gin.Context) {
	var input models.NewProduct
	if !h.bind(c, &input) {
		return
	}
	product, err := h.ledger.AddProduct(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) listProducts(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := h.ledger.ListProducts(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]productResponse, len(products))
	linked := make([]int, 0, len(products))
	for i, product := range products {
		resp[i].Product = product
		if product.InventoryItemId != nil {
			linked = append(linked, *product.InventoryItemId)
		}
	}
	if expands(c, "inventory") && len(linked) > 0 {
		items, err := middlewares.GetInventoryItems(ctx, linked)
		if err != nil {
			h.respondError(c, err)
			return
		}
		n := 0
		for i := range resp {
			if resp[i].InventoryItemId != nil {
				resp[i].InventoryItem = items[n]
				n++
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) linkProductInventory(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	var req linkInventoryRequest
	if !h.bind(c, &req) {
		return
	}
	product, err := h.ledger.LinkProductInventory(c.Request.Context(), id, req.InventoryItemId)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
