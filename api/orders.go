package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/workshop_backend/middlewares"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/shopspring/decimal"
)

type assemblyOrderResponse struct {
	*models.AssemblyOrderView
	Recipe []*models.PartRecipe `json:"recipe,omitempty"`
}

type salesOrderResponse struct {
	*models.SalesOrder
	Outstanding string            `json:"outstanding"`
	Payments    []*models.Payment `json:"payments,omitempty"`
}

type salesOrderRequest struct {
	models.NewSalesOrder
	OrderDate string `json:"order_date"`
}

type paymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
}

func (h *Handler) createAssemblyOrder(c *gin.Context) {
	var input models.NewAssemblyOrder
	if !h.bind(c, &input) {
		return
	}
	order, err := h.ledger.CreateAssemblyOrder(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// listAssemblyOrders attaches the recipe of the part each order builds with
// ?expand=recipe.
func (h *Handler) listAssemblyOrders(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := h.ledger.ListAssemblyOrders(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]assemblyOrderResponse, len(orders))
	partIds := make([]int, len(orders))
	for i, order := range orders {
		resp[i].AssemblyOrderView = order
		partIds[i] = order.PartId
	}
	if expands(c, "recipe") && len(orders) > 0 {
		recipes, err := middlewares.GetPartRecipes(ctx, partIds)
		if err != nil {
			h.respondError(c, err)
			return
		}
		for i := range resp {
			resp[i].Recipe = recipes[i]
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) fulfillAssemblyOrder(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	order, err := h.ledger.FulfillAssemblyOrder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) createSalesOrder(c *gin.Context) {
	var req salesOrderRequest
	if !h.bind(c, &req) {
		return
	}
	date, err := parseDate("order_date", req.OrderDate, false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	req.NewSalesOrder.OrderDate = date

	order, err := h.ledger.CreateSalesOrder(c.Request.Context(), &req.NewSalesOrder)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSalesOrderResponse(order))
}

// listSalesOrders attaches payments with ?expand=payments.
func (h *Handler) listSalesOrders(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := h.ledger.ListSalesOrders(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]salesOrderResponse, len(orders))
	ids := make([]int, len(orders))
	for i, order := range orders {
		resp[i] = newSalesOrderResponse(order)
		ids[i] = order.ID
	}
	if expands(c, "payments") && len(orders) > 0 {
		payments, err := middlewares.GetPayments(ctx, ids)
		if err != nil {
			h.respondError(c, err)
			return
		}
		for i := range resp {
			resp[i].Payments = payments[i]
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getSalesOrder(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	order, err := h.ledger.GetSalesOrder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSalesOrderResponse(order))
}

func (h *Handler) fulfillSalesOrder(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	order, err := h.ledger.FulfillSalesOrder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSalesOrderResponse(order))
}

func (h *Handler) markDelivered(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	order, err := h.ledger.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSalesOrderResponse(order))
}

func (h *Handler) logPayment(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	var req paymentRequest
	if !h.bind(c, &req) {
		return
	}
	date, err := parseDate("payment_date", req.PaymentDate, false)
	if err != nil {
		h.respondError(c, err)
		return
	}

	payment, order, err := h.ledger.LogPayment(c.Request.Context(), &models.NewPayment{
		SalesOrderId: id,
		Amount:       req.Amount,
		PaymentDate:  date,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment, "sales_order": newSalesOrderResponse(order)})
}

func (h *Handler) listPayments(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	payments, err := h.ledger.ListPayments(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func newSalesOrderResponse(order *models.SalesOrder) salesOrderResponse {
	return salesOrderResponse{SalesOrder: order, Outstanding: order.Outstanding().String()}
}
