// Package api exposes the ledger over JSON/HTTP with gin.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/workshop_backend/ledger"
	"github.com/mmdatafocus/workshop_backend/middlewares"
	"github.com/mmdatafocus/workshop_backend/utils"
)

type Handler struct {
	ledger *ledger.Ledger
}

func NewHandler(l *ledger.Ledger) *Handler {
	return &Handler{ledger: l}
}

// RegisterRoutes mounts every endpoint on r. With requireOperator set, write
// routes need an operator token; reads stay open to any valid caller.
func RegisterRoutes(r gin.IRouter, h *Handler, requireOperator bool) {
	write := r.Group("/")
	if requireOperator {
		write.Use(middlewares.RequireOperator())
	}

	r.GET("/purchases", h.listPurchases)
	write.POST("/purchases", h.recordPurchase)

	r.GET("/inventory", h.listInventory)
	r.GET("/inventory/check", h.checkInventory)
	r.GET("/inventory/:id/movements", h.listStockMovements)
	write.PUT("/inventory/:id/threshold", h.setStockThreshold)

	r.GET("/parts", h.listParts)
	write.POST("/parts", h.addPart)
	write.PUT("/parts/:id/recipe", h.setPartRecipe)
	write.PUT("/parts/:id/inventory", h.linkPartInventory)

	r.GET("/products", h.listProducts)
	write.POST("/products", h.addProduct)
	write.PUT("/products/:id/inventory", h.linkProductInventory)

	r.GET("/assembly-orders", h.listAssemblyOrders)
	write.POST("/assembly-orders", h.createAssemblyOrder)
	write.POST("/assembly-orders/:id/fulfill", h.fulfillAssemblyOrder)

	r.GET("/sales-orders", h.listSalesOrders)
	r.GET("/sales-orders/:id", h.getSalesOrder)
	r.GET("/sales-orders/:id/payments", h.listPayments)
	write.POST("/sales-orders", h.createSalesOrder)
	write.POST("/sales-orders/:id/fulfill", h.fulfillSalesOrder)
	write.POST("/sales-orders/:id/deliver", h.markDelivered)
	write.POST("/sales-orders/:id/payments", h.logPayment)

	r.GET("/expenses", h.listExpenses)
	write.POST("/expenses", h.addExpense)

	r.GET("/contacts", h.listContacts)
	write.POST("/contacts", h.addContact)
	write.PUT("/contacts/:id", h.updateContact)
	write.DELETE("/contacts/:id", h.deleteContact)

	r.GET("/employees", h.listEmployees)
	r.GET("/employees/:id/salary-payments", h.listSalaryPayments)
	write.POST("/employees", h.addEmployee)
	write.PUT("/employees/:id", h.updateEmployee)
	write.DELETE("/employees/:id", h.deleteEmployee)
	write.POST("/employees/:id/salary-payments", h.recordSalaryPayment)

	r.GET("/reports/profit-and-loss", h.profitAndLoss)
	r.GET("/reports/profit-and-loss.xlsx", h.profitAndLossWorkbook)
	r.GET("/reports/stock-valuation.xlsx", h.stockValuationWorkbook)
	r.GET("/reports/dashboard", h.dashboard)
}

// NotFound answers unknown routes with the same error body as the handlers.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "kind": "not_found"})
}

// respondError maps the ledger's error kinds onto HTTP statuses. Storage
// failures are retryable and say so; they and unknown errors are attached to
// the context for the error logger.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		validationErr   *utils.ValidationError
		preconditionErr *utils.PreconditionError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation", "field": validationErr.Field})
	case errors.As(err, &preconditionErr):
		body := gin.H{"error": err.Error(), "kind": "precondition"}
		if preconditionErr.Required > 0 {
			body["required"] = preconditionErr.Required
			body["available"] = preconditionErr.Available
		}
		c.JSON(http.StatusConflict, body)
	case utils.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "not_found"})
	case utils.IsStorage(err):
		_ = c.Error(err)
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, retry the request", "kind": "storage"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "kind": "internal"})
	}
}

func (h *Handler) bind(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		h.respondError(c, utils.NewValidationError("body", "%s", err.Error()))
		return false
	}
	return true
}

func (h *Handler) pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.respondError(c, utils.NewValidationError("id", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// parseDate accepts an empty value only when optional is set.
func parseDate(field string, value string, optional bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if optional {
			return time.Time{}, nil
		}
		return time.Time{}, utils.NewValidationError(field, "is required")
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, utils.NewValidationError(field, "%s", err.Error())
	}
	return t, nil
}

// expands reports whether ?expand= names the relation. Several may be given
// comma separated.
func expands(c *gin.Context, relation string) bool {
	for _, v := range strings.Split(c.Query("expand"), ",") {
		if strings.TrimSpace(v) == relation {
			return true
		}
	}
	return false
}
