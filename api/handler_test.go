package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/ledger"
	"github.com/mmdatafocus/workshop_backend/middlewares"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/reports"
	"github.com/mmdatafocus/workshop_backend/store"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

func newTestRouter(t *testing.T, requireOperator bool) *gin.Engine {
	t.Helper()
	db, err := config.OpenMemoryDatabase()
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { config.CloseDatabase(db) })
	if err := models.MigrateTable(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.AuthMiddleware(), middlewares.LoaderMiddleware(db))
	RegisterRoutes(r, NewHandler(ledger.New(store.New(db), ledger.WithLogger(nil))), requireOperator)
	r.NoRoute(NotFound)
	return r
}

func do(t *testing.T, r http.Handler, method string, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body %s", w.Code, want, w.Body.String())
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func assertDecimal(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", label, got, want)
	}
}

func TestSalesOrderLifecycle(t *testing.T) {
	r := newTestRouter(t, false)

	w := do(t, r, http.MethodPost, "/products", gin.H{"name": "Chair", "sale_price": "100", "create_inventory_item": true})
	expectStatus(t, w, http.StatusCreated)
	var chair models.Product
	decode(t, w, &chair)

	for _, cost := range []string{"20", "30"} {
		w = do(t, r, http.MethodPost, "/purchases", gin.H{
			"purchase_date": "2024-01-02",
			"items":         []gin.H{{"name": "Chair", "quantity": 4, "unit_cost": cost}},
		})
		expectStatus(t, w, http.StatusCreated)
	}

	w = do(t, r, http.MethodPost, "/sales-orders", gin.H{
		"order_date": "2024-01-05",
		"items":      []gin.H{{"product_id": chair.ID, "quantity": 3, "unit_price": "60"}},
	})
	expectStatus(t, w, http.StatusCreated)
	var order models.SalesOrder
	decode(t, w, &order)
	assertDecimal(t, "total value", order.TotalValue, "180")

	w = do(t, r, http.MethodPost, "/sales-orders/"+itoa(order.ID)+"/fulfill", nil)
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &order)
	if !order.IsFulfilled() || !order.CostOfGoodsSold.Valid {
		t.Fatalf("order = %+v, want fulfilled with cogs", order)
	}
	assertDecimal(t, "cogs", order.CostOfGoodsSold.Decimal, "75")

	w = do(t, r, http.MethodPost, "/sales-orders/"+itoa(order.ID)+"/fulfill", nil)
	expectStatus(t, w, http.StatusConflict)

	w = do(t, r, http.MethodPost, "/sales-orders/"+itoa(order.ID)+"/payments", gin.H{"amount": "100", "payment_date": "2024-01-06"})
	expectStatus(t, w, http.StatusCreated)
	var paid struct {
		SalesOrder models.SalesOrder `json:"sales_order"`
	}
	decode(t, w, &paid)
	if paid.SalesOrder.PaymentStatus != models.PaymentStatusPartiallyPaid {
		t.Fatalf("payment status = %s, want partially_paid", paid.SalesOrder.PaymentStatus)
	}

	w = do(t, r, http.MethodGet, "/sales-orders?expand=payments", nil)
	expectStatus(t, w, http.StatusOK)
	var listed []struct {
		ID          int               `json:"id"`
		Outstanding string            `json:"outstanding"`
		Payments    []*models.Payment `json:"payments"`
	}
	decode(t, w, &listed)
	if len(listed) != 1 || len(listed[0].Payments) != 1 || listed[0].Outstanding != "80" {
		t.Fatalf("listed orders = %+v", listed)
	}

	w = do(t, r, http.MethodGet, "/reports/profit-and-loss?start=2024-01-01&end=2024-01-31", nil)
	expectStatus(t, w, http.StatusOK)
	var pnl models.ProfitAndLoss
	decode(t, w, &pnl)
	assertDecimal(t, "revenue", pnl.Revenue, "180")
	assertDecimal(t, "net profit", pnl.NetProfit, "105")

	w = do(t, r, http.MethodGet, "/reports/profit-and-loss.xlsx?start=2024-01-01&end=2024-01-31", nil)
	expectStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != reports.ContentTypeXlsx {
		t.Fatalf("content type = %q", ct)
	}
}

func TestInsufficientStockReportsShortfall(t *testing.T) {
	r := newTestRouter(t, false)

	w := do(t, r, http.MethodPost, "/products", gin.H{"name": "Lamp", "sale_price": "10", "create_inventory_item": true})
	expectStatus(t, w, http.StatusCreated)
	var lamp models.Product
	decode(t, w, &lamp)

	w = do(t, r, http.MethodPost, "/sales-orders", gin.H{
		"order_date": "2024-02-01",
		"items":      []gin.H{{"product_id": lamp.ID, "quantity": 2, "unit_price": "10"}},
	})
	expectStatus(t, w, http.StatusCreated)
	var order models.SalesOrder
	decode(t, w, &order)

	w = do(t, r, http.MethodPost, "/sales-orders/"+itoa(order.ID)+"/fulfill", nil)
	expectStatus(t, w, http.StatusConflict)
	var body struct {
		Kind      string `json:"kind"`
		Required  int    `json:"required"`
		Available int    `json:"available"`
	}
	decode(t, w, &body)
	if body.Kind != "precondition" || body.Required != 2 || body.Available != 0 {
		t.Fatalf("body = %+v", body)
	}
}

func TestErrorStatuses(t *testing.T) {
	r := newTestRouter(t, false)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"bad date", http.MethodPost, "/purchases", gin.H{"purchase_date": "02/01/2024", "items": []gin.H{{"name": "Bolt", "quantity": 1, "unit_cost": "1"}}}, http.StatusBadRequest},
		{"missing date", http.MethodPost, "/expenses", gin.H{"description": "Rent", "amount": "10"}, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/parts", "not an object", http.StatusBadRequest},
		{"non numeric id", http.MethodGet, "/sales-orders/abc", nil, http.StatusBadRequest},
		{"unknown order", http.MethodGet, "/sales-orders/999", nil, http.StatusNotFound},
		{"payment on unknown order", http.MethodPost, "/sales-orders/999/payments", gin.H{"amount": "5", "payment_date": "2024-01-01"}, http.StatusNotFound},
		{"reversed period", http.MethodGet, "/reports/profit-and-loss?start=2024-02-01&end=2024-01-01", nil, http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/nope", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, do(t, r, tt.method, tt.path, tt.body), tt.want)
		})
	}
}

func TestWritesRequireOperator(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")
	r := newTestRouter(t, true)

	body := gin.H{"name": "Ayu", "type": "customer"}
	expectStatus(t, do(t, r, http.MethodPost, "/contacts", body), http.StatusUnauthorized)
	expectStatus(t, do(t, r, http.MethodGet, "/contacts", nil), http.StatusOK)

	token, err := utils.JwtGenerate(7, utils.RoleOperator)
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}
	expectStatus(t, do(t, r, http.MethodPost, "/contacts", body, "Authorization", "Bearer "+token), http.StatusCreated)
}

func TestInventoryEndpoints(t *testing.T) {
	r := newTestRouter(t, false)

	w := do(t, r, http.MethodPost, "/purchases", gin.H{
		"purchase_date": "2024-01-02",
		"items":         []gin.H{{"name": "Steel Rod", "quantity": 4, "unit_cost": "2.5"}},
	})
	expectStatus(t, w, http.StatusCreated)

	w = do(t, r, http.MethodGet, "/inventory", nil)
	expectStatus(t, w, http.StatusOK)
	var items []struct {
		ID         int    `json:"id"`
		Name       string `json:"name"`
		Quantity   int    `json:"quantity"`
		StockValue string `json:"stock_value"`
	}
	decode(t, w, &items)
	if len(items) != 1 || items[0].Quantity != 4 || items[0].StockValue != "10" {
		t.Fatalf("inventory = %+v", items)
	}
	id := itoa(items[0].ID)

	expectStatus(t, do(t, r, http.MethodPut, "/inventory/"+id+"/threshold", gin.H{"stock_threshold": 10}), http.StatusOK)
	expectStatus(t, do(t, r, http.MethodPut, "/inventory/"+id+"/threshold", gin.H{"stock_threshold": -1}), http.StatusBadRequest)

	w = do(t, r, http.MethodGet, "/reports/dashboard", nil)
	expectStatus(t, w, http.StatusOK)
	var stats models.DashboardStats
	decode(t, w, &stats)
	if len(stats.LowStockItems) != 1 {
		t.Fatalf("low stock items = %d, want 1", len(stats.LowStockItems))
	}

	w = do(t, r, http.MethodGet, "/inventory/"+id+"/movements", nil)
	expectStatus(t, w, http.StatusOK)
	var movements []models.StockMovement
	decode(t, w, &movements)
	if len(movements) != 1 {
		t.Fatalf("movements = %d, want 1", len(movements))
	}

	w = do(t, r, http.MethodGet, "/inventory/check", nil)
	expectStatus(t, w, http.StatusOK)
	var check struct {
		Healthy bool `json:"healthy"`
	}
	decode(t, w, &check)
	if !check.Healthy {
		t.Fatalf("inventory check reported drift: %s", w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/reports/stock-valuation.xlsx", nil)
	expectStatus(t, w, http.StatusOK)
}

func itoa(id int) string {
	return strconv.Itoa(id)
}
