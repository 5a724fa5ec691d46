package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProfitAndLoss struct {
	Revenue     decimal.Decimal `json:"revenue"`
	Cogs        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
}

type DashboardStats struct {
	EmployeeCount    int64            `json:"employee_count"`
	PendingOrders    int64            `json:"pending_orders"`
	TotalOutstanding decimal.Decimal  `json:"total_outstanding"`
	LowStockItems    []*InventoryItem `json:"low_stock_items"`
}

// InventoryDiscrepancy is one item whose stored quantity disagrees with its
// stock movement history.
type InventoryDiscrepancy struct {
	InventoryItemId  int    `json:"inventory_item_id"`
	Name             string `json:"name"`
	StoredQuantity   int    `json:"stored_quantity"`
	MovementQuantity int    `json:"movement_quantity"`
}

type InventoryCheckReport struct {
	CheckedAt     time.Time               `json:"checked_at"`
	ItemsChecked  int                     `json:"items_checked"`
	Discrepancies []*InventoryDiscrepancy `json:"discrepancies"`
}

func (r InventoryCheckReport) Healthy() bool {
	return len(r.Discrepancies) == 0
}
