package ledger_test

import (
	"context"
	"testing"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
)

func TestRecordPurchaseBlendsAverageCost(t *testing.T) {
	l, _ := newTestLedger(t)

	mustPurchase(t, l, "Steel", 10, "5.00")
	steel := mustItem(t, l, "Steel")
	if steel.Quantity != 10 {
		t.Fatalf("quantity = %d, want 10", steel.Quantity)
	}
	assertDecimal(t, "average cost", steel.AverageCost, "5")

	mustPurchase(t, l, "Steel", 10, "7.00")
	steel = mustItem(t, l, "Steel")
	if steel.Quantity != 20 {
		t.Fatalf("quantity = %d, want 20", steel.Quantity)
	}
	assertDecimal(t, "average cost", steel.AverageCost, "6")
}

func TestRecordPurchaseStoresLinesAndTotal(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	purchase, err := l.RecordPurchase(ctx, &models.NewPurchase{
		PurchaseDate: day(t, "2024-03-04"),
		Items: []models.NewPurchaseItem{
			{Name: " Bolt ", Quantity: 100, UnitCost: dec("0.25")},
			{Name: "Paint", Quantity: 2, UnitCost: dec("12.50")},
			{Name: "Bolt", Quantity: 100, UnitCost: dec("0.75")},
		},
	})
	if err != nil {
		t.Fatalf("RecordPurchase: %v", err)
	}
	assertDecimal(t, "total value", purchase.TotalValue, "125")
	if len(purchase.Items) != 3 {
		t.Fatalf("lines = %d, want 3", len(purchase.Items))
	}

	bolt := mustItem(t, l, "Bolt")
	if bolt.Quantity != 200 {
		t.Fatalf("bolt quantity = %d, want 200", bolt.Quantity)
	}
	assertDecimal(t, "bolt average cost", bolt.AverageCost, "0.5")

	purchases, err := l.ListPurchases(ctx)
	if err != nil {
		t.Fatalf("ListPurchases: %v", err)
	}
	if len(purchases) != 1 || len(purchases[0].Items) != 3 {
		t.Fatalf("ListPurchases = %+v, want one purchase with 3 lines", purchases)
	}

	movements, err := l.ListStockMovements(ctx, bolt.ID)
	if err != nil {
		t.Fatalf("ListStockMovements: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("movements = %d, want 2", len(movements))
	}
	if movements[1].QuantityAfter != 200 || movements[1].MovementType != models.StockMovementPurchase {
		t.Fatalf("last movement = %+v", movements[1])
	}
}

func TestRecordPurchaseRejectsInvalidInput(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input *models.NewPurchase
	}{
		{"no lines", &models.NewPurchase{PurchaseDate: day(t, "2024-01-01")}},
		{"zero quantity", &models.NewPurchase{PurchaseDate: day(t, "2024-01-01"), Items: []models.NewPurchaseItem{{Name: "Steel", Quantity: 0, UnitCost: dec("1")}}}},
		{"negative cost", &models.NewPurchase{PurchaseDate: day(t, "2024-01-01"), Items: []models.NewPurchaseItem{{Name: "Steel", Quantity: 1, UnitCost: dec("-1")}}}},
		{"blank name", &models.NewPurchase{PurchaseDate: day(t, "2024-01-01"), Items: []models.NewPurchaseItem{{Name: "  ", Quantity: 1, UnitCost: dec("1")}}}},
		{"missing date", &models.NewPurchase{Items: []models.NewPurchaseItem{{Name: "Steel", Quantity: 1, UnitCost: dec("1")}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.RecordPurchase(ctx, tt.input)
			if !utils.IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}

	items, err := l.ListInventoryItems(ctx)
	if err != nil {
		t.Fatalf("ListInventoryItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("rejected purchases created %d items", len(items))
	}
}

func TestRecordPurchaseChecksSupplier(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	customer, err := l.AddContact(ctx, &models.NewContact{Name: "Walk-in", Type: models.ContactTypeCustomer})
	if err != nil {
		t.Fatalf("AddContact: %v", err)
	}
	input := &models.NewPurchase{
		ContactId:    customer.ID,
		PurchaseDate: day(t, "2024-01-01"),
		Items:        []models.NewPurchaseItem{{Name: "Steel", Quantity: 1, UnitCost: dec("1")}},
	}
	if _, err := l.RecordPurchase(ctx, input); !utils.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	input.ContactId = 999
	if _, err := l.RecordPurchase(ctx, input); !utils.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestSetStockThresholdFeedsDashboard(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	mustPurchase(t, l, "Steel", 3, "1")
	mustPurchase(t, l, "Wood", 30, "1")
	steel := mustItem(t, l, "Steel")
	wood := mustItem(t, l, "Wood")

	threshold := 5
	if _, err := l.SetStockThreshold(ctx, steel.ID, &threshold); err != nil {
		t.Fatalf("SetStockThreshold: %v", err)
	}
	if _, err := l.SetStockThreshold(ctx, wood.ID, &threshold); err != nil {
		t.Fatalf("SetStockThreshold: %v", err)
	}

	stats, err := l.ComputeDashboardStats(ctx)
	if err != nil {
		t.Fatalf("ComputeDashboardStats: %v", err)
	}
	if len(stats.LowStockItems) != 1 || stats.LowStockItems[0].Name != "Steel" {
		t.Fatalf("low stock = %+v, want only Steel", stats.LowStockItems)
	}

	if _, err := l.SetStockThreshold(ctx, 999, &threshold); !utils.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}
