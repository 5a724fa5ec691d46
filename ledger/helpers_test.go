package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/ledger"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/store"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestLedger(t *testing.T, opts ...ledger.Option) (*ledger.Ledger, *gorm.DB) {
	t.Helper()
	db, err := config.OpenMemoryDatabase()
	if err != nil {
		t.Fatalf("OpenMemoryDatabase: %v", err)
	}
	t.Cleanup(func() { config.CloseDatabase(db) })
	if err := models.MigrateTable(db); err != nil {
		t.Fatalf("MigrateTable: %v", err)
	}
	opts = append([]ledger.Option{ledger.WithLogger(nil)}, opts...)
	return ledger.New(store.New(db), opts...), db
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if got.Sub(dec(want)).Abs().GreaterThan(dec("0.000000001")) {
		t.Fatalf("%s = %s, want %s", label, got.String(), want)
	}
}

func mustPurchase(t *testing.T, l *ledger.Ledger, name string, qty int, unitCost string) *models.Purchase {
	t.Helper()
	p, err := l.RecordPurchase(context.Background(), &models.NewPurchase{
		PurchaseDate: day(t, "2024-01-02"),
		Items:        []models.NewPurchaseItem{{Name: name, Quantity: qty, UnitCost: dec(unitCost)}},
	})
	if err != nil {
		t.Fatalf("RecordPurchase(%s): %v", name, err)
	}
	return p
}

func mustItem(t *testing.T, l *ledger.Ledger, name string) *models.InventoryItem {
	t.Helper()
	items, err := l.ListInventoryItems(context.Background())
	if err != nil {
		t.Fatalf("ListInventoryItems: %v", err)
	}
	for _, item := range items {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("inventory item %q not found", name)
	return nil
}

// rawPart adds a raw part linked to the inventory item named after it.
func rawPart(t *testing.T, l *ledger.Ledger, name string) *models.Part {
	t.Helper()
	part, err := l.AddPart(context.Background(), &models.NewPart{Name: name, Kind: models.PartKindRaw, CreateInventoryItem: true})
	if err != nil {
		t.Fatalf("AddPart(%s): %v", name, err)
	}
	return part
}

func assembledPart(t *testing.T, l *ledger.Ledger, name string, recipe ...models.NewRecipeLine) *models.Part {
	t.Helper()
	part, err := l.AddPart(context.Background(), &models.NewPart{
		Name:                name,
		Kind:                models.PartKindAssembled,
		CreateInventoryItem: true,
		Recipe:              recipe,
	})
	if err != nil {
		t.Fatalf("AddPart(%s): %v", name, err)
	}
	return part
}

func mustProduct(t *testing.T, l *ledger.Ledger, name string, linked bool) *models.Product {
	t.Helper()
	product, err := l.AddProduct(context.Background(), &models.NewProduct{Name: name, SalePrice: dec("100"), CreateInventoryItem: linked})
	if err != nil {
		t.Fatalf("AddProduct(%s): %v", name, err)
	}
	return product
}

func mustSalesOrder(t *testing.T, l *ledger.Ledger, date string, items ...models.NewSalesOrderItem) *models.SalesOrder {
	t.Helper()
	order, err := l.CreateSalesOrder(context.Background(), &models.NewSalesOrder{OrderDate: day(t, date), Items: items})
	if err != nil {
		t.Fatalf("CreateSalesOrder: %v", err)
	}
	return order
}
