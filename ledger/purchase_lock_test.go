package ledger

import (
	"strings"
	"testing"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
)

// foldingTx matches item names case-insensitively, like MySQL's default
// collation does.
type foldingTx struct {
	Tx
	items map[int]*models.InventoryItem
}

func (f *foldingTx) FindInventoryItemByName(name string) (*models.InventoryItem, error) {
	for _, item := range f.items {
		if strings.EqualFold(item.Name, name) {
			return item, nil
		}
	}
	return nil, utils.NewNotFoundByKeyError("inventory_item", name)
}

func (f *foldingTx) LockInventoryItems(ids []int) (map[int]*models.InventoryItem, error) {
	locked := make(map[int]*models.InventoryItem, len(ids))
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			locked[id] = item
		}
	}
	return locked, nil
}

func TestLockItemsByNameKeysByRequestedName(t *testing.T) {
	tx := &foldingTx{items: map[int]*models.InventoryItem{
		7: {ID: 7, Name: "Steel", Quantity: 3},
	}}

	items, err := lockItemsByName(tx, []string{"steel", "Rivet"})
	if err != nil {
		t.Fatalf("lockItemsByName: %v", err)
	}
	item, ok := items["steel"]
	if !ok {
		t.Fatalf("items = %v, want the stored Steel row under \"steel\"", items)
	}
	if item.ID != 7 {
		t.Fatalf("item id = %d, want 7", item.ID)
	}
	if _, ok := items["Rivet"]; ok {
		t.Fatalf("unknown name Rivet must be left out")
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
}
