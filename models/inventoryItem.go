package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is the authoritative stock and cost record for one material,
// part or product. Only the stock transactions in package ledger change
// Quantity and AverageCost.
type InventoryItem struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Name           string          `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Quantity       int             `gorm:"not null;default:0" json:"quantity"`
	AverageCost    decimal.Decimal `gorm:"type:decimal(38,16);not null;default:0" json:"average_cost"`
	StockThreshold *int            `json:"stock_threshold"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (item InventoryItem) GetId() int {
	return item.ID
}

// StockValue is quantity × averageCost.
func (item InventoryItem) StockValue() decimal.Decimal {
	return item.AverageCost.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func (item InventoryItem) IsLowStock() bool {
	return item.StockThreshold != nil && item.Quantity < *item.StockThreshold
}

func (item *InventoryItem) BeforeSave(tx *gorm.DB) error {
	if item.Quantity < 0 {
		return fmt.Errorf("inventory item %q quantity would become negative (%d)", item.Name, item.Quantity)
	}
	if item.AverageCost.IsNegative() {
		return errors.New("inventory item average cost cannot be negative")
	}
	return nil
}

// StockMovement is an append-only line of the stock history. The sum of
// QuantityDelta per item equals the item's quantity.
type StockMovement struct {
	ID               int               `gorm:"primary_key" json:"id"`
	InventoryItemId  int               `gorm:"index;not null" json:"inventory_item_id"`
	MovementType     StockMovementType `gorm:"size:32;not null" json:"movement_type"`
	ReferenceId      int               `gorm:"index;not null" json:"reference_id"`
	QuantityDelta    int               `gorm:"not null" json:"quantity_delta"`
	UnitCost         decimal.Decimal   `gorm:"type:decimal(38,16);not null;default:0" json:"unit_cost"`
	QuantityAfter    int               `gorm:"not null" json:"quantity_after"`
	AverageCostAfter decimal.Decimal   `gorm:"type:decimal(38,16);not null;default:0" json:"average_cost_after"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"created_at"`
}
