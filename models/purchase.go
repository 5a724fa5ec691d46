package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

// Purchase is an immutable record of a supplier receipt.
type Purchase struct {
	ID           int             `gorm:"primary_key" json:"id"`
	ContactId    *int            `gorm:"index" json:"contact_id"`
	PurchaseDate time.Time       `gorm:"type:date;not null;index" json:"purchase_date"`
	TotalValue   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_value"`
	Items        []*PurchaseItem `gorm:"foreignKey:PurchaseId" json:"items"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (p Purchase) GetId() int {
	return p.ID
}

type PurchaseItem struct {
	ID              int             `gorm:"primary_key" json:"id"`
	PurchaseId      int             `gorm:"index;not null" json:"purchase_id"`
	InventoryItemId int             `gorm:"index;not null" json:"inventory_item_id"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"unit_cost"`
}

type NewPurchaseItem struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Quantity int             `json:"quantity" validate:"gt=0"`
	UnitCost decimal.Decimal `json:"unit_cost" validate:"gte=0"`
}

type NewPurchase struct {
	ContactId    int               `json:"contact_id" validate:"gte=0"`
	PurchaseDate time.Time         `json:"purchase_date"`
	Items        []NewPurchaseItem `json:"items" validate:"required,min=1,dive"`
}

func (input *NewPurchase) Validate() error {
	for i := range input.Items {
		input.Items[i].Name = strings.TrimSpace(input.Items[i].Name)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	for i, item := range input.Items {
		if err := utils.ValidateMoneyScale(fmt.Sprintf("items[%d].unit_cost", i), item.UnitCost); err != nil {
			return err
		}
	}
	if input.PurchaseDate.IsZero() {
		return utils.NewValidationError("purchase_date", "is required")
	}
	input.PurchaseDate = utils.DateOnly(input.PurchaseDate)
	return nil
}

// TotalValue is Σ quantity × unitCost over the submitted lines.
func (input *NewPurchase) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range input.Items {
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
