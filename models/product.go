package models

import (
	"strings"
	"time"

	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID              int              `gorm:"primary_key" json:"id"`
	Name            string           `gorm:"size:255;uniqueIndex;not null" json:"name"`
	SalePrice       decimal.Decimal  `gorm:"type:decimal(20,4);not null;default:0" json:"sale_price"`
	InventoryItemId *int             `gorm:"index" json:"inventory_item_id"`
	Recipe          []*ProductRecipe `gorm:"foreignKey:ProductId" json:"recipe,omitempty"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p Product) GetId() int {
	return p.ID
}

type ProductRecipe struct {
	ID        int `gorm:"primary_key" json:"id"`
	ProductId int `gorm:"index;not null" json:"product_id"`
	PartId    int `gorm:"index;not null" json:"part_id"`
	Quantity  int `gorm:"not null" json:"quantity"`
}

type NewProduct struct {
	Name                string          `json:"name" validate:"required,max=255"`
	SalePrice           decimal.Decimal `json:"sale_price" validate:"gte=0"`
	InventoryItemId     *int            `json:"inventory_item_id" validate:"omitempty,gt=0"`
	CreateInventoryItem bool            `json:"create_inventory_item"`
	Recipe              []NewRecipeLine `json:"recipe" validate:"dive"`
}

func (input *NewProduct) Validate() error {
	input.Name = strings.TrimSpace(input.Name)
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if err := utils.ValidateMoneyScale("sale_price", input.SalePrice); err != nil {
		return err
	}
	if input.InventoryItemId != nil && input.CreateInventoryItem {
		return utils.NewValidationError("inventory_item_id", "cannot link an existing inventory item and create a new one")
	}
	return validateRecipeLines(input.Recipe)
}
