package models

import (
	"time"

	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

// Payment is append-only.
type Payment struct {
	ID           int             `gorm:"primary_key" json:"id"`
	SalesOrderId int             `gorm:"index;not null" json:"sales_order_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	PaymentDate  time.Time       `gorm:"type:date;not null" json:"payment_date"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewPayment struct {
	SalesOrderId int             `json:"sales_order_id" validate:"gt=0"`
	Amount       decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentDate  time.Time       `json:"payment_date"`
}

func (input *NewPayment) Validate() error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if err := utils.ValidateMoneyScale("amount", input.Amount); err != nil {
		return err
	}
	if input.PaymentDate.IsZero() {
		return utils.NewValidationError("payment_date", "is required")
	}
	input.PaymentDate = utils.DateOnly(input.PaymentDate)
	return nil
}
