package models

import (
	"fmt"
	"time"

	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

// SalesOrder keeps TotalValue fixed from creation. Only the status fields,
// PaidAmount and CostOfGoodsSold change afterwards.
type SalesOrder struct {
	ID                int                 `gorm:"primary_key" json:"id"`
	ContactId         *int                `gorm:"index" json:"contact_id"`
	OrderDate         time.Time           `gorm:"type:date;not null;index" json:"order_date"`
	TotalValue        decimal.Decimal     `gorm:"type:decimal(20,4);not null;default:0" json:"total_value"`
	PaidAmount        decimal.Decimal     `gorm:"type:decimal(20,4);not null;default:0" json:"paid_amount"`
	FulfillmentStatus FulfillmentStatus   `gorm:"size:16;not null;default:pending;index" json:"fulfillment_status"`
	PaymentStatus     PaymentStatus       `gorm:"size:16;not null;default:unpaid;index" json:"payment_status"`
	DeliveryStatus    DeliveryStatus      `gorm:"size:16;not null;default:undelivered" json:"delivery_status"`
	CostOfGoodsSold   decimal.NullDecimal `gorm:"type:decimal(38,16)" json:"cost_of_goods_sold"`
	Items             []*SalesOrderItem   `gorm:"foreignKey:SalesOrderId" json:"items"`
	FulfilledAt       *time.Time          `json:"fulfilled_at"`
	CreatedAt         time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o SalesOrder) GetId() int {
	return o.ID
}

func (o SalesOrder) IsFulfilled() bool {
	return o.FulfillmentStatus == FulfillmentStatusFulfilled
}

// Outstanding is what is still owed; overpayment yields zero.
func (o SalesOrder) Outstanding() decimal.Decimal {
	rest := o.TotalValue.Sub(o.PaidAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// ApplyPayment adds amount to PaidAmount and re-derives PaymentStatus.
func (o *SalesOrder) ApplyPayment(amount decimal.Decimal) {
	o.PaidAmount = o.PaidAmount.Add(amount)
	o.PaymentStatus = DerivePaymentStatus(o.PaidAmount, o.TotalValue)
}

// DerivePaymentStatus: unpaid when nothing is paid, paid once the total is
// covered, partially_paid in between.
func DerivePaymentStatus(paidAmount decimal.Decimal, totalValue decimal.Decimal) PaymentStatus {
	switch {
	case paidAmount.IsZero():
		return PaymentStatusUnpaid
	case paidAmount.GreaterThanOrEqual(totalValue):
		return PaymentStatusPaid
	default:
		return PaymentStatusPartiallyPaid
	}
}

type SalesOrderItem struct {
	ID           int             `gorm:"primary_key" json:"id"`
	SalesOrderId int             `gorm:"index;not null" json:"sales_order_id"`
	ProductId    int             `gorm:"index;not null" json:"product_id"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"unit_price"`
}

type NewSalesOrderItem struct {
	ProductId int             `json:"product_id" validate:"gt=0"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

type NewSalesOrder struct {
	ContactId int                 `json:"contact_id" validate:"gte=0"`
	OrderDate time.Time           `json:"order_date"`
	Items     []NewSalesOrderItem `json:"items" validate:"required,min=1,dive"`
}

func (input *NewSalesOrder) Validate() error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	for i, item := range input.Items {
		if err := utils.ValidateMoneyScale(fmt.Sprintf("items[%d].unit_price", i), item.UnitPrice); err != nil {
			return err
		}
	}
	if input.OrderDate.IsZero() {
		return utils.NewValidationError("order_date", "is required")
	}
	input.OrderDate = utils.DateOnly(input.OrderDate)
	return nil
}

func (input *NewSalesOrder) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range input.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
