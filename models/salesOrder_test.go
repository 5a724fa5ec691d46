package models

import (
	"testing"
	"time"

	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		paid  string
		total string
		want  PaymentStatus
	}{
		{"0", "100", PaymentStatusUnpaid},
		{"0.01", "100", PaymentStatusPartiallyPaid},
		{"99.99", "100", PaymentStatusPartiallyPaid},
		{"100", "100", PaymentStatusPaid},
		{"150", "100", PaymentStatusPaid},
		{"0", "0", PaymentStatusUnpaid},
	}
	for _, tt := range tests {
		got := DerivePaymentStatus(decimal.RequireFromString(tt.paid), decimal.RequireFromString(tt.total))
		if got != tt.want {
			t.Fatalf("DerivePaymentStatus(%s, %s) = %s, want %s", tt.paid, tt.total, got, tt.want)
		}
	}
}

func TestApplyPaymentAndOutstanding(t *testing.T) {
	order := SalesOrder{TotalValue: decimal.NewFromInt(100)}

	order.ApplyPayment(decimal.NewFromInt(40))
	if order.PaymentStatus != PaymentStatusPartiallyPaid || !order.Outstanding().Equal(decimal.NewFromInt(60)) {
		t.Fatalf("after 40: status %s outstanding %s", order.PaymentStatus, order.Outstanding())
	}

	order.ApplyPayment(decimal.NewFromInt(80))
	if order.PaymentStatus != PaymentStatusPaid || !order.Outstanding().IsZero() {
		t.Fatalf("after overpayment: status %s outstanding %s", order.PaymentStatus, order.Outstanding())
	}
	if !order.PaidAmount.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("paid amount = %s, want 120", order.PaidAmount)
	}
}

func TestNewSalesOrderValidate(t *testing.T) {
	orderDate := time.Date(2024, 1, 5, 13, 0, 0, 0, time.UTC)
	item := NewSalesOrderItem{ProductId: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)}

	tests := []struct {
		name  string
		input NewSalesOrder
		ok    bool
	}{
		{"valid", NewSalesOrder{OrderDate: orderDate, Items: []NewSalesOrderItem{item}}, true},
		{"no items", NewSalesOrder{OrderDate: orderDate}, false},
		{"no date", NewSalesOrder{Items: []NewSalesOrderItem{item}}, false},
		{"zero quantity", NewSalesOrder{OrderDate: orderDate, Items: []NewSalesOrderItem{{ProductId: 1, UnitPrice: decimal.NewFromInt(1)}}}, false},
		{"negative price", NewSalesOrder{OrderDate: orderDate, Items: []NewSalesOrderItem{{ProductId: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}}}, false},
		{"free item", NewSalesOrder{OrderDate: orderDate, Items: []NewSalesOrderItem{{ProductId: 1, Quantity: 1}}}, true},
		{"price finer than storage", NewSalesOrder{OrderDate: orderDate, Items: []NewSalesOrderItem{{ProductId: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("1.00005")}}}, false},
		{"trailing zeros", NewSalesOrder{OrderDate: orderDate, Items: []NewSalesOrderItem{{ProductId: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("1.500000")}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !utils.IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestNewSalesOrderTotalValue(t *testing.T) {
	input := NewSalesOrder{Items: []NewSalesOrderItem{
		{ProductId: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")},
		{ProductId: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("0.03")},
	}}
	if got := input.TotalValue(); !got.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("TotalValue = %s, want 60", got)
	}
}

// Amounts the decimal(20,4) columns would round must be rejected up front,
// otherwise a stored payment could be zero while the status says otherwise.
func TestMoneyInputsRejectExtraDecimalPlaces(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	tiny := decimal.RequireFromString("0.00001")
	fine := decimal.RequireFromString("0.0001")

	tests := []struct {
		name  string
		input interface{ Validate() error }
		field string
	}{
		{"payment", &NewPayment{SalesOrderId: 1, Amount: tiny, PaymentDate: date}, "amount"},
		{"purchase unit cost", &NewPurchase{PurchaseDate: date, Items: []NewPurchaseItem{{Name: "Steel", Quantity: 1, UnitCost: fine}, {Name: "Rivet", Quantity: 1, UnitCost: tiny}}}, "items[1].unit_cost"},
		{"sales unit price", &NewSalesOrder{OrderDate: date, Items: []NewSalesOrderItem{{ProductId: 1, Quantity: 1, UnitPrice: tiny}}}, "items[0].unit_price"},
		{"expense", &NewExpense{Description: "Rent", Amount: tiny, ExpenseDate: date}, "amount"},
		{"salary", &NewSalaryPayment{EmployeeId: 1, Amount: tiny, PaymentDate: date, PeriodStartDate: date, PeriodEndDate: date}, "amount"},
		{"payment rate", &NewEmployee{Name: "Aung", PaymentType: EmployeePaymentTypeDaily, PaymentRate: tiny}, "payment_rate"},
		{"sale price", &NewProduct{Name: "Chair", SalePrice: tiny}, "sale_price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			ve, ok := err.(*utils.ValidationError)
			if !ok {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}

	ok := &NewPayment{SalesOrderId: 1, Amount: fine, PaymentDate: date}
	if err := ok.Validate(); err != nil {
		t.Fatalf("payment of %s: %v", fine, err)
	}
}
