package models

type PartKind string

const (
	PartKindRaw       PartKind = "raw"
	PartKindAssembled PartKind = "assembled"
)

func (k PartKind) IsValid() bool {
	return k == PartKindRaw || k == PartKindAssembled
}

type AssemblyOrderStatus string

const (
	AssemblyOrderStatusPending   AssemblyOrderStatus = "pending"
	AssemblyOrderStatusFulfilled AssemblyOrderStatus = "fulfilled"
)

type FulfillmentStatus string

const (
	FulfillmentStatusPending   FulfillmentStatus = "pending"
	FulfillmentStatusFulfilled FulfillmentStatus = "fulfilled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
)

type DeliveryStatus string

const (
	DeliveryStatusUndelivered DeliveryStatus = "undelivered"
	DeliveryStatusDelivered   DeliveryStatus = "delivered"
)

type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypeSupplier ContactType = "supplier"
)

func (t ContactType) IsValid() bool {
	return t == ContactTypeCustomer || t == ContactTypeSupplier
}

type EmployeePaymentType string

const (
	EmployeePaymentTypeDaily  EmployeePaymentType = "daily"
	EmployeePaymentTypeHourly EmployeePaymentType = "hourly"
)

// StockMovementType identifies the business event behind a stock movement.
type StockMovementType string

const (
	StockMovementPurchase            StockMovementType = "purchase"
	StockMovementAssemblyConsumption StockMovementType = "assembly_consumption"
	StockMovementAssemblyOutput      StockMovementType = "assembly_output"
	StockMovementSale                StockMovementType = "sale"
)
