package ledger

import (
	"context"
	"time"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/shopspring/decimal"
)

// Store is the storage collaborator. Atomic commits everything fn did when fn
// returns nil and rolls all of it back otherwise. Snapshot gives fn a
// consistent view of committed state and never writes.
type Store interface {
	Atomic(ctx context.Context, fn func(tx Tx) error) error
	Snapshot(ctx context.Context, fn func(r Reader) error) error
}

// Reader is keyed lookup and listing over committed (or, inside Atomic,
// transaction-local) state. Missing records come back as *utils.NotFoundError.
type Reader interface {
	GetInventoryItem(id int) (*models.InventoryItem, error)
	FindInventoryItemByName(name string) (*models.InventoryItem, error)
	ListInventoryItems() ([]*models.InventoryItem, error)
	ListLowStockItems() ([]*models.InventoryItem, error)
	ListStockMovements(inventoryItemId int) ([]*models.StockMovement, error)
	StockMovementTotals() (map[int]int, error)

	GetPart(id int) (*models.Part, error)
	GetParts(ids []int) (map[int]*models.Part, error)
	PartNameExists(name string) (bool, error)
	PartRecipe(partId int) ([]*models.PartRecipe, error)
	PartRecipeGraph() (map[int][]int, error)
	ListParts() ([]*models.Part, error)

	GetProduct(id int) (*models.Product, error)
	GetProducts(ids []int) (map[int]*models.Product, error)
	ProductNameExists(name string) (bool, error)
	ListProducts() ([]*models.Product, error)

	ListPurchases() ([]*models.Purchase, error)
	ListAssemblyOrders() ([]*models.AssemblyOrderView, error)
	GetSalesOrder(id int) (*models.SalesOrder, error)
	ListSalesOrders() ([]*models.SalesOrder, error)
	ListPayments(salesOrderId int) ([]*models.Payment, error)

	GetContact(id int) (*models.Contact, error)
	ListContacts(contactType models.ContactType) ([]*models.Contact, error)
	GetEmployee(id int) (*models.Employee, error)
	ListEmployees() ([]*models.Employee, error)
	ListExpenses() ([]*models.Expense, error)
	ListSalaryPayments(employeeId int) ([]*models.SalaryPayment, error)

	SumSalesRevenue(start, end time.Time) (decimal.Decimal, error)
	SumCostOfGoodsSold(start, end time.Time) (decimal.Decimal, error)
	SumExpenses(start, end time.Time) (decimal.Decimal, error)
	CountEmployees() (int64, error)
	CountUnfulfilledSalesOrders() (int64, error)
	SumUnpaidOrderBalances() (decimal.Decimal, error)
}

// Tx is the transactional handle handed to Atomic callbacks. Lock* methods
// hold the returned rows until the transaction ends.
type Tx interface {
	Reader

	Insert(record any) error
	Update(record any) error
	Delete(record any) error

	LockInventoryItems(ids []int) (map[int]*models.InventoryItem, error)
	LockAssemblyOrder(id int) (*models.AssemblyOrder, error)
	LockSalesOrder(id int) (*models.SalesOrder, error)
	ReplacePartRecipe(partId int, lines []*models.PartRecipe) error
}
