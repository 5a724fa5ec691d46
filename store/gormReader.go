package store

import (
	"errors"
	"time"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type gormReader struct {
	db *gorm.DB
}

func orderById(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func (r *gormReader) GetInventoryItem(id int) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, lookupError("inventory_item", id, err)
	}
	return &item, nil
}

func (r *gormReader) FindInventoryItemByName(name string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.Where("name = ?", name).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundByKeyError("inventory_item", name)
	}
	if err != nil {
		return nil, translateError("inventory_item", err)
	}
	return &item, nil
}

func (r *gormReader) ListInventoryItems() ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	err := r.db.Order("name").Find(&items).Error
	return items, translateError("list inventory items", err)
}

func (r *gormReader) ListLowStockItems() ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	err := r.db.Where("stock_threshold IS NOT NULL AND quantity < stock_threshold").Order("name").Find(&items).Error
	return items, translateError("list low stock items", err)
}

func (r *gormReader) ListStockMovements(inventoryItemId int) ([]*models.StockMovement, error) {
	var movements []*models.StockMovement
	err := r.db.Where("inventory_item_id = ?", inventoryItemId).Order("id").Find(&movements).Error
	return movements, translateError("list stock movements", err)
}

func (r *gormReader) StockMovementTotals() (map[int]int, error) {
	var rows []struct {
		InventoryItemId int
		Total           int
	}
	err := r.db.Model(&models.StockMovement{}).
		Select("inventory_item_id, COALESCE(SUM(quantity_delta), 0) AS total").
		Group("inventory_item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError("stock movement totals", err)
	}
	totals := make(map[int]int, len(rows))
	for _, row := range rows {
		totals[row.InventoryItemId] = row.Total
	}
	return totals, nil
}

func (r *gormReader) GetPart(id int) (*models.Part, error) {
	var part models.Part
	if err := r.db.Preload("Recipe", orderById).First(&part, id).Error; err != nil {
		return nil, lookupError("part", id, err)
	}
	return &part, nil
}

func (r *gormReader) GetParts(ids []int) (map[int]*models.Part, error) {
	result := make(map[int]*models.Part, len(ids))
	ids = utils.UniqueSlice(ids)
	if len(ids) == 0 {
		return result, nil
	}
	var parts []*models.Part
	if err := r.db.Where("id IN ?", ids).Find(&parts).Error; err != nil {
		return nil, translateError("get parts", err)
	}
	for _, part := range parts {
		result[part.ID] = part
	}
	return result, nil
}

func (r *gormReader) PartNameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Part{}).Where("name = ?", name).Count(&count).Error
	return count > 0, translateError("part name exists", err)
}

func (r *gormReader) PartRecipe(partId int) ([]*models.PartRecipe, error) {
	var lines []*models.PartRecipe
	err := r.db.Where("assembled_part_id = ?", partId).Order("id").Find(&lines).Error
	return lines, translateError("part recipe", err)
}

// PartRecipeGraph maps each assembled part to its component parts.
func (r *gormReader) PartRecipeGraph() (map[int][]int, error) {
	var lines []*models.PartRecipe
	if err := r.db.Order("id").Find(&lines).Error; err != nil {
		return nil, translateError("part recipe graph", err)
	}
	graph := make(map[int][]int)
	for _, line := range lines {
		graph[line.AssembledPartId] = append(graph[line.AssembledPartId], line.ComponentPartId)
	}
	return graph, nil
}

func (r *gormReader) ListParts() ([]*models.Part, error) {
	var parts []*models.Part
	err := r.db.Preload("Recipe", orderById).Order("name").Find(&parts).Error
	return parts, translateError("list parts", err)
}

func (r *gormReader) GetProduct(id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Recipe", orderById).First(&product, id).Error; err != nil {
		return nil, lookupError("product", id, err)
	}
	return &product, nil
}

func (r *gormReader) GetProducts(ids []int) (map[int]*models.Product, error) {
	result := make(map[int]*models.Product, len(ids))
	ids = utils.UniqueSlice(ids)
	if len(ids) == 0 {
		return result, nil
	}
	var products []*models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, translateError("get products", err)
	}
	for _, product := range products {
		result[product.ID] = product
	}
	return result, nil
}

func (r *gormReader) ProductNameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("name = ?", name).Count(&count).Error
	return count > 0, translateError("product name exists", err)
}

func (r *gormReader) ListProducts() ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.Preload("Recipe", orderById).Order("name").Find(&products).Error
	return products, translateError("list products", err)
}

func (r *gormReader) ListPurchases() ([]*models.Purchase, error) {
	var purchases []*models.Purchase
	err := r.db.Preload("Items", orderById).Order("purchase_date DESC, id DESC").Find(&purchases).Error
	return purchases, translateError("list purchases", err)
}

func (r *gormReader) ListAssemblyOrders() ([]*models.AssemblyOrderView, error) {
	var orders []*models.AssemblyOrderView
	err := r.db.Model(&models.AssemblyOrder{}).
		Select("assembly_orders.*, parts.name AS part_name").
		Joins("JOIN parts ON parts.id = assembly_orders.part_id").
		Order("assembly_orders.id DESC").
		Scan(&orders).Error
	return orders, translateError("list assembly orders", err)
}

func (r *gormReader) GetSalesOrder(id int) (*models.SalesOrder, error) {
	var order models.SalesOrder
	if err := r.db.Preload("Items", orderById).First(&order, id).Error; err != nil {
		return nil, lookupError("sales_order", id, err)
	}
	return &order, nil
}

func (r *gormReader) ListSalesOrders() ([]*models.SalesOrder, error) {
	var orders []*models.SalesOrder
	err := r.db.Preload("Items", orderById).Order("order_date DESC, id DESC").Find(&orders).Error
	return orders, translateError("list sales orders", err)
}

func (r *gormReader) ListPayments(salesOrderId int) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.Where("sales_order_id = ?", salesOrderId).Order("payment_date, id").Find(&payments).Error
	return payments, translateError("list payments", err)
}

func (r *gormReader) GetContact(id int) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, id).Error; err != nil {
		return nil, lookupError("contact", id, err)
	}
	return &contact, nil
}

// ListContacts returns every contact when contactType is empty.
func (r *gormReader) ListContacts(contactType models.ContactType) ([]*models.Contact, error) {
	var contacts []*models.Contact
	db := r.db
	if contactType != "" {
		db = db.Where("type = ?", contactType)
	}
	err := db.Order("name").Find(&contacts).Error
	return contacts, translateError("list contacts", err)
}

func (r *gormReader) GetEmployee(id int) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, lookupError("employee", id, err)
	}
	return &employee, nil
}

func (r *gormReader) ListEmployees() ([]*models.Employee, error) {
	var employees []*models.Employee
	err := r.db.Order("name").Find(&employees).Error
	return employees, translateError("list employees", err)
}

func (r *gormReader) ListExpenses() ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := r.db.Order("expense_date DESC, id DESC").Find(&expenses).Error
	return expenses, translateError("list expenses", err)
}

func (r *gormReader) ListSalaryPayments(employeeId int) ([]*models.SalaryPayment, error) {
	var payments []*models.SalaryPayment
	err := r.db.Where("employee_id = ?", employeeId).Order("payment_date DESC, id DESC").Find(&payments).Error
	return payments, translateError("list salary payments", err)
}

// sum adds column over the matching rows. SQLite computes SUM over decimal
// columns as REAL, so there the rows are fetched and added in Go.
func (r *gormReader) sum(model any, column string, query string, args ...any) (decimal.Decimal, error) {
	db := r.db.Model(model)
	if query != "" {
		db = db.Where(query, args...)
	}

	if r.db.Dialector.Name() == "sqlite" {
		var values []decimal.NullDecimal
		if err := db.Pluck(column, &values).Error; err != nil {
			return decimal.Zero, translateError("sum "+column, err)
		}
		total := decimal.Zero
		for _, v := range values {
			if v.Valid {
				total = total.Add(v.Decimal)
			}
		}
		return total, nil
	}

	var total decimal.Decimal
	if err := db.Select("COALESCE(SUM(" + column + "), 0)").Row().Scan(&total); err != nil {
		return decimal.Zero, translateError("sum "+column, err)
	}
	return total, nil
}

// Date ranges are inclusive on both ends; stored dates are UTC midnight.
func (r *gormReader) SumSalesRevenue(start, end time.Time) (decimal.Decimal, error) {
	return r.sum(&models.SalesOrder{}, "total_value", "order_date BETWEEN ? AND ?", start, end)
}

// SumCostOfGoodsSold counts fulfilled orders by their order date.
func (r *gormReader) SumCostOfGoodsSold(start, end time.Time) (decimal.Decimal, error) {
	return r.sum(&models.SalesOrder{}, "cost_of_goods_sold",
		"fulfillment_status = ? AND order_date BETWEEN ? AND ?", models.FulfillmentStatusFulfilled, start, end)
}

func (r *gormReader) SumExpenses(start, end time.Time) (decimal.Decimal, error) {
	return r.sum(&models.Expense{}, "amount", "expense_date BETWEEN ? AND ?", start, end)
}

func (r *gormReader) CountEmployees() (int64, error) {
	var count int64
	err := r.db.Model(&models.Employee{}).Count(&count).Error
	return count, translateError("count employees", err)
}

func (r *gormReader) CountUnfulfilledSalesOrders() (int64, error) {
	var count int64
	err := r.db.Model(&models.SalesOrder{}).Where("fulfillment_status <> ?", models.FulfillmentStatusFulfilled).Count(&count).Error
	return count, translateError("count unfulfilled sales orders", err)
}

// SumUnpaidOrderBalances adds total - paid over orders not yet fully paid.
func (r *gormReader) SumUnpaidOrderBalances() (decimal.Decimal, error) {
	total, err := r.sum(&models.SalesOrder{}, "total_value", "payment_status <> ?", models.PaymentStatusPaid)
	if err != nil {
		return decimal.Zero, err
	}
	paid, err := r.sum(&models.SalesOrder{}, "paid_amount", "payment_status <> ?", models.PaymentStatusPaid)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Sub(paid), nil
}
