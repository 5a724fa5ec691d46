package models

import "gorm.io/gorm"

func AllModels() []interface{} {
	return []interface{}{
		&InventoryItem{}, &StockMovement{},
		&Part{}, &PartRecipe{}, &Product{}, &ProductRecipe{},
		&Purchase{}, &PurchaseItem{},
		&AssemblyOrder{},
		&SalesOrder{}, &SalesOrderItem{}, &Payment{},
		&Expense{}, &SalaryPayment{},
		&Contact{}, &Employee{},
		&LedgerEvent{},
	}
}

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
