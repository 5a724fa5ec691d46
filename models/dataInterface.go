package models

type Identifier interface {
	GetId() int
}

// RelatedData is a row loaded in bulk by the id of the record that owns it.
type RelatedData interface {
	GetReferenceId() int
}

func (p Payment) GetReferenceId() int {
	return p.SalesOrderId
}

func (r PartRecipe) GetReferenceId() int {
	return r.AssembledPartId
}

func (r ProductRecipe) GetReferenceId() int {
	return r.ProductId
}

func (i SalesOrderItem) GetReferenceId() int {
	return i.SalesOrderId
}

func (i PurchaseItem) GetReferenceId() int {
	return i.PurchaseId
}

func (m StockMovement) GetReferenceId() int {
	return m.InventoryItemId
}
