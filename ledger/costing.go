package ledger

import "github.com/shopspring/decimal"

// BlendCost returns the weighted average unit cost after receiving
// incomingQty units at incomingUnitCost into a stock of oldQty units at
// oldAvgCost. With no resulting stock it returns incomingUnitCost.
func BlendCost(oldQty int, oldAvgCost decimal.Decimal, incomingQty int, incomingUnitCost decimal.Decimal) decimal.Decimal {
	totalQty := oldQty + incomingQty
	if totalQty == 0 {
		return incomingUnitCost
	}
	oldValue := oldAvgCost.Mul(decimal.NewFromInt(int64(oldQty)))
	incomingValue := incomingUnitCost.Mul(decimal.NewFromInt(int64(incomingQty)))
	return oldValue.Add(incomingValue).Div(decimal.NewFromInt(int64(totalQty)))
}
