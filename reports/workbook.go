// Package reports renders ledger reports as xlsx workbooks and caches computed
// reports in redis.
package reports

import (
	"bytes"
	"fmt"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetProfitAndLoss  = "Profit and Loss"
	sheetStockValuation = "Stock Valuation"
)

// ProfitAndLossWorkbook writes one labelled row per figure of the report.
func ProfitAndLossWorkbook(report *models.ProfitAndLoss) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetProfitAndLoss); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Period", fmt.Sprintf("%s - %s", report.StartDate.Format(utils.DateLayout), report.EndDate.Format(utils.DateLayout))},
		{"Revenue", report.Revenue.InexactFloat64()},
		{"Cost of goods sold", report.Cogs.InexactFloat64()},
		{"Gross profit", report.GrossProfit.InexactFloat64()},
		{"Expenses", report.Expenses.InexactFloat64()},
		{"Net profit", report.NetProfit.InexactFloat64()},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetProfitAndLoss, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheetProfitAndLoss, "A", "A", 22); err != nil {
		return nil, err
	}
	return write(f)
}

// StockValuationWorkbook lists every item with its extended value and a
// closing total row.
func StockValuationWorkbook(items []*models.InventoryItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetStockValuation); err != nil {
		return nil, err
	}

	header := []interface{}{"Item", "Quantity", "Average cost", "Stock value"}
	if err := f.SetSheetRow(sheetStockValuation, "A1", &header); err != nil {
		return nil, err
	}

	rowNo := 2
	var total float64
	for _, item := range items {
		value := item.StockValue().InexactFloat64()
		total += value
		row := []interface{}{item.Name, item.Quantity, item.AverageCost.InexactFloat64(), value}
		if err := f.SetSheetRow(sheetStockValuation, "A"+fmt.Sprint(rowNo), &row); err != nil {
			return nil, err
		}
		rowNo++
	}
	totalRow := []interface{}{"Total", nil, nil, total}
	if err := f.SetSheetRow(sheetStockValuation, "A"+fmt.Sprint(rowNo), &totalRow); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetStockValuation, "A", "A", 30); err != nil {
		return nil, err
	}
	return write(f)
}

func write(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
