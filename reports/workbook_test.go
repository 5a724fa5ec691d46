package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet string, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("read %s!%s: %v", sheet, cell, err)
	}
	return v
}

func TestProfitAndLossWorkbook(t *testing.T) {
	report := &models.ProfitAndLoss{
		Revenue:     decimal.NewFromInt(170),
		Cogs:        decimal.NewFromInt(40),
		GrossProfit: decimal.NewFromInt(130),
		Expenses:    decimal.NewFromInt(30),
		NetProfit:   decimal.NewFromInt(100),
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	data, err := ProfitAndLossWorkbook(report)
	if err != nil {
		t.Fatalf("ProfitAndLossWorkbook: %v", err)
	}
	f := openWorkbook(t, data)

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "Period"},
		{"B1", "2024-01-01 - 2024-01-31"},
		{"B2", "170"},
		{"B3", "40"},
		{"B4", "130"},
		{"B5", "30"},
		{"A6", "Net profit"},
		{"B6", "100"},
	}
	for _, tt := range tests {
		if got := cellValue(t, f, sheetProfitAndLoss, tt.cell); got != tt.want {
			t.Fatalf("%s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestStockValuationWorkbook(t *testing.T) {
	items := []*models.InventoryItem{
		{Name: "Steel Rod", Quantity: 4, AverageCost: decimal.NewFromFloat(2.5)},
		{Name: "Frame", Quantity: 2, AverageCost: decimal.NewFromInt(11)},
	}
	data, err := StockValuationWorkbook(items)
	if err != nil {
		t.Fatalf("StockValuationWorkbook: %v", err)
	}
	f := openWorkbook(t, data)

	rows, err := f.GetRows(sheetStockValuation)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 2 items + total", len(rows))
	}
	if rows[1][0] != "Steel Rod" || rows[1][3] != "10" {
		t.Fatalf("row 2 = %v", rows[1])
	}
	if rows[3][0] != "Total" || rows[3][3] != "32" {
		t.Fatalf("total row = %v", rows[3])
	}
}
