package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/reports"
	"github.com/mmdatafocus/workshop_backend/utils"
)

// reportPeriod reads ?start=&end=. end defaults to today and start to the
// first day of end's month.
func reportPeriod(c *gin.Context) (time.Time, time.Time, error) {
	end, err := parseDate("end", c.Query("end"), true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.IsZero() {
		end = utils.DateOnly(time.Now().UTC())
	}
	start, err := parseDate("start", c.Query("start"), true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.IsZero() {
		start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return start, end, nil
}

func (h *Handler) computeProfitAndLoss(c *gin.Context) (*models.ProfitAndLoss, error) {
	start, end, err := reportPeriod(c)
	if err != nil {
		return nil, err
	}
	return h.ledger.ComputeProfitAndLoss(c.Request.Context(), start, end)
}

func (h *Handler) profitAndLoss(c *gin.Context) {
	report, err := h.computeProfitAndLoss(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) profitAndLossWorkbook(c *gin.Context) {
	report, err := h.computeProfitAndLoss(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	data, err := reports.ProfitAndLossWorkbook(report)
	if err != nil {
		h.respondError(c, err)
		return
	}
	filename := fmt.Sprintf("profit-and-loss_%s_%s.xlsx", report.StartDate.Format(utils.DateLayout), report.EndDate.Format(utils.DateLayout))
	attachment(c, filename, data)
}

func (h *Handler) stockValuationWorkbook(c *gin.Context) {
	items, err := h.ledger.ListInventoryItems(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	data, err := reports.StockValuationWorkbook(items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	attachment(c, "stock-valuation_"+time.Now().UTC().Format(utils.DateLayout)+".xlsx", data)
}

func (h *Handler) dashboard(c *gin.Context) {
	stats, err := h.ledger.ComputeDashboardStats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func attachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, reports.ContentTypeXlsx, data)
}
