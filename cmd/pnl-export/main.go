package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/ledger"
	"github.com/mmdatafocus/workshop_backend/reports"
	"github.com/mmdatafocus/workshop_backend/store"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	startStr := flag.String("start", "", "Required: period start (YYYY-MM-DD)")
	endStr := flag.String("end", "", "Required: period end (YYYY-MM-DD), inclusive")
	out := flag.String("out", "", "Optional: output file (default profit-and-loss_<start>_<end>.xlsx)")
	upload := flag.Bool("upload", false, "Upload the workbook to GCS_BUCKET instead of writing a local file")
	flag.Parse()

	start, err := utils.ParseDate(strings.TrimSpace(*startStr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "--start: %v\n", err)
		os.Exit(1)
	}
	end, err := utils.ParseDate(strings.TrimSpace(*endStr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "--end: %v\n", err)
		os.Exit(1)
	}

	logger := config.GetLogger()
	db := config.ConnectDatabaseWithRetry()
	defer config.CloseDatabase(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	l := ledger.New(store.New(db), ledger.WithLogger(logger))
	report, err := l.ComputeProfitAndLoss(ctx, start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compute profit and loss: %v\n", err)
		os.Exit(1)
	}
	data, err := reports.ProfitAndLossWorkbook(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render workbook: %v\n", err)
		os.Exit(1)
	}

	filename := *out
	if filename == "" {
		filename = fmt.Sprintf("profit-and-loss_%s_%s.xlsx", start.Format(utils.DateLayout), end.Format(utils.DateLayout))
	}

	if *upload {
		uri, err := utils.UploadToGCS(ctx, "reports/"+filename, reports.ContentTypeXlsx, data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "upload: %v\n", err)
			os.Exit(1)
		}
		logger.WithFields(logrus.Fields{"uri": uri}).Info("profit and loss uploaded")
		fmt.Println(uri)
		return
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", filename, err)
		os.Exit(1)
	}
	fmt.Printf("revenue=%s cogs=%s expenses=%s net=%s -> %s\n",
		report.Revenue.StringFixed(2), report.Cogs.StringFixed(2), report.Expenses.StringFixed(2), report.NetProfit.StringFixed(2), filename)
}
