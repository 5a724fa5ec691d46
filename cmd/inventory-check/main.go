package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/ledger"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/store"
	"github.com/mmdatafocus/workshop_backend/workflow"
)

// Exit status: 0 healthy, 1 failed to run, 2 drift found.
func main() {
	timeout := flag.Duration("timeout", 10*time.Minute, "Abort the check after this long")
	flag.Parse()

	logger := config.GetLogger()
	db := config.ConnectDatabaseWithRetry()
	defer config.CloseDatabase(db)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	l := ledger.New(store.New(db), ledger.WithLogger(logger))

	var report *models.InventoryCheckReport
	err := workflow.RunExclusive(ctx, db, "inventory-check", func() error {
		var err error
		report, err = l.CheckInventory(ctx)
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "inventory check: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)

	if !report.Healthy() {
		os.Exit(2)
	}
}
