package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/workshop_backend/models"
	"gorm.io/gorm"
)

type inventoryItemReader struct {
	db *gorm.DB
}

func (r *inventoryItemReader) getInventoryItems(ctx context.Context, ids []int) []*dataloader.Result[*models.InventoryItem] {
	var results []models.InventoryItem
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.InventoryItem](len(ids), err)
	}
	return generateLoaderResults(results, ids)
}

// GetInventoryItems returns the item for each id; unknown ids load as nil.
func GetInventoryItems(ctx context.Context, ids []int) ([]*models.InventoryItem, error) {
	loaders := For(ctx)
	if loaders == nil {
		return nil, errLoadersMissing
	}
	items, errs := loaders.inventoryItemLoader.LoadMany(ctx, ids)()
	return items, firstError(errs)
}
