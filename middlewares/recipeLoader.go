package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/workshop_backend/models"
	"gorm.io/gorm"
)

type partRecipeReader struct {
	db *gorm.DB
}

func (r *partRecipeReader) getPartRecipes(ctx context.Context, partIds []int) []*dataloader.Result[[]*models.PartRecipe] {
	var results []models.PartRecipe
	err := r.db.WithContext(ctx).Where("assembled_part_id IN ?", partIds).Order("id").Find(&results).Error
	if err != nil {
		return handleError[[]*models.PartRecipe](len(partIds), err)
	}
	return generateLoaderArrayResults(results, partIds)
}

// GetPartRecipes returns the recipe lines of each assembled part. Repeated
// ids are fetched once.
func GetPartRecipes(ctx context.Context, partIds []int) ([][]*models.PartRecipe, error) {
	loaders := For(ctx)
	if loaders == nil {
		return nil, errLoadersMissing
	}
	recipes, errs := loaders.partRecipeLoader.LoadMany(ctx, partIds)()
	return recipes, firstError(errs)
}
