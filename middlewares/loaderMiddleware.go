package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/workshop_backend/models"
	"gorm.io/gorm"
)

type ctxKey string

const (
	loadersKey = ctxKey("dataloaders")
)

var errLoadersMissing = errors.New("dataloaders are not installed on this request")

// Loaders batch the child rows that list endpoints expand on request
// (?expand=payments, ?expand=recipe, ?expand=inventory).
type Loaders struct {
	paymentLoader       *dataloader.Loader[int, []*models.Payment]
	partRecipeLoader    *dataloader.Loader[int, []*models.PartRecipe]
	inventoryItemLoader *dataloader.Loader[int, *models.InventoryItem]
}

// NewLoaders instantiates data loaders for one request.
func NewLoaders(conn *gorm.DB) *Loaders {
	paymentReader := &paymentReader{db: conn}
	partRecipeReader := &partRecipeReader{db: conn}
	inventoryItemReader := &inventoryItemReader{db: conn}

	return &Loaders{
		paymentLoader:       dataloader.NewBatchedLoader(paymentReader.getPayments, dataloader.WithWait[int, []*models.Payment](time.Millisecond)),
		partRecipeLoader:    dataloader.NewBatchedLoader(partRecipeReader.getPartRecipes, dataloader.WithWait[int, []*models.PartRecipe](time.Millisecond)),
		inventoryItemLoader: dataloader.NewBatchedLoader(inventoryItemReader.getInventoryItems, dataloader.WithWait[int, *models.InventoryItem](time.Millisecond)),
	}
}

func LoaderMiddleware(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		loader := NewLoaders(conn)
		ctx := context.WithValue(c.Request.Context(), loadersKey, loader)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func For(ctx context.Context) *Loaders {
	loaders, _ := ctx.Value(loadersKey).(*Loaders)
	return loaders
}

// firstError reports the first per-key failure of a LoadMany call.
func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// handleError creates array of result with the same error repeated for as many items requested
func handleError[T any](itemsLength int, err error) []*dataloader.Result[T] {
	result := make([]*dataloader.Result[T], itemsLength)
	for i := 0; i < itemsLength; i++ {
		result[i] = &dataloader.Result[T]{Error: err}
	}
	return result
}

// generateLoaderResults keeps the order of ids; missing ids load as nil.
func generateLoaderResults[T models.Identifier](results []T, ids []int) []*dataloader.Result[*T] {
	resultMap := make(map[int]*T, len(results))
	for i := range results {
		resultMap[results[i].GetId()] = &results[i]
	}

	loaderResults := make([]*dataloader.Result[*T], 0, len(ids))
	for _, id := range ids {
		loaderResults = append(loaderResults, &dataloader.Result[*T]{Data: resultMap[id]})
	}
	return loaderResults
}

// T must be struct
// each id has many related results
func generateLoaderArrayResults[T models.RelatedData](results []T, referenceIds []int) (loaderResults []*dataloader.Result[[]*T]) {
	resultMap := make(map[int][]*T)
	for _, result := range results {
		// creating a new variable every turn, to avoid pointing to the adddress of result
		copy := result
		resultMap[result.GetReferenceId()] = append(resultMap[result.GetReferenceId()], &copy)
	}
	for _, id := range referenceIds {
		resultArray := resultMap[id]
		loaderResults = append(loaderResults, &dataloader.Result[[]*T]{Data: resultArray})
	}
	return loaderResults
}
