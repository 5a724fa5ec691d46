// Package store backs ledger.Store with gorm. MySQL is the production
// database; SQLite serves single-node deployments and the tests.
package store

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/mmdatafocus/workshop_backend/ledger"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Atomic runs READ COMMITTED on MySQL; the row locks taken by gormTx carry
// the serialisation.
func (s *Store) Atomic(ctx context.Context, fn func(tx ledger.Tx) error) error {
	var opts []*sql.TxOptions
	if s.db.Dialector.Name() == "mysql" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{gormReader{db: tx}})
	}, opts...)
	return translateError("commit", err)
}

func (s *Store) Snapshot(ctx context.Context, fn func(r ledger.Reader) error) error {
	var opts []*sql.TxOptions
	if s.db.Dialector.Name() == "mysql" {
		opts = append(opts, &sql.TxOptions{ReadOnly: true})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormReader{db: tx})
	}, opts...)
	return translateError("snapshot", err)
}

type gormTx struct {
	gormReader
}

func (t *gormTx) Insert(record any) error {
	return translateError("insert", t.db.Omit(clause.Associations).Create(record).Error)
}

func (t *gormTx) Update(record any) error {
	return translateError("update", t.db.Omit(clause.Associations).Save(record).Error)
}

func (t *gormTx) Delete(record any) error {
	return translateError("delete", t.db.Delete(record).Error)
}

// forUpdate adds SELECT ... FOR UPDATE. SQLite has no row locks; its single
// connection already serialises transactions.
func (t *gormTx) forUpdate() *gorm.DB {
	if t.db.Dialector.Name() == "sqlite" {
		return t.db
	}
	return t.db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// LockInventoryItems locks rows in ascending id order so that concurrent
// transactions touching overlapping items cannot deadlock on each other.
// Missing ids are absent from the result.
func (t *gormTx) LockInventoryItems(ids []int) (map[int]*models.InventoryItem, error) {
	ids = utils.UniqueSlice(ids)
	sort.Ints(ids)
	result := make(map[int]*models.InventoryItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var items []*models.InventoryItem
	if err := t.forUpdate().Where("id IN ?", ids).Order("id").Find(&items).Error; err != nil {
		return nil, translateError("lock inventory items", err)
	}
	for _, item := range items {
		result[item.ID] = item
	}
	return result, nil
}

func (t *gormTx) LockAssemblyOrder(id int) (*models.AssemblyOrder, error) {
	var order models.AssemblyOrder
	if err := t.forUpdate().First(&order, id).Error; err != nil {
		return nil, lookupError("assembly_order", id, err)
	}
	return &order, nil
}

func (t *gormTx) LockSalesOrder(id int) (*models.SalesOrder, error) {
	var order models.SalesOrder
	if err := t.forUpdate().First(&order, id).Error; err != nil {
		return nil, lookupError("sales_order", id, err)
	}
	if err := t.db.Where("sales_order_id = ?", id).Order("id").Find(&order.Items).Error; err != nil {
		return nil, translateError("sales order items", err)
	}
	return &order, nil
}

func (t *gormTx) ReplacePartRecipe(partId int, lines []*models.PartRecipe) error {
	if err := t.db.Where("assembled_part_id = ?", partId).Delete(&models.PartRecipe{}).Error; err != nil {
		return translateError("delete part recipe", err)
	}
	if len(lines) == 0 {
		return nil
	}
	for _, line := range lines {
		line.ID = 0
		line.AssembledPartId = partId
	}
	return translateError("insert part recipe", t.db.Create(&lines).Error)
}

func lookupError(entity string, id int, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewNotFoundError(entity, id)
	}
	return translateError(entity, err)
}
