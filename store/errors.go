package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mmdatafocus/workshop_backend/utils"
	"gorm.io/gorm"
)

const (
	mysqlErrLockDeadlock    = 1213
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDuplicateEntry  = 1062
)

// translateError keeps the ledger's own error kinds and turns everything else
// the database says into a retryable StorageError. Unique keys exist only on
// names, so a duplicate key is a rejected name rather than a storage failure.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if utils.IsValidation(err) || utils.IsPrecondition(err) || utils.IsNotFound(err) || utils.IsStorage(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorRecordNotFound
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrLockDeadlock:
			return utils.NewStorageError(op+": deadlock", err)
		case mysqlErrLockWaitTimeout:
			return utils.NewStorageError(op+": lock wait timeout", err)
		case mysqlErrDuplicateEntry:
			return utils.NewValidationError("name", "already exists")
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.NewValidationError("name", "already exists")
	}
	return utils.NewStorageError(op, err)
}
