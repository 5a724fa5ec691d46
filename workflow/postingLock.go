package workflow

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// AcquireAdvisoryLock takes a named MySQL advisory lock so that one
// maintenance job of a kind runs at a time across instances. GET_LOCK is
// connection scoped: pass a handle pinned to one connection (a transaction or
// a *gorm.DB over a single conn) and release on the same handle. SQLite has a
// single writer and needs no lock.
func AcquireAdvisoryLock(tx *gorm.DB, name string) error {
	if tx.Dialector.Name() != "mysql" {
		return nil
	}
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", lockName(name)).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire advisory lock %q", name)
	}
	return nil
}

func ReleaseAdvisoryLock(tx *gorm.DB, name string) {
	if tx.Dialector.Name() != "mysql" {
		return
	}
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", lockName(name)).Scan(&_ok).Error
}

func lockName(name string) string {
	return "workshop:" + name
}

// RunExclusive runs fn while holding the advisory lock name on a connection
// pinned for the duration. On SQLite fn runs directly: pinning the pool's
// only connection would starve fn.
func RunExclusive(ctx context.Context, db *gorm.DB, name string, fn func() error) error {
	if db.Dialector.Name() != "mysql" {
		return fn()
	}
	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := AcquireAdvisoryLock(conn, name); err != nil {
			return err
		}
		defer ReleaseAdvisoryLock(conn, name)
		return fn()
	})
}
