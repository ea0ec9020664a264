package repository

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork is the handle a transactional function works through. Side
// effects that must only happen once the data is durable are registered with
// AfterCommit instead of being run inline.
type UnitOfWork struct {
	tx          *gorm.DB
	afterCommit []func()
}

// Tx returns the transaction-bound database handle.
func (u *UnitOfWork) Tx() *gorm.DB {
	return u.tx
}

// AfterCommit registers fn to run after a successful commit. Hooks run in
// registration order and are discarded on rollback.
func (u *UnitOfWork) AfterCommit(fn func()) {
	if fn == nil {
		return
	}
	u.afterCommit = append(u.afterCommit, fn)
}

// RunInTransaction runs fn inside a database transaction. Returning an error
// (or panicking) rolls back every write made through the unit of work.
func RunInTransaction(ctx context.Context, db *gorm.DB, fn func(uow *UnitOfWork) error) error {
	uow := &UnitOfWork{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		uow.tx = tx
		return fn(uow)
	})
	if err != nil {
		return err
	}

	for _, hook := range uow.afterCommit {
		hook()
	}

	return nil
}
