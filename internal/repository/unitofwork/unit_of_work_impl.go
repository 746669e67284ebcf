package unitofwork

import (
	"context"
	"fmt"

	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/implementation"
	"notekeeper-be/pkg/changeset"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db      *gorm.DB
	tx      *gorm.DB
	tracker *ChangeTracker
}

func NewUnitOfWork(ctx context.Context, db *gorm.DB, publisher changeset.Publisher) UnitOfWork {
	return &UnitOfWorkImpl{
		db:      db,
		tracker: NewChangeTracker(ctx, publisher),
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	if u.tx.Error != nil {
		err := u.tx.Error
		u.tx = nil
		return err
	}
	u.tracker.Open(ctx)
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	if err != nil {
		u.tracker.Discard()
		return err
	}
	u.tracker.Flush()
	return nil
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	u.tracker.Discard()
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) NotebookRepository() contract.NotebookRepository {
	return implementation.NewNotebookRepository(u.getDB(), u.tracker)
}

func (u *UnitOfWorkImpl) NoteRepository() contract.NoteRepository {
	return implementation.NewNoteRepository(u.getDB(), u.tracker)
}
