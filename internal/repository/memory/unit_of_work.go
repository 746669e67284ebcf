package memory

import (
	"context"
	"fmt"

	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/changeset"
)

type UnitOfWork struct {
	db       *Database
	tracker  *unitofwork.ChangeTracker
	inTx     bool
	snapshot snapshot
}

func NewUnitOfWork(ctx context.Context, db *Database, publisher changeset.Publisher) *UnitOfWork {
	return &UnitOfWork{
		db:      db,
		tracker: unitofwork.NewChangeTracker(ctx, publisher),
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.db.mu.Lock()
	u.snapshot = u.db.snapshot()
	u.inTx = true
	u.tracker.Open(ctx)
	return nil
}

func (u *UnitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.inTx = false

	if err := u.db.takeSaveFault(); err != nil {
		u.db.restore(u.snapshot)
		u.db.mu.Unlock()
		u.tracker.Discard()
		return err
	}

	u.db.mu.Unlock()
	u.tracker.Flush()
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.inTx = false
	u.db.restore(u.snapshot)
	u.db.mu.Unlock()
	u.tracker.Discard()
	return nil
}

func (u *UnitOfWork) NotebookRepository() contract.NotebookRepository {
	return &NotebookRepository{uow: u}
}

func (u *UnitOfWork) NoteRepository() contract.NoteRepository {
	return &NoteRepository{uow: u}
}

// read runs fn under the read lock unless the unit of work already holds the
// write lock.
func (u *UnitOfWork) read(fn func() error) error {
	if err := u.db.takeQueryFault(); err != nil {
		return err
	}
	if u.inTx {
		return fn()
	}
	u.db.mu.RLock()
	defer u.db.mu.RUnlock()
	return fn()
}

// write applies fn and records its changes. Outside a transaction the write
// is its own save and may fail like one; changes are published after the lock
// is released so observers can query the store.
func (u *UnitOfWork) write(fn func() ([]changeset.Change, error)) error {
	if u.inTx {
		changes, err := fn()
		if err != nil {
			return err
		}
		for _, c := range changes {
			u.tracker.Record(c)
		}
		return nil
	}

	u.db.mu.Lock()
	if err := u.db.takeSaveFault(); err != nil {
		u.db.mu.Unlock()
		return err
	}
	changes, err := fn()
	u.db.mu.Unlock()
	if err != nil {
		return err
	}
	for _, c := range changes {
		u.tracker.Record(c)
	}
	return nil
}

type RepositoryFactory struct {
	db        *Database
	publisher changeset.Publisher
}

func NewRepositoryFactory(db *Database, publisher changeset.Publisher) unitofwork.RepositoryFactory {
	return &RepositoryFactory{db: db, publisher: publisher}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return NewUnitOfWork(ctx, f.db, f.publisher)
}
