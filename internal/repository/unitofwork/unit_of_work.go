package unitofwork

import (
	"context"

	"notekeeper-be/internal/repository/contract"
)

// UnitOfWork groups repository writes into one save. Changes recorded while a
// transaction is open are published as a single batch after Commit succeeds
// and discarded on Rollback; writes outside a transaction publish at once.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NotebookRepository() contract.NotebookRepository
	NoteRepository() contract.NoteRepository
}
