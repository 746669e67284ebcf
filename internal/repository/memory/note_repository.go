package memory

import (
	"context"
	"fmt"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/pkg/changeset"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// ErrRecordNotFound is what updates return when no row matches, same as the
// gorm backend.
var ErrRecordNotFound = gorm.ErrRecordNotFound

type NoteRepository struct {
	uow *UnitOfWork
}

func (r *NoteRepository) table() *cache.Cache {
	return r.uow.db.notes
}

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	return r.uow.write(func() ([]changeset.Change, error) {
		if _, found := r.uow.db.notebooks.Get(note.NotebookId.String()); !found {
			return nil, ErrForeignKey
		}
		if _, found := r.table().Get(note.Id.String()); found {
			return nil, fmt.Errorf("duplicate key: note %s", note.Id)
		}
		r.table().Set(note.Id.String(), *note, cache.NoExpiration)
		return []changeset.Change{{Kind: changeset.Inserted, Entity: changeset.EntityNote, Id: note.Id, NotebookId: note.NotebookId}}, nil
	})
}

func (r *NoteRepository) Update(ctx context.Context, note *entity.Note) error {
	return r.uow.write(func() ([]changeset.Change, error) {
		x, found := r.table().Get(note.Id.String())
		if !found {
			return nil, ErrRecordNotFound
		}
		stored := x.(entity.Note)
		stored.Text = note.Text
		stored.UpdatedAt = note.UpdatedAt
		r.table().Set(stored.Id.String(), stored, cache.NoExpiration)
		return []changeset.Change{{Kind: changeset.Updated, Entity: changeset.EntityNote, Id: stored.Id, NotebookId: stored.NotebookId}}, nil
	})
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.uow.write(func() ([]changeset.Change, error) {
		x, found := r.table().Get(id.String())
		if !found {
			return nil, nil
		}
		r.table().Delete(id.String())
		stored := x.(entity.Note)
		return []changeset.Change{{Kind: changeset.Deleted, Entity: changeset.EntityNote, Id: id, NotebookId: stored.NotebookId}}, nil
	})
}

func (r *NoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *NoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var result []*entity.Note
	err := r.uow.read(func() error {
		items := r.table().Items()
		rows := make([]*entity.Note, 0, len(items))
		for _, item := range items {
			n := item.Object.(entity.Note)
			rows = append(rows, &n)
		}
		result = specification.Evaluate(rows, specs...)
		return nil
	})
	return result, err
}

func (r *NoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *NoteRepository) CountByNotebookIds(ctx context.Context, notebookIds []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(notebookIds))
	if len(notebookIds) == 0 {
		return counts, nil
	}
	notes, err := r.FindAll(ctx, specification.ByNotebookIDs{NotebookIDs: notebookIds})
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		counts[n.NotebookId]++
	}
	return counts, nil
}
