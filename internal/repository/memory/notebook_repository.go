package memory

import (
	"context"
	"fmt"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/pkg/changeset"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type NotebookRepository struct {
	uow *UnitOfWork
}

func (r *NotebookRepository) table() *cache.Cache {
	return r.uow.db.notebooks
}

func (r *NotebookRepository) Create(ctx context.Context, notebook *entity.Notebook) error {
	if notebook.Id == uuid.Nil {
		notebook.Id = uuid.New()
	}
	return r.uow.write(func() ([]changeset.Change, error) {
		if _, found := r.table().Get(notebook.Id.String()); found {
			return nil, fmt.Errorf("duplicate key: notebook %s", notebook.Id)
		}
		r.table().Set(notebook.Id.String(), *notebook, cache.NoExpiration)
		return []changeset.Change{{Kind: changeset.Inserted, Entity: changeset.EntityNotebook, Id: notebook.Id, NotebookId: notebook.Id}}, nil
	})
}

func (r *NotebookRepository) Update(ctx context.Context, notebook *entity.Notebook) error {
	return r.uow.write(func() ([]changeset.Change, error) {
		x, found := r.table().Get(notebook.Id.String())
		if !found {
			return nil, ErrRecordNotFound
		}
		stored := x.(entity.Notebook)
		stored.Name = notebook.Name
		stored.UpdatedAt = notebook.UpdatedAt
		r.table().Set(stored.Id.String(), stored, cache.NoExpiration)
		return []changeset.Change{{Kind: changeset.Updated, Entity: changeset.EntityNotebook, Id: stored.Id, NotebookId: stored.Id}}, nil
	})
}

// Delete removes the notebook and, like the SQL foreign key, any notes still
// attached to it.
func (r *NotebookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.uow.write(func() ([]changeset.Change, error) {
		if _, found := r.table().Get(id.String()); !found {
			return nil, nil
		}
		r.table().Delete(id.String())
		for key, item := range r.uow.db.notes.Items() {
			if item.Object.(entity.Note).NotebookId == id {
				r.uow.db.notes.Delete(key)
			}
		}
		return []changeset.Change{{Kind: changeset.Deleted, Entity: changeset.EntityNotebook, Id: id, NotebookId: id}}, nil
	})
}

func (r *NotebookRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notebook, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *NotebookRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notebook, error) {
	var result []*entity.Notebook
	err := r.uow.read(func() error {
		items := r.table().Items()
		rows := make([]*entity.Notebook, 0, len(items))
		for _, item := range items {
			n := item.Object.(entity.Notebook)
			rows = append(rows, &n)
		}
		result = specification.Evaluate(rows, specs...)
		return nil
	})
	return result, err
}

func (r *NotebookRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}
