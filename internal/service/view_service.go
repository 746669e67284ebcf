package service

import (
	"context"
	"errors"

	"notekeeper-be/internal/apperror"
	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/listview"

	"github.com/google/uuid"
)

// ListViewSource answers view queries from the store.
type ListViewSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewListViewSource(uowFactory unitofwork.RepositoryFactory) *ListViewSource {
	return &ListViewSource{uowFactory: uowFactory}
}

func (s *ListViewSource) Query(ctx context.Context, scope listview.Scope) ([]uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := specification.ScopedQuery(scope.NotebookId, scope.Descending)

	if scope.ListsNotebooks() {
		notebooks, err := uow.NotebookRepository().FindAll(ctx, specs...)
		if err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, len(notebooks))
		for i, n := range notebooks {
			ids[i] = n.Id
		}
		return ids, nil
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(notes))
	for i, n := range notes {
		ids[i] = n.Id
	}
	return ids, nil
}

type IViewService interface {
	Open(ctx context.Context, req *dto.OpenViewRequest) (*dto.ViewResponse, error)
	Show(ctx context.Context, id string) (*dto.ViewResponse, error)
	Refresh(ctx context.Context, id string) (*dto.ViewResponse, error)
	Close(ctx context.Context, id string) error
}

type viewService struct {
	synchronizer    *listview.Synchronizer
	uowFactory      unitofwork.RepositoryFactory
	notesDescending bool
}

func NewViewService(synchronizer *listview.Synchronizer, uowFactory unitofwork.RepositoryFactory, notesDescending bool) IViewService {
	return &viewService{
		synchronizer:    synchronizer,
		uowFactory:      uowFactory,
		notesDescending: notesDescending,
	}
}

// Open starts a live view: every notebook newest first, or the notes of one
// notebook in the requested or configured order.
func (s *viewService) Open(ctx context.Context, req *dto.OpenViewRequest) (*dto.ViewResponse, error) {
	scope := listview.AllNotebooks()
	if req.NotebookId != nil {
		notebook, err := s.uowFactory.NewUnitOfWork(ctx).NotebookRepository().FindOne(ctx, specification.ByID{ID: *req.NotebookId})
		if err != nil {
			return nil, apperror.Query(err)
		}
		if notebook == nil {
			return nil, apperror.NotFoundf("notebook %s not found", *req.NotebookId)
		}

		desc := s.notesDescending
		switch req.Order {
		case "newest":
			desc = true
		case "oldest":
			desc = false
		}
		scope = listview.NotesOf(*req.NotebookId, desc)
	}

	v, err := s.synchronizer.Open(ctx, scope)
	if err != nil {
		return nil, apperror.Query(err)
	}
	return toViewResponse(v), nil
}

func (s *viewService) Show(ctx context.Context, id string) (*dto.ViewResponse, error) {
	v, found := s.synchronizer.Get(id)
	if !found {
		return nil, apperror.NotFoundf("view %s not found", id)
	}
	return toViewResponse(v), nil
}

func (s *viewService) Refresh(ctx context.Context, id string) (*dto.ViewResponse, error) {
	if err := s.synchronizer.Refresh(ctx, id); err != nil {
		return nil, viewError(id, err)
	}
	return s.Show(ctx, id)
}

func (s *viewService) Close(ctx context.Context, id string) error {
	if err := s.synchronizer.Close(id); err != nil {
		return viewError(id, err)
	}
	return nil
}

func viewError(id string, err error) error {
	if errors.Is(err, listview.ErrViewNotFound) {
		return apperror.NotFoundf("view %s not found", id)
	}
	if errors.Is(err, listview.ErrQuery) {
		return apperror.Query(err)
	}
	return apperror.Internal("view operation failed", err)
}

func toViewResponse(v *listview.View) *dto.ViewResponse {
	scope := v.Scope()
	return &dto.ViewResponse{
		Id:         v.Id(),
		NotebookId: scope.NotebookId,
		Descending: scope.Descending,
		Items:      v.Items(),
	}
}
