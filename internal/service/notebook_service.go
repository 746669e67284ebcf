package service

import (
	"context"
	"strings"

	"notekeeper-be/internal/apperror"
	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/mapper"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/clock"
	"notekeeper-be/pkg/events"

	"github.com/google/uuid"
)

type INotebookService interface {
	List(ctx context.Context) ([]*dto.NotebookRow, error)
	Create(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.NotebookRow, error)
	Rename(ctx context.Context, req *dto.UpdateNotebookRequest) (*dto.UpdateNotebookResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type notebookService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	noticeService    INoticeService
	clock            clock.Clock
	mapper           *mapper.NotebookMapper
	logger           logger.ILogger
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	noticeService INoticeService,
	clk clock.Clock,
	log logger.ILogger,
) INotebookService {
	return &notebookService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		noticeService:    noticeService,
		clock:            clk,
		mapper:           mapper.NewNotebookMapper(),
		logger:           log,
	}
}

// List returns every notebook, newest first, with its note count.
func (c *notebookService) List(ctx context.Context) ([]*dto.NotebookRow, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebooks, err := uow.NotebookRepository().FindAll(ctx, specification.ScopedQuery(nil, true)...)
	if err != nil {
		return nil, apperror.Query(err)
	}

	ids := make([]uuid.UUID, 0, len(notebooks))
	for _, notebook := range notebooks {
		ids = append(ids, notebook.Id)
	}
	counts, err := uow.NoteRepository().CountByNotebookIds(ctx, ids)
	if err != nil {
		return nil, apperror.Query(err)
	}

	result := make([]*dto.NotebookRow, 0, len(notebooks))
	for _, notebook := range notebooks {
		result = append(result, c.mapper.ToRow(notebook, counts[notebook.Id]))
	}
	return result, nil
}

func (c *notebookService) Create(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("notebook name must not be empty")
	}

	notebook := entity.Notebook{
		Id:        uuid.New(),
		Name:      name,
		CreatedAt: c.clock.Now(),
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, c.saveFailed("create notebook", err)
	}
	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		_ = uow.Rollback()
		return nil, c.saveFailed("create notebook", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, c.saveFailed("create notebook", err)
	}

	publishEvent(ctx, c.publisherService, c.logger, events.NewNotebookEvent(events.NotebookCreated, notebook.Id, notebook.Name, notebook.CreatedAt))

	return &dto.CreateNotebookResponse{
		Id: notebook.Id,
	}, nil
}

func (c *notebookService) Show(ctx context.Context, id uuid.UUID) (*dto.NotebookRow, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Query(err)
	}
	if notebook == nil {
		return nil, apperror.NotFoundf("notebook %s not found", id)
	}

	count, err := uow.NoteRepository().Count(ctx, specification.ByNotebookID{NotebookID: id})
	if err != nil {
		return nil, apperror.Query(err)
	}
	return c.mapper.ToRow(notebook, count), nil
}

// Rename changes the name only; CreatedAt, and with it the list position, is
// left alone.
func (c *notebookService) Rename(ctx context.Context, req *dto.UpdateNotebookRequest) (*dto.UpdateNotebookResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("notebook name must not be empty")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, c.saveFailed("rename notebook", err)
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		_ = uow.Rollback()
		return nil, apperror.Query(err)
	}
	if notebook == nil {
		_ = uow.Rollback()
		return nil, apperror.NotFoundf("notebook %s not found", req.Id)
	}

	now := c.clock.Now()
	notebook.Name = name
	notebook.UpdatedAt = &now

	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		_ = uow.Rollback()
		return nil, c.saveFailed("rename notebook", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, c.saveFailed("rename notebook", err)
	}

	publishEvent(ctx, c.publisherService, c.logger, events.NewNotebookEvent(events.NotebookRenamed, notebook.Id, notebook.Name, now))

	return &dto.UpdateNotebookResponse{
		Id: notebook.Id,
	}, nil
}

// Delete removes the notebook together with all of its notes in one save.
func (c *notebookService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return c.saveFailed("delete notebook", err)
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		_ = uow.Rollback()
		return apperror.Query(err)
	}
	if notebook == nil {
		_ = uow.Rollback()
		return apperror.NotFoundf("notebook %s not found", id)
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specification.ByNotebookID{NotebookID: id})
	if err != nil {
		_ = uow.Rollback()
		return apperror.Query(err)
	}
	for _, note := range notes {
		if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
			_ = uow.Rollback()
			return c.saveFailed("delete notebook", err)
		}
	}

	if err := uow.NotebookRepository().Delete(ctx, id); err != nil {
		_ = uow.Rollback()
		return c.saveFailed("delete notebook", err)
	}
	if err := uow.Commit(); err != nil {
		return c.saveFailed("delete notebook", err)
	}

	publishEvent(ctx, c.publisherService, c.logger, events.NewNotebookEvent(events.NotebookDeleted, id, "", c.clock.Now()))
	return nil
}

func (c *notebookService) saveFailed(op string, err error) error {
	appErr := apperror.Persistence(op, err)
	c.noticeService.Record(op, appErr.Message, err)
	return appErr
}
