package service

import (
	"context"

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

type INoteService interface {
	Create(ctx context.Context, notebookId uuid.UUID) (*dto.CreateNoteResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error)
	List(ctx context.Context, req *dto.ListNotesRequest) ([]*dto.NoteResponse, error)
	UpdateText(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	noticeService    INoticeService
	drafts           *DraftStore
	clock            clock.Clock
	notesDescending  bool
	mapper           *mapper.NoteMapper
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	noticeService INoticeService,
	drafts *DraftStore,
	clk clock.Clock,
	notesDescending bool,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		noticeService:    noticeService,
		drafts:           drafts,
		clock:            clk,
		notesDescending:  notesDescending,
		mapper:           mapper.NewNoteMapper(),
		logger:           log,
	}
}

// Create adds a note with the default text to an existing notebook.
func (c *noteService) Create(ctx context.Context, notebookId uuid.UUID) (*dto.CreateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, c.saveFailed("create note", err)
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: notebookId})
	if err != nil {
		_ = uow.Rollback()
		return nil, apperror.Query(err)
	}
	if notebook == nil {
		_ = uow.Rollback()
		return nil, apperror.NotFoundf("notebook %s not found", notebookId)
	}

	note := entity.Note{
		Id:         uuid.New(),
		Text:       entity.DefaultNoteText,
		NotebookId: notebookId,
		CreatedAt:  c.clock.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		_ = uow.Rollback()
		return nil, c.saveFailed("create note", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, c.saveFailed("create note", err)
	}

	publishEvent(ctx, c.publisherService, c.logger, events.NewNoteEvent(events.NoteCreated, note.Id, note.NotebookId, note.CreatedAt))

	return &dto.CreateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Query(err)
	}
	if note == nil {
		return nil, apperror.NotFoundf("note %s not found", id)
	}

	draft, _ := c.drafts.Get(id)
	return c.mapper.ToResponse(note, draft), nil
}

// List returns the notes of a notebook in the requested order, falling back
// to the configured one.
func (c *noteService) List(ctx context.Context, req *dto.ListNotesRequest) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: req.NotebookId})
	if err != nil {
		return nil, apperror.Query(err)
	}
	if notebook == nil {
		return nil, apperror.NotFoundf("notebook %s not found", req.NotebookId)
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specification.ScopedQuery(&req.NotebookId, c.descending(req.Order))...)
	if err != nil {
		return nil, apperror.Query(err)
	}
	return c.mapper.ToResponses(notes), nil
}

// UpdateText overwrites the note text. When the save fails the text is kept
// as a draft and returned with the error.
func (c *noteService) UpdateText(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return c.keepDraft(req, err)
	}

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		_ = uow.Rollback()
		return nil, apperror.Query(err)
	}
	if note == nil {
		_ = uow.Rollback()
		return nil, apperror.NotFoundf("note %s not found", req.Id)
	}

	now := c.clock.Now()
	note.Text = req.Text
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		_ = uow.Rollback()
		return c.keepDraft(req, err)
	}
	if err := uow.Commit(); err != nil {
		return c.keepDraft(req, err)
	}

	c.drafts.Clear(note.Id)
	publishEvent(ctx, c.publisherService, c.logger, events.NewNoteEvent(events.NoteUpdated, note.Id, note.NotebookId, now))

	return &dto.UpdateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return c.saveFailed("delete note", err)
	}

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		_ = uow.Rollback()
		return apperror.Query(err)
	}
	if note == nil {
		_ = uow.Rollback()
		return apperror.NotFoundf("note %s not found", id)
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		_ = uow.Rollback()
		return c.saveFailed("delete note", err)
	}
	if err := uow.Commit(); err != nil {
		return c.saveFailed("delete note", err)
	}

	c.drafts.Clear(id)
	publishEvent(ctx, c.publisherService, c.logger, events.NewNoteEvent(events.NoteDeleted, id, note.NotebookId, c.clock.Now()))
	return nil
}

func (c *noteService) descending(order string) bool {
	switch order {
	case "newest":
		return true
	case "oldest":
		return false
	}
	return c.notesDescending
}

func (c *noteService) keepDraft(req *dto.UpdateNoteRequest, err error) (*dto.UpdateNoteResponse, error) {
	c.drafts.Put(req.Id, req.Text)
	draft := req.Text
	return &dto.UpdateNoteResponse{Id: req.Id, Draft: &draft}, c.saveFailed("update note", err)
}

func (c *noteService) saveFailed(op string, err error) error {
	appErr := apperror.Persistence(op, err)
	c.noticeService.Record(op, appErr.Message, err)
	return appErr
}
