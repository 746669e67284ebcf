package implementation

import (
	"context"
	"errors"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/mapper"
	"notekeeper-be/internal/model"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/pkg/changeset"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db       *gorm.DB
	mapper   *mapper.NoteMapper
	recorder contract.ChangeRecorder
}

func NewNoteRepository(db *gorm.DB, recorder contract.ChangeRecorder) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:       db,
		mapper:   mapper.NewNoteMapper(),
		recorder: recorder,
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) record(kind changeset.Kind, id, notebookId uuid.UUID) {
	if r.recorder == nil {
		return
	}
	r.recorder.Record(changeset.Change{Kind: kind, Entity: changeset.EntityNote, Id: id, NotebookId: notebookId})
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	r.record(changeset.Inserted, note.Id, note.NotebookId)
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	res := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", note.Id).
		Updates(map[string]interface{}{"text": note.Text})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.record(changeset.Updated, note.Id, note.NotebookId)
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	var m model.Note
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{}).Error; err != nil {
		return err
	}
	r.record(changeset.Deleted, id, m.NotebookId)
	return nil
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NoteRepositoryImpl) CountByNotebookIds(ctx context.Context, notebookIds []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(notebookIds))
	if len(notebookIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		NotebookId uuid.UUID
		Total      int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Select("notebook_id, COUNT(*) AS total").
		Where("notebook_id IN ?", notebookIds).
		Group("notebook_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.NotebookId] = row.Total
	}
	return counts, nil
}
