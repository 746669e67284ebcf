package unitofwork

import (
	"context"

	"notekeeper-be/pkg/changeset"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db        *gorm.DB
	publisher changeset.Publisher
}

func NewRepositoryFactory(db *gorm.DB, publisher changeset.Publisher) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db:        db,
		publisher: publisher,
	}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(ctx, f.db, f.publisher)
}
