package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/changeset"
	"notekeeper-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batchCollector struct {
	batches []changeset.Batch
}

func (b *batchCollector) Publish(_ context.Context, batch changeset.Batch) error {
	b.batches = append(b.batches, batch)
	return nil
}

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	collector := &batchCollector{}
	uowFactory := unitofwork.NewRepositoryFactory(gormDB, collector)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NotNil(t, uow.NotebookRepository())
	assert.NotNil(t, uow.NoteRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	t.Run("Scoped query orders notes and commits one batch", func(t *testing.T) {
		base := time.Now().UTC().Truncate(time.Microsecond)
		notebook := &entity.Notebook{Id: uuid.New(), Name: "Integration " + uuid.NewString(), CreatedAt: base}
		first := &entity.Note{Id: uuid.New(), Text: entity.DefaultNoteText, NotebookId: notebook.Id, CreatedAt: base.Add(time.Millisecond)}
		second := &entity.Note{Id: uuid.New(), Text: entity.DefaultNoteText, NotebookId: notebook.Id, CreatedAt: base.Add(2 * time.Millisecond)}

		tx := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, tx.Begin(ctx))
		require.NoError(t, tx.NotebookRepository().Create(ctx, notebook))
		require.NoError(t, tx.NoteRepository().Create(ctx, first))
		require.NoError(t, tx.NoteRepository().Create(ctx, second))
		require.NoError(t, tx.Commit())

		t.Cleanup(func() {
			_ = uowFactory.NewUnitOfWork(ctx).NotebookRepository().Delete(ctx, notebook.Id)
		})

		require.Len(t, collector.batches, 1)
		assert.Len(t, collector.batches[0].Changes, 3)

		newest, err := uow.NoteRepository().FindAll(ctx, specification.ScopedQuery(&notebook.Id, true)...)
		require.NoError(t, err)
		require.Len(t, newest, 2)
		assert.Equal(t, second.Id, newest[0].Id)
		assert.Equal(t, first.Id, newest[1].Id)

		counts, err := uow.NoteRepository().CountByNotebookIds(ctx, []uuid.UUID{notebook.Id})
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[notebook.Id])
	})

	t.Run("Rollback publishes nothing", func(t *testing.T) {
		before := len(collector.batches)
		notebook := &entity.Notebook{Id: uuid.New(), Name: "Rolled back", CreatedAt: time.Now().UTC()}

		tx := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, tx.Begin(ctx))
		require.NoError(t, tx.NotebookRepository().Create(ctx, notebook))
		require.NoError(t, tx.Rollback())

		assert.Len(t, collector.batches, before)
		_, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: notebook.Id})
		assert.Error(t, err)
	})
}
