package specification

import (
	"testing"
	"time"

	"notekeeper-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestScopedQuery_NotesOfNotebookNewestFirst(t *testing.T) {
	nb := uuid.New()
	other := uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := &entity.Note{Id: uuid.New(), NotebookId: nb, CreatedAt: base}
	second := &entity.Note{Id: uuid.New(), NotebookId: nb, CreatedAt: base.Add(time.Second)}
	foreign := &entity.Note{Id: uuid.New(), NotebookId: other, CreatedAt: base.Add(2 * time.Second)}

	got := Evaluate([]*entity.Note{first, foreign, second}, ScopedQuery(&nb, true)...)

	assert.Equal(t, []*entity.Note{second, first}, got)
}

func TestScopedQuery_AllNotebooksOldestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &entity.Notebook{Id: uuid.New(), Name: "a", CreatedAt: base.Add(time.Minute)}
	b := &entity.Notebook{Id: uuid.New(), Name: "b", CreatedAt: base}

	got := Evaluate([]*entity.Notebook{a, b}, ScopedQuery(nil, false)...)

	assert.Equal(t, []*entity.Notebook{b, a}, got)
}

func TestScopedQuery_TieBreaksOnID(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	low := &entity.Notebook{Id: uuid.MustParse("00000000-0000-0000-0000-000000000001"), CreatedAt: ts}
	high := &entity.Notebook{Id: uuid.MustParse("00000000-0000-0000-0000-000000000002"), CreatedAt: ts}

	asc := Evaluate([]*entity.Notebook{high, low}, ScopedQuery(nil, false)...)
	desc := Evaluate([]*entity.Notebook{low, high}, ScopedQuery(nil, true)...)

	assert.Equal(t, []*entity.Notebook{low, high}, asc)
	assert.Equal(t, []*entity.Notebook{high, low}, desc)
}

func TestScopedQuery_Idempotent(t *testing.T) {
	nb := uuid.New()
	notes := []*entity.Note{
		{Id: uuid.New(), NotebookId: nb, CreatedAt: time.Unix(3, 0)},
		{Id: uuid.New(), NotebookId: nb, CreatedAt: time.Unix(1, 0)},
		{Id: uuid.New(), NotebookId: nb, CreatedAt: time.Unix(2, 0)},
	}

	first := Evaluate(notes, ScopedQuery(&nb, true)...)
	second := Evaluate(notes, ScopedQuery(&nb, true)...)

	assert.Equal(t, first, second)
}

func TestByIDsAndFilter(t *testing.T) {
	keep := &entity.Notebook{Id: uuid.New(), Name: "keep"}
	drop := &entity.Notebook{Id: uuid.New(), Name: "drop"}

	assert.Equal(t, []*entity.Notebook{keep}, Evaluate([]*entity.Notebook{keep, drop}, ByIDs{IDs: []uuid.UUID{keep.Id}}))
	assert.Equal(t, []*entity.Notebook{drop}, Evaluate([]*entity.Notebook{keep, drop}, Filter("name", "drop")))
}
