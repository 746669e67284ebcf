package service

import (
	"context"
	"errors"
	"testing"

	"notekeeper-be/internal/apperror"
	"notekeeper-be/internal/dto"
	"notekeeper-be/pkg/events"
	"notekeeper-be/pkg/listview"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_CreateNotebookAppearsInList(t *testing.T) {
	ctx := context.Background()
	h := setup(t)

	view, err := h.views.Open(ctx, &dto.OpenViewRequest{})
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	created, err := h.notebooks.Create(ctx, &dto.CreateNotebookRequest{Name: "Work"})
	require.NoError(t, err)

	view, err = h.views.Show(ctx, view.Id)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{created.Id}, view.Items)

	rows, err := h.notebooks.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Work", rows[0].Name)
	assert.Equal(t, int64(0), rows[0].NoteCount)
	assert.Equal(t, "0 pages", rows[0].Pages)

	assert.Equal(t, []string{events.NotebookCreated}, h.events.types())
}

func TestScenario_NotesNewestFirst(t *testing.T) {
	ctx := context.Background()
	h := setup(t)

	nb, err := h.notebooks.Create(ctx, &dto.CreateNotebookRequest{Name: "Work"})
	require.NoError(t, err)
	view, err := h.views.Open(ctx, &dto.OpenViewRequest{NotebookId: &nb.Id, Order: "newest"})
	require.NoError(t, err)

	var created []uuid.UUID
	for i := 0; i < 3; i++ {
		n, err := h.notes.Create(ctx, nb.Id)
		require.NoError(t, err)
		created = append(created, n.Id)
	}

	view, err = h.views.Show(ctx, view.Id)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{created[2], created[1], created[0]}, view.Items)

	notes, err := h.notes.List(ctx, &dto.ListNotesRequest{NotebookId: nb.Id, Order: "oldest"})
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, created[0], notes[0].Id)
	assert.Equal(t, "New Note", notes[0].Text)
}

func TestScenario_DeleteMiddleNote(t *testing.T) {
	ctx := context.Background()
	h := setup(t)

	nb, err := h.notebooks.Create(ctx, &dto.CreateNotebookRequest{Name: "Work"})
	require.NoError(t, err)

	var created []uuid.UUID
	for i := 0; i < 3; i++ {
		n, err := h.notes.Create(ctx, nb.Id)
		require.NoError(t, err)
		created = append(created, n.Id)
	}

	noteView, err := h.views.Open(ctx, &dto.OpenViewRequest{NotebookId: &nb.Id, Order: "oldest"})
	require.NoError(t, err)
	allView, err := h.views.Open(ctx, &dto.OpenViewRequest{})
	require.NoError(t, err)

	rowPatches := &patchRecorder{}
	v, _ := h.sync.Get(allView.Id)
	v.Observe(rowPatches)

	require.NoError(t, h.notes.Delete(ctx, created[1]))

	noteView, err = h.views.Show(ctx, noteView.Id)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{created[0], created[2]}, noteView.Items)

	row, err := h.notebooks.Show(ctx, nb.Id)
	require.NoError(t, err)
	assert.Equal(t, "2 pages", row.Pages)

	assert.Equal(t, []listview.Patch{{Op: listview.OpUpdate, Id: nb.Id, From: 0, To: 0}}, rowPatches.last(),
		"the notebook row reloads to show its new count")
}

func TestScenario_CreateNoteSaveFailure(t *testing.T) {
	ctx := context.Background()
	h := setup(t)

	nb, err := h.notebooks.Create(ctx, &dto.CreateNotebookRequest{Name: "Work"})
	require.NoError(t, err)
	view, err := h.views.Open(ctx, &dto.OpenViewRequest{NotebookId: &nb.Id})
	require.NoError(t, err)

	h.db.FailNextSave(errors.New("disk full"))
	_, err = h.notes.Create(ctx, nb.Id)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrPersistence)

	notes, err := h.notes.List(ctx, &dto.ListNotesRequest{NotebookId: nb.Id})
	require.NoError(t, err)
	assert.Empty(t, notes)

	view, err = h.views.Show(ctx, view.Id)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	notices := h.notices.List(0)
	require.Len(t, notices, 1)
	assert.Equal(t, "create note", notices[0].Operation)
	assert.Equal(t, "disk full", notices[0].Cause)
}
