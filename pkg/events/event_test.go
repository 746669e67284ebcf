package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_RoundTripKeepsType(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	noteId, notebookId := uuid.New(), uuid.New()
	e := NewNoteEvent(NoteCreated, noteId, notebookId, at)

	raw, err := json.Marshal(ToEnvelope(e))
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	got := env.Event()

	assert.Equal(t, NoteCreated, got.EventType())
	assert.Equal(t, noteId.String(), got.Payload()["note_id"])
	assert.True(t, at.Equal(got.Timestamp()))
}

func TestNewNotebookEvent_OmitsEmptyName(t *testing.T) {
	e := NewNotebookEvent(NotebookDeleted, uuid.New(), "", time.Now())
	_, ok := e.Payload()["name"]
	assert.False(t, ok)
}
