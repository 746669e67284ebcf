package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotebookCreated = "NOTEBOOK_CREATED"
	NotebookRenamed = "NOTEBOOK_RENAMED"
	NotebookDeleted = "NOTEBOOK_DELETED"
	NoteCreated     = "NOTE_CREATED"
	NoteUpdated     = "NOTE_UPDATED"
	NoteDeleted     = "NOTE_DELETED"
)

func NewNotebookEvent(eventType string, notebookId uuid.UUID, name string, at time.Time) BaseEvent {
	data := map[string]interface{}{"notebook_id": notebookId.String()}
	if name != "" {
		data["name"] = name
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: at}
}

func NewNoteEvent(eventType string, noteId, notebookId uuid.UUID, at time.Time) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id":     noteId.String(),
			"notebook_id": notebookId.String(),
		},
		OccurredAt: at,
	}
}
