package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("NOTES_SORT_ORDER", "oldest")
	t.Setenv("VIEW_IDLE_TTL", "90s")
	t.Setenv("NOTICE_LOG_SIZE", "not-a-number")

	cfg := Load()

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.False(t, cfg.Views.NotesDescending())
	assert.Equal(t, 90*time.Second, cfg.Views.IdleTTL)
	assert.Equal(t, 100, cfg.Views.NoticeLogSize)
}

func TestNotesDescending(t *testing.T) {
	assert.True(t, ViewConfig{NotesSortOrder: "newest"}.NotesDescending())
	assert.True(t, ViewConfig{}.NotesDescending())
	assert.False(t, ViewConfig{NotesSortOrder: "oldest"}.NotesDescending())
}
