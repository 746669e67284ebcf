package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.log")
	l := NewIsolatedLogger(path)

	l.Info("VIEW", "patch batch", map[string]interface{}{"view_id": "v1"})
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"message":"patch batch"`)
	assert.Contains(t, string(raw), `"module":"VIEW"`)
}

type captureLogger struct {
	entries []map[string]interface{}
}

func (c *captureLogger) record(details map[string]interface{}) { c.entries = append(c.entries, details) }
func (c *captureLogger) Debug(_, _ string, d map[string]interface{}) { c.record(d) }
func (c *captureLogger) Info(_, _ string, d map[string]interface{})  { c.record(d) }
func (c *captureLogger) Warn(_, _ string, d map[string]interface{})  { c.record(d) }
func (c *captureLogger) Error(_, _ string, d map[string]interface{}) { c.record(d) }
func (c *captureLogger) Sync() error                                 { return nil }

func TestWatermillAdapter_MergesFields(t *testing.T) {
	c := &captureLogger{}
	a := NewWatermillAdapter(c).With(watermill.LogFields{"topic": "store.changes"})

	a.Error("publish failed", errors.New("closed"), watermill.LogFields{"uuid": "m1"})

	require.Len(t, c.entries, 1)
	assert.Equal(t, "store.changes", c.entries[0]["topic"])
	assert.Equal(t, "m1", c.entries[0]["uuid"])
	assert.Equal(t, "closed", c.entries[0]["error"])
}
