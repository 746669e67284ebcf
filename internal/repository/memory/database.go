package memory

import (
	"sync"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// ErrForeignKey is returned when a note references a missing notebook; it is
// the error gorm reports for the same case with TranslateError enabled.
var ErrForeignKey = gorm.ErrForeignKeyViolated

// Database is an in-process store with the same single-writer semantics as
// the SQL backend: a unit of work holds the write lock from Begin until
// Commit or Rollback, and a failed commit restores the pre-transaction state.
type Database struct {
	mu        sync.RWMutex
	notebooks *cache.Cache
	notes     *cache.Cache

	faultMu    sync.Mutex
	saveFault  error
	queryFault error
}

func NewDatabase() *Database {
	return &Database{
		notebooks: cache.New(cache.NoExpiration, 0),
		notes:     cache.New(cache.NoExpiration, 0),
	}
}

// FailNextSave makes the next commit (or autocommit write) fail with err.
func (d *Database) FailNextSave(err error) {
	d.faultMu.Lock()
	defer d.faultMu.Unlock()
	d.saveFault = err
}

// FailNextQuery makes the next read fail with err.
func (d *Database) FailNextQuery(err error) {
	d.faultMu.Lock()
	defer d.faultMu.Unlock()
	d.queryFault = err
}

func (d *Database) takeSaveFault() error {
	d.faultMu.Lock()
	defer d.faultMu.Unlock()
	err := d.saveFault
	d.saveFault = nil
	return err
}

func (d *Database) takeQueryFault() error {
	d.faultMu.Lock()
	defer d.faultMu.Unlock()
	err := d.queryFault
	d.queryFault = nil
	return err
}

type snapshot struct {
	notebooks map[string]cache.Item
	notes     map[string]cache.Item
}

// snapshot and restore must be called with the write lock held.
func (d *Database) snapshot() snapshot {
	return snapshot{notebooks: d.notebooks.Items(), notes: d.notes.Items()}
}

func (d *Database) restore(s snapshot) {
	d.notebooks = cache.NewFrom(cache.NoExpiration, 0, s.notebooks)
	d.notes = cache.NewFrom(cache.NoExpiration, 0, s.notes)
}
