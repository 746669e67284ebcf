package contract

import "notekeeper-be/pkg/changeset"

// ChangeRecorder receives every successful write a repository performs so the
// owning unit of work can publish it once the save commits.
type ChangeRecorder interface {
	Record(change changeset.Change)
}
