package listview

import "github.com/google/uuid"

type Op string

const (
	OpInsert Op = "insert"
	OpDelete Op = "delete"
	OpUpdate Op = "update"
	OpMove   Op = "move"
)

// Patch is one row operation of a batch. Deletes and move sources index the
// sequence before the batch; inserts, updates and move targets index the
// sequence after it.
type Patch struct {
	Op   Op        `json:"op"`
	Id   uuid.UUID `json:"id"`
	From int       `json:"from"`
	To   int       `json:"to"`
}

// Apply replays a batch of patches on old the way a table view does and
// returns the resulting sequence.
func Apply(old []uuid.UUID, patches []Patch) []uuid.UUID {
	removed := make(map[int]bool)
	placed := make(map[int]uuid.UUID)
	size := len(old)

	for _, p := range patches {
		switch p.Op {
		case OpDelete:
			removed[p.From] = true
			size--
		case OpInsert:
			placed[p.To] = p.Id
			size++
		case OpMove:
			removed[p.From] = true
			placed[p.To] = old[p.From]
		}
	}

	out := make([]uuid.UUID, size)
	next := 0
	for i := range out {
		if id, ok := placed[i]; ok {
			out[i] = id
			continue
		}
		for removed[next] {
			next++
		}
		out[i] = old[next]
		next++
	}
	return out
}
