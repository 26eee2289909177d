package pathedit

import (
	"strconv"
	"sync/atomic"
)

// ID identifies a command within a document. IDs are opaque; the only
// guarantee is that every call to [NewID] returns a value that has not been
// returned before in this process. The zero ID is never returned.
type ID uint64

var lastID atomic.Uint64

// NewID returns a fresh ID.
func NewID() ID {
	return ID(lastID.Add(1))
}

func (id ID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}
