package toast

import (
	"strconv"
	"sync/atomic"
)

// idCounter lives for the whole process and is never reset.
var idCounter atomic.Uint64

// NextID returns a process-unique toast identifier.
func NextID() string {
	return "toast-" + strconv.FormatUint(idCounter.Add(1), 10)
}
