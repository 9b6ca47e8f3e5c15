package sweeprun

import "sync/atomic"

// taskIDCounter is the single process-wide atomic counter backing task
// identifiers (spec §9 Global state: "the monotonic task id counter is
// process-wide ... expressed as a single atomic counter; no other shared
// mutable globals exist").
var taskIDCounter uint64

func nextTaskID() uint64 {
	return atomic.AddUint64(&taskIDCounter, 1)
}
