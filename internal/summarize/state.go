package summarize

// State tracks pipeline progress for observers
type State int32

const (
	StateIdle State = iota
	StateChunking
	StateProcessing
	StateReducing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChunking:
		return "chunking"
	case StateProcessing:
		return "processing"
	case StateReducing:
		return "reducing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
