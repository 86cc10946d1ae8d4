package engine

// Board cell values. Positive integers are tile class IDs.
const (
	EmptyCell   = 0
	BlockedCell = -1

	// Validation constants
	MinGridSize  = 1
	MaxGridSize  = 50
	MaxPathTurns = 2
)

// Cycle events recorded on the run state after each transition.
const (
	EventInit        = "init"
	EventMoveSuccess = "move_success"
	EventFailure     = "failure"
	EventFullRescan  = "full_rescan"
)

// Rescan reason codes. The first three are reported by ShouldFullRescan;
// no_pair marks the corroborating rescan taken before declaring a deadlock.
const (
	RescanReasonPeriodic      = "periodic"
	RescanReasonLowConfidence = "low_confidence"
	RescanReasonFailure       = "failure_or_mismatch"
	RescanReasonNoPair        = "no_pair"
)

// Board is a rows x cols grid of tile values: 0 is empty/traversable,
// -1 is a permanent obstacle, positive values are matchable tile classes.
type Board [][]int

// PaddedBoard is a Board surrounded by a one-cell ring of empty cells,
// which lets paths route around the visible edge of the grid.
type PaddedBoard [][]int

// ConfidenceMap holds a per-cell classifier trust score in [0,1].
type ConfidenceMap [][]float64

// Cell identifies one board position
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Pair is an unordered pair of distinct cells holding the same tile class
type Pair struct {
	A Cell `json:"a"`
	B Cell `json:"b"`
}

// RunState holds the runtime counters and flags for one bot run.
// It is created once per run and mutated in place by the transition
// functions; it is never shared across goroutines.
type RunState struct {
	MoveCount           int    `json:"move_count"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
	LastFullRescanMove  int    `json:"last_full_rescan_move"`
	LastPair            *Pair  `json:"last_pair,omitempty"`
	LastEvent           string `json:"last_event"`
	LastRescanReason    string `json:"last_rescan_reason,omitempty"`
	RescanRequested     bool   `json:"rescan_requested"`
}

// CycleRecord is a single entry in a run's cycle history
type CycleRecord struct {
	CycleNumber int    `json:"cycle_number"`
	Event       string `json:"event"`
	Pair        *Pair  `json:"pair,omitempty"`
	MoveCount   int    `json:"move_count"`
	Failures    int    `json:"failures"`
	Rescan      bool   `json:"rescan,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// RunSnapshot is the externally visible view of a run, published to the
// API, WebSocket, and persistence layers after each cycle.
type RunSnapshot struct {
	State        RunState      `json:"state"`
	Stopped      bool          `json:"stopped"`
	BoardCleared bool          `json:"board_cleared"`
	HasBoard     bool          `json:"has_board"`
	Rows         int           `json:"rows"`
	Cols         int           `json:"cols"`
	ConfigName   string        `json:"config_name"`
	CycleHistory []CycleRecord `json:"cycle_history"`
	TotalCycles  int           `json:"total_cycles"`
}
