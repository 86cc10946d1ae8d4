package engine

// NewRunState returns a fresh run state with all counters at zero
func NewRunState() *RunState {
	return &RunState{
		LastEvent: EventInit,
	}
}

// ShouldFullRescan reports whether the next cycle must re-observe the whole
// board, and the reason code for the decision. It is a pure predicate: the
// caller performs the rescan and then calls MarkRescanned. Triggers, in
// priority order:
//   - an explicit request left behind by a recorded failure
//   - any cell whose confidence is below the configured floor
//   - the periodic cadence of full_rescan_every_n_moves
func ShouldFullRescan(state *RunState, conf ConfidenceMap, cfg *BotConfig) (bool, string) {
	if state.RescanRequested {
		return true, RescanReasonFailure
	}

	for _, row := range conf {
		for _, v := range row {
			if v < cfg.MinCellConfidence {
				return true, RescanReasonLowConfidence
			}
		}
	}

	if state.MoveCount-state.LastFullRescanMove >= cfg.FullRescanEveryNMoves {
		return true, RescanReasonPeriodic
	}

	return false, ""
}

// ShouldStop reports whether the run has crossed the consecutive-failure
// threshold. Once true it stays true until an external reset.
func ShouldStop(state *RunState, cfg *BotConfig) bool {
	return state.ConsecutiveFailures >= cfg.MaxConsecutiveFailures
}

// ApplySuccessfulMove records one executed match: the move counter advances
// and the failure streak resets. LastFullRescanMove is untouched here; only
// an actual rescan (MarkRescanned) may advance it.
func ApplySuccessfulMove(state *RunState, pair Pair) {
	state.MoveCount++
	state.ConsecutiveFailures = 0
	state.LastPair = &pair
	state.LastEvent = EventMoveSuccess
	state.RescanRequested = false
}

// RecordFailure records one failed cycle. The move counter is unchanged and
// a full rescan is requested for the next decision point.
func RecordFailure(state *RunState) {
	state.ConsecutiveFailures++
	state.LastEvent = EventFailure
	state.RescanRequested = true
}

// MarkRescanned acknowledges that the caller performed a full rescan,
// anchoring the periodic cadence and clearing any pending request.
func MarkRescanned(state *RunState, reason string) {
	state.LastFullRescanMove = state.MoveCount
	state.LastRescanReason = reason
	state.LastEvent = EventFullRescan
	state.RescanRequested = false
}
