package battle

import "github.com/enetx/fsm"

// Phases of a battle.
const (
	// PhasePlayer - waiting for living party members to act
	PhasePlayer fsm.State = "player_phase"
	// PhaseBoss - the boss retaliates
	PhaseBoss fsm.State = "boss_phase"
	// PhaseEnded - victory or defeat has been decided
	PhaseEnded fsm.State = "ended"
)

const (
	eventPartyDone  fsm.Event = "party_done"
	eventBossDone   fsm.Event = "boss_done"
	eventBattleOver fsm.Event = "battle_over"
)

// newPhaseMachine builds the turn cycle. There is no way out of PhaseEnded.
func newPhaseMachine() *fsm.FSM {
	return fsm.New(PhasePlayer).
		Transition(PhasePlayer, eventPartyDone, PhaseBoss).
		Transition(PhaseBoss, eventBossDone, PhasePlayer).
		Transition(PhasePlayer, eventBattleOver, PhaseEnded).
		Transition(PhaseBoss, eventBattleOver, PhaseEnded)
}

// Result is the terminal state of a battle.
type Result int

const (
	ResultOngoing Result = iota
	ResultVictory
	ResultDefeat
)

// String returns a human-readable result name.
func (r Result) String() string {
	switch r {
	case ResultOngoing:
		return "ongoing"
	case ResultVictory:
		return "victory"
	case ResultDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}
