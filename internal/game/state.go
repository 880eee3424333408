// Package game provides the terminal front end: stage, roster and item
// selection, the interactive battle loop and restarts.
package game

// State represents the current game state.
type State int

const (
	// StateStageSelect - choosing which boss to fight
	StateStageSelect State = iota
	// StateRosterSelect - picking the next party member
	StateRosterSelect
	// StateItemSelect - choosing equipment for the member just picked
	StateItemSelect
	// StateBattle - party members act in roster order, then the boss
	StateBattle
	// StateTargetSelect - a healer's skill is waiting for an ally
	StateTargetSelect
	// StateBattleOver - victory or defeat, waiting for restart or quit
	StateBattleOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateStageSelect:
		return "stage_select"
	case StateRosterSelect:
		return "roster_select"
	case StateItemSelect:
		return "item_select"
	case StateBattle:
		return "battle"
	case StateTargetSelect:
		return "target_select"
	case StateBattleOver:
		return "battle_over"
	default:
		return "unknown"
	}
}
