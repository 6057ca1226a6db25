package holdem

import (
	"encoding/json"
	"fmt"
)

// ActionType identifies what a player wants to do on their turn
type ActionType int

// the closed set of player actions
const (
	ActionFold ActionType = iota
	ActionCheck
	ActionCall
	ActionRaise
)

var actionTypesByName = map[string]ActionType{
	"fold":  ActionFold,
	"check": ActionCheck,
	"call":  ActionCall,
	"raise": ActionRaise,
}

func (a ActionType) String() string {
	switch a {
	case ActionFold:
		return "Fold"
	case ActionCheck:
		return "Check"
	case ActionCall:
		return "Call"
	case ActionRaise:
		return "Raise"
	}

	panic(fmt.Sprintf("unknown action type: %d", int(a)))
}

func (a ActionType) name() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionRaise:
		return "raise"
	}

	panic(fmt.Sprintf("unknown action type: %d", int(a)))
}

// ActionTypeFromString returns the action type for the given identifier
func ActionTypeFromString(s string) (ActionType, error) {
	if a, ok := actionTypesByName[s]; ok {
		return a, nil
	}

	return 0, fmt.Errorf("unknown action for identifier: %s", s)
}

// Action is a player decision. Amount is only meaningful for a raise, where
// it is the new total bet the player wants to be at for the round, and for
// the call advertised in the valid-action list, where it is the amount the
// call will transfer.
type Action struct {
	Type   ActionType
	Amount int
}

// Fold/Check shorthands for the amount-less actions
var (
	Fold  = Action{Type: ActionFold}
	Check = Action{Type: ActionCheck}
	Call  = Action{Type: ActionCall}
)

// Raise returns a raise action to the new total bet
func Raise(toAmount int) Action {
	return Action{Type: ActionRaise, Amount: toAmount}
}

func (a Action) String() string {
	if a.Type == ActionRaise {
		return fmt.Sprintf("Raise to ${%d}", a.Amount)
	}

	return a.Type.String()
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Amount int    `json:"amount"`
	}{
		ID:     a.Type.name(),
		Name:   a.Type.String(),
		Amount: a.Amount,
	})
}
