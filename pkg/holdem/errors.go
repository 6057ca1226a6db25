package holdem

import (
	"fmt"
)

// GameError is an error caused by a player decision. It is safe to show
// the message to the player
type GameError string

func (g GameError) Error() string {
	return string(g)
}

func newGameError(format string, a ...interface{}) GameError {
	return GameError(fmt.Sprintf(format, a...))
}

// ErrNotYourTurn is an error when a player acts out of turn
var ErrNotYourTurn = GameError("it is not your turn")

// ErrHandOver is an error when an action is attempted after the hand ended
var ErrHandOver = GameError("the hand is over")

// ErrPlayerNotInHand is an error when the acting player is not part of the hand
var ErrPlayerNotInHand = GameError("player is not in the hand")
